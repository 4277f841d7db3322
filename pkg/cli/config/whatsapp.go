package config

import (
	"log/slog"

	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/service/whatsapp"
	"github.com/urfave/cli/v3"
)

// WhatsApp holds Evolution API configuration for the notification relay
type WhatsApp struct {
	BaseURL  string
	APIKey   string
	Instance string
	GroupID  string
}

// Flags returns CLI flags for WhatsApp configuration
func (w *WhatsApp) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "whatsapp-base-url",
			Usage:       "Evolution API base URL",
			Category:    "WhatsApp",
			Sources:     cli.EnvVars("INCENDIO_WHATSAPP_BASE_URL"),
			Destination: &w.BaseURL,
		},
		&cli.StringFlag{
			Name:        "whatsapp-api-key",
			Usage:       "Evolution API key",
			Category:    "WhatsApp",
			Sources:     cli.EnvVars("INCENDIO_WHATSAPP_API_KEY"),
			Destination: &w.APIKey,
		},
		&cli.StringFlag{
			Name:        "whatsapp-instance",
			Usage:       "Evolution API instance name",
			Category:    "WhatsApp",
			Sources:     cli.EnvVars("INCENDIO_WHATSAPP_INSTANCE"),
			Destination: &w.Instance,
		},
		&cli.StringFlag{
			Name:        "whatsapp-group-id",
			Usage:       "WhatsApp group JID that receives issue notifications",
			Category:    "WhatsApp",
			Sources:     cli.EnvVars("INCENDIO_WHATSAPP_GROUP_ID"),
			Destination: &w.GroupID,
		},
	}
}

// Configure creates the WhatsApp notification service. The service is
// always returned; when unconfigured it logs and skips deliveries.
func (w *WhatsApp) Configure(site *model.SiteConfig) *whatsapp.Service {
	return whatsapp.New(w.BaseURL, w.APIKey, w.Instance, w.GroupID, site)
}

// IsConfigured checks if the relay has everything it needs to deliver
func (w *WhatsApp) IsConfigured() bool {
	return w.BaseURL != "" && w.APIKey != "" && w.Instance != "" && w.GroupID != ""
}

// LogValue returns structured log value (the API key is masked)
func (w WhatsApp) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("baseURL", w.BaseURL),
		slog.Bool("hasAPIKey", w.APIKey != ""),
		slog.String("instance", w.Instance),
		slog.String("groupID", w.GroupID),
	)
}
