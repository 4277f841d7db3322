package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Auth holds authentication policy configuration
type Auth struct {
	AdminEmail string
}

// Flags returns CLI flags for Auth configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "admin-email",
			Usage:       "Email address granted the admin capability (issue deletion)",
			Category:    "Auth",
			Value:       "projetos@preferencial.eng.br",
			Sources:     cli.EnvVars("INCENDIO_ADMIN_EMAIL"),
			Destination: &a.AdminEmail,
		},
	}
}

// LogValue returns structured log value
func (a Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("adminEmail", a.AdminEmail),
	)
}
