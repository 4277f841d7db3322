package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/domain/interfaces"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
)

// Service sends group messages through an Evolution API instance. It is
// the outbound half of the notification relay: callers dispatch
// fire-and-forget, and a delivery failure never affects the record
// mutation that triggered it.
type Service struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	instance   string
	groupID    string
	site       *model.SiteConfig
}

// New creates a new WhatsApp notification service
func New(baseURL, apiKey, instance, groupID string, site *model.SiteConfig) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		instance:   instance,
		groupID:    groupID,
		site:       site,
	}
}

// IsConfigured checks if the Evolution API settings are complete
func (s *Service) IsConfigured() bool {
	return s.baseURL != "" && s.apiKey != "" && s.instance != "" && s.groupID != ""
}

// sendTextRequest is the Evolution API sendText payload
type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// NotifyIssueCreated sends the new-issue announcement to the configured
// WhatsApp group. When the relay is not configured it logs and skips,
// matching the behavior of the original deployment.
func (s *Service) NotifyIssueCreated(ctx context.Context, issue *model.Issue, creatorName string) error {
	logger := ctxlog.From(ctx)

	if !s.IsConfigured() {
		logger.Warn("WhatsApp relay not configured, skipping notification",
			"issueID", issue.ID,
		)
		return nil
	}

	message := BuildIssueCreatedMessage(issue, s.site, creatorName)
	if err := s.SendText(ctx, s.groupID, message); err != nil {
		return goerr.Wrap(err, "failed to send issue notification",
			goerr.V("issueID", issue.ID))
	}

	logger.Info("WhatsApp notification sent",
		"issueID", issue.ID,
		"group", s.groupID,
	)
	return nil
}

// SendText posts a text message to a number or group through the
// Evolution API instance
func (s *Service) SendText(ctx context.Context, number, text string) error {
	if number == "" || text == "" {
		return goerr.New("number and text are required")
	}

	body, err := json.Marshal(sendTextRequest{Number: number, Text: text})
	if err != nil {
		return goerr.Wrap(err, "failed to encode sendText request")
	}

	url := s.baseURL + "/message/sendText/" + s.instance
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create sendText request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to call evolution API")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.New("evolution API returned error",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)),
		)
	}

	return nil
}

var _ interfaces.Notifier = (*Service)(nil) // Compile-time interface check
