package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Config holds SendGrid client settings.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// SendGridMailer sends mail through the SendGrid v3 API.
type SendGridMailer struct {
	config Config
	client *http.Client
	logger *zap.Logger
}

// NewSendGridMailer creates a mailer with a bounded timeout.
func NewSendGridMailer(cfg Config, logger *zap.Logger) *SendGridMailer {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.sendgrid.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SendGridMailer{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type sendAddress struct {
	Email string `json:"email"`
}

type sendPersonalization struct {
	To []sendAddress `json:"to"`
}

type sendContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendRequest struct {
	Personalizations []sendPersonalization `json:"personalizations"`
	From             sendAddress           `json:"from"`
	Subject          string                `json:"subject"`
	Content          []sendContent         `json:"content"`
}

// Send posts one message to /v3/mail/send.
func (m *SendGridMailer) Send(ctx context.Context, msg *Email) error {
	payload := sendRequest{
		Personalizations: []sendPersonalization{{To: []sendAddress{{Email: msg.To}}}},
		From:             sendAddress{Email: msg.From},
		Subject:          msg.Subject,
		Content:          []sendContent{{Type: "text/html", Value: msg.HTML}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.config.Endpoint+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.config.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail send error %d: %s", resp.StatusCode, string(respBody))
	}

	m.logger.Debug("mail accepted",
		zap.String("to", msg.To), zap.Int("status", resp.StatusCode))
	return nil
}
