package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// SlackWebhook posts digest summaries to a Slack incoming webhook.
type SlackWebhook struct {
	webhookURL string
	logger     *zap.Logger
}

// NewSlackWebhook creates a Slack adapter for the given webhook URL.
func NewSlackWebhook(webhookURL string, logger *zap.Logger) *SlackWebhook {
	return &SlackWebhook{webhookURL: webhookURL, logger: logger}
}

func (s *SlackWebhook) Name() string { return "slack" }

// Notify posts the summary as one webhook message.
func (s *SlackWebhook) Notify(ctx context.Context, title, text string) error {
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("*%s*\n%s", title, text),
	}
	if err := slack.PostWebhookContext(ctx, s.webhookURL, msg); err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	return nil
}
