package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Notifier delivers a plain-text message to the storefront staff inbox.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

type SendGridNotifier struct {
	apiKey string
	from   string
	to     string
	log    *zap.Logger
}

func NewSendGridNotifier(apiKey, from, to string, log *zap.Logger) *SendGridNotifier {
	return &SendGridNotifier{apiKey: apiKey, from: from, to: to, log: log}
}

func (n *SendGridNotifier) Notify(ctx context.Context, subject, body string) error {
	if n.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if n.from == "" || n.to == "" {
		return fmt.Errorf("sendgrid from/to address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail("Storefront", n.from),
		subject,
		mail.NewEmail("", n.to),
		body,
		"<pre>"+html.EscapeString(body)+"</pre>",
	)

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	n.log.Info("notification sent", zap.Int("status", response.StatusCode), zap.String("subject", subject))
	return nil
}

// Nop discards notifications when SendGrid is not configured.
type Nop struct{}

func (Nop) Notify(context.Context, string, string) error { return nil }
