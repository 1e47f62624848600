package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Adapter implements NotifierPort by sending plain-text email over SMTP.
type Adapter struct {
	logger *slog.Logger
	host   string
	port   int
	from   string
	to     string
}

// New creates a new email notification adapter.
func New(logger *slog.Logger, host string, port int, from, to string) *Adapter {
	if logger == nil {
		panic("notify adapter requires logger")
	}
	return &Adapter{logger: logger, host: host, port: port, from: from, to: to}
}

// Send delivers one notification email.
func (a *Adapter) Send(ctx context.Context, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(a.from); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", a.from, err)
	}
	if err := msg.To(a.to); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", a.to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(a.host,
		mail.WithPort(a.port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client for %s: %w", a.host, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail via %s:%d: %w", a.host, a.port, err)
	}
	a.logger.DebugContext(ctx, "Notification email sent", "to", a.to, "subject", subject)
	return nil
}
