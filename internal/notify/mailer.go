// Package notify sends outbound email notifications for inbound leads.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/toptier/siteapi/internal/model"
)

// Config holds the SMTP settings for outbound notifications.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
}

// configured reports whether enough settings are present to send mail.
func (c Config) configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// Mailer sends notification emails over SMTP. A nil *Mailer is valid and
// does nothing, so callers never need to branch on whether notifications
// are configured.
type Mailer struct {
	cfg    Config
	client *mail.Client
}

// New creates a Mailer, or returns nil when the SMTP settings are
// incomplete (notifications disabled).
func New(cfg Config, logger *slog.Logger) (*Mailer, error) {
	if !cfg.configured() {
		logger.Info("smtp not configured, lead notifications disabled")
		return nil, nil
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.Recipient == "" {
		cfg.Recipient = cfg.Username
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &Mailer{cfg: cfg, client: client}, nil
}

// LeadReceived emails the configured recipient about a new consultation
// request. Safe to call on a nil Mailer.
func (m *Mailer) LeadReceived(ctx context.Context, lead *model.Lead) error {
	if m == nil {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(m.cfg.Recipient); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject("New Contact Form Submission from " + lead.FullName())
	msg.SetBodyString(mail.TypeTextPlain, leadBody(lead))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send lead notification: %w", err)
	}
	return nil
}

func leadBody(lead *model.Lead) string {
	phone := lead.PhoneNumber
	if phone == "" {
		phone = "Not provided"
	}
	message := lead.Message
	if message == "" {
		message = "No message provided"
	}

	return fmt.Sprintf(`New contact form submission received:

Name: %s
Email: %s
Phone: %s

Message:
%s
`, lead.FullName(), lead.Email, phone, message)
}
