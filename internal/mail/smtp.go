package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/iliyamo/trendaura-auth/internal/config"
	"github.com/iliyamo/trendaura-auth/internal/logging"
)

// SMTPMailer sends through an authenticated SMTP relay.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer builds a client for cfg. TLS is mandatory.
func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
		gomail.WithPort(cfg.Port),
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Password),
		)
	}
	c, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: c, from: cfg.From}, nil
}

// Send delivers msg over SMTP as an HTML message. ctx bounds the dial and
// the whole SMTP conversation.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	em := gomail.NewMsg()
	if err := em.From(m.from); err != nil {
		return fmt.Errorf("from %q: %w", m.from, err)
	}
	if err := em.To(msg.To); err != nil {
		return fmt.Errorf("to %q: %w", msg.To, err)
	}
	em.Subject(msg.Subject)
	em.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	if err := m.client.DialAndSendWithContext(ctx, em); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// New returns an SMTPMailer when a host is configured and a LogMailer
// otherwise.
func New(cfg config.MailConfig, log logging.Logger) (Mailer, error) {
	if cfg.Host == "" {
		return NewLogMailer(log), nil
	}
	return NewSMTPMailer(cfg)
}
