// Package mail delivers transactional email: verification codes and login
// notifications.
package mail

import (
	"context"

	"github.com/iliyamo/trendaura-auth/internal/logging"
)

// Message is a single outbound HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer sends a message. Implementations must honour ctx cancellation.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of sending them. It is used
// when no SMTP host is configured.
type LogMailer struct {
	log logging.Logger
}

// NewLogMailer returns a Mailer that only logs what it would send.
func NewLogMailer(log logging.Logger) *LogMailer { return &LogMailer{log: log} }

// Send logs the recipient and subject at info level and never fails.
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.Info(ctx, "mail not sent: smtp disabled", "to", msg.To, "subject", msg.Subject, "bytes", len(msg.HTML))
	return nil
}
