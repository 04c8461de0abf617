// Package queue defines message payloads exchanged over the message broker
// and the consumer that turns them into outbound email.
package queue

import (
	"fmt"

	"github.com/iliyamo/trendaura-auth/internal/mail"
)

// Event kinds carried in EmailEvent.Kind.
const (
	KindVerification = "verification"
	KindLogin        = "login"
)

// EmailEvent asks a consumer to send one templated email. It carries
// everything the template needs so the consumer never queries the database.
type EmailEvent struct {
	Kind      string `json:"kind"`
	To        string `json:"to"`
	FirstName string `json:"first_name,omitempty"`
	Code      string `json:"code,omitempty"`
	QueuedAt  string `json:"queued_at"`
}

// Render builds the message an event describes.
func Render(ev EmailEvent) (mail.Message, error) {
	switch ev.Kind {
	case KindVerification:
		return mail.Verification(ev.To, ev.FirstName, ev.Code)
	case KindLogin:
		return mail.LoginNotification(ev.To, ev.FirstName)
	default:
		return mail.Message{}, fmt.Errorf("unknown email kind %q", ev.Kind)
	}
}
