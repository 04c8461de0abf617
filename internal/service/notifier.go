package service

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/trendaura-auth/internal/logging"
	"github.com/iliyamo/trendaura-auth/internal/mail"
	"github.com/iliyamo/trendaura-auth/internal/queue"
)

const notifyTimeout = 10 * time.Second

// Notifier dispatches email events without blocking the request that
// caused them. Failures are logged and never reach the caller.
type Notifier struct {
	send func(ctx context.Context, ev queue.EmailEvent) error
	log  logging.Logger
	now  func() time.Time
	wg   sync.WaitGroup
}

// NewQueueNotifier publishes events to RabbitMQ for the notification
// consumer to deliver.
func NewQueueNotifier(url, queueName string, log logging.Logger) *Notifier {
	return newNotifier(func(ctx context.Context, ev queue.EmailEvent) error {
		return PublishEmailEvent(ctx, url, queueName, ev)
	}, log)
}

// NewDirectNotifier renders and sends events in-process. Used when the
// broker is disabled.
func NewDirectNotifier(mailer mail.Mailer, log logging.Logger) *Notifier {
	return newNotifier(func(ctx context.Context, ev queue.EmailEvent) error {
		msg, err := queue.Render(ev)
		if err != nil {
			return err
		}
		return mailer.Send(ctx, msg)
	}, log)
}

func newNotifier(send func(context.Context, queue.EmailEvent) error, log logging.Logger) *Notifier {
	return &Notifier{send: send, log: log.With("component", "notifier"), now: time.Now}
}

// VerificationEmail queues the email carrying a verification code.
func (n *Notifier) VerificationEmail(to, firstName, code string) {
	n.Enqueue(queue.EmailEvent{Kind: queue.KindVerification, To: to, FirstName: firstName, Code: code})
}

// LoginNotification queues the "successful login" email.
func (n *Notifier) LoginNotification(to, firstName string) {
	n.Enqueue(queue.EmailEvent{Kind: queue.KindLogin, To: to, FirstName: firstName})
}

// Enqueue dispatches ev on its own goroutine with a detached context, so the
// request finishing does not cancel delivery.
func (n *Notifier) Enqueue(ev queue.EmailEvent) {
	if ev.QueuedAt == "" {
		ev.QueuedAt = n.now().UTC().Format(time.RFC3339)
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := n.send(ctx, ev); err != nil {
			n.log.Warn(ctx, "email dispatch failed", "kind", ev.Kind, "to", ev.To, "error", err)
		}
	}()
}

// Wait blocks until every dispatched event has finished.
func (n *Notifier) Wait() { n.wg.Wait() }
