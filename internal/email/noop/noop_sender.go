package noop

import (
	"context"
	"log"

	"github.com/SuperShot3/order-form/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReport(_ context.Context, toEmail, subject, _ string, attachment *port.ReportAttachment) error {
	name := "(none)"
	if attachment != nil {
		name = attachment.Filename
	}
	log.Printf("[NOOP EMAIL] Report email to %s: %q, attachment %s", toEmail, subject, name)
	return nil
}
