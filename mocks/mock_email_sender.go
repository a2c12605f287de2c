package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SuperShot3/order-form/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReport(ctx context.Context, toEmail, subject, body string, attachment *port.ReportAttachment) error {
	args := m.Called(ctx, toEmail, subject, body, attachment)
	return args.Error(0)
}
