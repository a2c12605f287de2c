package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/port"
)

// MockFieldExtractor is a mock implementation of port.FieldExtractor.
type MockFieldExtractor struct {
	mock.Mock
}

func (m *MockFieldExtractor) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockFieldExtractor) Extract(ctx context.Context, rawText string) (*port.ExtractOutput, error) {
	args := m.Called(ctx, rawText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ExtractOutput), args.Error(1)
}

func (m *MockFieldExtractor) CheckConnection(ctx context.Context) domain.ConnectionCheck {
	args := m.Called(ctx)
	return args.Get(0).(domain.ConnectionCheck)
}
