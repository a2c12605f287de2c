package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/message"
	"github.com/SuperShot3/order-form/internal/service"
)

// MockParseService is a mock implementation of service.ParseService.
type MockParseService struct {
	mock.Mock
}

func (m *MockParseService) Parse(ctx context.Context, rawText string) (*domain.ParseResult, error) {
	args := m.Called(ctx, rawText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseResult), args.Error(1)
}

func (m *MockParseService) Status(ctx context.Context) domain.ParseStatus {
	args := m.Called(ctx)
	return args.Get(0).(domain.ParseStatus)
}

func (m *MockParseService) TestConnection(ctx context.Context) domain.ConnectionCheck {
	args := m.Called(ctx)
	return args.Get(0).(domain.ConnectionCheck)
}

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderService) Summary(ctx context.Context, filter domain.OrderFilter) (*domain.OrderSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderSummary), args.Error(1)
}

func (m *MockOrderService) Messages(ctx context.Context, orderID string) (map[message.Kind]string, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[message.Kind]string), args.Error(1)
}

// MockSettingsService is a mock implementation of service.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, updates domain.SettingsUpdate) (domain.Settings, error) {
	args := m.Called(ctx, updates)
	return args.Get(0).(domain.Settings), args.Error(1)
}

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) DriverReport(ctx context.Context, date string) (*service.Report, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Report), args.Error(1)
}

func (m *MockReportService) FinanceReport(ctx context.Context, startDate, endDate string) (*service.Report, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Report), args.Error(1)
}

func (m *MockReportService) OrdersExport(ctx context.Context, filter domain.OrderFilter) (*service.Report, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Report), args.Error(1)
}

func (m *MockReportService) EmailDriverReport(ctx context.Context, date, toEmail string) error {
	args := m.Called(ctx, date, toEmail)
	return args.Error(0)
}
