package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/cardwatch/internal/customer/domain"
)

// MockCustomerUseCase is a mock implementation of CustomerUseCase for testing.
type MockCustomerUseCase struct {
	mock.Mock
}

// List mocks the List method of CustomerUseCase.
func (m *MockCustomerUseCase) List(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) ([]*domain.CustomerWithExpiration, error) {
	args := m.Called(ctx, now, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CustomerWithExpiration), args.Error(1)
}

// Get mocks the Get method of CustomerUseCase.
func (m *MockCustomerUseCase) Get(
	ctx context.Context,
	now time.Time,
	currency domain.Currency,
	id string,
) (*domain.CustomerWithExpiration, error) {
	args := m.Called(ctx, now, currency, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerWithExpiration), args.Error(1)
}

// ActionRequired mocks the ActionRequired method of CustomerUseCase.
func (m *MockCustomerUseCase) ActionRequired(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) ([]*domain.CustomerWithExpiration, error) {
	args := m.Called(ctx, now, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CustomerWithExpiration), args.Error(1)
}

// ClientStatuses mocks the ClientStatuses method of CustomerUseCase.
func (m *MockCustomerUseCase) ClientStatuses(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) ([]*domain.CustomerClientStatus, error) {
	args := m.Called(ctx, now, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CustomerClientStatus), args.Error(1)
}

// Summary mocks the Summary method of CustomerUseCase.
func (m *MockCustomerUseCase) Summary(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) (domain.SummaryStatistics, error) {
	args := m.Called(ctx, now, filter)
	return args.Get(0).(domain.SummaryStatistics), args.Error(1)
}

// MockSyncUseCase is a mock implementation of SyncUseCase for testing.
type MockSyncUseCase struct {
	mock.Mock
}

// Sync mocks the Sync method of SyncUseCase.
func (m *MockSyncUseCase) Sync(ctx context.Context, currency domain.Currency) (*domain.SyncRun, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncRun), args.Error(1)
}

// SyncAll mocks the SyncAll method of SyncUseCase.
func (m *MockSyncUseCase) SyncAll(ctx context.Context) ([]*domain.SyncRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SyncRun), args.Error(1)
}

// LatestRuns mocks the LatestRuns method of SyncUseCase.
func (m *MockSyncUseCase) LatestRuns(ctx context.Context) ([]*domain.SyncRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SyncRun), args.Error(1)
}

// MockReportUseCase is a mock implementation of ReportUseCase for testing.
type MockReportUseCase struct {
	mock.Mock
}

// Build mocks the Build method of ReportUseCase.
func (m *MockReportUseCase) Build(
	ctx context.Context,
	now time.Time,
	currency *domain.Currency,
) (*domain.ExpirationReport, error) {
	args := m.Called(ctx, now, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpirationReport), args.Error(1)
}

// RenderPDF mocks the RenderPDF method of ReportUseCase. A string second return value
// is written to w.
func (m *MockReportUseCase) RenderPDF(report *domain.ExpirationReport, w io.Writer) error {
	args := m.Called(report, w)
	if len(args) > 1 {
		if content, ok := args.Get(1).(string); ok {
			if _, err := io.WriteString(w, content); err != nil {
				return err
			}
		}
	}
	return args.Error(0)
}

// Send mocks the Send method of ReportUseCase.
func (m *MockReportUseCase) Send(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}
