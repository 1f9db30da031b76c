// Package mocks provides mock implementations of the customer use case dependencies.
package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/cardwatch/internal/customer/domain"
	"github.com/allisson/cardwatch/internal/customer/platform"
)

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

// ReplaceMerchant mocks the ReplaceMerchant method of CustomerRepository.
func (m *MockCustomerRepository) ReplaceMerchant(
	ctx context.Context,
	currency domain.Currency,
	customers []*domain.Customer,
) error {
	args := m.Called(ctx, currency, customers)
	return args.Error(0)
}

// List mocks the List method of CustomerRepository.
func (m *MockCustomerRepository) List(ctx context.Context, currency *domain.Currency) ([]*domain.Customer, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Customer), args.Error(1)
}

// Get mocks the Get method of CustomerRepository.
func (m *MockCustomerRepository) Get(ctx context.Context, currency domain.Currency, id string) (*domain.Customer, error) {
	args := m.Called(ctx, currency, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// Fingerprints mocks the Fingerprints method of CustomerRepository.
func (m *MockCustomerRepository) Fingerprints(ctx context.Context, currency domain.Currency) (map[string]string, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockSyncRunRepository is a mock implementation of SyncRunRepository.
type MockSyncRunRepository struct {
	mock.Mock
}

// Create mocks the Create method of SyncRunRepository.
func (m *MockSyncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// Latest mocks the Latest method of SyncRunRepository.
func (m *MockSyncRunRepository) Latest(ctx context.Context, currency domain.Currency) (*domain.SyncRun, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncRun), args.Error(1)
}

// MockPlatformClient is a mock implementation of PlatformClient.
type MockPlatformClient struct {
	mock.Mock
}

// ListCustomers mocks the ListCustomers method of PlatformClient.
func (m *MockPlatformClient) ListCustomers(
	ctx context.Context,
	currency domain.Currency,
) ([]platform.RawCustomer, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]platform.RawCustomer), args.Error(1)
}

// MockReportRenderer is a mock implementation of ReportRenderer. When the expectation
// carries a string as its second return value it is written to w.
type MockReportRenderer struct {
	mock.Mock
}

// Render mocks the Render method of ReportRenderer.
func (m *MockReportRenderer) Render(report *domain.ExpirationReport, w io.Writer) error {
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
