package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardwatch/internal/customer/domain"
	customerMocks "github.com/allisson/cardwatch/internal/customer/usecase/mocks"
)

var (
	testNow    = time.Date(2026, time.November, 20, 0, 0, 0, 0, time.UTC)
	testCutoff = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	longAgo    = time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
)

func testCard(id, code string) domain.Card {
	return domain.Card{ID: id, Last4: "4242", ExpirationCode: &code}
}

func testCustomer(id, lastName, business string, since *time.Time, cards ...domain.Card) *domain.Customer {
	return &domain.Customer{
		ID:            id,
		Currency:      domain.CurrencyUSD,
		FirstName:     "Pat",
		LastName:      lastName,
		BusinessName:  business,
		CustomerSince: since,
		Cards:         cards,
	}
}

func newCustomerUseCase(repo CustomerRepository) CustomerUseCase {
	return NewCustomerUseCase(repo, domain.NewActionRequiredPolicy(testCutoff), domain.NewClientStatusPolicy())
}

func fixtureCustomers() []*domain.Customer {
	since := longAgo
	recent := testNow.AddDate(0, 0, -30)
	return []*domain.Customer{
		testCustomer("1", "Adams", "Adams Bakery", &since, testCard("a", "1026")),
		testCustomer("2", "Baker", "", &since, testCard("b", "1126")),
		testCustomer("3", "Clark", "Clark Co", &recent),
		testCustomer("4", "Dunn", "Dunn Ltd", &since, testCard("d", "0628")),
	}
}

func TestCustomerUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_AllCustomers", func(t *testing.T) {
		repo := &customerMocks.MockCustomerRepository{}
		repo.On("List", ctx, (*domain.Currency)(nil)).Return(fixtureCustomers(), nil).Once()

		result, err := newCustomerUseCase(repo).List(ctx, testNow, domain.CustomerFilter{})

		require.NoError(t, err)
		require.Len(t, result, 4)
		assert.True(t, result[0].HasExpired)
		assert.True(t, result[1].HasExpiringSoon)
		repo.AssertExpectations(t)
	})

	t.Run("Success_StatusAndSearch", func(t *testing.T) {
		repo := &customerMocks.MockCustomerRepository{}
		currency := domain.CurrencyUSD
		repo.On("List", ctx, &currency).Return(fixtureCustomers(), nil).Once()

		result, err := newCustomerUseCase(repo).List(ctx, testNow, domain.CustomerFilter{
			Currency: &currency,
			Status:   domain.StatusFilterNeedsAttention,
			Search:   "bak",
		})

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "1", result[0].Customer.ID)
		assert.Equal(t, "2", result[1].Customer.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Error_Repository", func(t *testing.T) {
		repo := &customerMocks.MockCustomerRepository{}
		repo.On("List", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()

		result, err := newCustomerUseCase(repo).List(ctx, testNow, domain.CustomerFilter{})

		assert.Nil(t, result)
		assert.EqualError(t, err, "db down")
	})
}

func TestCustomerUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := &customerMocks.MockCustomerRepository{}
		customer := fixtureCustomers()[1]
		repo.On("Get", ctx, domain.CurrencyUSD, "2").Return(customer, nil).Once()

		result, err := newCustomerUseCase(repo).Get(ctx, testNow, domain.CurrencyUSD, "2")

		require.NoError(t, err)
		assert.Same(t, customer, result.Customer)
		assert.Equal(t, 10, result.Expirations[0].DaysUntilExpiration)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := &customerMocks.MockCustomerRepository{}
		repo.On("Get", ctx, domain.CurrencyCAD, "x").Return(nil, domain.ErrCustomerNotFound).Once()

		_, err := newCustomerUseCase(repo).Get(ctx, testNow, domain.CurrencyCAD, "x")

		assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	})
}

func TestCustomerUseCase_ActionRequired(t *testing.T) {
	ctx := context.Background()
	repo := &customerMocks.MockCustomerRepository{}
	repo.On("List", ctx, (*domain.Currency)(nil)).Return(fixtureCustomers(), nil).Once()

	result, err := newCustomerUseCase(repo).ActionRequired(ctx, testNow, domain.CustomerFilter{})

	require.NoError(t, err)
	ids := make([]string, 0, len(result))
	for _, c := range result {
		ids = append(ids, c.Customer.ID)
	}
	// Baker has no business name; Dunn's card is valid and the account is old.
	assert.Equal(t, []string{"1", "3"}, ids)
}

func TestCustomerUseCase_ClientStatuses(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_All", func(t *testing.T) {
		repo := &customerMocks.MockCustomerRepository{}
		repo.On("List", ctx, (*domain.Currency)(nil)).Return(fixtureCustomers(), nil).Once()

		result, err := newCustomerUseCase(repo).ClientStatuses(ctx, testNow, domain.CustomerFilter{})

		require.NoError(t, err)
		require.Len(t, result, 4)
		assert.Equal(t, domain.ClientExpiredCards, result[0].ActionStatus.Status)
		assert.Equal(t, domain.ClientExpiringCards, result[1].ActionStatus.Status)
		assert.Equal(t, domain.ClientNewNeedsPayment, result[2].ActionStatus.Status)
		assert.Equal(t, domain.ClientAllGood, result[3].ActionStatus.Status)
	})

	t.Run("Success_RequiresActionOnly", func(t *testing.T) {
		repo := &customerMocks.MockCustomerRepository{}
		repo.On("List", ctx, (*domain.Currency)(nil)).Return(fixtureCustomers(), nil).Once()

		result, err := newCustomerUseCase(repo).ClientStatuses(ctx, testNow, domain.CustomerFilter{RequiresActionOnly: true})

		require.NoError(t, err)
		assert.Len(t, result, 3)
		for _, status := range result {
			assert.True(t, status.ActionStatus.RequiresAction)
		}
	})
}

func TestCustomerUseCase_Summary(t *testing.T) {
	ctx := context.Background()
	repo := &customerMocks.MockCustomerRepository{}
	repo.On("List", ctx, (*domain.Currency)(nil)).Return(fixtureCustomers(), nil).Once()

	summary, err := newCustomerUseCase(repo).Summary(ctx, testNow, domain.CustomerFilter{})

	require.NoError(t, err)
	assert.Equal(t, domain.SummaryStatistics{
		TotalCustomers: 4,
		TotalCards:     3,
		Expired:        domain.StatusCount{Customers: 1, Cards: 1},
		ExpiringSoon:   domain.StatusCount{Customers: 1, Cards: 1},
	}, summary)
}
