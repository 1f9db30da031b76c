package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardwatch/internal/customer/domain"
)

func TestCustomerQuery_Validate(t *testing.T) {
	t.Run("Success_Empty", func(t *testing.T) {
		q := CustomerQuery{}
		assert.NoError(t, q.Validate())
	})

	t.Run("Success_AllFields", func(t *testing.T) {
		q := CustomerQuery{
			Currency:       "cad",
			Status:         "Needs-Attention",
			Search:         "acme",
			AsOf:           "2026-11-20",
			RequiresAction: "true",
		}
		assert.NoError(t, q.Validate())
	})

	tests := []struct {
		name  string
		query CustomerQuery
	}{
		{"Error_InvalidCurrency", CustomerQuery{Currency: "EUR"}},
		{"Error_InvalidStatus", CustomerQuery{Status: "overdue"}},
		{"Error_InvalidAsOf", CustomerQuery{AsOf: "20/11/2026"}},
		{"Error_InvalidRequiresAction", CustomerQuery{RequiresAction: "yes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.query.Validate())
		})
	}
}

func TestCustomerQuery_Filter(t *testing.T) {
	t.Run("Success_AllFields", func(t *testing.T) {
		q := CustomerQuery{Currency: "usd", Status: "expired", Search: "  ada ", RequiresAction: "true"}

		filter, err := q.Filter()

		require.NoError(t, err)
		require.NotNil(t, filter.Currency)
		assert.Equal(t, domain.CurrencyUSD, *filter.Currency)
		assert.Equal(t, domain.StatusFilter(domain.StatusExpired), filter.Status)
		assert.Equal(t, "ada", filter.Search)
		assert.True(t, filter.RequiresActionOnly)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		filter, err := (&CustomerQuery{}).Filter()

		require.NoError(t, err)
		assert.Equal(t, domain.CustomerFilter{}, filter)
	})

	t.Run("Error_InvalidStatus", func(t *testing.T) {
		_, err := (&CustomerQuery{Status: "nope"}).Filter()
		assert.ErrorIs(t, err, domain.ErrInvalidStatusFilter)
	})
}

func TestParseAsOf(t *testing.T) {
	toronto, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)
	now := time.Date(2026, time.November, 20, 3, 0, 0, 0, time.UTC)

	t.Run("Success_DefaultsToNowInLocation", func(t *testing.T) {
		got, err := ParseAsOf("", now, toronto)

		require.NoError(t, err)
		assert.True(t, got.Equal(now))
		assert.Equal(t, toronto, got.Location())
		assert.Equal(t, 19, got.Day())
	})

	t.Run("Success_MidnightInLocation", func(t *testing.T) {
		got, err := ParseAsOf("2026-12-01", now, toronto)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, toronto), got)
	})

	t.Run("Success_NilLocationIsUTC", func(t *testing.T) {
		got, err := ParseAsOf("2026-12-01", now, nil)

		require.NoError(t, err)
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("Error_Malformed", func(t *testing.T) {
		_, err := ParseAsOf("tomorrow", now, toronto)
		assert.Error(t, err)
	})
}

func TestSyncRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SyncRequest{}).Validate())
	assert.NoError(t, (&SyncRequest{Currency: "USD"}).Validate())
	assert.Error(t, (&SyncRequest{Currency: "GBP"}).Validate())
}

func TestReportQuery(t *testing.T) {
	t.Run("Success_AllMerchants", func(t *testing.T) {
		q := ReportQuery{}
		require.NoError(t, q.Validate())

		currency, err := q.CurrencyFilter()

		require.NoError(t, err)
		assert.Nil(t, currency)
	})

	t.Run("Success_OneMerchant", func(t *testing.T) {
		q := ReportQuery{Currency: "cad", AsOf: "2026-11-20"}
		require.NoError(t, q.Validate())

		currency, err := q.CurrencyFilter()

		require.NoError(t, err)
		require.NotNil(t, currency)
		assert.Equal(t, domain.CurrencyCAD, *currency)
	})

	t.Run("Error_InvalidAsOf", func(t *testing.T) {
		q := ReportQuery{AsOf: "2026-13-01"}
		assert.Error(t, q.Validate())
	})
}
