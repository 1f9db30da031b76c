package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusFilter(t *testing.T) {
	for _, value := range []string{"", "expired", "Expiring-Soon", "expiring-later", "valid", "no-expiration", " needs-attention "} {
		_, err := ParseStatusFilter(value)
		assert.NoError(t, err, value)
	}

	_, err := ParseStatusFilter("overdue")
	assert.ErrorIs(t, err, ErrInvalidStatusFilter)
}

func TestStatusFilter_Matches(t *testing.T) {
	expired := ClassifyCustomer(customerWith(cardWith("a", "0926")), referenceNow)
	later := ClassifyCustomer(customerWith(cardWith("a", "1226")), referenceNow)
	undated := ClassifyCustomer(customerWith(Card{ID: "x"}), referenceNow)

	assert.True(t, StatusFilter("").Matches(later))
	assert.True(t, StatusFilterNeedsAttention.Matches(expired))
	assert.False(t, StatusFilterNeedsAttention.Matches(later))
	assert.True(t, StatusFilter(StatusExpiringLater).Matches(later))
	assert.False(t, StatusFilter(StatusExpired).Matches(later))
	assert.True(t, StatusFilter(StatusNoExpiration).Matches(undated))
}

func TestMatchesSearch(t *testing.T) {
	c := customerWith(cardWith("a", "1126"))
	c.BusinessName = "Analytical Engines"
	c.Emails = []string{"ada@example.com"}

	tests := []struct {
		term     string
		expected bool
	}{
		{"", true},
		{"ada lovelace", true},
		{"ENGINES", true},
		{"4242", true},
		{"example.com", true},
		{"cust-1", true},
		{"babbage", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MatchesSearch(c, tt.term), tt.term)
	}
}

func TestBuildExpirationReport(t *testing.T) {
	old := cleanupCutoff.AddDate(-5, 0, 0)
	customers := ClassifyCustomers([]*Customer{
		businessCustomer("mixed", old, cardWith("x", "1026"), cardWith("y", "1126")),
		businessCustomer("later", old, cardWith("x", "1226")),
		customerWith(cardWith("x", "0628")),
	}, referenceNow)
	currency := CurrencyUSD

	report := BuildExpirationReport(customers, NewActionRequiredPolicy(cleanupCutoff), &currency, referenceNow)

	assert.Equal(t, referenceNow, report.GeneratedAt)
	assert.Equal(t, &currency, report.Currency)
	assert.Equal(t, 3, report.Summary.TotalCustomers)
	require.Len(t, report.Expired, 1)
	assert.Equal(t, "mixed", report.Expired[0].Customer.ID)
	require.Len(t, report.ExpiringSoon, 1)
	require.Len(t, report.ExpiringLater, 1)
	assert.Equal(t, "later", report.ExpiringLater[0].Customer.ID)
	require.Len(t, report.ActionRequired, 1)
	assert.Equal(t, "mixed", report.ActionRequired[0].Customer.ID)
}
