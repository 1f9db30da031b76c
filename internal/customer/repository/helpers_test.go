package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardwatch/internal/customer/domain"
)

var (
	syncedAt      = time.Date(2026, time.November, 20, 6, 0, 0, 0, time.UTC)
	customerSince = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func customerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "currency", "first_name", "last_name", "business_name", "customer_since",
		"marketing_consent", "emails", "phones", "addresses", "fingerprint", "synced_at",
	})
}

func cardRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"currency", "customer_id", "card_id", "first6", "last4", "cardholder_first_name",
		"cardholder_last_name", "expiration_code", "card_type",
	})
}

func sampleCustomer() *domain.Customer {
	code := "1126"
	since := customerSince
	return &domain.Customer{
		ID:            "1042",
		Currency:      domain.CurrencyUSD,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		BusinessName:  "Analytical Engines",
		CustomerSince: &since,
		Cards: []domain.Card{
			{ID: "c1", First6: "411111", Last4: "4242", ExpirationCode: &code, CardType: "VI"},
			{ID: "c2", Last4: "0005"},
		},
		Emails:      []string{"ada@example.com"},
		Addresses:   []domain.Address{{Line1: "1 Main St", City: "Toronto"}},
		Fingerprint: "abc123",
		SyncedAt:    syncedAt,
	}
}
