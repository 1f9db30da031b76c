package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardwatch/internal/customer/domain"
)

var (
	reportNow    = time.Date(2026, time.November, 20, 13, 0, 0, 0, time.UTC)
	reportCutoff = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func reportFixture(t *testing.T) *domain.ExpirationReport {
	t.Helper()
	expired, soon, later := "1026", "1126", "0127"
	since := time.Date(2021, time.May, 3, 0, 0, 0, 0, time.UTC)
	customers := domain.ClassifyCustomers([]*domain.Customer{
		{
			ID: "1", Currency: domain.CurrencyCAD, FirstName: "Zoë", LastName: "Tremblay",
			BusinessName: "Café Montréal", CustomerSince: &since,
			Cards: []domain.Card{
				{First6: "411111", Last4: "4242", ExpirationCode: &expired},
				{First6: "520000", Last4: "0001", ExpirationCode: &soon},
			},
		},
		{
			ID: "2", Currency: domain.CurrencyUSD, FirstName: "Ada", LastName: "Lovelace",
			Cards: []domain.Card{{Last4: "0005", ExpirationCode: &later}},
		},
	}, reportNow)
	return domain.BuildExpirationReport(customers, domain.NewActionRequiredPolicy(reportCutoff), nil, reportNow)
}

func TestPDFRenderer_Render(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		toronto, err := time.LoadLocation("America/Toronto")
		require.NoError(t, err)
		renderer := NewPDFRenderer(toronto)
		renderer.compression = false
		var buf bytes.Buffer

		require.NoError(t, renderer.Render(reportFixture(t), &buf))

		content := buf.String()
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		assert.Contains(t, content, "Card expiration report")
		assert.Contains(t, content, "Action required \\(1\\)")
		assert.Contains(t, content, "411111******4242")
		assert.Contains(t, content, "Lovelace")
		assert.Contains(t, content, "Expired card on file")
	})

	t.Run("Success_EmptyReport", func(t *testing.T) {
		currency := domain.CurrencyUSD
		report := domain.BuildExpirationReport(nil, domain.NewActionRequiredPolicy(reportCutoff), &currency, reportNow)
		var buf bytes.Buffer

		require.NoError(t, NewPDFRenderer(nil).Render(report, &buf))

		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	})
}

func TestActionReason(t *testing.T) {
	code := "0628"
	tests := []struct {
		name     string
		customer *domain.CustomerWithExpiration
		expected string
	}{
		{"Expired", &domain.CustomerWithExpiration{Customer: &domain.Customer{}, HasExpired: true, HasExpiringSoon: true}, "Expired card on file"},
		{"ExpiringSoon", &domain.CustomerWithExpiration{Customer: &domain.Customer{}, HasExpiringSoon: true}, "Card expiring soon"},
		{"NoCards", &domain.CustomerWithExpiration{Customer: &domain.Customer{}}, "No card on file"},
		{"New", &domain.CustomerWithExpiration{Customer: &domain.Customer{Cards: []domain.Card{{ExpirationCode: &code}}}}, "New customer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, actionReason(tt.customer))
		})
	}
}
