package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/cardwatch/internal/customer/domain"
)

func TestReportHandler_ExpirationPDFHandler(t *testing.T) {
	t.Run("Success_AllMerchants", func(t *testing.T) {
		handler, useCase := setupReportHandler(t)
		report := &domain.ExpirationReport{GeneratedAt: fixedNow}
		useCase.On("Build", mock.Anything, fixedNow, (*domain.Currency)(nil)).Return(report, nil).Once()
		useCase.On("RenderPDF", report, mock.Anything).Return(nil, "%PDF-1.3 fake").Once()

		c, w := createTestContext(http.MethodGet, "/v1/reports/expiration.pdf")
		handler.ExpirationPDFHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "card-expiration-report.pdf")
		assert.Equal(t, "%PDF-1.3 fake", w.Body.String())
	})

	t.Run("Success_OneMerchantAsOf", func(t *testing.T) {
		handler, useCase := setupReportHandler(t)
		asOf := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
		report := &domain.ExpirationReport{GeneratedAt: asOf}
		useCase.On("Build", mock.Anything, asOf, mock.MatchedBy(func(currency *domain.Currency) bool {
			return currency != nil && *currency == domain.CurrencyUSD
		})).Return(report, nil).Once()
		useCase.On("RenderPDF", report, mock.Anything).Return(nil, "%PDF").Once()

		c, w := createTestContext(http.MethodGet, "/v1/reports/expiration.pdf?currency=usd&as_of=2026-12-01")
		handler.ExpirationPDFHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_InvalidAsOf", func(t *testing.T) {
		handler, _ := setupReportHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/reports/expiration.pdf?as_of=12-01-2026")
		handler.ExpirationPDFHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_RenderFails", func(t *testing.T) {
		handler, useCase := setupReportHandler(t)
		report := &domain.ExpirationReport{GeneratedAt: fixedNow}
		useCase.On("Build", mock.Anything, fixedNow, (*domain.Currency)(nil)).Return(report, nil).Once()
		useCase.On("RenderPDF", report, mock.Anything).Return(assert.AnError).Once()

		c, w := createTestContext(http.MethodGet, "/v1/reports/expiration.pdf")
		handler.ExpirationPDFHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})
}
