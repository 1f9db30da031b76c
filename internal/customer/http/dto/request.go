// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/cardwatch/internal/customer/domain"
	customValidation "github.com/allisson/cardwatch/internal/validation"
)

// DateLayout is the layout of the as_of query parameter.
const DateLayout = "2006-01-02"

var statusFilters = []interface{}{
	string(domain.StatusFilterNeedsAttention),
	string(domain.StatusExpired),
	string(domain.StatusExpiringSoon),
	string(domain.StatusExpiringLater),
	string(domain.StatusValid),
	string(domain.StatusNoExpiration),
}

// CustomerQuery holds the query parameters shared by the customer views.
type CustomerQuery struct {
	Currency       string `form:"currency"`
	Status         string `form:"status"`
	Search         string `form:"search"`
	AsOf           string `form:"as_of"`
	RequiresAction string `form:"requires_action"`
}

// Validate checks if the customer query is valid.
func (q *CustomerQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.Currency, customValidation.Currency),
		validation.Field(&q.Status,
			validation.By(func(value interface{}) error {
				return validation.In(statusFilters...).Validate(strings.ToLower(value.(string)))
			}),
		),
		validation.Field(&q.Search, validation.Length(0, 255)),
		validation.Field(&q.AsOf, customValidation.Date),
		validation.Field(&q.RequiresAction, validation.In("true", "false")),
	)
}

// Filter converts a validated query into a domain filter.
func (q *CustomerQuery) Filter() (domain.CustomerFilter, error) {
	filter := domain.CustomerFilter{
		Search:             strings.TrimSpace(q.Search),
		RequiresActionOnly: q.RequiresAction == "true",
	}

	if q.Currency != "" {
		currency, err := domain.ParseCurrency(q.Currency)
		if err != nil {
			return domain.CustomerFilter{}, err
		}
		filter.Currency = &currency
	}

	status, err := domain.ParseStatusFilter(q.Status)
	if err != nil {
		return domain.CustomerFilter{}, err
	}
	filter.Status = status

	return filter, nil
}

// ReferenceTime resolves the instant the classification runs against. An as_of date is
// midnight of that day in loc; otherwise it is now expressed in loc.
func (q *CustomerQuery) ReferenceTime(now time.Time, loc *time.Location) (time.Time, error) {
	return ParseAsOf(q.AsOf, now, loc)
}

// ParseAsOf parses an optional YYYY-MM-DD date in loc, falling back to now in loc.
func ParseAsOf(asOf string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if asOf == "" {
		return now.In(loc), nil
	}
	return time.ParseInLocation(DateLayout, asOf, loc)
}

// SyncRequest selects the merchant account to synchronize. An empty currency syncs all.
type SyncRequest struct {
	Currency string `form:"currency"`
}

// Validate checks if the sync request is valid.
func (r *SyncRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Currency, customValidation.Currency),
	)
}

// ReportQuery holds the query parameters of the report download.
type ReportQuery struct {
	Currency string `form:"currency"`
	AsOf     string `form:"as_of"`
}

// Validate checks if the report query is valid.
func (q *ReportQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.Currency, customValidation.Currency),
		validation.Field(&q.AsOf, customValidation.Date),
	)
}

// CurrencyFilter returns the selected merchant account, nil for all.
func (q *ReportQuery) CurrencyFilter() (*domain.Currency, error) {
	if q.Currency == "" {
		return nil, nil
	}
	currency, err := domain.ParseCurrency(q.Currency)
	if err != nil {
		return nil, err
	}
	return &currency, nil
}
