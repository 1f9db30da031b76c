package domain

import "time"

// ExpirationReport is the content of the periodic expiration report, grouped by the
// section each customer appears in. A customer appears in every section it qualifies for.
type ExpirationReport struct {
	GeneratedAt time.Time
	// Currency is nil when the report covers every merchant account.
	Currency       *Currency
	Summary        SummaryStatistics
	Expired        []*CustomerWithExpiration
	ExpiringSoon   []*CustomerWithExpiration
	ExpiringLater  []*CustomerWithExpiration
	ActionRequired []*CustomerWithExpiration
}

// BuildExpirationReport groups an already classified population into report sections
// and ranks the action-required section with the given policy.
func BuildExpirationReport(
	customers []*CustomerWithExpiration,
	policy ActionRequiredPolicy,
	currency *Currency,
	now time.Time,
) *ExpirationReport {
	report := &ExpirationReport{
		GeneratedAt:    now,
		Currency:       currency,
		Summary:        Summarize(customers),
		Expired:        make([]*CustomerWithExpiration, 0),
		ExpiringSoon:   make([]*CustomerWithExpiration, 0),
		ExpiringLater:  make([]*CustomerWithExpiration, 0),
		ActionRequired: policy.Filter(customers, now),
	}

	for _, c := range customers {
		if c.HasStatus(StatusExpired) {
			report.Expired = append(report.Expired, c)
		}
		if c.HasStatus(StatusExpiringSoon) {
			report.ExpiringSoon = append(report.ExpiringSoon, c)
		}
		if c.HasStatus(StatusExpiringLater) {
			report.ExpiringLater = append(report.ExpiringLater, c)
		}
	}

	return report
}
