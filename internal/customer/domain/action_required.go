package domain

import (
	"sort"
	"time"
)

// Urgency ranks used to order the action-required worklist.
const (
	UrgencyNone         = 0
	UrgencyNoCards      = 1
	UrgencyExpiringSoon = 2
	UrgencyExpired      = 3
)

// ActionRequiredPolicy decides which business customers belong on the staff follow-up
// worklist. It is independent from ClientStatusPolicy and uses its own windows.
type ActionRequiredPolicy struct {
	// CleanupCutoff is the historical cleanup boundary: customers without cards created
	// at or after it count as new.
	CleanupCutoff time.Time
	// NewCustomerWindow is how far back a customer with cards still counts as new.
	NewCustomerWindow time.Duration
	// RecentExpiryDays bounds how long ago an expired card may have expired and still
	// put the customer on the worklist.
	RecentExpiryDays int
}

// NewActionRequiredPolicy returns the policy with the standard 90-day new-customer window
// and 180-day recent-expiry window.
func NewActionRequiredPolicy(cleanupCutoff time.Time) ActionRequiredPolicy {
	return ActionRequiredPolicy{
		CleanupCutoff:     cleanupCutoff,
		NewCustomerWindow: 90 * day,
		RecentExpiryDays:  180,
	}
}

// IsNewCustomer reports whether the customer counts as new at now.
func (p ActionRequiredPolicy) IsNewCustomer(c *CustomerWithExpiration, now time.Time) bool {
	since := c.Customer.CustomerSince
	if since == nil {
		return false
	}
	if !c.HasCards() {
		return !since.Before(p.CleanupCutoff)
	}
	return !since.Before(now.Add(-p.NewCustomerWindow))
}

// HasRecentlyExpiredCard reports whether a card expired no more than RecentExpiryDays ago.
func (p ActionRequiredPolicy) HasRecentlyExpiredCard(c *CustomerWithExpiration) bool {
	for i := range c.Expirations {
		e := &c.Expirations[i]
		if e.Status == StatusExpired && -e.DaysUntilExpiration <= p.RecentExpiryDays {
			return true
		}
	}
	return false
}

// Requires reports whether the customer needs staff follow-up. Only customers with a
// business name qualify; walk-in consumers are never on the worklist.
func (p ActionRequiredPolicy) Requires(c *CustomerWithExpiration, now time.Time) bool {
	if !c.Customer.HasBusinessName() {
		return false
	}
	return p.IsNewCustomer(c, now) || c.HasExpiringSoon || p.HasRecentlyExpiredCard(c)
}

// UrgencyRank returns the ordinal used to sort the worklist, higher is more urgent.
func (p ActionRequiredPolicy) UrgencyRank(c *CustomerWithExpiration) int {
	switch {
	case c.HasExpired:
		return UrgencyExpired
	case c.HasExpiringSoon:
		return UrgencyExpiringSoon
	case !c.HasCards():
		return UrgencyNoCards
	default:
		return UrgencyNone
	}
}

// Filter keeps the customers requiring action and orders them by urgency, most urgent
// first. Customers with the same rank keep their input order.
func (p ActionRequiredPolicy) Filter(customers []*CustomerWithExpiration, now time.Time) []*CustomerWithExpiration {
	result := make([]*CustomerWithExpiration, 0)
	for _, c := range customers {
		if p.Requires(c, now) {
			result = append(result, c)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return p.UrgencyRank(result[i]) > p.UrgencyRank(result[j])
	})

	return result
}
