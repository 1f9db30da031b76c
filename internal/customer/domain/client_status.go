package domain

import (
	"math"
	"time"
)

// ActionStatus is the per-customer lifecycle classification produced by ClientStatusPolicy.
type ActionStatus struct {
	Status         ClientStatus
	Priority       Priority
	DaysOld        int
	HasCards       bool
	RequiresAction bool
	ActionMessage  string
}

// CustomerClientStatus pairs a classified customer with its client status.
type CustomerClientStatus struct {
	*CustomerWithExpiration
	ActionStatus ActionStatus
}

// ClientStatusPolicy assigns the client-status taxonomy used by the analysis views.
// Its age thresholds are deliberately separate from ActionRequiredPolicy.
type ClientStatusPolicy struct {
	// NewCustomerDays is the maximum age of a card-less customer still considered new.
	NewCustomerDays int
	// InactiveDays is the age after which a card-less customer needs no follow-up.
	InactiveDays int
}

// NewClientStatusPolicy returns the policy with the standard 180/365 day thresholds.
func NewClientStatusPolicy() ClientStatusPolicy {
	return ClientStatusPolicy{
		NewCustomerDays: 180,
		InactiveDays:    365,
	}
}

var actionMessages = map[ClientStatus]map[Priority]string{
	ClientExpiredCards: {
		PriorityCritical: "Card expired: contact the customer to update the payment method",
	},
	ClientExpiringCards: {
		PriorityHigh: "Card expiring soon: remind the customer to update the payment method",
	},
	ClientNewNeedsPayment: {
		PriorityHigh: "New customer without a card on file: collect a payment method",
	},
	ClientInactiveOld: {
		PriorityLow:  "No card on file for more than six months: confirm the account is still active",
		PriorityNone: "Inactive customer: no action needed",
	},
	ClientAllGood: {
		PriorityNone: "Payment methods are up to date",
	},
}

// RequiresAction reports whether a client status calls for staff follow-up.
func (s ClientStatus) RequiresAction() bool {
	switch s {
	case ClientExpiredCards, ClientExpiringCards, ClientNewNeedsPayment:
		return true
	default:
		return false
	}
}

// DaysSince returns floor((now - since) / 24h).
func DaysSince(since, now time.Time) int {
	return int(math.Floor(float64(now.Sub(since)) / float64(day)))
}

// Evaluate applies the client-status rules in strict priority order.
func (p ClientStatusPolicy) Evaluate(c *CustomerWithExpiration, now time.Time) ActionStatus {
	hasCards := c.HasCards()

	if c.Customer.CustomerSince == nil {
		status := ClientInactiveOld
		if hasCards {
			status = ClientAllGood
		}
		return p.build(status, PriorityNone, 0, hasCards, "Customer creation date unknown")
	}

	daysOld := DaysSince(*c.Customer.CustomerSince, now)

	switch {
	case hasCards && c.HasExpired:
		return p.build(ClientExpiredCards, PriorityCritical, daysOld, hasCards, "")
	case hasCards && c.HasExpiringSoon:
		return p.build(ClientExpiringCards, PriorityHigh, daysOld, hasCards, "")
	case !hasCards && daysOld <= p.NewCustomerDays:
		return p.build(ClientNewNeedsPayment, PriorityHigh, daysOld, hasCards, "")
	case !hasCards && daysOld > p.InactiveDays:
		return p.build(ClientInactiveOld, PriorityNone, daysOld, hasCards, "")
	case !hasCards:
		return p.build(ClientInactiveOld, PriorityLow, daysOld, hasCards, "")
	default:
		return p.build(ClientAllGood, PriorityNone, daysOld, hasCards, "")
	}
}

// EvaluateAll evaluates every customer, preserving input order.
func (p ClientStatusPolicy) EvaluateAll(customers []*CustomerWithExpiration, now time.Time) []*CustomerClientStatus {
	result := make([]*CustomerClientStatus, 0, len(customers))
	for _, c := range customers {
		result = append(result, &CustomerClientStatus{
			CustomerWithExpiration: c,
			ActionStatus:           p.Evaluate(c, now),
		})
	}
	return result
}

func (p ClientStatusPolicy) build(
	status ClientStatus,
	priority Priority,
	daysOld int,
	hasCards bool,
	message string,
) ActionStatus {
	if message == "" {
		message = actionMessages[status][priority]
	}
	return ActionStatus{
		Status:         status,
		Priority:       priority,
		DaysOld:        daysOld,
		HasCards:       hasCards,
		RequiresAction: status.RequiresAction(),
		ActionMessage:  message,
	}
}
