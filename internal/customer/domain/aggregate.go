package domain

import (
	"time"
)

// CustomerWithExpiration is a customer annotated with one classification per card.
type CustomerWithExpiration struct {
	Customer        *Customer
	Expirations     []ExpirationClassification
	HasExpired      bool
	HasExpiringSoon bool
}

// ClassifyCustomer classifies every card of c against now and derives the customer flags.
// A customer without cards is a valid state: no records and both flags false.
func ClassifyCustomer(c *Customer, now time.Time) *CustomerWithExpiration {
	result := &CustomerWithExpiration{
		Customer:    c,
		Expirations: make([]ExpirationClassification, 0, len(c.Cards)),
	}

	for _, card := range c.Cards {
		classification := ClassifyCard(card, now)
		switch classification.Status {
		case StatusExpired:
			result.HasExpired = true
		case StatusExpiringSoon:
			result.HasExpiringSoon = true
		}
		result.Expirations = append(result.Expirations, classification)
	}

	return result
}

// ClassifyCustomers classifies a customer population, preserving input order.
func ClassifyCustomers(customers []*Customer, now time.Time) []*CustomerWithExpiration {
	result := make([]*CustomerWithExpiration, 0, len(customers))
	for _, c := range customers {
		result = append(result, ClassifyCustomer(c, now))
	}
	return result
}

// TotalCards returns the number of cards on file, including those without a date.
func (c *CustomerWithExpiration) TotalCards() int {
	return len(c.Customer.Cards)
}

// HasCards reports whether at least one card is on file.
func (c *CustomerWithExpiration) HasCards() bool {
	return len(c.Customer.Cards) > 0
}

// HasStatus reports whether any card is in the given status.
func (c *CustomerWithExpiration) HasStatus(status ExpirationStatus) bool {
	return c.CountStatus(status) > 0
}

// CountStatus returns the number of classification records in the given status.
func (c *CustomerWithExpiration) CountStatus(status ExpirationStatus) int {
	count := 0
	for i := range c.Expirations {
		if c.Expirations[i].Status == status {
			count++
		}
	}
	return count
}

// NeedsAttention reports whether any card is expired or expiring soon.
func (c *CustomerWithExpiration) NeedsAttention() bool {
	return c.HasExpired || c.HasExpiringSoon
}

// MostRelevantCard picks the single card to surface in compact views:
//
//  1. the most recently expired card (smallest overdue day-count)
//  2. otherwise the expiring-soon card closest to expiring
//  3. otherwise the active card expiring first, dated cards before undated ones
//
// Ties keep the first card encountered. It returns false when the customer has no
// payment method on file.
func (c *CustomerWithExpiration) MostRelevantCard() (*ExpirationClassification, bool) {
	if len(c.Expirations) == 0 {
		return nil, false
	}

	if best := c.pick(func(e *ExpirationClassification) bool { return e.Status == StatusExpired },
		func(e *ExpirationClassification) int { return -e.DaysUntilExpiration }); best != nil {
		return best, true
	}

	if best := c.pick(func(e *ExpirationClassification) bool { return e.Status == StatusExpiringSoon },
		func(e *ExpirationClassification) int { return e.DaysUntilExpiration }); best != nil {
		return best, true
	}

	if best := c.pick(func(e *ExpirationClassification) bool { return e.ExpirationDate != nil && e.Status.IsActive() },
		func(e *ExpirationClassification) int { return e.DaysUntilExpiration }); best != nil {
		return best, true
	}

	return &c.Expirations[0], true
}

// pick returns the first record matching keep with the smallest score.
func (c *CustomerWithExpiration) pick(
	keep func(*ExpirationClassification) bool,
	score func(*ExpirationClassification) int,
) *ExpirationClassification {
	var best *ExpirationClassification
	for i := range c.Expirations {
		candidate := &c.Expirations[i]
		if !keep(candidate) {
			continue
		}
		if best == nil || score(candidate) < score(best) {
			best = candidate
		}
	}
	return best
}
