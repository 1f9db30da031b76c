package domain

import "strings"

// StatusFilter narrows a customer list to those holding a card in a given status.
type StatusFilter string

// StatusFilterNeedsAttention matches customers with an expired or expiring-soon card.
const StatusFilterNeedsAttention StatusFilter = "needs-attention"

// ParseStatusFilter validates a status filter. The empty string matches everything.
func ParseStatusFilter(value string) (StatusFilter, error) {
	filter := StatusFilter(strings.ToLower(strings.TrimSpace(value)))
	switch filter {
	case "", StatusFilterNeedsAttention,
		StatusFilter(StatusExpired),
		StatusFilter(StatusExpiringSoon),
		StatusFilter(StatusExpiringLater),
		StatusFilter(StatusValid),
		StatusFilter(StatusNoExpiration):
		return filter, nil
	default:
		return "", ErrInvalidStatusFilter
	}
}

// Matches reports whether the classified customer passes the filter.
func (f StatusFilter) Matches(c *CustomerWithExpiration) bool {
	switch f {
	case "":
		return true
	case StatusFilterNeedsAttention:
		return c.NeedsAttention()
	default:
		return c.HasStatus(ExpirationStatus(f))
	}
}

// CustomerFilter selects customers for list views and reports.
type CustomerFilter struct {
	// Currency restricts results to one merchant account; nil means all.
	Currency *Currency
	Status   StatusFilter
	// Search is a case-insensitive substring matched against names, business name,
	// customer id, card last4 and emails.
	Search string
	// RequiresActionOnly keeps client statuses that call for follow-up.
	RequiresActionOnly bool
}

// MatchesSearch reports whether any searchable field of the customer contains term.
func MatchesSearch(c *Customer, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	fields := []string{c.ID, c.FirstName, c.LastName, c.FullName(), c.BusinessName}
	for _, card := range c.Cards {
		fields = append(fields, card.Last4)
	}
	fields = append(fields, c.Emails...)

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
