// Package domain defines the customer, card and expiration domain models together with
// the pure classification and prioritization rules applied on top of them.
package domain

import "strings"

// Currency identifies the merchant account (and settlement currency) a customer belongs to.
type Currency string

const (
	// CurrencyUSD is the US dollar merchant account.
	CurrencyUSD Currency = "USD"
	// CurrencyCAD is the Canadian dollar merchant account.
	CurrencyCAD Currency = "CAD"
)

// Currencies lists every supported merchant currency in sync order.
var Currencies = []Currency{CurrencyUSD, CurrencyCAD}

// ParseCurrency converts a case-insensitive currency code into a Currency.
func ParseCurrency(value string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(value))) {
	case CurrencyUSD:
		return CurrencyUSD, nil
	case CurrencyCAD:
		return CurrencyCAD, nil
	default:
		return "", ErrInvalidCurrency
	}
}

// ExpirationStatus is the classification of a single card's expiration date.
type ExpirationStatus string

const (
	StatusValid         ExpirationStatus = "valid"
	StatusExpiringSoon  ExpirationStatus = "expiring-soon"
	StatusExpiringLater ExpirationStatus = "expiring-later"
	StatusExpired       ExpirationStatus = "expired"
	StatusNoExpiration  ExpirationStatus = "no-expiration"
)

// IsActive reports whether a card in this status can still be charged.
// Cards without an expiration date are treated as valid.
func (s ExpirationStatus) IsActive() bool {
	return s != StatusExpired
}

// WarningLevel is the display urgency derived from an ExpirationStatus.
type WarningLevel string

const (
	WarningCritical WarningLevel = "critical"
	WarningWarning  WarningLevel = "warning"
	WarningInfo     WarningLevel = "info"
	WarningNone     WarningLevel = "none"
)

// ClientStatus is the lifecycle tag assigned by ClientStatusPolicy.
type ClientStatus string

const (
	ClientNewNeedsPayment ClientStatus = "new-needs-payment"
	ClientExpiredCards    ClientStatus = "expired-cards"
	ClientExpiringCards   ClientStatus = "expiring-cards"
	ClientAllGood         ClientStatus = "all-good"
	ClientInactiveOld     ClientStatus = "inactive-old"
)

// Priority is the follow-up priority assigned by ClientStatusPolicy.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
	PriorityNone     Priority = "none"
)

// SyncRunStatus is the outcome of one merchant synchronization.
type SyncRunStatus string

const (
	SyncRunSuccess SyncRunStatus = "success"
	SyncRunError   SyncRunStatus = "error"
)

const (
	// ExpiringSoonDays is the last day-count still classified as expiring soon.
	ExpiringSoonDays = 30
	// ExpiringLaterDays is the last day-count still classified as expiring later.
	ExpiringLaterDays = 90
)
