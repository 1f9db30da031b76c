package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card is a payment card on file for a customer, as last seen on the payment platform.
// Cards are replaced wholesale on every sync and never mutated by the classification rules.
type Card struct {
	// ID is the vendor-assigned identifier; empty for legacy records.
	ID                  string
	First6              string
	Last4               string
	CardholderFirstName string
	CardholderLastName  string
	// ExpirationCode is the raw MMYY code, nil when the platform sent none.
	ExpirationCode *string
	CardType       string
}

// MaskedNumber renders the card as "first6******last4" for display.
func (c Card) MaskedNumber() string {
	if c.First6 == "" && c.Last4 == "" {
		return ""
	}
	return c.First6 + "******" + c.Last4
}

// Address is a postal address attached to a customer.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// CustomerKey is the identity of a customer across merchant accounts.
type CustomerKey struct {
	Currency Currency
	ID       string
}

// Customer is one person or business record from one merchant account.
type Customer struct {
	ID               string
	Currency         Currency
	FirstName        string
	LastName         string
	BusinessName     string
	CustomerSince    *time.Time
	MarketingConsent bool
	Cards            []Card
	Emails           []string
	Phones           []string
	Addresses        []Address
	// Fingerprint is a content hash computed at sync time to detect changes.
	Fingerprint string
	SyncedAt    time.Time
}

// Key returns the (currency, id) identity of the customer.
func (c *Customer) Key() CustomerKey {
	return CustomerKey{Currency: c.Currency, ID: c.ID}
}

// FullName joins first and last name, skipping empty parts.
func (c *Customer) FullName() string {
	return strings.TrimSpace(strings.Join([]string{c.FirstName, c.LastName}, " "))
}

// DisplayName prefers the business name and falls back to the person's name.
func (c *Customer) DisplayName() string {
	if name := strings.TrimSpace(c.BusinessName); name != "" {
		return name
	}
	return c.FullName()
}

// HasBusinessName reports whether the customer carries a non-blank business name.
func (c *Customer) HasBusinessName() bool {
	return strings.TrimSpace(c.BusinessName) != ""
}

// SyncRun records the outcome of synchronizing one merchant account.
type SyncRun struct {
	ID            uuid.UUID
	Currency      Currency
	StartedAt     time.Time
	FinishedAt    time.Time
	CustomerCount int
	CardCount     int
	ChangedCount  int
	RejectedCount int
	Status        SyncRunStatus
	Error         string
}

// Duration returns how long the run took.
func (r *SyncRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
