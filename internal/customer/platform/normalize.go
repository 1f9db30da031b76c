package platform

import (
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/cardwatch/internal/customer/domain"
	apperrors "github.com/allisson/cardwatch/internal/errors"
	customValidation "github.com/allisson/cardwatch/internal/validation"
)

// Normalize converts a raw platform record into the canonical domain.Customer.
// Strings are trimmed, blank list entries dropped and customerSince converted from
// epoch seconds. Records failing validation return ErrInvalidRecord. Expiration codes
// are carried through untouched; malformed ones classify as no-expiration later.
func Normalize(raw RawCustomer, currency domain.Currency, syncedAt time.Time) (*domain.Customer, error) {
	customer := &domain.Customer{
		ID:               strings.TrimSpace(string(raw.ID)),
		Currency:         currency,
		FirstName:        strings.TrimSpace(raw.FirstName),
		LastName:         strings.TrimSpace(raw.LastName),
		BusinessName:     businessName(raw),
		MarketingConsent: raw.MarketingConsent,
		Cards:            make([]domain.Card, 0, len(raw.Cards)),
		Emails:           compact(raw.Emails),
		Phones:           compact(raw.Phones),
		Addresses:        make([]domain.Address, 0, len(raw.Addresses)),
		SyncedAt:         syncedAt,
	}

	if raw.CustomerSince.Valid && raw.CustomerSince.Value > 0 {
		since := time.Unix(raw.CustomerSince.Value, 0).UTC()
		customer.CustomerSince = &since
	}

	for _, rawCard := range raw.Cards {
		card := domain.Card{
			ID:                  strings.TrimSpace(string(rawCard.ID)),
			First6:              strings.TrimSpace(string(rawCard.First6)),
			Last4:               strings.TrimSpace(string(rawCard.Last4)),
			CardholderFirstName: strings.TrimSpace(rawCard.CardholderFirstName),
			CardholderLastName:  strings.TrimSpace(rawCard.CardholderLastName),
			CardType:            strings.TrimSpace(rawCard.CardType),
		}
		if rawCard.ExpirationDate != nil {
			code := strings.TrimSpace(string(*rawCard.ExpirationDate))
			card.ExpirationCode = &code
		}
		customer.Cards = append(customer.Cards, card)
	}

	for _, rawAddress := range raw.Addresses {
		address := domain.Address{
			Line1:      strings.TrimSpace(rawAddress.Street1),
			Line2:      strings.TrimSpace(rawAddress.Street2),
			City:       strings.TrimSpace(rawAddress.City),
			Province:   strings.TrimSpace(rawAddress.Province),
			PostalCode: strings.TrimSpace(rawAddress.PostalCode),
			Country:    strings.TrimSpace(rawAddress.Country),
		}
		if address != (domain.Address{}) {
			customer.Addresses = append(customer.Addresses, address)
		}
	}

	if err := validateCustomer(customer); err != nil {
		return nil, apperrors.Wrap(domain.ErrInvalidRecord, err.Error())
	}

	return customer, nil
}

func validateCustomer(c *domain.Customer) error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.ID, validation.Required, validation.Length(1, 64)),
		validation.Field(&c.Currency, validation.Required),
	); err != nil {
		return err
	}

	for i := range c.Cards {
		card := &c.Cards[i]
		if err := validation.ValidateStruct(card,
			validation.Field(&card.First6, validation.Length(0, 6), customValidation.Digits),
			validation.Field(&card.Last4, validation.Length(0, 4), customValidation.Digits),
		); err != nil {
			return validation.Errors{"cards": err}
		}
	}

	return nil
}

// businessName prefers the top-level field and falls back to metadata.
func businessName(raw RawCustomer) string {
	if name := strings.TrimSpace(raw.BusinessName); name != "" {
		return name
	}
	if raw.Metadata != nil {
		return strings.TrimSpace(raw.Metadata.BusinessName)
	}
	return ""
}

func compact(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			result = append(result, value)
		}
	}
	return result
}
