// Package repository implements persistence for customers, cards and sync runs.
//
// Provides PostgreSQL and MySQL implementations with transaction support via database.GetTx().
// Emails, phones and addresses are stored as JSON text columns; cards live in their own
// table keyed by (currency, customer_id, position).
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/allisson/cardwatch/internal/customer/domain"
	"github.com/allisson/cardwatch/internal/database"
	apperrors "github.com/allisson/cardwatch/internal/errors"
)

const customerColumns = `id, currency, first_name, last_name, business_name, customer_since,
	marketing_consent, emails, phones, addresses, fingerprint, synced_at`

const cardColumns = `currency, customer_id, card_id, first6, last4, cardholder_first_name,
	cardholder_last_name, expiration_code, card_type`

type rowScanner interface {
	Scan(dest ...any) error
}

type contactColumns struct {
	emails    string
	phones    string
	addresses string
}

func encodeContacts(c *domain.Customer) (contactColumns, error) {
	var cols contactColumns

	emails, err := json.Marshal(nonNil(c.Emails))
	if err != nil {
		return cols, apperrors.Wrap(err, "failed to marshal customer emails")
	}
	phones, err := json.Marshal(nonNil(c.Phones))
	if err != nil {
		return cols, apperrors.Wrap(err, "failed to marshal customer phones")
	}
	addresses, err := json.Marshal(nonNil(c.Addresses))
	if err != nil {
		return cols, apperrors.Wrap(err, "failed to marshal customer addresses")
	}

	cols.emails = string(emails)
	cols.phones = string(phones)
	cols.addresses = string(addresses)
	return cols, nil
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var (
		customer      domain.Customer
		customerSince sql.NullTime
		cols          contactColumns
	)

	if err := row.Scan(
		&customer.ID,
		&customer.Currency,
		&customer.FirstName,
		&customer.LastName,
		&customer.BusinessName,
		&customerSince,
		&customer.MarketingConsent,
		&cols.emails,
		&cols.phones,
		&cols.addresses,
		&customer.Fingerprint,
		&customer.SyncedAt,
	); err != nil {
		return nil, err
	}

	if customerSince.Valid {
		since := customerSince.Time.UTC()
		customer.CustomerSince = &since
	}
	customer.SyncedAt = customer.SyncedAt.UTC()

	if err := json.Unmarshal([]byte(cols.emails), &customer.Emails); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal customer emails")
	}
	if err := json.Unmarshal([]byte(cols.phones), &customer.Phones); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal customer phones")
	}
	if err := json.Unmarshal([]byte(cols.addresses), &customer.Addresses); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal customer addresses")
	}
	customer.Cards = []domain.Card{}

	return &customer, nil
}

func scanCard(row rowScanner) (domain.CustomerKey, domain.Card, error) {
	var (
		key            domain.CustomerKey
		card           domain.Card
		expirationCode sql.NullString
	)

	if err := row.Scan(
		&key.Currency,
		&key.ID,
		&card.ID,
		&card.First6,
		&card.Last4,
		&card.CardholderFirstName,
		&card.CardholderLastName,
		&expirationCode,
		&card.CardType,
	); err != nil {
		return key, card, err
	}

	if expirationCode.Valid {
		code := expirationCode.String
		card.ExpirationCode = &code
	}
	return key, card, nil
}

func nullableTime(c *domain.Customer) sql.NullTime {
	if c.CustomerSince == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: c.CustomerSince.UTC(), Valid: true}
}

func nullableCode(card domain.Card) sql.NullString {
	if card.ExpirationCode == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *card.ExpirationCode, Valid: true}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// loadCustomers runs the customers query followed by the cards query and stitches the
// cards onto their owners in position order.
func loadCustomers(
	ctx context.Context,
	querier database.Querier,
	customersQuery, cardsQuery string,
	args ...any,
) ([]*domain.Customer, error) {
	rows, err := querier.QueryContext(ctx, customersQuery, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list customers")
	}
	defer func() { _ = rows.Close() }()

	customers := make([]*domain.Customer, 0)
	byKey := make(map[domain.CustomerKey]*domain.Customer)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan customer")
		}
		customers = append(customers, customer)
		byKey[customer.Key()] = customer
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate customers")
	}
	if len(customers) == 0 {
		return customers, nil
	}

	cardRows, err := querier.QueryContext(ctx, cardsQuery, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cards")
	}
	defer func() { _ = cardRows.Close() }()

	for cardRows.Next() {
		key, card, err := scanCard(cardRows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan card")
		}
		if owner, ok := byKey[key]; ok {
			owner.Cards = append(owner.Cards, card)
		}
	}
	if err := cardRows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate cards")
	}

	return customers, nil
}

func scanFingerprints(rows *sql.Rows) (map[string]string, error) {
	fingerprints := make(map[string]string)
	for rows.Next() {
		var id, fingerprint string
		if err := rows.Scan(&id, &fingerprint); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan fingerprint")
		}
		fingerprints[id] = fingerprint
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate fingerprints")
	}
	return fingerprints, nil
}
