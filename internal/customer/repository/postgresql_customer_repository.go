package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/cardwatch/internal/customer/domain"
	"github.com/allisson/cardwatch/internal/database"
	apperrors "github.com/allisson/cardwatch/internal/errors"
)

// PostgreSQLCustomerRepository implements Customer persistence for PostgreSQL.
type PostgreSQLCustomerRepository struct {
	db *sql.DB
}

// ReplaceMerchant deletes every customer and card of the merchant account and inserts
// the given snapshot. Callers run it inside TxManager.WithTx so readers never observe
// a half-written merchant.
func (p *PostgreSQLCustomerRepository) ReplaceMerchant(
	ctx context.Context,
	currency domain.Currency,
	customers []*domain.Customer,
) error {
	querier := database.GetTx(ctx, p.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM cards WHERE currency = $1`, currency); err != nil {
		return apperrors.Wrap(err, "failed to delete cards")
	}
	if _, err := querier.ExecContext(ctx, `DELETE FROM customers WHERE currency = $1`, currency); err != nil {
		return apperrors.Wrap(err, "failed to delete customers")
	}

	customerQuery := `INSERT INTO customers (` + customerColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	cardQuery := `INSERT INTO cards (` + cardColumns + `, position)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, customer := range customers {
		cols, err := encodeContacts(customer)
		if err != nil {
			return err
		}

		_, err = querier.ExecContext(
			ctx,
			customerQuery,
			customer.ID,
			currency,
			customer.FirstName,
			customer.LastName,
			customer.BusinessName,
			nullableTime(customer),
			customer.MarketingConsent,
			cols.emails,
			cols.phones,
			cols.addresses,
			customer.Fingerprint,
			customer.SyncedAt,
		)
		if err != nil {
			return apperrors.Wrap(err, "failed to insert customer")
		}

		for position, card := range customer.Cards {
			_, err := querier.ExecContext(
				ctx,
				cardQuery,
				currency,
				customer.ID,
				card.ID,
				card.First6,
				card.Last4,
				card.CardholderFirstName,
				card.CardholderLastName,
				nullableCode(card),
				card.CardType,
				position,
			)
			if err != nil {
				return apperrors.Wrap(err, "failed to insert card")
			}
		}
	}

	return nil
}

// List returns customers ordered by last name, first name, currency and id. A nil
// currency lists every merchant account.
func (p *PostgreSQLCustomerRepository) List(
	ctx context.Context,
	currency *domain.Currency,
) ([]*domain.Customer, error) {
	querier := database.GetTx(ctx, p.db)

	customersQuery := `SELECT ` + customerColumns + ` FROM customers`
	cardsQuery := `SELECT ` + cardColumns + ` FROM cards`
	var args []any
	if currency != nil {
		customersQuery += ` WHERE currency = $1`
		cardsQuery += ` WHERE currency = $1`
		args = append(args, *currency)
	}
	customersQuery += ` ORDER BY last_name, first_name, currency, id`
	cardsQuery += ` ORDER BY currency, customer_id, position`

	return loadCustomers(ctx, querier, customersQuery, cardsQuery, args...)
}

// Get retrieves one customer with its cards.
func (p *PostgreSQLCustomerRepository) Get(
	ctx context.Context,
	currency domain.Currency,
	id string,
) (*domain.Customer, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + customerColumns + ` FROM customers WHERE currency = $1 AND id = $2`
	customer, err := scanCustomer(querier.QueryRowContext(ctx, query, currency, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get customer")
	}

	cardsQuery := `SELECT ` + cardColumns + ` FROM cards
			  WHERE currency = $1 AND customer_id = $2 ORDER BY position`
	rows, err := querier.QueryContext(ctx, cardsQuery, currency, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get cards")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		_, card, err := scanCard(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan card")
		}
		customer.Cards = append(customer.Cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate cards")
	}

	return customer, nil
}

// Fingerprints returns the stored content hash of every customer of the merchant, by id.
func (p *PostgreSQLCustomerRepository) Fingerprints(
	ctx context.Context,
	currency domain.Currency,
) (map[string]string, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(
		ctx,
		`SELECT id, fingerprint FROM customers WHERE currency = $1`,
		currency,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list fingerprints")
	}
	defer func() { _ = rows.Close() }()

	return scanFingerprints(rows)
}

// NewPostgreSQLCustomerRepository creates a new PostgreSQL Customer repository.
func NewPostgreSQLCustomerRepository(db *sql.DB) *PostgreSQLCustomerRepository {
	return &PostgreSQLCustomerRepository{db: db}
}
