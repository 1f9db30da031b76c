package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/cardwatch/internal/customer/domain"
	"github.com/allisson/cardwatch/internal/database"
	apperrors "github.com/allisson/cardwatch/internal/errors"
)

const syncRunColumns = `id, currency, started_at, finished_at, customer_count, card_count,
	changed_count, rejected_count, status, error`

// PostgreSQLSyncRunRepository implements SyncRun persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLSyncRunRepository struct {
	db *sql.DB
}

// Create inserts a new SyncRun.
func (p *PostgreSQLSyncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO sync_runs (` + syncRunColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		run.ID,
		run.Currency,
		run.StartedAt,
		run.FinishedAt,
		run.CustomerCount,
		run.CardCount,
		run.ChangedCount,
		run.RejectedCount,
		run.Status,
		run.Error,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create sync run")
	}
	return nil
}

// Latest returns the most recent SyncRun of the merchant account.
func (p *PostgreSQLSyncRunRepository) Latest(
	ctx context.Context,
	currency domain.Currency,
) (*domain.SyncRun, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + syncRunColumns + ` FROM sync_runs
			  WHERE currency = $1 ORDER BY started_at DESC LIMIT 1`

	var run domain.SyncRun
	err := querier.QueryRowContext(ctx, query, currency).Scan(
		&run.ID,
		&run.Currency,
		&run.StartedAt,
		&run.FinishedAt,
		&run.CustomerCount,
		&run.CardCount,
		&run.ChangedCount,
		&run.RejectedCount,
		&run.Status,
		&run.Error,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSyncRunNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get latest sync run")
	}

	return &run, nil
}

// NewPostgreSQLSyncRunRepository creates a new PostgreSQL SyncRun repository.
func NewPostgreSQLSyncRunRepository(db *sql.DB) *PostgreSQLSyncRunRepository {
	return &PostgreSQLSyncRunRepository{db: db}
}
