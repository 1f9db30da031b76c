package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/cardwatch/internal/customer/domain"
	"github.com/allisson/cardwatch/internal/database"
	apperrors "github.com/allisson/cardwatch/internal/errors"
)

// MySQLSyncRunRepository implements SyncRun persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLSyncRunRepository struct {
	db *sql.DB
}

// Create inserts a new SyncRun using BINARY(16) for the id.
func (m *MySQLSyncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	querier := database.GetTx(ctx, m.db)

	id, err := run.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal sync run id")
	}

	query := `INSERT INTO sync_runs (` + syncRunColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLSyncRunRepository) Latest(
	ctx context.Context,
	currency domain.Currency,
) (*domain.SyncRun, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + syncRunColumns + ` FROM sync_runs
			  WHERE currency = ? ORDER BY started_at DESC LIMIT 1`

	var (
		run domain.SyncRun
		id  []byte
	)
	err := querier.QueryRowContext(ctx, query, currency).Scan(
		&id,
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

	if err := run.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal sync run id")
	}

	return &run, nil
}

// NewMySQLSyncRunRepository creates a new MySQL SyncRun repository.
func NewMySQLSyncRunRepository(db *sql.DB) *MySQLSyncRunRepository {
	return &MySQLSyncRunRepository{db: db}
}
