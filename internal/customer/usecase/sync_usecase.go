package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/cardwatch/internal/customer/domain"
	"github.com/allisson/cardwatch/internal/customer/platform"
	"github.com/allisson/cardwatch/internal/database"
)

// syncUseCase implements the SyncUseCase interface.
type syncUseCase struct {
	txManager    database.TxManager
	customerRepo CustomerRepository
	syncRunRepo  SyncRunRepository
	client       PlatformClient
	logger       *slog.Logger
	locks        map[domain.Currency]*sync.Mutex
	now          func() time.Time
}

// Sync pulls one merchant account and replaces its stored snapshot.
func (s *syncUseCase) Sync(ctx context.Context, currency domain.Currency) (*domain.SyncRun, error) {
	lock, ok := s.locks[currency]
	if !ok {
		return nil, domain.ErrInvalidCurrency
	}
	if !lock.TryLock() {
		return nil, domain.ErrSyncInProgress
	}
	defer lock.Unlock()

	run := &domain.SyncRun{
		ID:        uuid.Must(uuid.NewV7()),
		Currency:  currency,
		StartedAt: s.now(),
	}

	if err := s.sync(ctx, run); err != nil {
		run.FinishedAt = s.now()
		run.Status = domain.SyncRunError
		run.Error = err.Error()

		// Record the failure outside the rolled back transaction.
		if createErr := s.syncRunRepo.Create(ctx, run); createErr != nil {
			s.logger.Error("failed to record sync run",
				slog.String("currency", string(currency)),
				slog.Any("error", createErr),
			)
		}
		s.logger.Error("merchant sync failed",
			slog.String("currency", string(currency)),
			slog.Any("error", err),
		)
		return run, err
	}

	s.logger.Info("merchant sync completed",
		slog.String("currency", string(currency)),
		slog.Int("customers", run.CustomerCount),
		slog.Int("cards", run.CardCount),
		slog.Int("changed", run.ChangedCount),
		slog.Int("rejected", run.RejectedCount),
		slog.Duration("duration", run.Duration()),
	)
	return run, nil
}

func (s *syncUseCase) sync(ctx context.Context, run *domain.SyncRun) error {
	raws, err := s.client.ListCustomers(ctx, run.Currency)
	if err != nil {
		return err
	}

	syncedAt := s.now()
	customers := make([]*domain.Customer, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		customer, err := platform.Normalize(raw, run.Currency, syncedAt)
		if err != nil {
			run.RejectedCount++
			s.logger.Warn("rejected platform record",
				slog.String("currency", string(run.Currency)),
				slog.String("customer_id", string(raw.ID)),
				slog.Any("error", err),
			)
			continue
		}
		if _, dup := seen[customer.ID]; dup {
			run.RejectedCount++
			s.logger.Warn("rejected duplicate platform record",
				slog.String("currency", string(run.Currency)),
				slog.String("customer_id", customer.ID),
			)
			continue
		}
		seen[customer.ID] = struct{}{}

		if customer.Fingerprint, err = fingerprint(customer); err != nil {
			return err
		}
		customers = append(customers, customer)
		run.CardCount += len(customer.Cards)
	}
	run.CustomerCount = len(customers)

	previous, err := s.customerRepo.Fingerprints(ctx, run.Currency)
	if err != nil {
		return err
	}
	run.ChangedCount = countChanges(previous, customers)

	run.Status = domain.SyncRunSuccess
	run.FinishedAt = s.now()

	return s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.customerRepo.ReplaceMerchant(txCtx, run.Currency, customers); err != nil {
			return err
		}
		return s.syncRunRepo.Create(txCtx, run)
	})
}

// SyncAll syncs every merchant account concurrently.
func (s *syncUseCase) SyncAll(ctx context.Context) ([]*domain.SyncRun, error) {
	runs := make([]*domain.SyncRun, len(domain.Currencies))

	var g errgroup.Group
	for i, currency := range domain.Currencies {
		g.Go(func() error {
			run, err := s.Sync(ctx, currency)
			runs[i] = run
			return err
		})
	}
	err := g.Wait()

	result := make([]*domain.SyncRun, 0, len(runs))
	for _, run := range runs {
		if run != nil {
			result = append(result, run)
		}
	}
	return result, err
}

// LatestRuns returns the most recent run of every merchant account.
func (s *syncUseCase) LatestRuns(ctx context.Context) ([]*domain.SyncRun, error) {
	runs := make([]*domain.SyncRun, 0, len(domain.Currencies))
	for _, currency := range domain.Currencies {
		run, err := s.syncRunRepo.Latest(ctx, currency)
		if err != nil {
			if errors.Is(err, domain.ErrSyncRunNotFound) {
				continue
			}
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// NewSyncUseCase creates a new SyncUseCase.
func NewSyncUseCase(
	txManager database.TxManager,
	customerRepo CustomerRepository,
	syncRunRepo SyncRunRepository,
	client PlatformClient,
	logger *slog.Logger,
) SyncUseCase {
	locks := make(map[domain.Currency]*sync.Mutex, len(domain.Currencies))
	for _, currency := range domain.Currencies {
		locks[currency] = &sync.Mutex{}
	}

	return &syncUseCase{
		txManager:    txManager,
		customerRepo: customerRepo,
		syncRunRepo:  syncRunRepo,
		client:       client,
		logger:       logger,
		locks:        locks,
		now:          func() time.Time { return time.Now().UTC() },
	}
}
