// Package scheduler runs merchant synchronization and report delivery on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	customerUseCase "github.com/allisson/cardwatch/internal/customer/usecase"
)

// Config holds scheduler configuration. An empty schedule disables its job.
type Config struct {
	SyncSchedule   string
	ReportSchedule string
	// Location is the time zone schedules are evaluated in and reports are dated in.
	Location *time.Location
	// JobTimeout bounds a single job run.
	JobTimeout time.Duration
}

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron          *cron.Cron
	config        Config
	syncUseCase   customerUseCase.SyncUseCase
	reportUseCase customerUseCase.ReportUseCase
	logger        *slog.Logger
	now           func() time.Time

	// ctx is set by Start before the cron loop runs and is the parent of every job run.
	ctx     context.Context
	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// New creates a Scheduler and registers its jobs. reportUseCase may be nil when report
// delivery is not configured.
func New(
	config Config,
	syncUseCase customerUseCase.SyncUseCase,
	reportUseCase customerUseCase.ReportUseCase,
	logger *slog.Logger,
) (*Scheduler, error) {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = 30 * time.Minute
	}

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(config.Location),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		config:        config,
		syncUseCase:   syncUseCase,
		reportUseCase: reportUseCase,
		logger:        logger,
		now:           time.Now,
		ctx:           context.Background(),
		stopped:       make(chan struct{}),
	}

	if config.SyncSchedule != "" {
		if _, err := s.cron.AddFunc(config.SyncSchedule, func() { s.runSync(s.ctx) }); err != nil {
			return nil, fmt.Errorf("invalid sync schedule %q: %w", config.SyncSchedule, err)
		}
		logger.Info("scheduled merchant sync job", slog.String("schedule", config.SyncSchedule))
	}

	switch {
	case config.ReportSchedule == "":
	case reportUseCase == nil:
		logger.Warn("report delivery is not configured - report job disabled")
	default:
		if _, err := s.cron.AddFunc(config.ReportSchedule, func() { s.runReport(s.ctx) }); err != nil {
			return nil, fmt.Errorf("invalid report schedule %q: %w", config.ReportSchedule, err)
		}
		logger.Info("scheduled report delivery job", slog.String("schedule", config.ReportSchedule))
	}

	return s, nil
}

// Start runs the cron loop until ctx is cancelled or Shutdown is called, then waits for
// running jobs to finish. A Scheduler can be started once.
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer close(s.stopped)

	s.mu.Lock()
	s.ctx = ctx
	s.cancel = cancel
	s.mu.Unlock()

	s.logger.Info("starting scheduler", slog.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()

	<-ctx.Done()

	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
	return nil
}

// Shutdown stops the cron loop and waits for Start to return or ctx to expire.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}

	cancel()
	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runSync(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.config.JobTimeout)
	defer cancel()

	runs, err := s.syncUseCase.SyncAll(ctx)
	if err != nil {
		s.logger.Error("scheduled sync failed", slog.Int("runs", len(runs)), slog.Any("error", err))
		return
	}
	s.logger.Info("scheduled sync completed", slog.Int("runs", len(runs)))
}

func (s *Scheduler) runReport(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.config.JobTimeout)
	defer cancel()

	if err := s.reportUseCase.Send(ctx, s.now().In(s.config.Location)); err != nil {
		s.logger.Error("scheduled report delivery failed", slog.Any("error", err))
		return
	}
	s.logger.Info("scheduled report delivered")
}
