package usecase

import (
	"context"
	"io"
	"time"

	"github.com/allisson/cardwatch/internal/customer/domain"
	"github.com/allisson/cardwatch/internal/metrics"
)

func recordOperation(
	ctx context.Context,
	m metrics.BusinessMetrics,
	metricsDomain, operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// customerUseCaseWithMetrics decorates CustomerUseCase with metrics instrumentation.
type customerUseCaseWithMetrics struct {
	next    CustomerUseCase
	metrics metrics.BusinessMetrics
}

// NewCustomerUseCaseWithMetrics wraps a CustomerUseCase with metrics recording.
func NewCustomerUseCaseWithMetrics(useCase CustomerUseCase, m metrics.BusinessMetrics) CustomerUseCase {
	return &customerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *customerUseCaseWithMetrics) List(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) ([]*domain.CustomerWithExpiration, error) {
	start := time.Now()
	customers, err := c.next.List(ctx, now, filter)
	recordOperation(ctx, c.metrics, "customers", "customer_list", start, err)
	return customers, err
}

func (c *customerUseCaseWithMetrics) Get(
	ctx context.Context,
	now time.Time,
	currency domain.Currency,
	id string,
) (*domain.CustomerWithExpiration, error) {
	start := time.Now()
	customer, err := c.next.Get(ctx, now, currency, id)
	recordOperation(ctx, c.metrics, "customers", "customer_get", start, err)
	return customer, err
}

func (c *customerUseCaseWithMetrics) ActionRequired(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) ([]*domain.CustomerWithExpiration, error) {
	start := time.Now()
	customers, err := c.next.ActionRequired(ctx, now, filter)
	recordOperation(ctx, c.metrics, "customers", "action_required", start, err)
	return customers, err
}

func (c *customerUseCaseWithMetrics) ClientStatuses(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) ([]*domain.CustomerClientStatus, error) {
	start := time.Now()
	statuses, err := c.next.ClientStatuses(ctx, now, filter)
	recordOperation(ctx, c.metrics, "customers", "client_status", start, err)
	return statuses, err
}

func (c *customerUseCaseWithMetrics) Summary(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) (domain.SummaryStatistics, error) {
	start := time.Now()
	summary, err := c.next.Summary(ctx, now, filter)
	recordOperation(ctx, c.metrics, "customers", "summary", start, err)
	return summary, err
}

// syncUseCaseWithMetrics decorates SyncUseCase with metrics instrumentation. Successful
// runs also record their fetched, changed and rejected counts.
type syncUseCaseWithMetrics struct {
	next    SyncUseCase
	metrics metrics.BusinessMetrics
}

// NewSyncUseCaseWithMetrics wraps a SyncUseCase with metrics recording.
func NewSyncUseCaseWithMetrics(useCase SyncUseCase, m metrics.BusinessMetrics) SyncUseCase {
	return &syncUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *syncUseCaseWithMetrics) Sync(ctx context.Context, currency domain.Currency) (*domain.SyncRun, error) {
	start := time.Now()
	run, err := s.next.Sync(ctx, currency)
	recordOperation(ctx, s.metrics, "sync", "sync_merchant", start, err)
	s.recordRuns(ctx, run)
	return run, err
}

func (s *syncUseCaseWithMetrics) SyncAll(ctx context.Context) ([]*domain.SyncRun, error) {
	start := time.Now()
	runs, err := s.next.SyncAll(ctx)
	recordOperation(ctx, s.metrics, "sync", "sync_all", start, err)
	s.recordRuns(ctx, runs...)
	return runs, err
}

func (s *syncUseCaseWithMetrics) LatestRuns(ctx context.Context) ([]*domain.SyncRun, error) {
	start := time.Now()
	runs, err := s.next.LatestRuns(ctx)
	recordOperation(ctx, s.metrics, "sync", "latest_runs", start, err)
	return runs, err
}

func (s *syncUseCaseWithMetrics) recordRuns(ctx context.Context, runs ...*domain.SyncRun) {
	for _, run := range runs {
		if run == nil || run.Status != domain.SyncRunSuccess {
			continue
		}
		s.metrics.RecordSync(
			ctx,
			string(run.Currency),
			run.CustomerCount+run.RejectedCount,
			run.ChangedCount,
			run.RejectedCount,
		)
	}
}

// reportUseCaseWithMetrics decorates ReportUseCase with metrics instrumentation.
type reportUseCaseWithMetrics struct {
	next    ReportUseCase
	metrics metrics.BusinessMetrics
}

// NewReportUseCaseWithMetrics wraps a ReportUseCase with metrics recording.
func NewReportUseCaseWithMetrics(useCase ReportUseCase, m metrics.BusinessMetrics) ReportUseCase {
	return &reportUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *reportUseCaseWithMetrics) Build(
	ctx context.Context,
	now time.Time,
	currency *domain.Currency,
) (*domain.ExpirationReport, error) {
	start := time.Now()
	report, err := r.next.Build(ctx, now, currency)
	recordOperation(ctx, r.metrics, "reports", "report_build", start, err)
	return report, err
}

func (r *reportUseCaseWithMetrics) RenderPDF(report *domain.ExpirationReport, w io.Writer) error {
	start := time.Now()
	err := r.next.RenderPDF(report, w)
	recordOperation(context.Background(), r.metrics, "reports", "report_render", start, err)
	return err
}

func (r *reportUseCaseWithMetrics) Send(ctx context.Context, now time.Time) error {
	start := time.Now()
	err := r.next.Send(ctx, now)
	recordOperation(ctx, r.metrics, "reports", "report_send", start, err)
	return err
}
