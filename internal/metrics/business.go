package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Sync outcomes recorded by RecordSync.
const (
	SyncOutcomeFetched  = "fetched"
	SyncOutcomeChanged  = "changed"
	SyncOutcomeRejected = "rejected"
)

// BusinessMetrics records use case operation metrics.
type BusinessMetrics interface {
	// RecordOperation records a business operation with its status.
	// Domain examples: "customers", "sync", "reports"
	// Operation examples: "list", "action_required", "sync_merchant"
	// Status examples: "success", "error"
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration of a business operation with its status.
	// Duration is recorded in seconds as a histogram for percentile calculations.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordSync records how many customer records a merchant synchronization fetched,
	// found changed and rejected.
	RecordSync(ctx context.Context, currency string, fetched, changed, rejected int)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	syncCounter      metric.Int64Counter
}

// NewBusinessMetrics creates a BusinessMetrics backed by the given meter provider.
// The namespace is used as a prefix for all metric names (e.g., "cardwatch").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	syncCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_synced_customers_total", namespace),
		metric.WithDescription("Customer records processed by merchant synchronization"),
		metric.WithUnit("{customer}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync counter: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		syncCounter:      syncCounter,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordSync(ctx context.Context, currency string, fetched, changed, rejected int) {
	for outcome, count := range map[string]int{
		SyncOutcomeFetched:  fetched,
		SyncOutcomeChanged:  changed,
		SyncOutcomeRejected: rejected,
	} {
		b.syncCounter.Add(ctx, int64(count),
			metric.WithAttributes(
				attribute.String("currency", currency),
				attribute.String("outcome", outcome),
			),
		)
	}
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordSync(ctx context.Context, currency string, fetched, changed, rejected int) {
}
