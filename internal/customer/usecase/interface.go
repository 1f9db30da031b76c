// Package usecase defines business logic interfaces for customer expiration tracking.
package usecase

import (
	"context"
	"io"
	"time"

	"github.com/allisson/cardwatch/internal/customer/domain"
	"github.com/allisson/cardwatch/internal/customer/platform"
)

// CustomerRepository defines persistence operations for customers and their cards.
// Implementations must support transaction-aware operations via context propagation.
type CustomerRepository interface {
	// ReplaceMerchant swaps the stored snapshot of one merchant account for a new one.
	ReplaceMerchant(ctx context.Context, currency domain.Currency, customers []*domain.Customer) error

	// List returns customers ordered by last name then first name. A nil currency lists
	// every merchant account.
	List(ctx context.Context, currency *domain.Currency) ([]*domain.Customer, error)

	// Get retrieves one customer. Returns ErrCustomerNotFound if not found.
	Get(ctx context.Context, currency domain.Currency, id string) (*domain.Customer, error)

	// Fingerprints returns the stored content hash of every customer of a merchant, by id.
	Fingerprints(ctx context.Context, currency domain.Currency) (map[string]string, error)
}

// SyncRunRepository defines persistence operations for sync run history.
type SyncRunRepository interface {
	Create(ctx context.Context, run *domain.SyncRun) error

	// Latest returns the most recent run of a merchant. Returns ErrSyncRunNotFound if none.
	Latest(ctx context.Context, currency domain.Currency) (*domain.SyncRun, error)
}

// PlatformClient pulls raw customer records from the payment platform.
type PlatformClient interface {
	ListCustomers(ctx context.Context, currency domain.Currency) ([]platform.RawCustomer, error)
}

// ReportRenderer writes an expiration report as a document.
type ReportRenderer interface {
	Render(report *domain.ExpirationReport, w io.Writer) error
}

// Attachment is a named document attached to an outgoing email.
type Attachment struct {
	Filename string
	Content  io.Reader
}

// Mailer delivers an email with optional attachments.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string, attachments ...Attachment) error
}

// CustomerUseCase serves the classified customer views. Every operation takes the
// reference instant explicitly so results are reproducible for a given "as of" date.
type CustomerUseCase interface {
	// List returns classified customers matching the filter in last name, first name order.
	List(ctx context.Context, now time.Time, filter domain.CustomerFilter) ([]*domain.CustomerWithExpiration, error)

	// Get returns one classified customer. Returns ErrCustomerNotFound if not found.
	Get(ctx context.Context, now time.Time, currency domain.Currency, id string) (*domain.CustomerWithExpiration, error)

	// ActionRequired returns the business customers needing follow-up, most urgent first.
	ActionRequired(
		ctx context.Context,
		now time.Time,
		filter domain.CustomerFilter,
	) ([]*domain.CustomerWithExpiration, error)

	// ClientStatuses assigns every matching customer its client status and priority.
	ClientStatuses(ctx context.Context, now time.Time, filter domain.CustomerFilter) ([]*domain.CustomerClientStatus, error)

	// Summary aggregates the matching population for dashboards.
	Summary(ctx context.Context, now time.Time, filter domain.CustomerFilter) (domain.SummaryStatistics, error)
}

// SyncUseCase pulls customers from the payment platform into local storage.
type SyncUseCase interface {
	// Sync replaces the stored snapshot of one merchant account and records a SyncRun for
	// both success and failure. Returns ErrSyncInProgress if the merchant is already syncing.
	Sync(ctx context.Context, currency domain.Currency) (*domain.SyncRun, error)

	// SyncAll syncs every merchant account concurrently. A failing merchant does not stop
	// the others; the first error is returned alongside every recorded run.
	SyncAll(ctx context.Context) ([]*domain.SyncRun, error)

	// LatestRuns returns the most recent run of every merchant that has synced at least once.
	LatestRuns(ctx context.Context) ([]*domain.SyncRun, error)
}

// ReportUseCase builds, renders and delivers the expiration report.
type ReportUseCase interface {
	Build(ctx context.Context, now time.Time, currency *domain.Currency) (*domain.ExpirationReport, error)

	RenderPDF(report *domain.ExpirationReport, w io.Writer) error

	// Send builds the report across every merchant account and emails it as a PDF to the
	// configured recipients.
	Send(ctx context.Context, now time.Time) error
}
