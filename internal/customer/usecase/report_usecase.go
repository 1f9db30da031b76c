package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/allisson/cardwatch/internal/customer/domain"
	apperrors "github.com/allisson/cardwatch/internal/errors"
)

// ReportFilename is the attachment name of the emailed report.
const ReportFilename = "card-expiration-report.pdf"

// reportUseCase implements the ReportUseCase interface.
type reportUseCase struct {
	customerUseCase CustomerUseCase
	actionPolicy    domain.ActionRequiredPolicy
	renderer        ReportRenderer
	mailer          Mailer
	recipients      []string
	logger          *slog.Logger
}

// Build classifies the merchant scope and groups it into report sections.
func (r *reportUseCase) Build(
	ctx context.Context,
	now time.Time,
	currency *domain.Currency,
) (*domain.ExpirationReport, error) {
	customers, err := r.customerUseCase.List(ctx, now, domain.CustomerFilter{Currency: currency})
	if err != nil {
		return nil, err
	}
	return domain.BuildExpirationReport(customers, r.actionPolicy, currency, now), nil
}

// RenderPDF writes the report as a PDF document.
func (r *reportUseCase) RenderPDF(report *domain.ExpirationReport, w io.Writer) error {
	return r.renderer.Render(report, w)
}

// Send emails the report covering every merchant account.
func (r *reportUseCase) Send(ctx context.Context, now time.Time) error {
	if r.mailer == nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "report delivery is not configured")
	}
	if len(r.recipients) == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "no report recipients configured")
	}

	report, err := r.Build(ctx, now, nil)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := r.RenderPDF(report, &buf); err != nil {
		return err
	}

	subject := fmt.Sprintf("Card expiration report %s", now.Format("2006-01-02"))
	body := fmt.Sprintf(
		"Customers: %d\nCards: %d\nExpired: %d customers (%d cards)\n"+
			"Expiring soon: %d customers (%d cards)\nExpiring later: %d customers (%d cards)\n"+
			"Action required: %d customers\n",
		report.Summary.TotalCustomers,
		report.Summary.TotalCards,
		report.Summary.Expired.Customers, report.Summary.Expired.Cards,
		report.Summary.ExpiringSoon.Customers, report.Summary.ExpiringSoon.Cards,
		report.Summary.ExpiringLater.Customers, report.Summary.ExpiringLater.Cards,
		len(report.ActionRequired),
	)

	if err := r.mailer.Send(ctx, r.recipients, subject, body, Attachment{
		Filename: ReportFilename,
		Content:  &buf,
	}); err != nil {
		return err
	}

	r.logger.Info("expiration report sent",
		slog.Int("recipients", len(r.recipients)),
		slog.Int("customers", report.Summary.TotalCustomers),
		slog.Int("action_required", len(report.ActionRequired)),
	)
	return nil
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	customerUseCase CustomerUseCase,
	actionPolicy domain.ActionRequiredPolicy,
	renderer ReportRenderer,
	mailer Mailer,
	recipients []string,
	logger *slog.Logger,
) ReportUseCase {
	return &reportUseCase{
		customerUseCase: customerUseCase,
		actionPolicy:    actionPolicy,
		renderer:        renderer,
		mailer:          mailer,
		recipients:      recipients,
		logger:          logger,
	}
}
