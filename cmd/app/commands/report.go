package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/allisson/cardwatch/internal/customer/domain"
	customerUseCase "github.com/allisson/cardwatch/internal/customer/usecase"
)

// RunReport either emails the expiration report to the configured recipients (send)
// or renders it as a PDF into dst.
func RunReport(
	ctx context.Context,
	reportUseCase customerUseCase.ReportUseCase,
	logger *slog.Logger,
	writer io.Writer,
	dst io.Writer,
	now time.Time,
	currency *domain.Currency,
	send bool,
) error {
	if send {
		if currency != nil {
			return fmt.Errorf("--currency cannot be combined with --send: the emailed report covers every merchant")
		}
		if err := reportUseCase.Send(ctx, now); err != nil {
			return fmt.Errorf("failed to send report: %w", err)
		}
		_, err := fmt.Fprintf(writer, "Expiration report as of %s sent\n", now.Format(time.DateOnly))
		return err
	}

	report, err := reportUseCase.Build(ctx, now, currency)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := reportUseCase.RenderPDF(report, dst); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	logger.Info("expiration report rendered",
		slog.Int("customers", report.Summary.TotalCustomers),
		slog.Int("action_required", len(report.ActionRequired)),
	)

	_, err = fmt.Fprintf(writer,
		"Expiration report as of %s: %d customer(s), %d expired, %d expiring soon, %d action required\n",
		now.Format(time.DateOnly),
		report.Summary.TotalCustomers,
		report.Summary.Expired.Customers,
		report.Summary.ExpiringSoon.Customers,
		len(report.ActionRequired),
	)
	return err
}
