package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/allisson/cardwatch/internal/customer/domain"
	customerUseCase "github.com/allisson/cardwatch/internal/customer/usecase"
)

// syncRunOutput is the JSON shape of one sync run.
type syncRunOutput struct {
	Currency      domain.Currency `json:"currency"`
	Status        string          `json:"status"`
	StartedAt     time.Time       `json:"started_at"`
	DurationMS    int64           `json:"duration_ms"`
	CustomerCount int             `json:"customer_count"`
	CardCount     int             `json:"card_count"`
	ChangedCount  int             `json:"changed_count"`
	RejectedCount int             `json:"rejected_count"`
	Error         string          `json:"error,omitempty"`
}

// RunSync pulls customers from the payment platform for one merchant account, or for
// every account when currency is nil. Runs are printed even when a merchant fails.
func RunSync(
	ctx context.Context,
	syncUseCase customerUseCase.SyncUseCase,
	logger *slog.Logger,
	writer io.Writer,
	currency *domain.Currency,
	format string,
) error {
	var (
		runs    []*domain.SyncRun
		syncErr error
	)
	if currency == nil {
		logger.Info("syncing all merchant accounts")
		runs, syncErr = syncUseCase.SyncAll(ctx)
	} else {
		logger.Info("syncing merchant account", slog.String("currency", string(*currency)))
		var run *domain.SyncRun
		run, syncErr = syncUseCase.Sync(ctx, *currency)
		if run != nil {
			runs = append(runs, run)
		}
	}

	var err error
	if format == "json" {
		err = outputSyncJSON(writer, runs)
	} else {
		err = outputSyncText(writer, runs)
	}
	if err != nil {
		return err
	}

	if syncErr != nil {
		return fmt.Errorf("failed to sync customers: %w", syncErr)
	}
	return nil
}

func outputSyncText(w io.Writer, runs []*domain.SyncRun) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CURRENCY\tSTATUS\tCUSTOMERS\tCARDS\tCHANGED\tREJECTED\tDURATION\tERROR")
	for _, run := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			run.Currency, run.Status, run.CustomerCount, run.CardCount,
			run.ChangedCount, run.RejectedCount, run.Duration().Round(time.Millisecond), run.Error)
	}
	return tw.Flush()
}

func outputSyncJSON(w io.Writer, runs []*domain.SyncRun) error {
	output := make([]syncRunOutput, 0, len(runs))
	for _, run := range runs {
		output = append(output, syncRunOutput{
			Currency:      run.Currency,
			Status:        string(run.Status),
			StartedAt:     run.StartedAt,
			DurationMS:    run.Duration().Milliseconds(),
			CustomerCount: run.CustomerCount,
			CardCount:     run.CardCount,
			ChangedCount:  run.ChangedCount,
			RejectedCount: run.RejectedCount,
			Error:         run.Error,
		})
	}
	return writeJSON(w, output)
}
