package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/allisson/cardwatch/internal/app"
	"github.com/allisson/cardwatch/internal/config"
)

// RunWorker runs the cron scheduler, plus the metrics server when metrics are enabled,
// until SIGINT/SIGTERM. Running jobs are allowed to finish before it returns.
func RunWorker(ctx context.Context, version string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting worker",
		slog.String("version", version),
		slog.String("sync_schedule", cfg.SyncSchedule),
		slog.String("report_schedule", cfg.ReportSchedule),
		slog.Bool("report_delivery", container.ReportDeliveryEnabled()),
	)
	defer closeContainer(container, logger)

	scheduler, err := container.Scheduler()
	if err != nil {
		return fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	components := map[string]runnable{"scheduler": scheduler}
	if metricsServer != nil {
		components["metrics server"] = metricsServer
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return serveUntilDone(ctx, cfg, logger, components)
}
