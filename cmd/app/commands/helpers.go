// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"

	"github.com/allisson/cardwatch/internal/app"
	"github.com/allisson/cardwatch/internal/config"
	"github.com/allisson/cardwatch/internal/customer/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// ParseCurrency converts an optional --currency flag. An empty value means every
// merchant account.
func ParseCurrency(value string) (*domain.Currency, error) {
	if value == "" {
		return nil, nil
	}
	currency, err := domain.ParseCurrency(value)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q (valid options: USD, CAD)", value)
	}
	return &currency, nil
}

// ReferenceTime resolves an optional --as-of date (YYYY-MM-DD) to midnight in loc.
// An empty value means now.
func ReferenceTime(asOf string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if asOf == "" {
		return now.In(loc), nil
	}
	t, err := time.ParseInLocation(config.DateLayout, asOf, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as-of date %q (expected YYYY-MM-DD)", asOf)
	}
	return t, nil
}

// writeJSON writes v as indented JSON for machine consumption.
func writeJSON(w io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
