package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies the customers and sync_runs migrations for the configured driver.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	logger.Info("running database migrations", slog.String("driver", dbDriver))

	migrationsPath := "file://migrations/postgresql"
	databaseURL := dbConnectionString
	if dbDriver == "mysql" {
		migrationsPath = "file://migrations/mysql"
		url, err := mysqlMigrationURL(dbConnectionString)
		if err != nil {
			return err
		}
		databaseURL = url
	}

	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// mysqlMigrationURL turns a go-sql-driver DSN into the mysql:// URL migrate expects.
// The migration files hold several statements each, so multiStatements is forced on.
func mysqlMigrationURL(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(strings.TrimPrefix(dsn, "mysql://"))
	if err != nil {
		return "", fmt.Errorf("invalid mysql connection string: %w", err)
	}
	cfg.MultiStatements = true
	return "mysql://" + cfg.FormatDSN(), nil
}
