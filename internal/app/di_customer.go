package app

import (
	"context"
	"fmt"

	"github.com/allisson/cardwatch/internal/customer/domain"
	"github.com/allisson/cardwatch/internal/customer/platform"
	"github.com/allisson/cardwatch/internal/customer/report"
	customerRepository "github.com/allisson/cardwatch/internal/customer/repository"
	customerUseCase "github.com/allisson/cardwatch/internal/customer/usecase"
	"github.com/allisson/cardwatch/internal/database"
)

// CustomerRepository returns the customer repository based on database driver.
func (c *Container) CustomerRepository() (customerUseCase.CustomerRepository, error) {
	err := c.once(&c.customerRepositoryInit, "customerRepository", func() (err error) {
		c.customerRepository, err = c.initCustomerRepository()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.customerRepository, nil
}

// SyncRunRepository returns the sync run repository based on database driver.
func (c *Container) SyncRunRepository() (customerUseCase.SyncRunRepository, error) {
	err := c.once(&c.syncRunRepositoryInit, "syncRunRepository", func() (err error) {
		c.syncRunRepository, err = c.initSyncRunRepository()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.syncRunRepository, nil
}

// PlatformClient returns the payment platform client.
func (c *Container) PlatformClient() (customerUseCase.PlatformClient, error) {
	err := c.once(&c.platformClientInit, "platformClient", func() (err error) {
		c.platformClient, err = c.initPlatformClient()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.platformClient, nil
}

// ActionRequiredPolicy returns the action-required policy built from NEW_CUSTOMER_CUTOFF.
func (c *Container) ActionRequiredPolicy() (domain.ActionRequiredPolicy, error) {
	err := c.once(&c.actionPolicyInit, "actionPolicy", func() error {
		cutoff, err := c.config.CleanupCutoff()
		if err != nil {
			return err
		}
		c.actionPolicy = domain.NewActionRequiredPolicy(cutoff)
		return nil
	})
	if err != nil {
		return domain.ActionRequiredPolicy{}, err
	}
	return c.actionPolicy, nil
}

// ReportDeliveryEnabled reports whether SMTP and at least one recipient are configured.
func (c *Container) ReportDeliveryEnabled() bool {
	return c.config.SMTPHost != "" && len(c.config.Recipients()) > 0
}

// Mailer returns the SMTP mailer, or nil when SMTP_HOST is empty.
func (c *Container) Mailer() (customerUseCase.Mailer, error) {
	err := c.once(&c.mailerInit, "mailer", func() error {
		if c.config.SMTPHost == "" {
			return nil
		}
		mailer, err := report.NewSMTPMailer(report.SMTPConfig{
			Host:     c.config.SMTPHost,
			Port:     c.config.SMTPPort,
			Username: c.config.SMTPUsername,
			Password: c.config.SMTPPassword,
			From:     c.config.SMTPFrom,
			Timeout:  c.config.PlatformTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to create smtp mailer: %w", err)
		}
		c.mailer = mailer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.mailer, nil
}

// CustomerUseCase returns the customer use case.
func (c *Container) CustomerUseCase() (customerUseCase.CustomerUseCase, error) {
	err := c.once(&c.customerUseCaseInit, "customerUseCase", func() (err error) {
		c.customerUseCase, err = c.initCustomerUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.customerUseCase, nil
}

// SyncUseCase returns the sync use case.
func (c *Container) SyncUseCase() (customerUseCase.SyncUseCase, error) {
	err := c.once(&c.syncUseCaseInit, "syncUseCase", func() (err error) {
		c.syncUseCase, err = c.initSyncUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.syncUseCase, nil
}

// ReportUseCase returns the report use case.
func (c *Container) ReportUseCase() (customerUseCase.ReportUseCase, error) {
	err := c.once(&c.reportUseCaseInit, "reportUseCase", func() (err error) {
		c.reportUseCase, err = c.initReportUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.reportUseCase, nil
}

func (c *Container) initCustomerRepository() (customerUseCase.CustomerRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for customer repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return customerRepository.NewPostgreSQLCustomerRepository(db), nil
	case database.DriverMySQL:
		return customerRepository.NewMySQLCustomerRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initSyncRunRepository() (customerUseCase.SyncRunRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for sync run repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return customerRepository.NewPostgreSQLSyncRunRepository(db), nil
	case database.DriverMySQL:
		return customerRepository.NewMySQLSyncRunRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPlatformClient uses the configured tokens directly, or decrypts them through the
// KMS keeper when KMS_KEY_URI is set.
func (c *Container) initPlatformClient() (customerUseCase.PlatformClient, error) {
	tokens := platform.StaticTokens{
		domain.CurrencyUSD: c.config.PlatformAPITokenUSD,
		domain.CurrencyCAD: c.config.PlatformAPITokenCAD,
	}

	var source platform.TokenSource = tokens
	if c.config.KMSKeyURI != "" {
		resolver, err := platform.OpenTokenResolver(context.Background(), c.config.KMSKeyURI, tokens)
		if err != nil {
			return nil, err
		}
		c.tokenResolver = resolver
		source = resolver
	}

	return platform.NewClient(platform.Config{
		BaseURL:        c.config.PlatformBaseURL,
		PageSize:       c.config.PlatformPageSize,
		RequestsPerSec: c.config.PlatformRequestsPerSec,
		Timeout:        c.config.PlatformTimeout,
	}, source, c.Logger()), nil
}

func (c *Container) initCustomerUseCase() (customerUseCase.CustomerUseCase, error) {
	repo, err := c.CustomerRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get customer repository for customer use case: %w", err)
	}

	policy, err := c.ActionRequiredPolicy()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	useCase := customerUseCase.NewCustomerUseCase(repo, policy, domain.NewClientStatusPolicy())
	return customerUseCase.NewCustomerUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initSyncUseCase() (customerUseCase.SyncUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for sync use case: %w", err)
	}

	customers, err := c.CustomerRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get customer repository for sync use case: %w", err)
	}

	runs, err := c.SyncRunRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get sync run repository for sync use case: %w", err)
	}

	client, err := c.PlatformClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get platform client for sync use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	useCase := customerUseCase.NewSyncUseCase(txManager, customers, runs, client, c.Logger())
	return customerUseCase.NewSyncUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initReportUseCase() (customerUseCase.ReportUseCase, error) {
	customers, err := c.CustomerUseCase()
	if err != nil {
		return nil, err
	}

	policy, err := c.ActionRequiredPolicy()
	if err != nil {
		return nil, err
	}

	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	mailer, err := c.Mailer()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	useCase := customerUseCase.NewReportUseCase(
		customers,
		policy,
		report.NewPDFRenderer(loc),
		mailer,
		c.config.Recipients(),
		c.Logger(),
	)
	return customerUseCase.NewReportUseCaseWithMetrics(useCase, businessMetrics), nil
}
