package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cardwatch/cmd/app/commands"
	"github.com/allisson/cardwatch/internal/app"
	"github.com/allisson/cardwatch/internal/config"
	"github.com/allisson/cardwatch/internal/customer/domain"
	customerUseCase "github.com/allisson/cardwatch/internal/customer/usecase"
)

func getCustomerCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "sync",
			Usage: "Pull customers from the payment platform into local storage",
			Flags: []cli.Flag{
				currencyFlag("Merchant account to sync (USD or CAD, default: all)"),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				currency, err := commands.ParseCurrency(cmd.String("currency"))
				if err != nil {
					return err
				}

				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				syncUseCase, err := container.SyncUseCase()
				if err != nil {
					return err
				}

				return commands.RunSync(
					ctx,
					syncUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					currency,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "report",
			Usage: "Render the expiration report as PDF or email it to REPORT_RECIPIENTS",
			Flags: []cli.Flag{
				currencyFlag("Merchant account to report on (USD or CAD, default: all)"),
				asOfFlag(),
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   customerUseCase.ReportFilename,
					Usage:   "PDF output path",
				},
				&cli.BoolFlag{
					Name:  "send",
					Usage: "Email the report instead of writing it to --output",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				currency, err := commands.ParseCurrency(cmd.String("currency"))
				if err != nil {
					return err
				}

				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				now, err := referenceTime(container, cmd.String("as-of"))
				if err != nil {
					return err
				}

				reportUseCase, err := container.ReportUseCase()
				if err != nil {
					return err
				}

				send := cmd.Bool("send")
				var dst io.Writer
				if !send {
					file, err := os.Create(cmd.String("output"))
					if err != nil {
						return fmt.Errorf("failed to create output file: %w", err)
					}
					defer func() { _ = file.Close() }()
					dst = file
				}

				return commands.RunReport(
					ctx,
					reportUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					dst,
					now,
					currency,
					send,
				)
			},
		},
		{
			Name:  "action-required",
			Usage: "List business customers needing follow-up, most urgent first",
			Flags: []cli.Flag{
				currencyFlag("Merchant account to list (USD or CAD, default: all)"),
				asOfFlag(),
				&cli.StringFlag{
					Name:    "search",
					Aliases: []string{"s"},
					Usage:   "Case-insensitive search over names, customer id, card last4 and emails",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				currency, err := commands.ParseCurrency(cmd.String("currency"))
				if err != nil {
					return err
				}

				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				now, err := referenceTime(container, cmd.String("as-of"))
				if err != nil {
					return err
				}

				useCase, err := container.CustomerUseCase()
				if err != nil {
					return err
				}

				return commands.RunActionRequired(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					now,
					domain.CustomerFilter{Currency: currency, Search: cmd.String("search")},
					cmd.String("format"),
				)
			},
		},
	}
}

// referenceTime resolves --as-of in the report time zone.
func referenceTime(container *app.Container, asOf string) (time.Time, error) {
	loc, err := container.Location()
	if err != nil {
		return time.Time{}, err
	}
	return commands.ReferenceTime(asOf, time.Now(), loc)
}
