package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cardwatch/cmd/app/commands"
	"github.com/allisson/cardwatch/internal/app"
	"github.com/allisson/cardwatch/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "worker",
			Usage: "Run scheduled merchant syncs and report delivery",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunWorker(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "create-api-token",
			Usage: "Generate a bearer token for the /v1 API and print its hash",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)

				tokenService, err := container.TokenService()
				if err != nil {
					return err
				}

				return commands.RunCreateAPIToken(
					tokenService,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func currencyFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "currency",
		Aliases: []string{"c"},
		Usage:   usage,
	}
}

func asOfFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "as-of",
		Usage: "Reference date in YYYY-MM-DD format, interpreted in REPORT_TIMEZONE (default: now)",
	}
}
