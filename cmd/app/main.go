// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/clientguard/clientguard/cmd/app/commands"
	"github.com/clientguard/clientguard/internal/app"
	"github.com/clientguard/clientguard/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "clientguard",
		Usage:   "Role-gated client registry with a security audit trail",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					return commands.RunMigrations(
						container.Logger(),
						cfg.DBDriver,
						cfg.DBConnectionString,
					)
				},
			},
			{
				Name:  "create-session",
				Usage: "Mint an authenticated session directly in the session store",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "user-id",
						Aliases: []string{"u"},
						Value:   "",
						Usage:   "User ID for the session (generated when empty)",
					},
					&cli.StringFlag{
						Name:    "role",
						Aliases: []string{"r"},
						Value:   "Admin",
						Usage:   "Role claim for the session (e.g., Admin or Externo)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format (text or json)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer shutdownContainer(container, logger)

					sessionUseCase, err := container.SessionUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize session use case: %w", err)
					}

					return commands.RunCreateSession(
						ctx,
						sessionUseCase,
						logger,
						cfg.AuthClaimNamespace,
						cmd.String("user-id"),
						cmd.String("role"),
						cfg.SessionTTL,
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "revoke-session",
				Usage: "Remove a session from the session store",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "session-id",
						Aliases: []string{"s"},
						Value:   "",
						Usage:   "ID of the session to revoke",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer shutdownContainer(container, logger)

					sessionUseCase, err := container.SessionUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize session use case: %w", err)
					}

					return commands.RunRevokeSession(
						ctx,
						sessionUseCase,
						logger,
						cmd.String("session-id"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "security-report",
				Usage: "Print the aggregated security report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format (text or json)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer shutdownContainer(container, logger)

					eventUseCase, err := container.SecurityEventUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize security event use case: %w", err)
					}

					return commands.RunSecurityReport(
						ctx,
						eventUseCase,
						logger,
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func shutdownContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}
