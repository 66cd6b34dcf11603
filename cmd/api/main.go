package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/persistence"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "api",
		Short:         "IT helpdesk ticket service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand(), newAdminCommand())
	return root
}

// runtimeDeps are the pieces every subcommand needs.
type runtimeDeps struct {
	cfg    *config.Config
	logger *zap.Logger
	pg     *persistence.Postgres
}

func bootstrap(ctx context.Context) (*runtimeDeps, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	cleanup := func() {
		pg.Close()
		_ = logger.Sync()
	}
	return &runtimeDeps{cfg: cfg, logger: logger, pg: pg}, cleanup, nil
}
