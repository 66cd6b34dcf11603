package main

import (
	"github.com/spf13/cobra"

	"github.com/spec-kit/helpdesk/internal/persistence"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	for _, sub := range []struct {
		command persistence.MigrationCommand
		short   string
	}{
		{persistence.MigrateUp, "Apply all pending migrations"},
		{persistence.MigrateDown, "Roll back the latest migration"},
		{persistence.MigrateStatus, "Print migration status"},
	} {
		migration := sub.command
		cmd.AddCommand(&cobra.Command{
			Use:   string(migration),
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				deps, cleanup, err := bootstrap(cmd.Context())
				if err != nil {
					return err
				}
				defer cleanup()
				return persistence.Migrate(cmd.Context(), deps.pg.PoolHandle(), migration, deps.logger)
			},
		})
	}
	return cmd
}
