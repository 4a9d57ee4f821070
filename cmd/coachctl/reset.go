package main

import (
	"fmt"

	"contentcoach/internal/repository/postgres"

	"github.com/spf13/cobra"
)

var resetDrop bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data for the current table prefix",
	Long: `Delete all data for the current table prefix.

By default the tables are truncated. With --drop they are dropped along
with the migration history. Blocked when ENVIRONMENT=prod.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.cfg.IsProduction() {
			return fmt.Errorf("BLOCKED: cannot reset the production database")
		}

		if resetDrop {
			if err := postgres.DropAll(cmd.Context(), app.pool, app.tables); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dropped all %s tables\n", app.tables.Prefix)
			return nil
		}

		if err := postgres.TruncateAll(cmd.Context(), app.pool, app.tables); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "truncated all %s tables\n", app.tables.Prefix)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetDrop, "drop", false, "Drop the tables and migration history instead of truncating")
}
