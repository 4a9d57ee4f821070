package main

import (
	"fmt"

	"contentcoach/internal/repository/postgres"

	"github.com/spf13/cobra"
)

var revokeAdmin bool

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin access",
}

var adminGrantCmd = &cobra.Command{
	Use:   "grant <uid>",
	Short: "Set the admin flag on a user row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		users := postgres.NewUserRepository(app.repoConfig())

		if err := users.SetAdmin(cmd.Context(), args[0], !revokeAdmin); err != nil {
			return err
		}

		state := "granted"
		if revokeAdmin {
			state = "revoked"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %s for %s\n", state, args[0])
		return nil
	},
}

func init() {
	adminGrantCmd.Flags().BoolVar(&revokeAdmin, "revoke", false, "Clear the flag instead of setting it")
	adminCmd.AddCommand(adminGrantCmd)
}
