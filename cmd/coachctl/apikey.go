package main

import (
	"fmt"

	"contentcoach/internal/repository/postgres"
	"contentcoach/internal/service"

	"github.com/spf13/cobra"
)

var (
	apiKeyUserID string
	apiKeyName   string
)

var apiKeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage API keys",
}

var apiKeyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Issue an API key for a user and print it once",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := service.NewAPIKeyService(postgres.NewAPIKeyRepository(app.repoConfig()), 0, app.logger)

		issued, err := keys.Create(cmd.Context(), apiKeyUserID, apiKeyName)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "id:     %s\n", issued.ID)
		fmt.Fprintf(out, "prefix: %s\n", issued.Prefix)
		fmt.Fprintf(out, "key:    %s\n", issued.Key)
		fmt.Fprintln(out, "Store the key now; it cannot be shown again.")
		return nil
	},
}

func init() {
	apiKeyCreateCmd.Flags().StringVar(&apiKeyUserID, "user", "", "Firebase uid that owns the key (required)")
	apiKeyCreateCmd.Flags().StringVar(&apiKeyName, "name", "", "Label shown in the admin panel (required)")
	_ = apiKeyCreateCmd.MarkFlagRequired("user")
	_ = apiKeyCreateCmd.MarkFlagRequired("name")
	apiKeyCmd.AddCommand(apiKeyCreateCmd)
}
