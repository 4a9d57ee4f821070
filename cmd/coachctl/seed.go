package main

import (
	"fmt"
	"os"

	"contentcoach/internal/repository/postgres"
	"contentcoach/internal/seed"
	"contentcoach/internal/service"
	serviceAuth "contentcoach/internal/service/auth"

	"github.com/spf13/cobra"
)

var (
	seedUserID string
	seedFile   string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo folders and forms for a user",
	Long: `Create demo folders and forms for a user.

Uses the embedded demo fixture unless --file points at a YAML fixture.
Blocked when ENVIRONMENT=prod.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedUserID, "user", "", "Firebase uid that will own the data (required)")
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML fixture to load instead of the demo")
	_ = seedCmd.MarkFlagRequired("user")
}

func runSeed(cmd *cobra.Command, args []string) error {
	if app.cfg.IsProduction() {
		return fmt.Errorf("BLOCKED: cannot seed demo data in production")
	}

	fixture, err := loadFixture()
	if err != nil {
		return err
	}

	rc := app.repoConfig()
	formRepo := postgres.NewFormRepository(rc)
	folderRepo := postgres.NewFolderRepository(rc)
	txManager := postgres.NewTransactionManager(app.pool, app.logger)
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(formRepo, folderRepo)

	seeder := seed.NewSeeder(
		service.NewFolderService(folderRepo, formRepo, txManager, app.logger),
		service.NewFormService(formRepo, authorizer, app.logger),
		app.logger,
	)

	result, err := seeder.Apply(cmd.Context(), seedUserID, fixture)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d folders and %d forms for %s\n", result.Folders, result.Forms, seedUserID)
	return nil
}

func loadFixture() (*seed.Fixture, error) {
	if seedFile == "" {
		return seed.Demo()
	}
	data, err := os.ReadFile(seedFile)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return seed.Parse(data)
}
