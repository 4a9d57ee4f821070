// Command coachctl is the operator CLI for the Content Coach database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"contentcoach/internal/config"
	"contentcoach/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// env holds what every subcommand needs, opened in PersistentPreRunE
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
	pool     *pgxpool.Pool
	tables   *postgres.TableNames
}

func (e *env) repoConfig() *postgres.RepositoryConfig {
	return &postgres.RepositoryConfig{Pool: e.pool, Tables: e.tables, Logger: e.logger}
}

func (e *env) close() {
	if e.pool != nil {
		e.pool.Close()
	}
	if e.closeLog != nil {
		_ = e.closeLog()
	}
}

var app = &env{}

var rootCmd = &cobra.Command{
	Use:           "coachctl",
	Short:         "Content Coach operator tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}

		logger, closeLog, err := config.NewLogger(cfg, "coachctl")
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}

		pool, err := postgres.CreateConnectionPool(cmd.Context(), cfg.DatabaseURL, postgres.PoolOptions{MaxConns: 4, MinConns: 1})
		if err != nil {
			_ = closeLog()
			return fmt.Errorf("connect to database: %w", err)
		}

		app.cfg = cfg
		app.logger = logger
		app.closeLog = closeLog
		app.pool = pool
		app.tables = postgres.NewTableNames(cfg.TablePrefix)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		app.close()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, resetCmd, apiKeyCmd, adminCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		app.close()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
