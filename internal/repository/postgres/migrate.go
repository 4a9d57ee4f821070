package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// tablePrefixEnv is substituted into the migration files (goose ENVSUB).
const tablePrefixEnv = "CC_TABLE_PREFIX"

// Migrator applies the embedded schema migrations for one table prefix.
// Each prefix gets its own goose version table.
type Migrator struct {
	db     *sql.DB
	tables *TableNames
	logger *slog.Logger
}

// NewMigrator wraps the pool in a database/sql handle for goose.
// Close releases the handle; the pool stays open.
func NewMigrator(pool *pgxpool.Pool, tables *TableNames, logger *slog.Logger) *Migrator {
	return &Migrator{
		db:     stdlib.OpenDBFromPool(pool),
		tables: tables,
		logger: logger,
	}
}

func (m *Migrator) setup() error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseLogger{logger: m.logger})
	goose.SetTableName(m.tables.Prefix + "goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := os.Setenv(tablePrefixEnv, m.tables.Prefix); err != nil {
		return fmt.Errorf("export table prefix: %w", err)
	}
	return nil
}

// Up applies all pending migrations
func (m *Migrator) Up(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, m.db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration
func (m *Migrator) Down(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, m.db, "migrations"); err != nil {
		return fmt.Errorf("roll back migration: %w", err)
	}
	return nil
}

// Status logs the applied state of every migration
func (m *Migrator) Status(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, m.db, "migrations"); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

// Version returns the current schema version
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	if err := m.setup(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, m.db)
}

// Close releases the database/sql handle
func (m *Migrator) Close() error {
	return m.db.Close()
}

// gooseLogger routes goose output through slog
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
	os.Exit(1)
}
