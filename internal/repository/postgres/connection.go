package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"contentcoach/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Prefix   string
	Users    string
	Folders  string
	Forms    string
	Settings string
	APIKeys  string
	Meetings string
}

// NewTableNames creates table names with the given prefix (dev_, test_, prod_)
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Prefix:   prefix,
		Users:    prefix + "users",
		Folders:  prefix + "folders",
		Forms:    prefix + "forms",
		Settings: prefix + "user_settings",
		APIKeys:  prefix + "api_keys",
		Meetings: prefix + "meetings",
	}
}

// All returns every table, children first, in a safe order for truncation.
func (t *TableNames) All() []string {
	return []string{t.Meetings, t.APIKeys, t.Settings, t.Forms, t.Folders, t.Users}
}

// PoolOptions sizes the connection pool
type PoolOptions struct {
	MaxConns int32
	MinConns int32
}

// DefaultPoolOptions returns the pool size used by the API server
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{MaxConns: 25, MinConns: 5}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Port 6543 is the transaction-mode PgBouncer port of managed Postgres
// providers. It cannot hold prepared statements, so unless the connection
// string picks a mode itself, QueryExecModeCacheDescribe is used there: it
// keeps the extended protocol (needed to encode map values into JSONB) while
// only caching statement descriptions.
//
// Table names are interpolated with fmt.Sprintf before the SQL reaches the
// server; values always go through placeholders.
func CreateConnectionPool(ctx context.Context, databaseURL string, opts PoolOptions) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = opts.MaxConns
	config.MinConns = opts.MinConns

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction carried by ctx, or the pool.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
