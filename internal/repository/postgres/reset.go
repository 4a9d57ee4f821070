package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TruncateAll empties every table for the prefix, keeping the schema
func TruncateAll(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	names := make([]string, 0, len(tables.All()))
	for _, t := range tables.All() {
		names = append(names, pgx.Identifier{t}.Sanitize())
	}

	query := "TRUNCATE TABLE " + strings.Join(names, ", ") + " CASCADE"
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// DropAll drops every table for the prefix, goose's version table included,
// so the next migrate up starts from scratch.
func DropAll(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	names := append(tables.All(), tables.Prefix+"goose_db_version")

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, t := range names {
			if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+pgx.Identifier{t}.Sanitize()+" CASCADE"); err != nil {
				return fmt.Errorf("drop %s: %w", t, err)
			}
		}
		return nil
	})
}
