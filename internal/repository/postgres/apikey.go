package postgres

import (
	"context"
	"fmt"
	"time"

	"contentcoach/internal/domain"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

const apiKeyColumns = `id, user_id, name, prefix, key_hash, created_at, last_used_at, revoked_at`

// PostgresAPIKeyRepository implements the APIKeyRepository interface
type PostgresAPIKeyRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAPIKeyRepository creates a new API key repository
func NewAPIKeyRepository(config *RepositoryConfig) repositories.APIKeyRepository {
	return &PostgresAPIKeyRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanAPIKey(row rowScanner, key *models.APIKey) error {
	return row.Scan(
		&key.ID,
		&key.UserID,
		&key.Name,
		&key.Prefix,
		&key.Hash,
		&key.CreatedAt,
		&key.LastUsedAt,
		&key.RevokedAt,
	)
}

// Create stores a new key
func (r *PostgresAPIKeyRepository) Create(ctx context.Context, key *models.APIKey) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, prefix, key_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.APIKeys)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, key.ID, key.UserID, key.Name, key.Prefix, key.Hash, key.CreatedAt)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "api key prefix collision",
				ResourceType: "api_key",
				ResourceID:   key.Prefix,
			}
		}
		return fmt.Errorf("create api key: %w", err)
	}

	return nil
}

// GetByPrefix looks up a key by its public prefix
func (r *PostgresAPIKeyRepository) GetByPrefix(ctx context.Context, prefix string) (*models.APIKey, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE prefix = $1`, apiKeyColumns, r.tables.APIKeys)

	var key models.APIKey
	executor := GetExecutor(ctx, r.pool)
	if err := scanAPIKey(executor.QueryRow(ctx, query, prefix), &key); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("api key %s: %w", prefix, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get api key: %w", err)
	}

	return &key, nil
}

// ListByUser lists a user's keys, newest first
func (r *PostgresAPIKeyRepository) ListByUser(ctx context.Context, userID string) ([]models.APIKey, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, apiKeyColumns, r.tables.APIKeys)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	keys := []models.APIKey{}
	for rows.Next() {
		var key models.APIKey
		if err := scanAPIKey(rows, &key); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api keys: %w", err)
	}

	return keys, nil
}

// Revoke marks a key revoked. Revoking twice is not an error.
func (r *PostgresAPIKeyRepository) Revoke(ctx context.Context, id, userID string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET revoked_at = COALESCE(revoked_at, $1)
		WHERE id = $2 AND user_id = $3
	`, r.tables.APIKeys)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, at, id, userID)
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("api key %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// TouchLastUsed records when a key was last used
func (r *PostgresAPIKeyRepository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET last_used_at = $1 WHERE id = $2`, r.tables.APIKeys)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, at, id); err != nil {
		return fmt.Errorf("touch api key: %w", err)
	}

	return nil
}
