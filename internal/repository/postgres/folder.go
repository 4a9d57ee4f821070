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

const folderColumns = `id, user_id, name, is_archived, sort_order, created_at, updated_at`

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanFolder(row rowScanner, folder *models.Folder) error {
	return row.Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Name,
		&folder.IsArchived,
		&folder.Order,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
}

// Create inserts a new folder at the end of the user's list. The order is
// one past the user's current maximum, computed in the INSERT under a
// per-user advisory lock so concurrent creates never share a position.
// The lock is transaction scoped, so callers run Create inside ExecTx.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	executor := GetExecutor(ctx, r.pool)

	if _, err := executor.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, folderOrderLockKey(folder.UserID)); err != nil {
		return fmt.Errorf("lock folder order: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (id, user_id, name, is_archived, sort_order, created_at, updated_at)
		VALUES (
			$1, $2, $3, $4,
			(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM %[1]s WHERE user_id = $2),
			$5, $6
		)
		RETURNING sort_order, created_at, updated_at
	`, r.tables.Folders)

	err := executor.QueryRow(ctx, query,
		folder.ID,
		folder.UserID,
		folder.Name,
		folder.IsArchived,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.Order, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("folder %s already exists", folder.ID),
				ResourceType: "folder",
				ResourceID:   folder.ID,
			}
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

func folderOrderLockKey(userID string) string {
	return "folder_order:" + userID
}

// GetByID retrieves a folder owned by userID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, folderColumns, r.tables.Folders)

	var folder models.Folder
	executor := GetExecutor(ctx, r.pool)
	if err := scanFolder(executor.QueryRow(ctx, query, id, userID), &folder); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// ListByUser retrieves all folders owned by userID in display order
func (r *PostgresFolderRepository) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY sort_order ASC, created_at ASC
	`, folderColumns, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// Rename sets a folder's name
func (r *PostgresFolderRepository) Rename(ctx context.Context, id, userID, name string, at time.Time) (*models.Folder, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING %s
	`, r.tables.Folders, folderColumns)

	var folder models.Folder
	executor := GetExecutor(ctx, r.pool)
	if err := scanFolder(executor.QueryRow(ctx, query, name, at, id, userID), &folder); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("rename folder: %w", err)
	}

	return &folder, nil
}

// ToggleArchived flips is_archived and returns the updated folder
func (r *PostgresFolderRepository) ToggleArchived(ctx context.Context, id, userID string, at time.Time) (*models.Folder, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_archived = NOT is_archived, updated_at = $1
		WHERE id = $2 AND user_id = $3
		RETURNING %s
	`, r.tables.Folders, folderColumns)

	var folder models.Folder
	executor := GetExecutor(ctx, r.pool)
	if err := scanFolder(executor.QueryRow(ctx, query, at, id, userID), &folder); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("toggle folder archive: %w", err)
	}

	return &folder, nil
}

// Delete removes a folder and returns the deleted row
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, userID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
		RETURNING %s
	`, r.tables.Folders, folderColumns)

	var folder models.Folder
	executor := GetExecutor(ctx, r.pool)
	if err := scanFolder(executor.QueryRow(ctx, query, id, userID), &folder); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete folder: %w", err)
	}

	return &folder, nil
}
