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

const formColumns = `id, user_id, company_name, logo_url, presentation_url, folder_id, is_archived, created_at, updated_at`

// PostgresFormRepository implements the FormRepository interface
type PostgresFormRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFormRepository creates a new form repository
func NewFormRepository(config *RepositoryConfig) repositories.FormRepository {
	return &PostgresFormRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanForm(row rowScanner, form *models.Form) error {
	return row.Scan(
		&form.ID,
		&form.UserID,
		&form.CompanyName,
		&form.LogoURL,
		&form.PresentationURL,
		&form.FolderID,
		&form.IsArchived,
		&form.CreatedAt,
		&form.UpdatedAt,
	)
}

// Create inserts a new form. The caller assigns the ID.
func (r *PostgresFormRepository) Create(ctx context.Context, form *models.Form) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, company_name, logo_url, presentation_url, folder_id, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, r.tables.Forms)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		form.ID,
		form.UserID,
		form.CompanyName,
		form.LogoURL,
		form.PresentationURL,
		form.FolderID,
		form.IsArchived,
		form.CreatedAt,
		form.UpdatedAt,
	).Scan(&form.CreatedAt, &form.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("form %s already exists", form.ID),
				ResourceType: "form",
				ResourceID:   form.ID,
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %v: %w", derefOr(form.FolderID, ""), domain.ErrNotFound)
		}
		return fmt.Errorf("create form: %w", err)
	}

	return nil
}

// GetByID retrieves a form owned by userID
func (r *PostgresFormRepository) GetByID(ctx context.Context, id, userID string) (*models.Form, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, formColumns, r.tables.Forms)

	var form models.Form
	executor := GetExecutor(ctx, r.pool)
	if err := scanForm(executor.QueryRow(ctx, query, id, userID), &form); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("form %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get form: %w", err)
	}

	return &form, nil
}

// GetByIDOnly retrieves a form by ID without owner scoping
func (r *PostgresFormRepository) GetByIDOnly(ctx context.Context, id string) (*models.Form, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, formColumns, r.tables.Forms)

	var form models.Form
	executor := GetExecutor(ctx, r.pool)
	if err := scanForm(executor.QueryRow(ctx, query, id), &form); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("form %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get form: %w", err)
	}

	return &form, nil
}

// ListByUser retrieves all forms owned by userID, newest first
func (r *PostgresFormRepository) ListByUser(ctx context.Context, userID string) ([]models.Form, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, formColumns, r.tables.Forms)

	return r.list(ctx, query, userID)
}

// ListAll retrieves every form, newest first
func (r *PostgresFormRepository) ListAll(ctx context.Context) ([]models.Form, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY created_at DESC
	`, formColumns, r.tables.Forms)

	return r.list(ctx, query)
}

func (r *PostgresFormRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Form, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	forms := []models.Form{}
	for rows.Next() {
		var form models.Form
		if err := scanForm(rows, &form); err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		forms = append(forms, form)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate forms: %w", err)
	}

	return forms, nil
}

// Update writes the editable fields of a form
func (r *PostgresFormRepository) Update(ctx context.Context, form *models.Form) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET company_name = $1, logo_url = $2, presentation_url = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`, r.tables.Forms)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		form.CompanyName,
		form.LogoURL,
		form.PresentationURL,
		form.UpdatedAt,
		form.ID,
		form.UserID,
	)
	if err != nil {
		return fmt.Errorf("update form: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("form %s: %w", form.ID, domain.ErrNotFound)
	}

	return nil
}

// SetFolder files a form under folderID (nil = no folder)
func (r *PostgresFormRepository) SetFolder(ctx context.Context, id, userID string, folderID *string, at time.Time) (*models.Form, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING %s
	`, r.tables.Forms, formColumns)

	var form models.Form
	executor := GetExecutor(ctx, r.pool)
	if err := scanForm(executor.QueryRow(ctx, query, folderID, at, id, userID), &form); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("form %s: %w", id, domain.ErrNotFound)
		}
		if IsPgForeignKeyError(err) {
			return nil, fmt.Errorf("folder %s: %w", derefOr(folderID, ""), domain.ErrNotFound)
		}
		return nil, fmt.Errorf("move form: %w", err)
	}

	return &form, nil
}

// ToggleArchived flips is_archived and returns the updated form
func (r *PostgresFormRepository) ToggleArchived(ctx context.Context, id, userID string, at time.Time) (*models.Form, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_archived = NOT is_archived, updated_at = $1
		WHERE id = $2 AND user_id = $3
		RETURNING %s
	`, r.tables.Forms, formColumns)

	var form models.Form
	executor := GetExecutor(ctx, r.pool)
	if err := scanForm(executor.QueryRow(ctx, query, at, id, userID), &form); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("form %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("toggle form archive: %w", err)
	}

	return &form, nil
}

// ClearFolder releases every form in folderID back to "no folder"
func (r *PostgresFormRepository) ClearFolder(ctx context.Context, folderID, userID string, at time.Time) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = NULL, updated_at = $1
		WHERE folder_id = $2 AND user_id = $3
	`, r.tables.Forms)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, at, folderID, userID)
	if err != nil {
		return 0, fmt.Errorf("clear folder %s: %w", folderID, err)
	}

	return result.RowsAffected(), nil
}

// Delete removes a form owned by userID
func (r *PostgresFormRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Forms)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("form %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByID removes a form regardless of owner
func (r *PostgresFormRepository) DeleteByID(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Forms)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("form %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
