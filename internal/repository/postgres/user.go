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

const userColumns = `id, email, first_name, last_name, is_admin, created_at, updated_at`

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanUser(row rowScanner, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

// EnsureExists inserts the user, or refreshes the email of an existing row
// when a non-empty one is given. Names and the admin flag are preserved.
func (r *PostgresUserRepository) EnsureExists(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, email, first_name, last_name, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			email = COALESCE(NULLIF(EXCLUDED.email, ''), %s.email)
		RETURNING %s
	`, r.tables.Users, r.tables.Users, userColumns)

	executor := GetExecutor(ctx, r.pool)
	err := scanUser(executor.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	), user)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by Firebase uid
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userColumns, r.tables.Users)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	if err := scanUser(executor.QueryRow(ctx, query, id), &user); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// ListAll retrieves every user ordered by email
func (r *PostgresUserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY email ASC`, userColumns, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// UpdateName sets first and last name
func (r *PostgresUserRepository) UpdateName(ctx context.Context, id, firstName, lastName string, at time.Time) (*models.User, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET first_name = $1, last_name = $2, updated_at = $3
		WHERE id = $4
		RETURNING %s
	`, r.tables.Users, userColumns)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	if err := scanUser(executor.QueryRow(ctx, query, firstName, lastName, at, id), &user); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update user name: %w", err)
	}

	return &user, nil
}

// SetAdmin flags or unflags a user as admin
func (r *PostgresUserRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	query := fmt.Sprintf(`UPDATE %s SET is_admin = $1, updated_at = NOW() WHERE id = $2`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, isAdmin, id)
	if err != nil {
		return fmt.Errorf("set admin: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
