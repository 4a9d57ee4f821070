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

const meetingColumns = `id, form_id, user_id, title, scheduled_at, duration_minutes, notes, created_at`

// PostgresMeetingRepository implements the MeetingRepository interface
type PostgresMeetingRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(config *RepositoryConfig) repositories.MeetingRepository {
	return &PostgresMeetingRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanMeeting(row rowScanner, m *models.Meeting) error {
	return row.Scan(
		&m.ID,
		&m.FormID,
		&m.UserID,
		&m.Title,
		&m.ScheduledAt,
		&m.DurationMinutes,
		&m.Notes,
		&m.CreatedAt,
	)
}

// Create stores a meeting
func (r *PostgresMeetingRepository) Create(ctx context.Context, m *models.Meeting) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, form_id, user_id, title, scheduled_at, duration_minutes, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Meetings)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		m.ID,
		m.FormID,
		m.UserID,
		m.Title,
		m.ScheduledAt,
		m.DurationMinutes,
		m.Notes,
		m.CreatedAt,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("form %s: %w", m.FormID, domain.ErrNotFound)
		}
		return fmt.Errorf("create meeting: %w", err)
	}

	return nil
}

// ListByForm lists a form's meetings, soonest first
func (r *PostgresMeetingRepository) ListByForm(ctx context.Context, formID, userID string) ([]models.Meeting, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE form_id = $1 AND user_id = $2
		ORDER BY scheduled_at ASC
	`, meetingColumns, r.tables.Meetings)

	return r.list(ctx, query, formID, userID)
}

// ListUpcoming lists a user's meetings from the given instant on
func (r *PostgresMeetingRepository) ListUpcoming(ctx context.Context, userID string, from time.Time) ([]models.Meeting, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND scheduled_at >= $2
		ORDER BY scheduled_at ASC
	`, meetingColumns, r.tables.Meetings)

	return r.list(ctx, query, userID, from)
}

func (r *PostgresMeetingRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Meeting, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	meetings := []models.Meeting{}
	for rows.Next() {
		var m models.Meeting
		if err := scanMeeting(rows, &m); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meetings: %w", err)
	}

	return meetings, nil
}

// Delete cancels a meeting owned by userID
func (r *PostgresMeetingRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Meetings)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("meeting %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
