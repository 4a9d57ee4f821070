package repositories

import (
	"context"
	"time"

	"contentcoach/internal/domain/models"
)

// MeetingRepository defines data access for scheduled meetings
type MeetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	// ListByForm returns the form's meetings, soonest first.
	ListByForm(ctx context.Context, formID, userID string) ([]models.Meeting, error)
	// ListUpcoming returns the user's meetings scheduled at or after from.
	ListUpcoming(ctx context.Context, userID string, from time.Time) ([]models.Meeting, error)
	Delete(ctx context.Context, id, userID string) error
}
