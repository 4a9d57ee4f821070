package services

import (
	"context"
	"time"

	"contentcoach/internal/domain/models"
)

// MeetingService schedules meetings against forms
type MeetingService interface {
	Schedule(ctx context.Context, userID, formID string, req *ScheduleMeetingRequest) (*models.Meeting, error)
	ListForForm(ctx context.Context, userID, formID string) ([]models.Meeting, error)
	ListUpcoming(ctx context.Context, userID string) ([]models.Meeting, error)
	Cancel(ctx context.Context, userID, meetingID string) error
}

// ScheduleMeetingRequest represents a meeting creation request
type ScheduleMeetingRequest struct {
	Title           string    `json:"title"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"` // 0 = default
	Notes           string    `json:"notes"`
}
