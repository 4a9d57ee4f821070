package models

import "time"

// Meeting is a coaching session scheduled with the company behind a form.
type Meeting struct {
	ID              string    `json:"id" db:"id"`
	FormID          string    `json:"formId" db:"form_id"`
	UserID          string    `json:"userId" db:"user_id"`
	Title           string    `json:"title" db:"title"`
	ScheduledAt     time.Time `json:"scheduledAt" db:"scheduled_at"`
	DurationMinutes int       `json:"durationMinutes" db:"duration_minutes"`
	Notes           string    `json:"notes" db:"notes"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// EndsAt returns the scheduled end of the meeting.
func (m *Meeting) EndsAt() time.Time {
	return m.ScheduledAt.Add(time.Duration(m.DurationMinutes) * time.Minute)
}
