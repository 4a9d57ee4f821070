package service

import (
	"context"
	"testing"
	"time"

	"contentcoach/internal/config"
	"contentcoach/internal/domain"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMeetingService(fx *fixture, now time.Time) *meetingService {
	svc := NewMeetingService(fx.meetings, fx.authorizer, testLogger()).(*meetingService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestMeetingService_Schedule(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		formID       string
		req          services.ScheduleMeetingRequest
		wantErr      error
		wantDuration int
	}{
		{
			name:         "default duration",
			formID:       "t1",
			req:          services.ScheduleMeetingRequest{Title: "Kickoff", ScheduledAt: now.Add(24 * time.Hour)},
			wantDuration: config.DefaultMeetingMinutes,
		},
		{
			name:         "explicit duration",
			formID:       "t1",
			req:          services.ScheduleMeetingRequest{Title: "Review", ScheduledAt: now.Add(time.Hour), DurationMinutes: 30},
			wantDuration: 30,
		},
		{
			name:    "in the past",
			formID:  "t1",
			req:     services.ScheduleMeetingRequest{Title: "Late", ScheduledAt: now.Add(-time.Minute)},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing title",
			formID:  "t1",
			req:     services.ScheduleMeetingRequest{Title: " ", ScheduledAt: now.Add(time.Hour)},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "too short",
			formID:  "t1",
			req:     services.ScheduleMeetingRequest{Title: "Quick", ScheduledAt: now.Add(time.Hour), DurationMinutes: 5},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "too long",
			formID:  "t1",
			req:     services.ScheduleMeetingRequest{Title: "Offsite", ScheduledAt: now.Add(time.Hour), DurationMinutes: 600},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "foreign form",
			formID:  "theirs",
			req:     services.ScheduleMeetingRequest{Title: "Kickoff", ScheduledAt: now.Add(time.Hour)},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()
			fx.addForm("t1", "u1", "Acme", nil, false)
			fx.addForm("theirs", "u2", "Beta", nil, false)
			svc := newTestMeetingService(fx, now)

			req := tt.req
			meeting, err := svc.Schedule(context.Background(), "u1", tt.formID, &req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, fx.store.meetings)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDuration, meeting.DurationMinutes)
			assert.Equal(t, "t1", meeting.FormID)
			assert.Contains(t, fx.store.meetings, meeting.ID)
		})
	}
}

func TestMeetingService_ListAndCancel(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	fx := newFixture()
	fx.addForm("t1", "u1", "Acme", nil, false)
	fx.store.meetings["past"] = models.Meeting{ID: "past", FormID: "t1", UserID: "u1", ScheduledAt: now.Add(-time.Hour)}
	fx.store.meetings["later"] = models.Meeting{ID: "later", FormID: "t1", UserID: "u1", ScheduledAt: now.Add(48 * time.Hour)}
	fx.store.meetings["soon"] = models.Meeting{ID: "soon", FormID: "t1", UserID: "u1", ScheduledAt: now.Add(time.Hour)}
	svc := newTestMeetingService(fx, now)
	ctx := context.Background()

	upcoming, err := svc.ListUpcoming(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "soon", upcoming[0].ID)
	assert.Equal(t, "later", upcoming[1].ID)

	all, err := svc.ListForForm(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.ListForForm(ctx, "u2", "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Cancel(ctx, "u2", "soon"), domain.ErrNotFound)
	require.NoError(t, svc.Cancel(ctx, "u1", "soon"))
	assert.NotContains(t, fx.store.meetings, "soon")
}
