package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"contentcoach/internal/config"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/repositories"
	"contentcoach/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type meetingService struct {
	meetingRepo repositories.MeetingRepository
	authorizer  services.ResourceAuthorizer
	now         func() time.Time
	logger      *slog.Logger
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) services.MeetingService {
	return &meetingService{
		meetingRepo: meetingRepo,
		authorizer:  authorizer,
		now:         time.Now,
		logger:      logger,
	}
}

// Schedule books a meeting against one of the caller's forms
func (s *meetingService) Schedule(ctx context.Context, userID, formID string, req *services.ScheduleMeetingRequest) (*models.Meeting, error) {
	if formID == "" {
		return nil, requiredError("form id")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Notes = strings.TrimSpace(req.Notes)
	if req.DurationMinutes == 0 {
		req.DurationMinutes = config.DefaultMeetingMinutes
	}

	now := s.now()
	err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, config.MaxMeetingTitleLength)),
		validation.Field(&req.ScheduledAt, validation.Required, validation.Min(now).Error("must be in the future")),
		validation.Field(&req.DurationMinutes, validation.Min(config.MinMeetingMinutes), validation.Max(config.MaxMeetingMinutes)),
	)
	if err != nil {
		return nil, validationError(err)
	}

	if err := s.authorizer.CanAccessForm(ctx, userID, formID); err != nil {
		return nil, err
	}

	meeting := &models.Meeting{
		ID:              uuid.NewString(),
		FormID:          formID,
		UserID:          userID,
		Title:           req.Title,
		ScheduledAt:     req.ScheduledAt.UTC(),
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		CreatedAt:       now,
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		s.logger.Error("meeting create failed", "form_id", formID, "error", err)
		return nil, err
	}

	s.logger.Info("meeting scheduled",
		"id", meeting.ID,
		"form_id", formID,
		"user_id", userID,
		"scheduled_at", meeting.ScheduledAt,
	)

	return meeting, nil
}

// ListForForm lists a form's meetings, soonest first
func (s *meetingService) ListForForm(ctx context.Context, userID, formID string) ([]models.Meeting, error) {
	if formID == "" {
		return nil, requiredError("form id")
	}
	if err := s.authorizer.CanAccessForm(ctx, userID, formID); err != nil {
		return nil, err
	}
	return s.meetingRepo.ListByForm(ctx, formID, userID)
}

// ListUpcoming lists the caller's meetings that have not started yet
func (s *meetingService) ListUpcoming(ctx context.Context, userID string) ([]models.Meeting, error) {
	if userID == "" {
		return nil, requiredError("user id")
	}
	return s.meetingRepo.ListUpcoming(ctx, userID, s.now())
}

// Cancel deletes one of the caller's meetings
func (s *meetingService) Cancel(ctx context.Context, userID, meetingID string) error {
	if meetingID == "" {
		return requiredError("meeting id")
	}

	if err := s.meetingRepo.Delete(ctx, meetingID, userID); err != nil {
		s.logger.Error("meeting cancel failed", "id", meetingID, "error", err)
		return err
	}

	s.logger.Info("meeting cancelled", "id", meetingID, "user_id", userID)
	return nil
}
