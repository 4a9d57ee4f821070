package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/repositories"
	"contentcoach/internal/domain/services"

	"golang.org/x/sync/errgroup"
)

type dashboardService struct {
	formRepo    repositories.FormRepository
	folderRepo  repositories.FolderRepository
	meetingRepo repositories.MeetingRepository
	settings    services.SettingsService
	logger      *slog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	formRepo repositories.FormRepository,
	folderRepo repositories.FolderRepository,
	meetingRepo repositories.MeetingRepository,
	settings services.SettingsService,
	logger *slog.Logger,
) services.DashboardService {
	return &dashboardService{
		formRepo:    formRepo,
		folderRepo:  folderRepo,
		meetingRepo: meetingRepo,
		settings:    settings,
		logger:      logger,
	}
}

// Load fetches the user's forms and folders concurrently
func (s *dashboardService) Load(ctx context.Context, userID string) ([]models.Form, []models.Folder, error) {
	if userID == "" {
		return nil, nil, requiredError("user id")
	}

	var (
		forms   []models.Form
		folders []models.Folder
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		forms, err = s.formRepo.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		folders, err = s.folderRepo.ListByUser(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard load failed", "user_id", userID, "error", err)
		return nil, nil, fmt.Errorf("load dashboard: %w", err)
	}

	return forms, folders, nil
}

// GetDashboard loads the user's data and derives the dashboard view
func (s *dashboardService) GetDashboard(ctx context.Context, userID string, query services.DashboardQuery) (*models.Dashboard, error) {
	forms, folders, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	defaultLink, err := s.settings.PresentationDefault(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve presentation default: %w", err)
	}

	return BuildDashboard(forms, folders, query, defaultLink), nil
}

// GetSummary counts what the dashboard header shows
func (s *dashboardService) GetSummary(ctx context.Context, userID string) (*models.DashboardSummary, error) {
	forms, folders, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	meetings, err := s.meetingRepo.ListUpcoming(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming meetings: %w", err)
	}

	summary := &models.DashboardSummary{
		TotalForms:       len(forms),
		Folders:          len(folders),
		UpcomingMeetings: len(meetings),
	}
	for i := range forms {
		if forms[i].IsArchived {
			summary.ArchivedForms++
		}
		if forms[i].IsUnorganized() {
			summary.UnorganizedForms++
		}
	}

	return summary, nil
}

// BuildDashboard derives the dashboard view from raw forms and folders.
// Search applies to forms only; folders are filtered by the archived toggle
// and each carries the matched forms filed under it.
func BuildDashboard(forms []models.Form, folders []models.Folder, query services.DashboardQuery, defaultLink string) *models.Dashboard {
	matched := FilterForms(forms, query.Search)

	dash := &models.Dashboard{
		Query:        strings.TrimSpace(query.Search),
		ShowArchived: query.ShowArchived,
		Folders:      []models.FolderView{},
		Unorganized:  []models.FormView{},
		Archived:     []models.FormView{},
	}

	byFolder := make(map[string][]models.FormView)
	for _, form := range matched {
		view := models.FormView{Form: form, PresentationLink: PresentationLink(&form, defaultLink)}

		if form.FolderID != nil {
			byFolder[*form.FolderID] = append(byFolder[*form.FolderID], view)
		}
		if form.IsUnorganized() {
			dash.Unorganized = append(dash.Unorganized, view)
		}
		if form.IsArchived {
			dash.Archived = append(dash.Archived, view)
		}
	}

	for _, folder := range folders {
		if folder.IsArchived != query.ShowArchived {
			continue
		}
		folderForms := byFolder[folder.ID]
		if folderForms == nil {
			folderForms = []models.FormView{}
		}
		dash.Folders = append(dash.Folders, models.FolderView{Folder: folder, Forms: folderForms})
	}

	if dash.Query != "" {
		found := len(matched)
		dash.Found = &found
	}

	return dash
}

// PresentationLink returns the form's own presentation URL or the fallback
func PresentationLink(form *models.Form, fallback string) string {
	if form.PresentationURL != nil && strings.TrimSpace(*form.PresentationURL) != "" {
		return *form.PresentationURL
	}
	return fallback
}
