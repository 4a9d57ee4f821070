package services

import (
	"context"

	"contentcoach/internal/domain/models"
)

// DashboardService builds the per-user dashboard
type DashboardService interface {
	// Load fetches all forms and folders owned by the user.
	Load(ctx context.Context, userID string) ([]models.Form, []models.Folder, error)

	// GetDashboard loads and derives the view for a search query and
	// archived toggle.
	GetDashboard(ctx context.Context, userID string, query DashboardQuery) (*models.Dashboard, error)

	GetSummary(ctx context.Context, userID string) (*models.DashboardSummary, error)
}

// DashboardQuery carries the view controls of the dashboard
type DashboardQuery struct {
	Search       string
	ShowArchived bool
}
