package handler

import (
	"log/slog"
	"net/http"

	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"
)

// DashboardHandler serves the grouped dashboard view
type DashboardHandler struct {
	dashboardService services.DashboardService
	logger           *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetDashboard returns folders, unorganized and archived forms, optionally filtered
// GET /api/dashboard?q=&archived=
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	showArchived, err := httputil.QueryBool(r, "archived", false)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), userID, services.DashboardQuery{
		Search:       r.URL.Query().Get("q"),
		ShowArchived: showArchived,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, dashboard)
}

// GetSummary returns the caller's counters
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	summary, err := h.dashboardService.GetSummary(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}
