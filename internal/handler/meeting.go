package handler

import (
	"log/slog"
	"net/http"

	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"
)

// MeetingHandler handles coaching meetings booked against forms
type MeetingHandler struct {
	meetingService services.MeetingService
	logger         *slog.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService services.MeetingService, logger *slog.Logger) *MeetingHandler {
	return &MeetingHandler{
		meetingService: meetingService,
		logger:         logger,
	}
}

// Schedule books a meeting
// POST /api/forms/{id}/meetings
func (h *MeetingHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	formID, ok := httputil.PathParam(w, r, "id", "Form ID")
	if !ok {
		return
	}

	var req services.ScheduleMeetingRequest
	if !parseBody(w, r, &req) {
		return
	}

	meeting, err := h.meetingService.Schedule(r.Context(), userID, formID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, meeting)
}

// ListForForm lists a form's meetings
// GET /api/forms/{id}/meetings
func (h *MeetingHandler) ListForForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	formID, ok := httputil.PathParam(w, r, "id", "Form ID")
	if !ok {
		return
	}

	meetings, err := h.meetingService.ListForForm(r.Context(), userID, formID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, meetings)
}

// ListUpcoming lists the caller's upcoming meetings
// GET /api/meetings/upcoming
func (h *MeetingHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	meetings, err := h.meetingService.ListUpcoming(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, meetings)
}

// Cancel deletes a meeting
// DELETE /api/meetings/{id}
func (h *MeetingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := httputil.PathParam(w, r, "id", "Meeting ID")
	if !ok {
		return
	}

	if err := h.meetingService.Cancel(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}
