package handler

import (
	"log/slog"
	"net/http"

	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"
)

// AuthHandler handles sign-in, sign-out and password flows
type AuthHandler struct {
	sessionService services.SessionService
	logger         *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessionService services.SessionService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordBody struct {
	NewPassword string `json:"newPassword"`
}

type passwordResetBody struct {
	Email string `json:"email"`
}

// Login exchanges email and password for an ID token
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if !parseBody(w, r, &body) {
		return
	}

	session, err := h.sessionService.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// Logout revokes the caller's token
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := httputil.GetIdentity(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.sessionService.Logout(r.Context(), identity); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}

// UpdatePassword changes the caller's password
// POST /api/auth/password
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := httputil.GetIdentity(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body passwordBody
	if !parseBody(w, r, &body) {
		return
	}

	if err := h.sessionService.UpdatePassword(r.Context(), identity, body.NewPassword); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}

// SendPasswordReset emails a reset link
// POST /api/auth/password-reset
func (h *AuthHandler) SendPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body passwordResetBody
	if !parseBody(w, r, &body) {
		return
	}

	if err := h.sessionService.SendPasswordReset(r.Context(), body.Email); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
