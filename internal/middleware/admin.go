package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"contentcoach/internal/domain"
	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"
)

// RequireAdmin lets through callers holding the admin claim or flag.
// Everyone else gets a 403 with the access-denied message.
func RequireAdmin(admins services.AdminService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := httputil.GetIdentity(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			isAdmin, err := admins.IsAdmin(r.Context(), identity)
			if err != nil {
				logger.Error("admin check failed", "user_id", identity.UserID, "error", err)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if !isAdmin {
				logger.Info("admin access denied", "user_id", identity.UserID, "path", r.URL.Path)
				httputil.RespondError(w, http.StatusForbidden, domain.AdminAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin restricts a route to the signed-in user whose email
// matches superAdminEmail. An empty superAdminEmail denies everyone.
func RequireSuperAdmin(superAdminEmail string, logger *slog.Logger) func(http.Handler) http.Handler {
	superAdminEmail = strings.TrimSpace(superAdminEmail)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := httputil.GetIdentity(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if superAdminEmail == "" ||
				identity.Method != services.AuthMethodFirebase ||
				!strings.EqualFold(identity.Email, superAdminEmail) {
				logger.Info("super admin access denied", "user_id", identity.UserID, "path", r.URL.Path)
				httputil.RespondError(w, http.StatusForbidden, domain.AdminAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
