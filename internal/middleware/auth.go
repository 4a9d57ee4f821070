package middleware

import (
	"log/slog"
	"net/http"

	"contentcoach/internal/auth"
	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"
)

// APIKeyHeader carries machine credentials issued from the admin panel
const APIKeyHeader = "X-API-Key"

// publicPaths are served without credentials
var publicPaths = map[string]bool{
	"/health":                  true,
	"/api/auth/login":          true,
	"/api/auth/password-reset": true,
}

// AuthMiddleware authenticates the caller with a Firebase ID token or an API
// key and attaches a services.Identity to the request context.
func AuthMiddleware(
	verifier auth.JWTVerifier,
	revoker services.TokenRevoker,
	keys services.APIKeyService,
	logger *slog.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			if token, ok := httputil.BearerToken(r); ok {
				if revoker != nil && revoker.IsRevoked(token) {
					httputil.RespondError(w, http.StatusUnauthorized, "token has been revoked")
					return
				}

				claims, err := verifier.VerifyToken(token)
				if err != nil {
					logger.Debug("token rejected", "path", r.URL.Path, "error", err)
					httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}

				recordUser(r, claims.GetUserID())
				next.ServeHTTP(w, httputil.WithIdentity(r, services.Identity{
					UserID:    claims.GetUserID(),
					Email:     claims.Email,
					IsAdmin:   claims.Admin,
					Token:     token,
					ExpiresAt: claims.ExpiresAtTime(),
					Method:    services.AuthMethodFirebase,
				}))
				return
			}

			if raw := r.Header.Get(APIKeyHeader); raw != "" && keys != nil {
				key, err := keys.Authenticate(r.Context(), raw)
				if err != nil {
					logger.Info("api key rejected", "path", r.URL.Path, "error", err)
					httputil.RespondError(w, http.StatusUnauthorized, "invalid api key")
					return
				}

				recordUser(r, key.UserID)
				next.ServeHTTP(w, httputil.WithIdentity(r, services.Identity{
					UserID: key.UserID,
					Method: services.AuthMethodAPIKey,
				}))
				return
			}

			httputil.RespondError(w, http.StatusUnauthorized, "missing credentials")
		})
	}
}
