package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"contentcoach/internal/httputil"

	"github.com/google/uuid"
)

// RequestIDHeader is echoed back on every response
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 64

// validRequestID accepts 1 to 64 characters from [A-Za-z0-9-]
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return false
		}
	}
	return true
}

type holderKey struct{}

// userHolder lets AuthMiddleware report the caller to the outer Logging
// middleware, which only sees its own copy of the request.
type userHolder struct {
	userID string
}

func withUserHolder(r *http.Request, h *userHolder) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), holderKey{}, h))
}

func recordUser(r *http.Request, userID string) {
	if h, ok := r.Context().Value(holderKey{}).(*userHolder); ok {
		h.userID = userID
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// Logging tags each request with an ID and logs it once it completes.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Client IDs reach headers and every log line; replace anything unexpected
			requestID := r.Header.Get(RequestIDHeader)
			if !validRequestID(requestID) {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			holder := &userHolder{}
			r = withUserHolder(httputil.WithRequestID(r, requestID), holder)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			logger.LogAttrs(r.Context(), level, "request",
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", rec.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("user_id", holder.userID),
			)
		})
	}
}
