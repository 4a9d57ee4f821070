package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"contentcoach/internal/domain"
	"contentcoach/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// clockSkew tolerates small clock drift between Google and this server
const clockSkew = 30 * time.Second

// FirebaseJWTVerifier implements JWTVerifier using Google's public keys for
// Firebase ID tokens.
type FirebaseJWTVerifier struct {
	jwks      keyfunc.Keyfunc
	projectID string
	issuer    string
	cancel    context.CancelFunc
	logger    *slog.Logger
}

// NewJWTVerifier creates a verifier that fetches signing keys from jwksURL.
// Keys are cached and refreshed by keyfunc.
func NewJWTVerifier(jwksURL, projectID, issuer string, logger *slog.Logger) (JWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	// The context bounds keyfunc's background refresh goroutine
	ctx, cancel := context.WithCancel(context.Background())
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	v, err := newVerifier(jwks, projectID, issuer, logger)
	if err != nil {
		cancel()
		return nil, err
	}
	v.cancel = cancel

	logger.Info("JWT verifier initialized", "jwks_url", jwksURL, "project_id", projectID)
	return v, nil
}

func newVerifier(jwks keyfunc.Keyfunc, projectID, issuer string, logger *slog.Logger) (*FirebaseJWTVerifier, error) {
	if projectID == "" {
		return nil, errors.New("firebase project id cannot be empty")
	}
	if issuer == "" {
		issuer = "https://securetoken.google.com/" + projectID
	}
	return &FirebaseJWTVerifier{
		jwks:      jwks,
		projectID: projectID,
		issuer:    issuer,
		logger:    logger,
	}, nil
}

// VerifyToken validates an ID token and extracts Firebase claims
func (v *FirebaseJWTVerifier) VerifyToken(tokenString string) (*models.FirebaseClaims, error) {
	// Only RS256 is accepted; this also blocks algorithm confusion
	token, err := jwt.ParseWithClaims(tokenString, &models.FirebaseClaims{}, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(clockSkew),
	)
	if err != nil {
		v.logger.Debug("token parse failed", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		v.logger.Debug("token is invalid after parsing")
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.FirebaseClaims)
	if !ok {
		v.logger.Error("failed to extract claims from token")
		return nil, domain.ErrUnauthorized
	}

	// Firebase uids are non-empty and at most 128 characters
	if claims.Subject == "" || len(claims.Subject) > 128 {
		v.logger.Debug("token has invalid subject claim")
		return nil, domain.ErrUnauthorized
	}

	if claims.AuthTime > 0 && time.Unix(claims.AuthTime, 0).After(time.Now().Add(clockSkew)) {
		v.logger.Debug("token auth_time is in the future", "user_id", claims.Subject)
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close stops the background JWKS refresh
func (v *FirebaseJWTVerifier) Close() error {
	if v.cancel != nil {
		v.cancel()
	}
	v.logger.Info("JWT verifier closed")
	return nil
}
