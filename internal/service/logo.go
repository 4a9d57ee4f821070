package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contentcoach/internal/config"
	"contentcoach/internal/domain"
	"contentcoach/internal/domain/services"

	"github.com/google/uuid"
)

// logoExtensions maps accepted logo content types to file extensions
var logoExtensions = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/svg+xml": "svg",
	"image/webp":    "webp",
}

type logoService struct {
	presigner  services.ObjectPresigner
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewLogoService creates a new logo service. presigner may be nil when
// object storage is not configured; uploads then fail with ErrUnavailable.
func NewLogoService(
	presigner services.ObjectPresigner,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) services.LogoService {
	return &logoService{
		presigner:  presigner,
		authorizer: authorizer,
		logger:     logger,
	}
}

// PresignUpload returns a presigned PUT slot for a form's logo
func (s *logoService) PresignUpload(ctx context.Context, userID, formID, contentType string) (*services.LogoUpload, error) {
	if s.presigner == nil {
		return nil, fmt.Errorf("logo storage: %w", domain.ErrUnavailable)
	}
	if formID == "" {
		return nil, requiredError("form id")
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := logoExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported logo content type %q", domain.ErrValidation, contentType)
	}

	if err := s.authorizer.CanAccessForm(ctx, userID, formID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("logos/%s/%s/%s.%s", userID, formID, uuid.NewString(), ext)
	uploadURL, err := s.presigner.PresignPut(ctx, key, contentType)
	if err != nil {
		s.logger.Error("logo presign failed", "form_id", formID, "error", err)
		return nil, fmt.Errorf("presign logo upload: %w", err)
	}

	s.logger.Info("logo upload presigned", "form_id", formID, "user_id", userID, "key", key)

	return &services.LogoUpload{
		UploadURL:   uploadURL,
		PublicURL:   s.presigner.PublicURL(key),
		ContentType: contentType,
		ExpiresAt:   time.Now().Add(config.LogoUploadExpiry),
	}, nil
}
