package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contentcoach/internal/config"
	"contentcoach/internal/domain"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/repositories"
	"contentcoach/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	apiKeyScheme      = "cc"
	apiKeyPrefixBytes = 4
	apiKeySecretBytes = 32
)

type apiKeyService struct {
	keyRepo    repositories.APIKeyRepository
	bcryptCost int
	logger     *slog.Logger
}

// NewAPIKeyService creates a new API key service. A cost of 0 uses
// bcrypt.DefaultCost.
func NewAPIKeyService(keyRepo repositories.APIKeyRepository, bcryptCost int, logger *slog.Logger) services.APIKeyService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &apiKeyService{
		keyRepo:    keyRepo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Create issues a new key. The raw key is only returned here.
func (s *apiKeyService) Create(ctx context.Context, userID, name string) (*models.IssuedAPIKey, error) {
	if userID == "" {
		return nil, requiredError("user id")
	}
	name = strings.TrimSpace(name)
	if err := validation.Validate(name, validation.Required, validation.RuneLength(1, config.MaxAPIKeyNameLength)); err != nil {
		return nil, validationError(fmt.Errorf("name: %w", err))
	}

	prefix, raw, err := generateAPIKey()
	if err != nil {
		return nil, fmt.Errorf("generate api key: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(raw), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash api key: %w", err)
	}

	key := models.APIKey{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Prefix:    prefix,
		Hash:      hash,
		CreatedAt: time.Now(),
	}

	if err := s.keyRepo.Create(ctx, &key); err != nil {
		s.logger.Error("api key create failed", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("api key created", "id", key.ID, "user_id", userID, "prefix", prefix)
	return &models.IssuedAPIKey{APIKey: key, Key: raw}, nil
}

// List lists the caller's keys, revoked ones included
func (s *apiKeyService) List(ctx context.Context, userID string) ([]models.APIKey, error) {
	if userID == "" {
		return nil, requiredError("user id")
	}
	return s.keyRepo.ListByUser(ctx, userID)
}

// Revoke revokes one of the caller's keys. Revoking twice is a no-op.
func (s *apiKeyService) Revoke(ctx context.Context, userID, keyID string) error {
	if keyID == "" {
		return requiredError("api key id")
	}

	if err := s.keyRepo.Revoke(ctx, keyID, userID, time.Now()); err != nil {
		s.logger.Error("api key revoke failed", "id", keyID, "error", err)
		return err
	}

	s.logger.Info("api key revoked", "id", keyID, "user_id", userID)
	return nil
}

// Authenticate resolves a raw key to its record
func (s *apiKeyService) Authenticate(ctx context.Context, rawKey string) (*models.APIKey, error) {
	rawKey = strings.TrimSpace(rawKey)
	prefix, ok := parseAPIKey(rawKey)
	if !ok {
		return nil, fmt.Errorf("malformed api key: %w", domain.ErrUnauthorized)
	}

	key, err := s.keyRepo.GetByPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("unknown api key: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("lookup api key: %w", err)
	}

	if key.IsRevoked() {
		return nil, fmt.Errorf("api key revoked: %w", domain.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword(key.Hash, []byte(rawKey)); err != nil {
		return nil, fmt.Errorf("api key mismatch: %w", domain.ErrUnauthorized)
	}

	if err := s.keyRepo.TouchLastUsed(ctx, key.ID, time.Now()); err != nil {
		s.logger.Warn("api key last-used update failed", "id", key.ID, "error", err)
	}

	return key, nil
}

// generateAPIKey returns the lookup prefix and the full key
// cc_<8 hex>_<base64url secret>.
func generateAPIKey() (string, string, error) {
	prefixBytes := make([]byte, apiKeyPrefixBytes)
	if _, err := rand.Read(prefixBytes); err != nil {
		return "", "", err
	}
	secret := make([]byte, apiKeySecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", "", err
	}

	prefix := hex.EncodeToString(prefixBytes)
	raw := fmt.Sprintf("%s_%s_%s", apiKeyScheme, prefix, base64.RawURLEncoding.EncodeToString(secret))
	return prefix, raw, nil
}

func parseAPIKey(raw string) (string, bool) {
	parts := strings.SplitN(raw, "_", 3)
	if len(parts) != 3 || parts[0] != apiKeyScheme {
		return "", false
	}
	if len(parts[1]) != apiKeyPrefixBytes*2 || parts[2] == "" {
		return "", false
	}
	if _, err := hex.DecodeString(parts[1]); err != nil {
		return "", false
	}
	return parts[1], true
}
