package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"contentcoach/internal/domain"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/services"
)

// IdentityToolkitClient talks to the Firebase Auth REST API (Identity
// Toolkit) for the email/password flows the dashboard exposes.
type IdentityToolkitClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ services.IdentityProvider = (*IdentityToolkitClient)(nil)

// NewIdentityToolkitClient creates a new client. baseURL is normally
// https://identitytoolkit.googleapis.com; apiKey is the web API key.
func NewIdentityToolkitClient(baseURL, apiKey string, logger *slog.Logger) *IdentityToolkitClient {
	return &IdentityToolkitClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"` // seconds, as a string
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
}

type updatePasswordRequest struct {
	IDToken           string `json:"idToken"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type sendOobCodeRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

// apiErrorResponse is the error envelope of the REST API
type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword exchanges email and password for an ID token
func (c *IdentityToolkitClient) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	var resp signInResponse
	err := c.post(ctx, "accounts:signInWithPassword", signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	expiresIn, err := strconv.Atoi(resp.ExpiresIn)
	if err != nil {
		expiresIn = 3600
	}

	return &models.Session{
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    expiresIn,
		UserID:       resp.LocalID,
		Email:        resp.Email,
	}, nil
}

// UpdatePassword changes the password of the account owning idToken
func (c *IdentityToolkitClient) UpdatePassword(ctx context.Context, idToken, newPassword string) error {
	return c.post(ctx, "accounts:update", updatePasswordRequest{
		IDToken:  idToken,
		Password: newPassword,
	}, nil)
}

// SendPasswordReset emails a password reset link
func (c *IdentityToolkitClient) SendPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "accounts:sendOobCode", sendOobCodeRequest{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}, nil)
}

func (c *IdentityToolkitClient) post(ctx context.Context, method string, payload, out interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("identity toolkit api key not configured: %w", domain.ErrUnavailable)
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", c.baseURL, method, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		c.logger.Debug("identity toolkit error",
			"method", method,
			"status", resp.StatusCode,
			"code", apiErr.Error.Message,
		)
		return mapIdentityError(resp.StatusCode, apiErr.Error.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	return nil
}

// mapIdentityError converts an Identity Toolkit error code to a domain
// error. Codes may carry a suffix: "WEAK_PASSWORD : Password should be...".
func mapIdentityError(status int, message string) error {
	code := message
	if i := strings.Index(code, " "); i >= 0 {
		code = code[:i]
	}

	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return &domain.UnauthorizedError{Message: "invalid email or password"}
	case "INVALID_ID_TOKEN", "TOKEN_EXPIRED", "CREDENTIAL_TOO_OLD_LOGIN_AGAIN", "USER_NOT_FOUND":
		return &domain.UnauthorizedError{Message: "session expired, please sign in again"}
	case "WEAK_PASSWORD":
		return &domain.ValidationError{Message: "password is too weak"}
	case "INVALID_EMAIL", "MISSING_EMAIL":
		return &domain.ValidationError{Message: "invalid email address"}
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return fmt.Errorf("too many attempts, try again later: %w", domain.ErrUnavailable)
	}

	if status >= 500 {
		return fmt.Errorf("identity toolkit status %d: %w", status, domain.ErrUnavailable)
	}
	return fmt.Errorf("identity toolkit error %d: %s", status, message)
}
