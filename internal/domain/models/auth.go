package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FirebaseClaims represents the claims of a Firebase Authentication ID token.
// See: https://firebase.google.com/docs/auth/admin/verify-id-tokens
type FirebaseClaims struct {
	jwt.RegisteredClaims              // sub = uid, iss, aud = project id, exp, iat
	Email                string       `json:"email"`
	EmailVerified        bool         `json:"email_verified"`
	Name                 string       `json:"name"`
	AuthTime             int64        `json:"auth_time"`
	Admin                bool         `json:"admin"` // custom claim set by the admin tooling
	Firebase             FirebaseInfo `json:"firebase"`
}

// FirebaseInfo is the nested "firebase" claim.
type FirebaseInfo struct {
	SignInProvider string                 `json:"sign_in_provider"`
	Identities     map[string]interface{} `json:"identities"`
}

// GetUserID returns the Firebase uid from the subject claim.
func (c *FirebaseClaims) GetUserID() string {
	return c.Subject
}

// ExpiresAtTime returns the token expiry, or the zero time if absent.
func (c *FirebaseClaims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Session is returned by a successful email/password sign-in.
type Session struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"` // seconds
	UserID       string `json:"userId"`
	Email        string `json:"email"`
}
