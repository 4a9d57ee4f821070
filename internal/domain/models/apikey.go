package models

import "time"

// APIKey lets an integration call the API on behalf of its owner.
// Only the prefix is stored in clear; the full key is kept as a bcrypt hash.
type APIKey struct {
	ID         string     `json:"id" db:"id"`
	UserID     string     `json:"userId" db:"user_id"`
	Name       string     `json:"name" db:"name"`
	Prefix     string     `json:"prefix" db:"prefix"`
	Hash       []byte     `json:"-" db:"key_hash"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty" db:"last_used_at"`
	RevokedAt  *time.Time `json:"revokedAt,omitempty" db:"revoked_at"`
}

// IsRevoked reports whether the key was revoked.
func (k *APIKey) IsRevoked() bool {
	return k.RevokedAt != nil
}

// IssuedAPIKey is returned once, at creation. Key is never shown again.
type IssuedAPIKey struct {
	APIKey
	Key string `json:"key"`
}
