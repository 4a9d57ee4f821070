package services

import (
	"context"
	"time"
)

// ObjectPresigner issues presigned upload URLs for object storage.
type ObjectPresigner interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	PublicURL(key string) string
}

// LogoService hands out upload slots for form logos
type LogoService interface {
	PresignUpload(ctx context.Context, userID, formID, contentType string) (*LogoUpload, error)
}

// LogoUpload is a presigned upload slot. The client PUTs the file to
// UploadURL and then sets the form's logoUrl to PublicURL.
type LogoUpload struct {
	UploadURL   string    `json:"uploadUrl"`
	PublicURL   string    `json:"publicUrl"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
