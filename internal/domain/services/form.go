package services

import (
	"context"

	"contentcoach/internal/domain/models"
)

// FormService handles form business logic. Every method is owner-scoped.
type FormService interface {
	CreateForm(ctx context.Context, req *CreateFormRequest) (*models.Form, error)
	GetForm(ctx context.Context, userID, formID string) (*models.Form, error)
	ListForms(ctx context.Context, userID string) ([]models.Form, error)
	UpdateForm(ctx context.Context, userID, formID string, req *UpdateFormRequest) (*models.Form, error)

	// MoveForm files the form under folderID, or under "no folder" when nil.
	MoveForm(ctx context.Context, userID, formID string, folderID *string) (*models.Form, error)

	// DropForm handles a drag-and-drop onto a target (nil = the "no folder"
	// zone). Dropping onto the folder the form already occupies is a no-op.
	DropForm(ctx context.Context, userID string, target *string, payload models.DragPayload) (*models.Form, error)

	ToggleArchive(ctx context.Context, userID, formID string) (*models.Form, error)
	DeleteForm(ctx context.Context, userID, formID string) error
}

// CreateFormRequest represents a form creation request
type CreateFormRequest struct {
	UserID          string  `json:"-"`
	CompanyName     string  `json:"companyName"`
	LogoURL         *string `json:"logoUrl,omitempty"`
	PresentationURL *string `json:"presentationUrl,omitempty"`
	FolderID        *string `json:"folderId,omitempty"`
}

// OptionalString is a transport-agnostic tri-state field.
//   - Present=false: don't change
//   - Present=true, Value=nil: clear
//   - Present=true, Value!=nil: set
type OptionalString struct {
	Present bool
	Value   *string
}

// UpdateFormRequest represents a partial form update
type UpdateFormRequest struct {
	CompanyName     *string
	LogoURL         OptionalString
	PresentationURL OptionalString
}
