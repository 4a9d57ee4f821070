package models

import "time"

// Form is one completed intake questionnaire for a client company.
// JSON field names match the document fields stored by the web client.
type Form struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"userId" db:"user_id"`
	CompanyName     string    `json:"companyName" db:"company_name"`
	LogoURL         *string   `json:"logoUrl,omitempty" db:"logo_url"`
	PresentationURL *string   `json:"presentationUrl,omitempty" db:"presentation_url"`
	FolderID        *string   `json:"folderId" db:"folder_id"` // nil = "no folder"
	IsArchived      bool      `json:"isArchived" db:"is_archived"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// InFolder reports whether the form is filed under folderID.
func (f *Form) InFolder(folderID string) bool {
	return f.FolderID != nil && *f.FolderID == folderID
}

// IsUnorganized reports whether the form belongs to the "no folder" bucket
// of the current (non-archived) view.
func (f *Form) IsUnorganized() bool {
	return f.FolderID == nil && !f.IsArchived
}

// DragPayload is the state carried while a form is being dragged.
type DragPayload struct {
	FormID          string  `json:"id"`
	CurrentFolderID *string `json:"currentFolderId"`
}
