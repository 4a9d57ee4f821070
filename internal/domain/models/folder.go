package models

import "time"

// Folder is a flat, user-owned grouping of forms. Folders do not nest.
type Folder struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	Name       string    `json:"name" db:"name"`
	IsArchived bool      `json:"isArchived" db:"is_archived"`
	Order      int       `json:"order" db:"sort_order"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// FolderDeleteResult reports the outcome of deleting a folder.
type FolderDeleteResult struct {
	Folder        *Folder `json:"folder"`
	ReleasedForms int64   `json:"releasedForms"` // forms moved back to "no folder"
}
