package handler

import (
	"log/slog"
	"net/http"

	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"
)

// FolderHandler handles folder HTTP requests, including drops of dragged forms
type FolderHandler struct {
	folderService services.FolderService
	formService   services.FormService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, formService services.FormService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		formService:   formService,
		logger:        logger,
	}
}

type folderNameBody struct {
	Name string `json:"name"`
}

// ListFolders lists the caller's folders in display order
// GET /api/folders
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	folders, err := h.folderService.ListFolders(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// CreateFolder creates a new folder at the end of the list
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var body folderNameBody
	if !parseBody(w, r, &body) {
		return
	}

	folder, err := h.folderService.CreateFolder(r.Context(), userID, body.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// RenameFolder renames a folder
// PATCH /api/folders/{id}
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := httputil.PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	var body folderNameBody
	if !parseBody(w, r, &body) {
		return
	}

	folder, err := h.folderService.RenameFolder(r.Context(), userID, id, body.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// ToggleArchive flips a folder's archived flag
// POST /api/folders/{id}/archive
func (h *FolderHandler) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := httputil.PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	folder, err := h.folderService.ToggleArchive(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder; its forms move to "no folder"
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := httputil.PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	result, err := h.folderService.DeleteFolder(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// DropOnFolder files a dragged form under the folder
// POST /api/folders/{id}/drop
func (h *FolderHandler) DropOnFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}
	h.drop(w, r, &id)
}

// DropOnRoot moves a dragged form to "no folder"
// POST /api/folders/root/drop
func (h *FolderHandler) DropOnRoot(w http.ResponseWriter, r *http.Request) {
	h.drop(w, r, nil)
}

func (h *FolderHandler) drop(w http.ResponseWriter, r *http.Request, target *string) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var payload models.DragPayload
	if !parseBody(w, r, &payload) {
		return
	}

	form, err := h.formService.DropForm(r.Context(), userID, target, payload)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, form)
}
