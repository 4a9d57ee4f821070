package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contentcoach/internal/domain"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// stubFormService records the last call's arguments
type stubFormService struct {
	err error

	gotCreate *services.CreateFormRequest
	gotUpdate *services.UpdateFormRequest
	gotMove   *string
	moveCalls int
	gotTarget *string
	gotDrop   models.DragPayload
	dropCalls int
}

func (s *stubFormService) form(id string) *models.Form {
	return &models.Form{ID: id, UserID: "user-1", CompanyName: "Acme"}
}

func (s *stubFormService) CreateForm(_ context.Context, req *services.CreateFormRequest) (*models.Form, error) {
	s.gotCreate = req
	if s.err != nil {
		return nil, s.err
	}
	f := s.form("form-new")
	f.CompanyName = req.CompanyName
	return f, nil
}

func (s *stubFormService) GetForm(_ context.Context, _, formID string) (*models.Form, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.form(formID), nil
}

func (s *stubFormService) ListForms(context.Context, string) ([]models.Form, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Form{*s.form("form-1")}, nil
}

func (s *stubFormService) UpdateForm(_ context.Context, _, formID string, req *services.UpdateFormRequest) (*models.Form, error) {
	s.gotUpdate = req
	if s.err != nil {
		return nil, s.err
	}
	return s.form(formID), nil
}

func (s *stubFormService) MoveForm(_ context.Context, _, formID string, folderID *string) (*models.Form, error) {
	s.gotMove = folderID
	s.moveCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.form(formID), nil
}

func (s *stubFormService) DropForm(_ context.Context, _ string, target *string, payload models.DragPayload) (*models.Form, error) {
	s.dropCalls++
	s.gotTarget = target
	s.gotDrop = payload
	if s.err != nil {
		return nil, s.err
	}
	return s.form(payload.FormID), nil
}

func (s *stubFormService) ToggleArchive(_ context.Context, _, formID string) (*models.Form, error) {
	if s.err != nil {
		return nil, s.err
	}
	f := s.form(formID)
	f.IsArchived = true
	return f, nil
}

func (s *stubFormService) DeleteForm(context.Context, string, string) error { return s.err }

type stubFolderService struct{ err error }

func (s *stubFolderService) CreateFolder(_ context.Context, userID, name string) (*models.Folder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Folder{ID: "folder-new", UserID: userID, Name: name}, nil
}
func (s *stubFolderService) ListFolders(context.Context, string) ([]models.Folder, error) {
	return []models.Folder{}, s.err
}
func (s *stubFolderService) RenameFolder(_ context.Context, userID, id, name string) (*models.Folder, error) {
	return &models.Folder{ID: id, UserID: userID, Name: name}, s.err
}
func (s *stubFolderService) ToggleArchive(_ context.Context, userID, id string) (*models.Folder, error) {
	return &models.Folder{ID: id, UserID: userID, IsArchived: true}, s.err
}
func (s *stubFolderService) DeleteFolder(_ context.Context, userID, id string) (*models.FolderDeleteResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.FolderDeleteResult{Folder: &models.Folder{ID: id, UserID: userID}, ReleasedForms: 2}, nil
}

type stubDashboardService struct{ gotQuery services.DashboardQuery }

func (s *stubDashboardService) Load(context.Context, string) ([]models.Form, []models.Folder, error) {
	return nil, nil, nil
}
func (s *stubDashboardService) GetDashboard(_ context.Context, _ string, q services.DashboardQuery) (*models.Dashboard, error) {
	s.gotQuery = q
	return &models.Dashboard{Query: q.Search, ShowArchived: q.ShowArchived}, nil
}
func (s *stubDashboardService) GetSummary(context.Context, string) (*models.DashboardSummary, error) {
	return &models.DashboardSummary{TotalForms: 3}, nil
}

type stubSettingsService struct{ got *models.UpdateSettingsRequest }

func (s *stubSettingsService) GetSettings(_ context.Context, userID string) (*models.Settings, error) {
	return &models.Settings{UserID: userID}, nil
}
func (s *stubSettingsService) UpdateSettings(_ context.Context, userID string, req *models.UpdateSettingsRequest) (*models.Settings, error) {
	s.got = req
	return &models.Settings{UserID: userID}, nil
}
func (s *stubSettingsService) PresentationDefault(context.Context, string) (string, error) {
	return "", nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testServer struct {
	mux       *http.ServeMux
	forms     *stubFormService
	folders   *stubFolderService
	dashboard *stubDashboardService
	settings  *stubSettingsService
}

func newTestServer() *testServer {
	ts := &testServer{
		mux:       http.NewServeMux(),
		forms:     &stubFormService{},
		folders:   &stubFolderService{},
		dashboard: &stubDashboardService{},
		settings:  &stubSettingsService{},
	}
	logger := testLogger()

	formHandler := NewFormHandler(ts.forms, logger)
	folderHandler := NewFolderHandler(ts.folders, ts.forms, logger)
	dashboardHandler := NewDashboardHandler(ts.dashboard, logger)
	settingsHandler := NewSettingsHandler(ts.settings, logger)

	ts.mux.HandleFunc("GET /api/forms", formHandler.ListForms)
	ts.mux.HandleFunc("POST /api/forms", formHandler.CreateForm)
	ts.mux.HandleFunc("GET /api/forms/{id}", formHandler.GetForm)
	ts.mux.HandleFunc("PATCH /api/forms/{id}", formHandler.UpdateForm)
	ts.mux.HandleFunc("DELETE /api/forms/{id}", formHandler.DeleteForm)
	ts.mux.HandleFunc("PUT /api/forms/{id}/folder", formHandler.MoveForm)
	ts.mux.HandleFunc("POST /api/forms/{id}/archive", formHandler.ToggleArchive)

	ts.mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	ts.mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	ts.mux.HandleFunc("POST /api/folders/{id}/drop", folderHandler.DropOnFolder)
	ts.mux.HandleFunc("POST /api/folders/root/drop", folderHandler.DropOnRoot)

	ts.mux.HandleFunc("GET /api/dashboard", dashboardHandler.GetDashboard)
	ts.mux.HandleFunc("PATCH /api/users/me/settings", settingsHandler.UpdateSettings)

	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req = httputil.WithIdentity(req, services.Identity{UserID: "user-1", Method: services.AuthMethodFirebase})
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) httputil.ProblemDetail {
	t.Helper()
	var p httputil.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"validation", fmt.Errorf("%w: company name is required", domain.ErrValidation), http.StatusBadRequest, "validation failed: company name is required"},
		{"typed not found", fmt.Errorf("get form: %w", &domain.NotFoundError{Message: "form not found"}), http.StatusNotFound, "get form: form not found"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"admin required", domain.ErrAdminRequired, http.StatusForbidden, domain.AdminAccessDenied},
		{"conflict", &domain.ConflictError{Message: "folder exists", ResourceType: "folder"}, http.StatusConflict, "folder exists"},
		{"unavailable", fmt.Errorf("logo storage: %w", domain.ErrUnavailable), http.StatusServiceUnavailable, "logo storage: service unavailable"},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, decodeProblem(t, rec).Detail)
		})
	}
}

func TestFormHandler_Create(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodPost, "/api/forms", `{"companyName":"Globex","folderId":"folder-1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, ts.forms.gotCreate)
	assert.Equal(t, "user-1", ts.forms.gotCreate.UserID)
	assert.Equal(t, "Globex", ts.forms.gotCreate.CompanyName)
	assert.Equal(t, strPtr("folder-1"), ts.forms.gotCreate.FolderID)
}

func TestFormHandler_CreateIgnoresBodyUserID(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodPost, "/api/forms", `{"companyName":"Globex","UserID":"someone-else"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user-1", ts.forms.gotCreate.UserID)
}

func TestFormHandler_InvalidBody(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodPost, "/api/forms", `{"companyName":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeProblem(t, rec).Detail)
	assert.Nil(t, ts.forms.gotCreate)
}

func TestFormHandler_Anonymous(t *testing.T) {
	ts := newTestServer()

	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/forms", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFormHandler_NotFound(t *testing.T) {
	ts := newTestServer()
	ts.forms.err = fmt.Errorf("get form: %w", domain.ErrNotFound)

	rec := ts.do(t, http.MethodGet, "/api/forms/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFormHandler_UpdateTriState(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		wantLogoPresent bool
		wantLogo        *string
		wantName        *string
	}{
		{"absent leaves logo", `{"companyName":"New"}`, false, nil, strPtr("New")},
		{"null clears logo", `{"logoUrl":null}`, true, nil, nil},
		{"value sets logo", `{"logoUrl":"https://cdn.test/l.png"}`, true, strPtr("https://cdn.test/l.png"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()

			rec := ts.do(t, http.MethodPatch, "/api/forms/form-1", tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			got := ts.forms.gotUpdate
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLogoPresent, got.LogoURL.Present)
			assert.Equal(t, tt.wantLogo, got.LogoURL.Value)
			assert.Equal(t, tt.wantName, got.CompanyName)
			assert.False(t, got.PresentationURL.Present)
		})
	}
}

func TestFormHandler_MoveToNoFolder(t *testing.T) {
	ts := newTestServer()
	ts.forms.gotMove = strPtr("sentinel")

	rec := ts.do(t, http.MethodPut, "/api/forms/form-1/folder", `{"folderId":null}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, ts.forms.gotMove)
}

func TestFormHandler_MoveToFolder(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodPut, "/api/forms/form-1/folder", `{"folderId":"folder-9"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, ts.forms.gotMove)
	assert.Equal(t, "folder-9", *ts.forms.gotMove)
}

func TestFormHandler_MoveRequiresFolderKey(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "empty object", body: `{}`},
		{name: "misspelled key", body: `{"folder":"folder-9"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()

			rec := ts.do(t, http.MethodPut, "/api/forms/form-1/folder", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeProblem(t, rec).Detail, "folderId")
			assert.Zero(t, ts.forms.moveCalls)
		})
	}
}

func TestFormHandler_Delete(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodDelete, "/api/forms/form-1", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestFolderHandler_Drop(t *testing.T) {
	t.Run("onto folder", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.do(t, http.MethodPost, "/api/folders/folder-9/drop", `{"id":"form-1","currentFolderId":null}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, strPtr("folder-9"), ts.forms.gotTarget)
		assert.Equal(t, "form-1", ts.forms.gotDrop.FormID)
		assert.Nil(t, ts.forms.gotDrop.CurrentFolderID)
	})

	t.Run("onto root", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.do(t, http.MethodPost, "/api/folders/root/drop", `{"id":"form-1","currentFolderId":"folder-9"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, ts.forms.dropCalls)
		assert.Nil(t, ts.forms.gotTarget)
		assert.Equal(t, strPtr("folder-9"), ts.forms.gotDrop.CurrentFolderID)
	})

	t.Run("malformed payload", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.do(t, http.MethodPost, "/api/folders/folder-9/drop", `not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, ts.forms.dropCalls)
	})
}

func TestFolderHandler_CreateValidation(t *testing.T) {
	ts := newTestServer()
	ts.folders.err = fmt.Errorf("%w: name is required", domain.ErrValidation)

	rec := ts.do(t, http.MethodPost, "/api/folders", `{"name":"   "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFolderHandler_Delete(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodDelete, "/api/folders/folder-1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.FolderDeleteResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, int64(2), result.ReleasedForms)
}

func TestDashboardHandler_Query(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodGet, "/api/dashboard?q=acme&archived=true", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.DashboardQuery{Search: "acme", ShowArchived: true}, ts.dashboard.gotQuery)
}

func TestDashboardHandler_BadArchivedFlag(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodGet, "/api/dashboard?archived=maybe", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettingsHandler_DefaultURLTriState(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{"absent", `{"language":"en"}`, false, nil},
		{"null", `{"defaultUrl":null}`, true, nil},
		{"value", `{"defaultUrl":"https://slides.test/deck"}`, true, strPtr("https://slides.test/deck")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()

			rec := ts.do(t, http.MethodPatch, "/api/users/me/settings", tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, ts.settings.got)
			assert.Equal(t, tt.wantPresent, ts.settings.got.DefaultPresentationURL.Present)
			assert.Equal(t, tt.wantValue, ts.settings.got.DefaultPresentationURL.Value)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h := NewHealthHandler(stubPinger{}, testLogger())
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.NotEmpty(t, body["time"])
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthHandler(stubPinger{err: errors.New("refused")}, testLogger())
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
