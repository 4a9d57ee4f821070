package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"contentcoach/internal/domain"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/repositories"
	"contentcoach/internal/domain/services"
	"contentcoach/internal/service/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// memStore backs every fake repository so a folder delete can see forms
type memStore struct {
	mu       sync.Mutex
	forms    map[string]models.Form
	folders  map[string]models.Folder
	users    map[string]models.User
	settings map[string]models.Settings
	keys     map[string]models.APIKey
	meetings map[string]models.Meeting
	order    []string // form insertion order
}

func newMemStore() *memStore {
	return &memStore{
		forms:    map[string]models.Form{},
		folders:  map[string]models.Folder{},
		users:    map[string]models.User{},
		settings: map[string]models.Settings{},
		keys:     map[string]models.APIKey{},
		meetings: map[string]models.Meeting{},
	}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}

// ---- forms ----

type fakeFormRepo struct{ s *memStore }

func (r *fakeFormRepo) Create(_ context.Context, form *models.Form) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if form.FolderID != nil {
		if _, ok := r.s.folders[*form.FolderID]; !ok {
			return notFound("folder", *form.FolderID)
		}
	}
	r.s.forms[form.ID] = *form
	r.s.order = append(r.s.order, form.ID)
	return nil
}

func (r *fakeFormRepo) get(id, userID string) (models.Form, error) {
	form, ok := r.s.forms[id]
	if !ok || (userID != "" && form.UserID != userID) {
		return models.Form{}, notFound("form", id)
	}
	return form, nil
}

func (r *fakeFormRepo) GetByID(_ context.Context, id, userID string) (*models.Form, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	form, err := r.get(id, userID)
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *fakeFormRepo) GetByIDOnly(ctx context.Context, id string) (*models.Form, error) {
	return r.GetByID(ctx, id, "")
}

func (r *fakeFormRepo) list(userID string) []models.Form {
	forms := []models.Form{}
	for _, id := range r.s.order {
		form, ok := r.s.forms[id]
		if ok && (userID == "" || form.UserID == userID) {
			forms = append(forms, form)
		}
	}
	return forms
}

func (r *fakeFormRepo) ListByUser(_ context.Context, userID string) ([]models.Form, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(userID), nil
}

func (r *fakeFormRepo) ListAll(_ context.Context) ([]models.Form, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(""), nil
}

func (r *fakeFormRepo) Update(_ context.Context, form *models.Form) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, err := r.get(form.ID, form.UserID)
	if err != nil {
		return err
	}
	stored.CompanyName = form.CompanyName
	stored.LogoURL = form.LogoURL
	stored.PresentationURL = form.PresentationURL
	stored.UpdatedAt = form.UpdatedAt
	r.s.forms[form.ID] = stored
	return nil
}

func (r *fakeFormRepo) SetFolder(_ context.Context, id, userID string, folderID *string, at time.Time) (*models.Form, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	form, err := r.get(id, userID)
	if err != nil {
		return nil, err
	}
	form.FolderID = folderID
	form.UpdatedAt = at
	r.s.forms[id] = form
	return &form, nil
}

func (r *fakeFormRepo) ToggleArchived(_ context.Context, id, userID string, at time.Time) (*models.Form, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	form, err := r.get(id, userID)
	if err != nil {
		return nil, err
	}
	form.IsArchived = !form.IsArchived
	form.UpdatedAt = at
	r.s.forms[id] = form
	return &form, nil
}

func (r *fakeFormRepo) ClearFolder(_ context.Context, folderID, userID string, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, form := range r.s.forms {
		if form.UserID == userID && form.InFolder(folderID) {
			form.FolderID = nil
			form.UpdatedAt = at
			r.s.forms[id] = form
			n++
		}
	}
	return n, nil
}

func (r *fakeFormRepo) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, err := r.get(id, userID); err != nil {
		return err
	}
	delete(r.s.forms, id)
	return nil
}

func (r *fakeFormRepo) DeleteByID(ctx context.Context, id string) error {
	return r.Delete(ctx, id, "")
}

// ---- folders ----

type fakeFolderRepo struct {
	s         *memStore
	deleteErr error
}

func (r *fakeFolderRepo) get(id, userID string) (models.Folder, error) {
	folder, ok := r.s.folders[id]
	if !ok || folder.UserID != userID {
		return models.Folder{}, notFound("folder", id)
	}
	return folder, nil
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	folder.Order = 0
	for _, existing := range r.s.folders {
		if existing.UserID == folder.UserID && existing.Order >= folder.Order {
			folder.Order = existing.Order + 1
		}
	}
	r.s.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, id, userID string) (*models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	folder, err := r.get(id, userID)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *fakeFolderRepo) ListByUser(_ context.Context, userID string) ([]models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	folders := []models.Folder{}
	for _, folder := range r.s.folders {
		if folder.UserID == userID {
			folders = append(folders, folder)
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Order < folders[j].Order })
	return folders, nil
}

func (r *fakeFolderRepo) Rename(_ context.Context, id, userID, name string, at time.Time) (*models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	folder, err := r.get(id, userID)
	if err != nil {
		return nil, err
	}
	folder.Name = name
	folder.UpdatedAt = at
	r.s.folders[id] = folder
	return &folder, nil
}

func (r *fakeFolderRepo) ToggleArchived(_ context.Context, id, userID string, at time.Time) (*models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	folder, err := r.get(id, userID)
	if err != nil {
		return nil, err
	}
	folder.IsArchived = !folder.IsArchived
	folder.UpdatedAt = at
	r.s.folders[id] = folder
	return &folder, nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, id, userID string) (*models.Folder, error) {
	if r.deleteErr != nil {
		return nil, r.deleteErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	folder, err := r.get(id, userID)
	if err != nil {
		return nil, err
	}
	delete(r.s.folders, id)
	return &folder, nil
}

// ---- users ----

type fakeUserRepo struct {
	s         *memStore
	ensureErr error
}

func (r *fakeUserRepo) EnsureExists(_ context.Context, user *models.User) error {
	if r.ensureErr != nil {
		return r.ensureErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.users[user.ID]; ok {
		if user.Email != "" {
			existing.Email = user.Email
			r.s.users[user.ID] = existing
		}
		*user = existing
		return nil
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &user, nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := []models.User{}
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (r *fakeUserRepo) UpdateName(_ context.Context, id, firstName, lastName string, at time.Time) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.UpdatedAt = at
	r.s.users[id] = user
	return &user, nil
}

func (r *fakeUserRepo) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return notFound("user", id)
	}
	user.IsAdmin = isAdmin
	r.s.users[id] = user
	return nil
}

// ---- settings ----

type fakeSettingsRepo struct{ s *memStore }

func (r *fakeSettingsRepo) GetByUserID(_ context.Context, userID string) (*models.Settings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	settings, ok := r.s.settings[userID]
	if !ok {
		return nil, nil
	}
	return &settings, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, settings *models.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[settings.UserID] = *settings
	return nil
}

// ---- api keys ----

type fakeAPIKeyRepo struct {
	s        *memStore
	touchErr error
}

func (r *fakeAPIKeyRepo) Create(_ context.Context, key *models.APIKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, k := range r.s.keys {
		if k.Prefix == key.Prefix {
			return &domain.ConflictError{Message: "api key prefix already exists", ResourceType: "api_key", ResourceID: k.ID}
		}
	}
	r.s.keys[key.ID] = *key
	return nil
}

func (r *fakeAPIKeyRepo) GetByPrefix(_ context.Context, prefix string) (*models.APIKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, k := range r.s.keys {
		if k.Prefix == prefix {
			return &k, nil
		}
	}
	return nil, notFound("api key", prefix)
}

func (r *fakeAPIKeyRepo) ListByUser(_ context.Context, userID string) ([]models.APIKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	keys := []models.APIKey{}
	for _, k := range r.s.keys {
		if k.UserID == userID {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (r *fakeAPIKeyRepo) Revoke(_ context.Context, id, userID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k, ok := r.s.keys[id]
	if !ok || k.UserID != userID {
		return notFound("api key", id)
	}
	if k.RevokedAt == nil {
		k.RevokedAt = &at
	}
	r.s.keys[id] = k
	return nil
}

func (r *fakeAPIKeyRepo) TouchLastUsed(_ context.Context, id string, at time.Time) error {
	if r.touchErr != nil {
		return r.touchErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k, ok := r.s.keys[id]
	if !ok {
		return notFound("api key", id)
	}
	k.LastUsedAt = &at
	r.s.keys[id] = k
	return nil
}

// ---- meetings ----

type fakeMeetingRepo struct{ s *memStore }

func (r *fakeMeetingRepo) Create(_ context.Context, meeting *models.Meeting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.meetings[meeting.ID] = *meeting
	return nil
}

func (r *fakeMeetingRepo) filter(keep func(models.Meeting) bool) []models.Meeting {
	meetings := []models.Meeting{}
	for _, m := range r.s.meetings {
		if keep(m) {
			meetings = append(meetings, m)
		}
	}
	sort.Slice(meetings, func(i, j int) bool { return meetings[i].ScheduledAt.Before(meetings[j].ScheduledAt) })
	return meetings
}

func (r *fakeMeetingRepo) ListByForm(_ context.Context, formID, userID string) ([]models.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(m models.Meeting) bool { return m.FormID == formID && m.UserID == userID }), nil
}

func (r *fakeMeetingRepo) ListUpcoming(_ context.Context, userID string, from time.Time) ([]models.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(m models.Meeting) bool { return m.UserID == userID && !m.ScheduledAt.Before(from) }), nil
}

func (r *fakeMeetingRepo) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meetings[id]
	if !ok || m.UserID != userID {
		return notFound("meeting", id)
	}
	delete(r.s.meetings, id)
	return nil
}

// ---- transactions ----

// fakeTxManager snapshots forms and folders and restores them on error
type fakeTxManager struct {
	s     *memStore
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	m.s.mu.Lock()
	forms := make(map[string]models.Form, len(m.s.forms))
	for k, v := range m.s.forms {
		forms[k] = v
	}
	folders := make(map[string]models.Folder, len(m.s.folders))
	for k, v := range m.s.folders {
		folders[k] = v
	}
	m.s.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.s.mu.Lock()
		m.s.forms = forms
		m.s.folders = folders
		m.s.mu.Unlock()
		return err
	}
	return nil
}

// ---- identity provider and revoker ----

type fakeIdentityProvider struct {
	session      *models.Session
	signInErr    error
	updatedToken string
	updatedPw    string
	resetEmail   string
}

func (p *fakeIdentityProvider) SignInWithPassword(_ context.Context, email, _ string) (*models.Session, error) {
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	if p.session != nil {
		return p.session, nil
	}
	return &models.Session{IDToken: "tok", UserID: "uid-1", Email: email, ExpiresIn: 3600}, nil
}

func (p *fakeIdentityProvider) UpdatePassword(_ context.Context, idToken, newPassword string) error {
	p.updatedToken = idToken
	p.updatedPw = newPassword
	return nil
}

func (p *fakeIdentityProvider) SendPasswordReset(_ context.Context, email string) error {
	p.resetEmail = email
	return nil
}

type fakeRevoker struct {
	revoked map[string]time.Time
}

func (r *fakeRevoker) Revoke(token string, until time.Time) {
	if r.revoked == nil {
		r.revoked = map[string]time.Time{}
	}
	r.revoked[token] = until
}

func (r *fakeRevoker) IsRevoked(token string) bool {
	_, ok := r.revoked[token]
	return ok
}

// ---- presigner ----

type fakePresigner struct {
	lastKey         string
	lastContentType string
}

func (p *fakePresigner) PresignPut(_ context.Context, key, contentType string) (string, error) {
	p.lastKey = key
	p.lastContentType = contentType
	return "https://upload.example.com/" + key + "?sig=x", nil
}

func (p *fakePresigner) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

// ---- fixture ----

type fixture struct {
	store      *memStore
	forms      *fakeFormRepo
	folders    *fakeFolderRepo
	users      *fakeUserRepo
	settings   *fakeSettingsRepo
	keys       *fakeAPIKeyRepo
	meetings   *fakeMeetingRepo
	tx         *fakeTxManager
	authorizer services.ResourceAuthorizer
}

func newFixture() *fixture {
	s := newMemStore()
	f := &fixture{
		store:    s,
		forms:    &fakeFormRepo{s: s},
		folders:  &fakeFolderRepo{s: s},
		users:    &fakeUserRepo{s: s},
		settings: &fakeSettingsRepo{s: s},
		keys:     &fakeAPIKeyRepo{s: s},
		meetings: &fakeMeetingRepo{s: s},
		tx:       &fakeTxManager{s: s},
	}
	f.authorizer = auth.NewOwnerBasedAuthorizer(f.forms, f.folders)
	return f
}

func (f *fixture) addFolder(id, userID, name string, order int, archived bool) {
	f.store.folders[id] = models.Folder{ID: id, UserID: userID, Name: name, Order: order, IsArchived: archived}
}

func (f *fixture) addForm(id, userID, company string, folderID *string, archived bool) {
	f.store.forms[id] = models.Form{ID: id, UserID: userID, CompanyName: company, FolderID: folderID, IsArchived: archived}
	f.store.order = append(f.store.order, id)
}
