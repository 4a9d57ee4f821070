package service

import (
	"context"
	"testing"

	"contentcoach/internal/domain"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateCreators(t *testing.T) {
	forms := []models.Form{
		{ID: "a", UserID: "u1"},
		{ID: "b", UserID: "ghost"},
		{ID: "c", UserID: "u2"},
	}
	users := []models.User{
		{ID: "u1", Email: "coach@example.com"},
		{ID: "u2", Email: ""},
	}

	got := AnnotateCreators(forms, users)

	require.Len(t, got, 3)
	assert.Equal(t, "coach@example.com", got[0].CreatorEmail)
	assert.Equal(t, models.UnknownCreator, got[1].CreatorEmail)
	assert.Equal(t, models.UnknownCreator, got[2].CreatorEmail)
	assert.Equal(t, "b", got[1].ID)
}

func TestAdminService_IsAdmin(t *testing.T) {
	fx := newFixture()
	fx.store.users["flagged"] = models.User{ID: "flagged", IsAdmin: true}
	fx.store.users["plain"] = models.User{ID: "plain"}
	svc := NewAdminService(fx.forms, fx.users, testLogger())

	tests := []struct {
		name     string
		identity services.Identity
		want     bool
	}{
		{name: "admin claim", identity: services.Identity{UserID: "nobody", IsAdmin: true}, want: true},
		{name: "flagged row", identity: services.Identity{UserID: "flagged"}, want: true},
		{name: "plain user", identity: services.Identity{UserID: "plain"}, want: false},
		{name: "no row", identity: services.Identity{UserID: "missing"}, want: false},
		{name: "anonymous", identity: services.Identity{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsAdmin(context.Background(), tt.identity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdminService_Overview(t *testing.T) {
	fx := newFixture()
	fx.store.users["u1"] = models.User{ID: "u1", Email: "a@example.com"}
	fx.store.users["u2"] = models.User{ID: "u2", Email: "b@example.com"}
	fx.addForm("t1", "u1", "Acme", nil, false)
	fx.addForm("t2", "u2", "Beta", nil, true)
	fx.addForm("t3", "gone", "Gamma", nil, false)
	svc := NewAdminService(fx.forms, fx.users, testLogger())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.AdminStats{TotalForms: 3, TotalUsers: 2}, overview.Stats)
	require.Len(t, overview.Forms, 3)
	assert.Equal(t, "a@example.com", overview.Forms[0].CreatorEmail)
	assert.Equal(t, "b@example.com", overview.Forms[1].CreatorEmail)
	assert.Equal(t, models.UnknownCreator, overview.Forms[2].CreatorEmail)
}

func TestAdminService_DeleteFormAnyOwner(t *testing.T) {
	fx := newFixture()
	fx.addFolder("f1", "u1", "Clients", 0, false)
	fx.addForm("t1", "u1", "Acme", strPtr("f1"), false)
	svc := NewAdminService(fx.forms, fx.users, testLogger())
	ctx := context.Background()

	deleted, err := svc.DeleteForm(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "u1", deleted.UserID)
	assert.Equal(t, "Acme", deleted.CompanyName)
	assert.NotContains(t, fx.store.forms, "t1")
	assert.Contains(t, fx.store.folders, "f1")

	_, err = svc.DeleteForm(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.DeleteForm(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
