package service

import (
	"context"
	"testing"
	"time"

	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/services"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fallbackLink = "https://contentcoach.fr/presentation"

func viewIDs(views []models.FormView) []string {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestBuildDashboard_Buckets(t *testing.T) {
	folders := []models.Folder{
		{ID: "f1", Name: "Clients", Order: 0},
		{ID: "f2", Name: "Old", Order: 1, IsArchived: true},
	}
	forms := []models.Form{
		{ID: "a", CompanyName: "Acme", FolderID: strPtr("f1")},
		{ID: "b", CompanyName: "Beta"},
		{ID: "c", CompanyName: "Gamma", IsArchived: true},
		{ID: "d", CompanyName: "Delta", FolderID: strPtr("f2")},
		{ID: "e", CompanyName: "Epsilon", FolderID: strPtr("f1"), IsArchived: true},
	}

	dash := BuildDashboard(forms, folders, services.DashboardQuery{}, fallbackLink)

	require.Len(t, dash.Folders, 1)
	assert.Equal(t, "f1", dash.Folders[0].ID)
	// Archived forms stay in their folder's list
	assert.Equal(t, []string{"a", "e"}, viewIDs(dash.Folders[0].Forms))
	assert.Equal(t, []string{"b"}, viewIDs(dash.Unorganized))
	assert.Equal(t, []string{"c", "e"}, viewIDs(dash.Archived))
	assert.Nil(t, dash.Found)
}

func TestBuildDashboard_ShowArchivedFolders(t *testing.T) {
	folders := []models.Folder{
		{ID: "f1", Name: "Clients"},
		{ID: "f2", Name: "Old", IsArchived: true},
	}

	dash := BuildDashboard(nil, folders, services.DashboardQuery{ShowArchived: true}, fallbackLink)

	require.Len(t, dash.Folders, 1)
	assert.Equal(t, "f2", dash.Folders[0].ID)
	assert.NotNil(t, dash.Folders[0].Forms)
	assert.Empty(t, dash.Folders[0].Forms)
}

func TestBuildDashboard_SearchFiltersFormsOnly(t *testing.T) {
	folders := []models.Folder{{ID: "f1", Name: "Acme folder"}, {ID: "f2", Name: "Other"}}
	forms := []models.Form{
		{ID: "a", CompanyName: "Acme Corp", FolderID: strPtr("f1")},
		{ID: "b", CompanyName: "Beta", FolderID: strPtr("f1")},
		{ID: "c", CompanyName: "acme labs"},
	}

	dash := BuildDashboard(forms, folders, services.DashboardQuery{Search: " ACME "}, fallbackLink)

	assert.Equal(t, "ACME", dash.Query)
	require.NotNil(t, dash.Found)
	assert.Equal(t, 2, *dash.Found)
	// Folders are never filtered by the query
	require.Len(t, dash.Folders, 2)
	assert.Equal(t, []string{"a"}, viewIDs(dash.Folders[0].Forms))
	assert.Empty(t, dash.Folders[1].Forms)
	assert.Equal(t, []string{"c"}, viewIDs(dash.Unorganized))
}

func TestBuildDashboard_PresentationLinks(t *testing.T) {
	own := "https://slides.example.com/acme"
	forms := []models.Form{
		{ID: "a", CompanyName: "Acme", PresentationURL: &own},
		{ID: "b", CompanyName: "Beta"},
		{ID: "c", CompanyName: "Gamma", PresentationURL: strPtr("  ")},
	}

	dash := BuildDashboard(forms, nil, services.DashboardQuery{}, fallbackLink)

	want := []models.FormView{
		{Form: forms[0], PresentationLink: own},
		{Form: forms[1], PresentationLink: fallbackLink},
		{Form: forms[2], PresentationLink: fallbackLink},
	}
	if diff := cmp.Diff(want, dash.Unorganized); diff != "" {
		t.Errorf("unorganized mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDashboard_Empty(t *testing.T) {
	dash := BuildDashboard(nil, nil, services.DashboardQuery{}, fallbackLink)

	want := &models.Dashboard{
		Folders:     []models.FolderView{},
		Unorganized: []models.FormView{},
		Archived:    []models.FormView{},
	}
	if diff := cmp.Diff(want, dash); diff != "" {
		t.Errorf("dashboard mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboardService_GetDashboardUsesUserDefault(t *testing.T) {
	fx := newFixture()
	fx.addForm("a", "u1", "Acme", nil, false)
	fx.addForm("x", "u2", "Other user", nil, false)

	settings := NewSettingsService(fx.settings, fallbackLink, testLogger())
	_, err := settings.UpdateSettings(context.Background(), "u1", &models.UpdateSettingsRequest{
		DefaultPresentationURL: models.OptionalURL{Present: true, Value: strPtr("https://mine.example.com")},
	})
	require.NoError(t, err)

	svc := NewDashboardService(fx.forms, fx.folders, fx.meetings, settings, testLogger())
	dash, err := svc.GetDashboard(context.Background(), "u1", services.DashboardQuery{})
	require.NoError(t, err)

	require.Len(t, dash.Unorganized, 1)
	assert.Equal(t, "a", dash.Unorganized[0].ID)
	assert.Equal(t, "https://mine.example.com", dash.Unorganized[0].PresentationLink)
}

func TestDashboardService_GetSummary(t *testing.T) {
	fx := newFixture()
	fx.addFolder("f1", "u1", "Clients", 0, false)
	fx.addForm("a", "u1", "Acme", strPtr("f1"), false)
	fx.addForm("b", "u1", "Beta", nil, false)
	fx.addForm("c", "u1", "Gamma", nil, true)
	fx.store.meetings["m1"] = models.Meeting{ID: "m1", UserID: "u1", FormID: "a", ScheduledAt: time.Now().Add(time.Hour)}
	fx.store.meetings["m2"] = models.Meeting{ID: "m2", UserID: "u1", FormID: "a", ScheduledAt: time.Now().Add(-time.Hour)}

	settings := NewSettingsService(fx.settings, fallbackLink, testLogger())
	svc := NewDashboardService(fx.forms, fx.folders, fx.meetings, settings, testLogger())

	summary, err := svc.GetSummary(context.Background(), "u1")
	require.NoError(t, err)

	want := &models.DashboardSummary{
		TotalForms:       3,
		ArchivedForms:    1,
		UnorganizedForms: 1,
		Folders:          1,
		UpcomingMeetings: 1,
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboardService_LoadRequiresUser(t *testing.T) {
	fx := newFixture()
	svc := NewDashboardService(fx.forms, fx.folders, fx.meetings, NewSettingsService(fx.settings, fallbackLink, testLogger()), testLogger())

	_, _, err := svc.Load(context.Background(), "")
	assert.Error(t, err)
}
