package service

import (
	"testing"

	"contentcoach/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestFilterForms(t *testing.T) {
	forms := []models.Form{
		{ID: "1", CompanyName: "Acme Corp"},
		{ID: "2", CompanyName: "Beta"},
		{ID: "3", CompanyName: "ACME Labs"},
	}

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "lowercase query matches any case", query: "acme", wantIDs: []string{"1", "3"}},
		{name: "uppercase query", query: "BETA", wantIDs: []string{"2"}},
		{name: "substring in the middle", query: "cme l", wantIDs: []string{"3"}},
		{name: "blank query returns everything", query: "", wantIDs: []string{"1", "2", "3"}},
		{name: "whitespace query returns everything", query: "   ", wantIDs: []string{"1", "2", "3"}},
		{name: "surrounding whitespace is ignored", query: "  beta ", wantIDs: []string{"2"}},
		{name: "no match", query: "zzz", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterForms(forms, tt.query)
			ids := make([]string, 0, len(got))
			for _, f := range got {
				ids = append(ids, f.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterForms_DoesNotMutateInput(t *testing.T) {
	forms := []models.Form{{ID: "1", CompanyName: "Acme"}, {ID: "2", CompanyName: "Beta"}}

	_ = FilterForms(forms, "beta")

	assert.Len(t, forms, 2)
	assert.Equal(t, "1", forms[0].ID)
}
