package service

import (
	"strings"

	"contentcoach/internal/domain/models"
)

// FilterForms returns the forms whose company name contains query, ignoring
// case, in input order. A blank query returns forms unchanged.
func FilterForms(forms []models.Form, query string) []models.Form {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return forms
	}

	matched := make([]models.Form, 0, len(forms))
	for _, form := range forms {
		if strings.Contains(strings.ToLower(form.CompanyName), needle) {
			matched = append(matched, form)
		}
	}
	return matched
}
