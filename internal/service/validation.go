package service

import (
	"fmt"
	"strings"

	"contentcoach/internal/domain"
)

// requiredError reports a missing identifier or field. Nothing is written.
func requiredError(label string) error {
	return fmt.Errorf("%w: %s is required", domain.ErrValidation, label)
}

// validationError wraps an ozzo error so handlers map it to 400
func validationError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// normalizeID trims an optional identifier; blank means nil
func normalizeID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// normalizeOptional trims an optional value; blank means cleared
func normalizeOptional(v *string) *string {
	return normalizeID(v)
}

func sameFolder(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
