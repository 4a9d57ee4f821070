package models

import (
	"encoding/json"
	"time"
)

// JSONMap is a type alias for JSONB columns
type JSONMap map[string]interface{}

// Settings holds per-user dashboard settings.
// All settings are stored in a single JSONB column with namespaced structure:
// {"presentation": {...}, "ui": {...}}
type Settings struct {
	UserID    string    `json:"userId" db:"user_id"`
	Values    JSONMap   `json:"settings" db:"settings"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// PresentationSettings is the presentation namespace
type PresentationSettings struct {
	DefaultURL *string `json:"defaultUrl"` // nil = use the service-wide default
}

// UISettings is the ui namespace
type UISettings struct {
	Language string `json:"language"` // "fr", "en"
	Debug    bool   `json:"debug"`
}

// DefaultLanguage is used until the user picks one.
const DefaultLanguage = "fr"

// GetPresentation extracts the presentation namespace
func (s *Settings) GetPresentation() (*PresentationSettings, error) {
	var p PresentationSettings
	if err := s.getNamespace("presentation", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetPresentation replaces the presentation namespace
func (s *Settings) SetPresentation(p *PresentationSettings) error {
	return s.setNamespace("presentation", p)
}

// GetUI extracts the ui namespace
func (s *Settings) GetUI() (*UISettings, error) {
	ui := UISettings{Language: DefaultLanguage}
	if err := s.getNamespace("ui", &ui); err != nil {
		return nil, err
	}
	if ui.Language == "" {
		ui.Language = DefaultLanguage
	}
	return &ui, nil
}

// SetUI replaces the ui namespace
func (s *Settings) SetUI(ui *UISettings) error {
	return s.setNamespace("ui", ui)
}

// getNamespace re-marshals one namespace into dest. A missing namespace
// leaves dest untouched.
func (s *Settings) getNamespace(key string, dest interface{}) error {
	if s.Values == nil {
		return nil
	}
	raw, ok := s.Values[key]
	if !ok || raw == nil {
		return nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (s *Settings) setNamespace(key string, value interface{}) error {
	if s.Values == nil {
		s.Values = JSONMap{}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	s.Values[key] = m
	return nil
}

// OptionalURL tracks tri-state semantics for a nullable URL (RFC 7396 PATCH).
// Transport-agnostic; the handler maps from httputil.OptionalString.
//   - Present=false: absent from request (don't change)
//   - Present=true, Value=nil: clear
//   - Present=true, Value=&"https://...": set
type OptionalURL struct {
	Present bool
	Value   *string
}

// UpdateSettingsRequest is a partial settings update.
type UpdateSettingsRequest struct {
	DefaultPresentationURL OptionalURL
	Language               *string
	Debug                  *bool
}
