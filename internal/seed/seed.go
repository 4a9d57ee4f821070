package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"contentcoach/internal/domain/services"

	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoFixture []byte

// Fixture describes a dashboard to create for one user
type Fixture struct {
	Folders     []FolderFixture `yaml:"folders"`
	Unorganized []FormFixture   `yaml:"unorganized"`
}

// FolderFixture is a folder and the forms filed under it
type FolderFixture struct {
	Name     string        `yaml:"name"`
	Archived bool          `yaml:"archived"`
	Forms    []FormFixture `yaml:"forms"`
}

// FormFixture is one form
type FormFixture struct {
	CompanyName     string `yaml:"companyName"`
	LogoURL         string `yaml:"logoUrl"`
	PresentationURL string `yaml:"presentationUrl"`
	Archived        bool   `yaml:"archived"`
}

// Result counts what Apply created
type Result struct {
	Folders int
	Forms   int
}

// Demo returns the embedded demo fixture
func Demo() (*Fixture, error) {
	return Parse(demoFixture)
}

// Parse decodes and checks a YAML fixture. Unknown keys are rejected.
func Parse(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	for i, folder := range f.Folders {
		if strings.TrimSpace(folder.Name) == "" {
			return nil, fmt.Errorf("folder %d: name is required", i)
		}
		for j, form := range folder.Forms {
			if strings.TrimSpace(form.CompanyName) == "" {
				return nil, fmt.Errorf("folder %q form %d: companyName is required", folder.Name, j)
			}
		}
	}
	for i, form := range f.Unorganized {
		if strings.TrimSpace(form.CompanyName) == "" {
			return nil, fmt.Errorf("unorganized form %d: companyName is required", i)
		}
	}

	return &f, nil
}

// Seeder creates fixtures through the regular services, so seeded data
// passes the same validation as user input.
type Seeder struct {
	folders services.FolderService
	forms   services.FormService
	logger  *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(folders services.FolderService, forms services.FormService, logger *slog.Logger) *Seeder {
	return &Seeder{
		folders: folders,
		forms:   forms,
		logger:  logger,
	}
}

// Apply creates the fixture's folders and forms for userID
func (s *Seeder) Apply(ctx context.Context, userID string, f *Fixture) (*Result, error) {
	if userID == "" {
		return nil, errors.New("seed: user id is required")
	}

	result := &Result{}

	for _, ff := range f.Folders {
		folder, err := s.folders.CreateFolder(ctx, userID, ff.Name)
		if err != nil {
			return result, fmt.Errorf("create folder %q: %w", ff.Name, err)
		}
		result.Folders++

		folderID := folder.ID
		for _, form := range ff.Forms {
			if err := s.createForm(ctx, userID, &folderID, form); err != nil {
				return result, err
			}
			result.Forms++
		}

		// Archive after filing, so the forms are created in a live folder
		if ff.Archived {
			if _, err := s.folders.ToggleArchive(ctx, userID, folderID); err != nil {
				return result, fmt.Errorf("archive folder %q: %w", ff.Name, err)
			}
		}
	}

	for _, form := range f.Unorganized {
		if err := s.createForm(ctx, userID, nil, form); err != nil {
			return result, err
		}
		result.Forms++
	}

	s.logger.Info("fixture applied", "user_id", userID, "folders", result.Folders, "forms", result.Forms)
	return result, nil
}

func (s *Seeder) createForm(ctx context.Context, userID string, folderID *string, ff FormFixture) error {
	created, err := s.forms.CreateForm(ctx, &services.CreateFormRequest{
		UserID:          userID,
		CompanyName:     ff.CompanyName,
		LogoURL:         optional(ff.LogoURL),
		PresentationURL: optional(ff.PresentationURL),
		FolderID:        folderID,
	})
	if err != nil {
		return fmt.Errorf("create form %q: %w", ff.CompanyName, err)
	}

	if ff.Archived {
		if _, err := s.forms.ToggleArchive(ctx, userID, created.ID); err != nil {
			return fmt.Errorf("archive form %q: %w", ff.CompanyName, err)
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
