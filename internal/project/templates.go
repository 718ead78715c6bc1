package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/PrintPrep/internal/model"
)

// DefaultTemplatesPath returns the default file path for project templates.
func DefaultTemplatesPath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates saves project templates to a JSON file.
func SaveTemplates(path string, templates []model.ProjectTemplate) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates loads project templates from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadTemplates(path string) ([]model.ProjectTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.ProjectTemplate{}, nil
		}
		return nil, err
	}

	var templates []model.ProjectTemplate
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []model.ProjectTemplate{}
	}
	return templates, nil
}
