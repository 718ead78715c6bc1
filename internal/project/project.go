// Package project handles persistence: project files, application config,
// custom machines, the filament inventory, templates, and full-data backups.
// Everything is stored as indented JSON under the user's config directory.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/PrintPrep/internal/model"
)

// Save writes a project to the given path as JSON.
func Save(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from the given path.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	// Older files may miss the maps entirely
	if p.Overrides == nil {
		p.Overrides = map[string]map[string]string{}
	}
	if p.Visible == nil {
		p.Visible = map[string][]string{}
	}
	if p.Objects == nil {
		p.Objects = []model.SceneObject{}
	}
	if p.MachineID == "" {
		p.MachineID = model.Machines[0].ID
	}
	return p, nil
}
