package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate represents a reusable plate configuration that captures
// objects, their mesh types, and per-object overrides, but not transient
// state like the current selection.
type ProjectTemplate struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	CreatedAt   string                       `json:"created_at"`
	UpdatedAt   string                       `json:"updated_at"`
	MachineID   string                       `json:"machine_id"`
	Objects     []SceneObject                `json:"objects"`
	Overrides   map[string]map[string]string `json:"overrides,omitempty"`
	Visible     map[string][]string          `json:"visible,omitempty"`
}

// NewProjectTemplate creates a new template from the given project.
func NewProjectTemplate(name, description string, p Project) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		MachineID:   p.MachineID,
		Objects:     copyObjects(p.Objects),
		Overrides:   copyOverrides(p.Overrides),
		Visible:     copyVisible(p.Visible),
	}
}

// ToProject creates a new Project from this template. Objects get fresh IDs
// so they are independent of the template; overrides and visible-settings
// maps are re-keyed to the fresh IDs.
func (t ProjectTemplate) ToProject(projectName string) Project {
	p := NewProject()
	p.Name = projectName
	p.MachineID = t.MachineID

	for _, obj := range t.Objects {
		oldID := obj.ID
		obj.ID = uuid.New().String()[:8]
		p.Objects = append(p.Objects, obj)

		if overrides, ok := t.Overrides[oldID]; ok {
			copied := make(map[string]string, len(overrides))
			for k, v := range overrides {
				copied[k] = v
			}
			p.Overrides[obj.ID] = copied
		}
		if visible, ok := t.Visible[oldID]; ok {
			p.Visible[obj.ID] = append([]string(nil), visible...)
		}
	}
	return p
}

// UpdateFrom refreshes the template content from a project, keeping the
// template's identity and creation time.
func (t *ProjectTemplate) UpdateFrom(p Project) {
	t.MachineID = p.MachineID
	t.Objects = copyObjects(p.Objects)
	t.Overrides = copyOverrides(p.Overrides)
	t.Visible = copyVisible(p.Visible)
	t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

func copyObjects(objects []SceneObject) []SceneObject {
	return append([]SceneObject(nil), objects...)
}

func copyOverrides(overrides map[string]map[string]string) map[string]map[string]string {
	copied := make(map[string]map[string]string, len(overrides))
	for id, settings := range overrides {
		inner := make(map[string]string, len(settings))
		for k, v := range settings {
			inner[k] = v
		}
		copied[id] = inner
	}
	return copied
}

func copyVisible(visible map[string][]string) map[string][]string {
	copied := make(map[string][]string, len(visible))
	for id, keys := range visible {
		copied[id] = append([]string(nil), keys...)
	}
	return copied
}
