package settings

import (
	"strings"

	"github.com/piwi3910/PrintPrep/internal/model"
)

// Applicability selects which applicability flag a settings view filters on.
// With one-at-a-time sequencing, per-object overrides act on the whole mesh
// group, so views switch from per-mesh to per-meshgroup filtering.
type Applicability int

const (
	SettablePerMesh Applicability = iota
	SettablePerMeshgroup
)

func (a Applicability) String() string {
	if a == SettablePerMeshgroup {
		return "settable_per_meshgroup"
	}
	return "settable_per_mesh"
}

// Matches reports whether a setting carries the selected flag.
func (a Applicability) Matches(d model.SettingDescriptor) bool {
	if a == SettablePerMeshgroup {
		return d.SettablePerMeshgroup
	}
	return d.SettablePerMesh
}

// DefinitionsModel derives a filtered, ordered view over the setting
// definitions of one container. Every change marks the model dirty and the
// item list is recomputed from scratch on the next Items call; nothing is
// patched incrementally.
type DefinitionsModel struct {
	registry   *Registry
	visibility *VisibilityHandler

	containerID   string
	objectID      string
	applicability Applicability
	exclude       map[string]bool
	filterText    string
	showAll       bool
	collapsed     map[string]bool

	items []model.SettingDescriptor
	dirty bool
}

// NewDefinitionsModel creates a model over the registry. With a visibility
// handler and ShowAll off, only added settings are listed; ShowAll (or a nil
// handler) lists every eligible setting.
func NewDefinitionsModel(registry *Registry, visibility *VisibilityHandler) *DefinitionsModel {
	return &DefinitionsModel{
		registry:   registry,
		visibility: visibility,
		exclude:    map[string]bool{},
		collapsed:  map[string]bool{},
		dirty:      true,
	}
}

// SetContainer points the model at a container id. "" empties the view.
func (m *DefinitionsModel) SetContainer(id string) {
	m.containerID = id
	m.dirty = true
}

// SetObject sets the object whose visibility set restricts the view.
func (m *DefinitionsModel) SetObject(id string) {
	m.objectID = id
	m.dirty = true
}

// SetApplicability switches between per-mesh and per-meshgroup filtering.
func (m *DefinitionsModel) SetApplicability(a Applicability) {
	m.applicability = a
	m.dirty = true
}

// SetExclude replaces the set of excluded keys. Excluding a category key
// hides the category and everything in it.
func (m *DefinitionsModel) SetExclude(keys []string) {
	m.exclude = make(map[string]bool, len(keys))
	for _, k := range keys {
		m.exclude[k] = true
	}
	m.dirty = true
}

// SetFilter sets a case-insensitive substring filter on setting labels.
// An empty string clears the filter.
func (m *DefinitionsModel) SetFilter(text string) {
	m.filterText = text
	m.dirty = true
}

// Filter returns the current label filter text.
func (m *DefinitionsModel) Filter() string {
	return m.filterText
}

// SetShowAll bypasses the visibility set and lists every eligible setting.
func (m *DefinitionsModel) SetShowAll(showAll bool) {
	m.showAll = showAll
	m.dirty = true
}

// Collapse hides a category's settings, keeping its header.
func (m *DefinitionsModel) Collapse(categoryKey string) {
	m.collapsed[categoryKey] = true
	m.dirty = true
}

// Expand shows a collapsed category's settings again.
func (m *DefinitionsModel) Expand(categoryKey string) {
	delete(m.collapsed, categoryKey)
	m.dirty = true
}

// ForceUpdate discards the cached item list.
func (m *DefinitionsModel) ForceUpdate() {
	m.dirty = true
}

// Items returns the visible descriptors in catalog order: each category
// header followed by its visible settings. Categories without any visible
// setting are omitted entirely.
func (m *DefinitionsModel) Items() []model.SettingDescriptor {
	if m.dirty {
		m.items = m.rebuild()
		m.dirty = false
	}
	return m.items
}

// Keys returns the keys of the visible non-category settings.
func (m *DefinitionsModel) Keys() []string {
	var keys []string
	for _, d := range m.Items() {
		if !d.IsCategory() {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

func (m *DefinitionsModel) rebuild() []model.SettingDescriptor {
	defs := m.registry.Definitions(m.containerID)
	if len(defs) == 0 {
		return nil
	}

	filter := strings.ToLower(m.filterText)

	var items []model.SettingDescriptor
	var currentCategory *model.SettingDescriptor
	categoryEmitted := false

	for _, d := range defs {
		if d.IsCategory() {
			d := d
			currentCategory = &d
			categoryEmitted = false
			continue
		}
		if !m.includes(d, filter) {
			continue
		}
		if currentCategory != nil {
			if m.exclude[currentCategory.Key] {
				continue
			}
			if !categoryEmitted {
				items = append(items, *currentCategory)
				categoryEmitted = true
			}
			if m.collapsed[currentCategory.Key] {
				continue
			}
		}
		items = append(items, d)
	}
	return items
}

func (m *DefinitionsModel) includes(d model.SettingDescriptor, filter string) bool {
	if m.exclude[d.Key] {
		return false
	}
	if !m.applicability.Matches(d) {
		return false
	}
	if filter != "" && !strings.Contains(strings.ToLower(d.Label), filter) {
		return false
	}
	if m.visibility != nil && !m.showAll {
		return m.visibility.IsVisible(m.objectID, d.Key)
	}
	return true
}
