package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrintPrep/internal/model"
)

func newTestModel() (*DefinitionsModel, *Registry, *VisibilityHandler) {
	r := NewRegistry()
	r.AddContainer("global", DefaultDefinitions(), "")
	v := NewVisibilityHandler()
	m := NewDefinitionsModel(r, v)
	m.SetContainer("global")
	m.SetObject("obj")
	m.SetShowAll(true)
	return m, r, v
}

func TestDefinitionsModel_ItemsFollowCatalogOrder(t *testing.T) {
	m, _, _ := newTestModel()

	items := m.Items()
	require.NotEmpty(t, items)

	// Each setting must appear after its own category header
	currentCategory := ""
	for _, d := range items {
		if d.IsCategory() {
			currentCategory = d.Key
			continue
		}
		assert.Equal(t, currentCategory, d.Category, d.Key)
	}
}

func TestDefinitionsModel_OmitsEmptyCategories(t *testing.T) {
	m, _, _ := newTestModel()
	m.SetFilter("Wall Thickness")

	items := m.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "shell", items[0].Key)
	assert.True(t, items[0].IsCategory())
	assert.Equal(t, "wall_thickness", items[1].Key)
}

func TestDefinitionsModel_ExcludedCategoryHidesChildren(t *testing.T) {
	m, _, _ := newTestModel()
	m.SetExclude([]string{"shell"})

	for _, d := range m.Items() {
		assert.NotEqual(t, "shell", d.Key)
		assert.NotEqual(t, "shell", d.Category)
	}
}

func TestDefinitionsModel_VisibilityRestrictsWithoutShowAll(t *testing.T) {
	m, _, v := newTestModel()
	m.SetShowAll(false)

	assert.Empty(t, m.Keys())

	v.Add("obj", "wall_thickness")
	m.ForceUpdate()
	assert.Equal(t, []string{"wall_thickness"}, m.Keys())

	// Another object's additions are invisible here
	v.Add("other", "top_layers")
	m.ForceUpdate()
	assert.Equal(t, []string{"wall_thickness"}, m.Keys())
}

func TestDefinitionsModel_CollapseKeepsHeader(t *testing.T) {
	m, _, _ := newTestModel()
	m.Collapse("shell")

	sawHeader := false
	for _, d := range m.Items() {
		if d.IsCategory() && d.Key == "shell" {
			sawHeader = true
		}
		if !d.IsCategory() {
			assert.NotEqual(t, "shell", d.Category)
		}
	}
	assert.True(t, sawHeader)

	m.Expand("shell")
	assert.Contains(t, m.Keys(), "wall_thickness")
}

func TestDefinitionsModel_EmptyContainerYieldsNoItems(t *testing.T) {
	m, _, _ := newTestModel()
	m.SetContainer("")
	assert.Empty(t, m.Items())
}

func TestDefinitionsModel_ItemsAreCachedUntilDirty(t *testing.T) {
	m, _, v := newTestModel()
	m.SetShowAll(false)
	v.Add("obj", "wall_thickness")

	// The cache from before the Add is stale until ForceUpdate
	m.Items()
	v.Add("obj", "top_layers")
	assert.NotContains(t, m.Keys(), "top_layers")

	m.ForceUpdate()
	assert.Contains(t, m.Keys(), "top_layers")
}

func TestApplicability_StringMatchesSequenceSemantics(t *testing.T) {
	assert.Equal(t, "settable_per_mesh", SettablePerMesh.String())
	assert.Equal(t, "settable_per_meshgroup", SettablePerMeshgroup.String())

	d := model.SettingDescriptor{SettablePerMesh: true}
	assert.True(t, SettablePerMesh.Matches(d))
	assert.False(t, SettablePerMeshgroup.Matches(d))
}
