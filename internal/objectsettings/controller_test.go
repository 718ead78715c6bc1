package objectsettings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrintPrep/internal/model"
	"github.com/piwi3910/PrintPrep/internal/settings"
)

const testGlobalID = "global"

func newTestEnv() (*Controller, *settings.Registry, *settings.VisibilityHandler, *settings.ToolBridge) {
	registry := settings.NewRegistry()
	registry.AddContainer(testGlobalID, settings.DefaultDefinitions(), "")
	bridge := settings.NewToolBridge()
	visibility := settings.NewVisibilityHandler()
	c := NewController(registry, bridge, visibility, testGlobalID)
	return c, registry, visibility, bridge
}

func addObject(registry *settings.Registry, name string) model.SceneObject {
	obj := model.NewSceneObject(name, 20, 20, 20)
	registry.AddContainer(obj.ContainerID(), settings.DefaultDefinitions(), testGlobalID)
	return obj
}

func TestSelectObject_BindsSelection(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	obj := addObject(registry, "cube")

	c.SelectObject(obj)

	assert.Equal(t, obj.ID, c.SelectedObjectID())
	assert.Equal(t, obj.ContainerID(), c.Subscription().Provider().ContainerID())
	assert.Equal(t, model.MeshTypeNormal, c.MeshType())
	assert.True(t, c.PanelVisible())
}

func TestClearSelection_HidesPanel(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "cube"))

	c.ClearSelection()

	assert.Equal(t, "", c.SelectedObjectID())
	assert.False(t, c.PanelVisible())
	assert.Equal(t, "", c.Subscription().Provider().ContainerID())
}

func TestSelectionChange_NotifiesOnce(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	obj := addObject(registry, "cube")

	notified := 0
	c.SetOnChanged(func() {
		notified++
		// All three properties must already be applied when listeners run
		assert.Equal(t, obj.ID, c.SelectedObjectID())
		assert.Equal(t, obj.ContainerID(), c.Subscription().Provider().ContainerID())
	})

	c.SelectObject(obj)
	assert.Equal(t, 1, notified)
}

func TestSetMeshType_WritesMarkerSettings(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	obj := addObject(registry, "cube")
	c.SelectObject(obj)

	c.SetMeshType(model.MeshTypeSupport)

	overrides := registry.Overrides(obj.ContainerID())
	assert.Equal(t, "true", overrides[model.KeySupportMesh])
	assert.Equal(t, "false", overrides[model.KeyCuttingMesh])
	assert.Equal(t, "false", overrides[model.KeyInfillMesh])
	assert.Equal(t, "false", overrides[model.KeyAntiOverhangMesh])
	assert.Equal(t, model.MeshTypeSupport, c.MeshType())
}

func TestSetMeshType_NormalClearsAllMarkers(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	obj := addObject(registry, "cube")
	c.SelectObject(obj)

	c.SetMeshType(model.MeshTypeInfill)
	c.SetMeshType(model.MeshTypeNormal)

	overrides := registry.Overrides(obj.ContainerID())
	for _, key := range model.MeshTypeKeys() {
		assert.Equal(t, "false", overrides[key], key)
	}
	assert.Equal(t, model.MeshTypeNormal, c.MeshType())
}

func TestSetMeshType_ReapplySameTypeStillNotifies(t *testing.T) {
	// Re-clicking the active button re-applies the markers and refreshes the
	// views; the call is not short-circuited.
	c, registry, _, _ := newTestEnv()
	obj := addObject(registry, "cube")
	c.SelectObject(obj)
	c.SetMeshType(model.MeshTypeSupport)

	notified := 0
	c.SetOnChanged(func() { notified++ })

	c.SetMeshType(model.MeshTypeSupport)

	assert.Equal(t, 1, notified)
	assert.Equal(t, model.MeshTypeSupport, c.MeshType())
	assert.Equal(t, "true", registry.Overrides(obj.ContainerID())[model.KeySupportMesh])
}

func TestToggleInfillOnly_SwitchesModifierType(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "modifier"))
	c.SetMeshType(model.MeshTypeCutting)

	require.True(t, c.InfillOnlyVisible())
	require.False(t, c.InfillOnlyChecked())

	c.ToggleInfillOnly(true)
	assert.Equal(t, model.MeshTypeInfill, c.MeshType())
	assert.True(t, c.InfillOnlyChecked())

	c.ToggleInfillOnly(false)
	assert.Equal(t, model.MeshTypeCutting, c.MeshType())
	assert.False(t, c.InfillOnlyChecked())
}

func TestToggleInfillOnly_IgnoredForNonModifierTypes(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "cube"))

	c.ToggleInfillOnly(true)
	assert.Equal(t, model.MeshTypeNormal, c.MeshType())

	c.SetMeshType(model.MeshTypeSupport)
	c.ToggleInfillOnly(true)
	assert.Equal(t, model.MeshTypeSupport, c.MeshType())
}

func TestExclusionFilter_AlwaysContainsMarkerKeys(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "cube"))

	for _, mt := range []model.MeshType{
		model.MeshTypeNormal, model.MeshTypeSupport, model.MeshTypeCutting,
		model.MeshTypeInfill, model.MeshTypeAntiOverhang,
	} {
		c.SetMeshType(mt)
		excluded := c.ExclusionFilter()
		for _, key := range model.MeshTypeKeys() {
			assert.Contains(t, excluded, key, "mesh type %s", mt)
		}
	}
}

func TestExclusionFilter_SupportHidesAllOtherCategories(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "support"))

	c.SetMeshType(model.MeshTypeSupport)
	excluded := c.ExclusionFilter()
	for _, cat := range model.AllCategoriesExceptSupport {
		assert.Contains(t, excluded, cat)
	}
	assert.NotContains(t, excluded, "support")

	c.SetMeshType(model.MeshTypeNormal)
	excluded = c.ExclusionFilter()
	for _, cat := range model.AllCategoriesExceptSupport {
		assert.NotContains(t, excluded, cat)
	}
}

func TestSupportMeshType_PickListOnlyShowsSupportSettings(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "support"))
	c.SetMeshType(model.MeshTypeSupport)

	c.OpenPickDialog()
	c.SetShowAll(true)

	for _, d := range c.PickModel().Items() {
		if d.IsCategory() {
			assert.Equal(t, "support", d.Key)
		} else {
			assert.Equal(t, "support", d.Category)
		}
	}
	assert.Contains(t, c.PickModel().Keys(), "support_angle")
}

func TestApplicability_FollowsPrintSequence(t *testing.T) {
	c, registry, _, _ := newTestEnv()

	assert.Equal(t, settings.SettablePerMesh, c.Applicability())

	registry.SetValue(testGlobalID, "print_sequence", string(model.SequenceOneAtATime))
	assert.Equal(t, settings.SettablePerMeshgroup, c.Applicability())

	registry.SetValue(testGlobalID, "print_sequence", string(model.SequenceAllAtOnce))
	assert.Equal(t, settings.SettablePerMesh, c.Applicability())
}

func TestApplicability_FiltersPickList(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "cube"))
	c.OpenPickDialog()
	c.SetShowAll(true)

	// horizontal_expansion is per-mesh only, layer_height per-meshgroup only
	keys := c.PickModel().Keys()
	assert.Contains(t, keys, "horizontal_expansion")
	assert.NotContains(t, keys, "layer_height")

	// Switching to one-at-a-time flips the flag; reselecting refreshes the views
	registry.SetValue(testGlobalID, "print_sequence", string(model.SequenceOneAtATime))
	c.SelectObject(addObject(registry, "cube2"))
	c.OpenPickDialog()
	c.SetShowAll(true)

	keys = c.PickModel().Keys()
	assert.Contains(t, keys, "layer_height")
	assert.NotContains(t, keys, "horizontal_expansion")
}

func TestAntiOverhang_HidesPanelButKeepsVisibilitySet(t *testing.T) {
	c, registry, visibility, _ := newTestEnv()
	obj := addObject(registry, "blocker")
	c.SelectObject(obj)
	c.AddSetting("wall_thickness")

	c.SetMeshType(model.MeshTypeAntiOverhang)

	assert.False(t, c.PanelVisible())
	// The added-settings set survives; switching back restores the view
	assert.True(t, visibility.IsVisible(obj.ID, "wall_thickness"))

	c.SetMeshType(model.MeshTypeNormal)
	assert.True(t, c.PanelVisible())
	assert.Contains(t, c.InlineModel().Keys(), "wall_thickness")
}

func TestAddRemoveSetting_UpdatesInlineView(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "cube"))

	assert.Empty(t, c.InlineModel().Keys())

	c.AddSetting("wall_thickness")
	c.AddSetting("infill_sparse_density")
	keys := c.InlineModel().Keys()
	assert.Contains(t, keys, "wall_thickness")
	assert.Contains(t, keys, "infill_sparse_density")

	c.RemoveSetting("wall_thickness")
	keys = c.InlineModel().Keys()
	assert.NotContains(t, keys, "wall_thickness")
	assert.Contains(t, keys, "infill_sparse_density")
}

func TestInlineView_NeverListsMarkerKeys(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "cube"))

	// Even force-adding a marker to the visibility set must not surface it
	c.AddSetting(model.KeySupportMesh)
	c.AddSetting("wall_thickness")

	assert.NotContains(t, c.InlineModel().Keys(), model.KeySupportMesh)
	assert.Contains(t, c.InlineModel().Keys(), "wall_thickness")
}

func TestPickFilter_ForcesShowAll(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "cube"))
	c.OpenPickDialog()

	// Nothing added, show-all off: the candidate list is empty
	assert.Empty(t, c.PickModel().Keys())

	c.UpdatePickFilter("wall")
	keys := c.PickModel().Keys()
	assert.Contains(t, keys, "wall_thickness")
	assert.Contains(t, keys, "wall_line_count")
	assert.NotContains(t, keys, "layer_height")

	// Clearing the filter falls back to the added-settings view
	c.UpdatePickFilter("")
	assert.Empty(t, c.PickModel().Keys())
}

func TestPickFilter_MatchesLabelCaseInsensitive(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "cube"))
	c.OpenPickDialog()

	c.UpdatePickFilter("WALL THICK")
	assert.Equal(t, []string{"wall_thickness"}, c.PickModel().Keys())
}

func TestShowAll_BypassesVisibilitySet(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	c.SelectObject(addObject(registry, "cube"))
	c.OpenPickDialog()

	c.SetShowAll(true)
	assert.Contains(t, c.PickModel().Keys(), "wall_thickness")

	c.SetShowAll(false)
	assert.Empty(t, c.PickModel().Keys())
}

func TestOpenPickDialog_ProtectsMarkerFromVisibilityReset(t *testing.T) {
	c, registry, visibility, _ := newTestEnv()
	obj := addObject(registry, "support")
	c.SelectObject(obj)
	c.SetMeshType(model.MeshTypeSupport)

	visibility.Add(obj.ID, model.KeySupportMesh)
	visibility.Add(obj.ID, "wall_thickness")

	c.OpenPickDialog()
	visibility.Reset(obj.ID)

	assert.True(t, visibility.IsVisible(obj.ID, model.KeySupportMesh))
	assert.False(t, visibility.IsVisible(obj.ID, "wall_thickness"))
}

func TestRebind_ProvidersNeverDiverge(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	a := addObject(registry, "a")
	b := addObject(registry, "b")

	c.SelectObject(a)
	require.Equal(t, c.Subscription().Provider().ContainerID(), c.Subscription().InheritsStack().ContainerID())

	c.SelectObject(b)
	assert.Equal(t, b.ContainerID(), c.Subscription().Provider().ContainerID())
	assert.Equal(t, b.ContainerID(), c.Subscription().InheritsStack().ContainerID())

	c.ClearSelection()
	assert.Equal(t, c.Subscription().Provider().ContainerID(), c.Subscription().InheritsStack().ContainerID())
}

func TestUnknownContainer_DegradesToEmptyView(t *testing.T) {
	c, _, _, _ := newTestEnv()

	// Selecting an object whose container was never registered must not
	// panic; views degrade to empty and writes are dropped.
	obj := model.NewSceneObject("ghost", 10, 10, 10)
	c.SelectObject(obj)

	assert.Empty(t, c.InlineModel().Items())
	c.SetMeshType(model.MeshTypeSupport)
	assert.Equal(t, model.MeshTypeSupport, c.MeshType())

	c.OpenPickDialog()
	c.SetShowAll(true)
	assert.Empty(t, c.PickModel().Items())
}

func TestOverrides_InheritFromGlobalStack(t *testing.T) {
	c, registry, _, _ := newTestEnv()
	obj := addObject(registry, "cube")
	c.SelectObject(obj)

	registry.SetValue(testGlobalID, "wall_thickness", "1.2")
	provider := c.Subscription().Provider()
	assert.Equal(t, "1.2", provider.Value("wall_thickness"))

	provider.SetValue("wall_thickness", "2.0")
	assert.Equal(t, "2.0", provider.Value("wall_thickness"))

	provider.ClearValue("wall_thickness")
	assert.Equal(t, "1.2", provider.Value("wall_thickness"))
}
