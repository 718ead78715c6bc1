package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/PrintPrep/internal/model"
)

func TestRegistry_ValueResolvesThroughInheritChain(t *testing.T) {
	r := NewRegistry()
	r.AddContainer("global", DefaultDefinitions(), "")
	r.AddContainer("object_1", DefaultDefinitions(), "global")

	// Catalog default when nothing is set anywhere
	assert.Equal(t, "0.8", r.Value("object_1", "wall_thickness"))

	// Global override is inherited
	r.SetValue("global", "wall_thickness", "1.2")
	assert.Equal(t, "1.2", r.Value("object_1", "wall_thickness"))

	// Own value wins over the inherited one
	r.SetValue("object_1", "wall_thickness", "2.0")
	assert.Equal(t, "2.0", r.Value("object_1", "wall_thickness"))

	// Clearing falls back to the parent again
	r.ClearValue("object_1", "wall_thickness")
	assert.Equal(t, "1.2", r.Value("object_1", "wall_thickness"))
}

func TestRegistry_EmptyContainerIDMeansNoSettings(t *testing.T) {
	r := NewRegistry()
	r.AddContainer("global", DefaultDefinitions(), "")

	assert.Nil(t, r.Container(""))
	assert.Empty(t, r.Definitions(""))
	assert.Equal(t, "", r.Value("", "wall_thickness"))

	// Writes against the empty id are dropped, not an error
	r.SetValue("", "wall_thickness", "3.0")
	assert.Empty(t, r.Overrides(""))
}

func TestRegistry_UnknownKeyResolvesEmpty(t *testing.T) {
	r := NewRegistry()
	r.AddContainer("global", DefaultDefinitions(), "")

	assert.Equal(t, "", r.Value("global", "no_such_setting"))
}

func TestRegistry_RemoveContainer(t *testing.T) {
	r := NewRegistry()
	r.AddContainer("global", DefaultDefinitions(), "")
	r.AddContainer("object_1", DefaultDefinitions(), "global")
	r.SetValue("object_1", "wall_thickness", "2.0")

	r.RemoveContainer("object_1")
	assert.Nil(t, r.Container("object_1"))
	assert.Empty(t, r.Overrides("object_1"))
}

func TestRegistry_OverridesReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.AddContainer("global", DefaultDefinitions(), "")
	r.SetValue("global", "wall_thickness", "1.0")

	overrides := r.Overrides("global")
	overrides["wall_thickness"] = "tampered"
	assert.Equal(t, "1.0", r.Value("global", "wall_thickness"))
}

func TestProvider_ValidationStates(t *testing.T) {
	r := NewRegistry()
	r.AddContainer("global", DefaultDefinitions(), "")
	sub := NewSubscription(r)
	sub.Rebind("obj", "global")
	p := sub.Provider()

	assert.Equal(t, StateValid, p.ValidationState("wall_thickness"))

	p.SetValue("wall_thickness", "not a number")
	assert.Equal(t, StateInvalid, p.ValidationState("wall_thickness"))

	p.SetValue("infill_pattern", "gyroid")
	assert.Equal(t, StateValid, p.ValidationState("infill_pattern"))
	p.SetValue("infill_pattern", "zigzag")
	assert.Equal(t, StateInvalid, p.ValidationState("infill_pattern"))

	assert.Equal(t, StateUnknown, p.ValidationState("no_such_setting"))
}

func TestProvider_LimitToExtruder(t *testing.T) {
	r := NewRegistry()
	r.AddContainer("global", DefaultDefinitions(), "")
	sub := NewSubscription(r)
	sub.Rebind("obj", "global")

	assert.Equal(t, 0, sub.Provider().LimitToExtruder("support_extruder_nr"))
	assert.Equal(t, -1, sub.Provider().LimitToExtruder("wall_thickness"))
	assert.Equal(t, -1, sub.Provider().LimitToExtruder("no_such_setting"))
}

func TestToolBridge_BatchAppliesBeforeNotifying(t *testing.T) {
	b := NewToolBridge()

	var seen []string
	b.AddListener(func() {
		seen = append(seen, b.Property("A")+b.Property("B"))
	})

	b.SetProperties(map[string]string{"A": "1", "B": "2"})

	// One notification, with both values already applied
	assert.Equal(t, []string{"12"}, seen)
}

func TestDefaultDefinitions_ContainsMarkerKeys(t *testing.T) {
	byKey := map[string]model.SettingDescriptor{}
	for _, d := range DefaultDefinitions() {
		byKey[d.Key] = d
	}
	for _, key := range model.MeshTypeKeys() {
		d, ok := byKey[key]
		assert.True(t, ok, key)
		assert.Equal(t, model.SettingTypeBool, d.Type, key)
		assert.True(t, d.SettablePerMesh, key)
	}
}
