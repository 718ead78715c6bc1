package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibilityHandler_AddRemove(t *testing.T) {
	h := NewVisibilityHandler()

	h.Add("obj1", "wall_thickness")
	h.Add("obj1", "infill_sparse_density")
	h.Add("obj2", "top_layers")

	assert.True(t, h.IsVisible("obj1", "wall_thickness"))
	assert.False(t, h.IsVisible("obj2", "wall_thickness"))

	h.Remove("obj1", "wall_thickness")
	assert.False(t, h.IsVisible("obj1", "wall_thickness"))
	assert.True(t, h.IsVisible("obj1", "infill_sparse_density"))
}

func TestVisibilityHandler_VisibleIsSorted(t *testing.T) {
	h := NewVisibilityHandler()
	h.Add("obj", "z_setting")
	h.Add("obj", "a_setting")
	h.Add("obj", "m_setting")

	assert.Equal(t, []string{"a_setting", "m_setting", "z_setting"}, h.Visible("obj"))
}

func TestVisibilityHandler_EmptyObjectIDIgnored(t *testing.T) {
	h := NewVisibilityHandler()
	h.Add("", "wall_thickness")

	assert.False(t, h.IsVisible("", "wall_thickness"))
	assert.Empty(t, h.Export())
}

func TestVisibilityHandler_ResetKeepsSkipKeys(t *testing.T) {
	h := NewVisibilityHandler()
	h.Add("obj", "support_mesh")
	h.Add("obj", "wall_thickness")
	h.Add("obj", "top_layers")

	h.SetSkipResetKeys("support_mesh")
	h.Reset("obj")

	assert.True(t, h.IsVisible("obj", "support_mesh"))
	assert.False(t, h.IsVisible("obj", "wall_thickness"))
	assert.False(t, h.IsVisible("obj", "top_layers"))
}

func TestVisibilityHandler_ExportImportRoundTrip(t *testing.T) {
	h := NewVisibilityHandler()
	h.Add("obj1", "wall_thickness")
	h.Add("obj2", "top_layers")
	h.Add("obj2", "bottom_layers")

	exported := h.Export()

	restored := NewVisibilityHandler()
	restored.Import(exported)

	assert.True(t, restored.IsVisible("obj1", "wall_thickness"))
	assert.True(t, restored.IsVisible("obj2", "top_layers"))
	assert.True(t, restored.IsVisible("obj2", "bottom_layers"))
	assert.False(t, restored.IsVisible("obj1", "top_layers"))
}

func TestVisibilityHandler_ImportNilClears(t *testing.T) {
	h := NewVisibilityHandler()
	h.Add("obj", "wall_thickness")

	h.Import(nil)
	assert.False(t, h.IsVisible("obj", "wall_thickness"))
}
