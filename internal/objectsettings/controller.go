// Package objectsettings implements the per-object settings controller: it
// owns the selected object's mesh type, derives which settings categories are
// visible for that type, and keeps the inline added-settings view and the
// pick-settings dialog in sync. All display state is derived from the current
// mesh type, the visibility set, and the print sequence; nothing redundant is
// stored.
package objectsettings

import (
	"github.com/piwi3910/PrintPrep/internal/model"
	"github.com/piwi3910/PrintPrep/internal/settings"
)

// Controller reconciles the mesh-type state machine with the two settings
// views of the per-object panel. It is purely reactive: state changes happen
// synchronously in response to UI events or tool property notifications, and
// every mutation is persisted through the property providers; the controller
// keeps no store of its own.
type Controller struct {
	registry   *settings.Registry
	bridge     *settings.ToolBridge
	visibility *settings.VisibilityHandler
	sub        *settings.Subscription

	inlineModel *settings.DefinitionsModel // Added settings, shown inline
	pickModel   *settings.DefinitionsModel // Candidates with checkboxes, shown in the pick dialog

	globalContainerID string

	meshType   model.MeshType
	objectID   string
	pickOpen   bool
	pickFilter string
	showAll    bool

	onChanged func()
}

// NewController wires a controller to the settings layer. globalContainerID
// names the machine's global stack, used to read the print sequence and as
// the inherit parent of per-object stacks.
func NewController(registry *settings.Registry, bridge *settings.ToolBridge, visibility *settings.VisibilityHandler, globalContainerID string) *Controller {
	c := &Controller{
		registry:          registry,
		bridge:            bridge,
		visibility:        visibility,
		sub:               settings.NewSubscription(registry),
		inlineModel:       settings.NewDefinitionsModel(registry, visibility),
		pickModel:         settings.NewDefinitionsModel(registry, visibility),
		globalContainerID: globalContainerID,
	}
	bridge.AddListener(c.onToolChanged)
	c.refreshModels()
	return c
}

// SetOnChanged registers a callback fired after every recomputation, used by
// the UI to refresh itself.
func (c *Controller) SetOnChanged(fn func()) {
	c.onChanged = fn
}

// onToolChanged reads the full tool property set and applies it before any
// derived state is recomputed, so a notification carrying both a new object
// id and a new container id can never produce a mixed intermediate view.
func (c *Controller) onToolChanged() {
	objectID := c.bridge.Property(settings.PropSelectedObjectID)
	containerID := c.bridge.Property(settings.PropContainerID)
	meshType := model.MeshTypeFromString(c.bridge.Property(settings.PropMeshType))

	c.objectID = objectID
	c.meshType = meshType
	c.sub.Rebind(objectID, containerID)

	c.refreshModels()
	c.notify()
}

// SelectObject publishes an object as the active selection. All three tool
// properties travel in one batch.
func (c *Controller) SelectObject(obj model.SceneObject) {
	c.bridge.SetProperties(map[string]string{
		settings.PropSelectedObjectID: obj.ID,
		settings.PropContainerID:      obj.ContainerID(),
		settings.PropMeshType:         obj.MeshType.String(),
	})
}

// ClearSelection empties the selection; the panel hides itself.
func (c *Controller) ClearSelection() {
	c.bridge.SetProperties(map[string]string{
		settings.PropSelectedObjectID: "",
		settings.PropContainerID:      "",
		settings.PropMeshType:         model.MeshTypeNormal.String(),
	})
}

// SetMeshType writes the mesh type for the selected object through the
// property provider and republishes the tool property. Deliberately not
// short-circuited when the type is unchanged: re-clicking an active button
// re-applies the marker settings and refreshes the views.
func (c *Controller) SetMeshType(t model.MeshType) {
	provider := c.sub.Provider()
	for _, key := range model.MeshTypeKeys() {
		provider.SetValue(key, "false")
	}
	if key := t.SettingKey(); key != "" {
		provider.SetValue(key, "true")
	}
	c.bridge.SetProperty(settings.PropMeshType, t.String())
}

// ToggleInfillOnly switches between the Infill and Cutting modifier types.
// Only meaningful while one of the two is active; otherwise it is ignored.
func (c *Controller) ToggleInfillOnly(checked bool) {
	if c.meshType != model.MeshTypeInfill && c.meshType != model.MeshTypeCutting {
		return
	}
	if checked {
		c.SetMeshType(model.MeshTypeInfill)
	} else {
		c.SetMeshType(model.MeshTypeCutting)
	}
}

// ExclusionFilter returns the setting keys hidden from both settings views:
// always the four mesh-type marker keys, plus every category except support
// while the Support mesh type is active.
func (c *Controller) ExclusionFilter() []string {
	excluded := model.MeshTypeKeys()
	if c.meshType == model.MeshTypeSupport {
		excluded = append(excluded, model.AllCategoriesExceptSupport...)
	}
	return excluded
}

// Applicability returns the flag the settings views filter on: per-meshgroup
// while the machine prints one object at a time, per-mesh otherwise.
func (c *Controller) Applicability() settings.Applicability {
	seq := c.registry.Value(c.globalContainerID, "print_sequence")
	if model.PrintSequence(seq) == model.SequenceOneAtATime {
		return settings.SettablePerMeshgroup
	}
	return settings.SettablePerMesh
}

// OpenPickDialog prepares and opens the setting picker. The active mesh
// type's marker key goes on the visibility skip list first, so opening the
// dialog cannot reset the mesh type, then the candidate list is rebuilt with
// the current text filter and show-all flag.
func (c *Controller) OpenPickDialog() {
	c.visibility.SetSkipResetKeys(c.meshType.SettingKey())
	c.pickOpen = true
	c.pickModel.ForceUpdate()
	c.pickModel.SetFilter(c.pickFilter)
	c.pickModel.SetShowAll(c.effectiveShowAll())
	c.notify()
}

// ClosePickDialog closes the picker.
func (c *Controller) ClosePickDialog() {
	c.pickOpen = false
	c.notify()
}

// UpdatePickFilter sets the case-insensitive label filter of the pick dialog.
// While text is entered the dialog lists every match, not just added
// settings; an empty string falls back to the plain applicability view.
func (c *Controller) UpdatePickFilter(text string) {
	c.pickFilter = text
	c.pickModel.SetFilter(text)
	c.pickModel.SetShowAll(c.effectiveShowAll())
	c.notify()
}

// SetShowAll lists every eligible setting in the pick dialog, bypassing the
// visibility set.
func (c *Controller) SetShowAll(showAll bool) {
	c.showAll = showAll
	c.pickModel.SetShowAll(c.effectiveShowAll())
	c.notify()
}

// effectiveShowAll: an active text filter searches all settings, otherwise
// the explicit show-all checkbox decides.
func (c *Controller) effectiveShowAll() bool {
	return c.showAll || c.pickFilter != ""
}

// AddSetting adds a key to the selected object's inline view.
func (c *Controller) AddSetting(key string) {
	c.visibility.Add(c.objectID, key)
	c.inlineModel.ForceUpdate()
	c.notify()
}

// RemoveSetting removes a key from the selected object's inline view. The
// pick dialog's own filter state is left untouched.
func (c *Controller) RemoveSetting(key string) {
	c.visibility.Remove(c.objectID, key)
	c.inlineModel.ForceUpdate()
	c.notify()
}

// refreshModels pushes the derived container, exclusion, and applicability
// state into both list models.
func (c *Controller) refreshModels() {
	containerID := c.sub.Provider().ContainerID()
	excluded := c.ExclusionFilter()
	applicability := c.Applicability()

	c.inlineModel.SetContainer(containerID)
	c.inlineModel.SetObject(c.objectID)
	c.inlineModel.SetExclude(excluded)
	c.inlineModel.SetApplicability(applicability)

	c.pickModel.SetContainer(containerID)
	c.pickModel.SetObject(c.objectID)
	c.pickModel.SetExclude(excluded)
	c.pickModel.SetApplicability(applicability)
}

func (c *Controller) notify() {
	if c.onChanged != nil {
		c.onChanged()
	}
}

// ─── Derived display state ─────────────────────────────────

// PanelVisible reports whether the inline settings panel is shown: an object
// must be selected and support blockers expose no settings at all.
func (c *Controller) PanelVisible() bool {
	return c.objectID != "" && c.meshType != model.MeshTypeAntiOverhang
}

// MeshTypeChecked reports whether the button for a mesh type is active.
func (c *Controller) MeshTypeChecked(t model.MeshType) bool {
	return c.meshType == t
}

// InfillOnlyVisible reports whether the infill-only checkbox applies.
func (c *Controller) InfillOnlyVisible() bool {
	return c.meshType == model.MeshTypeInfill || c.meshType == model.MeshTypeCutting
}

// InfillOnlyChecked reports the checkbox state while it is visible.
func (c *Controller) InfillOnlyChecked() bool {
	return c.meshType == model.MeshTypeInfill
}

// MeshType returns the mesh type of the selected object.
func (c *Controller) MeshType() model.MeshType {
	return c.meshType
}

// SelectedObjectID returns the id of the selected object, "" for none.
func (c *Controller) SelectedObjectID() string {
	return c.objectID
}

// PickDialogOpen reports whether the picker is open.
func (c *Controller) PickDialogOpen() bool {
	return c.pickOpen
}

// PickFilter returns the picker's current filter text.
func (c *Controller) PickFilter() string {
	return c.pickFilter
}

// ShowAll reports whether the picker bypasses the visibility set.
func (c *Controller) ShowAll() bool {
	return c.showAll
}

// InlineModel returns the model behind the inline added-settings list.
func (c *Controller) InlineModel() *settings.DefinitionsModel {
	return c.inlineModel
}

// PickModel returns the model behind the pick dialog's candidate list.
func (c *Controller) PickModel() *settings.DefinitionsModel {
	return c.pickModel
}

// Subscription returns the provider subscription for the selection.
func (c *Controller) Subscription() *settings.Subscription {
	return c.sub
}
