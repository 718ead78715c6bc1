package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PrintPrep/internal/model"
)

// meshTypeButtons is the display order of the mesh-type toggle row.
var meshTypeButtons = []struct {
	meshType model.MeshType
	label    string
	tooltip  string
}{
	{model.MeshTypeNormal, "Print", "Print as a normal model"},
	{model.MeshTypeSupport, "Support", "Print as support material"},
	{model.MeshTypeCutting, "Modify", "Modify settings of overlapping models"},
	{model.MeshTypeAntiOverhang, "Block", "Don't generate support inside this volume"},
}

// refreshPerObjectPanel rebuilds the panel on the right for the current
// selection and mesh type.
func (a *App) refreshPerObjectPanel() {
	if a.perObjectPanel == nil {
		return
	}
	a.perObjectPanel.RemoveAll()

	if a.controller.SelectedObjectID() == "" {
		a.perObjectPanel.Add(widget.NewLabel("Select an object on the plate\nto change its settings."))
		return
	}

	a.perObjectPanel.Add(widget.NewLabelWithStyle("Per Object Settings", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	a.perObjectPanel.Add(a.buildMeshTypeRow())

	if a.controller.InfillOnlyVisible() {
		// Set the state before binding the handler; SetChecked fires OnChanged
		// and the handler rebuilds this panel.
		infillCheck := widget.NewCheck("Modify settings for infill only", nil)
		infillCheck.SetChecked(a.controller.InfillOnlyChecked())
		infillCheck.OnChanged = func(checked bool) {
			a.controller.ToggleInfillOnly(checked)
		}
		a.perObjectPanel.Add(infillCheck)
	}

	// Support blockers carry no per-object setting overrides
	if !a.controller.PanelVisible() {
		return
	}

	a.perObjectPanel.Add(widget.NewSeparator())
	a.perObjectPanel.Add(a.buildInlineSettingsList())

	selectBtn := widget.NewButtonWithIcon("Select settings", theme.SettingsIcon(), func() {
		a.controller.OpenPickDialog()
		a.showPickDialog()
	})
	a.perObjectPanel.Add(selectBtn)

	a.perObjectPanel.Refresh()
}

func (a *App) buildMeshTypeRow() fyne.CanvasObject {
	row := container.NewHBox()
	for _, b := range meshTypeButtons {
		mt := b.meshType // capture
		btn := widget.NewButton(b.label, func() {
			a.controller.SetMeshType(mt)
		})
		checked := a.controller.MeshTypeChecked(mt)
		// The Infill variant shares the Modify button
		if mt == model.MeshTypeCutting && a.controller.MeshTypeChecked(model.MeshTypeInfill) {
			checked = true
		}
		if checked {
			btn.Importance = widget.HighImportance
		}
		row.Add(btn)
	}
	return row
}

// buildInlineSettingsList renders the visible overrides of the selected
// object, grouped under their category headers, each with an editor and a
// remove button.
func (a *App) buildInlineSettingsList() fyne.CanvasObject {
	list := container.NewVBox()

	items := a.controller.InlineModel().Items()
	hasSettings := false
	for _, d := range items {
		if d.IsCategory() {
			list.Add(widget.NewLabelWithStyle(d.Label, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
			continue
		}
		hasSettings = true
		list.Add(a.buildSettingRow(d))
	}
	if !hasSettings {
		list.Add(widget.NewLabel("No settings overridden yet."))
	}
	return list
}

// buildSettingRow creates one editor row. The editor writes straight through
// the selection's provider, so edits land on the per-object stack.
func (a *App) buildSettingRow(d model.SettingDescriptor) fyne.CanvasObject {
	provider := a.controller.Subscription().Provider()
	key := d.Key // capture

	label := widget.NewLabel(d.Label)
	var editor fyne.CanvasObject

	switch model.EditorFor(d.Type) {
	case model.EditorCheckbox:
		check := widget.NewCheck("", nil)
		check.SetChecked(provider.Value(key) == "true")
		check.OnChanged = func(checked bool) {
			if checked {
				provider.SetValue(key, "true")
			} else {
				provider.SetValue(key, "false")
			}
			a.syncOverrides()
		}
		editor = check
	case model.EditorComboBox:
		sel := widget.NewSelect(d.Options, nil)
		sel.SetSelected(provider.Value(key))
		sel.OnChanged = func(value string) {
			provider.SetValue(key, value)
			a.syncOverrides()
		}
		editor = sel
	default:
		entry := widget.NewEntry()
		entry.SetText(provider.Value(key))
		if d.Unit != "" {
			entry.SetPlaceHolder(d.Unit)
		}
		entry.OnChanged = func(text string) {
			provider.SetValue(key, text)
			a.syncOverrides()
		}
		editor = entry
	}

	removeBtn := newIconButtonWithTooltip(theme.ContentRemoveIcon(), "Remove this setting", func() {
		provider.ClearValue(key)
		a.controller.RemoveSetting(key)
		a.syncOverrides()
		a.refreshPerObjectPanel()
	})

	return container.NewBorder(nil, nil, label, removeBtn, editor)
}

// syncOverrides mirrors the selected object's stack values into the project
// so save/load and the job card see current overrides.
func (a *App) syncOverrides() {
	id := a.controller.SelectedObjectID()
	if id == "" {
		return
	}
	containerID := a.controller.Subscription().Provider().ContainerID()
	a.project.Overrides[id] = a.registry.Overrides(containerID)
	a.refreshEstimate()
}
