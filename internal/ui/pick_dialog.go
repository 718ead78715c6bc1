package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showPickDialog opens the setting picker for the selected object. The list
// honors the controller's exclusion filter and applicability, and typing a
// filter temporarily reveals all matching settings.
func (a *App) showPickDialog() {
	listContainer := container.NewVBox()

	rebuildList := func() {
		listContainer.RemoveAll()
		for _, d := range a.controller.PickModel().Items() {
			if d.IsCategory() {
				listContainer.Add(widget.NewLabelWithStyle(d.Label, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
				continue
			}
			key := d.Key // capture
			check := widget.NewCheck(d.Label, nil)
			check.SetChecked(a.visibility.IsVisible(a.controller.SelectedObjectID(), key))
			check.OnChanged = func(checked bool) {
				if checked {
					a.controller.AddSetting(key)
				} else {
					a.controller.RemoveSetting(key)
				}
				a.refreshPerObjectPanel()
			}
			listContainer.Add(check)
		}
		listContainer.Refresh()
	}

	filterEntry := widget.NewEntry()
	filterEntry.SetPlaceHolder("Filter...")
	filterEntry.OnChanged = func(text string) {
		a.controller.UpdatePickFilter(text)
		rebuildList()
	}

	showAllCheck := widget.NewCheck("Show all settings", nil)
	showAllCheck.SetChecked(a.controller.ShowAll())
	showAllCheck.OnChanged = func(checked bool) {
		a.controller.SetShowAll(checked)
		rebuildList()
	}

	rebuildList()

	scroll := container.NewVScroll(listContainer)
	scroll.SetMinSize(fyne.NewSize(380, 420))

	content := container.NewBorder(
		container.NewVBox(filterEntry, showAllCheck),
		nil, nil, nil,
		scroll,
	)

	d := dialog.NewCustom("Select Settings", "Close", content, a.window)
	d.SetOnClosed(func() {
		a.controller.ClosePickDialog()
		a.refreshPerObjectPanel()
	})
	d.Resize(fyne.NewSize(420, 540))
	d.Show()
}
