package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/google/uuid"

	"github.com/piwi3910/PrintPrep/internal/model"
	"github.com/piwi3910/PrintPrep/internal/project"
)

// sequenceLabels maps the print sequence values to display labels.
var sequenceLabels = map[string]model.PrintSequence{
	"All at once":   model.SequenceAllAtOnce,
	"One at a time": model.SequenceOneAtATime,
}

func sequenceLabel(seq model.PrintSequence) string {
	for label, s := range sequenceLabels {
		if s == seq {
			return label
		}
	}
	return "All at once"
}

// ─── Machine Panel ─────────────────────────────────────────

func (a *App) buildMachinePanel() fyne.CanvasObject {
	infoLabel := widget.NewLabel("")
	refreshInfo := func() {
		m := a.machine()
		infoLabel.SetText(fmt.Sprintf(
			"Build volume: %.0f x %.0f x %.0f mm\nHead clearance: %.0f mm\nGantry height: %.0f mm",
			m.PlateWidth, m.PlateDepth, m.PlateHeight, m.HeadClearance, m.GantryHeight))
	}

	machineSelect := widget.NewSelect(model.GetMachineNames(), nil)
	machineSelect.SetSelected(model.GetMachine(a.project.MachineID).Name)
	machineSelect.OnChanged = func(name string) {
		for _, m := range model.AllMachines() {
			if m.Name == name {
				a.project.MachineID = m.ID
				a.plateOutline = nil
				a.applyMachine(m)
				a.reapplySelection()
				a.refreshPlate()
				refreshInfo()
				return
			}
		}
	}

	sequenceSelect := widget.NewSelect([]string{"All at once", "One at a time"}, nil)
	sequenceSelect.SetSelected(sequenceLabel(a.machine().PrintSequence))
	sequenceSelect.OnChanged = func(label string) {
		seq := sequenceLabels[label]
		a.registry.SetValue(globalContainerID, "print_sequence", string(seq))
		// Applicability of per-object settings depends on the sequence
		a.reapplySelection()
		refreshInfo()
	}

	refreshInfo()

	arrangeBtn := widget.NewButtonWithIcon("Arrange Plate", theme.ViewRefreshIcon(), func() {
		a.runArrange()
	})
	dxfBtn := widget.NewButtonWithIcon("Import Plate Outline (DXF)", theme.FolderOpenIcon(), func() {
		a.importPlateDXF()
	})
	manageBtn := widget.NewButtonWithIcon("Manage Custom Machines", theme.SettingsIcon(), func() {
		a.showCustomMachinesDialog(func() {
			machineSelect.Options = model.GetMachineNames()
			machineSelect.Refresh()
		})
	})

	form := widget.NewCard("Machine", "", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Printer", machineSelect),
			widget.NewFormItem("Print sequence", sequenceSelect),
		),
		infoLabel,
	))

	actions := widget.NewCard("Plate", "", container.NewVBox(
		arrangeBtn,
		dxfBtn,
		manageBtn,
	))

	return container.NewVScroll(container.NewVBox(form, actions))
}

// ─── Custom Machines ───────────────────────────────────────

func (a *App) showCustomMachinesDialog(onChanged func()) {
	listContainer := container.NewVBox()

	var rebuild func()
	rebuild = func() {
		listContainer.RemoveAll()
		if len(model.CustomMachines) == 0 {
			listContainer.Add(widget.NewLabel("No custom machines defined."))
		}
		for i := range model.CustomMachines {
			idx := i // capture
			m := model.CustomMachines[idx]
			row := container.NewBorder(nil, nil,
				widget.NewLabel(fmt.Sprintf("%s (%.0fx%.0fx%.0f mm)", m.Name, m.PlateWidth, m.PlateDepth, m.PlateHeight)),
				container.NewHBox(
					newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit", func() {
						a.showMachineFormDialog(&model.CustomMachines[idx], func() {
							a.persistCustomMachines()
							rebuild()
							onChanged()
						})
					}),
					newIconButtonWithTooltip(theme.DeleteIcon(), "Delete", func() {
						model.CustomMachines = append(model.CustomMachines[:idx], model.CustomMachines[idx+1:]...)
						a.persistCustomMachines()
						rebuild()
						onChanged()
					}),
				),
			)
			listContainer.Add(row)
		}
		listContainer.Refresh()
	}
	rebuild()

	addBtn := widget.NewButtonWithIcon("Add Machine", theme.ContentAddIcon(), func() {
		a.showMachineFormDialog(nil, func() {
			a.persistCustomMachines()
			rebuild()
			onChanged()
		})
	})

	scroll := container.NewVScroll(listContainer)
	scroll.SetMinSize(fyne.NewSize(420, 300))
	content := container.NewBorder(nil, addBtn, nil, nil, scroll)

	dialog.NewCustom("Custom Machines", "Close", content, a.window).Show()
}

// showMachineFormDialog edits an existing custom machine, or appends a new
// one when existing is nil.
func (a *App) showMachineFormDialog(existing *model.Machine, onSaved func()) {
	nameEntry := widget.NewEntry()
	widthEntry := widget.NewEntry()
	depthEntry := widget.NewEntry()
	heightEntry := widget.NewEntry()
	clearanceEntry := widget.NewEntry()
	gantryEntry := widget.NewEntry()

	title := "Add Machine"
	if existing != nil {
		title = "Edit Machine"
		nameEntry.SetText(existing.Name)
		widthEntry.SetText(fmt.Sprintf("%.0f", existing.PlateWidth))
		depthEntry.SetText(fmt.Sprintf("%.0f", existing.PlateDepth))
		heightEntry.SetText(fmt.Sprintf("%.0f", existing.PlateHeight))
		clearanceEntry.SetText(fmt.Sprintf("%.0f", existing.HeadClearance))
		gantryEntry.SetText(fmt.Sprintf("%.0f", existing.GantryHeight))
	} else {
		clearanceEntry.SetText("40")
		gantryEntry.SetText("30")
	}

	form := dialog.NewForm(title, "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Plate width (mm)", widthEntry),
			widget.NewFormItem("Plate depth (mm)", depthEntry),
			widget.NewFormItem("Build height (mm)", heightEntry),
			widget.NewFormItem("Head clearance (mm)", clearanceEntry),
			widget.NewFormItem("Gantry height (mm)", gantryEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			d, _ := strconv.ParseFloat(depthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			hc, _ := strconv.ParseFloat(clearanceEntry.Text, 64)
			gh, _ := strconv.ParseFloat(gantryEntry.Text, 64)
			if nameEntry.Text == "" || w <= 0 || d <= 0 || h <= 0 {
				dialog.ShowError(fmt.Errorf("name and positive plate dimensions are required"), a.window)
				return
			}

			if existing != nil {
				existing.Name = nameEntry.Text
				existing.PlateWidth = w
				existing.PlateDepth = d
				existing.PlateHeight = h
				existing.HeadClearance = hc
				existing.GantryHeight = gh
			} else {
				model.CustomMachines = append(model.CustomMachines, model.Machine{
					ID:            "custom_" + uuid.New().String()[:8],
					Name:          nameEntry.Text,
					PlateWidth:    w,
					PlateDepth:    d,
					PlateHeight:   h,
					PrintSequence: model.SequenceAllAtOnce,
					HeadClearance: hc,
					GantryHeight:  gh,
				})
			}
			onSaved()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 380))
	form.Show()
}

func (a *App) persistCustomMachines() {
	if err := project.SaveCustomMachines(project.DefaultMachinesPath(), model.CustomMachines); err != nil {
		dialog.ShowError(err, a.window)
	}
}
