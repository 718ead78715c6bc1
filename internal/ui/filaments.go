package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PrintPrep/internal/model"
	"github.com/piwi3910/PrintPrep/internal/project"
)

// ─── Filaments Panel ───────────────────────────────────────

func (a *App) buildFilamentsPanel() fyne.CanvasObject {
	a.spoolsContainer = container.NewVBox()
	a.refreshSpoolsList()

	addBtn := widget.NewButtonWithIcon("Add Spool", theme.ContentAddIcon(), func() {
		a.showSpoolFormDialog(-1)
	})
	consumeBtn := widget.NewButtonWithIcon("Consume Estimate", theme.MediaPlayIcon(), func() {
		a.consumeEstimateFromSpool()
	})

	header := container.NewHBox(
		widget.NewLabelWithStyle("Filament Inventory", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		consumeBtn,
		addBtn,
	)

	return container.NewBorder(header, nil, nil, nil, container.NewVScroll(a.spoolsContainer))
}

func (a *App) refreshSpoolsList() {
	if a.spoolsContainer == nil {
		return
	}
	a.spoolsContainer.RemoveAll()

	if low := model.LowSpools(a.spools, a.config.LowSpoolThreshold); len(low) > 0 {
		warn := widget.NewLabelWithStyle(
			fmt.Sprintf("%d spool(s) below %.0f g — consider restocking.", len(low), a.config.LowSpoolThreshold),
			fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
		a.spoolsContainer.Add(warn)
		a.spoolsContainer.Add(widget.NewSeparator())
	}

	if len(a.spools) == 0 {
		a.spoolsContainer.Add(widget.NewLabel("No spools in inventory."))
		return
	}

	header := container.NewGridWithColumns(7,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Material", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Color", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Remaining", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Length", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.spoolsContainer.Add(header)
	a.spoolsContainer.Add(widget.NewSeparator())

	for i := range a.spools {
		idx := i // capture
		s := a.spools[idx]
		remaining := fmt.Sprintf("%.0f g", s.RemainingGrams)
		if s.RemainingGrams < a.config.LowSpoolThreshold {
			remaining += " (low)"
		}
		row := container.NewGridWithColumns(7,
			widget.NewLabel(s.Name),
			widget.NewLabel(s.Material),
			widget.NewLabel(s.ColorHex),
			widget.NewLabel(remaining),
			widget.NewLabel(fmt.Sprintf("%.1f m", s.RemainingLengthMM()/1000.0)),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit", func() {
				a.showSpoolFormDialog(idx)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete", func() {
				a.spools = append(a.spools[:idx], a.spools[idx+1:]...)
				a.persistSpools()
				a.refreshSpoolsList()
			}),
		)
		a.spoolsContainer.Add(row)
	}
}

// showSpoolFormDialog edits the spool at idx, or adds a new one when idx < 0.
func (a *App) showSpoolFormDialog(idx int) {
	nameEntry := widget.NewEntry()
	materialSelect := widget.NewSelect(model.GetMaterialNames(), nil)
	colorEntry := widget.NewEntry()
	colorEntry.SetPlaceHolder("#RRGGBB")
	diameterEntry := widget.NewEntry()
	gramsEntry := widget.NewEntry()
	priceEntry := widget.NewEntry()

	title := "Add Spool"
	if idx >= 0 {
		title = "Edit Spool"
		s := a.spools[idx]
		nameEntry.SetText(s.Name)
		materialSelect.SetSelected(s.Material)
		colorEntry.SetText(s.ColorHex)
		diameterEntry.SetText(fmt.Sprintf("%.2f", s.DiameterMM))
		gramsEntry.SetText(fmt.Sprintf("%.0f", s.RemainingGrams))
		priceEntry.SetText(fmt.Sprintf("%.2f", s.PricePerKg))
	} else {
		materialSelect.SetSelected(a.config.DefaultMaterial)
		diameterEntry.SetText(fmt.Sprintf("%.2f", a.config.FilamentDiameter))
		gramsEntry.SetText("1000")
		priceEntry.SetText(fmt.Sprintf("%.2f", model.GetMaterialPreset(a.config.DefaultMaterial).DefaultPricePerKg))
	}

	form := dialog.NewForm(title, "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Material", materialSelect),
			widget.NewFormItem("Color", colorEntry),
			widget.NewFormItem("Diameter (mm)", diameterEntry),
			widget.NewFormItem("Remaining (g)", gramsEntry),
			widget.NewFormItem("Price per kg", priceEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			diameter, _ := strconv.ParseFloat(diameterEntry.Text, 64)
			grams, _ := strconv.ParseFloat(gramsEntry.Text, 64)
			price, _ := strconv.ParseFloat(priceEntry.Text, 64)
			if nameEntry.Text == "" || diameter <= 0 || grams < 0 {
				dialog.ShowError(fmt.Errorf("name, a positive diameter, and a non-negative weight are required"), a.window)
				return
			}

			if idx >= 0 {
				s := &a.spools[idx]
				s.Name = nameEntry.Text
				s.Material = materialSelect.Selected
				s.ColorHex = colorEntry.Text
				s.DiameterMM = diameter
				s.RemainingGrams = grams
				s.PricePerKg = price
			} else {
				a.spools = append(a.spools, model.NewFilamentSpool(
					nameEntry.Text, materialSelect.Selected, colorEntry.Text,
					diameter, grams, price))
			}
			a.persistSpools()
			a.refreshSpoolsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 380))
	form.Show()
}

// consumeEstimateFromSpool subtracts the current project's material estimate
// from a spool chosen by the user.
func (a *App) consumeEstimateFromSpool() {
	if len(a.spools) == 0 {
		dialog.ShowInformation("No spools", "Add a spool to the inventory first.", a.window)
		return
	}

	infill := a.config.DefaultInfillPercent
	if v, err := strconv.ParseFloat(a.registry.Value(globalContainerID, "infill_sparse_density"), 64); err == nil {
		infill = v
	}
	material := model.GetMaterialPreset(a.config.DefaultMaterial)
	est := model.CalculatePrintEstimate(a.project.Objects, infill, material, 1000, a.config.FilamentDiameter)
	if est.TotalGrams <= 0 {
		dialog.ShowInformation("Nothing to consume", "The current project uses no material.", a.window)
		return
	}

	names := make([]string, len(a.spools))
	for i, s := range a.spools {
		names[i] = fmt.Sprintf("%s (%s, %.0f g left)", s.Name, s.Material, s.RemainingGrams)
	}
	spoolSelect := widget.NewSelect(names, nil)
	spoolSelect.SetSelectedIndex(0)

	dialog.ShowForm("Consume Material", "Consume", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem(fmt.Sprintf("Deduct %.0f g from", est.TotalGrams), spoolSelect),
		},
		func(ok bool) {
			if !ok || spoolSelect.SelectedIndex() < 0 {
				return
			}
			a.spools[spoolSelect.SelectedIndex()].ConsumeGrams(est.TotalGrams)
			a.persistSpools()
			a.refreshSpoolsList()
		},
		a.window,
	)
}

func (a *App) persistSpools() {
	if err := project.SaveSpools(project.DefaultInventoryPath(), a.spools); err != nil {
		dialog.ShowError(err, a.window)
	}
}
