package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PrintPrep/internal/model"
	"github.com/piwi3910/PrintPrep/internal/project"
)

// ─── Preferences ───────────────────────────────────────────

func (a *App) showPreferencesDialog() {
	machineSelect := widget.NewSelect(model.GetMachineNames(), nil)
	machineSelect.SetSelected(model.GetMachine(a.config.DefaultMachineID).Name)

	materialSelect := widget.NewSelect(model.GetMaterialNames(), nil)
	materialSelect.SetSelected(a.config.DefaultMaterial)

	infillEntry := widget.NewEntry()
	infillEntry.SetText(fmt.Sprintf("%.0f", a.config.DefaultInfillPercent))

	diameterEntry := widget.NewEntry()
	diameterEntry.SetText(fmt.Sprintf("%.2f", a.config.FilamentDiameter))

	lowSpoolEntry := widget.NewEntry()
	lowSpoolEntry.SetText(fmt.Sprintf("%.0f", a.config.LowSpoolThreshold))

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, nil)
	themeSelect.SetSelected(a.config.Theme)

	form := dialog.NewForm("Preferences", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Default printer", machineSelect),
			widget.NewFormItem("Default material", materialSelect),
			widget.NewFormItem("Default infill (%)", infillEntry),
			widget.NewFormItem("Filament diameter (mm)", diameterEntry),
			widget.NewFormItem("Low spool warning (g)", lowSpoolEntry),
			widget.NewFormItem("Theme", themeSelect),
		},
		func(ok bool) {
			if !ok {
				return
			}
			for _, m := range model.AllMachines() {
				if m.Name == machineSelect.Selected {
					a.config.DefaultMachineID = m.ID
					break
				}
			}
			a.config.DefaultMaterial = materialSelect.Selected
			if v, err := strconv.ParseFloat(infillEntry.Text, 64); err == nil && v >= 0 && v <= 100 {
				a.config.DefaultInfillPercent = v
			}
			if v, err := strconv.ParseFloat(diameterEntry.Text, 64); err == nil && v > 0 {
				a.config.FilamentDiameter = v
			}
			if v, err := strconv.ParseFloat(lowSpoolEntry.Text, 64); err == nil && v >= 0 {
				a.config.LowSpoolThreshold = v
			}
			a.config.Theme = themeSelect.Selected

			if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
				dialog.ShowError(err, a.window)
			}
			a.applyThemeVariant()
			a.refreshEstimate()
			a.refreshSpoolsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 380))
	form.Show()
}

// applyThemeVariant switches the app theme to match the configured variant.
func (a *App) applyThemeVariant() {
	app := fyne.CurrentApp()
	switch a.config.Theme {
	case "light":
		app.Settings().SetTheme(NewPrintPrepThemeWithVariant(theme.VariantLight))
	case "dark":
		app.Settings().SetTheme(NewPrintPrepThemeWithVariant(theme.VariantDark))
	default:
		app.Settings().SetTheme(NewPrintPrepTheme())
	}
}

// ─── Import / Export All Data ──────────────────────────────

func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButtonWithIcon("Export All Data", theme.DownloadIcon(), func() {
		a.exportAllData()
	})
	importBtn := widget.NewButtonWithIcon("Import All Data", theme.UploadIcon(), func() {
		a.importAllData()
	})

	content := container.NewVBox(
		widget.NewLabel("Export or import preferences, custom machines,\nthe filament inventory, and visibility sets."),
		exportBtn,
		importBtn,
	)
	dialog.NewCustom("Import / Export All Data", "Close", content, a.window).Show()
}

func (a *App) exportAllData() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		backup := project.BackupData{
			Config:   a.config,
			Machines: model.CustomMachines,
			Spools:   a.spools,
			Visible:  a.visibility.Export(),
		}
		if err := project.ExportAllData(writer.URI().Path(), backup); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", "All application data exported.", a.window)
	}, a.window)
	d.SetFileName("printprep-backup.json")
	d.Show()
}

func (a *App) importAllData() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		backup, err := project.ImportAllData(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.config = backup.Config
		model.CustomMachines = backup.Machines
		a.spools = backup.Spools
		if backup.Visible != nil {
			a.visibility.Import(backup.Visible)
			a.project.Visible = a.visibility.Export()
		}

		if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
			dialog.ShowError(err, a.window)
		}
		a.persistCustomMachines()
		a.persistSpools()

		a.applyThemeVariant()
		a.refreshSpoolsList()
		a.refreshPerObjectPanel()
		a.refreshEstimate()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Imported backup from %s.", backup.CreatedAt), a.window)
	}, a.window)
}

// ─── Templates ─────────────────────────────────────────────

func (a *App) showTemplatesDialog() {
	templates, err := project.LoadTemplates(project.DefaultTemplatesPath())
	if err != nil {
		templates = []model.ProjectTemplate{}
	}

	listContainer := container.NewVBox()

	persist := func() {
		if err := project.SaveTemplates(project.DefaultTemplatesPath(), templates); err != nil {
			dialog.ShowError(err, a.window)
		}
	}

	var rebuild func()
	rebuild = func() {
		listContainer.RemoveAll()
		if len(templates) == 0 {
			listContainer.Add(widget.NewLabel("No templates saved yet."))
		}
		for i := range templates {
			idx := i // capture
			t := templates[idx]
			row := container.NewBorder(nil, nil,
				widget.NewLabel(fmt.Sprintf("%s (%d objects)", t.Name, len(t.Objects))),
				container.NewHBox(
					newIconButtonWithTooltip(theme.MediaPlayIcon(), "New project from template", func() {
						a.clearObjects()
						a.project = templates[idx].ToProject(templates[idx].Name)
						a.visibility.Import(a.project.Visible)
						a.applyMachine(model.GetMachine(a.project.MachineID))
						for _, obj := range a.project.Objects {
							a.ensureObjectContainer(obj)
						}
						a.refreshObjectsList()
						a.refreshPlate()
						a.refreshEstimate()
					}),
					newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Overwrite with current project", func() {
						templates[idx].UpdateFrom(a.project)
						persist()
						rebuild()
					}),
					newIconButtonWithTooltip(theme.DeleteIcon(), "Delete", func() {
						templates = append(templates[:idx], templates[idx+1:]...)
						persist()
						rebuild()
					}),
				),
			)
			listContainer.Add(row)
		}
		listContainer.Refresh()
	}
	rebuild()

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Template name")
	saveBtn := widget.NewButtonWithIcon("Save Current as Template", theme.DocumentSaveIcon(), func() {
		if nameEntry.Text == "" {
			dialog.ShowError(fmt.Errorf("template name is required"), a.window)
			return
		}
		templates = append(templates, model.NewProjectTemplate(nameEntry.Text, "", a.project))
		nameEntry.SetText("")
		persist()
		rebuild()
	})

	scroll := container.NewVScroll(listContainer)
	scroll.SetMinSize(fyne.NewSize(420, 280))
	content := container.NewBorder(nil, container.NewBorder(nil, nil, nil, saveBtn, nameEntry), nil, nil, scroll)

	dialog.NewCustom("Project Templates", "Close", content, a.window).Show()
}
