package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PrintPrep/internal/engine"
	"github.com/piwi3910/PrintPrep/internal/export"
	profileimporter "github.com/piwi3910/PrintPrep/internal/importer"
	"github.com/piwi3910/PrintPrep/internal/model"
	"github.com/piwi3910/PrintPrep/internal/objectsettings"
	"github.com/piwi3910/PrintPrep/internal/project"
	"github.com/piwi3910/PrintPrep/internal/settings"
	"github.com/piwi3910/PrintPrep/internal/ui/widgets"
)

// globalContainerID names the machine's global settings stack; every
// per-object stack inherits from it.
const globalContainerID = "global"

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	config  model.AppConfig
	project model.Project
	spools  []model.FilamentSpool

	// Custom plate outline imported from DXF, applied to the active machine
	plateOutline model.Outline

	registry   *settings.Registry
	bridge     *settings.ToolBridge
	visibility *settings.VisibilityHandler
	controller *objectsettings.Controller

	// UI references for dynamic updates
	tabs             *container.AppTabs
	objectsContainer *fyne.Container
	plateCanvas      *widgets.PlateCanvas
	perObjectPanel   *fyne.Container
	spoolsContainer  *fyne.Container
	estimateLabel    *widget.Label
}

func NewApp(window fyne.Window) *App {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		config = model.DefaultAppConfig()
	}
	if machines, err := project.LoadCustomMachines(project.DefaultMachinesPath()); err == nil {
		model.CustomMachines = machines
	}
	spools, err := project.LoadSpools(project.DefaultInventoryPath())
	if err != nil {
		spools = []model.FilamentSpool{}
	}

	a := &App{
		window:     window,
		config:     config,
		spools:     spools,
		registry:   settings.NewRegistry(),
		bridge:     settings.NewToolBridge(),
		visibility: settings.NewVisibilityHandler(),
	}
	a.project = model.NewProject()
	config.ApplyToProject(&a.project)

	a.applyMachine(model.GetMachine(a.project.MachineID))
	a.controller = objectsettings.NewController(a.registry, a.bridge, a.visibility, globalContainerID)
	a.controller.SetOnChanged(a.onControllerChanged)
	return a
}

// machine returns the active machine with the project's sequencing override
// and any imported plate outline applied.
func (a *App) machine() model.Machine {
	m := model.GetMachine(a.project.MachineID)
	if seq := a.registry.Value(globalContainerID, "print_sequence"); seq != "" {
		m.PrintSequence = model.PrintSequence(seq)
	}
	if len(a.plateOutline) >= 3 {
		m.PlateOutline = a.plateOutline
	}
	return m
}

// applyMachine rebuilds the global settings stack for a machine. Existing
// per-object stacks keep inheriting from it by id.
func (a *App) applyMachine(m model.Machine) {
	a.registry.AddContainer(globalContainerID, settings.DefaultDefinitions(), "")
	a.registry.SetValue(globalContainerID, "print_sequence", string(m.PrintSequence))
	a.registry.SetValue(globalContainerID, "machine_name", m.Name)
}

// ensureObjectContainer registers the per-object settings stack of an object
// and seeds it with the project's stored overrides.
func (a *App) ensureObjectContainer(obj model.SceneObject) {
	id := obj.ContainerID()
	if a.registry.Container(id) != nil {
		return
	}
	a.registry.AddContainer(id, settings.DefaultDefinitions(), globalContainerID)
	for key, value := range a.project.Overrides[obj.ID] {
		a.registry.SetValue(id, key, value)
	}
}

// selectObject publishes an object (or nothing, for id "") as the active
// selection.
func (a *App) selectObject(id string) {
	for _, obj := range a.project.Objects {
		if obj.ID == id {
			a.ensureObjectContainer(obj)
			a.controller.SelectObject(obj)
			return
		}
	}
	a.controller.ClearSelection()
}

// reapplySelection republishes the current selection so derived state is
// recomputed after a machine or sequencing change.
func (a *App) reapplySelection() {
	a.selectObject(a.controller.SelectedObjectID())
}

// onControllerChanged syncs controller-owned state back into the project and
// refreshes the dependent views.
func (a *App) onControllerChanged() {
	id := a.controller.SelectedObjectID()
	if id != "" {
		for i := range a.project.Objects {
			if a.project.Objects[i].ID == id {
				a.project.Objects[i].MeshType = a.controller.MeshType()
				a.project.Overrides[id] = a.registry.Overrides(a.project.Objects[i].ContainerID())
				break
			}
		}
	}
	a.project.Visible = a.visibility.Export()

	a.refreshPerObjectPanel()
	a.refreshPlate()
	a.refreshObjectsList()
	a.refreshEstimate()
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.newProject()
		}),
		fyne.NewMenuItem("Open Project...", func() {
			a.loadProject()
		}),
		fyne.NewMenuItem("Save Project...", func() {
			a.saveProject()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Profile from CSV...", func() {
			a.importProfileCSV()
		}),
		fyne.NewMenuItem("Import Profile from Excel...", func() {
			a.importProfileExcel()
		}),
		fyne.NewMenuItem("Import Plate Outline from DXF...", func() {
			a.importPlateDXF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Job Card...", func() {
			a.exportJobCard()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Clear All Objects", func() {
			a.clearObjects()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", func() {
			a.showPreferencesDialog()
		}),
		fyne.NewMenuItem("Import / Export All Data...", func() {
			a.showImportExportDialog()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Arrange Plate", func() {
			a.runArrange()
		}),
		fyne.NewMenuItem("Templates...", func() {
			a.showTemplatesDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PrintPrep",
		"PrintPrep — 3D Print Preparation\n\n"+
			"A cross-platform desktop application for arranging objects\n"+
			"on the build plate and overriding slicing settings per object.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	objectsTab := container.NewTabItem("Objects", a.buildObjectsPanel())
	machineTab := container.NewTabItem("Machine", a.buildMachinePanel())
	filamentsTab := container.NewTabItem("Filaments", a.buildFilamentsPanel())

	a.tabs = container.NewAppTabs(objectsTab, machineTab, filamentsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

// ─── Objects Panel ─────────────────────────────────────────

func (a *App) buildObjectsPanel() fyne.CanvasObject {
	a.objectsContainer = container.NewVBox()
	a.refreshObjectsList()

	addBtn := widget.NewButtonWithIcon("Add Object", theme.ContentAddIcon(), func() {
		a.showAddObjectDialog()
	})

	left := container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Objects", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.objectsContainer),
	)

	a.plateCanvas = widgets.NewPlateCanvas(a.machine(), a.project.Objects, 460, 460)
	a.plateCanvas.OnObjectTapped = func(id string) {
		a.selectObject(id)
	}

	a.estimateLabel = widget.NewLabel("")
	a.refreshEstimate()

	center := container.NewBorder(
		widget.NewLabelWithStyle("Build Plate", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		a.estimateLabel,
		nil, nil,
		container.NewCenter(a.plateCanvas),
	)

	a.perObjectPanel = container.NewVBox()
	a.refreshPerObjectPanel()
	right := container.NewVScroll(a.perObjectPanel)
	right.SetMinSize(fyne.NewSize(320, 0))

	split := container.NewHSplit(left, center)
	split.SetOffset(0.3)
	return container.NewBorder(nil, nil, nil, right, split)
}

func (a *App) refreshObjectsList() {
	if a.objectsContainer == nil {
		return
	}
	a.objectsContainer.RemoveAll()

	if len(a.project.Objects) == 0 {
		a.objectsContainer.Add(widget.NewLabel("No objects yet. Click 'Add Object' to begin."))
		return
	}

	header := container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Size (mm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Mesh Type", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.objectsContainer.Add(header)
	a.objectsContainer.Add(widget.NewSeparator())

	for i := range a.project.Objects {
		idx := i // capture
		obj := a.project.Objects[idx]
		name := obj.Name
		if obj.ID == a.controller.SelectedObjectID() {
			name = "▸ " + name
		}
		row := container.NewGridWithColumns(6,
			widget.NewLabel(name),
			widget.NewLabel(fmt.Sprintf("%.0fx%.0fx%.0f", obj.Width, obj.Depth, obj.Height)),
			widget.NewLabel(obj.MeshType.String()),
			newIconButtonWithTooltip(theme.ConfirmIcon(), "Select", func() {
				a.selectObject(obj.ID)
			}),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit", func() {
				a.showEditObjectDialog(idx)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete", func() {
				a.deleteObject(idx)
			}),
		)
		a.objectsContainer.Add(row)
	}
}

func (a *App) refreshPlate() {
	if a.plateCanvas == nil {
		return
	}
	a.plateCanvas.SetScene(a.machine(), a.project.Objects, a.controller.SelectedObjectID())
}

func (a *App) refreshEstimate() {
	if a.estimateLabel == nil {
		return
	}
	infill := a.config.DefaultInfillPercent
	if v, err := strconv.ParseFloat(a.registry.Value(globalContainerID, "infill_sparse_density"), 64); err == nil {
		infill = v
	}
	material := model.GetMaterialPreset(a.config.DefaultMaterial)
	est := model.CalculatePrintEstimate(a.project.Objects, infill, material, 1000, a.config.FilamentDiameter)
	a.estimateLabel.SetText(fmt.Sprintf(
		"Estimate: %.0f g (%.1f m) | %.2f | %.0f min | %d printed, %d modifiers",
		est.TotalGrams, est.TotalLengthMM/1000.0, est.EstimatedCost, est.PrintTimeMin,
		est.ObjectCount, est.ModifierCount))
}

func (a *App) showAddObjectDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Object name")
	nameEntry.SetText(fmt.Sprintf("Object %d", len(a.project.Objects)+1))

	widthEntry := widget.NewEntry()
	widthEntry.SetPlaceHolder("Width in mm")
	depthEntry := widget.NewEntry()
	depthEntry.SetPlaceHolder("Depth in mm")
	heightEntry := widget.NewEntry()
	heightEntry.SetPlaceHolder("Height in mm")

	form := dialog.NewForm("Add Object", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Depth (mm)", depthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			d, _ := strconv.ParseFloat(depthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			if w <= 0 || d <= 0 || h <= 0 {
				dialog.ShowError(fmt.Errorf("width, depth, and height must be > 0"), a.window)
				return
			}

			obj := model.NewSceneObject(nameEntry.Text, w, d, h)
			a.project.Objects = append(a.project.Objects, obj)
			a.ensureObjectContainer(obj)
			a.refreshObjectsList()
			a.refreshPlate()
			a.refreshEstimate()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

func (a *App) showEditObjectDialog(idx int) {
	obj := a.project.Objects[idx]

	nameEntry := widget.NewEntry()
	nameEntry.SetText(obj.Name)
	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.1f", obj.Width))
	depthEntry := widget.NewEntry()
	depthEntry.SetText(fmt.Sprintf("%.1f", obj.Depth))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.1f", obj.Height))

	form := dialog.NewForm("Edit Object", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Depth (mm)", depthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			d, _ := strconv.ParseFloat(depthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			if w <= 0 || d <= 0 || h <= 0 {
				dialog.ShowError(fmt.Errorf("width, depth, and height must be > 0"), a.window)
				return
			}
			a.project.Objects[idx].Name = nameEntry.Text
			a.project.Objects[idx].Width = w
			a.project.Objects[idx].Depth = d
			a.project.Objects[idx].Height = h
			a.refreshObjectsList()
			a.refreshPlate()
			a.refreshEstimate()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

func (a *App) deleteObject(idx int) {
	obj := a.project.Objects[idx]
	a.registry.RemoveContainer(obj.ContainerID())
	delete(a.project.Overrides, obj.ID)
	delete(a.project.Visible, obj.ID)
	a.project.Objects = append(a.project.Objects[:idx], a.project.Objects[idx+1:]...)
	if a.controller.SelectedObjectID() == obj.ID {
		a.controller.ClearSelection()
	}
	a.refreshObjectsList()
	a.refreshPlate()
	a.refreshEstimate()
}

func (a *App) clearObjects() {
	for _, obj := range a.project.Objects {
		a.registry.RemoveContainer(obj.ContainerID())
	}
	a.project.Objects = nil
	a.project.Overrides = map[string]map[string]string{}
	a.project.Visible = map[string][]string{}
	a.visibility.Import(nil)
	a.controller.ClearSelection()
	a.refreshObjectsList()
	a.refreshPlate()
	a.refreshEstimate()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) runArrange() {
	if len(a.project.Objects) == 0 {
		dialog.ShowInformation("Nothing to arrange", "Add at least one object first.", a.window)
		return
	}

	arranger := engine.New(a.machine())
	result := arranger.Arrange(a.project.Objects)
	a.project.Objects = result.Apply(a.project.Objects)
	a.refreshPlate()

	if len(result.Unplaced) > 0 {
		names := make([]string, 0, len(result.Unplaced))
		for _, obj := range result.Unplaced {
			names = append(names, obj.Name)
		}
		dialog.ShowInformation("Arrange Incomplete",
			fmt.Sprintf("%d object(s) did not fit on the plate:\n%s",
				len(result.Unplaced), strings.Join(names, "\n")), a.window)
	}
}

func (a *App) newProject() {
	a.clearObjects()
	a.project = model.NewProject()
	a.config.ApplyToProject(&a.project)
	a.applyMachine(model.GetMachine(a.project.MachineID))
	a.reapplySelection()
	a.refreshObjectsList()
	a.refreshPlate()
	a.refreshEstimate()
}

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.Save(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(a.project.Name + ".ppp")
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		proj, err := project.Load(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.controller.ClearSelection()
		a.project = proj
		a.visibility.Import(proj.Visible)
		a.applyMachine(model.GetMachine(proj.MachineID))
		for _, obj := range proj.Objects {
			a.ensureObjectContainer(obj)
		}
		a.refreshObjectsList()
		a.refreshPlate()
		a.refreshEstimate()
	}, a.window)
	d.Show()
}

func (a *App) exportJobCard() {
	if len(a.project.Objects) == 0 {
		dialog.ShowInformation("No objects", "Add objects before exporting a job card.", a.window)
		return
	}

	known := a.descriptorsByKey()
	cards := export.BuildObjectCards(a.project, known)
	infill := a.config.DefaultInfillPercent
	if v, err := strconv.ParseFloat(a.registry.Value(globalContainerID, "infill_sparse_density"), 64); err == nil {
		infill = v
	}
	material := model.GetMaterialPreset(a.config.DefaultMaterial)
	est := model.CalculatePrintEstimate(a.project.Objects, infill, material, 1000, a.config.FilamentDiameter)

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := export.ExportJobCard(path, a.project, a.machine(), cards, est); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Job card saved to %s", path), a.window)
		}
	}, a.window)
	d.SetFileName(a.project.Name + "-jobcard.pdf")
	d.Show()
}

// descriptorsByKey indexes the catalog for label lookups.
func (a *App) descriptorsByKey() map[string]model.SettingDescriptor {
	known := map[string]model.SettingDescriptor{}
	for _, d := range settings.DefaultDefinitions() {
		known[d.Key] = d
	}
	return known
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importProfileCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := profileimporter.ImportProfileCSV(reader.URI().Path(), a.descriptorsByKey())
		a.handleProfileImport(result)
	}, a.window)
}

func (a *App) importProfileExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := profileimporter.ImportProfileExcel(reader.URI().Path(), a.descriptorsByKey())
		a.handleProfileImport(result)
	}, a.window)
}

// handleProfileImport applies imported overrides to the selected object's
// stack, or to the global stack when nothing is selected.
func (a *App) handleProfileImport(result profileimporter.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}
	if len(result.Warnings) > 0 {
		fmt.Printf("Import warnings: %v\n", result.Warnings)
	}
	if len(result.Overrides) == 0 {
		return
	}

	target := globalContainerID
	objectID := a.controller.SelectedObjectID()
	if objectID != "" {
		target = a.controller.Subscription().Provider().ContainerID()
	}
	for _, o := range result.Overrides {
		a.registry.SetValue(target, o.Key, o.Value)
		if objectID != "" {
			a.visibility.Add(objectID, o.Key)
		}
	}
	a.reapplySelection()

	scope := "the global stack"
	if objectID != "" {
		scope = "the selected object"
	}
	msg := fmt.Sprintf("Successfully imported %d settings to %s.", len(result.Overrides), scope)
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

func (a *App) importPlateDXF() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := profileimporter.ImportPlateDXF(reader.URI().Path())
		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("%s", strings.Join(result.Errors, "\n")), a.window)
			return
		}
		a.plateOutline = result.Outline
		a.refreshPlate()

		msg := "Plate outline imported."
		if len(result.Warnings) > 0 {
			msg += "\n\n" + strings.Join(result.Warnings, "\n")
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}, a.window)
}
