// Package widgets contains custom canvas widgets for the PrintPrep UI.
package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PrintPrep/internal/model"
)

// meshTypeColors maps mesh types to their display colors. The job card PDF
// uses the same scheme.
var meshTypeColors = map[model.MeshType]color.NRGBA{
	model.MeshTypeNormal:       {R: 76, G: 175, B: 80, A: 200},   // green
	model.MeshTypeSupport:      {R: 0, G: 188, B: 212, A: 200},   // cyan
	model.MeshTypeCutting:      {R: 255, G: 152, B: 0, A: 200},   // orange
	model.MeshTypeInfill:       {R: 156, G: 39, B: 176, A: 200},  // purple
	model.MeshTypeAntiOverhang: {R: 244, G: 67, B: 54, A: 200},   // red
}

// PlateCanvas renders a top-down view of the build plate with all scene
// objects colored by mesh type. The selected object gets a highlight border.
type PlateCanvas struct {
	widget.BaseWidget
	machine    model.Machine
	objects    []model.SceneObject
	selectedID string
	maxWidth   float32
	maxHeight  float32

	// OnObjectTapped is called with the object id when a footprint is clicked.
	OnObjectTapped func(id string)
}

func NewPlateCanvas(machine model.Machine, objects []model.SceneObject, maxW, maxH float32) *PlateCanvas {
	pc := &PlateCanvas{
		machine:   machine,
		objects:   objects,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetScene replaces the rendered machine and objects and refreshes.
func (pc *PlateCanvas) SetScene(machine model.Machine, objects []model.SceneObject, selectedID string) {
	pc.machine = machine
	pc.objects = objects
	pc.selectedID = selectedID
	pc.Refresh()
}

// Tapped resolves the clicked plate position to an object.
func (pc *PlateCanvas) Tapped(ev *fyne.PointEvent) {
	if pc.OnObjectTapped == nil {
		return
	}
	scale := pc.scale()
	if scale == 0 {
		return
	}
	x := float64(ev.Position.X / scale)
	y := float64(ev.Position.Y / scale)
	// Topmost object wins on overlap
	for i := len(pc.objects) - 1; i >= 0; i-- {
		obj := pc.objects[i]
		if x >= obj.X && x <= obj.X+obj.Width && y >= obj.Y && y <= obj.Y+obj.Depth {
			pc.OnObjectTapped(obj.ID)
			return
		}
	}
	pc.OnObjectTapped("")
}

func (pc *PlateCanvas) scale() float32 {
	plateW := float32(pc.machine.PlateWidth)
	plateH := float32(pc.machine.PlateDepth)
	if plateW == 0 || plateH == 0 {
		return 0
	}
	scale := pc.maxWidth / plateW
	if s := pc.maxHeight / plateH; s < scale {
		scale = s
	}
	return scale
}

func (pc *PlateCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPlateCanvasRenderer(pc)
}

type plateCanvasRenderer struct {
	pc      *PlateCanvas
	objects []fyne.CanvasObject
}

func newPlateCanvasRenderer(pc *PlateCanvas) *plateCanvasRenderer {
	r := &plateCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *plateCanvasRenderer) rebuild() {
	r.objects = nil

	scale := r.pc.scale()
	if scale == 0 {
		return
	}
	canvasW := float32(r.pc.machine.PlateWidth) * scale
	canvasH := float32(r.pc.machine.PlateDepth) * scale

	// Plate background
	bg := canvas.NewRectangle(color.NRGBA{R: 45, G: 48, B: 56, A: 255})
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	// Plate border
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, border)

	// Custom plate outline, drawn as a line loop
	if len(r.pc.machine.PlateOutline) >= 3 {
		outline := r.pc.machine.PlateOutline
		for i := range outline {
			p1 := outline[i]
			p2 := outline[(i+1)%len(outline)]
			line := canvas.NewLine(color.NRGBA{R: 130, G: 130, B: 140, A: 255})
			line.StrokeWidth = 1
			line.Position1 = fyne.NewPos(float32(p1.X)*scale, float32(p1.Y)*scale)
			line.Position2 = fyne.NewPos(float32(p2.X)*scale, float32(p2.Y)*scale)
			r.objects = append(r.objects, line)
		}
	}

	// Object footprints
	for _, obj := range r.pc.objects {
		col := meshTypeColors[obj.MeshType]
		ow := float32(obj.Width) * scale
		od := float32(obj.Depth) * scale
		ox := float32(obj.X) * scale
		oy := float32(obj.Y) * scale

		rect := canvas.NewRectangle(col)
		rect.Resize(fyne.NewSize(ow, od))
		rect.Move(fyne.NewPos(ox, oy))
		r.objects = append(r.objects, rect)

		borderCol := color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		borderWidth := float32(1)
		if obj.ID == r.pc.selectedID {
			borderCol = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			borderWidth = 2
		}
		objBorder := canvas.NewRectangle(color.Transparent)
		objBorder.StrokeColor = borderCol
		objBorder.StrokeWidth = borderWidth
		objBorder.Resize(fyne.NewSize(ow, od))
		objBorder.Move(fyne.NewPos(ox, oy))
		r.objects = append(r.objects, objBorder)

		// Label (only if big enough)
		if ow > 30 && od > 16 {
			label := canvas.NewText(
				fmt.Sprintf("%s (%s)", obj.Name, obj.MeshType),
				color.White,
			)
			label.TextSize = 10
			label.Move(fyne.NewPos(ox+3, oy+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *plateCanvasRenderer) Layout(size fyne.Size)        {}
func (r *plateCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *plateCanvasRenderer) Destroy()                     {}
func (r *plateCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *plateCanvasRenderer) MinSize() fyne.Size {
	scale := r.pc.scale()
	return fyne.NewSize(float32(r.pc.machine.PlateWidth)*scale, float32(r.pc.machine.PlateDepth)*scale)
}
