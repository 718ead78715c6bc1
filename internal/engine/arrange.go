// Package engine implements build-plate arrangement: placing scene objects
// on the plate with spacing appropriate for the machine's print sequence.
package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/PrintPrep/internal/model"
)

// defaultSpacing is the minimum gap between object footprints in mm.
const defaultSpacing = 5.0

// Arranger places scene objects on a machine's build plate.
type Arranger struct {
	Machine model.Machine
	Spacing float64 // Gap between objects (mm); defaults to defaultSpacing
}

func New(machine model.Machine) *Arranger {
	return &Arranger{Machine: machine, Spacing: defaultSpacing}
}

// Placement is one arranged object with its new plate position.
type Placement struct {
	Object model.SceneObject
	X      float64 // mm from plate left edge
	Y      float64 // mm from plate front edge
}

// ArrangeResult holds the outcome of an arrangement run.
type ArrangeResult struct {
	Placed   []Placement
	Unplaced []model.SceneObject
}

// PlateEfficiency returns the fraction of plate area covered by placements,
// as a percentage.
func (r ArrangeResult) PlateEfficiency(machine model.Machine) float64 {
	plateArea := machine.PlateWidth * machine.PlateDepth
	if plateArea == 0 {
		return 0
	}
	var used float64
	for _, p := range r.Placed {
		used += p.Object.FootprintArea()
	}
	return used / plateArea * 100.0
}

// Arrange lays objects out in rows (shelves) across the plate. With
// all-at-once sequencing, objects are sorted largest-first and separated by
// Spacing. With one-at-a-time sequencing, each object additionally reserves
// the head clearance radius around it, objects taller than the gantry height
// are rejected, and rows fill back to front so the head never has to travel
// across an already printed object.
func (a *Arranger) Arrange(objects []model.SceneObject) ArrangeResult {
	result := ArrangeResult{}

	oneAtATime := a.Machine.PrintSequence == model.SequenceOneAtATime
	spacing := a.Spacing
	if spacing <= 0 {
		spacing = defaultSpacing
	}
	margin := spacing
	if oneAtATime {
		margin = math.Max(spacing, a.Machine.HeadClearance)
	}

	sorted := append([]model.SceneObject(nil), objects...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FootprintArea() > sorted[j].FootprintArea()
	})

	var x, y, rowDepth float64
	for _, obj := range sorted {
		if oneAtATime && obj.Height > a.Machine.GantryHeight && len(sorted) > 1 {
			// The head would collide with this object while printing its
			// neighbors.
			result.Unplaced = append(result.Unplaced, obj)
			continue
		}
		if obj.Width > a.Machine.PlateWidth || obj.Depth > a.Machine.PlateDepth {
			result.Unplaced = append(result.Unplaced, obj)
			continue
		}

		// Start a new row when the object does not fit the current one.
		if x+obj.Width > a.Machine.PlateWidth {
			x = 0
			y += rowDepth + margin
			rowDepth = 0
		}
		if y+obj.Depth > a.Machine.PlateDepth {
			result.Unplaced = append(result.Unplaced, obj)
			continue
		}

		py := y
		if oneAtATime {
			// Fill back to front: the head approaches from the front, so
			// finished objects stay behind the nozzle travel area.
			py = a.Machine.PlateDepth - y - obj.Depth
		}

		obj.X = x
		obj.Y = py
		result.Placed = append(result.Placed, Placement{Object: obj, X: x, Y: py})

		x += obj.Width + margin
		if obj.Depth > rowDepth {
			rowDepth = obj.Depth
		}
	}
	return result
}

// Apply writes the arranged positions back into a project's object list,
// matching by object id.
func (r ArrangeResult) Apply(objects []model.SceneObject) []model.SceneObject {
	positions := make(map[string]Placement, len(r.Placed))
	for _, p := range r.Placed {
		positions[p.Object.ID] = p
	}
	updated := append([]model.SceneObject(nil), objects...)
	for i, obj := range updated {
		if p, ok := positions[obj.ID]; ok {
			updated[i].X = p.X
			updated[i].Y = p.Y
		}
	}
	return updated
}
