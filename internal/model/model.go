package model

import "github.com/google/uuid"

// MeshType classifies how an object on the build plate participates in
// slicing: as a normal printed model, as custom support, as a modifier
// volume, or as a support blocker.
type MeshType int

const (
	MeshTypeNormal       MeshType = iota // Regular printed object
	MeshTypeSupport                      // Printed as support material
	MeshTypeCutting                      // Modifier: overlapped regions of other meshes are modified
	MeshTypeInfill                       // Modifier: only the infill of overlapped regions is modified
	MeshTypeAntiOverhang                 // Support blocker: no support generated inside
)

func (m MeshType) String() string {
	switch m {
	case MeshTypeSupport:
		return "Support"
	case MeshTypeCutting:
		return "Cutting"
	case MeshTypeInfill:
		return "Infill"
	case MeshTypeAntiOverhang:
		return "AntiOverhang"
	default:
		return "Normal"
	}
}

// MeshTypeFromString parses a mesh type name as produced by String().
// Unknown names map to MeshTypeNormal.
func MeshTypeFromString(s string) MeshType {
	switch s {
	case "Support":
		return MeshTypeSupport
	case "Cutting":
		return MeshTypeCutting
	case "Infill":
		return MeshTypeInfill
	case "AntiOverhang":
		return MeshTypeAntiOverhang
	default:
		return MeshTypeNormal
	}
}

// Setting keys acting as mesh-type markers on a per-object stack. These are
// stored like ordinary boolean settings but are driven exclusively by the
// mesh-type buttons, never through the settings list itself.
const (
	KeySupportMesh      = "support_mesh"
	KeyCuttingMesh      = "cutting_mesh"
	KeyInfillMesh       = "infill_mesh"
	KeyAntiOverhangMesh = "anti_overhang_mesh"
)

// MeshTypeKeys returns the four mesh-type marker keys. Every settings view
// excludes these regardless of the active mesh type.
func MeshTypeKeys() []string {
	return []string{KeySupportMesh, KeyAntiOverhangMesh, KeyCuttingMesh, KeyInfillMesh}
}

// SettingKey returns the marker key for the mesh type, or "" for Normal.
func (m MeshType) SettingKey() string {
	switch m {
	case MeshTypeSupport:
		return KeySupportMesh
	case MeshTypeCutting:
		return KeyCuttingMesh
	case MeshTypeInfill:
		return KeyInfillMesh
	case MeshTypeAntiOverhang:
		return KeyAntiOverhangMesh
	default:
		return ""
	}
}

// PrintSequence selects whether all objects are printed layer by layer
// together, or each object is completed before the next one starts.
type PrintSequence string

const (
	SequenceAllAtOnce  PrintSequence = "all_at_once"
	SequenceOneAtATime PrintSequence = "one_at_a_time"
)

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// SceneObject represents one object on the build plate.
type SceneObject struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	MeshType MeshType `json:"mesh_type"`
	X        float64  `json:"x"`      // Position from plate left edge (mm)
	Y        float64  `json:"y"`      // Position from plate front edge (mm)
	Width    float64  `json:"width"`  // Footprint width (mm)
	Depth    float64  `json:"depth"`  // Footprint depth (mm)
	Height   float64  `json:"height"` // Object height (mm)
}

func NewSceneObject(name string, w, d, h float64) SceneObject {
	return SceneObject{
		ID:       uuid.New().String()[:8],
		Name:     name,
		MeshType: MeshTypeNormal,
		Width:    w,
		Depth:    d,
		Height:   h,
	}
}

// FootprintArea returns the plate area covered by the object's bounding box.
func (o SceneObject) FootprintArea() float64 {
	return o.Width * o.Depth
}

// Volume returns the bounding-box volume in cubic mm.
func (o SceneObject) Volume() float64 {
	return o.Width * o.Depth * o.Height
}

// ContainerID returns the id of the object's per-object settings stack.
// An empty object id yields an empty container id, which the settings
// layer treats as "no settings".
func (o SceneObject) ContainerID() string {
	if o.ID == "" {
		return ""
	}
	return "object_" + o.ID
}

// Machine describes a printer: build volume, plate shape, and how multiple
// objects on the plate are sequenced.
type Machine struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	PlateWidth    float64       `json:"plate_width"`             // mm
	PlateDepth    float64       `json:"plate_depth"`             // mm
	PlateHeight   float64       `json:"plate_height"`            // mm
	PlateOutline  Outline       `json:"plate_outline,omitempty"` // Non-rectangular plates; nil = full rectangle
	PrintSequence PrintSequence `json:"print_sequence"`
	HeadClearance float64       `json:"head_clearance"` // Radius around the head for one-at-a-time (mm)
	GantryHeight  float64       `json:"gantry_height"`  // Max printed height next to the head in one-at-a-time (mm)
}

// Built-in machine definitions.
var Machines = []Machine{
	{
		ID:            "generic_fdm",
		Name:          "Generic FDM Printer",
		PlateWidth:    220,
		PlateDepth:    220,
		PlateHeight:   250,
		PrintSequence: SequenceAllAtOnce,
		HeadClearance: 40,
		GantryHeight:  30,
	},
	{
		ID:            "large_format_400",
		Name:          "Large Format 400",
		PlateWidth:    400,
		PlateDepth:    400,
		PlateHeight:   450,
		PrintSequence: SequenceAllAtOnce,
		HeadClearance: 55,
		GantryHeight:  35,
	},
	{
		ID:            "compact_150",
		Name:          "Compact 150",
		PlateWidth:    150,
		PlateDepth:    150,
		PlateHeight:   150,
		PrintSequence: SequenceAllAtOnce,
		HeadClearance: 30,
		GantryHeight:  25,
	},
}

// CustomMachines holds user-defined machines loaded from disk.
var CustomMachines []Machine

// AllMachines returns built-in machines followed by custom machines.
func AllMachines() []Machine {
	all := make([]Machine, 0, len(Machines)+len(CustomMachines))
	all = append(all, Machines...)
	all = append(all, CustomMachines...)
	return all
}

// GetMachine returns a machine by id, or the first built-in if not found.
func GetMachine(id string) Machine {
	for _, m := range AllMachines() {
		if m.ID == id {
			return m
		}
	}
	return Machines[0]
}

// GetMachineNames returns the names of all available machines.
func GetMachineNames() []string {
	var names []string
	for _, m := range AllMachines() {
		names = append(names, m.Name)
	}
	return names
}

// Project ties everything together for save/load.
type Project struct {
	Name      string                       `json:"name"`
	MachineID string                       `json:"machine_id"`
	Objects   []SceneObject                `json:"objects"`
	Overrides map[string]map[string]string `json:"overrides,omitempty"` // object id -> setting key -> value
	Visible   map[string][]string          `json:"visible,omitempty"`   // object id -> added setting keys
}

func NewProject() Project {
	return Project{
		Name:      "Untitled",
		MachineID: Machines[0].ID,
		Objects:   []SceneObject{},
		Overrides: map[string]map[string]string{},
		Visible:   map[string][]string{},
	}
}
