package model

// SettingType is the declared value type of a setting definition.
type SettingType int

const (
	SettingTypeUnknown SettingType = iota
	SettingTypeInt
	SettingTypeFloat
	SettingTypeBool
	SettingTypeStr
	SettingTypeEnum
	SettingTypeExtruder
	SettingTypeOptionalExtruder
	SettingTypeCategory
)

func (t SettingType) String() string {
	switch t {
	case SettingTypeInt:
		return "int"
	case SettingTypeFloat:
		return "float"
	case SettingTypeBool:
		return "bool"
	case SettingTypeStr:
		return "str"
	case SettingTypeEnum:
		return "enum"
	case SettingTypeExtruder:
		return "extruder"
	case SettingTypeOptionalExtruder:
		return "optional_extruder"
	case SettingTypeCategory:
		return "category"
	default:
		return "unknown"
	}
}

// SettingTypeFromString parses the type string used in definition files.
// Unrecognized strings map to SettingTypeUnknown rather than failing.
func SettingTypeFromString(s string) SettingType {
	switch s {
	case "int":
		return SettingTypeInt
	case "float":
		return SettingTypeFloat
	case "bool":
		return SettingTypeBool
	case "str":
		return SettingTypeStr
	case "enum":
		return SettingTypeEnum
	case "extruder":
		return SettingTypeExtruder
	case "optional_extruder":
		return SettingTypeOptionalExtruder
	case "category":
		return SettingTypeCategory
	default:
		return SettingTypeUnknown
	}
}

// EditorKind selects the widget used to edit a setting value.
type EditorKind int

const (
	EditorNone     EditorKind = iota // Categories and unknown types get no editor
	EditorNumberEntry
	EditorCheckbox
	EditorTextEntry
	EditorComboBox
)

// settingEditors maps every SettingType to its editor. The settings list
// looks editors up here instead of switching on raw type strings, so an
// unmapped type is a bug caught by TestEveryTypeHasEditor.
var settingEditors = map[SettingType]EditorKind{
	SettingTypeUnknown:          EditorNone,
	SettingTypeInt:              EditorNumberEntry,
	SettingTypeFloat:            EditorNumberEntry,
	SettingTypeBool:             EditorCheckbox,
	SettingTypeStr:              EditorTextEntry,
	SettingTypeEnum:             EditorComboBox,
	SettingTypeExtruder:         EditorComboBox,
	SettingTypeOptionalExtruder: EditorComboBox,
	SettingTypeCategory:         EditorNone,
}

// EditorFor returns the editor widget kind for a setting type.
func EditorFor(t SettingType) EditorKind {
	if kind, ok := settingEditors[t]; ok {
		return kind
	}
	return EditorNone
}

// SettingDescriptor describes one setting definition: its key, label,
// declared type, and applicability flags. Descriptors are read-only data
// supplied by the definitions source.
type SettingDescriptor struct {
	Key                  string      `json:"key"`
	Label                string      `json:"label"`
	Description          string      `json:"description,omitempty"`
	Unit                 string      `json:"unit,omitempty"`
	Type                 SettingType `json:"type"`
	Category             string      `json:"category,omitempty"` // Parent category key; empty for categories themselves
	Options              []string    `json:"options,omitempty"`  // Enum values
	Default              string      `json:"default,omitempty"`
	SettablePerMesh      bool        `json:"settable_per_mesh"`
	SettablePerMeshgroup bool        `json:"settable_per_meshgroup"`
	SettablePerExtruder  bool        `json:"settable_per_extruder"`
	LimitToExtruder      int         `json:"limit_to_extruder,omitempty"` // -1 = not limited
}

// IsCategory reports whether the descriptor is a category header.
func (d SettingDescriptor) IsCategory() bool {
	return d.Type == SettingTypeCategory
}

// AllCategoriesExceptSupport lists every top-level settings category other
// than support. A support mesh only exposes support settings, so all of
// these are excluded while the Support mesh type is active.
var AllCategoriesExceptSupport = []string{
	"machine_settings",
	"resolution",
	"shell",
	"top_bottom",
	"infill",
	"material",
	"speed",
	"travel",
	"cooling",
	"dual",
	"meshfix",
	"blackmagic",
	"experimental",
}
