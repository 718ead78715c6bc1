package settings

import "github.com/piwi3910/PrintPrep/internal/model"

// DefaultDefinitions returns the built-in setting catalog in display order.
// Categories come first, each followed by its settings. The catalog is a
// trimmed-down FDM definition set; machines register it as their global
// container and per-object stacks inherit from that.
func DefaultDefinitions() []model.SettingDescriptor {
	return []model.SettingDescriptor{
		category("resolution", "Quality"),
		setting("layer_height", "Layer Height", "resolution", model.SettingTypeFloat, "mm", "0.2", perMeshgroup),
		setting("line_width", "Line Width", "resolution", model.SettingTypeFloat, "mm", "0.4", perMesh|perMeshgroup),

		category("shell", "Walls"),
		setting("wall_thickness", "Wall Thickness", "shell", model.SettingTypeFloat, "mm", "0.8", perMesh|perMeshgroup),
		setting("wall_line_count", "Wall Line Count", "shell", model.SettingTypeInt, "", "2", perMesh|perMeshgroup),
		setting("horizontal_expansion", "Horizontal Expansion", "shell", model.SettingTypeFloat, "mm", "0", perMesh),

		category("top_bottom", "Top/Bottom"),
		setting("top_layers", "Top Layers", "top_bottom", model.SettingTypeInt, "", "4", perMesh|perMeshgroup),
		setting("bottom_layers", "Bottom Layers", "top_bottom", model.SettingTypeInt, "", "4", perMesh|perMeshgroup),

		category("infill", "Infill"),
		setting("infill_sparse_density", "Infill Density", "infill", model.SettingTypeFloat, "%", "20", perMesh|perMeshgroup),
		enumSetting("infill_pattern", "Infill Pattern", "infill", "grid", []string{"grid", "lines", "triangles", "cubic", "gyroid"}, perMesh|perMeshgroup),

		category("material", "Material"),
		setting("material_print_temperature", "Printing Temperature", "material", model.SettingTypeFloat, "°C", "205", perMeshgroup),
		setting("material_bed_temperature", "Build Plate Temperature", "material", model.SettingTypeFloat, "°C", "60", perMeshgroup),
		setting("material_flow", "Flow", "material", model.SettingTypeFloat, "%", "100", perMesh|perMeshgroup),

		category("speed", "Speed"),
		setting("speed_print", "Print Speed", "speed", model.SettingTypeFloat, "mm/s", "60", perMesh|perMeshgroup),
		setting("speed_wall", "Wall Speed", "speed", model.SettingTypeFloat, "mm/s", "30", perMesh|perMeshgroup),

		category("travel", "Travel"),
		setting("retraction_enable", "Enable Retraction", "travel", model.SettingTypeBool, "", "true", perMeshgroup),
		setting("retraction_distance", "Retraction Distance", "travel", model.SettingTypeFloat, "mm", "5", perMeshgroup),

		category("cooling", "Cooling"),
		setting("cool_fan_enabled", "Enable Print Cooling", "cooling", model.SettingTypeBool, "", "true", perMesh|perMeshgroup),
		setting("cool_fan_speed", "Fan Speed", "cooling", model.SettingTypeFloat, "%", "100", perMesh|perMeshgroup),

		category("support", "Support"),
		enumSetting("support_structure", "Support Structure", "support", "normal", []string{"normal", "tree"}, perMesh|perMeshgroup),
		setting("support_angle", "Support Overhang Angle", "support", model.SettingTypeFloat, "°", "50", perMesh|perMeshgroup),
		setting("support_infill_rate", "Support Density", "support", model.SettingTypeFloat, "%", "20", perMesh|perMeshgroup),
		extruderSetting("support_extruder_nr", "Support Extruder", "support"),

		category("dual", "Dual Extrusion"),
		extruderSetting("wall_extruder_nr", "Wall Extruder", "dual"),
		setting("prime_tower_enable", "Enable Prime Tower", "dual", model.SettingTypeBool, "", "false", perMeshgroup),

		category("meshfix", "Mesh Fixes"),
		setting("meshfix_union_all", "Union Overlapping Volumes", "meshfix", model.SettingTypeBool, "", "true", perMesh),
		setting("meshfix_maximum_resolution", "Maximum Resolution", "meshfix", model.SettingTypeFloat, "mm", "0.5", perMesh),

		category("blackmagic", "Special Modes"),
		enumSetting("print_sequence", "Print Sequence", "blackmagic", string(model.SequenceAllAtOnce), []string{string(model.SequenceAllAtOnce), string(model.SequenceOneAtATime)}, 0),
		setting("magic_spiralize", "Spiralize Outer Contour", "blackmagic", model.SettingTypeBool, "", "false", perMeshgroup),
		// Mesh-type markers. Stored like settings, driven only by the
		// mesh-type buttons; every list view excludes them.
		setting(model.KeySupportMesh, "Support Mesh", "blackmagic", model.SettingTypeBool, "", "false", perMesh),
		setting(model.KeyAntiOverhangMesh, "Anti Overhang Mesh", "blackmagic", model.SettingTypeBool, "", "false", perMesh),
		setting(model.KeyCuttingMesh, "Cutting Mesh", "blackmagic", model.SettingTypeBool, "", "false", perMesh),
		setting(model.KeyInfillMesh, "Infill Mesh", "blackmagic", model.SettingTypeBool, "", "false", perMesh),

		category("experimental", "Experimental"),
		setting("coasting_enable", "Enable Coasting", "experimental", model.SettingTypeBool, "", "false", perMeshgroup),
		enumSetting("adaptive_layer_height_enabled", "Use Adaptive Layers", "experimental", "false", []string{"true", "false"}, 0),

		category("machine_settings", "Machine"),
		setting("machine_nozzle_size", "Nozzle Diameter", "machine_settings", model.SettingTypeFloat, "mm", "0.4", 0),
		setting("machine_name", "Machine Name", "machine_settings", model.SettingTypeStr, "", "", 0),
	}
}

type applicability int

const (
	perMesh applicability = 1 << iota
	perMeshgroup
)

func category(key, label string) model.SettingDescriptor {
	return model.SettingDescriptor{
		Key:   key,
		Label: label,
		Type:  model.SettingTypeCategory,
	}
}

func setting(key, label, cat string, t model.SettingType, unit, def string, flags applicability) model.SettingDescriptor {
	return model.SettingDescriptor{
		Key:                  key,
		Label:                label,
		Unit:                 unit,
		Type:                 t,
		Category:             cat,
		Default:              def,
		SettablePerMesh:      flags&perMesh != 0,
		SettablePerMeshgroup: flags&perMeshgroup != 0,
		LimitToExtruder:      -1,
	}
}

func enumSetting(key, label, cat, def string, options []string, flags applicability) model.SettingDescriptor {
	d := setting(key, label, cat, model.SettingTypeEnum, "", def, flags)
	d.Options = options
	return d
}

func extruderSetting(key, label, cat string) model.SettingDescriptor {
	d := setting(key, label, cat, model.SettingTypeExtruder, "", "0", perMesh|perMeshgroup)
	d.SettablePerExtruder = true
	d.LimitToExtruder = 0
	return d
}
