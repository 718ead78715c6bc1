package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultMachineID     string  `json:"default_machine_id"`
	DefaultPrintSequence string  `json:"default_print_sequence"`
	DefaultInfillPercent float64 `json:"default_infill_percent"`
	DefaultMaterial      string  `json:"default_material"`
	FilamentDiameter     float64 `json:"filament_diameter"`

	// Application preferences
	AutoSaveInterval  int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects    []string `json:"recent_projects"`
	Theme             string   `json:"theme"`               // "light", "dark", "system"
	LowSpoolThreshold float64  `json:"low_spool_threshold"` // grams
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultMachineID:     Machines[0].ID,
		DefaultPrintSequence: string(SequenceAllAtOnce),
		DefaultInfillPercent: 20,
		DefaultMaterial:      "PLA",
		FilamentDiameter:     1.75,
		AutoSaveInterval:     0,
		RecentProjects:       []string{},
		Theme:                "system",
		LowSpoolThreshold:    100,
	}
}

// ApplyToProject copies the default machine and sequencing preferences into a
// freshly created project.
func (c AppConfig) ApplyToProject(p *Project) {
	p.MachineID = c.DefaultMachineID
}
