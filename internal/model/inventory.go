package model

import (
	"math"

	"github.com/google/uuid"
)

// FilamentSpool represents one spool of filament in the user's inventory.
type FilamentSpool struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Material       string  `json:"material"`  // Material preset name (PLA, PETG, ...)
	ColorHex       string  `json:"color_hex"` // "#RRGGBB"
	DiameterMM     float64 `json:"diameter_mm"`
	RemainingGrams float64 `json:"remaining_grams"`
	PricePerKg     float64 `json:"price_per_kg"`
}

// NewFilamentSpool creates a new spool with a generated ID.
func NewFilamentSpool(name, material, colorHex string, diameter, grams, pricePerKg float64) FilamentSpool {
	return FilamentSpool{
		ID:             uuid.New().String()[:8],
		Name:           name,
		Material:       material,
		ColorHex:       colorHex,
		DiameterMM:     diameter,
		RemainingGrams: grams,
		PricePerKg:     pricePerKg,
	}
}

// ConsumeGrams subtracts used material, clamping at zero.
func (s *FilamentSpool) ConsumeGrams(grams float64) {
	s.RemainingGrams -= grams
	if s.RemainingGrams < 0 {
		s.RemainingGrams = 0
	}
}

// RemainingLengthMM converts the remaining mass to filament length using the
// material density and the spool's filament diameter.
func (s FilamentSpool) RemainingLengthMM() float64 {
	preset := GetMaterialPreset(s.Material)
	if preset.DensityGramsPerCm3 <= 0 || s.DiameterMM <= 0 {
		return 0
	}
	// grams -> cubic mm -> length through the filament cross-section
	cubicMM := s.RemainingGrams / preset.DensityGramsPerCm3 * 1000.0
	crossSection := math.Pi * (s.DiameterMM / 2) * (s.DiameterMM / 2)
	return cubicMM / crossSection
}

// LowSpools returns the spools with less material than thresholdGrams.
func LowSpools(spools []FilamentSpool, thresholdGrams float64) []FilamentSpool {
	var low []FilamentSpool
	for _, s := range spools {
		if s.RemainingGrams < thresholdGrams {
			low = append(low, s)
		}
	}
	return low
}

// MaterialPreset holds per-material defaults used for estimates and for
// seeding material settings on new machines.
type MaterialPreset struct {
	Name               string  `json:"name"`
	PrintTemp          float64 `json:"print_temp"`           // °C
	BedTemp            float64 `json:"bed_temp"`             // °C
	DensityGramsPerCm3 float64 `json:"density_grams_per_cm3"`
	DefaultPricePerKg  float64 `json:"default_price_per_kg"`
}

// Built-in material presets.
var MaterialPresets = []MaterialPreset{
	{Name: "PLA", PrintTemp: 205, BedTemp: 60, DensityGramsPerCm3: 1.24, DefaultPricePerKg: 20},
	{Name: "PETG", PrintTemp: 235, BedTemp: 80, DensityGramsPerCm3: 1.27, DefaultPricePerKg: 24},
	{Name: "ABS", PrintTemp: 245, BedTemp: 100, DensityGramsPerCm3: 1.04, DefaultPricePerKg: 22},
	{Name: "TPU", PrintTemp: 225, BedTemp: 50, DensityGramsPerCm3: 1.21, DefaultPricePerKg: 35},
}

// GetMaterialPreset returns a preset by name, or the PLA preset if not found.
func GetMaterialPreset(name string) MaterialPreset {
	for _, p := range MaterialPresets {
		if p.Name == name {
			return p
		}
	}
	return MaterialPresets[0]
}

// GetMaterialNames returns the names of all built-in material presets.
func GetMaterialNames() []string {
	var names []string
	for _, p := range MaterialPresets {
		names = append(names, p.Name)
	}
	return names
}
