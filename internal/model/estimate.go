package model

import "math"

// PrintEstimate holds the results of a material and cost calculation for
// the objects currently on the plate.
type PrintEstimate struct {
	ModelCubicMM    float64 `json:"model_cubic_mm"`    // Material volume for normal meshes
	SupportCubicMM  float64 `json:"support_cubic_mm"`  // Material volume for support meshes
	TotalGrams      float64 `json:"total_grams"`       // Total filament mass
	TotalLengthMM   float64 `json:"total_length_mm"`   // Filament length at the given diameter
	EstimatedCost   float64 `json:"estimated_cost"`    // Cost at the material's price per kg
	SpoolsNeeded    int     `json:"spools_needed"`     // Full spools needed (ceiling)
	PrintTimeMin    float64 `json:"print_time_min"`    // Rough print time in minutes
	ObjectCount     int     `json:"object_count"`      // Printed objects (normal + support meshes)
	ModifierCount   int     `json:"modifier_count"`    // Modifier and blocker meshes (no material)
}

// shellFraction is the assumed solid fraction of a bounding volume taken by
// walls, top and bottom layers. The remainder is filled at the infill rate.
const shellFraction = 0.15

// supportDensityFraction is the fill rate used for support meshes.
const supportDensityFraction = 0.20

// depositionCubicMMPerMin is a rough average volumetric flow for a 0.4mm
// nozzle, used for the print time estimate.
const depositionCubicMMPerMin = 300.0

// CalculatePrintEstimate computes filament usage, cost, and a rough print
// time for the given objects. Modifier meshes (Infill, Cutting) and support
// blockers consume no material; support meshes are filled at support density.
func CalculatePrintEstimate(objects []SceneObject, infillPercent float64, material MaterialPreset, spoolGrams, filamentDiameter float64) PrintEstimate {
	est := PrintEstimate{}

	infillFraction := infillPercent / 100.0
	if infillFraction < 0 {
		infillFraction = 0
	}
	if infillFraction > 1 {
		infillFraction = 1
	}

	for _, obj := range objects {
		switch obj.MeshType {
		case MeshTypeNormal:
			solid := shellFraction + (1.0-shellFraction)*infillFraction
			est.ModelCubicMM += obj.Volume() * solid
			est.ObjectCount++
		case MeshTypeSupport:
			est.SupportCubicMM += obj.Volume() * supportDensityFraction
			est.ObjectCount++
		default:
			est.ModifierCount++
		}
	}

	totalCubicMM := est.ModelCubicMM + est.SupportCubicMM
	if material.DensityGramsPerCm3 > 0 {
		est.TotalGrams = totalCubicMM / 1000.0 * material.DensityGramsPerCm3
	}
	if filamentDiameter > 0 {
		crossSection := math.Pi * (filamentDiameter / 2) * (filamentDiameter / 2)
		est.TotalLengthMM = totalCubicMM / crossSection
	}
	est.EstimatedCost = est.TotalGrams / 1000.0 * material.DefaultPricePerKg
	if spoolGrams > 0 && est.TotalGrams > 0 {
		est.SpoolsNeeded = int(math.Ceil(est.TotalGrams / spoolGrams))
	}
	est.PrintTimeMin = totalCubicMM / depositionCubicMMPerMin

	return est
}
