package model

import (
	"math"
	"testing"
)

func pla() MaterialPreset {
	return GetMaterialPreset("PLA")
}

func TestEstimateSingleNormalObject(t *testing.T) {
	cube := NewSceneObject("cube", 10, 10, 10) // 1000 mm³

	est := CalculatePrintEstimate([]SceneObject{cube}, 20, pla(), 1000, 1.75)

	// 15% shell + 85% at 20% infill = 32% solid
	wantCubic := 1000 * 0.32
	if math.Abs(est.ModelCubicMM-wantCubic) > 0.001 {
		t.Errorf("expected %f mm³, got %f", wantCubic, est.ModelCubicMM)
	}
	if est.ObjectCount != 1 || est.ModifierCount != 0 {
		t.Errorf("unexpected counts: %d objects, %d modifiers", est.ObjectCount, est.ModifierCount)
	}
	if est.TotalGrams <= 0 || est.TotalLengthMM <= 0 || est.PrintTimeMin <= 0 {
		t.Error("mass, length, and time must all be positive")
	}
	if est.SpoolsNeeded != 1 {
		t.Errorf("expected 1 spool, got %d", est.SpoolsNeeded)
	}
}

func TestEstimateSupportMeshUsesSupportDensity(t *testing.T) {
	support := NewSceneObject("support", 10, 10, 10)
	support.MeshType = MeshTypeSupport

	est := CalculatePrintEstimate([]SceneObject{support}, 80, pla(), 1000, 1.75)

	// Support fills at its own density regardless of the infill setting
	if math.Abs(est.SupportCubicMM-200) > 0.001 {
		t.Errorf("expected 200 mm³ of support, got %f", est.SupportCubicMM)
	}
	if est.ModelCubicMM != 0 {
		t.Errorf("support mesh must not count as model volume, got %f", est.ModelCubicMM)
	}
}

func TestEstimateModifiersConsumeNoMaterial(t *testing.T) {
	var objects []SceneObject
	for _, mt := range []MeshType{MeshTypeCutting, MeshTypeInfill, MeshTypeAntiOverhang} {
		obj := NewSceneObject("mod", 50, 50, 50)
		obj.MeshType = mt
		objects = append(objects, obj)
	}

	est := CalculatePrintEstimate(objects, 20, pla(), 1000, 1.75)

	if est.TotalGrams != 0 {
		t.Errorf("modifiers must use no material, got %f g", est.TotalGrams)
	}
	if est.ModifierCount != 3 || est.ObjectCount != 0 {
		t.Errorf("unexpected counts: %d objects, %d modifiers", est.ObjectCount, est.ModifierCount)
	}
	if est.SpoolsNeeded != 0 {
		t.Errorf("expected 0 spools, got %d", est.SpoolsNeeded)
	}
}

func TestEstimateClampsInfillPercent(t *testing.T) {
	cube := NewSceneObject("cube", 10, 10, 10)

	over := CalculatePrintEstimate([]SceneObject{cube}, 150, pla(), 1000, 1.75)
	if math.Abs(over.ModelCubicMM-1000) > 0.001 {
		t.Errorf("over 100%% infill should clamp to solid, got %f", over.ModelCubicMM)
	}

	under := CalculatePrintEstimate([]SceneObject{cube}, -10, pla(), 1000, 1.75)
	if math.Abs(under.ModelCubicMM-150) > 0.001 {
		t.Errorf("negative infill should clamp to shell only, got %f", under.ModelCubicMM)
	}
}

func TestFilamentSpoolConsumeClampsAtZero(t *testing.T) {
	s := NewFilamentSpool("Spool", "PLA", "#FF0000", 1.75, 100, 20)

	s.ConsumeGrams(40)
	if s.RemainingGrams != 60 {
		t.Errorf("expected 60 g, got %f", s.RemainingGrams)
	}

	s.ConsumeGrams(500)
	if s.RemainingGrams != 0 {
		t.Errorf("expected clamp at 0, got %f", s.RemainingGrams)
	}
}

func TestLowSpools(t *testing.T) {
	spools := []FilamentSpool{
		NewFilamentSpool("Full", "PLA", "", 1.75, 900, 20),
		NewFilamentSpool("Low", "PLA", "", 1.75, 50, 20),
	}

	low := LowSpools(spools, 100)
	if len(low) != 1 || low[0].Name != "Low" {
		t.Errorf("expected only the low spool, got %v", low)
	}
}

func TestRemainingLengthMMPositiveForKnownMaterial(t *testing.T) {
	s := NewFilamentSpool("Spool", "PLA", "", 1.75, 1000, 20)
	if s.RemainingLengthMM() <= 0 {
		t.Error("expected positive remaining length")
	}

	s.DiameterMM = 0
	if s.RemainingLengthMM() != 0 {
		t.Error("zero diameter must yield zero length")
	}
}
