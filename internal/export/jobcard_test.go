package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrintPrep/internal/model"
	"github.com/piwi3910/PrintPrep/internal/settings"
)

func knownSettings() map[string]model.SettingDescriptor {
	known := map[string]model.SettingDescriptor{}
	for _, d := range settings.DefaultDefinitions() {
		known[d.Key] = d
	}
	return known
}

func cardProject() model.Project {
	p := model.NewProject()
	obj := model.NewSceneObject("bracket", 40, 30, 20)
	obj.MeshType = model.MeshTypeSupport
	p.Objects = append(p.Objects, obj)
	p.Overrides[obj.ID] = map[string]string{
		"support_angle":       "60",
		"support_infill_rate": "15",
		model.KeySupportMesh:  "true",
		model.KeyCuttingMesh:  "false",
	}
	return p
}

func TestBuildObjectCards_SkipsMarkerKeys(t *testing.T) {
	cards := BuildObjectCards(cardProject(), knownSettings())

	require.Len(t, cards, 1)
	require.Len(t, cards[0].Overrides, 2)
	for _, entry := range cards[0].Overrides {
		assert.NotContains(t, model.MeshTypeKeys(), entry.Key)
	}
}

func TestBuildObjectCards_SortsAndLabelsOverrides(t *testing.T) {
	cards := BuildObjectCards(cardProject(), knownSettings())

	require.Len(t, cards, 1)
	overrides := cards[0].Overrides
	require.Len(t, overrides, 2)
	assert.Equal(t, "support_angle", overrides[0].Key)
	assert.Equal(t, "Support Overhang Angle", overrides[0].Label)
	assert.Equal(t, "°", overrides[0].Unit)
	assert.Equal(t, "support_infill_rate", overrides[1].Key)
}

func TestBuildObjectCards_UnknownKeyFallsBackToKeyAsLabel(t *testing.T) {
	p := model.NewProject()
	obj := model.NewSceneObject("cube", 10, 10, 10)
	p.Objects = append(p.Objects, obj)
	p.Overrides[obj.ID] = map[string]string{"mystery_setting": "7"}

	cards := BuildObjectCards(p, knownSettings())

	require.Len(t, cards, 1)
	require.Len(t, cards[0].Overrides, 1)
	assert.Equal(t, "mystery_setting", cards[0].Overrides[0].Label)
}

func TestExportJobCard_WritesPDF(t *testing.T) {
	p := cardProject()
	// A second object without overrides exercises the empty-table path
	plain := model.NewSceneObject("plain", 20, 20, 20)
	p.Objects = append(p.Objects, plain)

	known := knownSettings()
	cards := BuildObjectCards(p, known)
	machine := model.GetMachine(p.MachineID)
	est := model.CalculatePrintEstimate(p.Objects, 20, model.GetMaterialPreset("PLA"), 1000, 1.75)

	path := filepath.Join(t.TempDir(), "jobcard.pdf")
	err := ExportJobCard(path, p, machine, cards, est)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000), "PDF should have real content")
}

func TestExportJobCard_FailsWithoutObjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	err := ExportJobCard(path, model.NewProject(), model.Machines[0], nil, model.PrintEstimate{})
	assert.Error(t, err)
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", formatMinutes(45))
	assert.Equal(t, "2h 05m", formatMinutes(125))
	assert.Equal(t, "0m", formatMinutes(0.4))
}
