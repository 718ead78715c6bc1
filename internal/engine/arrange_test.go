package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrintPrep/internal/model"
)

func testMachine() model.Machine {
	return model.Machine{
		ID:            "test",
		Name:          "Test Printer",
		PlateWidth:    200,
		PlateDepth:    200,
		PlateHeight:   200,
		PrintSequence: model.SequenceAllAtOnce,
		HeadClearance: 40,
		GantryHeight:  30,
	}
}

func TestArrange_SingleObjectAtOrigin(t *testing.T) {
	a := New(testMachine())
	objects := []model.SceneObject{model.NewSceneObject("cube", 50, 50, 50)}

	result := a.Arrange(objects)

	require.Len(t, result.Placed, 1)
	assert.Empty(t, result.Unplaced)
	assert.Equal(t, 0.0, result.Placed[0].X)
	assert.Equal(t, 0.0, result.Placed[0].Y)
}

func TestArrange_LargestFootprintFirst(t *testing.T) {
	a := New(testMachine())
	objects := []model.SceneObject{
		model.NewSceneObject("small", 20, 20, 10),
		model.NewSceneObject("large", 80, 80, 10),
	}

	result := a.Arrange(objects)

	require.Len(t, result.Placed, 2)
	assert.Equal(t, "large", result.Placed[0].Object.Name)
	assert.Equal(t, "small", result.Placed[1].Object.Name)
}

func TestArrange_ObjectsSeparatedBySpacing(t *testing.T) {
	a := New(testMachine())
	objects := []model.SceneObject{
		model.NewSceneObject("a", 50, 50, 10),
		model.NewSceneObject("b", 50, 50, 10),
	}

	result := a.Arrange(objects)

	require.Len(t, result.Placed, 2)
	// Same row, second object offset by width + spacing
	assert.Equal(t, 55.0, result.Placed[1].X)
	assert.Equal(t, result.Placed[0].Y, result.Placed[1].Y)
}

func TestArrange_WrapsToNewRow(t *testing.T) {
	a := New(testMachine())
	objects := []model.SceneObject{
		model.NewSceneObject("a", 90, 40, 10),
		model.NewSceneObject("b", 90, 40, 10),
		model.NewSceneObject("c", 90, 40, 10),
	}

	result := a.Arrange(objects)

	require.Len(t, result.Placed, 3)
	// Two fit the first row (90+5+90 = 185 <= 200), the third wraps
	assert.Equal(t, 0.0, result.Placed[2].X)
	assert.Equal(t, 45.0, result.Placed[2].Y)
}

func TestArrange_TooBigForPlateIsUnplaced(t *testing.T) {
	a := New(testMachine())
	objects := []model.SceneObject{
		model.NewSceneObject("fits", 50, 50, 10),
		model.NewSceneObject("oversized", 250, 50, 10),
	}

	result := a.Arrange(objects)

	assert.Len(t, result.Placed, 1)
	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, "oversized", result.Unplaced[0].Name)
}

func TestArrange_PlateFullIsUnplaced(t *testing.T) {
	a := New(testMachine())
	var objects []model.SceneObject
	for i := 0; i < 10; i++ {
		objects = append(objects, model.NewSceneObject("block", 95, 95, 10))
	}

	result := a.Arrange(objects)

	// 2 per row, 2 rows of 95 + spacing fit in 200mm depth
	assert.Len(t, result.Placed, 4)
	assert.Len(t, result.Unplaced, 6)
}

func TestArrange_OneAtATime_UsesHeadClearance(t *testing.T) {
	m := testMachine()
	m.PrintSequence = model.SequenceOneAtATime
	a := New(m)
	objects := []model.SceneObject{
		model.NewSceneObject("a", 50, 50, 10),
		model.NewSceneObject("b", 50, 50, 10),
	}

	result := a.Arrange(objects)

	require.Len(t, result.Placed, 2)
	// Gap grows from spacing (5) to the head clearance radius (40)
	assert.Equal(t, 90.0, result.Placed[1].X)
}

func TestArrange_OneAtATime_RejectsObjectsAboveGantry(t *testing.T) {
	m := testMachine()
	m.PrintSequence = model.SequenceOneAtATime
	a := New(m)
	objects := []model.SceneObject{
		model.NewSceneObject("short", 50, 50, 20),
		model.NewSceneObject("tall", 50, 50, 80),
	}

	result := a.Arrange(objects)

	assert.Len(t, result.Placed, 1)
	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, "tall", result.Unplaced[0].Name)
}

func TestArrange_OneAtATime_TallSingleObjectAllowed(t *testing.T) {
	m := testMachine()
	m.PrintSequence = model.SequenceOneAtATime
	a := New(m)
	objects := []model.SceneObject{model.NewSceneObject("tall", 50, 50, 150)}

	// With nothing else on the plate there is no collision risk
	result := a.Arrange(objects)
	assert.Len(t, result.Placed, 1)
	assert.Empty(t, result.Unplaced)
}

func TestArrange_OneAtATime_FillsBackToFront(t *testing.T) {
	m := testMachine()
	m.PrintSequence = model.SequenceOneAtATime
	a := New(m)
	objects := []model.SceneObject{model.NewSceneObject("a", 50, 50, 10)}

	result := a.Arrange(objects)

	require.Len(t, result.Placed, 1)
	// First object goes to the back edge of the plate
	assert.Equal(t, 150.0, result.Placed[0].Y)
}

func TestArrangeResult_ApplyWritesPositionsById(t *testing.T) {
	a := New(testMachine())
	objects := []model.SceneObject{
		model.NewSceneObject("a", 50, 50, 10),
		model.NewSceneObject("b", 50, 50, 10),
	}

	result := a.Arrange(objects)
	updated := result.Apply(objects)

	require.Len(t, updated, 2)
	for _, obj := range updated {
		found := false
		for _, p := range result.Placed {
			if p.Object.ID == obj.ID {
				assert.Equal(t, p.X, obj.X)
				assert.Equal(t, p.Y, obj.Y)
				found = true
			}
		}
		assert.True(t, found, obj.Name)
	}
}

func TestPlateEfficiency(t *testing.T) {
	a := New(testMachine())
	objects := []model.SceneObject{model.NewSceneObject("cube", 100, 100, 10)}

	result := a.Arrange(objects)

	// 100x100 on a 200x200 plate covers 25%
	assert.InDelta(t, 25.0, result.PlateEfficiency(testMachine()), 0.001)
}
