package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nyx-engine/models"
)

func TestSceneState_WearRemove(t *testing.T) {
	var s models.SceneState

	s.Wear("corset")
	s.Wear("panties")
	s.Wear("corset") // no duplicates
	assert.Equal(t, []string{"corset", "panties"}, s.ClothingWorn)
	assert.True(t, s.Wearing("corset"))

	s.Remove("corset")
	assert.Equal(t, []string{"panties"}, s.ClothingWorn)
	assert.False(t, s.Wearing("corset"))

	s.Remove("hat") // removing an absent item is a no-op
	assert.Equal(t, []string{"panties"}, s.ClothingWorn)
}

func TestSceneState_CloneIsIndependent(t *testing.T) {
	orig := models.SceneState{
		ClothingWorn: []string{"dress"},
		NudityLevel:  models.NudityClothed,
	}

	clone := orig.Clone()
	clone.Wear("heels")
	clone.NudityLevel = models.NudityNude

	assert.Equal(t, []string{"dress"}, orig.ClothingWorn)
	assert.Equal(t, models.NudityClothed, orig.NudityLevel)
}

func TestOrientation_Valid(t *testing.T) {
	assert.True(t, models.OrientationLandscape.Valid())
	assert.True(t, models.OrientationPortrait.Valid())
	assert.True(t, models.OrientationSquare.Valid())
	assert.False(t, models.Orientation("panoramic").Valid())
	assert.False(t, models.Orientation("").Valid())
}
