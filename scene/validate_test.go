package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nyx-engine/models"
)

func goodFrame(index int) models.Frame {
	return models.Frame{
		Index:       index,
		PromptTags:  []string{"standing", "bedroom"},
		Orientation: models.OrientationPortrait,
	}
}

func TestValidateFrames(t *testing.T) {
	t.Run("valid sequence", func(t *testing.T) {
		assert.NoError(t, validateFrames([]models.Frame{goodFrame(1), goodFrame(2)}))
	})

	t.Run("index gap", func(t *testing.T) {
		err := validateFrames([]models.Frame{goodFrame(1), goodFrame(3)})
		assert.ErrorIs(t, err, models.ErrSchemaViolation)
	})

	t.Run("index not starting at one", func(t *testing.T) {
		err := validateFrames([]models.Frame{goodFrame(0)})
		assert.ErrorIs(t, err, models.ErrSchemaViolation)
	})

	t.Run("unknown orientation", func(t *testing.T) {
		frame := goodFrame(1)
		frame.Orientation = "panoramic"
		assert.ErrorIs(t, validateFrames([]models.Frame{frame}), models.ErrSchemaViolation)
	})

	t.Run("duplicate tags", func(t *testing.T) {
		frame := goodFrame(1)
		frame.PromptTags = []string{"standing", "standing"}
		assert.ErrorIs(t, validateFrames([]models.Frame{frame}), models.ErrSchemaViolation)
	})

	t.Run("emphasized tag outside the set", func(t *testing.T) {
		frame := goodFrame(1)
		frame.EmphasizedTag = models.StringPtr("kissing")
		assert.ErrorIs(t, validateFrames([]models.Frame{frame}), models.ErrSchemaViolation)
	})
}
