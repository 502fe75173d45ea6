package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nyx-engine/models"
)

func TestNormalizeTagName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mood", "mood"},
		{"Mood", "mood"},
		{"  MOOD  ", "mood"},
		{"[mood]", "mood"},
		{"[[mood]]", "mood"},
		{"mood]", "mood"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, models.NormalizeTagName(tt.in), "input %q", tt.in)
	}
}

func TestFieldKind_String(t *testing.T) {
	assert.Equal(t, "mood", models.FieldMood.String())
	assert.Equal(t, "thoughts", models.FieldThought.String())
	assert.Equal(t, "images", models.FieldImage.String())
	assert.Equal(t, "unknown", models.FieldUnknown.String())
}
