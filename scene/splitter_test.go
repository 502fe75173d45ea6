package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyx-engine/scene"
)

func TestSplit_NoCuesSingleSegment(t *testing.T) {
	s := scene.NewSplitter(nil, nil)

	segments := s.Split("She stands by the window. She smiles softly.")

	require.Len(t, segments, 1)
	assert.Equal(t, "She stands by the window. She smiles softly.", segments[0])
}

func TestSplit_TransitionCueStartsNewSegment(t *testing.T) {
	s := scene.NewSplitter(nil, nil)

	segments := s.Split("She stands by the window. Then she kneels on the floor.")

	require.Len(t, segments, 2)
	assert.Equal(t, "She stands by the window.", segments[0])
	assert.Equal(t, "Then she kneels on the floor.", segments[1])
}

func TestSplit_CueMidSentenceDoesNotSplit(t *testing.T) {
	s := scene.NewSplitter(nil, nil)

	segments := s.Split("She was later seen smiling. She laughs quietly.")

	assert.Len(t, segments, 1)
}

func TestSplit_CueNeedsWordBoundary(t *testing.T) {
	s := scene.NewSplitter(nil, nil)

	// "Nowhere" starts with the cue "now" but is not a transition.
	segments := s.Split("She looks around. Nowhere feels safe.")

	assert.Len(t, segments, 1)
}

func TestSplit_ParagraphBreakAlwaysSplits(t *testing.T) {
	s := scene.NewSplitter(nil, nil)

	segments := s.Split("First scene here.\n\nSecond scene here.")

	require.Len(t, segments, 2)
	assert.Equal(t, "First scene here.", segments[0])
	assert.Equal(t, "Second scene here.", segments[1])
}

func TestSplit_WindowsLineEndings(t *testing.T) {
	s := scene.NewSplitter(nil, nil)

	segments := s.Split("First scene here.\r\n\r\nSecond scene here.")

	assert.Len(t, segments, 2)
}

func TestSplit_QuotedTransition(t *testing.T) {
	s := scene.NewSplitter(nil, nil)

	segments := s.Split(`"Hello." Then she turns away.`)

	require.Len(t, segments, 2)
	assert.Equal(t, `"Hello."`, segments[0])
	assert.Equal(t, "Then she turns away.", segments[1])
}

func TestSplit_DecimalPointDoesNotEndSentence(t *testing.T) {
	s := scene.NewSplitter(nil, nil)

	segments := s.Split("Version 2.0 looks good. Then it ships.")

	require.Len(t, segments, 2)
	assert.Equal(t, "Version 2.0 looks good.", segments[0])
}

func TestSplit_EmptyInput(t *testing.T) {
	s := scene.NewSplitter(nil, nil)

	assert.Empty(t, s.Split(""))
	assert.Empty(t, s.Split("   \n\n  \n "))
}
