package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyx-engine/models"
	"nyx-engine/parser"
)

func TestParse_ExtractsAllFields(t *testing.T) {
	p := parser.New(nil, nil)
	input := "She smiles. <mood>playful</mood><thought>I wonder.</thought>" +
		"<clothing>red dress</clothing><image>her by the window</image>"

	resp := p.Parse(input)

	require.NotNil(t, resp.Mood)
	assert.Equal(t, "playful", *resp.Mood)
	assert.Equal(t, []string{"I wonder."}, resp.Thoughts)
	assert.Equal(t, []string{"red dress"}, resp.Clothing)
	assert.Equal(t, []string{"her by the window"}, resp.Images)
	assert.Equal(t, "She smiles. [[mood]]playful[[thought]]I wonder.[[clothing]]red dress[[image]]her by the window", resp.MainText)
}

func TestParse_RoundTripReconstruction(t *testing.T) {
	p := parser.New(nil, nil)
	pre, mood, mid, thought, post := "She leans in. ", "playful", " A pause. ", "What now?", " The end."
	input := pre + "<mood>" + mood + "</mood>" + mid + "<thought>" + thought + "</thought>" + post

	resp := p.Parse(input)

	want := pre + "[[mood]]" + mood + mid + "[[thought]]" + thought + post
	require.Equal(t, want, resp.MainText)

	// Swapping the markers back for delimiters recovers the original
	// byte for byte: nothing else was touched.
	rebuilt := strings.Replace(resp.MainText, "[[mood]]"+mood, "<mood>"+mood+"</mood>", 1)
	rebuilt = strings.Replace(rebuilt, "[[thought]]"+thought, "<thought>"+thought+"</thought>", 1)
	assert.Equal(t, input, rebuilt)
}

func TestParse_MoodLastWins(t *testing.T) {
	p := parser.New(nil, nil)

	resp := p.Parse("<mood>happy</mood> then <mood>sad</mood>")

	require.NotNil(t, resp.Mood)
	assert.Equal(t, "sad", *resp.Mood)
}

func TestParse_LocationLastWins(t *testing.T) {
	p := parser.New(nil, nil)

	resp := p.Parse("<location>the bar</location> she moves <location>her bedroom</location>")

	require.NotNil(t, resp.Location)
	assert.Equal(t, "her bedroom", *resp.Location)
	assert.Equal(t, "[[location]]the bar she moves [[location]]her bedroom", resp.MainText)
}

func TestParse_ListFieldsAccumulateInOrder(t *testing.T) {
	p := parser.New(nil, nil)

	resp := p.Parse("<thought>first</thought> mid <thoughts>second</thoughts>")

	assert.Equal(t, []string{"first", "second"}, resp.Thoughts)
}

func TestParse_UniversalCloseClosesMostRecent(t *testing.T) {
	p := parser.New(nil, nil)
	input := "<mood>calm</><thought>hmm</>"

	resp := p.Parse(input)

	require.NotNil(t, resp.Mood)
	assert.Equal(t, "calm", *resp.Mood)
	assert.Equal(t, []string{"hmm"}, resp.Thoughts)

	spans := p.Spans(input)
	require.Len(t, spans, 2)
	assert.Equal(t, "mood", spans[0].Name)
	assert.Equal(t, models.CloseUniversal, spans[0].CloseStyle)
	assert.Equal(t, "thought", spans[1].Name)
	assert.Equal(t, models.CloseUniversal, spans[1].CloseStyle)
}

func TestParse_UniversalThenExplicitClose(t *testing.T) {
	p := parser.New(nil, nil)
	input := "<thought>a</> and <secret>b</secret>"

	resp := p.Parse(input)

	assert.Equal(t, []string{"a"}, resp.Thoughts)
	assert.Equal(t, []string{"b"}, resp.Secrets)

	spans := p.Spans(input)
	require.Len(t, spans, 2)
	assert.Equal(t, models.CloseUniversal, spans[0].CloseStyle)
	assert.Equal(t, models.CloseExplicit, spans[1].CloseStyle)
}

func TestParse_MismatchedCloseStaysLiteral(t *testing.T) {
	p := parser.New(nil, nil)
	input := "plain text </secret> more"

	resp := p.Parse(input)

	assert.Empty(t, resp.Secrets)
	assert.Equal(t, input, resp.MainText, "an unmatched close is narrative text, not markup")
}

func TestParse_UnclosedTagRunsToEnd(t *testing.T) {
	p := parser.New(nil, nil)
	input := "story <mood>wistful"

	resp := p.Parse(input)

	require.NotNil(t, resp.Mood)
	assert.Equal(t, "wistful", *resp.Mood)
	assert.Equal(t, "story [[mood]]wistful", resp.MainText)

	spans := p.Spans(input)
	require.Len(t, spans, 1)
	assert.Equal(t, models.CloseUnclosed, spans[0].CloseStyle)
}

func TestParse_NestedTags(t *testing.T) {
	p := parser.New(nil, nil)

	resp := p.Parse("<thought>a <secret>b</secret> c</thought>")

	assert.Equal(t, []string{"a <secret>b</secret> c"}, resp.Thoughts,
		"outer content keeps the inner markup verbatim")
	assert.Equal(t, []string{"b"}, resp.Secrets)
	assert.Equal(t, "[[thought]]a [[secret]]b c", resp.MainText)
}

func TestParse_UnrecognizedTagKeptVerbatim(t *testing.T) {
	p := parser.New(nil, nil)
	input := "before <foo>bar</foo> after"

	resp := p.Parse(input)

	assert.Nil(t, resp.Mood)
	assert.Empty(t, resp.Thoughts)
	assert.Equal(t, input, resp.MainText)
}

func TestParse_BracketMarkers(t *testing.T) {
	p := parser.New(nil, nil)
	input := "[[mood]]flirtatious\n[[clothing]]corset.\n[[moment]]remember this."

	resp := p.Parse(input)

	require.NotNil(t, resp.Mood)
	assert.Equal(t, "flirtatious", *resp.Mood)
	assert.Equal(t, []string{"corset."}, resp.Clothing)
	assert.Equal(t, []string{"remember this."}, resp.Moments)
	assert.Equal(t, input, resp.MainText, "bracket markers are already display form")
}

func TestParse_MainTextIsStable(t *testing.T) {
	// The display form is a fixed point: parsing it again changes nothing.
	p := parser.New(nil, nil)
	inputs := []string{
		"She smiles. <mood>playful</mood><thought>I wonder.</thought>",
		"[[mood]]flirtatious\n[[clothing]]corset.",
		"<thought>a</> and <secret>b</secret>",
		"no markup at all",
	}

	for _, input := range inputs {
		first := p.Parse(input)
		second := p.Parse(first.MainText)
		assert.Equal(t, first.MainText, second.MainText, "input: %q", input)
	}
}

func TestParse_DisplayFormFieldsStable(t *testing.T) {
	// Inputs already in display form re-extract identically.
	p := parser.New(nil, nil)
	input := "[[mood]]flirtatious\n[[clothing]]corset."

	first := p.Parse(input)
	second := p.Parse(first.MainText)

	assert.Equal(t, first.Mood, second.Mood)
	assert.Equal(t, first.Clothing, second.Clothing)
	assert.Equal(t, first.MainText, second.MainText)
}

func TestParse_EmptyContentSkipped(t *testing.T) {
	p := parser.New(nil, nil)

	resp := p.Parse("<mood></mood>ok <thought>   </thought>")

	assert.Nil(t, resp.Mood)
	assert.Empty(t, resp.Thoughts)
	assert.Equal(t, "[[mood]]ok [[thought]]   ", resp.MainText,
		"delimiters go, literal text stays byte for byte")
}

func TestParse_PlainTextUntouched(t *testing.T) {
	p := parser.New(nil, nil)
	input := "She leans closer, whispering something only you can hear."

	resp := p.Parse(input)

	assert.Equal(t, input, resp.MainText)
	assert.Nil(t, resp.Mood)
	assert.NotNil(t, resp.Thoughts, "list fields serialize as arrays, never null")
	assert.Empty(t, resp.Thoughts)
}
