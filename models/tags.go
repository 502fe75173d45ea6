package models

import "strings"

// FieldKind identifies the output field a recognized tag maps to.
// Unknown names fall through to FieldUnknown and are kept as literal text.
type FieldKind int

const (
	FieldUnknown FieldKind = iota
	FieldMood
	FieldThought
	FieldAppearance
	FieldClothing
	FieldSecret
	FieldMoment
	FieldImage
	FieldLocation
)

// String returns the canonical field name used in payloads and metrics labels.
func (k FieldKind) String() string {
	switch k {
	case FieldMood:
		return "mood"
	case FieldThought:
		return "thoughts"
	case FieldAppearance:
		return "appearance"
	case FieldClothing:
		return "clothing"
	case FieldSecret:
		return "secrets"
	case FieldMoment:
		return "moments"
	case FieldImage:
		return "images"
	case FieldLocation:
		return "location"
	default:
		return "unknown"
	}
}

// CloseStyle records how a tag span was terminated.
type CloseStyle int

const (
	// CloseExplicit - the span was closed by its own </name> token,
	// or is a bracket marker (implicitly closed at the next tag boundary).
	CloseExplicit CloseStyle = iota
	// CloseUniversal - the span was closed by the universal </> token.
	CloseUniversal
	// CloseUnclosed - the span was still open at end of input and was
	// closed there as a recovery, content running to the end.
	CloseUnclosed
)

// TagSyntax records which markup variant produced a span.
type TagSyntax int

const (
	SyntaxAngle   TagSyntax = iota // <name>...</name>, <name>...</>
	SyntaxBracket                  // [[name]]... up to the next tag boundary
)

// TagSpan is one recognized or candidate tag occurrence in the input.
// StartOffset/EndOffset delimit the raw content (delimiters excluded).
type TagSpan struct {
	Name        string
	RawContent  string
	StartOffset int
	EndOffset   int
	CloseStyle  CloseStyle
	Syntax      TagSyntax
}

// NormalizeTagName lowercases a tag name and strips stray bracket
// characters left over from malformed [[tag] / [tag]] markup.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(name), "[]"))
}
