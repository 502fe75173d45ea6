package models

// ParsedResponse is the structured record extracted from one raw
// narrative response. MainText keeps the exact narrative phrasing with
// recognized tag delimiters excised and [[name]] markers in their
// place; list fields preserve first-to-last appearance order.
type ParsedResponse struct {
	MainText   string   `json:"main_text"`
	Mood       *string  `json:"mood"`
	Location   *string  `json:"location,omitempty"`
	Thoughts   []string `json:"thoughts"`
	Appearance []string `json:"appearance"`
	Clothing   []string `json:"clothing"`
	Moments    []string `json:"moments,omitempty"`
	Secrets    []string `json:"secrets,omitempty"`
	Images     []string `json:"images"`
}

// NewParsedResponse returns a record with all list fields allocated,
// so the wire payload serializes them as [] rather than null.
func NewParsedResponse() *ParsedResponse {
	return &ParsedResponse{
		Thoughts:   []string{},
		Appearance: []string{},
		Clothing:   []string{},
		Moments:    []string{},
		Secrets:    []string{},
		Images:     []string{},
	}
}

// CharacterState is the caller-owned character context threaded into
// parser prompt construction between turns. The engine never persists it.
type CharacterState struct {
	Mood           string `json:"mood"`
	Appearance     string `json:"appearance"`
	Clothing       string `json:"clothing"`
	Location       string `json:"location"`
	CurrentThought string `json:"current_thought,omitempty"`
}
