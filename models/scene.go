package models

import "github.com/google/uuid"

// Orientation is the framing classification assigned to each frame.
type Orientation string

const (
	OrientationLandscape Orientation = "landscape"
	OrientationPortrait  Orientation = "portrait"
	OrientationSquare    Orientation = "square"
)

// Valid reports whether the value is one of the three wire enum values.
func (o Orientation) Valid() bool {
	switch o {
	case OrientationLandscape, OrientationPortrait, OrientationSquare:
		return true
	}
	return false
}

// NudityLevel is derived from the worn garment set against the
// configured coverage table, never guessed forward.
type NudityLevel string

const (
	NudityClothed          NudityLevel = "clothed"
	NudityPartiallyExposed NudityLevel = "partially_exposed"
	NudityNude             NudityLevel = "nude"
)

// SceneState is the continuity record folded across a frame sequence.
// The tracker owns one mutable lineage; every frame receives a snapshot
// copy, never a shared reference.
type SceneState struct {
	ClothingWorn []string    `json:"clothing_worn"`
	NudityLevel  NudityLevel `json:"nudity_level"`
	Pose         string      `json:"pose"`
	Setting      string      `json:"setting"`
	Expression   string      `json:"expression"`
}

// Clone returns a deep copy safe to attach to a frame.
func (s SceneState) Clone() SceneState {
	out := s
	out.ClothingWorn = append([]string(nil), s.ClothingWorn...)
	return out
}

// Wearing reports whether the item is in the worn set.
func (s SceneState) Wearing(item string) bool {
	for _, worn := range s.ClothingWorn {
		if worn == item {
			return true
		}
	}
	return false
}

// Wear adds an item to the worn set, keeping it an ordered set.
func (s *SceneState) Wear(item string) {
	if s.Wearing(item) {
		return
	}
	s.ClothingWorn = append(s.ClothingWorn, item)
}

// Remove deletes an item from the worn set.
func (s *SceneState) Remove(item string) {
	kept := s.ClothingWorn[:0]
	for _, worn := range s.ClothingWorn {
		if worn != item {
			kept = append(kept, worn)
		}
	}
	s.ClothingWorn = kept
}

// Frame is one ordered visual-moment record derived from a scene segment.
type Frame struct {
	Index         int         `json:"frame"`
	PromptTags    []string    `json:"prompt_tags"`
	OriginalText  string      `json:"original_text"`
	Orientation   Orientation `json:"orientation"`
	EmphasizedTag *string     `json:"emphasized_tag,omitempty"`
	State         SceneState  `json:"state"`
}

// Sequence is the ordered frame list sharing one SceneState lineage.
// FinalState lets the caller thread continuity into the next request.
type Sequence struct {
	ID         uuid.UUID  `json:"id"`
	Frames     []Frame    `json:"frames"`
	FinalState SceneState `json:"final_state"`
}
