// Package schemas holds the two fixed output contracts of the engine
// and their validation. Both schemas are closed (additionalProperties
// false); a payload failing validation is a SchemaViolation, the only
// fatal condition the engine surfaces.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"nyx-engine/models"
)

const responseSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "parsed_response",
  "type": "object",
  "additionalProperties": false,
  "required": ["main_text", "thoughts", "appearance", "clothing", "images"],
  "properties": {
    "mood": {"type": ["string", "null"]},
    "thoughts": {"type": "array", "items": {"type": "string"}},
    "appearance": {"type": "array", "items": {"type": "string"}},
    "clothing": {"type": "array", "items": {"type": "string"}},
    "images": {"type": "array", "items": {"type": "string"}},
    "main_text": {"type": "string"}
  }
}`

const frameSetSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "frame_set",
  "type": "object",
  "additionalProperties": false,
  "required": ["images"],
  "properties": {
    "images": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["prompt", "original_text", "orientation", "frame"],
        "properties": {
          "prompt": {"type": "string"},
          "original_text": {"type": "string"},
          "orientation": {"enum": ["square", "portrait", "landscape"]},
          "frame": {"type": "integer", "minimum": 1}
        }
      }
    }
  }
}`

// ResponsePayload is the wire form of a ParsedResponse. Moments and
// secrets stay on the in-process record; the closed schema admits only
// the fields below.
type ResponsePayload struct {
	Mood       *string  `json:"mood"`
	Thoughts   []string `json:"thoughts"`
	Appearance []string `json:"appearance"`
	Clothing   []string `json:"clothing"`
	Images     []string `json:"images"`
	MainText   string   `json:"main_text"`
}

// FrameRecord is one element of the frame-set payload.
type FrameRecord struct {
	Prompt       string `json:"prompt"`
	OriginalText string `json:"original_text"`
	Orientation  string `json:"orientation"`
	Frame        int    `json:"frame"`
}

// FrameSetPayload is the wire form of a frame sequence.
type FrameSetPayload struct {
	Images []FrameRecord `json:"images"`
}

// BuildResponsePayload projects the record onto the wire schema,
// guaranteeing list fields serialize as arrays, never null.
func BuildResponsePayload(resp *models.ParsedResponse) ResponsePayload {
	return ResponsePayload{
		Mood:       resp.Mood,
		Thoughts:   emptyIfNil(resp.Thoughts),
		Appearance: emptyIfNil(resp.Appearance),
		Clothing:   emptyIfNil(resp.Clothing),
		Images:     emptyIfNil(resp.Images),
		MainText:   resp.MainText,
	}
}

// BuildFrameSet projects frames onto the wire schema. The prompt string
// is the ordered tag set joined with commas, the emphasized tag
// parenthesized in place.
func BuildFrameSet(frames []models.Frame) FrameSetPayload {
	records := make([]FrameRecord, 0, len(frames))
	for _, frame := range frames {
		records = append(records, FrameRecord{
			Prompt:       RenderPrompt(frame),
			OriginalText: frame.OriginalText,
			Orientation:  string(frame.Orientation),
			Frame:        frame.Index,
		})
	}
	return FrameSetPayload{Images: records}
}

// RenderPrompt joins the frame's prompt tags into one prompt string,
// wrapping the emphasized tag, if any, in parentheses.
func RenderPrompt(frame models.Frame) string {
	parts := make([]string, 0, len(frame.PromptTags))
	for _, tag := range frame.PromptTags {
		if frame.EmphasizedTag != nil && tag == *frame.EmphasizedTag {
			parts = append(parts, "("+tag+")")
			continue
		}
		parts = append(parts, tag)
	}
	return strings.Join(parts, ", ")
}

// ValidateResponse checks the payload against the response schema.
func ValidateResponse(payload ResponsePayload) error {
	return validate(responseSchemaJSON, payload)
}

// ValidateFrameSet checks the payload against the frame-set schema.
func ValidateFrameSet(payload FrameSetPayload) error {
	return validate(frameSetSchemaJSON, payload)
}

func validate(schemaJSON string, payload interface{}) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrSchemaViolation, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%w: %s", models.ErrSchemaViolation, strings.Join(msgs, "; "))
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
