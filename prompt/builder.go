// Package prompt renders the character-state context block the
// surrounding system appends to its parser prompts, and enforces a
// token budget on oversized history text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"

	"nyx-engine/models"
)

const fallbackEncoding = "cl100k_base"

// Builder renders prompt context and counts/trims tokens for one model.
// The tokenizer encoding loads lazily on first use, so pure rendering
// never touches encoding data.
type Builder struct {
	model string
	log   *zap.Logger
	enc   *tiktoken.Tiktoken
}

// NewBuilder creates a Builder for the given model name.
func NewBuilder(model string, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{model: model, log: log}
}

// StateContext renders the character-state block appended to parser
// system prompts. Field order is fixed; empty fields stay present so
// downstream prompts keep a stable shape.
func (b *Builder) StateContext(state models.CharacterState) string {
	var sb strings.Builder
	sb.WriteString("CURRENT CHARACTER STATE:\n")
	sb.WriteString("appearance: " + state.Appearance + "\n")
	sb.WriteString("mood: " + state.Mood + "\n")
	sb.WriteString("clothing: " + state.Clothing + "\n")
	sb.WriteString("location: " + state.Location + "\n")
	return sb.String()
}

// CountTokens returns the token count of the text under the builder's
// encoding.
func (b *Builder) CountTokens(text string) (int, error) {
	enc, err := b.encoding()
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// TrimToBudget truncates the text to at most maxTokens tokens, keeping
// the tail: the most recent history is the most relevant context.
func (b *Builder) TrimToBudget(text string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		return "", nil
	}
	enc, err := b.encoding()
	if err != nil {
		return "", err
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text, nil
	}
	trimmed := enc.Decode(tokens[len(tokens)-maxTokens:])
	b.log.Debug("history trimmed to token budget",
		zap.Int("tokens", len(tokens)), zap.Int("budget", maxTokens))
	return trimmed, nil
}

// encoding resolves the model's encoding, falling back to cl100k_base
// for model names tiktoken does not know.
func (b *Builder) encoding() (*tiktoken.Tiktoken, error) {
	if b.enc != nil {
		return b.enc, nil
	}
	enc, err := tiktoken.EncodingForModel(b.model)
	if err != nil {
		b.log.Warn("no tokenizer encoding for model, falling back",
			zap.String("model", b.model), zap.String("encoding", fallbackEncoding), zap.Error(err))
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("failed to load fallback encoding: %w", err)
		}
	}
	b.enc = enc
	return enc, nil
}
