package scene

import (
	"strings"

	"go.uber.org/zap"

	"nyx-engine/config"
)

// Splitter partitions one scene-description block into ordered frame
// segments. Splitting is conservative: a segment boundary needs a
// sentence boundary plus an explicit transition cue, or a paragraph
// break. Under-splitting is always preferred over inventing
// transitions the text does not evidence.
type Splitter struct {
	cfg *config.Config
	log *zap.Logger
}

// NewSplitter creates a Splitter. Nil arguments get the usual defaults.
func NewSplitter(cfg *config.Config, log *zap.Logger) *Splitter {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Splitter{cfg: cfg, log: log}
}

// Split returns the ordered raw segments of the block, each becoming
// one candidate frame. Empty input yields no segments.
func (s *Splitter) Split(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var segments []string
	for _, para := range splitParagraphs(text) {
		sentences := splitSentences(para)
		if len(sentences) == 0 {
			continue
		}
		current := make([]string, 0, len(sentences))
		for k, sent := range sentences {
			if k > 0 && s.isTransition(sent) {
				segments = append(segments, strings.Join(current, " "))
				current = make([]string, 0, len(sentences)-k)
			}
			current = append(current, sent)
		}
		if len(current) > 0 {
			segments = append(segments, strings.Join(current, " "))
		}
	}

	s.log.Debug("scene block split", zap.Int("segments", len(segments)))
	return segments
}

// isTransition reports whether the sentence starts with a configured
// scene-transition cue. A cue mid-sentence never splits.
func (s *Splitter) isTransition(sentence string) bool {
	lower := strings.ToLower(strings.TrimLeft(sentence, " \t\"'("))
	for _, cue := range s.cfg.Scene.TransitionCues {
		if lower == cue {
			return true
		}
		if strings.HasPrefix(lower, cue) {
			switch lower[len(cue)] {
			case ' ', ',', ':':
				return true
			}
		}
	}
	return false
}

// splitParagraphs splits on blank lines; a paragraph break is always a
// segment boundary.
func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitSentences splits text at terminal punctuation followed by
// whitespace. Trailing quote characters stay with their sentence;
// mid-token punctuation (decimals, ellipsis runs) does not split.
func splitSentences(text string) []string {
	var out []string
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if c == '.' || c == '!' || c == '?' {
			j := i + 1
			for j < len(text) && (text[j] == '.' || text[j] == '!' || text[j] == '?' || text[j] == '"' || text[j] == '\'') {
				j++
			}
			if j >= len(text) || text[j] == ' ' || text[j] == '\n' || text[j] == '\t' {
				if sent := strings.TrimSpace(text[start:j]); sent != "" {
					out = append(out, sent)
				}
				start = j
				i = j
				continue
			}
		}
		i++
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}
