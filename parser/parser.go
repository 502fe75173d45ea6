package parser

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"nyx-engine/config"
	"nyx-engine/models"
)

// Parser extracts the structured response record from raw narrative
// text. It never fails on malformed markup: every anomaly has a defined
// local recovery, so Parse always returns a usable record.
type Parser struct {
	cfg *config.Config
	log *zap.Logger
}

// New creates a Parser. A nil cfg uses the compiled-in tables, a nil
// logger stays silent.
func New(cfg *config.Config, log *zap.Logger) *Parser {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{cfg: cfg, log: log}
}

// Parse tokenizes the text, resolves the tag stack, aggregates the
// recognized spans into fields and rebuilds the display text.
func (p *Parser) Parse(text string) *models.ParsedResponse {
	resp := models.NewParsedResponse()
	toks := Tokenize(text)
	res := p.resolve(text, toks)
	p.aggregate(res.spans, resp)
	resp.MainText = p.reconstruct(toks, res)

	p.log.Debug("response parsed",
		zap.Int("spans", len(res.spans)),
		zap.Int("thoughts", len(resp.Thoughts)),
		zap.Int("images", len(resp.Images)),
		zap.Bool("mood_set", resp.Mood != nil),
	)
	return resp
}

// Spans returns the resolved tag spans for the text in document order.
// Exposed for callers that need the raw extraction, e.g. diagnostics.
func (p *Parser) Spans(text string) []models.TagSpan {
	return p.resolve(text, Tokenize(text)).spans
}

// openEntry is one still-open tag on the parse stack.
type openEntry struct {
	name         string
	contentStart int
}

// bracketEntry is a pending [[name]] marker whose content runs until
// the next tag boundary or end of input.
type bracketEntry struct {
	name         string
	contentStart int
}

// resolution is the outcome of the stack pass: the spans plus the role
// every close token played, which the reconstructor needs to decide
// what stays literal.
type resolution struct {
	spans           []models.TagSpan
	matchedClose    map[int]bool
	closeRecognized map[int]bool
}

// resolve runs the open-tag stack over the token list. Rules:
//   - </name> closes the nearest open entry with that name; with no
//     match the token is literal text (never fabricate a close).
//   - </> always closes the most recently opened still-open tag.
//   - tags still open at end of input close there as CloseUnclosed.
//   - a bracket marker's content ends at the next tag token or EOF.
func (p *Parser) resolve(input string, toks []Token) *resolution {
	res := &resolution{
		matchedClose:    make(map[int]bool),
		closeRecognized: make(map[int]bool),
	}
	var stack []openEntry
	var pending *bracketEntry

	closePending := func(end int) {
		if pending == nil {
			return
		}
		res.spans = append(res.spans, models.TagSpan{
			Name:        pending.name,
			RawContent:  input[pending.contentStart:end],
			StartOffset: pending.contentStart,
			EndOffset:   end,
			CloseStyle:  models.CloseExplicit,
			Syntax:      models.SyntaxBracket,
		})
		pending = nil
	}

	for idx, tok := range toks {
		if tok.Kind == TokenText {
			continue
		}
		closePending(tok.Start)

		switch tok.Kind {
		case TokenBracket:
			pending = &bracketEntry{name: tok.Name, contentStart: tok.End}

		case TokenOpen:
			stack = append(stack, openEntry{name: tok.Name, contentStart: tok.End})

		case TokenClose:
			found := -1
			for k := len(stack) - 1; k >= 0; k-- {
				if stack[k].name == tok.Name {
					found = k
					break
				}
			}
			if found < 0 {
				// MismatchedClose recovery: the token stays literal text.
				tagRecoveriesTotal.WithLabelValues("mismatched_close").Inc()
				p.log.Debug("mismatched close kept as literal text",
					zap.String("tag", tok.Name), zap.Int("offset", tok.Start))
				continue
			}
			entry := stack[found]
			stack = append(stack[:found], stack[found+1:]...)
			res.spans = append(res.spans, models.TagSpan{
				Name:        entry.name,
				RawContent:  input[entry.contentStart:tok.Start],
				StartOffset: entry.contentStart,
				EndOffset:   tok.Start,
				CloseStyle:  models.CloseExplicit,
				Syntax:      models.SyntaxAngle,
			})
			res.matchedClose[idx] = true
			res.closeRecognized[idx] = p.cfg.FieldForTag(entry.name) != models.FieldUnknown

		case TokenUniversalClose:
			if len(stack) == 0 {
				tagRecoveriesTotal.WithLabelValues("mismatched_close").Inc()
				p.log.Debug("universal close with empty stack kept as literal text",
					zap.Int("offset", tok.Start))
				continue
			}
			entry := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			res.spans = append(res.spans, models.TagSpan{
				Name:        entry.name,
				RawContent:  input[entry.contentStart:tok.Start],
				StartOffset: entry.contentStart,
				EndOffset:   tok.Start,
				CloseStyle:  models.CloseUniversal,
				Syntax:      models.SyntaxAngle,
			})
			res.matchedClose[idx] = true
			res.closeRecognized[idx] = p.cfg.FieldForTag(entry.name) != models.FieldUnknown
		}
	}

	closePending(len(input))

	// UnclosedTag recovery: close remaining entries at end of input.
	for _, entry := range stack {
		tagRecoveriesTotal.WithLabelValues("unclosed").Inc()
		p.log.Debug("unclosed tag closed at end of input", zap.String("tag", entry.name))
		res.spans = append(res.spans, models.TagSpan{
			Name:        entry.name,
			RawContent:  input[entry.contentStart:],
			StartOffset: entry.contentStart,
			EndOffset:   len(input),
			CloseStyle:  models.CloseUnclosed,
			Syntax:      models.SyntaxAngle,
		})
	}

	sort.SliceStable(res.spans, func(i, j int) bool {
		return res.spans[i].StartOffset < res.spans[j].StartOffset
	})
	return res
}

// aggregate classifies recognized spans into the output fields:
// mood and location keep only the last occurrence in document order,
// list fields accumulate in order of appearance. Distinct occurrences
// are never merged, matching the reference behavior.
func (p *Parser) aggregate(spans []models.TagSpan, resp *models.ParsedResponse) {
	var mood, location string
	moodSet, locationSet := false, false

	for _, span := range spans {
		kind := p.cfg.FieldForTag(span.Name)
		if kind == models.FieldUnknown {
			continue
		}
		content := strings.TrimSpace(span.RawContent)
		if content == "" {
			continue
		}
		parsedTagsTotal.WithLabelValues(kind.String()).Inc()

		switch kind {
		case models.FieldMood:
			// Spans arrive sorted by StartOffset, so the last one wins.
			mood = content
			moodSet = true
		case models.FieldLocation:
			location = content
			locationSet = true
		case models.FieldThought:
			resp.Thoughts = append(resp.Thoughts, content)
		case models.FieldAppearance:
			resp.Appearance = append(resp.Appearance, content)
		case models.FieldClothing:
			resp.Clothing = append(resp.Clothing, content)
		case models.FieldSecret:
			resp.Secrets = append(resp.Secrets, content)
		case models.FieldMoment:
			resp.Moments = append(resp.Moments, content)
		case models.FieldImage:
			resp.Images = append(resp.Images, content)
		}
	}

	if moodSet {
		resp.Mood = models.StringPtr(mood)
	}
	if locationSet {
		resp.Location = models.StringPtr(location)
	}
}

// reconstruct rebuilds the display text: literal text verbatim,
// recognized angle delimiters replaced by a [[name]] marker at the
// opening position (closers dropped), bracket markers and every
// unrecognized or unmatched token replayed byte for byte. Tag content
// is never removed, reordered or reworded.
func (p *Parser) reconstruct(toks []Token, res *resolution) string {
	var b strings.Builder
	for idx, tok := range toks {
		switch tok.Kind {
		case TokenText, TokenBracket:
			b.WriteString(tok.Raw)
		case TokenOpen:
			if p.cfg.FieldForTag(tok.Name) != models.FieldUnknown {
				b.WriteString("[[")
				b.WriteString(tok.Name)
				b.WriteString("]]")
			} else {
				b.WriteString(tok.Raw)
			}
		case TokenClose, TokenUniversalClose:
			if res.matchedClose[idx] && res.closeRecognized[idx] {
				continue // delimiter of a recognized span is excised
			}
			b.WriteString(tok.Raw)
		}
	}
	return b.String()
}
