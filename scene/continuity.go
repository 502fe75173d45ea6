package scene

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"nyx-engine/config"
	"nyx-engine/models"
)

// Tracker folds one SceneState lineage across ordered scene segments.
// State persists between segments unless a segment contains an explicit
// override; removed garments stay removed for the rest of the sequence
// unless a segment explicitly puts them back on (monotonic removal).
// A Tracker serves exactly one sequence and is not safe for concurrent
// use; independent sequences get independent Trackers.
type Tracker struct {
	cfg *config.Config
	log *zap.Logger

	state    models.SceneState
	removed  map[string]bool
	sawEvent bool // any garment event happened in this lineage
	frameIdx int
}

// NewTracker creates a Tracker with the default starting state
// (clothed, no worn items known).
func NewTracker(cfg *config.Config, log *zap.Logger) *Tracker {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		cfg:     cfg,
		log:     log,
		state:   models.SceneState{NudityLevel: models.NudityClothed},
		removed: make(map[string]bool),
	}
}

// Seed replaces the starting state with a caller-supplied prior
// snapshot for cross-call continuity.
func (t *Tracker) Seed(prior models.SceneState) {
	t.state = prior.Clone()
	if t.state.NudityLevel == "" {
		t.state.NudityLevel = models.NudityClothed
	}
}

// State returns a snapshot of the current state.
func (t *Tracker) State() models.SceneState {
	return t.state.Clone()
}

// Advance folds one segment into the state and finalizes it as a
// frame carrying a snapshot copy. Rule order: garment events, nudity
// derivation, then pose/setting/expression overrides.
func (t *Tracker) Advance(segment string) models.Frame {
	lower := strings.ToLower(segment)

	fullRemoval := t.applyGarmentEvents(lower)

	prev := t.state.NudityLevel
	if fullRemoval {
		t.state.NudityLevel = models.NudityNude
	} else {
		t.state.NudityLevel = t.deriveNudity(prev)
	}

	if pose, ok := firstCueMatch(lower, t.cfg.Scene.PoseCues); ok {
		t.state.Pose = pose
	}
	if setting, ok := t.findSetting(lower); ok {
		t.state.Setting = setting
	}
	if expr, ok := firstCueMatch(lower, t.cfg.Scene.ExpressionCues); ok {
		t.state.Expression = expr
	}

	subjects := t.subjectCount(lower)
	actions := t.actionTags(lower)
	tags := t.buildTags(actions)

	var emphasized *string
	if len(actions) > 0 {
		emphasized = models.StringPtr(actions[0])
	}

	t.frameIdx++
	frame := models.Frame{
		Index:         t.frameIdx,
		PromptTags:    tags,
		OriginalText:  segment,
		Orientation:   Classify(t.cfg, tags, subjects),
		EmphasizedTag: emphasized,
		State:         t.state.Clone(),
	}

	t.log.Debug("segment folded into frame",
		zap.Int("frame", frame.Index),
		zap.String("orientation", string(frame.Orientation)),
		zap.Int("subjects", subjects),
		zap.Strings("worn", t.state.ClothingWorn),
		zap.String("nudity", string(t.state.NudityLevel)),
	)
	return frame
}

// applyGarmentEvents processes donning/removal mentions sentence by
// sentence and reports whether an explicit full-removal event occurred.
func (t *Tracker) applyGarmentEvents(lower string) bool {
	fullRemoval := false
	sentences := splitSentences(lower)
	if len(sentences) == 0 {
		sentences = []string{lower}
	}

	for _, sent := range sentences {
		if matchAny(sent, t.cfg.Scene.FullRemovalCues) {
			for _, item := range t.state.ClothingWorn {
				t.removed[item] = true
			}
			t.state.ClothingWorn = nil
			t.sawEvent = true
			fullRemoval = true
		}

		// Longest garment names claim their byte range first, so a
		// compound name never also fires its suffix entry ("tank top"
		// must not additionally match "top").
		var claimed []span
		for _, garment := range t.cfg.Garments() {
			for gIdx := indexWordOutside(sent, garment, claimed, 0); gIdx >= 0; gIdx = indexWordOutside(sent, garment, claimed, gIdx+1) {
				claimed = append(claimed, span{gIdx, gIdx + len(garment)})
				removal, ok := t.nearestCue(sent, gIdx)
				if !ok {
					continue // bare mention, not a donning/removal event
				}
				t.sawEvent = true
				if removal {
					t.state.Remove(garment)
					t.removed[garment] = true
					t.log.Debug("garment removed", zap.String("garment", garment))
				} else {
					t.state.Wear(garment)
					delete(t.removed, garment)
					fullRemoval = false
					t.log.Debug("garment put on", zap.String("garment", garment))
				}
			}
		}
	}

	// Monotonic removal: a removed item never reappears without an
	// explicit re-dressing event, even against a seeded prior state.
	for item := range t.removed {
		t.state.Remove(item)
	}
	return fullRemoval
}

// nearestCue attributes the garment mention to a cue within the
// sentence. English puts the verb before its object, so the nearest
// cue preceding the mention wins; a cue after the mention counts only
// when nothing precedes it. Removal cues win distance ties.
func (t *Tracker) nearestCue(sent string, garmentIdx int) (removal bool, ok bool) {
	beforeDist, afterDist := -1, -1
	var beforeRemoval, afterRemoval bool
	scan := func(cues []string, isRemoval bool) {
		for _, cue := range cues {
			for idx := strings.Index(sent, cue); idx >= 0; {
				if idx <= garmentIdx {
					dist := garmentIdx - idx
					if beforeDist == -1 || dist < beforeDist {
						beforeDist = dist
						beforeRemoval = isRemoval
					}
				} else {
					dist := idx - garmentIdx
					if afterDist == -1 || dist < afterDist {
						afterDist = dist
						afterRemoval = isRemoval
					}
				}
				next := strings.Index(sent[idx+1:], cue)
				if next < 0 {
					break
				}
				idx += 1 + next
			}
		}
	}
	scan(t.cfg.Scene.RemovalCues, true)
	scan(t.cfg.Scene.DonningCues, false)

	switch {
	case beforeDist >= 0:
		return beforeRemoval, true
	case afterDist >= 0:
		return afterRemoval, true
	default:
		return false, false
	}
}

// deriveNudity maps the worn set onto a nudity level via the coverage
// table. Ambiguous evidence keeps the previous level rather than
// guessing forward.
func (t *Tracker) deriveNudity(prev models.NudityLevel) models.NudityLevel {
	var hasFull, hasTop, hasBottom, hasUnderwear, unknown bool
	for _, item := range t.state.ClothingWorn {
		class, known := t.cfg.Coverage[item]
		if !known {
			unknown = true
			continue
		}
		switch class {
		case config.CoverageFull:
			hasFull = true
		case config.CoverageTop:
			hasTop = true
		case config.CoverageBottom:
			hasBottom = true
		case config.CoverageUnderwearTop, config.CoverageUnderwearBottom:
			hasUnderwear = true
		}
	}

	switch {
	case hasFull || (hasTop && hasBottom):
		return models.NudityClothed
	case hasTop || hasBottom || hasUnderwear:
		return models.NudityPartiallyExposed
	case unknown:
		// AmbiguousContinuity recovery: worn items outside the table.
		return prev
	case !t.sawEvent:
		// No clothing knowledge at all yet; keep the prior level.
		return prev
	default:
		return models.NudityNude
	}
}

// findSetting looks for a preposition + known location pair and returns
// the earliest match in the segment.
func (t *Tracker) findSetting(lower string) (string, bool) {
	best := -1
	var setting string
	for _, prep := range t.cfg.Scene.SettingPrepositions {
		for _, term := range t.cfg.Scene.SettingTerms {
			idx := strings.Index(lower, prep+" "+term)
			if idx < 0 {
				continue
			}
			if best == -1 || idx < best || (idx == best && len(term) > len(setting)) {
				best = idx
				setting = term
			}
		}
	}
	return setting, best >= 0
}

// subjectCount detects whether the segment describes more than one
// subject. The engine only distinguishes one vs two-or-more.
func (t *Tracker) subjectCount(lower string) int {
	padded := " " + lower + " "
	for _, cue := range t.cfg.Scene.MultiSubjectCues {
		if strings.Contains(padded, cue) {
			return 2
		}
	}
	if indexWord(lower, "he") >= 0 && indexWord(lower, "she") >= 0 {
		return 2
	}
	return 1
}

// actionTags collects orientation-signal terms present in the segment,
// ordered by first appearance.
func (t *Tracker) actionTags(lower string) []string {
	type hit struct {
		idx  int
		term string
	}
	var hits []hit
	collect := func(terms []string) {
		for _, term := range terms {
			if idx := strings.Index(lower, term); idx >= 0 {
				hits = append(hits, hit{idx: idx, term: term})
			}
		}
	}
	collect(t.cfg.Scene.InteractionTerms)
	collect(t.cfg.Scene.CloseRangeTerms)
	collect(t.cfg.Scene.UprightTerms)

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].idx != hits[j].idx {
			return hits[i].idx < hits[j].idx
		}
		// Longer term first so "close-up" beats a nested shorter match.
		if len(hits[i].term) != len(hits[j].term) {
			return len(hits[i].term) > len(hits[j].term)
		}
		return hits[i].term < hits[j].term
	})

	var out []string
	seen := make(map[string]bool, len(hits))
	for _, h := range hits {
		if seen[h.term] {
			continue
		}
		seen[h.term] = true
		out = append(out, h.term)
	}
	return out
}

// buildTags assembles the ordered, duplicate-free prompt tag set from
// the state snapshot and the segment's detected actions.
func (t *Tracker) buildTags(actions []string) []string {
	var tags []string
	seen := make(map[string]bool)
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	add(t.state.Pose)
	add(t.state.Expression)
	add(t.state.Setting)

	switch t.state.NudityLevel {
	case models.NudityNude:
		add("nude")
	case models.NudityPartiallyExposed:
		add("partially exposed")
		for _, item := range t.state.ClothingWorn {
			add(item)
		}
	default:
		for _, item := range t.state.ClothingWorn {
			add(item)
		}
	}

	for _, action := range actions {
		add(action)
	}
	return tags
}

// firstCueMatch returns the canonical value for the cue appearing
// earliest in the text. Ties prefer the longer cue, then lexicographic
// order, so map iteration never affects the result.
func firstCueMatch(lower string, cues map[string]string) (string, bool) {
	best := -1
	var bestCue, value string
	for cue, v := range cues {
		idx := strings.Index(lower, cue)
		if idx < 0 {
			continue
		}
		if best == -1 || idx < best ||
			(idx == best && (len(cue) > len(bestCue) || (len(cue) == len(bestCue) && cue < bestCue))) {
			best = idx
			bestCue = cue
			value = v
		}
	}
	return value, best >= 0
}

func matchAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}

// span is a half-open byte range already claimed by a garment match.
type span struct{ start, end int }

func (sp span) overlaps(start, end int) bool {
	return start < sp.end && sp.start < end
}

// indexWord finds w in s on word boundaries (letters on either side
// break a match). Returns -1 when absent.
func indexWord(s, w string) int {
	return indexWordOutside(s, w, nil, 0)
}

// indexWordOutside finds the first word-bounded occurrence of w in s at
// or after from that does not overlap any claimed range.
func indexWordOutside(s, w string, claimed []span, from int) int {
	for {
		idx := strings.Index(s[from:], w)
		if idx < 0 {
			return -1
		}
		idx += from
		from = idx + 1

		beforeOK := idx == 0 || !isWordChar(s[idx-1])
		after := idx + len(w)
		afterOK := after >= len(s) || !isWordChar(s[after])
		if !beforeOK || !afterOK {
			continue
		}
		taken := false
		for _, sp := range claimed {
			if sp.overlaps(idx, after) {
				taken = true
				break
			}
		}
		if !taken {
			return idx
		}
	}
}

func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
