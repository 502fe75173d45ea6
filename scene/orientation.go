package scene

import (
	"strings"

	"nyx-engine/config"
	"nyx-engine/models"
)

// Classify maps a frame's prompt tags and detected subject count onto
// an orientation. The rule table is evaluated top-down, first match
// wins, so identical inputs always yield the same value:
//
//  1. two or more subjects with an interaction signal -> landscape
//  2. close-range detail framing                      -> square
//  3. upright framing                                 -> portrait
//  4. fallback                                        -> landscape
func Classify(cfg *config.Config, tags []string, subjects int) models.Orientation {
	if cfg == nil {
		cfg = config.Default()
	}
	switch {
	case subjects >= 2 && tagsMatch(tags, cfg.Scene.InteractionTerms):
		return models.OrientationLandscape
	case tagsMatch(tags, cfg.Scene.CloseRangeTerms):
		return models.OrientationSquare
	case tagsMatch(tags, cfg.Scene.UprightTerms):
		return models.OrientationPortrait
	default:
		return models.OrientationLandscape
	}
}

// tagsMatch reports whether any tag carries one of the signal terms.
// Substring matching lets externally supplied tags ("kneeling on the
// bed") still hit their signal.
func tagsMatch(tags []string, terms []string) bool {
	for _, tag := range tags {
		for _, term := range terms {
			if strings.Contains(tag, term) {
				return true
			}
		}
	}
	return false
}
