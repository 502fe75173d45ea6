package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"nyx-engine/models"
)

// CoverageClass describes which body region a garment term covers.
// NudityLevel derivation works purely on these classes, never on the
// literal garment words.
type CoverageClass string

const (
	CoverageTop             CoverageClass = "top"
	CoverageBottom          CoverageClass = "bottom"
	CoverageUnderwearTop    CoverageClass = "underwear-top"
	CoverageUnderwearBottom CoverageClass = "underwear-bottom"
	CoverageFull            CoverageClass = "full"
	CoverageOuter           CoverageClass = "outer"
	CoverageAccessory       CoverageClass = "accessory"
)

// Covering reports whether the class contributes to the clothed/exposed
// derivation at all. Outerwear and accessories never do.
func (c CoverageClass) Covering() bool {
	switch c {
	case CoverageTop, CoverageBottom, CoverageUnderwearTop, CoverageUnderwearBottom, CoverageFull:
		return true
	}
	return false
}

// TagTable maps canonical output fields to the tag names (aliases)
// recognized for them in the markup.
type TagTable struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// SceneCues holds every cue list the splitter, tracker and classifier
// consult. All matching is case-insensitive substring/word matching;
// the lists are data, not code, so product can tune them without a
// rebuild (YAML override).
type SceneCues struct {
	// TransitionCues split a scene block at a sentence boundary when the
	// following sentence starts with one of them.
	TransitionCues []string `yaml:"transition_cues"`

	// Garment event verbs.
	RemovalCues []string `yaml:"removal_cues"`
	DonningCues []string `yaml:"donning_cues"`
	// FullRemovalCues are explicit full-undress events; they clear the
	// worn set and force NudityLevel to nude.
	FullRemovalCues []string `yaml:"full_removal_cues"`

	// PoseCues map a detected cue word onto the canonical pose tag.
	PoseCues map[string]string `yaml:"pose_cues"`
	// SettingTerms are locations recognized after one of SettingPrepositions.
	SettingTerms        []string `yaml:"setting_terms"`
	SettingPrepositions []string `yaml:"setting_prepositions"`
	// ExpressionCues map a detected cue onto the canonical expression tag.
	ExpressionCues map[string]string `yaml:"expression_cues"`

	// Orientation signals consulted by the classifier rule table.
	MultiSubjectCues []string `yaml:"multi_subject_cues"`
	InteractionTerms []string `yaml:"interaction_terms"`
	CloseRangeTerms  []string `yaml:"close_range_terms"`
	UprightTerms     []string `yaml:"upright_terms"`
}

// Config is the full engine configuration: recognized tag table,
// garment coverage table and scene cue lists.
type Config struct {
	Tags     TagTable                 `yaml:"tags"`
	Coverage map[string]CoverageClass `yaml:"coverage"`
	Scene    SceneCues                `yaml:"scene"`

	fieldByTag map[string]models.FieldKind
	garments   []string // coverage keys, longest-first for greedy matching
}

// Default returns the compiled-in configuration. The tables resolve the
// heuristic guidance of the source material into explicit policy; see
// DESIGN.md for the sign-off notes.
func Default() *Config {
	cfg := &Config{
		Tags: TagTable{
			Aliases: map[string][]string{
				"mood":       {"mood"},
				"thoughts":   {"thought", "thoughts"},
				"appearance": {"appearance"},
				"clothing":   {"clothing"},
				"secrets":    {"secret", "secrets"},
				"moments":    {"moment", "moments"},
				"images":     {"image", "images"},
				"location":   {"location"},
			},
		},
		Coverage: map[string]CoverageClass{
			"dress":      CoverageFull,
			"gown":       CoverageFull,
			"robe":       CoverageFull,
			"bodysuit":   CoverageFull,
			"nightgown":  CoverageFull,
			"lingerie":   CoverageFull,
			"shirt":      CoverageTop,
			"blouse":     CoverageTop,
			"top":        CoverageTop,
			"sweater":    CoverageTop,
			"corset":     CoverageTop,
			"t-shirt":    CoverageTop,
			"tank top":   CoverageTop,
			"skirt":      CoverageBottom,
			"jeans":      CoverageBottom,
			"pants":      CoverageBottom,
			"trousers":   CoverageBottom,
			"shorts":     CoverageBottom,
			"leggings":   CoverageBottom,
			"bra":        CoverageUnderwearTop,
			"bikini top": CoverageUnderwearTop,
			"panties":    CoverageUnderwearBottom,
			"underwear":  CoverageUnderwearBottom,
			"thong":      CoverageUnderwearBottom,
			"briefs":     CoverageUnderwearBottom,
			"jacket":     CoverageOuter,
			"coat":       CoverageOuter,
			"cardigan":   CoverageOuter,
			"stockings":  CoverageAccessory,
			"heels":      CoverageAccessory,
			"boots":      CoverageAccessory,
			"gloves":     CoverageAccessory,
			"choker":     CoverageAccessory,
			"scarf":      CoverageAccessory,
			"socks":      CoverageAccessory,
		},
		Scene: SceneCues{
			TransitionCues: []string{
				"then", "after", "afterwards", "later", "next",
				"now", "suddenly", "meanwhile", "finally",
			},
			RemovalCues: []string{
				"takes off", "taking off", "removes", "removing", "slips off",
				"slips out of", "pulls off", "strips off", "peels off",
				"sheds", "discards", "unhooks", "unzips", "tugs off",
				"slides off", "steps out of", "drops",
			},
			DonningCues: []string{
				"puts on", "putting on", "puts back on", "back on", "slips into",
				"slips on", "pulls on", "dons", "wears", "dresses in",
				"fastens", "buttons up", "steps into",
			},
			FullRemovalCues: []string{
				"strips naked", "strips bare", "completely naked",
				"fully nude", "fully naked", "removes everything",
				"takes everything off", "nothing left on", "now naked",
				"stands naked", "entirely nude",
			},
			PoseCues: map[string]string{
				"standing":     "standing",
				"stands":       "standing",
				"kneeling":     "kneeling",
				"kneels":       "kneeling",
				"sitting":      "sitting",
				"sits":         "sitting",
				"lying":        "lying",
				"lies down":    "lying",
				"lies back":    "lying",
				"sprawled":     "lying",
				"straddling":   "straddling",
				"straddles":    "straddling",
				"bending over": "bending over",
				"bends over":   "bending over",
				"on all fours": "on all fours",
				"crouching":    "crouching",
				"arching":      "arching back",
			},
			SettingTerms: []string{
				"bedroom", "bed", "bathroom", "shower", "bathtub", "kitchen",
				"living room", "sofa", "couch", "office", "desk", "balcony",
				"beach", "pool", "car", "mirror", "window", "doorway",
				"club", "alley", "rooftop", "forest", "garden", "apartment",
			},
			SettingPrepositions: []string{
				"in the", "on the", "at the", "into the", "onto the",
				"against the", "to the", "by the", "beside the",
			},
			ExpressionCues: map[string]string{
				"smiling":        "smiling",
				"smiles":         "smiling",
				"smirking":       "smirking",
				"smirks":         "smirking",
				"grinning":       "grinning",
				"grins":          "grinning",
				"blushing":       "blushing",
				"blushes":        "blushing",
				"laughing":       "laughing",
				"crying":         "crying",
				"moaning":        "moaning",
				"moans":          "moaning",
				"gasping":        "gasping",
				"gasps":          "gasping",
				"pouting":        "pouting",
				"biting her lip": "biting lip",
				"eyes closed":    "eyes closed",
				"winking":        "winking",
			},
			MultiSubjectCues: []string{
				"they ", "both of", "the two of", "two of them", "together",
				"each other", "one another", "he and she",
			},
			InteractionTerms: []string{
				"embracing", "embrace", "kissing", "entwined", "on top of",
				"beneath him", "beneath her", "riding", "grinding",
				"thrusting", "penetration", "making love", "having sex",
				"pressed against", "wrapped around", "lying",
			},
			CloseRangeTerms: []string{
				"masturbating", "masturbation", "touching herself",
				"touching himself", "fingering", "orgasm", "climax",
				"close-up", "close up", "point of view", "between her legs",
				"detail of",
			},
			UprightTerms: []string{
				"standing", "kneeling", "upright", "facing the camera",
				"facing the viewer", "posing", "full height",
			},
		},
	}
	cfg.finalize()
	return cfg
}

// Load reads a YAML tables file over the defaults. Map tables merge
// key by key over the defaults; list tables replace the default list
// wholesale.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tables file %s: %w", path, err)
	}
	cfg.finalize()
	return cfg, nil
}

// finalize rebuilds the derived lookup structures after the declarative
// tables change.
func (c *Config) finalize() {
	c.fieldByTag = make(map[string]models.FieldKind, 16)
	for field, aliases := range c.Tags.Aliases {
		kind := fieldKindByName(field)
		if kind == models.FieldUnknown {
			continue
		}
		for _, alias := range aliases {
			c.fieldByTag[models.NormalizeTagName(alias)] = kind
		}
	}

	c.garments = c.garments[:0]
	for garment := range c.Coverage {
		c.garments = append(c.garments, garment)
	}
	// Longest first so "tank top" wins over "top"; ties alphabetical for
	// deterministic matching.
	sort.Slice(c.garments, func(i, j int) bool {
		if len(c.garments[i]) != len(c.garments[j]) {
			return len(c.garments[i]) > len(c.garments[j])
		}
		return c.garments[i] < c.garments[j]
	})
}

// FieldForTag resolves a raw tag name to its output field. Unrecognized
// names map to FieldUnknown and stay literal text in the main text.
func (c *Config) FieldForTag(name string) models.FieldKind {
	return c.fieldByTag[models.NormalizeTagName(name)]
}

// Garments returns the coverage table keys, longest first.
func (c *Config) Garments() []string {
	return c.garments
}

func fieldKindByName(name string) models.FieldKind {
	switch name {
	case "mood":
		return models.FieldMood
	case "thoughts":
		return models.FieldThought
	case "appearance":
		return models.FieldAppearance
	case "clothing":
		return models.FieldClothing
	case "secrets":
		return models.FieldSecret
	case "moments":
		return models.FieldMoment
	case "images":
		return models.FieldImage
	case "location":
		return models.FieldLocation
	}
	return models.FieldUnknown
}
