// Package preset defines the named cleaning variants for the extraction pipeline.
//
// The extraction rules evolved across two near-duplicate implementations (one
// tuned for scanned books, one for academic papers) with diverging allow-lists,
// numeric-noise handling, and character statistics. Rather than two code paths,
// the differing pieces are captured here as data: built-in presets plus
// user-supplied YAML files.
package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultAbbreviations lists the abbreviation and reference markers whose
// trailing periods must not be treated as sentence boundaries.
var DefaultAbbreviations = []string{
	"et al.", "i.e.", "e.g.", "Fig.", "Figure.", "Eq.", "Dr.", "Prof.",
}

// Preset holds the configuration knobs that differ between cleaning variants.
type Preset struct {
	Name string `yaml:"name"`

	// AllowSlash adds '/' to the character filter allow-list
	AllowSlash bool `yaml:"allow_slash"`

	// StripNumericRuns enables aggressive removal of bare numeric runs,
	// comma-separated number lists, and decimals. Papers keep their
	// statistics; scanned books mostly carry page-number noise.
	StripNumericRuns bool `yaml:"strip_numeric_runs"`

	// CountHangul counts Hangul syllables as meaningful characters in the
	// validity classifier, for mixed Korean/English corpora.
	CountHangul bool `yaml:"count_hangul"`

	// EmitOriginal adds the pre-normalization sentence text as an
	// 'original' column in the output.
	EmitOriginal bool `yaml:"emit_original"`

	// Abbreviations overrides the segmenter protection list; empty means
	// DefaultAbbreviations.
	Abbreviations []string `yaml:"abbreviations"`
}

// Paper returns the reference preset, matching the latest (strictest) variant
// of the extraction rules.
func Paper() Preset {
	return Preset{
		Name:          "paper",
		AllowSlash:    true,
		EmitOriginal:  true,
		Abbreviations: DefaultAbbreviations,
	}
}

// Book returns the legacy book-corpus preset.
func Book() Preset {
	return Preset{
		Name:             "book",
		StripNumericRuns: true,
		CountHangul:      true,
		Abbreviations:    DefaultAbbreviations,
	}
}

// Lookup resolves a built-in preset by name.
func Lookup(name string) (Preset, bool) {
	switch name {
	case "paper":
		return Paper(), true
	case "book":
		return Book(), true
	default:
		return Preset{}, false
	}
}

// Load reads a preset from a YAML file. A missing abbreviation list falls
// back to DefaultAbbreviations.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("reading preset file: %w", err)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parsing preset file %s: %w", path, err)
	}

	if p.Name == "" {
		return Preset{}, fmt.Errorf("preset file %s has no name", path)
	}
	if len(p.Abbreviations) == 0 {
		p.Abbreviations = DefaultAbbreviations
	}

	return p, nil
}
