// Package segment splits normalized or raw text into sentence units.
//
// Boundary detection is rule-based rather than statistical: the corpus
// downstream expects exact, reproducible splits, so known abbreviation and
// reference periods are masked with a placeholder before splitting and
// restored afterward. Decimal numbers get the same protection so "3.5" never
// becomes two fragments.
package segment

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/young-ok-sin/pdf-extractor/internal/preset"
)

// periodMark stands in for protected periods while boundaries are detected.
// U+E000 is private-use and cannot occur in legitimate extracted text.
const periodMark = "\uE000"

// boundaryMark separates sentences once a boundary is confirmed.
const boundaryMark = "\uE001"

var decimalRegex = regexp.MustCompile(`(\d)\.(\d)`)

// Segmenter detects sentence boundaries with a fixed protection list.
type Segmenter struct {
	abbrevRegex *regexp.Regexp
	boundaries  []*regexp2.Regexp
}

// New creates a Segmenter protecting the given abbreviations. Each
// abbreviation is matched on a word boundary, case-sensitively. An empty
// list falls back to the default protection set.
func New(abbreviations []string) *Segmenter {
	if len(abbreviations) == 0 {
		abbreviations = preset.DefaultAbbreviations
	}

	escaped := make([]string, 0, len(abbreviations))
	for _, abbr := range abbreviations {
		escaped = append(escaped, regexp.QuoteMeta(strings.TrimSuffix(abbr, ".")))
	}

	return &Segmenter{
		abbrevRegex: regexp.MustCompile(`\b(?:` + strings.Join(escaped, "|") + `)\.`),
		boundaries: []*regexp2.Regexp{
			// terminal mark, optional whitespace, then an uppercase
			// letter or digit opening the next sentence
			regexp2.MustCompile(`([.!?])\s*(?=[A-Z0-9])`, regexp2.None),
			// terminal mark followed by line break(s)
			regexp2.MustCompile(`([.!?])\n+`, regexp2.None),
			// clause boundary: semicolon or colon before whitespace
			regexp2.MustCompile(`([;:])\s+`, regexp2.None),
		},
	}
}

// Split segments text into trimmed, non-empty sentence strings in document
// order. It never fails; Split("") returns nil.
func (s *Segmenter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// mask periods that must not end a sentence
	text = decimalRegex.ReplaceAllString(text, `$1`+periodMark+`$2`)
	text = s.abbrevRegex.ReplaceAllStringFunc(text, func(m string) string {
		return strings.ReplaceAll(m, ".", periodMark)
	})

	for _, re := range s.boundaries {
		if out, err := re.Replace(text, `$1`+boundaryMark, -1, -1); err == nil {
			text = out
		}
	}

	var sentences []string
	for _, frag := range strings.Split(text, boundaryMark) {
		frag = strings.TrimSpace(strings.ReplaceAll(frag, periodMark, "."))
		if frag != "" {
			sentences = append(sentences, frag)
		}
	}

	return sentences
}
