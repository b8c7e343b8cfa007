// Package classify implements the document-level validity gate.
//
// A document is judged once, on its full concatenated and normalized text,
// by character-class ratios: too many special characters, too few letters,
// or quote-heavy text all indicate scanned tables, formula sheets, or broken
// OCR output rather than prose. The check is pure and never fails; rejection
// carries a human-readable reason with the offending figure.
package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Acceptance thresholds, relative to the total rune count.
const (
	maxSpecialRatio          = 0.30
	minMeaningfulRatio       = 0.20
	maxConsecutiveQuoteRatio = 0.01
	maxQuoteRatio            = 0.10
)

var quoteRunRegex = regexp.MustCompile(`"{2,}`)

// Verdict is the outcome of a validity check. Reason is empty when the
// document is accepted.
type Verdict struct {
	Accepted bool
	Reason   string
}

// Classifier computes character-class statistics over whole-document text.
type Classifier struct {
	// countHangul widens the meaningful-character class to include
	// Hangul syllables, for mixed Korean/English corpora
	countHangul bool
}

// NewClassifier creates a Classifier. countHangul selects whether Hangul
// syllables count as meaningful characters alongside Latin letters.
func NewClassifier(countHangul bool) *Classifier {
	return &Classifier{countHangul: countHangul}
}

// Check classifies the full document text. Conditions are evaluated in a
// fixed order and only the first failing one is reported.
func (c *Classifier) Check(text string) Verdict {
	if strings.TrimSpace(text) == "" {
		return Verdict{Reason: "empty document"}
	}

	runes := []rune(text)
	totalChars := len(runes)
	// the zero-length guard predates the trim check and keeps its own reason
	if totalChars == 0 {
		return Verdict{Reason: "document has no content"}
	}

	var specialChars, meaningfulChars, quotesCount int
	for _, r := range runes {
		switch {
		case r == '"':
			specialChars++
			quotesCount++
		case r == '\'' || r == '(' || r == ')' || r == ',' || r == '&' || r == '-' || r == '.':
			specialChars++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			meaningfulChars++
		case c.countHangul && r >= '가' && r <= '힣':
			meaningfulChars++
		}
	}

	consecutiveQuotes := len(quoteRunRegex.FindAllString(text, -1))

	specialRatio := float64(specialChars) / float64(totalChars)
	meaningfulRatio := float64(meaningfulChars) / float64(totalChars)

	switch {
	case specialRatio > maxSpecialRatio:
		return Verdict{Reason: fmt.Sprintf("special character ratio too high (%.1f%%)", specialRatio*100)}
	case meaningfulRatio < minMeaningfulRatio:
		return Verdict{Reason: fmt.Sprintf("meaningful character ratio too low (%.1f%%)", meaningfulRatio*100)}
	case float64(consecutiveQuotes) > maxConsecutiveQuoteRatio*float64(totalChars):
		return Verdict{Reason: fmt.Sprintf("too many consecutive quote runs (%d)", consecutiveQuotes)}
	case float64(quotesCount) > maxQuoteRatio*float64(totalChars):
		return Verdict{Reason: fmt.Sprintf("too many quote characters (%d)", quotesCount)}
	}

	return Verdict{Accepted: true}
}
