package normalize_test

import (
	"strings"
	"testing"

	"github.com/young-ok-sin/pdf-extractor/internal/normalize"
)

func TestFilter_AllowListClosure(t *testing.T) {
	n := normalize.New(normalize.Config{})

	tests := []struct {
		name        string
		input       string
		expected    string
		description string
	}{
		{
			name:        "plain prose passes through",
			input:       `The fox (a red one) said: "hello, world"; it left.`,
			expected:    `The fox (a red one) said: "hello, world"; it left.`,
			description: "every character in the allow-list must survive",
		},
		{
			name:        "math symbols removed",
			input:       "E = mc^2 + α·β ≈ 42%",
			expected:    "E  mc2    42",
			description: "equals, caret, greek letters, percent are all outside the allow-list",
		},
		{
			name:        "slash removed without AllowSlash",
			input:       "either/or",
			expected:    "eitheror",
			description: "slash is only admitted by later variants",
		},
		{
			name:        "empty input",
			input:       "",
			expected:    "",
			description: "filter is total",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Filter(tt.input)
			if result != tt.expected {
				t.Errorf("Filter(%q) = %q, expected %q (%s)", tt.input, result, tt.expected, tt.description)
			}
		})
	}
}

func TestFilter_AllowSlash(t *testing.T) {
	n := normalize.New(normalize.Config{AllowSlash: true})
	if got := n.Filter("either/or"); got != "either/or" {
		t.Errorf("Filter with AllowSlash = %q, expected %q", got, "either/or")
	}
}

func TestFilter_OnlyAllowedCharactersSurvive(t *testing.T) {
	n := normalize.New(normalize.Config{})
	allowed := func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return true
		case strings.ContainsRune(`&(),.'";:-`, r):
			return true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v':
			return true
		}
		return false
	}

	inputs := []string{
		"αβγ mixed with ascii 123",
		"emoji 🙂 and ± symbols © inside",
		"tab\tand\nnewline survive",
	}
	for _, input := range inputs {
		for _, r := range n.Filter(input) {
			if !allowed(r) {
				t.Errorf("Filter(%q) leaked disallowed character %q", input, r)
			}
		}
	}
}

func TestClean_Rules(t *testing.T) {
	n := normalize.New(normalize.Config{})

	tests := []struct {
		name        string
		input       string
		expected    string
		description string
	}{
		{
			name:        "hyphenated line break rejoined",
			input:       "clear infor- mation here",
			expected:    "clear information here",
			description: "a trailing hyphen before a break joins the split word",
		},
		{
			name:        "empty parentheses removed",
			input:       "results ( ) are strong",
			expected:    "results are strong",
			description: "empty parens are extraction noise",
		},
		{
			name:        "figure marker parens removed",
			input:       "shown here (Fig.) for reference",
			expected:    "shown here for reference",
			description: "a bare figure marker inside parens carries no content",
		},
		{
			name:        "nested parentheses collapsed",
			input:       "value ((forty two)) observed",
			expected:    "value (forty two) observed",
			description: "double parens collapse to one pair",
		},
		{
			name:        "comma and period runs collapsed",
			input:       "first,,, second.... third",
			expected:    "first, second. third",
			description: "repeated punctuation collapses to one mark",
		},
		{
			name:        "quote runs collapsed",
			input:       `she said ""hello"" there`,
			expected:    `she said "hello" there`,
			description: "doubled quotes collapse to a single quote",
		},
		{
			name:        "whitespace runs collapsed",
			input:       "too   many    spaces\t\tand tabs",
			expected:    "too many spaces and tabs",
			description: "any whitespace run becomes one space",
		},
		{
			name:        "space before comma removed",
			input:       "first , second ,  third",
			expected:    "first, second, third",
			description: "comma spacing normalized to none-before, one-after",
		},
		{
			name:        "trailing punctuation run becomes period",
			input:       "the end,.,",
			expected:    "the end.",
			description: "a punctuation run at the end collapses to a single period",
		},
		{
			name:        "leading comma trimmed",
			input:       ", starts oddly",
			expected:    "starts oddly",
			description: "boundary commas are extraction noise",
		},
		{
			name:        "decimal numbers preserved",
			input:       "accuracy reached 95.5 percent overall",
			expected:    "accuracy reached 95.5 percent overall",
			description: "the reference preset keeps legitimate statistics",
		},
		{
			name:        "empty input",
			input:       "",
			expected:    "",
			description: "normalizer is total",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Clean(tt.input)
			if result != tt.expected {
				t.Errorf("Clean(%q) = %q, expected %q (%s)", tt.input, result, tt.expected, tt.description)
			}
		})
	}
}

func TestClean_NumericRunsPresetGated(t *testing.T) {
	input := "see pages 12, 34 and 56 for tables"

	kept := normalize.New(normalize.Config{}).Clean(input)
	if kept != input {
		t.Errorf("reference preset altered numbers: got %q", kept)
	}

	stripped := normalize.New(normalize.Config{StripNumericRuns: true}).Clean(input)
	if strings.ContainsAny(stripped, "0123456789") {
		t.Errorf("book preset left digits behind: got %q", stripped)
	}
}

func TestClean_Idempotent(t *testing.T) {
	n := normalize.New(normalize.Config{})

	inputs := []string{
		"",
		"plain sentence with nothing to fix.",
		"messy,,, text (  ) with ((nested)) parens and infor- mation",
		`quotes "" everywhere '' and runs--- of hyphens`,
		"whitespace \t\t and , spacing ,issues ,",
		"ends with punctuation run,.,.,",
	}

	for _, input := range inputs {
		once := n.Clean(input)
		twice := n.Clean(once)
		if once != twice {
			t.Errorf("Clean is not idempotent for %q:\n once: %q\ntwice: %q", input, once, twice)
		}
	}
}

func TestClean_NoDoublePunctuation(t *testing.T) {
	n := normalize.New(normalize.Config{StripNumericRuns: true})

	doubles := []string{"..", ",,", `""`, "''", "--"}
	inputs := []string{
		"a sentence.. with,, doubled ''punctuation'' everywhere--",
		`"" ,, .. -- mixed together .. ""`,
		"normal text stays normal.",
	}

	for _, input := range inputs {
		result := n.Clean(input)
		for _, d := range doubles {
			if strings.Contains(result, d) {
				t.Errorf("Clean(%q) = %q still contains %q", input, result, d)
			}
		}
		if strings.Contains(result, "  ") {
			t.Errorf("Clean(%q) = %q contains a whitespace run", input, result)
		}
	}
}
