// Package normalize implements the character filter and the structural
// normalizer for extracted page text.
//
// The normalizer is an ordered list of rewrite rules applied repeatedly until
// a full pass leaves the text unchanged (a fixed point). Rule order within a
// pass matters: parenthetical cleanup must run before punctuation collapsing,
// and punctuation collapsing before whitespace normalization. Several rules
// need backreferences or lookahead, which the stdlib RE2 engine cannot
// express, so the rule table is built on github.com/dlclark/regexp2.
package normalize

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// maxPasses caps the fixed-point iteration. Realistic page text converges in
// a handful of passes; hitting the cap signals a defective rule interaction
// and is logged rather than silently looping.
const maxPasses = 50

var (
	tabRunRegex   = regexp.MustCompile(`[\t\r\f\v]+`)
	spaceRunRegex = regexp.MustCompile(`\s+`)
)

// Config selects the variant-dependent pieces of the normalizer.
type Config struct {
	// AllowSlash admits '/' through the character filter
	AllowSlash bool

	// StripNumericRuns removes bare numeric runs and separated number
	// lists in addition to the shared rule set
	StripNumericRuns bool
}

// rule is one rewrite step: pattern in, replacement out.
type rule struct {
	name string
	re   *regexp2.Regexp
	repl string
}

func (r rule) apply(text string) string {
	out, err := r.re.Replace(text, r.repl, -1, -1)
	if err != nil {
		// Replace only fails on match timeouts, which are not configured
		return text
	}
	return out
}

func mustRule(name, pattern, repl string) rule {
	return rule{name: name, re: regexp2.MustCompile(pattern, regexp2.None), repl: repl}
}

// Normalizer rewrites raw extracted text into clean prose fragments.
type Normalizer struct {
	disallowed *regexp.Regexp
	rules      []rule
}

// New builds a Normalizer for the given variant configuration.
func New(cfg Config) *Normalizer {
	allowed := `a-zA-Z0-9&(),.'";:\s`
	if cfg.AllowSlash {
		allowed += `/`
	}

	return &Normalizer{
		disallowed: regexp.MustCompile(`[^` + allowed + `-]`),
		rules:      buildRules(cfg),
	}
}

// buildRules assembles the ordered rewrite list. The shared rules follow the
// strictest variant; numeric-noise removal is gated because it destroys
// legitimate statistics in academic text.
func buildRules(cfg Config) []rule {
	rules := []rule{
		// parenthetical cleanup
		mustRule("empty-parens", `\(\s*\)`, ``),
		mustRule("comma-only-parens", `\(\s*,\s*\)`, ``),
		mustRule("noise-token-parens", `\((?:Fig\.|Figure\.|[.,]+)\)`, ``),
		mustRule("punct-only-parens", `\([.,\s]+\)`, ``),
		mustRule("nested-parens", `\(\(+([^()]*)\)+\)`, `($1)`),
		mustRule("paren-padding", `\(\s*(.+?)\s*\)`, `($1)`),
		mustRule("paren-leading-punct", `\(\s*[,.]\s*(.*?)\)`, `($1)`),
		mustRule("paren-trailing-punct", `\(\s*(.*?)\s*[,.]\s*\)`, `($1)`),

		// inline citation/variable clutter: runs of single letters
		// separated by commas, periods, or spaces
		mustRule("letter-clutter", `\b[a-zA-Z](?:[\s,.]+[a-zA-Z])+\b`, ``),
	}

	if cfg.StripNumericRuns {
		rules = append(rules,
			mustRule("number-lists", `\b\d+(?:\s*[,.-]\s*\d+)*\b`, ``),
			mustRule("number-columns", `\d+(?:\s+\d+)+`, ``),
		)
	}

	rules = append(rules,
		// broken-word rejoining and hyphen runs
		mustRule("hyphen-join", `([a-z])-\s+([a-z])`, `$1$2`),
		mustRule("hyphen-runs", `-(?:\s*-)+`, `-`),

		// a word echoed three or more times is extraction noise
		mustRule("repeated-tokens", `\b(\w+)(?:\s+\1\b){2,}`, ``),

		// punctuation collapsing
		mustRule("period-runs", `\.{2,}`, `.`),
		mustRule("comma-runs", `,{2,}`, `,`),
		mustRule("mixed-punct-runs", `[.,]{2,}`, `,`),
		mustRule("punct-before-punct", `\s*[.,]+\s*(?=[.,])`, ``),
		mustRule("trailing-punct-run", `[.,]+(?=\s*$)`, `.`),
		mustRule("space-before-period", `\s+\.`, `.`),
		mustRule("dquote-runs", `"{2,}`, `"`),
		mustRule("squote-runs", `'{2,}`, `'`),
		mustRule("mixed-quote-runs", `["']{2,}`, `"`),

		// whitespace and comma normalization
		mustRule("space-before-comma", `\s+,`, `,`),
		mustRule("punct-gap", `\s*([,.])\s*(?=[,.!?])`, `$1`),
		mustRule("comma-spacing", `,\s+`, `, `),
		mustRule("leading-comma", `^\s*,\s*`, ``),
		mustRule("trailing-comma", `\s*,\s*$`, ``),
		mustRule("whitespace-runs", `\s{2,}`, ` `),
	)

	return rules
}

// Filter strips every character outside the allow-list. Pure and total.
func (n *Normalizer) Filter(text string) string {
	return n.disallowed.ReplaceAllString(text, "")
}

// Clean normalizes raw extracted text: whitespace is flattened, disallowed
// characters are dropped, then the rule list runs to a fixed point.
func (n *Normalizer) Clean(text string) string {
	text = tabRunRegex.ReplaceAllString(text, " ")
	text = spaceRunRegex.ReplaceAllString(text, " ")
	text = n.Filter(text)

	for pass := 0; ; pass++ {
		if pass >= maxPasses {
			slog.Warn("normalizer did not reach a fixed point", "passes", pass, "length", len(text))
			break
		}

		prev := text
		for _, r := range n.rules {
			text = r.apply(text)
		}
		if text == prev {
			break
		}
	}

	return strings.TrimSpace(text)
}
