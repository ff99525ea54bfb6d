// Package prose implements the voice and style rules for skill documents.
//
// Every rule here is a table of regular expressions swept over prose lines.
// The tables are fixed at init time; rules never build patterns at runtime.
package prose

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/skillworks/skillctl/internal/rules"
)

// pattern pairs a compiled expression with the rewrite hint shown when it
// matches. An empty suggestion falls back to the rule's generic hint.
type pattern struct {
	re         *regexp.Regexp
	suggestion string
}

func mustPattern(expr, suggestion string) pattern {
	return pattern{re: regexp.MustCompile(expr), suggestion: suggestion}
}

// checkPatterns runs a pattern table over every prose line of the document.
//
// Each line is lower-cased once; every pattern reports all non-overlapping
// matches on that copy, in table order, so repeated phrasing on a single
// line surfaces as separate violations. Emitted violations carry the
// original-cased line and the matched lower-cased substring.
func checkPatterns(input rules.LintInput, meta rules.RuleMetadata, label, fallback string, patterns []pattern) []rules.Violation {
	var violations []rules.Violation

	for i, line := range input.Doc.Lines() {
		if input.Doc.IsException(i) {
			continue
		}
		lower := strings.ToLower(line)
		for _, p := range patterns {
			for _, idx := range p.re.FindAllStringIndex(lower, -1) {
				matched := lower[idx[0]:idx[1]]
				lineNum := i + 1 // lines are 0-based, locations 1-based
				loc := rules.NewRangeLocation(input.File, lineNum, idx[0], lineNum, idx[1])
				suggestion := p.suggestion
				if suggestion == "" {
					suggestion = fallback
				}
				v := rules.NewViolation(loc, meta.Code, fmt.Sprintf("%s: %q", label, matched), meta.DefaultSeverity).
					WithLineContent(strings.TrimSpace(line)).
					WithMatchedText(matched).
					WithSuggestion(suggestion)
				violations = append(violations, v)
			}
		}
	}

	return violations
}
