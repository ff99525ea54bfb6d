// Package testutil provides test helpers for the skill document linter.
package testutil

import (
	"strings"
	"testing"

	"github.com/skillworks/skillctl/internal/markdown"
	"github.com/skillworks/skillctl/internal/rules"
)

// MakeLintInput creates a LintInput for testing a rule.
// Classifies the document content and constructs the input struct.
func MakeLintInput(tb testing.TB, file, content string) rules.LintInput {
	tb.Helper()

	source := []byte(content)
	return rules.LintInput{
		File:   file,
		Source: source,
		Doc:    markdown.Parse(source),
		Config: nil, // Set by individual tests if needed
	}
}

// MakeLintInputWithConfig creates a LintInput with rule configuration.
func MakeLintInputWithConfig(tb testing.TB, file, content string, config any) rules.LintInput {
	tb.Helper()

	input := MakeLintInput(tb, file, content)
	input.Config = config
	return input
}

// RuleTestCase defines a test case for table-driven rule tests.
type RuleTestCase struct {
	// Name is the test case name.
	Name string

	// Content is the document content to lint.
	Content string

	// Config is the optional rule configuration.
	Config any

	// WantViolations is the expected number of violations.
	// Use -1 to skip the count check.
	WantViolations int

	// WantCodes is the expected rule codes in violation order (for detailed checks).
	WantCodes []string

	// WantMessages are substrings expected in violation messages.
	WantMessages []string

	// WantMatches is the expected MatchedText values in violation order.
	WantMatches []string

	// WantLines is the expected 1-based line numbers in violation order.
	WantLines []int
}

// RunRuleTests runs a table of test cases against a rule.
func RunRuleTests(t *testing.T, rule rules.Rule, cases []RuleTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			input := MakeLintInputWithConfig(t, "SKILL.md", tc.Content, tc.Config)
			violations := rule.Check(input)

			if tc.WantViolations >= 0 && len(violations) != tc.WantViolations {
				t.Errorf("got %d violations, want %d", len(violations), tc.WantViolations)
				for i, v := range violations {
					t.Logf("  [%d] %s: %s", i, v.RuleCode, v.Message)
				}
			}

			if len(tc.WantCodes) > 0 {
				if len(violations) != len(tc.WantCodes) {
					t.Errorf("got %d violations, want %d codes", len(violations), len(tc.WantCodes))
				} else {
					for i, code := range tc.WantCodes {
						if violations[i].RuleCode != code {
							t.Errorf("violation[%d].RuleCode = %q, want %q", i, violations[i].RuleCode, code)
						}
					}
				}
			}

			for _, want := range tc.WantMessages {
				found := false
				for _, v := range violations {
					if strings.Contains(v.Message, want) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("no violation message contains %q", want)
					for i, v := range violations {
						t.Logf("  [%d] %s", i, v.Message)
					}
				}
			}

			if len(tc.WantMatches) > 0 {
				if len(violations) != len(tc.WantMatches) {
					t.Errorf("got %d violations, want %d matches", len(violations), len(tc.WantMatches))
				} else {
					for i, match := range tc.WantMatches {
						if violations[i].MatchedText != match {
							t.Errorf("violation[%d].MatchedText = %q, want %q", i, violations[i].MatchedText, match)
						}
					}
				}
			}

			if len(tc.WantLines) > 0 {
				if len(violations) != len(tc.WantLines) {
					t.Errorf("got %d violations, want %d lines", len(violations), len(tc.WantLines))
				} else {
					for i, line := range tc.WantLines {
						if violations[i].Line() != line {
							t.Errorf("violation[%d].Line() = %d, want %d", i, violations[i].Line(), line)
						}
					}
				}
			}
		})
	}
}
