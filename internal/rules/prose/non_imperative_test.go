package prose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillworks/skillctl/internal/rules"
	"github.com/skillworks/skillctl/internal/rules/prose"
	"github.com/skillworks/skillctl/internal/testutil"
)

func TestNonImperativeMoodRule(t *testing.T) {
	testutil.RunRuleTests(t, prose.NewNonImperativeMoodRule(), []testutil.RuleTestCase{
		{
			Name:           "imperative prose is clean",
			Content:        "Retry on failure.\nPin the dependency version.",
			WantViolations: 0,
		},
		{
			Name:           "modal hedging",
			Content:        "The caller should retry on failure.",
			WantViolations: 1,
			WantCodes:      []string{prose.NonImperativeMoodCode},
			WantMatches:    []string{"should retry"},
			WantMessages:   []string{`non-imperative mood: "should retry"`},
		},
		{
			Name:           "could and might",
			Content:        "It could fail under load.\nThe cache might grow unbounded.",
			WantViolations: 2,
			WantMatches:    []string{"could fail", "might grow"},
			WantLines:      []int{1, 2},
		},
		{
			Name:           "consider plus gerund",
			Content:        "Consider adding a timeout.",
			WantViolations: 1,
			WantMatches:    []string{"consider adding"},
		},
		{
			Name:           "two modals on one line",
			Content:        "It might work or might not.",
			WantViolations: 2,
			WantMatches:    []string{"might work", "might not"},
		},
		{
			Name:           "code blocks are exempt",
			Content:        "Set the timeout.\n```\nthis should match nothing\n```",
			WantViolations: 0,
		},
	})
}

func TestNonImperativeMoodRule_Metadata(t *testing.T) {
	meta := prose.NewNonImperativeMoodRule().Metadata()

	assert.Equal(t, prose.NonImperativeMoodCode, meta.Code)
	assert.Equal(t, rules.SeverityWarning, meta.DefaultSeverity)
	assert.Equal(t, "prose", meta.Category)
}
