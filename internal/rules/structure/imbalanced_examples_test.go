package structure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillworks/skillctl/internal/rules"
	"github.com/skillworks/skillctl/internal/rules/structure"
	"github.com/skillworks/skillctl/internal/testutil"
)

func TestImbalancedExamplesRule(t *testing.T) {
	testutil.RunRuleTests(t, structure.NewImbalancedExamplesRule(), []testutil.RuleTestCase{
		{
			Name:           "balanced examples",
			Content:        "✅ Good:\n```\nok\n```\n❌ Wrong:\n```\nbad\n```",
			WantViolations: 0,
		},
		{
			Name:           "no examples at all",
			Content:        "# Title\nJust prose.",
			WantViolations: 0,
		},
		{
			Name:           "only positive examples",
			Content:        "## Examples\n✅ Good:\n```\nok\n```",
			WantViolations: 1,
			WantCodes:      []string{structure.ImbalancedExamplesCode},
			WantLines:      []int{2},
			WantMessages:   []string{"only the good pattern; add a bad example"},
		},
		{
			Name:           "only negative examples",
			Content:        "❌ Wrong:\n```\nbad\n```",
			WantViolations: 1,
			WantLines:      []int{1},
			WantMessages:   []string{"only the bad pattern; add a good example"},
		},
		{
			Name:           "markers inside code blocks do not count",
			Content:        "✅ Good:\n```\n❌ quoted, not a marker\n```",
			WantViolations: 1,
			WantMessages:   []string{"only the good pattern"},
		},
	})
}

func TestImbalancedExamplesRule_Metadata(t *testing.T) {
	meta := structure.NewImbalancedExamplesRule().Metadata()

	assert.Equal(t, structure.ImbalancedExamplesCode, meta.Code)
	assert.Equal(t, rules.SeverityInfo, meta.DefaultSeverity)
	assert.Equal(t, "structure", meta.Category)
}
