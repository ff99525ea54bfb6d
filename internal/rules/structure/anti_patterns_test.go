package structure_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillworks/skillctl/internal/markdown"
	"github.com/skillworks/skillctl/internal/rules"
	"github.com/skillworks/skillctl/internal/rules/structure"
	"github.com/skillworks/skillctl/internal/testutil"
)

// longDocument builds a document of n identical prose lines that never
// mentions discouraged practices.
func longDocument(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "Describe the workflow step here."
	}
	return strings.Join(lines, "\n")
}

func TestMissingAntiPatternsRule(t *testing.T) {
	testutil.RunRuleTests(t, structure.NewMissingAntiPatternsRule(), []testutil.RuleTestCase{
		{
			Name:           "short document is exempt",
			Content:        longDocument(50),
			WantViolations: 0,
		},
		{
			Name:           "long document without anti-patterns",
			Content:        longDocument(120),
			WantViolations: 1,
			WantCodes:      []string{structure.MissingAntiPatternsCode},
			WantLines:      []int{1},
			WantMessages:   []string{"never covers anti-patterns or practices to avoid"},
		},
		{
			Name:           "long document with avoid guidance",
			Content:        longDocument(119) + "\nAvoid global state.",
			WantViolations: 0,
		},
		{
			Name:           "long document with anti-pattern section",
			Content:        "## Anti-patterns\n" + longDocument(119),
			WantViolations: 0,
		},
		{
			Name:           "threshold lowered via typed config",
			Content:        longDocument(10),
			Config:         structure.MissingAntiPatternsConfig{MinLines: intPtr(5)},
			WantViolations: 1,
		},
		{
			Name:           "threshold raised via map config",
			Content:        longDocument(120),
			Config:         map[string]any{"min-lines": 500},
			WantViolations: 0,
		},
	})
}

func TestHasAntiPatterns(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"anti-pattern keyword", "Common anti-pattern: global mutable state.", true},
		{"antipattern spelling", "This is an antipattern.", true},
		{"dont contraction", "Don't mutate shared state.", true},
		{"do not phrase", "Do not mutate shared state.", true},
		{"avoid keyword", "Avoid shared mutable state.", true},
		{"cross with wrong", "❌ Wrong: this approach fails.", true},
		{"cross without wrong", "❌ Bad: this approach fails.", false},
		{"plain prose", "Describe the workflow.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := markdown.Parse([]byte(tt.content))
			assert.Equal(t, tt.want, structure.HasAntiPatterns(doc))
		})
	}
}

func TestHasBestPractices(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"best practice keyword", "Best practice: pin versions.", true},
		{"recommended keyword", "The recommended layout is flat.", true},
		{"check with correct", "✅ Correct: this approach works.", true},
		{"plain prose", "Describe the workflow.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := markdown.Parse([]byte(tt.content))
			assert.Equal(t, tt.want, structure.HasBestPractices(doc))
		})
	}
}

func TestMissingAntiPatternsRule_ValidateConfig(t *testing.T) {
	rule := structure.NewMissingAntiPatternsRule()

	assert.NoError(t, rule.ValidateConfig(nil))
	assert.NoError(t, rule.ValidateConfig(map[string]any{"min-lines": 50}))
	assert.NoError(t, rule.ValidateConfig(structure.DefaultMissingAntiPatternsConfig()))
	assert.Error(t, rule.ValidateConfig(map[string]any{"min-lines": -1}))
	assert.Error(t, rule.ValidateConfig(map[string]any{"min-lines": "many"}))
	assert.Error(t, rule.ValidateConfig(map[string]any{"unknown": true}))
}

func TestMissingAntiPatternsRule_Metadata(t *testing.T) {
	meta := structure.NewMissingAntiPatternsRule().Metadata()

	assert.Equal(t, structure.MissingAntiPatternsCode, meta.Code)
	assert.Equal(t, rules.SeverityInfo, meta.DefaultSeverity)
	assert.Equal(t, "structure", meta.Category)
}
