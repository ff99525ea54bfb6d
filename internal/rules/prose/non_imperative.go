package prose

import "github.com/skillworks/skillctl/internal/rules"

// NonImperativeMoodCode is the rule code for the non-imperative mood rule.
const NonImperativeMoodCode = "non_imperative_mood"

var nonImperativePatterns = []pattern{
	mustPattern(`\b(?:should|would|could|might|may)\s+\w+\b`, "State the action directly"),
	mustPattern(`\bconsider\s+\w+ing\b`, "Name the recommended action"),
}

// NonImperativeMoodRule flags hedged, modal phrasing in prose lines.
type NonImperativeMoodRule struct{}

// NewNonImperativeMoodRule creates a new non-imperative mood rule instance.
func NewNonImperativeMoodRule() *NonImperativeMoodRule {
	return &NonImperativeMoodRule{}
}

// Metadata returns the rule metadata.
func (r *NonImperativeMoodRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             NonImperativeMoodCode,
		Name:             "Non-Imperative Mood",
		Description:      "Flags modal hedging (should/could/might); instructions state the action",
		DefaultSeverity:  rules.SeverityWarning,
		Category:         "prose",
		EnabledByDefault: true,
	}
}

// Check runs the non-imperative mood rule.
func (r *NonImperativeMoodRule) Check(input rules.LintInput) []rules.Violation {
	return checkPatterns(input, r.Metadata(),
		"non-imperative mood", "State the action directly", nonImperativePatterns)
}

// init registers the rule with the default registry.
func init() {
	rules.Register(NewNonImperativeMoodRule())
}
