package prose

import "github.com/skillworks/skillctl/internal/rules"

// PassiveVoiceCode is the rule code for the passive voice rule.
const PassiveVoiceCode = "passive_voice"

// passivePatterns approximates passive constructions as a "to be" form
// followed by a past-participle-shaped word. A shape heuristic, not a
// grammar: "is based" matches, "is basic" does not.
var passivePatterns = []pattern{
	mustPattern(`\b(?:is|are|was|were|been|being)\s+\w+(?:ed|en)\b`, "Use active voice"),
}

// PassiveVoiceRule flags passive constructions in prose lines.
type PassiveVoiceRule struct{}

// NewPassiveVoiceRule creates a new passive voice rule instance.
func NewPassiveVoiceRule() *PassiveVoiceRule {
	return &PassiveVoiceRule{}
}

// Metadata returns the rule metadata.
func (r *PassiveVoiceRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             PassiveVoiceCode,
		Name:             "Passive Voice",
		Description:      "Flags passive constructions; name the actor and use active voice",
		DefaultSeverity:  rules.SeverityWarning,
		Category:         "prose",
		EnabledByDefault: true,
	}
}

// Check runs the passive voice rule.
func (r *PassiveVoiceRule) Check(input rules.LintInput) []rules.Violation {
	return checkPatterns(input, r.Metadata(),
		"passive voice", "Use active voice", passivePatterns)
}

// init registers the rule with the default registry.
func init() {
	rules.Register(NewPassiveVoiceRule())
}
