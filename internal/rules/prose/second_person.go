package prose

import "github.com/skillworks/skillctl/internal/rules"

// SecondPersonVoiceCode is the rule code for the second-person voice rule.
const SecondPersonVoiceCode = "second_person_voice"

// secondPersonPatterns flags direct second-person phrasing. Skill documents
// are written in imperative voice throughout; "you should", "you must" and
// friends all have imperative rewrites.
var secondPersonPatterns = []pattern{
	mustPattern(`\byou\s+should\b`, "Use / Apply / Implement"),
	mustPattern(`\byou\s+must\b`, "Must / Always / Required:"),
	mustPattern(`\byou\s+can\b`, "To accomplish X, [verb]"),
	mustPattern(`\byou\s+need\s+to\b`, "[Verb directly]"),
	mustPattern(`\byou\s+have\s+to\b`, "Required: / Must"),
	mustPattern(`\byou\s+want\s+to\b`, "To accomplish X, [verb]"),
	mustPattern(`\byou'll\s+need\b`, "Required: / Need:"),
	mustPattern(`\byou'll\s+want\b`, "To accomplish X, [verb]"),
	mustPattern(`\byour\s+\w+\s+should\b`, ""),
	mustPattern(`\byour\s+\w+\s+must\b`, ""),
	mustPattern(`\bif\s+you\b`, ""),
	mustPattern(`\bwhen\s+you\b`, ""),
}

// SecondPersonVoiceRule flags second-person phrasing in prose lines.
type SecondPersonVoiceRule struct{}

// NewSecondPersonVoiceRule creates a new second-person voice rule instance.
func NewSecondPersonVoiceRule() *SecondPersonVoiceRule {
	return &SecondPersonVoiceRule{}
}

// Metadata returns the rule metadata.
func (r *SecondPersonVoiceRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             SecondPersonVoiceCode,
		Name:             "Second-Person Voice",
		Description:      "Disallows second-person phrasing; skill prose uses imperative voice",
		DefaultSeverity:  rules.SeverityError,
		Category:         "prose",
		EnabledByDefault: true,
	}
}

// Check runs the second-person voice rule.
func (r *SecondPersonVoiceRule) Check(input rules.LintInput) []rules.Violation {
	return checkPatterns(input, r.Metadata(),
		"second-person voice", "[Rewrite in imperative voice]", secondPersonPatterns)
}

// init registers the rule with the default registry.
func init() {
	rules.Register(NewSecondPersonVoiceRule())
}
