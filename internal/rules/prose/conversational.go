package prose

import "github.com/skillworks/skillctl/internal/rules"

// ConversationalToneCode is the rule code for the conversational tone rule.
const ConversationalToneCode = "conversational_tone"

var conversationalPatterns = []pattern{
	mustPattern(`\blet's\b`, "Drop the invitation; state the step"),
	mustPattern(`\bwe\s+(?:can|should|need\s+to)\b`, "State the action directly"),
	mustPattern(`\bi\s+(?:recommend|suggest)\b`, "State the recommendation as a rule"),
	mustPattern(`\bin\s+my\s+experience\b`, "Cite the constraint, not the anecdote"),
}

// ConversationalToneRule flags chatty first-person phrasing in prose lines.
type ConversationalToneRule struct{}

// NewConversationalToneRule creates a new conversational tone rule instance.
func NewConversationalToneRule() *ConversationalToneRule {
	return &ConversationalToneRule{}
}

// Metadata returns the rule metadata.
func (r *ConversationalToneRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             ConversationalToneCode,
		Name:             "Conversational Tone",
		Description:      "Flags conversational filler (let's, we can, I recommend)",
		DefaultSeverity:  rules.SeverityInfo,
		Category:         "prose",
		EnabledByDefault: true,
	}
}

// Check runs the conversational tone rule.
func (r *ConversationalToneRule) Check(input rules.LintInput) []rules.Violation {
	return checkPatterns(input, r.Metadata(),
		"conversational tone", "Use impersonal, imperative phrasing", conversationalPatterns)
}

// init registers the rule with the default registry.
func init() {
	rules.Register(NewConversationalToneRule())
}
