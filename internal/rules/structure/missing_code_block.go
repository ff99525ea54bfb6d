package structure

import "github.com/skillworks/skillctl/internal/rules"

// MissingCodeBlockCode is the rule code for the missing code block rule.
const MissingCodeBlockCode = "missing_code_block"

// MissingCodeBlockRule requires every example marker to be immediately
// followed by a fenced code block. The very next line must be the fence
// start; a blank line in between already counts as a violation.
type MissingCodeBlockRule struct{}

// NewMissingCodeBlockRule creates a new missing code block rule instance.
func NewMissingCodeBlockRule() *MissingCodeBlockRule {
	return &MissingCodeBlockRule{}
}

// Metadata returns the rule metadata.
func (r *MissingCodeBlockRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             MissingCodeBlockCode,
		Name:             "Missing Code Block",
		Description:      "Requires a fenced code block immediately after each example marker",
		DefaultSeverity:  rules.SeverityWarning,
		Category:         "structure",
		EnabledByDefault: true,
	}
}

// Check runs the missing code block rule.
func (r *MissingCodeBlockRule) Check(input rules.LintInput) []rules.Violation {
	meta := r.Metadata()
	doc := input.Doc

	var violations []rules.Violation
	for i := range doc.LineCount() {
		pos, neg := isProseMarker(doc, i)
		if !pos && !neg {
			continue
		}
		if doc.IsFenceStart(i + 1) {
			continue
		}
		kind := "good"
		if neg {
			kind = "bad"
		}
		v := rules.NewViolation(
			rules.NewLineLocation(input.File, i+1),
			meta.Code,
			kind+" example marker is not followed by a fenced code block",
			meta.DefaultSeverity,
		).
			WithLineContent(doc.Line(i)).
			WithSuggestion("Put a ``` fence on the line after the marker")
		violations = append(violations, v)
	}
	return violations
}

// init registers the rule with the default registry.
func init() {
	rules.Register(NewMissingCodeBlockRule())
}
