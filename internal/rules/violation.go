package rules

// Violation represents a single linting violation found in a skill document.
type Violation struct {
	// Location specifies where the violation occurred.
	Location Location `json:"location"`

	// RuleCode is the unique identifier for the rule
	// (e.g., "second_person_voice", "missing_code_block").
	RuleCode string `json:"type"`

	// Message is a human-readable description of the issue.
	Message string `json:"message"`

	// Severity indicates how critical this violation is.
	Severity Severity `json:"severity"`

	// LineContent is the original, case-preserved text of the offending line
	// (optional; empty for file-level violations).
	LineContent string `json:"line_content,omitempty"`

	// MatchedText is the substring that triggered the rule, lower-cased the
	// way the matcher saw it (optional).
	MatchedText string `json:"matched_text,omitempty"`

	// Suggestion is a short rewrite hint (optional).
	Suggestion string `json:"suggestion,omitempty"`
}

// NewViolation creates a new violation with the minimum required fields.
func NewViolation(loc Location, ruleCode, message string, severity Severity) Violation {
	return Violation{
		Location: loc,
		RuleCode: ruleCode,
		Message:  message,
		Severity: severity,
	}
}

// WithLineContent adds the original line text to the violation.
func (v Violation) WithLineContent(line string) Violation {
	v.LineContent = line
	return v
}

// WithMatchedText adds the matched substring to the violation.
func (v Violation) WithMatchedText(text string) Violation {
	v.MatchedText = text
	return v
}

// WithSuggestion adds a rewrite hint to the violation.
func (v Violation) WithSuggestion(s string) Violation {
	v.Suggestion = s
	return v
}

// File returns the file path from the location.
func (v Violation) File() string {
	return v.Location.File
}

// Line returns the starting line number.
func (v Violation) Line() int {
	return v.Location.Start.Line
}
