package rules

import "github.com/skillworks/skillctl/internal/markdown"

// LintInput contains all the information a rule needs to check a document.
//
// The linter guarantees that Doc is always non-nil when Check is called.
//
// IMPORTANT: LintInput is read-only. Rules must not mutate any fields. If a
// rule needs to modify data, it must copy it first. This prevents hidden
// coupling between rules.
type LintInput struct {
	// File is the path to the document being linted.
	File string

	// Source is the raw source content of the document.
	Source []byte

	// Doc is the classified document (guaranteed non-nil). Rules use its
	// per-line context flags instead of re-scanning the raw source.
	Doc *markdown.Document

	// Config is the rule-specific configuration (type depends on rule).
	Config any
}

// RuleMetadata contains static information about a rule.
type RuleMetadata struct {
	// Code is the unique identifier (e.g., "second_person_voice").
	Code string

	// Name is the human-readable rule name.
	Name string

	// Description explains what the rule checks.
	Description string

	// DefaultSeverity is the severity when not overridden.
	DefaultSeverity Severity

	// Category groups related rules (e.g., "prose", "structure").
	Category string

	// EnabledByDefault indicates if the rule runs without explicit opt-in.
	EnabledByDefault bool
}

// Rule is the interface that all linting rules must implement.
type Rule interface {
	// Metadata returns static information about the rule.
	Metadata() RuleMetadata

	// Check runs the rule against the given input and returns any violations.
	Check(input LintInput) []Violation
}

// ConfigurableRule is an optional interface for rules that accept configuration.
type ConfigurableRule interface {
	Rule

	// DefaultConfig returns the default configuration for this rule.
	DefaultConfig() any

	// ValidateConfig checks if a configuration is valid for this rule.
	ValidateConfig(config any) error
}
