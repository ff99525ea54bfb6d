package structure

import (
	"fmt"
	"strings"

	"github.com/skillworks/skillctl/internal/markdown"
	"github.com/skillworks/skillctl/internal/rules"
	"github.com/skillworks/skillctl/internal/rules/configutil"
)

// MissingAntiPatternsCode is the rule code for the missing anti-patterns rule.
const MissingAntiPatternsCode = "missing_anti_patterns"

// MissingAntiPatternsConfig is the configuration for the missing anti-patterns rule.
type MissingAntiPatternsConfig struct {
	// MinLines is the document length above which the rule applies.
	// Shorter documents are exempt.
	MinLines *int `json:"min-lines,omitempty" koanf:"min-lines"`
}

// DefaultMissingAntiPatternsConfig returns the default configuration.
func DefaultMissingAntiPatternsConfig() MissingAntiPatternsConfig {
	minLines := 100
	return MissingAntiPatternsConfig{MinLines: &minLines}
}

// HasAntiPatterns reports whether the document mentions anti-patterns or
// discouraged practices anywhere, by whole-document case-insensitive search.
func HasAntiPatterns(doc *markdown.Document) bool {
	for i := range doc.LineCount() {
		lower := strings.ToLower(doc.Line(i))
		if strings.Contains(lower, "anti-pattern") || strings.Contains(lower, "antipattern") {
			return true
		}
		if strings.Contains(lower, "don't") || strings.Contains(lower, "do not") {
			return true
		}
		if strings.Contains(lower, "avoid") {
			return true
		}
		if strings.Contains(lower, "❌") && strings.Contains(lower, "wrong") {
			return true
		}
	}
	return false
}

// HasBestPractices reports whether the document mentions recommended
// practices anywhere. Exposed as a file-level flag, never a violation.
func HasBestPractices(doc *markdown.Document) bool {
	for i := range doc.LineCount() {
		lower := strings.ToLower(doc.Line(i))
		if strings.Contains(lower, "best practice") || strings.Contains(lower, "recommended") {
			return true
		}
		if strings.Contains(lower, "✅") && strings.Contains(lower, "correct") {
			return true
		}
	}
	return false
}

// MissingAntiPatternsRule flags long documents that never discuss what not
// to do. Emits at most one violation per file, anchored at line 1.
type MissingAntiPatternsRule struct{}

// NewMissingAntiPatternsRule creates a new missing anti-patterns rule instance.
func NewMissingAntiPatternsRule() *MissingAntiPatternsRule {
	return &MissingAntiPatternsRule{}
}

// Metadata returns the rule metadata.
func (r *MissingAntiPatternsRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             MissingAntiPatternsCode,
		Name:             "Missing Anti-Patterns",
		Description:      "Flags long documents with no anti-pattern or discouraged-practice section",
		DefaultSeverity:  rules.SeverityInfo,
		Category:         "structure",
		EnabledByDefault: true,
	}
}

// DefaultConfig returns the default configuration for this rule.
func (r *MissingAntiPatternsRule) DefaultConfig() any {
	return DefaultMissingAntiPatternsConfig()
}

// ValidateConfig checks if a configuration is valid for this rule.
func (r *MissingAntiPatternsRule) ValidateConfig(config any) error {
	if config == nil {
		return nil
	}
	opts, ok := config.(map[string]any)
	if !ok {
		if _, typed := config.(MissingAntiPatternsConfig); typed {
			return nil
		}
		return fmt.Errorf("missing_anti_patterns: unsupported config type %T", config)
	}
	for key, val := range opts {
		if key != "min-lines" {
			return fmt.Errorf("missing_anti_patterns: unknown option %q", key)
		}
		switch n := val.(type) {
		case int:
			if n < 0 {
				return fmt.Errorf("missing_anti_patterns: min-lines must be non-negative, got %d", n)
			}
		case int64:
			if n < 0 {
				return fmt.Errorf("missing_anti_patterns: min-lines must be non-negative, got %d", n)
			}
		case float64:
			if n < 0 {
				return fmt.Errorf("missing_anti_patterns: min-lines must be non-negative, got %v", n)
			}
		default:
			return fmt.Errorf("missing_anti_patterns: min-lines must be a number, got %T", val)
		}
	}
	return nil
}

// Check runs the missing anti-patterns rule.
func (r *MissingAntiPatternsRule) Check(input rules.LintInput) []rules.Violation {
	cfg := configutil.Coerce(input.Config, DefaultMissingAntiPatternsConfig())
	meta := r.Metadata()
	doc := input.Doc

	minLines := 100
	if cfg.MinLines != nil {
		minLines = *cfg.MinLines
	}

	if doc.LineCount() <= minLines {
		return nil
	}
	if HasAntiPatterns(doc) {
		return nil
	}

	v := rules.NewViolation(
		rules.NewLineLocation(input.File, 1),
		meta.Code,
		fmt.Sprintf("document has %d lines but never covers anti-patterns or practices to avoid", doc.LineCount()),
		meta.DefaultSeverity,
	).WithSuggestion("Add an Anti-patterns section showing what not to do")
	return []rules.Violation{v}
}

// init registers the rule with the default registry.
func init() {
	rules.Register(NewMissingAntiPatternsRule())
}
