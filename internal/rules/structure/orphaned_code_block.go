package structure

import (
	"fmt"
	"strings"

	"github.com/skillworks/skillctl/internal/markdown"
	"github.com/skillworks/skillctl/internal/rules"
	"github.com/skillworks/skillctl/internal/rules/configutil"
)

// OrphanedCodeBlockCode is the rule code for the orphaned code block rule.
const OrphanedCodeBlockCode = "orphaned_code_block"

// OrphanedCodeBlockConfig is the configuration for the orphaned code block rule.
type OrphanedCodeBlockConfig struct {
	// LookbackLines is how far above a fence to search for an example
	// section heading. Fences outside such sections are never flagged.
	LookbackLines *int `json:"lookback-lines,omitempty" koanf:"lookback-lines"`
}

// DefaultOrphanedCodeBlockConfig returns the default configuration.
func DefaultOrphanedCodeBlockConfig() OrphanedCodeBlockConfig {
	lookback := 20
	return OrphanedCodeBlockConfig{LookbackLines: &lookback}
}

// OrphanedCodeBlockRule flags fenced code blocks inside example sections
// that are not introduced by a good/bad marker line.
type OrphanedCodeBlockRule struct{}

// NewOrphanedCodeBlockRule creates a new orphaned code block rule instance.
func NewOrphanedCodeBlockRule() *OrphanedCodeBlockRule {
	return &OrphanedCodeBlockRule{}
}

// Metadata returns the rule metadata.
func (r *OrphanedCodeBlockRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             OrphanedCodeBlockCode,
		Name:             "Orphaned Code Block",
		Description:      "Flags fences in example sections with no adjacent good/bad marker",
		DefaultSeverity:  rules.SeverityInfo,
		Category:         "structure",
		EnabledByDefault: true,
	}
}

// DefaultConfig returns the default configuration for this rule.
func (r *OrphanedCodeBlockRule) DefaultConfig() any {
	return DefaultOrphanedCodeBlockConfig()
}

// ValidateConfig checks if a configuration is valid for this rule.
func (r *OrphanedCodeBlockRule) ValidateConfig(config any) error {
	if config == nil {
		return nil
	}
	opts, ok := config.(map[string]any)
	if !ok {
		if _, typed := config.(OrphanedCodeBlockConfig); typed {
			return nil
		}
		return fmt.Errorf("orphaned_code_block: unsupported config type %T", config)
	}
	for key, val := range opts {
		if key != "lookback-lines" {
			return fmt.Errorf("orphaned_code_block: unknown option %q", key)
		}
		switch n := val.(type) {
		case int:
			if n < 1 {
				return fmt.Errorf("orphaned_code_block: lookback-lines must be positive, got %d", n)
			}
		case int64:
			if n < 1 {
				return fmt.Errorf("orphaned_code_block: lookback-lines must be positive, got %d", n)
			}
		case float64:
			if n < 1 {
				return fmt.Errorf("orphaned_code_block: lookback-lines must be positive, got %v", n)
			}
		default:
			return fmt.Errorf("orphaned_code_block: lookback-lines must be a number, got %T", val)
		}
	}
	return nil
}

// Check runs the orphaned code block rule.
func (r *OrphanedCodeBlockRule) Check(input rules.LintInput) []rules.Violation {
	cfg := configutil.Coerce(input.Config, DefaultOrphanedCodeBlockConfig())
	meta := r.Metadata()
	doc := input.Doc

	lookback := 20
	if cfg.LookbackLines != nil {
		lookback = *cfg.LookbackLines
	}

	var violations []rules.Violation
	for i := range doc.LineCount() {
		// Opening fences only: the fence line carries the post-toggle
		// state, so an opening fence reads as inside the block.
		if !doc.IsFenceStart(i) || !doc.Context(i).CodeBlock {
			continue
		}
		if precededByMarker(doc, i) {
			continue
		}
		if !underExampleHeading(doc, i, lookback) {
			continue
		}
		v := rules.NewViolation(
			rules.NewLineLocation(input.File, i+1),
			meta.Code,
			"code block in example section has no good/bad marker above it",
			meta.DefaultSeverity,
		).
			WithLineContent(doc.Line(i)).
			WithSuggestion("Label the example with a ✅ or ❌ marker line")
		violations = append(violations, v)
	}
	return violations
}

// precededByMarker reports whether the nearest non-blank line above the
// fence is a good/bad example marker.
func precededByMarker(doc *markdown.Document, fence int) bool {
	for j := fence - 1; j >= 0; j-- {
		line := doc.Line(j)
		if strings.TrimSpace(line) == "" {
			continue
		}
		return IsPositiveMarker(line) || IsNegativeMarker(line)
	}
	return false
}

// underExampleHeading reports whether an example section heading appears
// within the lookback window above the fence.
func underExampleHeading(doc *markdown.Document, fence, lookback int) bool {
	start := fence - lookback
	if start < 0 {
		start = 0
	}
	for j := start; j < fence; j++ {
		if exampleHeadingRe.MatchString(doc.Line(j)) {
			return true
		}
	}
	return false
}

// init registers the rule with the default registry.
func init() {
	rules.Register(NewOrphanedCodeBlockRule())
}
