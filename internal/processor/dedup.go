package processor

import (
	"fmt"
	"path/filepath"

	"github.com/skillworks/skillctl/internal/rules"
)

// Deduplication removes duplicate violations.
// Two violations are duplicates if they share file, line, column, and rule
// code. Columns are part of the key because one line can legitimately carry
// several violations of the same rule at different match positions.
type Deduplication struct{}

// NewDeduplication creates a new deduplication processor.
func NewDeduplication() *Deduplication {
	return &Deduplication{}
}

// Name returns the processor's identifier.
func (p *Deduplication) Name() string {
	return "deduplication"
}

// Process removes duplicate violations.
// Keeps the first occurrence of each unique (file, line, column, rule) combination.
func (p *Deduplication) Process(violations []rules.Violation, _ *Context) []rules.Violation {
	seen := make(map[string]bool)
	return filterViolations(violations, func(v rules.Violation) bool {
		key := fmt.Sprintf("%s:%d:%d:%s",
			filepath.ToSlash(v.Location.File), v.Location.Start.Line, v.Location.Start.Column, v.RuleCode)
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}
