package processor

import (
	"strings"

	"github.com/skillworks/skillctl/internal/rules"
)

// PathNormalization rewrites violation file paths to forward slashes.
// Reports and dedup keys are slash-separated regardless of platform.
type PathNormalization struct{}

// NewPathNormalization creates a new path normalization processor.
func NewPathNormalization() *PathNormalization {
	return &PathNormalization{}
}

// Name returns the processor's identifier.
func (p *PathNormalization) Name() string {
	return "path-normalization"
}

// Process normalizes every violation's file path in place.
func (p *PathNormalization) Process(violations []rules.Violation, _ *Context) []rules.Violation {
	return transformViolations(violations, func(v rules.Violation) rules.Violation {
		v.Location.File = strings.ReplaceAll(v.Location.File, "\\", "/")
		return v
	})
}
