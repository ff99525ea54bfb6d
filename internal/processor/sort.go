package processor

import (
	"github.com/skillworks/skillctl/internal/reporter"
	"github.com/skillworks/skillctl/internal/rules"
)

// Sorting orders violations by file, line, column, then rule code. Runs
// last in the chain so the earlier filters never disturb output order.
type Sorting struct{}

// NewSorting creates a new sorting processor.
func NewSorting() *Sorting {
	return &Sorting{}
}

// Name returns the processor's identifier.
func (p *Sorting) Name() string {
	return "sorting"
}

// Process delegates to reporter.SortViolations, the one ordering shared by
// every output format.
func (p *Sorting) Process(violations []rules.Violation, _ *Context) []rules.Violation {
	return reporter.SortViolations(violations)
}
