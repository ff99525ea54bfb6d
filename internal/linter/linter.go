// Package linter provides the lint pipeline shared by the CLI commands.
//
// The pipeline: config → discovery → per-file classify → rule execution →
// processor chain → file reports. Files are processed one at a time; each
// report is independent of the others.
package linter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/skillworks/skillctl/internal/config"
	"github.com/skillworks/skillctl/internal/discovery"
	"github.com/skillworks/skillctl/internal/markdown"
	"github.com/skillworks/skillctl/internal/processor"
	"github.com/skillworks/skillctl/internal/reporter"
	"github.com/skillworks/skillctl/internal/rules"
	_ "github.com/skillworks/skillctl/internal/rules/all" // Register all rules.
	"github.com/skillworks/skillctl/internal/rules/structure"
)

// Linter runs the lint pipeline over skill documents.
type Linter struct {
	cfg      *config.Config
	registry *rules.Registry
	chain    *processor.Chain
	log      *logrus.Logger
}

// Option customizes a Linter.
type Option func(*Linter)

// WithRegistry overrides the rule registry (for testing).
func WithRegistry(registry *rules.Registry) Option {
	return func(l *Linter) { l.registry = registry }
}

// WithLogger overrides the logger.
func WithLogger(log *logrus.Logger) Option {
	return func(l *Linter) { l.log = log }
}

// New creates a Linter with the standard processor chain.
func New(cfg *config.Config, opts ...Option) *Linter {
	l := &Linter{
		cfg:      cfg,
		registry: rules.DefaultRegistry(),
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.chain = processor.NewChain(
		processor.NewPathNormalization(),
		processor.NewSeverityOverride(),
		processor.NewEnableFilterWithRegistry(l.registry),
		processor.NewDeduplication(),
		processor.NewSorting(),
	)
	return l
}

// Run discovers documents under the given inputs and lints each one.
// Unreadable files are logged and skipped; they don't abort the scan and
// don't appear in the returned reports.
func (l *Linter) Run(inputs []string) ([]reporter.FileReport, error) {
	files, err := discovery.Discover(inputs, discovery.Options{
		Patterns:        l.cfg.Discovery.Patterns,
		ExcludePatterns: l.cfg.Discovery.ExcludePatterns,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	if len(files) == 0 {
		return nil, discovery.ErrNoFiles
	}

	reports := make([]reporter.FileReport, 0, len(files))
	for _, f := range files {
		content, err := os.ReadFile(f.Path)
		if err != nil {
			l.log.WithError(err).WithField("file", f.Path).Warn("skipping unreadable file")
			continue
		}
		reports = append(reports, l.LintContent(f.Path, content))
	}
	return reports, nil
}

// LintContent lints a single document that is already in memory.
func (l *Linter) LintContent(path string, content []byte) reporter.FileReport {
	doc := markdown.Parse(content)

	baseInput := rules.LintInput{
		File:   path,
		Source: content,
		Doc:    doc,
	}

	var violations []rules.Violation
	for _, rule := range l.registry.All() {
		ruleInput := baseInput
		ruleInput.Config = l.cfg.Rules.GetOptions(rule.Metadata().Code)
		violations = append(violations, rule.Check(ruleInput)...)
	}

	violations = l.chain.Process(violations, processor.NewContext(l.cfg))

	return reporter.FileReport{
		Path:             filepath.ToSlash(path),
		LineCount:        doc.LineCount(),
		Violations:       violations,
		HasExamples:      structure.HasExampleMarkers(doc),
		HasAntiPatterns:  structure.HasAntiPatterns(doc),
		HasBestPractices: structure.HasBestPractices(doc),
	}
}

// EnabledRuleCount reports how many registered rules are active under the
// current configuration. Used for report metadata.
func (l *Linter) EnabledRuleCount() int {
	n := 0
	for _, rule := range l.registry.All() {
		meta := rule.Metadata()
		if l.cfg.Rules.GetSeverity(meta.Code) == "off" {
			continue
		}
		if enabled := l.cfg.Rules.IsEnabled(meta.Code, meta.Category); enabled != nil {
			if !*enabled {
				continue
			}
		} else if !meta.EnabledByDefault {
			continue
		}
		n++
	}
	return n
}

// DetermineExitSeverity returns the most severe violation severity across
// the reports, or false when there are no violations at all.
func DetermineExitSeverity(reports []reporter.FileReport) (rules.Severity, bool) {
	found := false
	worst := rules.SeverityInfo
	for i := range reports {
		for _, v := range reports[i].Violations {
			if !found || v.Severity.IsAtLeast(worst) {
				worst = v.Severity
				found = true
			}
		}
	}
	return worst, found
}
