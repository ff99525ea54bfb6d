// Package reporter provides output formatters for lint results.
//
// The package supports multiple output formats:
//   - text: Human-readable terminal output with colors
//   - markdown: Markdown report for review threads and AI agents
//   - json: Machine-readable JSON output with a fixed schema
//
// All three formats render the same underlying counts; severity labels and
// icons come from the Severity type, never re-derived per format.
package reporter

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/skillworks/skillctl/internal/rules"
)

// FileReport is the aggregate lint result for one document.
// Built incrementally during the scan, read-only afterwards.
type FileReport struct {
	// Path is the document path, normalized to forward slashes.
	Path string

	// LineCount is the number of lines in the document.
	LineCount int

	// Violations holds every violation for the file, in stable order.
	Violations []rules.Violation

	// HasExamples is true when the document contains good/bad example markers.
	HasExamples bool

	// HasAntiPatterns is true when the document discusses anti-patterns.
	HasAntiPatterns bool

	// HasBestPractices is true when the document discusses recommended practices.
	HasBestPractices bool
}

// CountBySeverity returns the number of violations with the given severity.
// Counts are derived on read, never stored.
func (r *FileReport) CountBySeverity(s rules.Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == s {
			n++
		}
	}
	return n
}

// ErrorCount returns the number of error violations.
func (r *FileReport) ErrorCount() int { return r.CountBySeverity(rules.SeverityError) }

// WarningCount returns the number of warning violations.
func (r *FileReport) WarningCount() int { return r.CountBySeverity(rules.SeverityWarning) }

// InfoCount returns the number of info violations.
func (r *FileReport) InfoCount() int { return r.CountBySeverity(rules.SeverityInfo) }

// Totals aggregates counts across a set of reports.
type Totals struct {
	Files               int
	FilesWithViolations int
	Violations          int
	Errors              int
	Warnings            int
	Info                int
}

// ComputeTotals derives summary counts from a set of file reports.
func ComputeTotals(reports []FileReport) Totals {
	t := Totals{Files: len(reports)}
	for i := range reports {
		r := &reports[i]
		if len(r.Violations) > 0 {
			t.FilesWithViolations++
		}
		t.Violations += len(r.Violations)
		t.Errors += r.ErrorCount()
		t.Warnings += r.WarningCount()
		t.Info += r.InfoCount()
	}
	return t
}

// ReportMetadata contains contextual information about the lint run.
type ReportMetadata struct {
	// FilesScanned is the total number of files that were scanned.
	FilesScanned int
	// RulesEnabled is the total number of rules that were active (not "off").
	RulesEnabled int
}

// Reporter formats and outputs lint results.
type Reporter interface {
	// Report writes the file reports to the configured output.
	Report(reports []FileReport, metadata ReportMetadata) error
}

// SortViolations sorts violations by file, line, column, and rule code for stable output.
// Uses SliceStable and compares all position fields plus rule code to ensure deterministic order.
func SortViolations(violations []rules.Violation) []rules.Violation {
	sorted := make([]rules.Violation, len(violations))
	copy(sorted, violations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Location.File != sorted[j].Location.File {
			return sorted[i].Location.File < sorted[j].Location.File
		}
		if sorted[i].Location.Start.Line != sorted[j].Location.Start.Line {
			return sorted[i].Location.Start.Line < sorted[j].Location.Start.Line
		}
		if sorted[i].Location.Start.Column != sorted[j].Location.Start.Column {
			return sorted[i].Location.Start.Column < sorted[j].Location.Start.Column
		}
		return sorted[i].RuleCode < sorted[j].RuleCode
	})
	return sorted
}

// SortReports sorts reports by path for deterministic output.
func SortReports(reports []FileReport) []FileReport {
	sorted := make([]FileReport, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}

// typeGroup is a set of violations sharing a rule code, for detail views.
type typeGroup struct {
	Type       string
	Violations []rules.Violation
}

// groupByType buckets a file's violations by rule code, groups sorted by
// type name, violations within a group in line then column order.
func groupByType(violations []rules.Violation) []typeGroup {
	byType := make(map[string][]rules.Violation)
	for _, v := range violations {
		byType[v.RuleCode] = append(byType[v.RuleCode], v)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	groups := make([]typeGroup, 0, len(types))
	for _, t := range types {
		groups = append(groups, typeGroup{Type: t, Violations: SortViolations(byType[t])})
	}
	return groups
}

// Format represents an output format type.
type Format string

const (
	// FormatText is human-readable terminal output.
	FormatText Format = "text"
	// FormatMarkdown is a markdown report.
	FormatMarkdown Format = "markdown"
	// FormatJSON is machine-readable JSON output.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string into a Format type.
// Returns an error if the format is unknown.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format: %q (valid: text, markdown, json)", s)
	}
}

// Options configures reporter creation.
type Options struct {
	// Format specifies the output format.
	Format Format

	// Writer is the output destination.
	Writer io.Writer

	// Color enables/disables colored output (text format only).
	// nil means auto-detect.
	Color *bool

	// MaxDetail caps displayed violations per type group in detail views.
	// Zero means no detail is shown.
	MaxDetail int
}

// DefaultOptions returns sensible defaults for reporter options.
func DefaultOptions() Options {
	return Options{
		Format:    FormatText,
		Writer:    os.Stdout,
		Color:     nil, // auto-detect
		MaxDetail: 10,
	}
}

// New creates a reporter based on the format specified in options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch opts.Format {
	case FormatText, "":
		return NewTextReporter(opts.Writer, TextOptions{
			Color:     opts.Color,
			MaxDetail: opts.MaxDetail,
		}), nil

	case FormatMarkdown:
		return NewMarkdownReporter(opts.Writer, opts.MaxDetail), nil

	case FormatJSON:
		return NewJSONReporter(opts.Writer), nil

	default:
		return nil, fmt.Errorf("unknown format: %q", opts.Format)
	}
}

// GetWriter returns an io.Writer for the given output path.
// Supports "stdout", "stderr", or file paths.
func GetWriter(path string) (io.Writer, func() error, error) {
	switch path {
	case "stdout", "":
		return os.Stdout, func() error { return nil }, nil
	case "stderr":
		return os.Stderr, func() error { return nil }, nil
	default:
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		return f, f.Close, nil
	}
}
