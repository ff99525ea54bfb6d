package reporter

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownReporter formats lint results as a markdown report.
// Designed for review threads and AI agents - compact and actionable.
type MarkdownReporter struct {
	writer    io.Writer
	maxDetail int
}

// NewMarkdownReporter creates a new Markdown reporter.
func NewMarkdownReporter(w io.Writer, maxDetail int) *MarkdownReporter {
	return &MarkdownReporter{writer: w, maxDetail: maxDetail}
}

// Report implements Reporter.
func (r *MarkdownReporter) Report(reports []FileReport, metadata ReportMetadata) error {
	sorted := SortReports(reports)
	totals := ComputeTotals(sorted)

	fmt.Fprintln(r.writer, "# Lint Report")
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "| Metric | Count |")
	fmt.Fprintln(r.writer, "|--------|-------|")
	fmt.Fprintf(r.writer, "| Files checked | %d |\n", metadata.FilesScanned)
	fmt.Fprintf(r.writer, "| Files with violations | %d |\n", totals.FilesWithViolations)
	fmt.Fprintf(r.writer, "| Errors | %d |\n", totals.Errors)
	fmt.Fprintf(r.writer, "| Warnings | %d |\n", totals.Warnings)
	fmt.Fprintf(r.writer, "| Info | %d |\n", totals.Info)

	if totals.Violations == 0 {
		fmt.Fprintln(r.writer)
		fmt.Fprintln(r.writer, "**No issues found**")
		return nil
	}

	if r.maxDetail <= 0 {
		return nil
	}

	for i := range sorted {
		fr := &sorted[i]
		if len(fr.Violations) == 0 {
			continue
		}
		if err := r.writeFileSection(fr); err != nil {
			return err
		}
	}

	return nil
}

// writeFileSection renders one file's violations grouped by type.
func (r *MarkdownReporter) writeFileSection(fr *FileReport) error {
	fmt.Fprintln(r.writer)
	fmt.Fprintf(r.writer, "## `%s` (%d %s)\n",
		fr.Path, len(fr.Violations), pluralize(len(fr.Violations), "issue", "issues"))

	for _, group := range groupByType(fr.Violations) {
		sev := group.Violations[0].Severity
		fmt.Fprintln(r.writer)
		fmt.Fprintf(r.writer, "### %s %s (%s)\n", sev.Icon(), group.Type, sev.Label())
		fmt.Fprintln(r.writer)
		fmt.Fprintln(r.writer, "| Line | Message | Suggestion |")
		fmt.Fprintln(r.writer, "|------|---------|------------|")

		shown := group.Violations
		omitted := 0
		if len(shown) > r.maxDetail {
			omitted = len(shown) - r.maxDetail
			shown = shown[:r.maxDetail]
		}
		for _, v := range shown {
			fmt.Fprintf(r.writer, "| %d | %s | %s |\n",
				v.Location.Start.Line, escapeMarkdown(v.Message), escapeMarkdown(v.Suggestion))
		}
		if omitted > 0 {
			fmt.Fprintf(r.writer, "\n... and %d more\n", omitted)
		}
	}

	return nil
}

// escapeMarkdown escapes special markdown characters in table cells.
func escapeMarkdown(s string) string {
	// Escape pipe characters which break table formatting
	s = strings.ReplaceAll(s, "|", "\\|")
	// Replace newlines with spaces
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// pluralize returns singular or plural form based on count.
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
