package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/skillworks/skillctl/internal/rules"
)

// Styles for different parts of the output
var (
	// Color detection using termenv (respects NO_COLOR, CLICOLOR_FORCE, terminal detection)
	useColors = termenv.EnvColorProfile() != termenv.Ascii

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")) // Light gray

	fileStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Blue

	typeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213")) // Pink

	lineNumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dark gray

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")) // Green

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")) // Darker gray

	// Severity styles
	severityStyles = map[rules.Severity]lipgloss.Style{
		rules.SeverityError: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		rules.SeverityWarning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")), // Orange
		rules.SeverityInfo: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")), // Blue
	}
)

// TextOptions configures the text reporter output.
type TextOptions struct {
	// Color enables/disables colored output. Default: auto-detect.
	Color *bool

	// MaxDetail caps displayed violations per type group.
	// Zero means the per-file detail section is omitted entirely.
	MaxDetail int
}

// TextReporter formats lint results as styled text output.
type TextReporter struct {
	writer io.Writer
	opts   TextOptions
}

// NewTextReporter creates a new text reporter with the given options.
func NewTextReporter(w io.Writer, opts TextOptions) *TextReporter {
	return &TextReporter{writer: w, opts: opts}
}

// colorEnabled resolves the effective color setting.
func (r *TextReporter) colorEnabled() bool {
	if r.opts.Color != nil {
		return *r.opts.Color
	}
	return useColors
}

// Report implements Reporter.
func (r *TextReporter) Report(reports []FileReport, metadata ReportMetadata) error {
	sorted := SortReports(reports)
	totals := ComputeTotals(sorted)
	color := r.colorEnabled()

	fmt.Fprintf(r.writer, "Checked %d %s\n", metadata.FilesScanned,
		pluralize(metadata.FilesScanned, "file", "files"))

	if totals.Violations == 0 {
		fmt.Fprintln(r.writer, "✅ No violations found")
		return nil
	}

	summary := fmt.Sprintf("❌ Found %d %s in %d %s (%d errors, %d warnings, %d info)",
		totals.Violations, pluralize(totals.Violations, "violation", "violations"),
		totals.FilesWithViolations, pluralize(totals.FilesWithViolations, "file", "files"),
		totals.Errors, totals.Warnings, totals.Info)
	if color {
		summary = headerStyle.Render(summary)
	}
	fmt.Fprintln(r.writer, summary)

	if r.opts.MaxDetail <= 0 {
		return nil
	}

	for i := range sorted {
		fr := &sorted[i]
		if len(fr.Violations) == 0 {
			continue
		}
		r.printFileDetail(fr, color)
	}

	return nil
}

// printFileDetail renders one file's violations grouped by type.
func (r *TextReporter) printFileDetail(fr *FileReport, color bool) {
	sep := strings.Repeat("-", 60)
	fileHeader := fmt.Sprintf("📄 %s (%d %s)", fr.Path,
		len(fr.Violations), pluralize(len(fr.Violations), "violation", "violations"))
	if color {
		fileHeader = fileStyle.Render(fileHeader)
		sep = separatorStyle.Render(sep)
	}
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, fileHeader)
	fmt.Fprintln(r.writer, sep)

	for _, group := range groupByType(fr.Violations) {
		r.printGroup(group, color)
	}
}

// printGroup renders one violation-type group, capped at MaxDetail items.
func (r *TextReporter) printGroup(group typeGroup, color bool) {
	sev := group.Violations[0].Severity
	label := fmt.Sprintf("%s [%s]", group.Type, sev.Label())
	if color {
		styled := typeStyle.Render(group.Type)
		if sevStyle, ok := severityStyles[sev]; ok {
			styled += " " + sevStyle.Render("["+sev.Label()+"]")
		}
		label = styled
	}
	fmt.Fprintf(r.writer, "  %s %s\n", sev.Icon(), label)

	shown := group.Violations
	omitted := 0
	if len(shown) > r.opts.MaxDetail {
		omitted = len(shown) - r.opts.MaxDetail
		shown = shown[:r.opts.MaxDetail]
	}

	for _, v := range shown {
		lineRef := fmt.Sprintf("Line %d:", v.Location.Start.Line)
		if color {
			lineRef = lineNumStyle.Render(lineRef)
		}
		fmt.Fprintf(r.writer, "    %s %s\n", lineRef, v.Message)
		if v.LineContent != "" {
			fmt.Fprintf(r.writer, "      > %s\n", v.LineContent)
		}
		if v.Suggestion != "" {
			hint := "Suggestion: " + v.Suggestion
			if color {
				hint = suggestionStyle.Render(hint)
			}
			fmt.Fprintf(r.writer, "      %s\n", hint)
		}
	}

	if omitted > 0 {
		fmt.Fprintf(r.writer, "    ... and %d more\n", omitted)
	}
}
