package reporter

import (
	"encoding/json"
	"io"

	"github.com/skillworks/skillctl/internal/rules"
)

// JSONOutput is the top-level structure for JSON output.
// The schema is fixed; automation depends on these exact keys.
// No timestamp is embedded, so repeated runs over unchanged input
// produce byte-identical output.
type JSONOutput struct {
	// Summary contains aggregate statistics.
	Summary JSONSummary `json:"summary"`
	// Files contains per-file results for every scanned file,
	// including files with zero violations.
	Files []JSONFile `json:"files"`
}

// JSONSummary contains aggregate statistics about a lint run.
type JSONSummary struct {
	TotalFiles          int `json:"total_files"`
	FilesWithViolations int `json:"files_with_violations"`
	TotalErrors         int `json:"total_errors"`
	TotalWarnings       int `json:"total_warnings"`
	TotalInfo           int `json:"total_info"`
}

// JSONFile contains the linting results for a single file.
type JSONFile struct {
	Path         string          `json:"path"`
	Violations   []JSONViolation `json:"violations"`
	ErrorCount   int             `json:"error_count"`
	WarningCount int             `json:"warning_count"`
	InfoCount    int             `json:"info_count"`
}

// JSONViolation is the flattened wire form of a violation.
type JSONViolation struct {
	Type        string `json:"type"`
	Line        int    `json:"line"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	LineContent string `json:"line_content,omitempty"`
	MatchedText string `json:"matched_text,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// JSONReporter formats lint results as JSON output.
type JSONReporter struct {
	writer io.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

// Report implements Reporter.
func (r *JSONReporter) Report(reports []FileReport, _ ReportMetadata) error {
	sorted := SortReports(reports)
	totals := ComputeTotals(sorted)

	output := JSONOutput{
		Summary: JSONSummary{
			TotalFiles:          totals.Files,
			FilesWithViolations: totals.FilesWithViolations,
			TotalErrors:         totals.Errors,
			TotalWarnings:       totals.Warnings,
			TotalInfo:           totals.Info,
		},
		Files: make([]JSONFile, 0, len(sorted)),
	}

	for i := range sorted {
		fr := &sorted[i]
		jf := JSONFile{
			Path:         fr.Path,
			Violations:   make([]JSONViolation, 0, len(fr.Violations)),
			ErrorCount:   fr.ErrorCount(),
			WarningCount: fr.WarningCount(),
			InfoCount:    fr.InfoCount(),
		}
		for _, v := range SortViolations(fr.Violations) {
			jf.Violations = append(jf.Violations, toJSONViolation(v))
		}
		output.Files = append(output.Files, jf)
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// toJSONViolation flattens a violation into its wire form.
func toJSONViolation(v rules.Violation) JSONViolation {
	return JSONViolation{
		Type:        v.RuleCode,
		Line:        v.Location.Start.Line,
		Severity:    v.Severity.String(),
		Message:     v.Message,
		LineContent: v.LineContent,
		MatchedText: v.MatchedText,
		Suggestion:  v.Suggestion,
	}
}
