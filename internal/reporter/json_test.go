package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillworks/skillctl/internal/rules"
)

func sampleReports() []FileReport {
	return []FileReport{
		{
			Path:      "skills/b/SKILL.md",
			LineCount: 40,
			Violations: []rules.Violation{
				v("skills/b/SKILL.md", 9, 0, "passive_voice", rules.SeverityWarning),
				v("skills/b/SKILL.md", 3, 0, "second_person_voice", rules.SeverityError),
			},
		},
		{Path: "skills/a/SKILL.md", LineCount: 20},
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	require.NoError(t, r.Report(sampleReports(), ReportMetadata{FilesScanned: 2, RulesEnabled: 8}))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, 2, out.Summary.TotalFiles)
	assert.Equal(t, 1, out.Summary.FilesWithViolations)
	assert.Equal(t, 1, out.Summary.TotalErrors)
	assert.Equal(t, 1, out.Summary.TotalWarnings)
	assert.Equal(t, 0, out.Summary.TotalInfo)

	// Clean files still appear, sorted by path.
	require.Len(t, out.Files, 2)
	assert.Equal(t, "skills/a/SKILL.md", out.Files[0].Path)
	assert.Empty(t, out.Files[0].Violations)

	withViolations := out.Files[1]
	assert.Equal(t, "skills/b/SKILL.md", withViolations.Path)
	require.Len(t, withViolations.Violations, 2)
	// Violations sorted by line inside the file.
	assert.Equal(t, 3, withViolations.Violations[0].Line)
	assert.Equal(t, "second_person_voice", withViolations.Violations[0].Type)
	assert.Equal(t, "error", withViolations.Violations[0].Severity)
	assert.Equal(t, 9, withViolations.Violations[1].Line)
	assert.Equal(t, 1, withViolations.ErrorCount)
	assert.Equal(t, 1, withViolations.WarningCount)
}

func TestJSONReporter_ExactKeys(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	require.NoError(t, r.Report(sampleReports(), ReportMetadata{}))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Contains(t, raw, "summary")
	require.Contains(t, raw, "files")

	summary, ok := raw["summary"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"total_files", "files_with_violations", "total_errors", "total_warnings", "total_info"} {
		assert.Contains(t, summary, key)
	}
}

func TestJSONReporter_Deterministic(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, NewJSONReporter(&first).Report(sampleReports(), ReportMetadata{FilesScanned: 2}))
	require.NoError(t, NewJSONReporter(&second).Report(sampleReports(), ReportMetadata{FilesScanned: 2}))

	assert.Equal(t, first.String(), second.String())
}

func TestJSONReporter_EmptyRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Report(nil, ReportMetadata{}))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 0, out.Summary.TotalFiles)
	assert.NotNil(t, out.Files)
	assert.Empty(t, out.Files)
}
