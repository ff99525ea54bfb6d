package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{SeverityOff, "off"},
		{Severity(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.severity.String())
		})
	}
}

func TestSeverityLabel(t *testing.T) {
	assert.Equal(t, "ERROR", SeverityError.Label())
	assert.Equal(t, "WARNING", SeverityWarning.Label())
	assert.Equal(t, "INFO", SeverityInfo.Label())
}

func TestSeverityIcon(t *testing.T) {
	assert.Equal(t, "❌", SeverityError.Icon())
	assert.Equal(t, "⚠️", SeverityWarning.Icon())
	assert.Equal(t, "ℹ️", SeverityInfo.Icon())
	assert.Equal(t, "", SeverityOff.Icon())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"error", SeverityError, false},
		{"warning", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{"info", SeverityInfo, false},
		{"off", SeverityOff, false},
		{"ERROR", SeverityError, false},
		{"Warning", SeverityWarning, false},
		{"critical", SeverityError, true},
		{"", SeverityError, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverityIsAtLeast(t *testing.T) {
	tests := []struct {
		name      string
		severity  Severity
		threshold Severity
		want      bool
	}{
		{"error at least error", SeverityError, SeverityError, true},
		{"error at least warning", SeverityError, SeverityWarning, true},
		{"error at least info", SeverityError, SeverityInfo, true},
		{"warning at least error", SeverityWarning, SeverityError, false},
		{"warning at least warning", SeverityWarning, SeverityWarning, true},
		{"info at least warning", SeverityInfo, SeverityWarning, false},
		{"info at least info", SeverityInfo, SeverityInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.severity.IsAtLeast(tt.threshold))
		})
	}
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(SeverityWarning)
	require.NoError(t, err)
	assert.Equal(t, `"warning"`, string(data))

	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"error"`), &s))
	assert.Equal(t, SeverityError, s)

	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`7`), &s))
}
