package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleManifest() *Manifest {
	py := "python"
	return &Manifest{
		Version:    "1.0.0",
		Repository: "skills",
		Updated:    "2024-06-01",
		Skills: Skills{
			Universal: []Entry{
				{Name: "debugging", EntryPointTokens: 80, FullTokens: 400},
			},
			Toolchains: map[string][]Entry{
				"python": {
					{Name: "testing", Toolchain: &py, EntryPointTokens: 90, FullTokens: 600},
				},
			},
			Examples: []Entry{
				{Name: "webapp", EntryPointTokens: 50, FullTokens: 300},
			},
		},
		Metadata: Metadata{
			TotalSkills:   3,
			Categories:    Categories{Universal: 1, Toolchains: 1, Examples: 1},
			Toolchains:    map[string]int{"python": 1},
			LastUpdated:   "2024-06-01",
			SchemaVersion: SchemaVersion,
		},
	}
}

func TestAllEntries(t *testing.T) {
	m := sampleManifest()
	entries := m.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "debugging", entries[0].Name)
	assert.Equal(t, "testing", entries[1].Name)
	assert.Equal(t, "webapp", entries[2].Name)
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, Write(path, sampleManifest()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sampleManifest(), got)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing manifest")
}

func TestSummarize(t *testing.T) {
	got := Summarize(sampleManifest())

	assert.Equal(t, 3, got.TotalSkills)
	assert.Equal(t, 80+90+50, got.EntryPointTokensTotal)
	assert.Equal(t, 400+600+300, got.FullTokensTotal)
	assert.Equal(t, Categories{Universal: 1, Toolchains: 1, Examples: 1}, got.Categories)
	assert.Equal(t, map[string]int{"python": 1}, got.Toolchains)
	assert.Equal(t, "2024-06-01", got.LastUpdated)
}

func TestSummarize_LastUpdatedFallback(t *testing.T) {
	m := sampleManifest()
	m.Metadata.LastUpdated = ""
	m.Updated = "2024-07-15"

	assert.Equal(t, "2024-07-15", Summarize(m).LastUpdated)
}
