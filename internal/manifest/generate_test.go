package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillworks/skillctl/internal/config"
	"github.com/skillworks/skillctl/internal/skill"
)

var dateShapeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// addSkill creates a skill directory with a SKILL.md and optional metadata.
func addSkill(t *testing.T, root, rel string, meta *skill.Metadata) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "---\nname: stub\n---\n" + strings.Repeat("body text ", 60)
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.DocumentName), []byte(content), 0o644))
	if meta != nil {
		data, err := json.Marshal(meta)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, skill.MetadataName), data, 0o644))
	}
}

func testManifestConfig() config.ManifestConfig {
	return config.ManifestConfig{
		Repository:  "skills",
		Version:     "1.0.0",
		Description: "Curated collection of skills",
		Author:      "Skill Team",
		License:     "MIT",
		Path:        "manifest.json",
		Sections:    []string{"universal", "toolchains", "examples"},
	}
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	addSkill(t, root, "universal/debugging", &skill.Metadata{Name: "systematic-debugging"})
	addSkill(t, root, "universal/api-design", nil)
	addSkill(t, root, "toolchains/python/testing", nil)
	addSkill(t, root, "toolchains/python/frameworks/django/views", nil)
	addSkill(t, root, "toolchains/go/errors", nil)
	addSkill(t, root, "examples/webapp", nil)

	g := NewGenerator(root, testManifestConfig(), "dist/skills")
	m, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", m.Version)
	assert.Equal(t, "skills", m.Repository)
	assert.Equal(t, "Curated collection of skills", m.Description)
	assert.Regexp(t, dateShapeRe, m.Updated)

	require.Len(t, m.Skills.Universal, 2)
	assert.Equal(t, "api-design", m.Skills.Universal[0].Name, "entries sorted by name")
	assert.Equal(t, "systematic-debugging", m.Skills.Universal[1].Name, "metadata name wins")

	require.Contains(t, m.Skills.Toolchains, "python")
	require.Contains(t, m.Skills.Toolchains, "go")
	python := m.Skills.Toolchains["python"]
	require.Len(t, python, 2)
	assert.Equal(t, "testing", python[0].Name)
	assert.Equal(t, "views", python[1].Name)
	require.NotNil(t, python[1].Framework)
	assert.Equal(t, "django", *python[1].Framework)

	require.Len(t, m.Skills.Examples, 1)
	assert.Equal(t, skill.CategoryExample, m.Skills.Examples[0].Category)

	assert.Equal(t, 6, m.Metadata.TotalSkills)
	assert.Equal(t, 2, m.Metadata.Categories.Universal)
	assert.Equal(t, 3, m.Metadata.Categories.Toolchains)
	assert.Equal(t, 1, m.Metadata.Categories.Examples)
	assert.Equal(t, map[string]int{"python": 2, "go": 1}, m.Metadata.Toolchains)
	assert.Equal(t, SchemaVersion, m.Metadata.SchemaVersion)

	assert.Equal(t, "skills", m.Provenance.SkillsRepository)
	assert.Equal(t, "Skill Team", m.Provenance.Author)
	assert.Equal(t, "MIT", m.Provenance.License)
	assert.True(t, m.Provenance.AttributionRequired)

	for _, e := range m.AllEntries() {
		assert.Equal(t, "Skill Team", e.Author, "config author is the fallback")
		assert.Regexp(t, dateShapeRe, e.Updated)
	}
}

func TestGenerate_DeployDirExcluded(t *testing.T) {
	root := t.TempDir()
	addSkill(t, root, "universal/debugging", nil)
	addSkill(t, root, "universal/deployed/copy", nil)

	g := NewGenerator(root, testManifestConfig(), "universal/deployed")
	m, err := g.Generate(context.Background())
	require.NoError(t, err)

	require.Len(t, m.Skills.Universal, 1)
	assert.Equal(t, "debugging", m.Skills.Universal[0].Name)
}

func TestGenerate_NoSkills(t *testing.T) {
	g := NewGenerator(t.TempDir(), testManifestConfig(), "dist/skills")
	_, err := g.Generate(context.Background())
	assert.ErrorIs(t, err, ErrNoSkills)
}

func TestGenerate_NoLicenseMeansNoAttribution(t *testing.T) {
	root := t.TempDir()
	addSkill(t, root, "universal/debugging", nil)

	cfg := testManifestConfig()
	cfg.License = ""
	m, err := NewGenerator(root, cfg, "dist/skills").Generate(context.Background())
	require.NoError(t, err)

	assert.False(t, m.Provenance.AttributionRequired)
}

func TestGenerate_EmptyUniversalStaysArray(t *testing.T) {
	root := t.TempDir()
	addSkill(t, root, "toolchains/python/testing", nil)

	m, err := NewGenerator(root, testManifestConfig(), "dist/skills").Generate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, m.Skills.Universal)
	assert.Empty(t, m.Skills.Universal)

	path := filepath.Join(root, "manifest.json")
	require.NoError(t, Write(path, m))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"universal": []`)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}
