package packager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillworks/skillctl/internal/skill"
)

const validDoc = `---
name: testing
description: Python testing workflow
progressive_disclosure:
  entry_point:
    summary: "Testing workflow for Python projects"
---
# Testing

` + "Keep tests fast, isolated, and deterministic at every layer. " +
	"Keep tests fast, isolated, and deterministic at every layer. " +
	"Keep tests fast, isolated, and deterministic at every layer. " +
	"Keep tests fast, isolated, and deterministic at every layer. " +
	"Keep tests fast, isolated, and deterministic at every layer. " +
	"Keep tests fast, isolated, and deterministic at every layer. " +
	"Keep tests fast, isolated, and deterministic at every layer.\n"

// writeValidSkill builds a skill directory that passes validation with no
// warnings. refs maps reference file names to contents.
func writeValidSkill(t *testing.T, root, rel string, refs map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.DocumentName), []byte(validDoc), 0o644))

	total := skill.EstimateTokens([]byte(validDoc))
	for name, content := range refs {
		path := filepath.Join(dir, "references", filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		total += skill.EstimateTokens([]byte(content))
	}

	meta := fmt.Sprintf(`{
  "name": "testing",
  "version": "1.0.0",
  "category": "toolchain",
  "toolchain": "python",
  "tags": ["testing"],
  "entry_point_tokens": 85,
  "full_tokens": %d
}`, total)
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.MetadataName), []byte(meta), 0o644))
	return dir
}

func TestValidate_CleanSkill(t *testing.T) {
	dir := writeValidSkill(t, t.TempDir(), "toolchains/python/testing", nil)

	var v Validator
	assert.True(t, v.Validate(dir))
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
}

func TestValidate_MissingPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")

	var v Validator
	assert.False(t, v.Validate(dir))
	assert.Contains(t, v.Errors, "skill path does not exist: "+dir)
}

func TestValidate_PathIsAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SKILL.md")
	require.NoError(t, os.WriteFile(path, []byte("# x"), 0o644))

	var v Validator
	assert.False(t, v.Validate(path))
	assert.Contains(t, v.Errors, "skill path is not a directory: "+path)
}

func TestValidate_MissingDocument(t *testing.T) {
	dir := t.TempDir()

	var v Validator
	assert.False(t, v.Validate(dir))
	assert.Contains(t, v.Errors, "SKILL.md not found in "+dir)
}

func TestValidate_DocumentProblems(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "no frontmatter",
			doc:     "# Heading\nbody\n",
			wantErr: "SKILL.md missing frontmatter (should start with ---)",
		},
		{
			name:    "unterminated frontmatter",
			doc:     "---\nname: x\nnever closed\n",
			wantErr: "SKILL.md has malformed frontmatter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, skill.DocumentName), []byte(tt.doc), 0o644))

			var v Validator
			assert.False(t, v.Validate(dir))
			assert.Contains(t, v.Errors, tt.wantErr)
		})
	}
}

func TestValidate_DocumentWarnings(t *testing.T) {
	dir := t.TempDir()
	doc := "---\ntitle: no name here\n---\nshort\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.DocumentName), []byte(doc), 0o644))

	var v Validator
	v.Validate(dir)
	assert.Contains(t, v.Warnings, "SKILL.md frontmatter missing 'name' field")
	assert.Contains(t, v.Warnings, "SKILL.md frontmatter missing 'description' field")
	assert.Contains(t, v.Warnings, "SKILL.md missing progressive_disclosure section")
	assert.Contains(t, v.Warnings, fmt.Sprintf("SKILL.md seems too short (%d tokens)", len(doc)/4))
	assert.Contains(t, v.Warnings, "metadata.json not found in "+dir)
}

func TestValidate_OversizedDocumentWarns(t *testing.T) {
	dir := t.TempDir()
	doc := "---\nname: big\ndescription: d\nprogressive_disclosure: {}\n---\n" +
		strings.Repeat("w", 90000)
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.DocumentName), []byte(doc), 0o644))

	var v Validator
	v.Validate(dir)
	assert.Contains(t, v.Warnings,
		fmt.Sprintf("SKILL.md is very large (%d tokens), consider splitting", len(doc)/4))
}

func TestValidate_MetadataErrors(t *testing.T) {
	root := t.TempDir()
	dir := writeValidSkill(t, root, "toolchains/python/testing", nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.MetadataName),
		[]byte(`{"tags": []}`), 0o644))

	var v Validator
	assert.False(t, v.Validate(dir))
	assert.Contains(t, v.Errors, "metadata.json missing required field: name")
	assert.Contains(t, v.Errors, "metadata.json missing required field: version")
	assert.Contains(t, v.Errors, "metadata.json missing required field: category")
}

func TestValidate_MetadataMalformed(t *testing.T) {
	root := t.TempDir()
	dir := writeValidSkill(t, root, "toolchains/python/testing", nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.MetadataName), []byte("{oops"), 0o644))

	var v Validator
	assert.False(t, v.Validate(dir))
	require.NotEmpty(t, v.Errors)
	assert.Contains(t, v.Errors[0], "metadata.json is not valid JSON")
}

func TestValidate_MetadataWarnings(t *testing.T) {
	root := t.TempDir()
	dir := writeValidSkill(t, root, "toolchains/python/testing", nil)
	meta := `{"name": "testing", "version": "v1", "category": "plugin"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.MetadataName), []byte(meta), 0o644))

	var v Validator
	assert.True(t, v.Validate(dir), "warnings alone do not block packaging")
	assert.Contains(t, v.Warnings, `metadata.json version "v1" not in semver format`)
	assert.Contains(t, v.Warnings, `metadata.json category "plugin" not recognized`)
	assert.Contains(t, v.Warnings, "metadata.json missing recommended field: toolchain")
	assert.Contains(t, v.Warnings, "metadata.json missing recommended field: tags")
	assert.Contains(t, v.Warnings, "metadata.json missing recommended field: entry_point_tokens")
	assert.Contains(t, v.Warnings, "metadata.json missing recommended field: full_tokens")
}

func TestValidate_TokenCountMismatch(t *testing.T) {
	root := t.TempDir()
	dir := writeValidSkill(t, root, "toolchains/python/testing", map[string]string{
		"advanced.md":    strings.Repeat("r", 400),
		"deep/nested.md": strings.Repeat("n", 200),
	})

	actual := skill.EstimateTokens([]byte(validDoc)) + 100 + 50
	declared := actual * 2
	meta := fmt.Sprintf(`{
  "name": "testing",
  "version": "1.0.0",
  "category": "toolchain",
  "toolchain": "python",
  "tags": [],
  "entry_point_tokens": 85,
  "full_tokens": %d
}`, declared)
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.MetadataName), []byte(meta), 0o644))

	var v Validator
	assert.True(t, v.Validate(dir))
	assert.Contains(t, v.Warnings,
		fmt.Sprintf("token count mismatch: declared %d, actual %d", declared, actual))
}

func TestValidate_StateResetsBetweenRuns(t *testing.T) {
	root := t.TempDir()
	bad := filepath.Join(root, "nope")
	good := writeValidSkill(t, root, "toolchains/python/testing", nil)

	var v Validator
	assert.False(t, v.Validate(bad))
	require.NotEmpty(t, v.Errors)

	assert.True(t, v.Validate(good))
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
}
