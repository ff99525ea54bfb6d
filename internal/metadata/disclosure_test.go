package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillworks/skillctl/internal/skill"
)

const disclosureDoc = `---
name: testing-basics
description: Testing fundamentals for new projects
tags:
  - core
  - testing
---

# Testing Basics

Write the failing test first.
`

func TestFixDisclosure_MissingDocument(t *testing.T) {
	fixes, err := FixDisclosure(t.TempDir(), Options{})
	require.NoError(t, err)
	assert.Nil(t, fixes)
}

func TestFixDisclosure_NoFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, skill.DocumentName, "# Heading\nbody\n")

	_, err := FixDisclosure(dir, Options{})
	assert.ErrorIs(t, err, ErrNoFrontmatter)
}

func TestFixDisclosure_AlreadyPresent(t *testing.T) {
	dir := t.TempDir()
	doc := "---\nname: x\nprogressive_disclosure:\n  entry_point:\n    summary: \"s\"\n---\nbody\n"
	writeFile(t, dir, skill.DocumentName, doc)

	fixes, err := FixDisclosure(dir, Options{})
	require.NoError(t, err)
	assert.Nil(t, fixes)

	data, err := os.ReadFile(filepath.Join(dir, skill.DocumentName))
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
}

func TestFixDisclosure_Added(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, skill.DocumentName, disclosureDoc)

	fixes, err := FixDisclosure(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"progressive_disclosure: added"}, fixes)

	data, err := os.ReadFile(filepath.Join(dir, skill.DocumentName))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "progressive_disclosure:\n  entry_point:")
	assert.Contains(t, out, `summary: "Testing fundamentals for new projects"`)
	assert.Contains(t, out,
		`when_to_use: "When writing tests, implementing testing-basics, or ensuring code quality."`)
	assert.Contains(t, out, "  - testing\nprogressive_disclosure:",
		"section goes after the last frontmatter field")
	assert.Contains(t, out, "Write the failing test first.", "body survives the rewrite")
}

func TestFixDisclosure_ReferencesCapped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, skill.DocumentName, disclosureDoc)
	for _, name := range []string{"g.md", "a.md", "c.md", "b.md", "e.md", "d.md", "f.md"} {
		writeFile(t, dir, filepath.Join("references", name), "ref")
	}

	_, err := FixDisclosure(dir, Options{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, skill.DocumentName))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "  references:")
	assert.Contains(t, out, "    - a.md")
	assert.Contains(t, out, "    - e.md")
	assert.NotContains(t, out, "    - f.md")
	assert.NotContains(t, out, "    - g.md")
}

func TestFixDisclosure_SummaryCapped(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("x", 250)
	writeFile(t, dir, skill.DocumentName, "---\nname: big\ndescription: "+long+"\n---\nbody\n")

	_, err := FixDisclosure(dir, Options{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, skill.DocumentName))
	require.NoError(t, err)
	assert.Contains(t, string(data), strings.Repeat("x", 197)+`..."`)
}

func TestFixDisclosure_DryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, skill.DocumentName, disclosureDoc)

	fixes, err := FixDisclosure(dir, Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"progressive_disclosure: added"}, fixes)

	data, err := os.ReadFile(filepath.Join(dir, skill.DocumentName))
	require.NoError(t, err)
	assert.Equal(t, disclosureDoc, string(data))
}

func TestInferWhenToUse(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"unit-testing", "When writing tests, implementing unit-testing, or ensuring code quality."},
		{"debugging", "When debugging issues, tracing errors, or investigating problems."},
		{"api-design", "When designing, implementing, or documenting APIs."},
		{"git-workflow", "When working with version control, branches, or pull requests."},
		{"auth-patterns", "When implementing authentication, authorization, or security."},
		{"concurrency", "When working with concurrency or related functionality."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferWhenToUse(tt.name))
		})
	}
}

func TestQuoteYAML(t *testing.T) {
	assert.Equal(t, `"plain"`, quoteYAML("plain"))
	assert.Equal(t, `"say \"hi\""`, quoteYAML(`say "hi"`))
	assert.Equal(t, `"a \\ b"`, quoteYAML(`a \ b`))
}
