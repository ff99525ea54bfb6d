package skill

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dateShapeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func quietLoader(root string) *Loader {
	l := NewLoader(root)
	log := logrus.New()
	log.SetOutput(io.Discard)
	l.Log = log
	return l
}

func TestLoadMetadata(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		m, err := LoadMetadata(dir)
		require.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("well formed", func(t *testing.T) {
		content := `{
  "name": "debugging",
  "version": "2.1.0",
  "tags": ["core"],
  "entry_point_tokens": 90,
  "author": "Skill Team"
}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataName), []byte(content), 0o644))

		m, err := LoadMetadata(dir)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "debugging", m.Name)
		assert.Equal(t, "2.1.0", m.Version)
		assert.Equal(t, []string{"core"}, m.Tags)
		require.NotNil(t, m.EntryPointTokens)
		assert.Equal(t, 90, *m.EntryPointTokens)
		assert.Nil(t, m.FullTokens)
	})

	t.Run("malformed json", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataName), []byte("{oops"), 0o644))
		_, err := LoadMetadata(dir)
		assert.Error(t, err)
	})
}

func TestLoaderLoad(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "universal", "debugging")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "references"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "examples"), 0o755))

	doc := []byte(strings.Repeat("d", 400))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DocumentName), doc, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "references", "advanced.md"),
		[]byte(strings.Repeat("r", 200)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "examples", "demo.md"),
		[]byte(strings.Repeat("e", 80)), 0o644))

	meta := `{
  "name": "systematic-debugging",
  "version": "2.0.0",
  "tags": ["core", "workflow"],
  "entry_point_tokens": 120,
  "author": "Skill Team"
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataName), []byte(meta), 0o644))

	l := quietLoader(root)
	s, err := l.Load(context.Background(), filepath.Join(dir, DocumentName))
	require.NoError(t, err)

	assert.Equal(t, "systematic-debugging", s.Name)
	assert.Equal(t, "2.0.0", s.Version)
	assert.Equal(t, CategoryUniversal, s.Category)
	assert.Nil(t, s.Toolchain)
	assert.Nil(t, s.Framework)
	assert.Equal(t, []string{"core", "workflow"}, s.Tags)
	assert.Equal(t, 120, s.EntryPointTokens, "metadata wins over the computed count")
	assert.Equal(t, 100+50+20, s.FullTokens, "computed from document and supplements")
	assert.Equal(t, "Skill Team", s.Author)
	assert.Equal(t, "universal/debugging/SKILL.md", s.SourcePath)
	assert.True(t, s.HasReferences)
	assert.Equal(t, []string{"advanced.md", "examples/demo.md"}, s.ReferenceFiles)
	assert.Regexp(t, dateShapeRe, s.Updated)
}

func TestLoaderLoad_NoMetadata(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "toolchains", "python", "testing")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DocumentName),
		[]byte(strings.Repeat("d", 40)), 0o644))

	l := quietLoader(root)
	l.DefaultAuthor = "Fallback Author"
	s, err := l.Load(context.Background(), filepath.Join(dir, DocumentName))
	require.NoError(t, err)

	assert.Equal(t, "testing", s.Name, "directory name stands in for a missing metadata name")
	assert.Equal(t, "1.0.0", s.Version)
	assert.Equal(t, CategoryToolchain, s.Category)
	require.NotNil(t, s.Toolchain)
	assert.Equal(t, "python", *s.Toolchain)
	assert.Equal(t, "Fallback Author", s.Author)
	assert.NotNil(t, s.Tags)
	assert.Empty(t, s.Tags)
	assert.Equal(t, 10, s.EntryPointTokens)
	assert.Equal(t, 10, s.FullTokens)
	assert.False(t, s.HasReferences)
	assert.Empty(t, s.ReferenceFiles)
}

func TestLoaderLoad_MalformedMetadataIsIgnored(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "universal", "x")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DocumentName), []byte("# x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataName), []byte("{oops"), 0o644))

	s, err := quietLoader(root).Load(context.Background(), filepath.Join(dir, DocumentName))
	require.NoError(t, err)
	assert.Equal(t, "x", s.Name)
}

func TestLoaderLoad_MissingDocument(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "universal", "x")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	_, err := quietLoader(root).Load(context.Background(), filepath.Join(dir, DocumentName))
	assert.Error(t, err)
}

func TestReferenceFiles(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, ReferenceFiles(dir))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "references"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "references", "b.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "references", "a.md"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "examples"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "examples", "demo.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "examples", "notes.txt"), []byte("x"), 0o644))

	assert.Equal(t, []string{"a.md", "b.md", "examples/demo.md"}, ReferenceFiles(dir))
}
