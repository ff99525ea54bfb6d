// Package skill models skill directories: a SKILL.md document with YAML
// frontmatter, an optional metadata.json, and optional references/ and
// examples/ subdirectories holding supplementary markdown.
package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skillworks/skillctl/internal/skill/gitinfo"
)

// DocumentName is the canonical file name of a skill document.
const DocumentName = "SKILL.md"

// MetadataName is the canonical file name of the sidecar metadata file.
const MetadataName = "metadata.json"

// Skill is a fully resolved skill entry as it appears in the manifest.
type Skill struct {
	Name             string   `json:"name"`
	Version          string   `json:"version"`
	Category         string   `json:"category"`
	Toolchain        *string  `json:"toolchain"`
	Framework        *string  `json:"framework"`
	Tags             []string `json:"tags"`
	EntryPointTokens int      `json:"entry_point_tokens"`
	FullTokens       int      `json:"full_tokens"`
	Requires         []string `json:"requires"`
	Author           string   `json:"author"`
	Updated          string   `json:"updated"`
	SourcePath       string   `json:"source_path"`
	HasReferences    bool     `json:"has_references,omitempty"`
	ReferenceFiles   []string `json:"reference_files,omitempty"`
}

// Metadata mirrors a skill's metadata.json sidecar. Token fields are
// pointers so a missing field can be told apart from an explicit zero.
type Metadata struct {
	Name             string   `json:"name,omitempty"`
	Version          string   `json:"version,omitempty"`
	Category         string   `json:"category,omitempty"`
	Toolchain        *string  `json:"toolchain,omitempty"`
	Framework        *string  `json:"framework,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	EntryPointTokens *int     `json:"entry_point_tokens,omitempty"`
	FullTokens       *int     `json:"full_tokens,omitempty"`
	Requires         []string `json:"requires,omitempty"`
	RelatedSkills    []string `json:"related_skills,omitempty"`
	Author           string   `json:"author,omitempty"`
	License          string   `json:"license,omitempty"`
}

// LoadMetadata reads the metadata.json sidecar from a skill directory.
// A missing file returns (nil, nil); malformed JSON is an error.
func LoadMetadata(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", MetadataName, err)
	}
	return &m, nil
}

// Loader resolves skill directories into manifest entries.
type Loader struct {
	// Root is the skills repository root. Relative paths in resolved
	// skills are computed against it.
	Root string

	// DefaultAuthor is used for skills whose metadata.json carries no
	// author field.
	DefaultAuthor string

	// GitTimeout bounds the per-file git history lookup.
	GitTimeout time.Duration

	Log *logrus.Logger
}

// NewLoader creates a Loader with the standard git timeout.
func NewLoader(root string) *Loader {
	return &Loader{
		Root:       root,
		GitTimeout: 5 * time.Second,
		Log:        logrus.StandardLogger(),
	}
}

// Load resolves the skill whose SKILL.md lives at the given path.
// Values from metadata.json win over computed fallbacks, matching how the
// repository treats hand-maintained metadata as authoritative.
func (l *Loader) Load(ctx context.Context, skillMD string) (*Skill, error) {
	dir := filepath.Dir(skillMD)
	rel, err := filepath.Rel(l.Root, skillMD)
	if err != nil {
		rel = skillMD
	}
	rel = filepath.ToSlash(rel)

	meta, err := LoadMetadata(dir)
	if err != nil {
		l.Log.WithError(err).WithField("skill", rel).Warn("ignoring unreadable metadata")
		meta = nil
	}
	if meta == nil {
		meta = &Metadata{}
	}

	entryTokens, fullTokens, err := TokenCounts(dir)
	if err != nil {
		return nil, fmt.Errorf("counting tokens for %s: %w", rel, err)
	}

	class := Classify(rel)
	refs := ReferenceFiles(dir)

	gitCtx := ctx
	if l.GitTimeout > 0 {
		var cancel context.CancelFunc
		gitCtx, cancel = context.WithTimeout(ctx, l.GitTimeout)
		defer cancel()
	}
	updated := gitinfo.LastModifiedOrFallback(gitCtx, l.Root, rel)

	s := &Skill{
		Name:             filepath.Base(dir),
		Version:          "1.0.0",
		Category:         class.Category,
		Toolchain:        class.Toolchain,
		Framework:        class.Framework,
		Tags:             []string{},
		EntryPointTokens: entryTokens,
		FullTokens:       fullTokens,
		Requires:         []string{},
		Author:           l.DefaultAuthor,
		Updated:          updated,
		SourcePath:       rel,
	}

	if meta.Name != "" {
		s.Name = meta.Name
	}
	if meta.Version != "" {
		s.Version = meta.Version
	}
	if len(meta.Tags) > 0 {
		s.Tags = meta.Tags
	}
	if len(meta.Requires) > 0 {
		s.Requires = meta.Requires
	}
	if meta.EntryPointTokens != nil {
		s.EntryPointTokens = *meta.EntryPointTokens
	}
	if meta.FullTokens != nil {
		s.FullTokens = *meta.FullTokens
	}
	if meta.Author != "" {
		s.Author = meta.Author
	}
	if len(refs) > 0 {
		s.HasReferences = true
		s.ReferenceFiles = refs
	}

	return s, nil
}

// ReferenceFiles lists supplementary markdown for a skill directory:
// references/**/*.md by bare name, then examples/**/*.md prefixed with
// "examples/". Order is deterministic.
func ReferenceFiles(dir string) []string {
	var refs []string
	refs = append(refs, markdownNames(filepath.Join(dir, "references"), "")...)
	refs = append(refs, markdownNames(filepath.Join(dir, "examples"), "examples/")...)
	return refs
}

// markdownNames walks a directory tree collecting *.md base names with the
// given prefix. A missing directory yields nothing.
func markdownNames(root, prefix string) []string {
	var names []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(d.Name()) == ".md" {
			names = append(names, prefix+d.Name())
		}
		return nil
	})
	return names
}
