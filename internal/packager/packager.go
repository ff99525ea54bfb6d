package packager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"github.com/skillworks/skillctl/internal/skill"
)

// ErrTargetExists is returned when the deployment directory for a skill
// already exists and force was not requested.
var ErrTargetExists = errors.New("target already exists")

// Packager copies validated skills into a flat deployment directory.
type Packager struct {
	// Root is the skills repository root.
	Root string

	// Target is the deployment directory.
	Target string

	// Sections are the repository directories searched by FindSkills.
	Sections []string

	// Validator is consulted before each packaging operation. Its Errors
	// and Warnings describe the most recent skill.
	Validator Validator

	Log *logrus.Logger
}

// New creates a Packager.
func New(root, target string, sections []string) *Packager {
	return &Packager{
		Root:     root,
		Target:   target,
		Sections: sections,
		Log:      logrus.StandardLogger(),
	}
}

// FlatName converts a skill directory's hierarchical path into a flat
// deployment name, e.g. toolchains/python/frameworks/django ->
// toolchains-python-frameworks-django.
func (p *Packager) FlatName(dir string) string {
	rel, err := filepath.Rel(p.Root, dir)
	if err != nil {
		rel = dir
	}
	flat := strings.NewReplacer("/", "-", "\\", "-").Replace(filepath.ToSlash(rel))
	return strings.TrimSuffix(flat, "-"+skill.DocumentName)
}

// Package validates and copies one skill into the deployment directory.
// ErrTargetExists is returned when the skill was already packaged and force
// is false; validation failures surface the validator's first error.
func (p *Packager) Package(dir string, force, dryRun bool) error {
	if !p.Validator.Validate(dir) {
		return fmt.Errorf("validation failed for %s: %s", dir, p.Validator.Errors[0])
	}

	flat := p.FlatName(dir)
	targetDir := filepath.Join(p.Target, flat)

	if _, err := os.Stat(targetDir); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrTargetExists, targetDir)
	}

	if dryRun {
		p.Log.WithField("target", targetDir).Info("dry run, skipping copy")
		return nil
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	if err := copyFile(
		filepath.Join(dir, skill.DocumentName),
		filepath.Join(targetDir, skill.DocumentName),
	); err != nil {
		return err
	}

	metadataSrc := filepath.Join(dir, skill.MetadataName)
	if _, err := os.Stat(metadataSrc); err == nil {
		if err := copyFile(metadataSrc, filepath.Join(targetDir, skill.MetadataName)); err != nil {
			return err
		}
	}

	referencesSrc := filepath.Join(dir, "references")
	if info, err := os.Stat(referencesSrc); err == nil && info.IsDir() {
		referencesDst := filepath.Join(targetDir, "references")
		if err := os.RemoveAll(referencesDst); err != nil {
			return err
		}
		if err := copyTree(referencesSrc, referencesDst); err != nil {
			return err
		}
	}

	return nil
}

// FindSkills returns skill directories whose repository-relative path
// matches the glob pattern (or the pattern as a prefix). "*" matches every
// skill.
func (p *Packager) FindSkills(pattern string) ([]string, error) {
	files, err := skill.FindAll(p.Root, p.Sections, relToRoot(p.Root, p.Target))
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, f := range files {
		dir := filepath.Dir(f)
		rel, err := filepath.Rel(p.Root, dir)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		if matchPattern(pattern, rel) {
			dirs = append(dirs, dir)
		}
	}

	slices.Sort(dirs)
	return slices.Compact(dirs), nil
}

// matchPattern matches rel against pattern exactly or as a prefix glob.
func matchPattern(pattern, rel string) bool {
	if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
		return true
	}
	if ok, err := doublestar.Match(pattern+"*", rel); err == nil && ok {
		return true
	}
	return false
}

// relToRoot returns path relative to root when possible, else path itself.
func relToRoot(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// copyFile copies a regular file, preserving its permission bits.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// copyTree copies a directory tree.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}
