// Package packager validates skills and copies them into a flat deployment
// directory, one `<section>-<path>-<name>` directory per skill.
package packager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/skillworks/skillctl/internal/skill"
)

// Token sanity bounds for a single document.
const (
	minDocumentTokens = 100
	maxDocumentTokens = 20000
)

// declaredDriftRatio is how far metadata full_tokens may differ from the
// measured total before a warning is raised.
const declaredDriftRatio = 0.2

// Validator checks a skill directory's structure and content before
// packaging. Errors block packaging; warnings do not.
type Validator struct {
	Errors   []string
	Warnings []string
}

func (v *Validator) errorf(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks a complete skill directory. Returns true when no errors
// were recorded.
func (v *Validator) Validate(dir string) bool {
	v.Errors = nil
	v.Warnings = nil

	info, err := os.Stat(dir)
	if err != nil {
		v.errorf("skill path does not exist: %s", dir)
		return false
	}
	if !info.IsDir() {
		v.errorf("skill path is not a directory: %s", dir)
		return false
	}

	docTokens, docOK := v.validateDocument(dir)
	meta := v.validateMetadata(dir)

	if docOK {
		total := docTokens + referenceTokens(dir)
		if meta != nil && meta.FullTokens != nil {
			declared := *meta.FullTokens
			drift := declared - total
			if drift < 0 {
				drift = -drift
			}
			if float64(drift) > float64(total)*declaredDriftRatio {
				v.warnf("token count mismatch: declared %d, actual %d", declared, total)
			}
		}
	}

	return len(v.Errors) == 0
}

// validateDocument checks SKILL.md and returns its token estimate.
func (v *Validator) validateDocument(dir string) (tokens int, ok bool) {
	path := filepath.Join(dir, skill.DocumentName)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			v.errorf("SKILL.md not found in %s", dir)
		} else {
			v.errorf("cannot read SKILL.md: %v", err)
		}
		return 0, false
	}

	text := string(content)
	if !strings.HasPrefix(text, "---") {
		v.errorf("SKILL.md missing frontmatter (should start with ---)")
		return 0, false
	}

	raw, _, wellFormed := skill.SplitFrontmatter(text)
	if !wellFormed {
		v.errorf("SKILL.md has malformed frontmatter")
		return 0, false
	}

	if !strings.Contains(raw, "name:") {
		v.warnf("SKILL.md frontmatter missing 'name' field")
	}
	if !strings.Contains(raw, "description:") {
		v.warnf("SKILL.md frontmatter missing 'description' field")
	}
	if !strings.Contains(text, "progressive_disclosure:") {
		v.warnf("SKILL.md missing progressive_disclosure section")
	}

	tokens = skill.EstimateTokens(content)
	if tokens < minDocumentTokens {
		v.warnf("SKILL.md seems too short (%d tokens)", tokens)
	} else if tokens > maxDocumentTokens {
		v.warnf("SKILL.md is very large (%d tokens), consider splitting", tokens)
	}

	return tokens, true
}

// validateMetadata checks metadata.json and returns it when parseable.
func (v *Validator) validateMetadata(dir string) *skill.Metadata {
	path := filepath.Join(dir, skill.MetadataName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			v.warnf("metadata.json not found in %s", dir)
		} else {
			v.errorf("cannot read metadata.json: %v", err)
		}
		return nil
	}

	var meta skill.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		v.errorf("metadata.json is not valid JSON: %v", err)
		return nil
	}

	if meta.Name == "" {
		v.errorf("metadata.json missing required field: name")
	}
	if meta.Version == "" {
		v.errorf("metadata.json missing required field: version")
	} else if _, err := semver.StrictNewVersion(meta.Version); err != nil {
		v.warnf("metadata.json version %q not in semver format", meta.Version)
	}
	if meta.Category == "" {
		v.errorf("metadata.json missing required field: category")
	} else {
		switch meta.Category {
		case "toolchain", "universal", "example":
		default:
			v.warnf("metadata.json category %q not recognized", meta.Category)
		}
	}

	if meta.Toolchain == nil {
		v.warnf("metadata.json missing recommended field: toolchain")
	}
	if meta.Tags == nil {
		v.warnf("metadata.json missing recommended field: tags")
	}
	if meta.EntryPointTokens == nil {
		v.warnf("metadata.json missing recommended field: entry_point_tokens")
	}
	if meta.FullTokens == nil {
		v.warnf("metadata.json missing recommended field: full_tokens")
	}

	return &meta
}

// referenceTokens sums token estimates over references/**/*.md.
func referenceTokens(dir string) int {
	total := 0
	root := filepath.Join(dir, "references")
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(d.Name()) != ".md" {
			return nil
		}
		if content, err := os.ReadFile(path); err == nil {
			total += skill.EstimateTokens(content)
		}
		return nil
	})
	return total
}
