package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Token count sanity bounds. Values outside these ranges are suspicious but
// not fatal.
const (
	minEntryTokens = 10
	maxEntryTokens = 200
	minFullTokens  = 100
	maxFullTokens  = 50000
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validator checks manifest structure and contents against the repository
// on disk. Errors make the manifest invalid; warnings do not.
type Validator struct {
	Root string

	Errors   []string
	Warnings []string
}

// NewValidator creates a Validator rooted at the repository root.
func NewValidator(root string) *Validator {
	return &Validator{Root: root}
}

func (v *Validator) errorf(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the complete manifest. Returns true when no errors were
// recorded (warnings alone do not fail validation).
func (v *Validator) Validate(m *Manifest) bool {
	if m.Version == "" {
		v.errorf("missing top-level field: version")
	}
	if m.Repository == "" {
		v.errorf("missing top-level field: repository")
	}
	if m.Updated == "" {
		v.errorf("missing top-level field: updated")
	}

	if m.Skills.Universal == nil {
		v.errorf("missing skills.universal section")
	} else {
		v.validateGroup(m.Skills.Universal)
	}

	if m.Skills.Toolchains == nil {
		v.errorf("missing skills.toolchains section")
	} else {
		for _, name := range sortedKeys(m.Skills.Toolchains) {
			v.validateGroup(m.Skills.Toolchains[name])
		}
	}

	v.validateGroup(m.Skills.Examples)

	return len(v.Errors) == 0
}

// validateGroup validates each entry of a group and checks it for
// duplicate names.
func (v *Validator) validateGroup(entries []Entry) {
	for i := range entries {
		v.validateEntry(&entries[i])
	}
	v.checkDuplicates(entries)
}

// validateEntry checks a single skill entry.
func (v *Validator) validateEntry(e *Entry) {
	name := e.Name
	if name == "" {
		name = e.SourcePath
		v.errorf("skill entry missing name (%s)", e.SourcePath)
	}

	if e.Version == "" {
		v.errorf("missing version for skill: %s", name)
	} else if _, err := semver.StrictNewVersion(e.Version); err != nil {
		v.warnf("invalid version format %q for skill: %s", e.Version, name)
	}

	switch e.Category {
	case "universal", "toolchain", "example":
	default:
		v.errorf("invalid category %q for skill: %s", e.Category, name)
	}

	v.validatePath(e.SourcePath, name)

	if e.EntryPointTokens < minEntryTokens || e.EntryPointTokens > maxEntryTokens {
		v.warnf("unusual entry_point_tokens (%d) for skill: %s", e.EntryPointTokens, name)
	}
	if e.FullTokens < minFullTokens || e.FullTokens > maxFullTokens {
		v.warnf("unusual full_tokens (%d) for skill: %s", e.FullTokens, name)
	}
	if e.EntryPointTokens > e.FullTokens {
		v.errorf("entry_point_tokens > full_tokens for skill: %s", name)
	}

	if !dateRe.MatchString(e.Updated) {
		v.errorf("invalid date format %q for skill: %s", e.Updated, name)
	}
}

// validatePath checks a source path's prefix, suffix and existence.
func (v *Validator) validatePath(sourcePath, name string) {
	if sourcePath == "" {
		v.errorf("missing source_path for skill: %s", name)
		return
	}

	valid := false
	for _, prefix := range []string{"universal/", "toolchains/", "examples/"} {
		if strings.HasPrefix(sourcePath, prefix) {
			valid = true
			break
		}
	}
	if !valid {
		v.errorf("invalid path prefix: %s", sourcePath)
		return
	}

	if !strings.HasSuffix(sourcePath, "/SKILL.md") {
		v.errorf("path does not end with /SKILL.md: %s", sourcePath)
		return
	}

	full := filepath.Join(v.Root, filepath.FromSlash(sourcePath))
	if _, err := os.Stat(full); err != nil {
		v.errorf("path does not exist: %s", sourcePath)
	}
}

// checkDuplicates records an error when a group holds repeated skill names.
func (v *Validator) checkDuplicates(entries []Entry) {
	counts := make(map[string]int)
	for i := range entries {
		counts[entries[i].Name]++
	}

	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		v.errorf("duplicate skill names found: %s", strings.Join(dups, ", "))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
