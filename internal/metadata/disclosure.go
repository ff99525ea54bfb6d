package metadata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skillworks/skillctl/internal/skill"
)

// ErrNoFrontmatter is returned for documents without a frontmatter block;
// there is nowhere to insert a progressive_disclosure section.
var ErrNoFrontmatter = errors.New("no frontmatter found")

// maxSummaryLen caps generated summaries.
const maxSummaryLen = 200

// maxReferences caps how many reference files are listed in a generated
// section.
const maxReferences = 5

// frontmatterFields are the keys the generator reads from existing
// frontmatter.
type frontmatterFields struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	WhenToUse   string `yaml:"when_to_use"`
}

// FixDisclosure backfills a progressive_disclosure section into a skill
// document's frontmatter when missing. Returns the fixes applied, empty
// when the document already has one.
func FixDisclosure(dir string, opts Options) ([]string, error) {
	skillMD := filepath.Join(dir, skill.DocumentName)
	data, err := os.ReadFile(skillMD)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	content := string(data)

	raw, body, ok := skill.SplitFrontmatter(content)
	if !ok {
		return nil, ErrNoFrontmatter
	}
	if strings.Contains(raw, "progressive_disclosure:") {
		return nil, nil
	}

	var fields frontmatterFields
	// Tolerate loose YAML; a failed decode just means fewer seed values.
	_ = yaml.Unmarshal([]byte(raw), &fields)
	if fields.Name == "" {
		fields.Name = filepath.Base(dir)
	}

	section := generateDisclosure(fields, dir)
	updated := insertIntoFrontmatter(raw, section)
	rebuilt := fmt.Sprintf("---\n%s\n---\n%s", updated, body)

	if !opts.DryRun {
		if err := os.WriteFile(skillMD, []byte(rebuilt), 0o644); err != nil {
			return nil, err
		}
	}

	return []string{"progressive_disclosure: added"}, nil
}

// generateDisclosure builds the YAML section from existing frontmatter
// fields and the skill's reference files.
func generateDisclosure(fields frontmatterFields, dir string) string {
	description := fields.Description
	if description == "" {
		description = fields.Name + " skill"
	}

	summary := description
	if len(summary) > maxSummaryLen {
		summary = summary[:maxSummaryLen-3] + "..."
	}

	whenToUse := fields.WhenToUse
	if whenToUse == "" {
		whenToUse = inferWhenToUse(fields.Name)
	}

	quickStart := "1. Review the core concepts below. " +
		"2. Apply patterns to your use case. " +
		"3. Follow best practices for implementation."

	lines := []string{
		"progressive_disclosure:",
		"  entry_point:",
		fmt.Sprintf("    summary: %s", quoteYAML(summary)),
		fmt.Sprintf("    when_to_use: %s", quoteYAML(whenToUse)),
		fmt.Sprintf("    quick_start: %s", quoteYAML(quickStart)),
	}

	refs := referenceNames(dir)
	if len(refs) > 0 {
		lines = append(lines, "  references:")
		for _, ref := range refs {
			lines = append(lines, "    - "+ref)
		}
	}

	return strings.Join(lines, "\n")
}

// inferWhenToUse guesses a usage hint from keywords in the skill name.
func inferWhenToUse(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "test"):
		return fmt.Sprintf("When writing tests, implementing %s, or ensuring code quality.", name)
	case strings.Contains(lower, "debug"):
		return "When debugging issues, tracing errors, or investigating problems."
	case strings.Contains(lower, "api"):
		return "When designing, implementing, or documenting APIs."
	case strings.Contains(lower, "git"), strings.Contains(lower, "pr"):
		return "When working with version control, branches, or pull requests."
	case strings.Contains(lower, "data"):
		return "When working with data, databases, or data transformations."
	case strings.Contains(lower, "auth"):
		return "When implementing authentication, authorization, or security."
	default:
		return fmt.Sprintf("When working with %s or related functionality.", name)
	}
}

// referenceNames lists up to maxReferences markdown names under
// references/, sorted.
func referenceNames(dir string) []string {
	matches, _ := filepath.Glob(filepath.Join(dir, "references", "*.md"))
	sort.Strings(matches)

	var names []string
	for _, m := range matches {
		names = append(names, filepath.Base(m))
		if len(names) == maxReferences {
			break
		}
	}
	return names
}

// insertIntoFrontmatter places the section after the last top-level field
// and its indented continuation lines.
func insertIntoFrontmatter(raw, section string) string {
	lines := strings.Split(raw, "\n")

	insertIdx := len(lines)
	for i, line := range lines {
		if strings.HasPrefix(line, "  ") || strings.HasPrefix(line, "-") {
			continue
		}
		if strings.Contains(line, ":") && !strings.HasPrefix(strings.TrimSpace(line), "#") {
			insertIdx = i + 1
			for j := i + 1; j < len(lines); j++ {
				if strings.HasPrefix(lines[j], "  ") || strings.HasPrefix(lines[j], "-") {
					insertIdx = j + 1
				} else {
					break
				}
			}
		}
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:insertIdx]...)
	out = append(out, section)
	out = append(out, lines[insertIdx:]...)
	return strings.Join(out, "\n")
}

// quoteYAML renders a double-quoted YAML scalar.
func quoteYAML(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
