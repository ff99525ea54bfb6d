package skill

import (
	"os"
	"path/filepath"
	"regexp"
)

// DefaultEntryTokens is the assumed entry-point size for documents where no
// progressive_disclosure section or frontmatter can be measured.
const DefaultEntryTokens = 85

// EstimateTokens approximates the token count of text at four characters
// per token. Good enough for size sanity checks and manifest budgets.
func EstimateTokens(text []byte) int {
	return len(text) / 4
}

// entryPointRe captures the progressive_disclosure entry_point block up to
// the next sibling key, closing delimiter, or blank-line-then-heading.
var entryPointRe = regexp.MustCompile(
	`(?s)progressive_disclosure:\s*\n\s*entry_point:\s*\n(.*?)\n\s*(?:references:|token_estimate:|---|\n\n[A-Z#])`)

// frontmatterRe captures the raw frontmatter of a document.
var frontmatterRe = regexp.MustCompile(`(?s)^---\s*\n(.*?)\n---`)

// EntryPointTokens estimates the entry-point size of a skill document:
// the progressive_disclosure entry_point section when present, otherwise
// the frontmatter alone, otherwise DefaultEntryTokens.
func EntryPointTokens(content []byte) int {
	if m := entryPointRe.FindSubmatch(content); m != nil {
		return EstimateTokens(m[1])
	}
	if m := frontmatterRe.FindSubmatch(content); m != nil {
		return EstimateTokens(m[1])
	}
	return DefaultEntryTokens
}

// TokenCounts returns the entry (SKILL.md only) and full (plus all markdown
// under references/ and examples/) token estimates for a skill directory.
func TokenCounts(dir string) (entry, full int, err error) {
	content, err := os.ReadFile(filepath.Join(dir, DocumentName))
	if err != nil {
		return 0, 0, err
	}

	entry = EstimateTokens(content)
	full = entry
	full += markdownTokens(filepath.Join(dir, "references"))
	full += markdownTokens(filepath.Join(dir, "examples"))
	return entry, full, nil
}

// markdownTokens sums token estimates over all *.md files under root.
// Unreadable files are skipped.
func markdownTokens(root string) int {
	total := 0
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(d.Name()) != ".md" {
			return nil
		}
		if content, err := os.ReadFile(path); err == nil {
			total += EstimateTokens(content)
		}
		return nil
	})
	return total
}
