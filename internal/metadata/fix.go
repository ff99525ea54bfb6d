// Package metadata repairs skill sidecar files: it reconciles declared
// token counts with reality, backfills missing fields in metadata.json,
// and generates absent progressive_disclosure frontmatter sections.
package metadata

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillworks/skillctl/internal/skill"
)

// Options controls fixer behavior.
type Options struct {
	// DryRun reports fixes without writing files.
	DryRun bool
}

// fullTokensDriftRatio is how far the declared full_tokens may drift from
// the measured value before it gets rewritten.
const fullTokensDriftRatio = 0.1

// FixMetadata repairs one skill directory's metadata.json. It returns a
// human-readable description of every fix applied (empty when the file is
// absent or already consistent). dir is absolute; rel is the skill's
// repository-relative directory path, used to derive the toolchain.
func FixMetadata(dir, rel string, opts Options) ([]string, error) {
	metadataPath := filepath.Join(dir, skill.MetadataName)
	data, err := os.ReadFile(metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", metadataPath, err)
	}

	var fixes []string

	skillMD := filepath.Join(dir, skill.DocumentName)
	content, contentErr := os.ReadFile(skillMD)

	if contentErr == nil {
		actual := skill.EstimateTokens(content) + referenceTokens(dir)
		declared, _ := asInt(meta["full_tokens"])
		drift := math.Abs(float64(declared - actual))
		if declared == 0 || drift > float64(declared)*fullTokensDriftRatio {
			meta["full_tokens"] = actual
			fixes = append(fixes, fmt.Sprintf("full_tokens: %d -> %d", declared, actual))
		}
	}

	if _, ok := meta["entry_point_tokens"]; !ok && contentErr == nil {
		entry := skill.EntryPointTokens(content)
		meta["entry_point_tokens"] = entry
		fixes = append(fixes, fmt.Sprintf("entry_point_tokens: added (%d)", entry))
	}

	if _, ok := meta["toolchain"]; !ok {
		toolchain, explicitNull := toolchainFromPath(rel)
		switch {
		case toolchain != "":
			meta["toolchain"] = toolchain
			fixes = append(fixes, fmt.Sprintf("toolchain: added (%s)", toolchain))
		case explicitNull:
			meta["toolchain"] = nil
			fixes = append(fixes, "toolchain: set to null (cross-language skill)")
		}
	}

	if category, _ := meta["category"].(string); category == "platform" {
		meta["category"] = "toolchain"
		fixes = append(fixes, "category: platform -> toolchain")
	}

	if len(fixes) > 0 && !opts.DryRun {
		out, err := json.MarshalIndent(newOrderedMetadata(meta), "", "  ")
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(metadataPath, append(out, '\n'), 0o644); err != nil {
			return nil, err
		}
	}

	return fixes, nil
}

// referenceTokens sums token estimates over references/*.md (direct
// children only; nested reference trees are counted by the manifest
// generator, not the fixer).
func referenceTokens(dir string) int {
	matches, _ := filepath.Glob(filepath.Join(dir, "references", "*.md"))
	total := 0
	for _, m := range matches {
		if content, err := os.ReadFile(m); err == nil {
			total += skill.EstimateTokens(content)
		}
	}
	return total
}

// toolchainFromPath derives a toolchain from a skill's repository-relative
// directory path. Universal and platform skills are cross-language: they get
// an explicit null instead of a value.
func toolchainFromPath(rel string) (toolchain string, explicitNull bool) {
	parts := strings.Split(filepath.ToSlash(rel), "/")

	for i, p := range parts {
		switch p {
		case "universal":
			return "", true
		case "toolchains":
			if i+1 < len(parts) {
				if parts[i+1] == "platforms" {
					return "", true
				}
				return parts[i+1], false
			}
		}
	}
	return "", false
}

// asInt reads a numeric JSON value as an int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
