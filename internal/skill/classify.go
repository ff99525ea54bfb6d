package skill

import "strings"

// Skill categories.
const (
	CategoryUniversal = "universal"
	CategoryToolchain = "toolchain"
	CategoryExample   = "example"
	CategoryUnknown   = "unknown"
)

// Classification describes where a skill sits in the repository layout.
// Toolchain and Framework are nil for cross-language skills.
type Classification struct {
	Category  string
	Toolchain *string
	Framework *string
}

// frameworkNames are recognized in skill directory names when the path does
// not use the explicit toolchains/<lang>/frameworks/<name> layout.
var frameworkNames = []string{
	"django", "flask", "fastapi", "tauri", "react",
	"nextjs", "express", "vue", "angular", "svelte",
}

// Classify derives category, toolchain and framework from a skill's
// repository-relative SKILL.md path (slash separated).
func Classify(relPath string) Classification {
	parts := strings.Split(relPath, "/")

	switch parts[0] {
	case "universal":
		return Classification{Category: CategoryUniversal}
	case "examples":
		return Classification{Category: CategoryExample}
	case "toolchains":
		c := Classification{Category: CategoryToolchain}
		if len(parts) > 1 {
			c.Toolchain = &parts[1]
		}
		if len(parts) > 3 && parts[2] == "frameworks" {
			c.Framework = &parts[3]
			return c
		}
		if len(parts) > 2 {
			// The framework may be embedded in the skill directory name.
			skillDir := strings.ToLower(parts[len(parts)-2])
			for _, name := range frameworkNames {
				if strings.Contains(skillDir, name) {
					fw := name
					c.Framework = &fw
					break
				}
			}
		}
		return c
	}

	return Classification{Category: CategoryUnknown}
}
