// Package config provides configuration loading and discovery for skillctl.
//
// Configuration is loaded from multiple sources with the following priority
// (highest to lowest):
//  1. CLI flags
//  2. Environment variables (SKILLCTL_* prefix)
//  3. Config file (closest .skillctl.toml or skillctl.toml)
//  4. Built-in defaults
//
// Config file discovery follows a cascading pattern similar to Ruff:
// starting from the target path's directory, walk up the filesystem
// until a config file is found. The closest config wins (no merging).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames defines the config file names to search for, in priority order.
var ConfigFileNames = []string{".skillctl.toml", "skillctl.toml"}

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "SKILLCTL_"

// Config represents the complete skillctl configuration.
type Config struct {
	// Rules contains configuration for individual linting rules.
	Rules RulesConfig `json:"rules" koanf:"rules"`

	// Output configures output format and destination.
	Output OutputConfig `json:"output" koanf:"output"`

	// Discovery configures which files are scanned.
	Discovery DiscoveryConfig `json:"discovery" koanf:"discovery"`

	// Manifest configures manifest generation.
	Manifest ManifestConfig `json:"manifest" koanf:"manifest"`

	// Package configures skill packaging.
	Package PackageConfig `json:"package" koanf:"package"`

	// ConfigFile is the path to the config file that was loaded (if any).
	// This is metadata, not loaded from config.
	ConfigFile string `json:"-" koanf:"-"`
}

// OutputConfig configures output formatting and behavior.
type OutputConfig struct {
	// Format specifies the output format (text, markdown, json).
	Format string `json:"format,omitempty" koanf:"format"`

	// Path specifies where to write output ("stdout" or a file path).
	Path string `json:"path,omitempty" koanf:"path"`

	// FailLevel sets the minimum severity that causes a non-zero exit code.
	FailLevel string `json:"fail-level,omitempty" koanf:"fail-level"`

	// MaxDetail caps how many violations are shown per type group in the
	// per-file detail view. Omitted items are summarized as a count.
	MaxDetail int `json:"max-detail,omitempty" koanf:"max-detail"`

	// NoColor disables styled terminal output.
	NoColor bool `json:"no-color,omitempty" koanf:"no-color"`
}

// DiscoveryConfig configures document discovery.
type DiscoveryConfig struct {
	// Patterns are doublestar globs for files to lint.
	Patterns []string `json:"patterns,omitempty" koanf:"patterns"`

	// ExcludePatterns are doublestar globs for files to skip.
	ExcludePatterns []string `json:"exclude-patterns,omitempty" koanf:"exclude-patterns"`
}

// ManifestConfig configures manifest generation.
type ManifestConfig struct {
	// Repository is the repository name or URL recorded in the manifest.
	Repository string `json:"repository,omitempty" koanf:"repository"`

	// Version is the manifest document version.
	Version string `json:"version,omitempty" koanf:"version"`

	// Description is the repository description recorded in the manifest.
	Description string `json:"description,omitempty" koanf:"description"`

	// Author is the fallback author for skills without metadata.json.
	Author string `json:"author,omitempty" koanf:"author"`

	// License is recorded in the manifest provenance block.
	License string `json:"license,omitempty" koanf:"license"`

	// Path is where the manifest is written, relative to the skills root.
	Path string `json:"path,omitempty" koanf:"path"`

	// Sections are the top-level directories scanned for skills.
	Sections []string `json:"sections,omitempty" koanf:"sections"`
}

// PackageConfig configures skill packaging.
type PackageConfig struct {
	// Target is the deployment directory skills are copied into.
	Target string `json:"target,omitempty" koanf:"target"`
}

// Default returns the default configuration.
// Rule-specific defaults are owned by each rule via ConfigurableRule.DefaultConfig().
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:    "text",
			Path:      "stdout",
			FailLevel: "error",
			MaxDetail: 10,
		},
		Rules: RulesConfig{}, // Empty - defaults come from rules
		Discovery: DiscoveryConfig{
			Patterns: []string{"**/SKILL.md"},
		},
		Manifest: ManifestConfig{
			Repository:  "skills",
			Version:     "1.0.0",
			Description: "Curated collection of skills",
			Path:        "manifest.json",
			Sections:    []string{"universal", "toolchains", "examples"},
		},
		Package: PackageConfig{
			Target: "dist/skills",
		},
	}
}

// Load loads configuration for a target path.
// It discovers the closest config file, loads it, and applies
// environment variable overrides.
func Load(targetPath string) (*Config, error) {
	return loadWithConfigPath(Discover(targetPath))
}

// LoadFromFile loads configuration from a specific config file path.
// Unlike Load, it does not perform config discovery.
func LoadFromFile(configPath string) (*Config, error) {
	return loadWithConfigPath(configPath)
}

// loadWithConfigPath is an internal helper that loads config with an optional config file path.
func loadWithConfigPath(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}

	// 2. Load config file if provided
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}

	// 3. Load environment variables (SKILLCTL_* prefix)
	// SKILLCTL_OUTPUT_FAIL_LEVEL -> output.fail-level
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.ConfigFile = configPath
	return &cfg, nil
}

// knownCompoundKeys maps dot-separated patterns back to their literal key.
// Env var names can only hold underscores, so hyphenated config keys and
// rule codes (which legitimately contain underscores) have to be restored
// from a lookup table. Add entries here when adding rules.
var knownCompoundKeys = map[string]string{
	"fail.level":            "fail-level",
	"max.detail":            "max-detail",
	"no.color":              "no-color",
	"exclude.patterns":      "exclude-patterns",
	"lookback.lines":        "lookback-lines",
	"min.lines":             "min-lines",
	"second.person.voice":   "second_person_voice",
	"passive.voice":         "passive_voice",
	"non.imperative.mood":   "non_imperative_mood",
	"conversational.tone":   "conversational_tone",
	"missing.code.block":    "missing_code_block",
	"imbalanced.examples":   "imbalanced_examples",
	"orphaned.code.block":   "orphaned_code_block",
	"missing.anti.patterns": "missing_anti_patterns",
}

var allowedEnvTopLevelKeys = map[string]struct{}{
	"rules":     {},
	"output":    {},
	"discovery": {},
	"manifest":  {},
	"package":   {},
	// Compatibility aliases for the most common output settings.
	"format":     {},
	"fail-level": {},
	"no-color":   {},
}

// envKeyTransform converts environment variable names to config keys.
// SKILLCTL_OUTPUT_FORMAT -> output.format
// SKILLCTL_RULES_PROSE_PASSIVE_VOICE_SEVERITY -> rules.prose.passive_voice.severity
func envKeyTransform(k, v string) (string, any) {
	s := strings.TrimPrefix(k, EnvPrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", ".")
	for pattern, replacement := range knownCompoundKeys {
		s = strings.ReplaceAll(s, pattern, replacement)
	}

	topLevel := s
	if before, _, ok := strings.Cut(s, "."); ok {
		topLevel = before
	}
	if _, ok := allowedEnvTopLevelKeys[topLevel]; !ok {
		return "", nil
	}

	return s, v
}

// Discover finds the closest config file for a target path.
// It walks up the directory tree from the target's directory,
// checking for config files at each level.
// Returns empty string if no config file is found.
func Discover(targetPath string) string {
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return ""
	}

	// Start from the target itself when it is a directory.
	dir := absPath
	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		dir = filepath.Dir(absPath)
	}

	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if fileExists(configPath) {
				return configPath
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return ""
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
