package config

import (
	"maps"

	"github.com/skillworks/skillctl/internal/rules/configutil"
)

// RuleConfig represents per-rule configuration.
// Can be specified in TOML as:
//
//	[rules.structure.missing_anti_patterns]
//	severity = "warning"
//	# Rule-specific options are flattened at this level
//	min-lines = 50
type RuleConfig struct {
	// Severity overrides the rule's default severity.
	// Use "off" to disable the rule.
	Severity string `json:"severity,omitempty" koanf:"severity"`

	// Options contains rule-specific configuration options.
	Options map[string]any `json:"-" koanf:",remain"`
}

// RulesConfig contains rule selection and per-rule configuration.
//
// Example TOML (Ruff-style selection):
//
//	[rules]
//	include = ["prose/*"]                # Enable all prose rules
//	exclude = ["conversational_tone"]    # Disable specific rules
//
//	[rules.prose.passive_voice]
//	severity = "info"
//
//	[rules.structure.orphaned_code_block]
//	lookback-lines = 40
type RulesConfig struct {
	// Include explicitly enables rules.
	// Patterns are rule codes, category wildcards ("prose/*"), or "*".
	Include []string `json:"include,omitempty" koanf:"include"`

	// Exclude explicitly disables rules.
	Exclude []string `json:"exclude,omitempty" koanf:"exclude"`

	// Prose contains configuration for prose rules.
	Prose map[string]RuleConfig `json:"prose,omitempty" koanf:"prose"`

	// Structure contains configuration for structure rules.
	Structure map[string]RuleConfig `json:"structure,omitempty" koanf:"structure"`
}

// Get returns the configuration for a specific rule.
// Returns nil if no configuration exists for the rule.
// Rule codes are flat, so both category maps are consulted.
func (rc *RulesConfig) Get(ruleCode string) *RuleConfig {
	if rc == nil {
		return nil
	}
	if cfg, ok := rc.Prose[ruleCode]; ok {
		return &cfg
	}
	if cfg, ok := rc.Structure[ruleCode]; ok {
		return &cfg
	}
	return nil
}

// IsEnabled checks if a rule is enabled based on Include/Exclude patterns.
// Returns nil if no configuration specifies enabled/disabled (use rule default).
// Include takes precedence over Exclude (Ruff-style semantics).
func (rc *RulesConfig) IsEnabled(ruleCode, category string) *bool {
	if rc == nil {
		return nil
	}

	if matchesAnyPattern(ruleCode, category, rc.Include) {
		return boolPtr(true)
	}
	if matchesAnyPattern(ruleCode, category, rc.Exclude) {
		return boolPtr(false)
	}

	// No explicit config - use rule default
	return nil
}

// matchesAnyPattern checks if a rule matches any pattern in the list.
func matchesAnyPattern(ruleCode, category string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesPattern(ruleCode, category, pattern) {
			return true
		}
	}
	return false
}

// matchesPattern checks if a rule matches a single pattern.
// Patterns can be:
// - "*" (everything)
// - Exact rule code: "passive_voice"
// - Category wildcard: "prose/*"
func matchesPattern(ruleCode, category, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if ruleCode == pattern {
		return true
	}
	if pattern == category+"/*" {
		return true
	}
	return false
}

// GetSeverity returns the severity override for a rule.
// Returns empty string if no override is configured.
func (rc *RulesConfig) GetSeverity(ruleCode string) string {
	if rc == nil {
		return ""
	}
	if cfg := rc.Get(ruleCode); cfg != nil && cfg.Severity != "" {
		return cfg.Severity
	}
	return ""
}

// GetOptions returns rule-specific options.
// Returns nil if no options are configured.
// Returns a shallow copy to prevent mutation of internal state.
func (rc *RulesConfig) GetOptions(ruleCode string) map[string]any {
	if rc == nil {
		return nil
	}
	if cfg := rc.Get(ruleCode); cfg != nil {
		if cfg.Options == nil {
			return nil
		}
		out := make(map[string]any, len(cfg.Options))
		maps.Copy(out, cfg.Options)
		return out
	}
	return nil
}

// DecodeRuleOptions returns typed rule options merged over defaults.
// Returns defaults if the rule has no options or decoding fails.
func DecodeRuleOptions[T any](rc *RulesConfig, ruleCode string, defaults T) T {
	if rc == nil {
		return defaults
	}
	return configutil.Resolve(rc.GetOptions(ruleCode), defaults)
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}
