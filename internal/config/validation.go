package config

import (
	"fmt"

	"github.com/skillworks/skillctl/internal/rules"
)

var validFormats = map[string]struct{}{
	"text":     {},
	"markdown": {},
	"json":     {},
}

// Validate checks the merged configuration for values that cannot be
// interpreted. Rule-specific options are validated later, against each
// rule's own ValidateConfig, once the registry is populated.
func (c *Config) Validate() error {
	if c.Output.Format != "" {
		if _, ok := validFormats[c.Output.Format]; !ok {
			return fmt.Errorf("invalid output format %q (valid: text, markdown, json)", c.Output.Format)
		}
	}

	if c.Output.FailLevel != "" {
		if _, err := rules.ParseSeverity(c.Output.FailLevel); err != nil {
			return fmt.Errorf("invalid fail-level: %w", err)
		}
	}

	if c.Output.MaxDetail < 0 {
		return fmt.Errorf("output.max-detail must be non-negative, got %d", c.Output.MaxDetail)
	}

	for _, group := range []map[string]RuleConfig{c.Rules.Prose, c.Rules.Structure} {
		for code, rc := range group {
			if rc.Severity == "" {
				continue
			}
			if _, err := rules.ParseSeverity(rc.Severity); err != nil {
				return fmt.Errorf("rule %s: invalid severity: %w", code, err)
			}
		}
	}

	return nil
}

// ValidateRuleOptions checks every configured rule's options against the
// rule's own validator. Unknown rule codes are rejected so typos in config
// surface as config errors rather than silently doing nothing.
func (c *Config) ValidateRuleOptions(registry *rules.Registry) error {
	for _, group := range []map[string]RuleConfig{c.Rules.Prose, c.Rules.Structure} {
		for code, rc := range group {
			rule := registry.Get(code)
			if rule == nil {
				return fmt.Errorf("unknown rule %q in config", code)
			}
			if len(rc.Options) == 0 {
				continue
			}
			cfgRule, ok := rule.(rules.ConfigurableRule)
			if !ok {
				return fmt.Errorf("rule %q does not accept options", code)
			}
			if err := cfgRule.ValidateConfig(rc.Options); err != nil {
				return err
			}
		}
	}
	return nil
}
