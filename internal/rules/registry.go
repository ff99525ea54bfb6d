package rules

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Registry holds the known rules keyed by code. The zero value is not
// usable; create one with NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule. Codes are unique; registering the same code twice
// is a programming error and panics.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := rule.Metadata().Code
	if _, exists := r.rules[code]; exists {
		panic(fmt.Sprintf("rule %q already registered", code))
	}
	r.rules[code] = rule
}

// Get returns the rule with the given code, or nil.
func (r *Registry) Get(code string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules[code]
}

// Has reports whether a rule with the given code is registered.
func (r *Registry) Has(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.rules[code]
	return exists
}

// All returns every registered rule, sorted by code.
func (r *Registry) All() []Rule {
	return r.selectRules(func(Rule) bool { return true })
}

// Codes returns every registered rule code, sorted.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.rules))
	for code := range r.rules {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// EnabledByDefault returns the rules that run without explicit opt-in,
// sorted by code.
func (r *Registry) EnabledByDefault() []Rule {
	return r.selectRules(func(rule Rule) bool {
		return rule.Metadata().EnabledByDefault
	})
}

// ByCategory returns the rules of one category ("prose", "structure"),
// sorted by code.
func (r *Registry) ByCategory(category string) []Rule {
	return r.selectRules(func(rule Rule) bool {
		return rule.Metadata().Category == category
	})
}

// selectRules collects matching rules in stable code order.
func (r *Registry) selectRules(keep func(Rule) bool) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if keep(rule) {
			result = append(result, rule)
		}
	}
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.Metadata().Code, b.Metadata().Code)
	})
	return result
}

// defaultRegistry collects the built-in rules via their package init
// functions (blank-import internal/rules/all to populate it).
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a rule to the default registry.
func Register(rule Rule) {
	defaultRegistry.Register(rule)
}

// Get retrieves a rule from the default registry.
func Get(code string) Rule {
	return defaultRegistry.Get(code)
}

// All returns all rules from the default registry.
func All() []Rule {
	return defaultRegistry.All()
}

// Codes returns all rule codes from the default registry.
func Codes() []string {
	return defaultRegistry.Codes()
}

// EnabledDefault returns the default registry's enabled-by-default rules.
func EnabledDefault() []Rule {
	return defaultRegistry.EnabledByDefault()
}
