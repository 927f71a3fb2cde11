package structure

import (
	"sync"
)

// Registry holds the ordered rule sequence: built-ins first, then every
// registered set in call order. Order is precedence — within the line
// pass the first matching rule wins, so an earlier rule with the same
// pattern silently shadows a later one. That is contract, not accident.
//
// A Registry is built once per engine and is read-only during document
// processing, which makes one engine safe to share across concurrent
// per-file workers.
type Registry struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewRegistry creates an empty registry. Engines seed it with built-ins
// before registering externally supplied sets.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register validates and appends all rules from the given set. A
// malformed set returns a *ValidationError and leaves already registered
// rules untouched: every descriptor is compiled before anything is
// appended.
func (r *Registry) Register(set Set) error {
	if set.Rules == nil {
		return &ValidationError{Msg: "rule set must provide a rules sequence"}
	}

	compiled := make([]Rule, 0, len(set.Rules))
	for _, desc := range set.Rules {
		rule, err := desc.compile()
		if err != nil {
			return err
		}
		compiled = append(compiled, rule)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, compiled...)
	return nil
}

// append adds already-compiled rules, used for the built-in seed.
func (r *Registry) append(rules ...Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rules...)
}

// Rules returns the ordered rule sequence.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// FirstLine returns the first registered first-line rule, or nil.
func (r *Registry) FirstLine() Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.rules {
		if rule.Kind() == KindFirstLine {
			return rule
		}
	}
	return nil
}

// LineRules returns the line and contextual rules in registration order.
// First-line and multi-line rules are excluded; the scanner handles
// those separately.
func (r *Registry) LineRules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Rule
	for _, rule := range r.rules {
		if rule.Kind() == KindLine || rule.Kind() == KindContextual {
			out = append(out, rule)
		}
	}
	return out
}

// MultiLineRules returns the document-wide rules in registration order.
// Unlike the line pass, all of them apply.
func (r *Registry) MultiLineRules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Rule
	for _, rule := range r.rules {
		if rule.Kind() == KindMultiLine {
			out = append(out, rule)
		}
	}
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
