package linter

import (
	"github.com/erraggy/oaslint/oaserrors"
	"github.com/erraggy/oaslint/walker"
)

// Registry is an immutable, ordered set of rule definitions. Extending a
// registry returns a new one, so a registry can be shared by concurrent runs.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry builds a registry holding defs in order.
func NewRegistry(defs ...Definition) (*Registry, error) {
	return (&Registry{}).Extend(defs...)
}

// DefaultRegistry returns a registry of the built-in rules.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultRules()...)
	if err != nil {
		panic("linter: invalid built-in rules: " + err.Error())
	}
	return r
}

// Extend returns a new registry with defs appended after the receiver's rules.
// A nil receiver is treated as empty.
func (r *Registry) Extend(defs ...Definition) (*Registry, error) {
	next := &Registry{index: make(map[string]int)}
	if r != nil {
		next.defs = append(next.defs, r.defs...)
		for id, i := range r.index {
			next.index[id] = i
		}
	}

	for _, d := range defs {
		if err := checkDefinition(d); err != nil {
			return nil, err
		}
		if _, dup := next.index[d.ID]; dup {
			return nil, &oaserrors.ConfigError{Option: "rule", Value: d.ID, Message: "duplicate rule id"}
		}
		next.index[d.ID] = len(next.defs)
		next.defs = append(next.defs, d)
	}
	return next, nil
}

func checkDefinition(d Definition) error {
	switch {
	case d.ID == "":
		return &oaserrors.ConfigError{Option: "rule", Message: "rule id must not be empty"}
	case d.Check == nil:
		return &oaserrors.ConfigError{Option: "rule", Value: d.ID, Message: "rule has no check function"}
	}
	if _, ok := walker.ParseCategory(string(d.AppliesTo)); !ok {
		return &oaserrors.ConfigError{Option: "rule", Value: d.ID, Message: "unknown category " + string(d.AppliesTo)}
	}
	return nil
}

// Rules returns the definitions in registration order.
func (r *Registry) Rules() []Definition {
	if r == nil {
		return nil
	}
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Lookup returns the rule registered under id.
func (r *Registry) Lookup(id string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.defs)
}
