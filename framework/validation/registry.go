package validation

import (
	"fmt"
	"slices"
	"sync"
)

// LengthMode selects what min, max and between measure for string values.
type LengthMode int

const (
	// LengthValue measures the rune length of the value.
	LengthValue LengthMode = iota
	// LengthFieldName measures the rune length of the field name.
	LengthFieldName
)

func (m LengthMode) String() string {
	if m == LengthFieldName {
		return "field_name"
	}
	return "value"
}

// Registry maps criterion names to predicate factories.
//
// Register entries during startup; afterwards the registry is only read and
// can be shared by concurrent validation runs.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	verbatim  map[string]bool
	length    LengthMode
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLengthMode sets how string lengths are measured by the built-in
// length criteria.
func WithLengthMode(m LengthMode) RegistryOption {
	return func(r *Registry) { r.length = m }
}

// NewRegistry returns a registry loaded with the built-in criteria.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		verbatim:  make(map[string]bool),
		length:    LengthValue,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.registerBuiltins()
	return r
}

func (r *Registry) registerBuiltins() {
	builtins := map[string]Factory{
		// presence and numbers
		"required": Static(PredicateFunc(required)),
		"numeric":  Static(PredicateFunc(numeric)),
		"integer":  Static(PredicateFunc(integer)),
		"positive": Static(PredicateFunc(positive)),
		"negative": Static(PredicateFunc(negative)),
		"min":      boundFactory("min", r.length),
		"max":      boundFactory("max", r.length),
		"between":  betweenFactory(r.length),

		// formats
		"boolean":    Static(PredicateFunc(boolean)),
		"email":      Static(PredicateFunc(email)),
		"url":        Static(PredicateFunc(url)),
		"alpha":      Static(patternPredicate(alphaPattern, "may only contain letters")),
		"alpha_num":  Static(patternPredicate(alphaNumPattern, "may only contain letters and numbers")),
		"alpha_dash": Static(patternPredicate(alphaDashPattern, "may only contain letters, numbers, dashes and underscores")),
		"in":         inFactory(true),
		"not_in":     inFactory(false),

		// cross-field
		"confirmed": Static(PredicateFunc(confirmed)),
		"same":      fieldFactory(true),
		"different": fieldFactory(false),
	}
	for name, f := range builtins {
		r.factories[name] = f
	}
	r.factories["regex"] = regexFactory
	r.verbatim["regex"] = true
}

// Register adds or replaces a criterion.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
	delete(r.verbatim, name)
}

// RegisterVerbatim adds or replaces a criterion whose factory receives the
// whole parameter text as a single parameter, commas and inner whitespace
// included. Patterns and other free-form parameters use it.
func (r *Registry) RegisterVerbatim(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
	r.verbatim[name] = true
}

// Has reports whether name is a known criterion.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered criterion names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LengthMode returns the string length mode of the built-in criteria.
func (r *Registry) LengthMode() LengthMode { return r.length }

// ResolveCriterion builds the predicate for a parsed criterion, passing
// verbatim criteria their parameter text unsplit.
func (r *Registry) ResolveCriterion(c Criterion) (Predicate, error) {
	r.mu.RLock()
	verbatim := r.verbatim[c.Name]
	r.mu.RUnlock()
	if !verbatim {
		return r.Resolve(c.Name, c.Params)
	}
	var params []string
	if c.Args != "" {
		params = []string{c.Args}
	}
	return r.Resolve(c.Name, params)
}

// Resolve builds the predicate for a criterion. Unknown names wrap
// ErrUnrecognizedCriterion, rejected parameters wrap ErrInvalidParameter.
func (r *Registry) Resolve(name string, params []string) (Predicate, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedCriterion, name)
	}

	p, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidParameter, name, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s: factory returned no predicate", ErrInvalidParameter, name)
	}
	return p, nil
}
