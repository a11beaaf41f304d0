// Package ruleset loads named validation rule sets from YAML or JSON files.
//
// A file maps set names to field rules. Field rules are either a rule string
// or a mapping of criterion names to parameters; mapping order is kept, so
// the criteria run in the order they are written.
//
//	signup:
//	  email: required|email
//	  password:
//	    required: true
//	    min: 8
//	    confirmed: ~
//
// JSON is a subset of YAML, so the same loader reads .json files.
package ruleset

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-validator/framework/validation"
)

var (
	// ErrInvalidRuleSet is returned when a rule-set document cannot be decoded.
	ErrInvalidRuleSet = errors.New("invalid rule set")

	// ErrUnknownSet is returned when a set name is not defined.
	ErrUnknownSet = errors.New("unknown rule set")

	// ErrNotCompiled is returned when a plan is requested before Compile.
	ErrNotCompiled = errors.New("rule sets not compiled")
)

// Sets holds named rule sets and, after Compile, their plans.
type Sets struct {
	rules map[string]validation.Rules
	plans map[string]*validation.Plan
}

// Load reads and parses a rule-set file.
func Load(path string) (*Sets, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ruleset: read %s: %w", path, err)
	}
	sets, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("ruleset: %s: %w", path, err)
	}
	return sets, nil
}

// Parse decodes a rule-set document.
func Parse(b []byte) (*Sets, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRuleSet, err)
	}

	sets := &Sets{rules: make(map[string]validation.Rules)}
	if doc.Kind == 0 {
		return sets, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must map set names to rules (line %d)", ErrInvalidRuleSet, root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		if _, dup := sets.rules[name]; dup {
			return nil, fmt.Errorf("%w: set %q defined twice (line %d)", ErrInvalidRuleSet, name, root.Content[i].Line)
		}

		var rules validation.Rules
		if err := root.Content[i+1].Decode(&rules); err != nil {
			return nil, fmt.Errorf("%w: set %q: %w", ErrInvalidRuleSet, name, err)
		}
		sets.rules[name] = rules
	}
	return sets, nil
}

// Compile resolves every set against v so configuration errors surface
// before any data is validated.
func (s *Sets) Compile(v *validation.Validator) error {
	plans := make(map[string]*validation.Plan, len(s.rules))
	for _, name := range s.Names() {
		plan, err := v.Compile(s.rules[name])
		if err != nil {
			return fmt.Errorf("ruleset %q: %w", name, err)
		}
		plans[name] = plan
	}
	s.plans = plans
	return nil
}

// Names returns the set names in sorted order.
func (s *Sets) Names() []string {
	return slices.Sorted(maps.Keys(s.rules))
}

// Len returns the number of sets.
func (s *Sets) Len() int { return len(s.rules) }

// Rules returns the rules of a set.
func (s *Sets) Rules(name string) (validation.Rules, error) {
	rules, ok := s.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSet, name)
	}
	return rules, nil
}

// Plan returns the compiled plan of a set.
func (s *Sets) Plan(name string) (*validation.Plan, error) {
	if _, ok := s.rules[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSet, name)
	}
	if s.plans == nil {
		return nil, ErrNotCompiled
	}
	return s.plans[name], nil
}
