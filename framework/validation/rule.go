package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Criterion is a single named rule with its parameters, e.g. min:6.
type Criterion struct {
	Name   string
	Params []string
	// Args is the parameter text after the first ':' with only its outer
	// whitespace trimmed and \, unescaped. Verbatim criteria such as regex
	// receive it instead of Params.
	Args string
	// Raw is the criterion as written, used in error messages.
	Raw string
}

// Spec is a per-field rule specification.
type Spec interface {
	Criteria() ([]Criterion, error)
}

// Rule is the pipe-delimited form: "required|min:6|regex:^[a-z]+$".
type Rule string

// Criteria parses the rule string.
func (r Rule) Criteria() ([]Criterion, error) { return Parse(string(r)) }

// Entry is one key of a rule object.
type Entry struct {
	Name  string
	Value any
}

// Object is the structured form. Entries keep declaration order:
//
//	validation.Object{{Name: "required", Value: true}, {Name: "min", Value: 6}}
type Object []Entry

// Criteria maps entries to criteria. A sequence value is used as the
// parameter list, nil means no parameters, any other scalar becomes the
// single parameter.
func (o Object) Criteria() ([]Criterion, error) {
	criteria := make([]Criterion, 0, len(o))
	for i, e := range o {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty criterion name at key #%d", ErrMalformedRule, i+1)
		}
		params := paramsOf(e.Value)
		criteria = append(criteria, Criterion{
			Name:   name,
			Params: params,
			Args:   strings.Join(params, ","),
			Raw:    e.Name,
		})
	}
	return criteria, nil
}

func paramsOf(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), v...)
	case []any:
		params := make([]string, len(v))
		for i, p := range v {
			params[i] = paramString(p)
		}
		return params
	}
	return []string{paramString(value)}
}

// UnmarshalJSON decodes a JSON object keeping key order.
func (o *Object) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: rule object must be a JSON object", ErrMalformedRule)
	}

	entries := Object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		entries = append(entries, Entry{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = entries
	return nil
}

// UnmarshalYAML decodes a YAML mapping keeping key order.
func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: rule object must be a mapping (line %d)", ErrMalformedRule, node.Line)
	}

	entries := make(Object, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		entries = append(entries, Entry{Name: node.Content[i].Value, Value: value})
	}

	*o = entries
	return nil
}

// Rules maps field names to their specification.
type Rules map[string]Spec

// UnmarshalJSON accepts string values as Rule and object values as Object.
func (r *Rules) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	rules := make(Rules, len(raw))
	for field, msg := range raw {
		spec, err := decodeJSONSpec(msg)
		if err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
		rules[field] = spec
	}

	*r = rules
	return nil
}

func decodeJSONSpec(msg json.RawMessage) (Spec, error) {
	switch trimmed := bytes.TrimSpace(msg); {
	case bytes.Equal(trimmed, []byte("null")):
		return Rule(""), nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return Rule(s), nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		var o Object
		if err := o.UnmarshalJSON(trimmed); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("%w: expected a rule string or a rule object", ErrMalformedRule)
	}
}

// UnmarshalYAML accepts scalar values as Rule and mappings as Object.
func (r *Rules) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: rules must be a mapping (line %d)", ErrMalformedRule, node.Line)
	}

	rules := make(Rules, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		field, value := node.Content[i].Value, node.Content[i+1]
		switch {
		case value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null":
			rules[field] = Rule("")
		case value.Kind == yaml.ScalarNode:
			rules[field] = Rule(value.Value)
		case value.Kind == yaml.MappingNode:
			var o Object
			if err := o.UnmarshalYAML(value); err != nil {
				return fmt.Errorf("field %q: %w", field, err)
			}
			rules[field] = o
		default:
			return fmt.Errorf("%w: field %q must be a rule string or a rule object (line %d)",
				ErrMalformedRule, field, value.Line)
		}
	}

	*r = rules
	return nil
}

// ── Parser ───────────────────────────────────────────────────────────────────

// Parse tokenizes a pipe-delimited rule string into criteria.
// An empty or blank string yields no criteria.
func Parse(rule string) ([]Criterion, error) {
	if strings.TrimSpace(rule) == "" {
		return nil, nil
	}

	segments, err := splitEscaped(rule, '|')
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformedRule, rule, err)
	}

	criteria := make([]Criterion, 0, len(segments))
	for i, seg := range segments {
		c, err := parseCriterion(seg)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: criterion #%d: %w", ErrMalformedRule, rule, i+1, err)
		}
		criteria = append(criteria, c)
	}
	return criteria, nil
}

func parseCriterion(seg string) (Criterion, error) {
	raw := strings.TrimSpace(seg)
	name, rest, hasParams := strings.Cut(raw, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return Criterion{}, fmt.Errorf("empty criterion name")
	}

	c := Criterion{Name: name, Raw: raw}
	if !hasParams || strings.TrimSpace(rest) == "" {
		return c, nil
	}

	params, err := splitEscaped(rest, ',')
	if err != nil {
		return Criterion{}, err
	}
	c.Args = strings.TrimSpace(strings.Join(params, ","))
	for i := range params {
		params[i] = strings.TrimSpace(params[i])
	}
	c.Params = params
	return c, nil
}

// splitEscaped splits s on sep. A backslash followed by sep yields a literal
// sep; any other escaped pair is copied as written so later passes still see
// it.
func splitEscaped(s string, sep byte) ([]string, error) {
	var (
		parts []string
		cur   strings.Builder
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\\':
			if i+1 >= len(s) {
				return nil, fmt.Errorf("dangling escape at offset %d", i)
			}
			next := s[i+1]
			if next != sep {
				cur.WriteByte(ch)
			}
			cur.WriteByte(next)
			i++
		case ch == sep:
			if sep == '|' && strings.TrimSpace(cur.String()) == "" {
				return nil, fmt.Errorf("empty criterion at offset %d", i)
			}
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	if sep == '|' && strings.TrimSpace(cur.String()) == "" {
		return nil, fmt.Errorf("empty criterion at offset %d", len(s))
	}
	parts = append(parts, cur.String())
	return parts, nil
}
