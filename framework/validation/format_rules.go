package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	alphaPattern     = regexp.MustCompile(`^[A-Za-z]+$`)
	alphaNumPattern  = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	alphaDashPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	// playground performs the email and url checks; *validator.Validate is
	// safe for concurrent use once built.
	playground = validator.New()
)

func boolean(field string, value any, _ Data) Verdict {
	switch v := value.(type) {
	case bool:
		return Pass()
	case string:
		if v == "true" || v == "false" {
			return Pass()
		}
	default:
		if n, ok := numberValue(value); ok && (n == 0 || n == 1) {
			return Pass()
		}
	}
	return Fail(fmt.Sprintf("The %s field must be true or false.", field))
}

func email(field string, value any, _ Data) Verdict {
	if s, ok := stringValue(value); ok && playground.Var(s, "email") == nil {
		return Pass()
	}
	return Fail(fmt.Sprintf("The %s field must be a valid email address.", field))
}

func url(field string, value any, _ Data) Verdict {
	if s, ok := stringValue(value); ok && playground.Var(s, "url") == nil {
		return Pass()
	}
	return Fail(fmt.Sprintf("The %s field must be a valid URL.", field))
}

// patternPredicate matches the string form of a scalar against re.
func patternPredicate(re *regexp.Regexp, requirement string) Predicate {
	return PredicateFunc(func(field string, value any, _ Data) Verdict {
		if s, ok := stringForm(value); ok && re.MatchString(s) {
			return Pass()
		}
		return Fail(fmt.Sprintf("The %s field %s.", field, requirement))
	})
}

// regexFactory anchors the pattern at both ends. It is registered verbatim,
// so a rule string hands it the pattern exactly as written; a parameter list
// from a rule object is joined back with commas.
func regexFactory(params []string) (Predicate, error) {
	pattern := strings.Join(params, ",")
	if pattern == "" {
		return nil, fmt.Errorf("expected a pattern parameter")
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, err
	}

	return PredicateFunc(func(field string, value any, _ Data) Verdict {
		if s, ok := stringForm(value); ok && re.MatchString(s) {
			return Pass()
		}
		return Fail(fmt.Sprintf("The %s field format is invalid.", field))
	}), nil
}

// inFactory builds in (member=true) and not_in (member=false).
func inFactory(member bool) Factory {
	return func(params []string) (Predicate, error) {
		if len(params) == 0 {
			return nil, fmt.Errorf("expected at least one allowed value")
		}
		allowed := slices.Clone(params)

		return PredicateFunc(func(field string, value any, _ Data) Verdict {
			s, ok := stringForm(value)
			if ok && slices.Contains(allowed, s) == member {
				return Pass()
			}
			return Fail(fmt.Sprintf("The selected %s is invalid.", field))
		}), nil
	}
}
