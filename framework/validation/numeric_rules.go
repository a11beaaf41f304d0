package validation

import (
	"fmt"
	"math"
)

func required(field string, value any, _ Data) Verdict {
	if IsPresent(value) {
		return Pass()
	}
	return Fail(fmt.Sprintf("The %s field is required.", field))
}

func numeric(field string, value any, _ Data) Verdict {
	if _, ok := toNumber(value); ok {
		return Pass()
	}
	return Fail(fmt.Sprintf("The %s field must be a numeric value.", field))
}

// integer builds on numeric and surfaces its verdict when the value is not a
// number at all.
func integer(field string, value any, data Data) Verdict {
	if v := numeric(field, value, data); !v.Valid {
		return v
	}
	n, _ := toNumber(value)
	if math.Mod(n, 1) != 0 {
		return Fail(fmt.Sprintf("The %s field must be an integer.", field))
	}
	return Pass()
}

func positive(field string, value any, data Data) Verdict {
	if v := integer(field, value, data); !v.Valid {
		return v
	}
	if n, _ := toNumber(value); n <= 0 {
		return Fail(fmt.Sprintf("The %s field must be a positive integer.", field))
	}
	return Pass()
}

func negative(field string, value any, data Data) Verdict {
	if v := integer(field, value, data); !v.Valid {
		return v
	}
	if n, _ := toNumber(value); n >= 0 {
		return Fail(fmt.Sprintf("The %s field must be a negative integer.", field))
	}
	return Pass()
}

// measure returns the length a string value is compared by.
func measure(mode LengthMode, field, s string) float64 {
	if mode == LengthFieldName {
		return float64(runeLength(field))
	}
	return float64(runeLength(s))
}

func unmeasurable(value any) Verdict {
	return Fail(fmt.Sprintf("Validation error: cannot restrict length of value of type %T.", value))
}

// boundFactory builds min and max. Numbers and numeric strings compare by
// value, other strings by length.
func boundFactory(kind string, mode LengthMode) Factory {
	isMin := kind == "min"
	return func(params []string) (Predicate, error) {
		limit, err := numberParams(params, 1)
		if err != nil {
			return nil, err
		}
		n := limit[0]

		return PredicateFunc(func(field string, value any, _ Data) Verdict {
			if v, ok := toNumber(value); ok {
				switch {
				case isMin && v < n:
					return Fail(fmt.Sprintf("The %s field must be greater than or equal to %s.", field, formatNumber(n)))
				case !isMin && v > n:
					return Fail(fmt.Sprintf("The %s field must be less than or equal to %s.", field, formatNumber(n)))
				}
				return Pass()
			}

			s, ok := stringValue(value)
			if !ok {
				return unmeasurable(value)
			}
			l := measure(mode, field, s)
			switch {
			case isMin && l < n:
				return Fail(fmt.Sprintf("The %s field cannot be less than %s characters long.", field, formatNumber(n)))
			case !isMin && l > n:
				return Fail(fmt.Sprintf("The %s field cannot be more than %s characters long.", field, formatNumber(n)))
			}
			return Pass()
		}), nil
	}
}

func betweenFactory(mode LengthMode) Factory {
	return func(params []string) (Predicate, error) {
		bounds, err := numberParams(params, 2)
		if err != nil {
			return nil, err
		}
		lo, hi := bounds[0], bounds[1]
		if lo > hi {
			return nil, fmt.Errorf("lower bound %s exceeds upper bound %s", formatNumber(lo), formatNumber(hi))
		}

		return PredicateFunc(func(field string, value any, _ Data) Verdict {
			if v, ok := toNumber(value); ok {
				if v < lo || v > hi {
					return Fail(fmt.Sprintf("The %s field must be between %s and %s.", field, formatNumber(lo), formatNumber(hi)))
				}
				return Pass()
			}

			s, ok := stringValue(value)
			if !ok {
				return unmeasurable(value)
			}
			if l := measure(mode, field, s); l < lo || l > hi {
				return Fail(fmt.Sprintf("The %s field must be between %s and %s characters long.", field, formatNumber(lo), formatNumber(hi)))
			}
			return Pass()
		}), nil
	}
}

// numberParams parses exactly want numeric parameters.
func numberParams(params []string, want int) ([]float64, error) {
	if len(params) != want {
		return nil, fmt.Errorf("expected %d numeric parameter(s), got %d", want, len(params))
	}
	out := make([]float64, want)
	for i, p := range params {
		n, ok := parseNumber(p)
		if !ok {
			return nil, fmt.Errorf("parameter %q is not a number", p)
		}
		out[i] = n
	}
	return out, nil
}
