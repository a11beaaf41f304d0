package validation

import "fmt"

// ConfirmationSuffix names the sibling field checked by confirmed.
const ConfirmationSuffix = "_confirmation"

// confirmed is the only built-in that reads the rest of the record.
func confirmed(field string, value any, data Data) Verdict {
	if !IsPresent(value) {
		return Fail(fmt.Sprintf("The %s field is required.", field))
	}
	other, ok := data[field+ConfirmationSuffix]
	if !ok || !strictEqual(value, other) {
		return Fail(fmt.Sprintf("The %s confirmation does not match.", field))
	}
	return Pass()
}

// fieldFactory builds same (equal=true) and different (equal=false).
func fieldFactory(equal bool) Factory {
	return func(params []string) (Predicate, error) {
		if len(params) != 1 || params[0] == "" {
			return nil, fmt.Errorf("expected the name of the field to compare with")
		}
		other := params[0]

		return PredicateFunc(func(field string, _ any, data Data) Verdict {
			if strictEqual(data[field], data[other]) == equal {
				return Pass()
			}
			if equal {
				return Fail(fmt.Sprintf("The %s and %s must match.", field, other))
			}
			return Fail(fmt.Sprintf("The %s and %s must be different.", field, other))
		}), nil
	}
}
