package validation

// Data is the record under validation.
type Data map[string]any

// Verdict is the outcome of a single predicate application.
// Build it with Pass or Fail.
type Verdict struct {
	Valid   bool
	Message string
}

// Pass returns a passing verdict.
func Pass() Verdict { return Verdict{Valid: true} }

// Fail returns a failing verdict carrying a human-readable message.
func Fail(message string) Verdict { return Verdict{Message: message} }

// Predicate is the executable check a criterion resolves to.
// Implementations must be stateless apart from their parameters.
type Predicate interface {
	Evaluate(field string, value any, data Data) Verdict
}

// PredicateFunc adapts an ordinary function to Predicate.
type PredicateFunc func(field string, value any, data Data) Verdict

func (f PredicateFunc) Evaluate(field string, value any, data Data) Verdict {
	return f(field, value, data)
}

// Factory builds a predicate from criterion parameters. Returning an error
// marks the rule as misconfigured.
type Factory func(params []string) (Predicate, error)

// Static wraps a parameterless predicate into a Factory that ignores params.
func Static(p Predicate) Factory {
	return func([]string) (Predicate, error) { return p, nil }
}
