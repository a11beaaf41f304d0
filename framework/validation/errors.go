package validation

import "errors"

// Configuration errors. They describe a programming mistake in the rules, not
// bad input data, and always abort a run.
var (
	// ErrUnrecognizedCriterion is returned when a rule names a criterion the
	// registry does not know.
	ErrUnrecognizedCriterion = errors.New("unrecognized criterion")

	// ErrMalformedRule is returned when a rule string or rule object cannot be
	// parsed.
	ErrMalformedRule = errors.New("malformed rule")

	// ErrInvalidParameter is returned when a criterion factory rejects its
	// parameters.
	ErrInvalidParameter = errors.New("invalid criterion parameter")
)
