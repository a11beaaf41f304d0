// Package validation provides a declarative, Laravel-style validation engine
// for flat key/value records.
//
// # Overview
//
// Rules are declared per field, either as a pipe-separated string or as an
// ordered object whose keys are criterion names and whose values are the
// criterion parameters. The engine expands every rule into an ordered list of
// criteria, resolves each criterion through a Registry of predicate
// factories and runs the resulting predicates against the record.
//
// # Basic Usage
//
//	res, err := validation.Validate(validation.Data{
//	    "name":                  "Alice",
//	    "age":                   "17",
//	    "password":              "secret",
//	    "password_confirmation": "secret",
//	}, validation.Rules{
//	    "name":     validation.Rule("required|alpha_dash"),
//	    "age":      validation.Rule("required|integer|min:18"),
//	    "password": validation.Object{{Name: "required", Value: true}, {Name: "confirmed"}},
//	})
//	if err != nil {
//	    // configuration error: unknown criterion, malformed rule, bad parameter
//	}
//	if res.Fails() {
//	    // res.Errors() -> map[field]ErrorRecord
//	}
//
// # Rule Grammar
//
//	rules     := criterion ('|' criterion)*
//	criterion := name [':' param (',' param)*]
//
// Only the first colon separates a name from its parameters. Inside a
// criterion `\|` produces a literal pipe and `\,` a literal comma; any other
// backslash sequence is kept as written so regular expression escapes such
// as `\d` pass through untouched. Names and parameters are trimmed.
//
// # Run Semantics
//
//   - A field is checked only when its value is present or its rules contain
//     `required`. Optional fields that are absent are skipped entirely.
//   - A failing `required` stops the remaining criteria of that field.
//   - Any other failure is recorded and the next criterion still runs; each
//     field keeps only its last failure.
//   - Unknown criteria, malformed rule strings and invalid parameters are
//     configuration errors. They abort the run and are returned as error
//     values, never as entries of the report.
//
// Absent means nil, a missing key, "", false, a numeric zero or NaN. The
// string "0" is present.
//
// # Available Criteria
//
// Presence and numbers:
//   - required: value must be present
//   - numeric: a number, or a string that parses as one
//   - integer: numeric without fractional part
//   - positive / negative: integer above / below zero
//   - min:n / max:n: numbers compare by value, strings by length
//   - between:lo,hi: inclusive range, same value/length split as min
//
// Formats:
//   - boolean: 0, 1, true, false, "true", "false"
//   - email, url: checked with go-playground/validator
//   - alpha, alpha_num, alpha_dash
//   - regex:pattern: whole-value match; parameters are re-joined with commas
//   - in:a,b,c / not_in:a,b,c
//
// Cross-field:
//   - confirmed: equals <field>_confirmation
//   - same:other: equals the other field
//   - different:other: differs from the other field
//
// # String Length
//
// min, max and between measure the rune length of string values. Earlier
// releases of this rule set measured the length of the field name instead;
// NewRegistry(WithLengthMode(LengthFieldName)) restores that behaviour for
// callers that depend on it.
//
// # Error Report
//
// Each failing field maps to an ErrorRecord shaped like an ORM validator
// error:
//
//	{
//	  "message": "The age field must be greater than or equal to 18.",
//	  "name": "ValidatorError",
//	  "properties": {"type": "min", "message": "...", "path": "age", "value": "17"},
//	  "kind": "min",
//	  "path": "age",
//	  "value": "17"
//	}
package validation
