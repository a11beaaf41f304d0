package validation

import (
	"slices"
	"strings"
)

// ErrorName is the name every ErrorRecord carries, matching ORM validator
// errors.
const ErrorName = "ValidatorError"

// ErrorProperties mirrors the properties block of an ORM validator error.
type ErrorProperties struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Path    string `json:"path"`
	Value   any    `json:"value"`
}

// ErrorRecord describes the failure retained for one field.
type ErrorRecord struct {
	Message    string          `json:"message"`
	Name       string          `json:"name"`
	Properties ErrorProperties `json:"properties"`
	Kind       string          `json:"kind"`
	Path       string          `json:"path"`
	Value      any             `json:"value"`
}

// NewErrorRecord builds the record for a failed criterion. A nil value (the
// field is missing from the record) is reported as "".
func NewErrorRecord(field, message, kind string, value any) ErrorRecord {
	if value == nil {
		value = ""
	}
	return ErrorRecord{
		Message: message,
		Name:    ErrorName,
		Properties: ErrorProperties{
			Type:    kind,
			Message: message,
			Path:    field,
			Value:   value,
		},
		Kind:  kind,
		Path:  field,
		Value: value,
	}
}

// ErrorReport maps field names to their retained failure.
type ErrorReport map[string]ErrorRecord

// Error lists the failures sorted by field.
func (r ErrorReport) Error() string {
	if len(r) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(r))
	for _, field := range r.Fields() {
		parts = append(parts, field+": "+r[field].Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed.
func (r ErrorReport) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Get returns the record for field.
func (r ErrorReport) Get(field string) (ErrorRecord, bool) {
	rec, ok := r[field]
	return rec, ok
}

// Fields returns the failed field names in sorted order.
func (r ErrorReport) Fields() []string {
	fields := make([]string, 0, len(r))
	for field := range r {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

// Messages flattens the report to field → message.
func (r ErrorReport) Messages() map[string]string {
	out := make(map[string]string, len(r))
	for field, rec := range r {
		out[field] = rec.Message
	}
	return out
}

// IsEmpty reports whether no field failed.
func (r ErrorReport) IsEmpty() bool { return len(r) == 0 }
