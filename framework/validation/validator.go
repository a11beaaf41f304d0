package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// RequiredCriterion is the criterion that makes a field mandatory.
const RequiredCriterion = "required"

// Validator runs rules against data records. It holds no per-run state and
// is safe for concurrent use.
type Validator struct {
	registry *Registry
	logger   *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry replaces the built-in registry.
func WithRegistry(r *Registry) Option {
	return func(v *Validator) {
		if r != nil {
			v.registry = r
		}
	}
}

// WithLogger enables debug logging of runs and warn logging of
// configuration errors.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// New creates a Validator backed by NewRegistry unless WithRegistry is given.
func New(opts ...Option) *Validator {
	v := &Validator{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = NewRegistry()
	}
	return v
}

// Registry returns the registry criteria are resolved against.
func (v *Validator) Registry() *Registry { return v.registry }

var std = New()

// Validate runs rules against data with the default Validator.
func Validate(data Data, rules Rules) (*Result, error) {
	return std.Validate(data, rules)
}

// Validate compiles rules and runs them against data. A configuration error
// aborts the run; the returned Result is then nil.
func (v *Validator) Validate(data Data, rules Rules) (*Result, error) {
	plan, err := v.Compile(rules)
	if err != nil {
		return nil, err
	}
	return plan.Run(data), nil
}

// ── Plan ─────────────────────────────────────────────────────────────────────

type check struct {
	criterion Criterion
	predicate Predicate
}

type fieldPlan struct {
	field    string
	required bool
	checks   []check
}

// Plan is a compiled rule set. Every criterion is resolved up front so a
// plan can be run any number of times without configuration errors.
type Plan struct {
	fields []fieldPlan
	logger *slog.Logger
}

// Compile expands and resolves every field's rules. Fields are processed in
// sorted order, so the reported configuration error is deterministic.
func (v *Validator) Compile(rules Rules) (*Plan, error) {
	fields := slices.Sorted(maps.Keys(rules))
	plan := &Plan{
		fields: make([]fieldPlan, 0, len(fields)),
		logger: v.logger,
	}

	for _, field := range fields {
		fp, err := v.compileField(field, rules[field])
		if err != nil {
			v.logger.Warn("invalid validation rules",
				slog.String("field", field),
				slog.Any("error", err),
			)
			return nil, err
		}
		plan.fields = append(plan.fields, fp)
	}
	return plan, nil
}

func (v *Validator) compileField(field string, spec Spec) (fieldPlan, error) {
	fp := fieldPlan{field: field}
	if spec == nil {
		return fp, nil
	}

	criteria, err := spec.Criteria()
	if err != nil {
		return fp, fmt.Errorf("field %q: %w", field, err)
	}

	fp.checks = make([]check, 0, len(criteria))
	for _, c := range criteria {
		p, err := v.registry.ResolveCriterion(c)
		if err != nil {
			if errors.Is(err, ErrUnrecognizedCriterion) {
				return fp, fmt.Errorf("field %q: %w: %q", field, ErrUnrecognizedCriterion, c.Raw)
			}
			return fp, fmt.Errorf("field %q: %w", field, err)
		}
		if c.Name == RequiredCriterion {
			fp.required = true
		}
		fp.checks = append(fp.checks, check{criterion: c, predicate: p})
	}
	return fp, nil
}

// Fields returns the compiled field names in run order.
func (p *Plan) Fields() []string {
	out := make([]string, len(p.fields))
	for i, fp := range p.fields {
		out[i] = fp.field
	}
	return out
}

// Run executes the plan against data and returns a fresh Result.
func (p *Plan) Run(data Data) *Result {
	start := time.Now()
	report := make(ErrorReport)

	for _, fp := range p.fields {
		value := data[fp.field]
		if !fp.required && !IsPresent(value) {
			continue
		}

		for _, c := range fp.checks {
			verdict := c.predicate.Evaluate(fp.field, value, data)
			if verdict.Valid {
				continue
			}
			report[fp.field] = NewErrorRecord(fp.field, verdict.Message, c.criterion.Name, value)
			if c.criterion.Name == RequiredCriterion {
				break
			}
		}
	}

	p.logger.Debug("validation finished",
		slog.Int("fields", len(p.fields)),
		slog.Int("failures", len(report)),
		slog.Duration("duration", time.Since(start)),
	)
	return &Result{errors: report}
}

// ── Result ───────────────────────────────────────────────────────────────────

// Result is the read-only outcome of a run.
type Result struct {
	errors ErrorReport
}

// Errors returns a copy of the error report.
func (r *Result) Errors() ErrorReport { return maps.Clone(r.errors) }

// Fails reports whether any field failed.
func (r *Result) Fails() bool { return len(r.errors) > 0 }

// Passes reports whether every field passed.
func (r *Result) Passes() bool { return len(r.errors) == 0 }

// Has reports whether field failed.
func (r *Result) Has(field string) bool { return r.errors.Has(field) }

// First returns the retained message for field, or "".
func (r *Result) First(field string) string { return r.errors[field].Message }

// Fields returns the failed fields in sorted order.
func (r *Result) Fields() []string { return r.errors.Fields() }

// Err returns the report as an error, or nil when the run passed.
func (r *Result) Err() error {
	if r.Passes() {
		return nil
	}
	return r.Errors()
}

// ExtractErrorReport returns the ErrorReport wrapped in err, if any.
func ExtractErrorReport(err error) ErrorReport {
	var report ErrorReport
	if errors.As(err, &report) {
		return report
	}
	return nil
}
