package crud

import "fmt"

// Parameter is one routine parameter bound to a table column.
type Parameter struct {
	// Name is the parameter name without the dialect sigil, e.g. "p_email".
	Name string
	// Column is the column the parameter is bound to.
	Column string
	// Type is the declared type after dialect normalization.
	Type string
}

// DiagnosticReason classifies a recoverable input problem.
type DiagnosticReason int

const (
	// NoDiagnostic means generation succeeded.
	NoDiagnostic DiagnosticReason = iota
	// NoValidColumns means the column list had no usable (name, type) pair.
	NoValidColumns
	// FilterFieldNotFound means a requested filter field is not a column.
	FilterFieldNotFound
)

func (r DiagnosticReason) String() string {
	switch r {
	case NoDiagnostic:
		return "none"
	case NoValidColumns:
		return "no valid columns"
	case FilterFieldNotFound:
		return "filter field not found"
	default:
		return fmt.Sprintf("DiagnosticReason(%d)", int(r))
	}
}

// Diagnostic describes why no routine was generated. Its String form is a
// SQL line comment that can be shown to a user as-is.
type Diagnostic struct {
	Reason DiagnosticReason
	Table  string
	Field  string
}

func (d Diagnostic) String() string {
	switch d.Reason {
	case NoValidColumns:
		return fmt.Sprintf("-- No valid columns found for table %s", d.Table)
	case FilterFieldNotFound:
		return fmt.Sprintf("-- Filter field '%s' not found in table %s", d.Field, d.Table)
	}
	return ""
}

// Result is the outcome of one generation call.
type Result struct {
	Kind    Kind
	Dialect Dialect
	Schema  string
	Table   string
	// Name is the schema-qualified routine name.
	Name       string
	Parameters []Parameter
	// Returns is the declared return clause, empty for T-SQL procedures.
	Returns string
	// SQL is the routine definition. Empty when Diagnostic is set.
	SQL        string
	Diagnostic Diagnostic
}

// OK reports whether a routine definition was produced.
func (r *Result) OK() bool {
	return r.Diagnostic.Reason == NoDiagnostic
}

// Text returns the routine definition, or the diagnostic comment when
// generation was not possible.
func (r *Result) Text() string {
	if !r.OK() {
		return r.Diagnostic.String()
	}
	return r.SQL
}

// RoutineType names the kind of database object the definition creates.
func (r *Result) RoutineType() string {
	if r.Dialect == TSqlStyle {
		return "PROCEDURE"
	}
	return "FUNCTION"
}

// Columns returns the column names bound to the parameters, in order.
func (r *Result) Columns() []string {
	names := make([]string, len(r.Parameters))
	for i, p := range r.Parameters {
		names[i] = p.Column
	}
	return names
}
