// Package crud generates stored-routine definitions implementing insert,
// update, delete and filtered select for a table, in PostgreSQL (PL/pgSQL)
// or SQL Server (T-SQL) syntax.
//
// Generation is a pure function of its inputs: nothing is cached, logged or
// executed, and all functions are safe for concurrent use.
package crud

import "github.com/crudgen/crudgen/ir"

// PrimaryKey is the conventional primary key column. It is excluded from
// insert parameters and is the default filter of update and delete.
const PrimaryKey = "id"

// Request carries the inputs of one generation call.
type Request struct {
	Kind    Kind
	Dialect Dialect
	Schema  string
	Table   string
	// Columns in table order. Delete ignores them.
	Columns []ir.Column
	// Prefix is prepended to the routine name.
	Prefix string
	// FilterFields are ANDed equality predicates for Select. Update and
	// Delete use only the first entry and default to PrimaryKey.
	FilterFields []string
}

// Generate builds the routine described by req. Malformed Select input is
// reported through Result.Diagnostic rather than an error.
func Generate(req Request) *Result {
	res := &Result{
		Kind:    req.Kind,
		Dialect: req.Dialect,
		Schema:  req.Schema,
		Table:   req.Table,
		Name:    ProcedureName(req.Schema, req.Prefix, req.Kind, req.Table),
	}
	target := req.Schema + "." + req.Table
	em := req.Dialect.emitter()

	switch req.Kind {
	case Insert:
		res.Parameters = bindColumns(req.Dialect, writableColumns(req.Columns))
		res.SQL, res.Returns = em.insert(res.Name, target, res.Parameters)
	case Update:
		res.Parameters = bindColumns(req.Dialect, req.Columns)
		res.SQL, res.Returns = em.update(res.Name, target, res.Parameters, keyField(req.FilterFields))
	case Delete:
		field := keyField(req.FilterFields)
		param := Parameter{Name: paramName(field), Column: field, Type: "INT"}
		res.Parameters = []Parameter{param}
		res.SQL, res.Returns = em.delete(res.Name, target, param)
	case Select:
		columns := validColumns(req.Columns)
		if len(columns) == 0 {
			res.Diagnostic = Diagnostic{Reason: NoValidColumns, Table: req.Table}
			return res
		}
		filters, missing := resolveFilters(req.Dialect, columns, req.FilterFields)
		if missing != "" {
			res.Diagnostic = Diagnostic{Reason: FilterFieldNotFound, Table: req.Table, Field: missing}
			return res
		}
		res.Parameters = filters
		res.SQL, res.Returns = em.selectBy(res.Name, target, columns, filters)
	}
	return res
}

// GenerateSQL returns the routine definition for req, or the diagnostic
// comment when none could be generated.
func GenerateSQL(req Request) string {
	return Generate(req).Text()
}

// writableColumns drops the primary key column, keeping order.
func writableColumns(columns []ir.Column) []ir.Column {
	var out []ir.Column
	for _, c := range columns {
		if c.Name != PrimaryKey {
			out = append(out, c)
		}
	}
	return out
}

// validColumns keeps the columns that carry both a name and a type.
func validColumns(columns []ir.Column) []ir.Column {
	var out []ir.Column
	for _, c := range columns {
		if c.Name != "" && c.DataType != "" {
			out = append(out, c)
		}
	}
	return out
}

func bindColumns(d Dialect, columns []ir.Column) []Parameter {
	params := make([]Parameter, 0, len(columns))
	for _, c := range columns {
		params = append(params, Parameter{
			Name:   paramName(c.Name),
			Column: c.Name,
			Type:   d.NormalizeType(c.DataType),
		})
	}
	return params
}

func keyField(fields []string) string {
	if len(fields) > 0 && fields[0] != "" {
		return fields[0]
	}
	return PrimaryKey
}

// resolveFilters binds the requested filter fields to their column types.
// Without requested fields the first column is the filter. The name of the
// first field that is not a column is returned as missing.
func resolveFilters(d Dialect, columns []ir.Column, fields []string) (filters []Parameter, missing string) {
	if len(fields) == 0 {
		return bindColumns(d, columns[:1]), ""
	}
	for _, field := range fields {
		col, ok := findColumn(columns, field)
		if !ok {
			return nil, field
		}
		filters = append(filters, bindColumns(d, []ir.Column{col})...)
	}
	return filters, ""
}

func findColumn(columns []ir.Column, name string) (ir.Column, bool) {
	for _, c := range columns {
		if c.Name == name {
			return c, true
		}
	}
	return ir.Column{}, false
}
