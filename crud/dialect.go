package crud

import (
	"fmt"
	"strings"

	"github.com/crudgen/crudgen/ir"
)

// Dialect selects the stored-routine syntax of the target engine.
type Dialect int

const (
	// PostgresStyle emits PL/pgSQL functions and keeps declared types verbatim.
	PostgresStyle Dialect = iota
	// TSqlStyle emits SQL Server procedures and bounds character types.
	TSqlStyle
)

func (d Dialect) String() string {
	switch d {
	case PostgresStyle:
		return "postgres"
	case TSqlStyle:
		return "mssql"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// ParseDialect maps a user-supplied engine name to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pg", "pgsql":
		return PostgresStyle, nil
	case "mssql", "sqlserver", "tsql", "t-sql":
		return TSqlStyle, nil
	}
	return 0, fmt.Errorf("unsupported dialect %q (expected postgres or mssql)", s)
}

// ParamSigil is the prefix of routine parameter references.
func (d Dialect) ParamSigil() string {
	if d == TSqlStyle {
		return tsqlSigil
	}
	return ""
}

// NormalizeType returns the declared type as it must appear in a parameter
// or result declaration for this dialect.
func (d Dialect) NormalizeType(declared string) string {
	if d == TSqlStyle {
		return NormalizeType(declared)
	}
	return declared
}

// paramName returns the bare parameter name for a column.
func paramName(column string) string {
	return "p_" + column
}

// emitter renders the four routine kinds for one dialect. Implementations
// receive already-resolved columns and filters and only handle syntax.
type emitter interface {
	insert(name, target string, params []Parameter) (sql, returns string)
	update(name, target string, params []Parameter, filter string) (sql, returns string)
	delete(name, target string, param Parameter) (sql, returns string)
	selectBy(name, target string, columns []ir.Column, filters []Parameter) (sql, returns string)
}

func (d Dialect) emitter() emitter {
	if d == TSqlStyle {
		return tsqlEmitter{}
	}
	return postgresEmitter{}
}
