package crud

import (
	"fmt"
	"strings"

	"github.com/crudgen/crudgen/ir"
)

// tsqlEmitter renders SQL Server procedures. T-SQL procedures declare no
// result set, so the returns clause is always empty.
type tsqlEmitter struct{}

const tsqlSigil = "@"

func (tsqlEmitter) insert(name, target string, params []Parameter) (string, string) {
	var b strings.Builder
	writeProcedureHeader(&b, name, joinParamDefs(params, tsqlSigil))
	if len(params) == 0 {
		fmt.Fprintf(&b, "    INSERT INTO %s DEFAULT VALUES;\n", target)
	} else {
		fmt.Fprintf(&b, "    INSERT INTO %s (%s)\n", target, joinColumns(params))
		fmt.Fprintf(&b, "    VALUES (%s);\n", joinRefs(params, tsqlSigil))
	}
	b.WriteString("END\n")
	return b.String(), ""
}

func (tsqlEmitter) update(name, target string, params []Parameter, filter string) (string, string) {
	var b strings.Builder
	writeProcedureHeader(&b, name, joinParamDefs(params, tsqlSigil))
	fmt.Fprintf(&b, "    UPDATE %s\n", target)
	fmt.Fprintf(&b, "    SET %s\n", joinAssignments(params, filter, tsqlSigil))
	fmt.Fprintf(&b, "    WHERE %s = %s%s;\n", filter, tsqlSigil, paramName(filter))
	b.WriteString("END\n")
	return b.String(), ""
}

func (tsqlEmitter) delete(name, target string, param Parameter) (string, string) {
	var b strings.Builder
	writeProcedureHeader(&b, name, tsqlSigil+param.Name+" "+param.Type)
	fmt.Fprintf(&b, "    DELETE FROM %s WHERE %s = %s%s;\n", target, param.Column, tsqlSigil, param.Name)
	b.WriteString("END\n")
	return b.String(), ""
}

func (tsqlEmitter) selectBy(name, target string, _ []ir.Column, filters []Parameter) (string, string) {
	predicates := make([]string, len(filters))
	for i, f := range filters {
		predicates[i] = fmt.Sprintf("%s = %s%s", f.Column, tsqlSigil, f.Name)
	}

	var b strings.Builder
	writeProcedureHeader(&b, name, joinParamDefs(filters, tsqlSigil))
	fmt.Fprintf(&b, "    SELECT * FROM %s\n", target)
	fmt.Fprintf(&b, "    WHERE %s;\n", strings.Join(predicates, " AND "))
	b.WriteString("END\n")
	return b.String(), ""
}

// writeProcedureHeader writes everything up to and including BEGIN.
func writeProcedureHeader(b *strings.Builder, name, params string) {
	fmt.Fprintf(b, "CREATE PROCEDURE %s\n", name)
	if params != "" {
		fmt.Fprintf(b, "    %s\n", params)
	}
	b.WriteString("AS\n")
	b.WriteString("BEGIN\n")
}
