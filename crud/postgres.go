package crud

import (
	"fmt"
	"strings"

	"github.com/crudgen/crudgen/ir"
)

// postgresEmitter renders PL/pgSQL functions.
type postgresEmitter struct{}

func (postgresEmitter) insert(name, target string, params []Parameter) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE OR REPLACE FUNCTION %s(%s)\n", name, joinParamDefs(params, ""))
	b.WriteString("RETURNS INT AS $$\n")
	b.WriteString("DECLARE\n")
	b.WriteString("    v_id INT;\n")
	b.WriteString("BEGIN\n")
	if len(params) == 0 {
		fmt.Fprintf(&b, "    INSERT INTO %s DEFAULT VALUES\n", target)
	} else {
		fmt.Fprintf(&b, "    INSERT INTO %s (%s)\n", target, joinColumns(params))
		fmt.Fprintf(&b, "    VALUES (%s)\n", joinRefs(params, ""))
	}
	fmt.Fprintf(&b, "    RETURNING %s INTO v_id;\n", PrimaryKey)
	b.WriteString("\n")
	b.WriteString("    RETURN v_id;\n")
	b.WriteString("END;\n")
	b.WriteString("$$ LANGUAGE plpgsql;\n")
	return b.String(), "INT"
}

func (postgresEmitter) update(name, target string, params []Parameter, filter string) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE OR REPLACE FUNCTION %s(%s)\n", name, joinParamDefs(params, ""))
	b.WriteString("RETURNS VOID AS $$\n")
	b.WriteString("BEGIN\n")
	fmt.Fprintf(&b, "    UPDATE %s\n", target)
	fmt.Fprintf(&b, "    SET %s\n", joinAssignments(params, filter, ""))
	fmt.Fprintf(&b, "    WHERE %s = %s;\n", filter, paramName(filter))
	b.WriteString("END;\n")
	b.WriteString("$$ LANGUAGE plpgsql;\n")
	return b.String(), "VOID"
}

func (postgresEmitter) delete(name, target string, param Parameter) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE OR REPLACE FUNCTION %s(%s %s)\n", name, param.Name, param.Type)
	b.WriteString("RETURNS VOID AS $$\n")
	b.WriteString("BEGIN\n")
	fmt.Fprintf(&b, "    DELETE FROM %s WHERE %s = %s;\n", target, param.Column, param.Name)
	b.WriteString("END;\n")
	b.WriteString("$$ LANGUAGE plpgsql;\n")
	return b.String(), "VOID"
}

func (postgresEmitter) selectBy(name, target string, columns []ir.Column, filters []Parameter) (string, string) {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = c.Name + " " + c.DataType
	}
	returns := "TABLE(" + strings.Join(defs, ", ") + ")"

	predicates := make([]string, len(filters))
	for i, f := range filters {
		predicates[i] = fmt.Sprintf("t.%s = %s", f.Column, f.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE OR REPLACE FUNCTION %s(%s)\n", name, joinParamDefs(filters, ""))
	fmt.Fprintf(&b, "RETURNS %s AS $$\n", returns)
	b.WriteString("BEGIN\n")
	b.WriteString("    RETURN QUERY\n")
	fmt.Fprintf(&b, "    SELECT t.* FROM %s t\n", target)
	fmt.Fprintf(&b, "    WHERE %s;\n", strings.Join(predicates, " AND "))
	b.WriteString("END;\n")
	b.WriteString("$$ LANGUAGE plpgsql;\n")
	return b.String(), returns
}

// Helpers shared by both emitters. sigil is "" or "@".

func joinParamDefs(params []Parameter, sigil string) string {
	defs := make([]string, len(params))
	for i, p := range params {
		defs[i] = sigil + p.Name + " " + p.Type
	}
	return strings.Join(defs, ", ")
}

func joinColumns(params []Parameter) string {
	cols := make([]string, len(params))
	for i, p := range params {
		cols[i] = p.Column
	}
	return strings.Join(cols, ", ")
}

func joinRefs(params []Parameter, sigil string) string {
	refs := make([]string, len(params))
	for i, p := range params {
		refs[i] = sigil + p.Name
	}
	return strings.Join(refs, ", ")
}

// joinAssignments renders "col = p_col" for every parameter except the filter.
func joinAssignments(params []Parameter, filter, sigil string) string {
	var sets []string
	for _, p := range params {
		if p.Column == filter {
			continue
		}
		sets = append(sets, p.Column+" = "+sigil+p.Name)
	}
	return strings.Join(sets, ", ")
}
