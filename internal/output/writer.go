// Package output lays generated routines out as SQL scripts, either as one
// stream or as one file per table.
package output

import (
	"fmt"
	"strings"

	"github.com/crudgen/crudgen/crud"
	"github.com/crudgen/crudgen/internal/version"
)

// Writer receives generated routines in emission order
type Writer interface {
	WriteHeader(header string)
	WriteRoutine(res *crud.Result)
}

// Header returns the comment block placed at the top of every script
func Header(dialect crud.Dialect, databaseVersion string) string {
	var header strings.Builder

	header.WriteString("--\n")
	header.WriteString("-- crudgen generated routines\n")
	header.WriteString("--\n")
	header.WriteString("\n")

	if databaseVersion != "" {
		header.WriteString(fmt.Sprintf("-- Generated from database version %s\n", databaseVersion))
	}
	header.WriteString(fmt.Sprintf("-- Generated by crudgen version %s\n", version.App()))
	header.WriteString(fmt.Sprintf("-- Dialect: %s\n", dialect))
	header.WriteString("\n")
	return header.String()
}

// writeRoutine writes one routine with its comment header. T-SQL requires
// CREATE PROCEDURE to open its batch, so successful T-SQL routines are
// followed by a GO separator. Diagnostics are written as bare comments.
func writeRoutine(b *strings.Builder, res *crud.Result, includeComments bool) {
	if !res.OK() {
		b.WriteString(res.Text())
		b.WriteString("\n")
		return
	}

	if includeComments {
		b.WriteString("--\n")
		b.WriteString(fmt.Sprintf("-- Name: %s; Type: %s; Schema: %s; Table: %s\n",
			strings.TrimPrefix(res.Name, res.Schema+"."), res.RoutineType(), res.Schema, res.Table))
		b.WriteString("--\n")
		b.WriteString("\n")
	}
	b.WriteString(strings.TrimRight(res.SQL, "\n"))
	b.WriteString("\n")
	if res.Dialect == crud.TSqlStyle {
		b.WriteString("GO\n")
	}
}
