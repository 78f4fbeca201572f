package crudgen

import (
	"github.com/crudgen/crudgen/crud"
	"github.com/crudgen/crudgen/internal/executor"
	"github.com/crudgen/crudgen/ir"
)

// Re-export important types for external consumption

// Result is one generated routine, or a diagnostic when none could be generated.
type Result = crud.Result

// Dialect selects the routine syntax and target engine.
type Dialect = crud.Dialect

// Diagnostic explains why a routine could not be generated.
type Diagnostic = crud.Diagnostic

// Report lists the outcome of every routine sent to the database.
type Report = executor.Report

// Outcome is what happened to one routine during execution.
type Outcome = executor.Outcome

// IR represents the table metadata of a database.
type IR = ir.IR

// Table represents a base table with its columns in ordinal order.
type Table = ir.Table

// Column represents a table column.
type Column = ir.Column

// IgnoreConfig represents configuration for ignoring tables and schemas.
type IgnoreConfig = ir.IgnoreConfig

// Routine kinds
const (
	Insert = crud.Insert
	Update = crud.Update
	Delete = crud.Delete
	Select = crud.Select
)

// Dialects
const (
	PostgresStyle = crud.PostgresStyle
	TSqlStyle     = crud.TSqlStyle
)

// Execution statuses
const (
	StatusExecuted = executor.StatusExecuted
	StatusFailed   = executor.StatusFailed
	StatusSkipped  = executor.StatusSkipped
)

// Kind identifies which CRUD routine is generated.
type Kind = crud.Kind
