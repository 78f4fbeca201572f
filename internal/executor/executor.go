// Package executor sends generated routine definitions to a live database
// and reports the outcome of each one.
package executor

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crudgen/crudgen/crud"
	"github.com/crudgen/crudgen/internal/logger"
)

// Status is the outcome of one routine
type Status string

const (
	StatusExecuted Status = "executed"
	StatusFailed   Status = "failed"
	// StatusSkipped marks diagnostics, which are never sent to the database
	StatusSkipped Status = "skipped"
)

// Outcome records what happened to one routine
type Outcome struct {
	Name   string
	Status Status
	Err    error
}

// Report collects the outcomes of one ExecuteAll call in input order
type Report struct {
	Outcomes []Outcome
}

// Count returns the number of outcomes with the given status
func (r *Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any routine failed
func (r *Report) Failed() bool {
	return r.Count(StatusFailed) > 0
}

// Executor runs routine definitions against a database
type Executor struct {
	db *sql.DB
	// stopOnError aborts ExecuteAll at the first failure
	stopOnError bool
}

// New creates an Executor over an open database handle
func New(db *sql.DB, stopOnError bool) *Executor {
	return &Executor{db: db, stopOnError: stopOnError}
}

// Execute runs a single definition. Each definition is sent on its own so
// T-SQL CREATE PROCEDURE always starts its batch.
func (e *Executor) Execute(ctx context.Context, name, definition string) error {
	if _, err := ExecContextWithLogging(ctx, e.db, definition, name); err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	return nil
}

// ExecuteAll runs every successful result and skips diagnostics. Execution
// errors are recorded in the report; the returned error is only set when
// the context is cancelled.
func (e *Executor) ExecuteAll(ctx context.Context, results []*crud.Result) (*Report, error) {
	report := &Report{}
	for _, res := range results {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if !res.OK() {
			logger.Get().Debug("Skipping routine with diagnostic", "table", res.Table, "kind", res.Kind.String(), "diagnostic", res.Diagnostic.String())
			report.Outcomes = append(report.Outcomes, Outcome{Name: res.Name, Status: StatusSkipped})
			continue
		}

		if err := e.Execute(ctx, res.Name, res.SQL); err != nil {
			report.Outcomes = append(report.Outcomes, Outcome{Name: res.Name, Status: StatusFailed, Err: err})
			if e.stopOnError {
				break
			}
			continue
		}
		report.Outcomes = append(report.Outcomes, Outcome{Name: res.Name, Status: StatusExecuted})
	}
	return report, nil
}
