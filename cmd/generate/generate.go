package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crudgen/crudgen/cmd/util"
	"github.com/crudgen/crudgen/crud"
	"github.com/crudgen/crudgen/internal/color"
	"github.com/crudgen/crudgen/internal/executor"
	"github.com/crudgen/crudgen/internal/logger"
	"github.com/crudgen/crudgen/internal/output"
	"github.com/crudgen/crudgen/ir"
	"github.com/spf13/cobra"
)

var (
	source      util.SourceFlags
	tables      []string
	kinds       []string
	prefix      string
	filter      []string
	file        string
	outputDir   string
	noComments  bool
	execute     bool
	stopOnError bool
	noColor     bool
)

var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate CRUD stored procedures for database tables",
	Long: `Generate insert, update, delete and select stored procedures for the tables
of one schema. Table metadata is read from the database selected by --dialect,
or from a YAML file written by "crudgen inspect --format yaml" when --input is
given.

PostgreSQL targets get PL/pgSQL functions; SQL Server targets get T-SQL
procedures. With --execute every generated routine is also created in the
database and a per-routine summary is printed.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return source.Prepare(cmd, source.Input == "" || execute)
	},
	RunE: runGenerate,
}

func init() {
	source.Register(GenerateCmd)
	GenerateCmd.Flags().StringSliceVar(&tables, "tables", nil, "Tables to generate routines for (default: all tables not ignored)")
	GenerateCmd.Flags().StringSliceVar(&kinds, "kinds", nil, "Routine kinds: insert, update, delete, select (default: all)")
	GenerateCmd.Flags().StringVar(&prefix, "prefix", "", "Prefix prepended to routine names")
	GenerateCmd.Flags().StringSliceVar(&filter, "filter", nil, "Filter columns: equality predicates for select, key column for update and delete")
	GenerateCmd.Flags().StringVar(&file, "file", "", "Write routines to this file instead of stdout")
	GenerateCmd.Flags().StringVar(&outputDir, "output-dir", "", "Write one file per table under this directory")
	GenerateCmd.Flags().BoolVar(&noComments, "no-comments", false, "Omit the comment block above each routine")
	GenerateCmd.Flags().BoolVar(&execute, "execute", false, "Create the generated routines in the database")
	GenerateCmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "Stop executing at the first failed routine")
	GenerateCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	GenerateCmd.MarkFlagsMutuallyExclusive("file", "output-dir")
}

// Options selects the routines to generate from table metadata
type Options struct {
	Dialect      crud.Dialect
	Schema       string
	Tables       []string
	Kinds        []crud.Kind
	Prefix       string
	FilterFields []string
	IgnoreConfig *ir.IgnoreConfig
}

// Routines generates one result per selected table and kind. Tables are the
// outer loop, so the routines of one table stay together. Select input that
// cannot produce a routine yields a result carrying a diagnostic.
func Routines(metadata *ir.IR, opts Options) ([]*crud.Result, error) {
	selected, err := metadata.SelectTables(opts.Schema, opts.Tables, opts.IgnoreConfig)
	if err != nil {
		return nil, err
	}

	routineKinds := opts.Kinds
	if len(routineKinds) == 0 {
		routineKinds = crud.AllKinds
	}

	var results []*crud.Result
	for _, table := range selected {
		for _, kind := range routineKinds {
			results = append(results, crud.Generate(crud.Request{
				Kind:         kind,
				Dialect:      opts.Dialect,
				Schema:       opts.Schema,
				Table:        table.Name,
				Columns:      table.Columns,
				Prefix:       opts.Prefix,
				FilterFields: opts.FilterFields,
			}))
		}
	}
	return results, nil
}

// Render lays results out as one script with a header
func Render(results []*crud.Result, dialect crud.Dialect, databaseVersion string, includeComments bool) string {
	w := output.NewSingleFileWriter(includeComments)
	writeAll(w, results, dialect, databaseVersion)
	return w.String()
}

// WriteFiles lays results out as one file per table under dir and returns
// the written paths
func WriteFiles(dir string, results []*crud.Result, dialect crud.Dialect, databaseVersion string, includeComments bool) ([]string, error) {
	w := output.NewMultiFileWriter(dir, dialect, includeComments)
	writeAll(w, results, dialect, databaseVersion)
	return w.Close()
}

func writeAll(w output.Writer, results []*crud.Result, dialect crud.Dialect, databaseVersion string) {
	w.WriteHeader(output.Header(dialect, databaseVersion))
	for _, res := range results {
		w.WriteRoutine(res)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	routineKinds, err := crud.ParseKinds(kinds)
	if err != nil {
		return err
	}

	ignoreConfig, err := source.LoadIgnoreConfig()
	if err != nil {
		return err
	}

	metadata, err := source.LoadMetadata(ctx, tables, ignoreConfig)
	if err != nil {
		return err
	}

	dialect := source.SelectedDialect()
	results, err := Routines(metadata, Options{
		Dialect:      dialect,
		Schema:       source.Schema,
		Tables:       tables,
		Kinds:        routineKinds,
		Prefix:       prefix,
		FilterFields: filter,
		IgnoreConfig: ignoreConfig,
	})
	if err != nil {
		return err
	}
	logger.Get().Debug("Generated routines", "count", len(results), "dialect", dialect.String())

	includeComments := !noComments
	switch {
	case outputDir != "":
		paths, err := WriteFiles(outputDir, results, dialect, metadata.Metadata.DatabaseVersion, includeComments)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d files to %s\n", len(paths), outputDir)
	case file != "":
		content := Render(results, dialect, metadata.Metadata.DatabaseVersion, includeComments)
		if err := os.WriteFile(file, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	case !execute:
		fmt.Fprint(cmd.OutOrStdout(), Render(results, dialect, metadata.Metadata.DatabaseVersion, includeComments))
	}

	if !execute {
		return nil
	}
	return executeRoutines(ctx, cmd.OutOrStdout(), results)
}

func executeRoutines(ctx context.Context, out io.Writer, results []*crud.Result) error {
	db, err := util.Connect(ctx, source.Connection())
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := executor.New(db, stopOnError).ExecuteAll(ctx, results)
	if err != nil {
		return err
	}

	printReport(out, report, results, color.New(!noColor))
	if report.Failed() {
		return fmt.Errorf("%d of %d routines failed", report.Count(executor.StatusFailed), len(report.Outcomes))
	}
	return nil
}

// printReport writes one line per routine and the totals. Skipped routines
// show their diagnostic.
func printReport(out io.Writer, report *executor.Report, results []*crud.Result, c *color.Color) {
	diagnostics := make(map[string]string)
	for _, res := range results {
		if !res.OK() {
			diagnostics[res.Name] = strings.TrimPrefix(res.Diagnostic.String(), "-- ")
		}
	}

	for _, o := range report.Outcomes {
		detail := ""
		switch o.Status {
		case executor.StatusFailed:
			detail = o.Err.Error()
		case executor.StatusSkipped:
			detail = diagnostics[o.Name]
		}
		fmt.Fprintln(out, c.FormatStatusLine(string(o.Status), o.Name, detail))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, c.FormatSummaryLine(
		report.Count(executor.StatusExecuted),
		report.Count(executor.StatusFailed),
		report.Count(executor.StatusSkipped),
	))
}
