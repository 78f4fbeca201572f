package inspect

import (
	"context"
	"fmt"
	"io"

	"github.com/crudgen/crudgen/cmd/util"
	"github.com/crudgen/crudgen/ir"
	"github.com/spf13/cobra"
)

var (
	source     util.SourceFlags
	tables     []string
	allSchemas bool
	format     string
)

var InspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the schemas, tables and columns routines are generated from",
	Long: `Inspect lists the tables of a schema with their columns and declared types.
With --format yaml the output is a metadata file that "crudgen generate --input"
reads, so routines can later be generated without a database connection.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if format != "text" && format != "yaml" {
			return fmt.Errorf("unsupported format %q (expected text or yaml)", format)
		}
		return source.Prepare(cmd, source.Input == "")
	},
	RunE: runInspect,
}

func init() {
	source.Register(InspectCmd)
	InspectCmd.Flags().StringSliceVar(&tables, "tables", nil, "Tables to inspect (default: all tables not ignored)")
	InspectCmd.Flags().BoolVar(&allSchemas, "all-schemas", false, "Inspect every non-system schema instead of --schema")
	InspectCmd.Flags().StringVar(&format, "format", "text", "Output format: text or yaml")
	InspectCmd.MarkFlagsMutuallyExclusive("all-schemas", "tables")
	InspectCmd.MarkFlagsMutuallyExclusive("all-schemas", "input")
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ignoreConfig, err := source.LoadIgnoreConfig()
	if err != nil {
		return err
	}

	var metadata *ir.IR
	if allSchemas {
		metadata, err = inspectAll(ctx, ignoreConfig)
	} else {
		metadata, err = source.LoadMetadata(ctx, tables, ignoreConfig)
	}
	if err != nil {
		return err
	}

	if format == "yaml" {
		return ir.WriteYAML(cmd.OutOrStdout(), metadata)
	}
	WriteText(cmd.OutOrStdout(), metadata)
	return nil
}

func inspectAll(ctx context.Context, ignoreConfig *ir.IgnoreConfig) (*ir.IR, error) {
	conn := source.Connection()
	db, err := util.Connect(ctx, conn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	metadata, err := ir.NewInspector(db, conn.Engine, ignoreConfig).BuildAllIR(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect database: %w", err)
	}
	return metadata, nil
}

// WriteText prints metadata as an indented listing:
//
//	public
//	  users
//	    id integer
//	    email character varying(255) NULL
func WriteText(w io.Writer, metadata *ir.IR) {
	if metadata.Metadata.DatabaseVersion != "" {
		fmt.Fprintf(w, "-- %s\n", metadata.Metadata.DatabaseVersion)
	}
	for _, schema := range metadata.Schemas {
		fmt.Fprintln(w, schema.Name)
		for _, table := range schema.Tables {
			fmt.Fprintf(w, "  %s\n", table.Name)
			for _, col := range table.Columns {
				fmt.Fprintf(w, "    %s %s%s\n", col.Name, columnType(col), nullMarker(col))
			}
		}
	}
}

func columnType(col ir.Column) string {
	if col.MaxLength != nil {
		return fmt.Sprintf("%s(%d)", col.DataType, *col.MaxLength)
	}
	return col.DataType
}

func nullMarker(col ir.Column) string {
	if col.IsNullable {
		return " NULL"
	}
	return ""
}
