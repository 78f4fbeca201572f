package ir

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentTableLoads bounds the column queries in flight per BuildIR call
const maxConcurrentTableLoads = 4

// Inspector builds IR from database catalog queries
type Inspector struct {
	db           *sql.DB
	engine       Engine
	catalog      catalog
	ignoreConfig *IgnoreConfig
}

// NewInspector creates a new catalog inspector with optional ignore configuration
func NewInspector(db *sql.DB, engine Engine, ignoreConfig *IgnoreConfig) *Inspector {
	return &Inspector{
		db:           db,
		engine:       engine,
		catalog:      catalogFor(engine),
		ignoreConfig: ignoreConfig,
	}
}

// GetVersion returns the server version string
func (i *Inspector) GetVersion(ctx context.Context) (string, error) {
	var version string
	if err := i.db.QueryRowContext(ctx, i.catalog.version).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query server version: %w", err)
	}

	// "PostgreSQL 17.2 on x86_64..." -> "PostgreSQL 17.2"
	if strings.HasPrefix(version, "PostgreSQL") {
		if parts := strings.Fields(version); len(parts) >= 2 {
			version = "PostgreSQL " + parts[1]
		}
	}
	// SQL Server reports a multi-line banner; the first line names the product.
	if line, _, found := strings.Cut(version, "\n"); found {
		version = strings.TrimSpace(line)
	}
	return version, nil
}

// GetSchemas lists the non-system schemas
func (i *Inspector) GetSchemas(ctx context.Context) ([]string, error) {
	var args []any
	if i.engine == EnginePostgres {
		args = append(args, pq.Array(postgresSystemSchemas))
	}

	names, err := i.queryNames(ctx, i.catalog.schemas, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schemas: %w", err)
	}

	var schemas []string
	for _, name := range names {
		if i.ignoreConfig.ShouldIgnoreSchema(name) {
			continue
		}
		schemas = append(schemas, name)
	}
	return schemas, nil
}

// GetTables lists the base tables of a schema
func (i *Inspector) GetTables(ctx context.Context, schema string) ([]string, error) {
	names, err := i.queryNames(ctx, i.catalog.tables, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables of schema %s: %w", schema, err)
	}

	var tables []string
	for _, name := range names {
		if i.ignoreConfig.ShouldIgnoreTable(name) {
			continue
		}
		tables = append(tables, name)
	}
	return tables, nil
}

// GetColumns lists the columns of a table in ordinal order
func (i *Inspector) GetColumns(ctx context.Context, schema, table string) ([]Column, error) {
	rows, err := i.db.QueryContext(ctx, i.catalog.columns, schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %s.%s: %w", schema, table, err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var (
			col       Column
			nullable  string
			maxLength sql.NullInt64
		)
		if err := rows.Scan(&col.Name, &col.DataType, &col.Position, &nullable, &maxLength); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s.%s: %w", schema, table, err)
		}
		col.IsNullable = nullable == "YES"
		// SQL Server reports -1 for MAX types
		if maxLength.Valid && maxLength.Int64 > 0 {
			n := int(maxLength.Int64)
			col.MaxLength = &n
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns of %s.%s: %w", schema, table, err)
	}
	return columns, nil
}

// BuildIR reads one schema. When tables is empty every non-ignored base
// table is loaded; otherwise only the named tables, which must exist.
// Columns of different tables are loaded concurrently.
func (i *Inspector) BuildIR(ctx context.Context, schemaName string, tables []string) (*IR, error) {
	result := NewIR()
	result.Metadata.Engine = i.engine

	version, err := i.GetVersion(ctx)
	if err != nil {
		return nil, err
	}
	result.Metadata.DatabaseVersion = version

	if err := i.buildSchema(ctx, result, schemaName, tables); err != nil {
		return nil, err
	}
	return result, nil
}

// BuildAllIR reads every schema that is neither a system schema nor
// ignored, with all of its tables.
func (i *Inspector) BuildAllIR(ctx context.Context) (*IR, error) {
	result := NewIR()
	result.Metadata.Engine = i.engine

	version, err := i.GetVersion(ctx)
	if err != nil {
		return nil, err
	}
	result.Metadata.DatabaseVersion = version

	schemas, err := i.GetSchemas(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range schemas {
		if err := i.buildSchema(ctx, result, name, nil); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (i *Inspector) buildSchema(ctx context.Context, result *IR, schemaName string, tables []string) error {
	available, err := i.GetTables(ctx, schemaName)
	if err != nil {
		return err
	}

	selected := available
	if len(tables) > 0 {
		if err := requireTables(schemaName, available, tables); err != nil {
			return err
		}
		selected = tables
	}

	schema := result.getOrCreateSchema(schemaName)
	schema.Tables = make([]*Table, len(selected))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentTableLoads)
	for idx, name := range selected {
		eg.Go(func() error {
			columns, err := i.GetColumns(egCtx, schemaName, name)
			if err != nil {
				return err
			}
			// Each goroutine owns one slot, so no locking is needed.
			schema.Tables[idx] = &Table{Schema: schemaName, Name: name, Columns: columns}
			return nil
		})
	}
	return eg.Wait()
}

func (i *Inspector) queryNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func requireTables(schema string, available, requested []string) error {
	known := make(map[string]bool, len(available))
	for _, name := range available {
		known[name] = true
	}
	for _, name := range requested {
		if !known[name] {
			return fmt.Errorf("table %s.%s not found or ignored", schema, name)
		}
	}
	return nil
}
