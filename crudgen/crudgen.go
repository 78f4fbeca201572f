// Package crudgen provides a programmatic API for generating CRUD stored
// routines. It reads table metadata from PostgreSQL, SQL Server or a YAML
// metadata file, renders insert, update, delete and select routines and can
// create them in the database.
package crudgen

import (
	"context"
	"fmt"

	"github.com/crudgen/crudgen/cmd/generate"
	"github.com/crudgen/crudgen/cmd/util"
	"github.com/crudgen/crudgen/crud"
	"github.com/crudgen/crudgen/internal/executor"
	"github.com/crudgen/crudgen/ir"
)

// DatabaseConfig holds connection details for the target database.
type DatabaseConfig struct {
	Dialect  crud.Dialect // Routine syntax and database engine
	Host     string       // Database server host
	Port     int          // Database server port (default: 5432 or 1433)
	Database string       // Database name
	User     string       // Database user
	Password string       // Database password (optional)
	Schema   string       // Target schema name (default: "public" or "dbo")
}

// GenerateOptions configures which routines are generated.
type GenerateOptions struct {
	DatabaseConfig
	Input           string        // Metadata file; when set no connection is made
	Tables          []string      // Tables to generate for (default: all not ignored)
	Kinds           []crud.Kind   // Routine kinds (default: all four)
	Prefix          string        // Prefix prepended to routine names
	FilterFields    []string      // Select predicates; first entry keys update and delete
	IgnoreConfig    *IgnoreConfig // Optional table and schema ignore patterns
	IncludeComments bool          // Comment block above each routine in scripts
}

// ExecuteOptions configures how generated routines are created in the database.
type ExecuteOptions struct {
	DatabaseConfig
	StopOnError bool // Stop at the first routine that fails
}

// Client provides the main interface for crudgen operations.
type Client struct {
	// Default configuration that can be overridden by individual operations
	defaultDB  DatabaseConfig
	defaultApp string
}

// NewClient creates a new crudgen client with default database configuration.
func NewClient(dbConfig DatabaseConfig) *Client {
	if dbConfig.Schema == "" {
		dbConfig.Schema = util.DefaultSchema(util.EngineFor(dbConfig.Dialect))
	}

	return &Client{
		defaultDB:  dbConfig,
		defaultApp: util.DefaultApplicationName,
	}
}

// Inspect reads the metadata of the given tables, or of every table not
// ignored when tables is empty.
func (c *Client) Inspect(ctx context.Context, tables []string, ignoreConfig *IgnoreConfig) (*IR, error) {
	db, err := util.Connect(ctx, c.connectionConfig(c.defaultDB))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	engine := util.EngineFor(c.defaultDB.Dialect)
	return ir.NewInspector(db, engine, ignoreConfig).BuildIR(ctx, c.defaultDB.Schema, tables)
}

// Generate returns one result per selected table and kind. Results whose
// Diagnostic is set carry a comment instead of a routine.
func (c *Client) Generate(ctx context.Context, opts GenerateOptions) ([]*Result, error) {
	metadata, opts, err := c.loadMetadata(ctx, opts)
	if err != nil {
		return nil, err
	}
	return generate.Routines(metadata, c.routineOptions(opts))
}

// GenerateScript returns the generated routines as one SQL script with a
// header.
func (c *Client) GenerateScript(ctx context.Context, opts GenerateOptions) (string, error) {
	metadata, opts, err := c.loadMetadata(ctx, opts)
	if err != nil {
		return "", err
	}
	results, err := generate.Routines(metadata, c.routineOptions(opts))
	if err != nil {
		return "", err
	}
	return generate.Render(results, opts.Dialect, metadata.Metadata.DatabaseVersion, opts.IncludeComments), nil
}

// GenerateFiles writes one script per table under dir plus a main script
// that includes them, and returns the written paths.
func (c *Client) GenerateFiles(ctx context.Context, opts GenerateOptions, dir string) ([]string, error) {
	metadata, opts, err := c.loadMetadata(ctx, opts)
	if err != nil {
		return nil, err
	}
	results, err := generate.Routines(metadata, c.routineOptions(opts))
	if err != nil {
		return nil, err
	}
	return generate.WriteFiles(dir, results, opts.Dialect, metadata.Metadata.DatabaseVersion, opts.IncludeComments)
}

// Execute creates the successful results in the database. Results carrying
// a diagnostic are skipped. Per-routine failures are reported in the Report;
// the error is set only when the connection fails or ctx is cancelled.
func (c *Client) Execute(ctx context.Context, results []*Result, opts ExecuteOptions) (*Report, error) {
	if opts.Host == "" {
		opts.DatabaseConfig = c.defaultDB
	}

	db, err := util.Connect(ctx, c.connectionConfig(opts.DatabaseConfig))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return executor.New(db, opts.StopOnError).ExecuteAll(ctx, results)
}

func (c *Client) loadMetadata(ctx context.Context, opts GenerateOptions) (*IR, GenerateOptions, error) {
	// Apply defaults
	if opts.Host == "" {
		opts.DatabaseConfig = c.defaultDB
	}
	if opts.Schema == "" {
		opts.Schema = util.DefaultSchema(util.EngineFor(opts.Dialect))
	}

	if opts.Input != "" {
		metadata, err := ir.LoadFile(opts.Input)
		return metadata, opts, err
	}

	db, err := util.Connect(ctx, c.connectionConfig(opts.DatabaseConfig))
	if err != nil {
		return nil, opts, err
	}
	defer db.Close()

	engine := util.EngineFor(opts.Dialect)
	metadata, err := ir.NewInspector(db, engine, opts.IgnoreConfig).BuildIR(ctx, opts.Schema, opts.Tables)
	if err != nil {
		return nil, opts, fmt.Errorf("failed to inspect database: %w", err)
	}
	return metadata, opts, nil
}

func (c *Client) routineOptions(opts GenerateOptions) generate.Options {
	return generate.Options{
		Dialect:      opts.Dialect,
		Schema:       opts.Schema,
		Tables:       opts.Tables,
		Kinds:        opts.Kinds,
		Prefix:       opts.Prefix,
		FilterFields: opts.FilterFields,
		IgnoreConfig: opts.IgnoreConfig,
	}
}

func (c *Client) connectionConfig(db DatabaseConfig) *util.ConnectionConfig {
	engine := util.EngineFor(db.Dialect)
	port := db.Port
	if port == 0 {
		port = util.DefaultPort(engine)
	}
	return &util.ConnectionConfig{
		Engine:          engine,
		Host:            db.Host,
		Port:            port,
		Database:        db.Database,
		User:            db.User,
		Password:        db.Password,
		ApplicationName: c.defaultApp,
	}
}
