package util

import (
	"context"
	"fmt"

	"github.com/crudgen/crudgen/crud"
	"github.com/crudgen/crudgen/internal/ignore"
	"github.com/crudgen/crudgen/internal/logger"
	"github.com/crudgen/crudgen/ir"
	"github.com/spf13/cobra"
)

// DefaultApplicationName is reported to the server on every connection
const DefaultApplicationName = "crudgen"

// SourceFlags are the flags shared by commands that read table metadata,
// either from a live database or from a metadata file.
type SourceFlags struct {
	Dialect    string
	Host       string
	Port       int
	DB         string
	User       string
	Password   string
	Schema     string
	Input      string
	IgnoreFile string

	dialect crud.Dialect
	conn    ConnectionConfig
}

// Register adds the source flags to cmd
func (f *SourceFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Dialect, "dialect", "postgres", "Target dialect: postgres or mssql")
	cmd.Flags().StringVar(&f.Host, "host", "localhost", "Database server host (env: PGHOST / MSSQL_HOST)")
	cmd.Flags().IntVar(&f.Port, "port", 0, "Database server port (env: PGPORT / MSSQL_PORT, default 5432 / 1433)")
	cmd.Flags().StringVar(&f.DB, "db", "", "Database name (env: PGDATABASE / MSSQL_DATABASE)")
	cmd.Flags().StringVar(&f.User, "user", "", "Database user name (env: PGUSER / MSSQL_USER)")
	cmd.Flags().StringVar(&f.Password, "password", "", "Database password (env: PGPASSWORD / MSSQL_PASSWORD)")
	cmd.Flags().StringVar(&f.Schema, "schema", "", "Schema name (default: public / dbo)")
	cmd.Flags().StringVar(&f.Input, "input", "", "Read table metadata from a YAML file instead of a database")
	cmd.Flags().StringVar(&f.IgnoreFile, "ignore-file", "", "Ignore file path (default: "+ignore.IgnoreFileName+" if present)")
}

// Prepare resolves the dialect, schema and connection settings. Environment
// fallbacks are applied to flags not set on the command line. Connection
// settings are validated only when needDatabase is true.
func (f *SourceFlags) Prepare(cmd *cobra.Command, needDatabase bool) error {
	dialect, err := crud.ParseDialect(f.Dialect)
	if err != nil {
		return err
	}
	f.dialect = dialect

	engine := EngineFor(dialect)
	if f.Schema == "" {
		f.Schema = DefaultSchema(engine)
	}

	f.conn = ConnectionConfig{
		Engine:          engine,
		Host:            f.Host,
		Port:            f.Port,
		Database:        f.DB,
		User:            f.User,
		Password:        f.Password,
		ApplicationName: DefaultApplicationName,
	}
	ApplyEnvDefaults(cmd, &f.conn)

	if needDatabase {
		return ValidateConnection(&f.conn)
	}
	return nil
}

// SelectedDialect returns the dialect resolved by Prepare
func (f *SourceFlags) SelectedDialect() crud.Dialect {
	return f.dialect
}

// Connection returns the connection settings resolved by Prepare
func (f *SourceFlags) Connection() *ConnectionConfig {
	return &f.conn
}

// LoadIgnoreConfig reads the ignore file named by --ignore-file, or the
// default ignore file when present.
func (f *SourceFlags) LoadIgnoreConfig() (*ir.IgnoreConfig, error) {
	if f.IgnoreFile != "" {
		return ignore.MustExist(f.IgnoreFile)
	}
	return ignore.LoadIgnoreFile()
}

// LoadMetadata returns the metadata of the selected tables, read from the
// --input file or from the database.
func (f *SourceFlags) LoadMetadata(ctx context.Context, tables []string, ignoreConfig *ir.IgnoreConfig) (*ir.IR, error) {
	log := logger.Get()

	if f.Input != "" {
		log.Debug("Loading metadata from file", "path", f.Input)
		return ir.LoadFile(f.Input)
	}

	db, err := Connect(ctx, &f.conn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	log.Debug("Inspecting database", "engine", f.conn.Engine, "schema", f.Schema, "tables", tables)
	inspector := ir.NewInspector(db, f.conn.Engine, ignoreConfig)
	metadata, err := inspector.BuildIR(ctx, f.Schema, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect database: %w", err)
	}
	return metadata, nil
}

// EngineFor returns the database engine whose procedures a dialect targets
func EngineFor(d crud.Dialect) ir.Engine {
	if d == crud.TSqlStyle {
		return ir.EngineSQLServer
	}
	return ir.EnginePostgres
}

// DefaultSchema returns the schema objects land in when none is named
func DefaultSchema(engine ir.Engine) string {
	if engine == ir.EngineSQLServer {
		return "dbo"
	}
	return "public"
}
