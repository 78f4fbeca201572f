package util

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/crudgen/crudgen/internal/logger"
	"github.com/crudgen/crudgen/ir"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"
)

// ConnectionConfig holds database connection parameters
type ConnectionConfig struct {
	Engine          ir.Engine
	Host            string
	Port            int
	Database        string
	User            string
	Password        string
	SSLMode         string
	ApplicationName string
}

// DefaultPort returns the conventional server port of an engine
func DefaultPort(engine ir.Engine) int {
	if engine == ir.EngineSQLServer {
		return 1433
	}
	return 5432
}

// Connect establishes a database connection using the provided configuration
func Connect(ctx context.Context, config *ConnectionConfig) (*sql.DB, error) {
	log := logger.Get()

	log.Debug("Attempting database connection",
		"engine", config.Engine,
		"host", config.Host,
		"port", config.Port,
		"database", config.Database,
		"user", config.User,
		"application_name", config.ApplicationName,
	)

	driver, dsn, err := BuildDSN(config)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		log.Debug("Database connection failed", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := conn.PingContext(ctx); err != nil {
		log.Debug("Database ping failed", "error", err)
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Debug("Database connection established successfully")
	return conn, nil
}

// BuildDSN returns the database/sql driver name and connection string for config
func BuildDSN(config *ConnectionConfig) (driver, dsn string, err error) {
	switch config.Engine {
	case ir.EnginePostgres:
		return "pgx", buildPostgresDSN(config), nil
	case ir.EngineSQLServer:
		dsn := buildSQLServerDSN(config)
		if _, err := msdsn.Parse(dsn); err != nil {
			return "", "", fmt.Errorf("invalid SQL Server connection settings: %w", err)
		}
		return "sqlserver", dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported database engine %q", config.Engine)
	}
}

// buildPostgresDSN constructs a PostgreSQL keyword/value connection string
func buildPostgresDSN(config *ConnectionConfig) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("host=%s", config.Host))
	parts = append(parts, fmt.Sprintf("port=%d", config.Port))
	parts = append(parts, fmt.Sprintf("dbname=%s", config.Database))
	parts = append(parts, fmt.Sprintf("user=%s", config.User))

	if config.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", config.Password))
	}

	if config.SSLMode != "" {
		parts = append(parts, fmt.Sprintf("sslmode=%s", config.SSLMode))
	}

	if config.ApplicationName != "" {
		parts = append(parts, fmt.Sprintf("application_name=%s", config.ApplicationName))
	}

	return strings.Join(parts, " ")
}

// buildSQLServerDSN constructs a sqlserver:// URL as understood by go-mssqldb
func buildSQLServerDSN(config *ConnectionConfig) string {
	query := url.Values{}
	query.Set("database", config.Database)
	if config.ApplicationName != "" {
		query.Set("app name", config.ApplicationName)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     config.Host + ":" + strconv.Itoa(config.Port),
		RawQuery: query.Encode(),
	}
	if config.Password != "" {
		u.User = url.UserPassword(config.User, config.Password)
	} else {
		u.User = url.User(config.User)
	}
	return u.String()
}
