package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/crudgen/crudgen/ir"
	"github.com/spf13/cobra"
)

// EnvNames are the environment variables consulted for one engine
type EnvNames struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

// EnvNamesFor returns the libpq variables for PostgreSQL and their MSSQL_*
// counterparts for SQL Server
func EnvNamesFor(engine ir.Engine) EnvNames {
	if engine == ir.EngineSQLServer {
		return EnvNames{
			Host:     "MSSQL_HOST",
			Port:     "MSSQL_PORT",
			Database: "MSSQL_DATABASE",
			User:     "MSSQL_USER",
			Password: "MSSQL_PASSWORD",
		}
	}
	return EnvNames{
		Host:     "PGHOST",
		Port:     "PGPORT",
		Database: "PGDATABASE",
		User:     "PGUSER",
		Password: "PGPASSWORD",
	}
}

// GetEnvWithDefault returns the value of an environment variable or a default value if not set
func GetEnvWithDefault(envVar, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvIntWithDefault returns the value of an environment variable as int or a default value if not set
func GetEnvIntWithDefault(envVar string, defaultValue int) int {
	if value := os.Getenv(envVar); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ApplyEnvDefaults fills connection settings whose flags were not set
// explicitly from the engine's environment variables. Port falls back to the
// engine default when neither flag nor environment provides one.
func ApplyEnvDefaults(cmd *cobra.Command, config *ConnectionConfig) {
	env := EnvNamesFor(config.Engine)

	if !cmd.Flags().Changed("host") {
		config.Host = GetEnvWithDefault(env.Host, config.Host)
	}
	if !cmd.Flags().Changed("port") {
		config.Port = GetEnvIntWithDefault(env.Port, config.Port)
		if config.Port == 0 {
			config.Port = DefaultPort(config.Engine)
		}
	}
	if !cmd.Flags().Changed("db") {
		config.Database = GetEnvWithDefault(env.Database, config.Database)
	}
	if !cmd.Flags().Changed("user") {
		config.User = GetEnvWithDefault(env.User, config.User)
	}
	if config.Password == "" {
		config.Password = GetEnvWithDefault(env.Password, "")
	}
}

// ValidateConnection checks that the required connection values are present
func ValidateConnection(config *ConnectionConfig) error {
	env := EnvNamesFor(config.Engine)
	if config.Database == "" {
		return fmt.Errorf("database name is required (use --db flag or %s environment variable)", env.Database)
	}
	if config.User == "" {
		return fmt.Errorf("database user is required (use --user flag or %s environment variable)", env.User)
	}
	return nil
}
