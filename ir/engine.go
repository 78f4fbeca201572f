package ir

import (
	"fmt"
	"strings"
)

// Engine identifies the database product a catalog is read from.
type Engine string

const (
	EnginePostgres  Engine = "postgres"
	EngineSQLServer Engine = "mssql"
)

// ParseEngine maps a user-supplied engine name to an Engine
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pg", "pgsql":
		return EnginePostgres, nil
	case "mssql", "sqlserver", "tsql", "t-sql":
		return EngineSQLServer, nil
	}
	return "", fmt.Errorf("unsupported database engine %q", s)
}

// postgresSystemSchemas are never reported by the inspector
var postgresSystemSchemas = []string{"pg_catalog", "information_schema", "pg_toast"}

// sqlServerSystemSchemas are never reported by the inspector
var sqlServerSystemSchemas = []string{
	"guest", "INFORMATION_SCHEMA", "sys",
	"db_owner", "db_accessadmin", "db_securityadmin",
}

// catalog holds the engine-specific metadata queries. Both engines expose
// INFORMATION_SCHEMA; they differ in placeholder syntax and in how system
// schemas are excluded.
type catalog struct {
	version string
	schemas string
	tables  string
	columns string
}

func catalogFor(engine Engine) catalog {
	if engine == EngineSQLServer {
		return catalog{
			version: `SELECT @@VERSION`,
			schemas: `
				SELECT DISTINCT s.name
				FROM sys.schemas s
				INNER JOIN sys.tables t ON s.schema_id = t.schema_id
				WHERE s.name NOT IN ('` + strings.Join(sqlServerSystemSchemas, "', '") + `')
				ORDER BY s.name`,
			tables: `
				SELECT TABLE_NAME
				FROM INFORMATION_SCHEMA.TABLES
				WHERE TABLE_TYPE = 'BASE TABLE'
				AND TABLE_SCHEMA = @p1
				ORDER BY TABLE_NAME`,
			columns: `
				SELECT COLUMN_NAME, DATA_TYPE, ORDINAL_POSITION, IS_NULLABLE, CHARACTER_MAXIMUM_LENGTH
				FROM INFORMATION_SCHEMA.COLUMNS
				WHERE TABLE_SCHEMA = @p1
				AND TABLE_NAME = @p2
				ORDER BY ORDINAL_POSITION`,
		}
	}
	return catalog{
		version: `SELECT version()`,
		schemas: `
			SELECT schema_name
			FROM information_schema.schemata
			WHERE schema_name <> ALL($1::text[])
			AND schema_name NOT LIKE 'pg_temp_%'
			AND schema_name NOT LIKE 'pg_toast_temp_%'
			ORDER BY schema_name`,
		tables: `
			SELECT table_name
			FROM information_schema.tables
			WHERE table_schema = $1
			AND table_type = 'BASE TABLE'
			ORDER BY table_name`,
		columns: `
			SELECT column_name, data_type, ordinal_position, is_nullable, character_maximum_length
			FROM information_schema.columns
			WHERE table_schema = $1
			AND table_name = $2
			ORDER BY ordinal_position`,
	}
}
