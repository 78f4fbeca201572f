package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crudgen/crudgen/cmd/util"
	"github.com/joho/godotenv"
)

func TestDotenvLoading(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "MSSQL_HOST=sql.from.dotenv\nMSSQL_PASSWORD=test_password_123\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create .env file: %v", err)
	}

	// godotenv never overrides variables that are already set; t.Setenv
	// registers cleanup before the variables are cleared for loading.
	t.Setenv("MSSQL_HOST", "")
	t.Setenv("MSSQL_PASSWORD", "")
	os.Unsetenv("MSSQL_HOST")
	os.Unsetenv("MSSQL_PASSWORD")

	if err := godotenv.Load(envFile); err != nil {
		t.Fatalf("Failed to load .env file: %v", err)
	}

	if got := util.GetEnvWithDefault("MSSQL_HOST", "localhost"); got != "sql.from.dotenv" {
		t.Errorf("Expected MSSQL_HOST from .env, got %q", got)
	}
	if got := os.Getenv("MSSQL_PASSWORD"); got != "test_password_123" {
		t.Errorf("Expected MSSQL_PASSWORD from .env, got %q", got)
	}
}
