package crudgen

import (
	"context"
	"fmt"
	"os"
)

// GenerateScript is a convenience function to generate every routine of the
// schema's tables as a single SQL script.
func GenerateScript(ctx context.Context, dbConfig DatabaseConfig) (string, error) {
	client := NewClient(dbConfig)
	return client.GenerateScript(ctx, GenerateOptions{IncludeComments: true})
}

// GenerateScriptToFile is a convenience function to write every routine of
// the schema's tables to a single file.
func GenerateScriptToFile(ctx context.Context, dbConfig DatabaseConfig, filePath string) error {
	script, err := GenerateScript(ctx, dbConfig)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filePath, []byte(script), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// GenerateFromFile is a convenience function to generate every routine from
// a YAML metadata file without connecting to a database.
func GenerateFromFile(ctx context.Context, metadataFile string, dialect Dialect, schema string) (string, error) {
	client := NewClient(DatabaseConfig{Dialect: dialect, Schema: schema})
	return client.GenerateScript(ctx, GenerateOptions{
		Input:           metadataFile,
		IncludeComments: true,
	})
}

// GenerateAndExecute is a convenience function to generate every routine
// of the schema's tables and create them in the same database.
func GenerateAndExecute(ctx context.Context, dbConfig DatabaseConfig) (*Report, error) {
	client := NewClient(dbConfig)
	results, err := client.Generate(ctx, GenerateOptions{})
	if err != nil {
		return nil, err
	}
	return client.Execute(ctx, results, ExecuteOptions{})
}
