package crudgen_test

import (
	"context"
	"fmt"
	"log"

	"github.com/crudgen/crudgen/crudgen"
)

// ExampleGenerateScript demonstrates how to generate every routine of a
// PostgreSQL schema as one SQL script.
func ExampleGenerateScript() {
	ctx := context.Background()

	dbConfig := crudgen.DatabaseConfig{
		Dialect:  crudgen.PostgresStyle,
		Host:     "localhost",
		Port:     5432,
		Database: "myapp",
		User:     "postgres",
		Password: "password",
		Schema:   "public",
	}

	script, err := crudgen.GenerateScript(ctx, dbConfig)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(script)
}

// ExampleGenerateFromFile demonstrates how to generate SQL Server procedures
// from a metadata file written by "crudgen inspect --format yaml".
func ExampleGenerateFromFile() {
	script, err := crudgen.GenerateFromFile(context.Background(), "tables.yaml", crudgen.TSqlStyle, "dbo")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(script)
}

// ExampleClient_Generate demonstrates how to generate selected routines and
// handle diagnostics.
func ExampleClient_Generate() {
	ctx := context.Background()

	client := crudgen.NewClient(crudgen.DatabaseConfig{
		Dialect:  crudgen.TSqlStyle,
		Host:     "localhost",
		Database: "erp",
		User:     "sa",
		Password: "password",
	})

	results, err := client.Generate(ctx, crudgen.GenerateOptions{
		Tables:       []string{"customers", "orders"},
		Kinds:        []crudgen.Kind{crudgen.Select},
		Prefix:       "usp_",
		FilterFields: []string{"customer_id"},
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, res := range results {
		if !res.OK() {
			fmt.Println("skipped:", res.Diagnostic)
			continue
		}
		fmt.Println(res.SQL)
	}
}

// ExampleClient_Execute demonstrates how to create generated routines in
// the database and inspect the outcome of each one.
func ExampleClient_Execute() {
	ctx := context.Background()

	client := crudgen.NewClient(crudgen.DatabaseConfig{
		Dialect:  crudgen.PostgresStyle,
		Host:     "localhost",
		Database: "myapp",
		User:     "postgres",
	})

	results, err := client.Generate(ctx, crudgen.GenerateOptions{})
	if err != nil {
		log.Fatal(err)
	}

	report, err := client.Execute(ctx, results, crudgen.ExecuteOptions{StopOnError: true})
	if err != nil {
		log.Fatal(err)
	}

	for _, o := range report.Outcomes {
		fmt.Printf("%s: %s\n", o.Name, o.Status)
	}
}
