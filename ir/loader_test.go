package ir

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleMetadata = `
engine: PostgreSQL
schemas:
  - name: sales
    tables:
      - name: orders
        columns:
          - {name: id, type: integer}
          - {name: customer_id, type: integer}
          - {name: note, type: text, nullable: true}
  - name: public
    tables:
      - name: users
        columns:
          - {name: id, type: integer}
          - {name: email, type: varchar}
          - {name: broken}
`

func TestParse(t *testing.T) {
	result, err := Parse([]byte(sampleMetadata))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if result.Metadata.Engine != EnginePostgres {
		t.Errorf("expected engine %q, got %q", EnginePostgres, result.Metadata.Engine)
	}

	var schemaNames []string
	for _, s := range result.Schemas {
		schemaNames = append(schemaNames, s.Name)
	}
	if diff := cmp.Diff([]string{"public", "sales"}, schemaNames); diff != "" {
		t.Errorf("schemas mismatch (-want +got):\n%s", diff)
	}

	public, _ := result.GetSchema("public")
	users, ok := public.GetTable("users")
	if !ok {
		t.Fatal("expected table public.users")
	}
	if users.Schema != "public" {
		t.Errorf("expected table schema to be set, got %q", users.Schema)
	}

	want := []Column{
		{Name: "id", DataType: "integer"},
		{Name: "email", DataType: "varchar"},
		{Name: "broken"},
	}
	if diff := cmp.Diff(want, users.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	sales, _ := result.GetSchema("sales")
	orders, _ := sales.GetTable("orders")
	if !orders.Columns[2].IsNullable {
		t.Error("expected orders.note to be nullable")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "schema without name",
			input:   "schemas:\n  - tables: []\n",
			wantErr: "schema #1 has no name",
		},
		{
			name:    "table without name",
			input:   "schemas:\n  - name: public\n    tables:\n      - columns: []\n",
			wantErr: "table #1 of schema public has no name",
		},
		{
			name:    "duplicate table",
			input:   "schemas:\n  - name: public\n    tables:\n      - name: a\n      - name: a\n",
			wantErr: "table public.a is listed twice",
		},
		{
			name:    "unknown engine",
			input:   "engine: oracle\nschemas: []\n",
			wantErr: "unsupported database engine",
		},
		{
			name:    "unknown field",
			input:   "schemas:\n  - name: public\n    owner: me\n",
			wantErr: "owner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	result, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) failed: %v", err)
	}
	if len(result.Schemas) != 0 {
		t.Errorf("expected no schemas, got %d", len(result.Schemas))
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	original, err := Parse([]byte(sampleMetadata))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteYAML(&buf, original); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "metadata.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write metadata file: %v", err)
	}

	reloaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(original, reloaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read metadata file") {
		t.Errorf("expected read error, got %v", err)
	}
}
