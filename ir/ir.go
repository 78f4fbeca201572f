package ir

import (
	"fmt"
	"sort"
)

// IR is the table metadata of one database, as read from a live catalog or
// from a metadata file.
type IR struct {
	Metadata Metadata  `json:"metadata" yaml:"metadata,omitempty"`
	Schemas  []*Schema `json:"schemas" yaml:"schemas"`
}

// Metadata describes where the IR came from.
type Metadata struct {
	DatabaseVersion string `json:"database_version,omitempty" yaml:"database_version,omitempty"`
	Engine          Engine `json:"engine,omitempty" yaml:"engine,omitempty"`
}

// Schema represents a single database schema (namespace)
type Schema struct {
	Name   string   `json:"name" yaml:"name"`
	Tables []*Table `json:"tables" yaml:"tables"`
}

// Table represents a base table and its columns in ordinal order
type Table struct {
	Schema  string   `json:"schema" yaml:"-"`
	Name    string   `json:"name" yaml:"name"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// Column is a (name, declared type) pair. Position, nullability and length
// are informational and never affect generation.
type Column struct {
	Name       string `json:"name" yaml:"name"`
	DataType   string `json:"data_type" yaml:"type"`
	Position   int    `json:"position,omitempty" yaml:"position,omitempty"`
	IsNullable bool   `json:"is_nullable,omitempty" yaml:"nullable,omitempty"`
	MaxLength  *int   `json:"max_length,omitempty" yaml:"max_length,omitempty"`
}

// NewIR creates an empty IR
func NewIR() *IR {
	return &IR{}
}

// GetSchema returns the named schema
func (r *IR) GetSchema(name string) (*Schema, bool) {
	for _, s := range r.Schemas {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// getOrCreateSchema gets or creates a schema, keeping schemas sorted by name
func (r *IR) getOrCreateSchema(name string) *Schema {
	if s, ok := r.GetSchema(name); ok {
		return s
	}
	s := &Schema{Name: name}
	r.Schemas = append(r.Schemas, s)
	sort.Slice(r.Schemas, func(i, j int) bool {
		return r.Schemas[i].Name < r.Schemas[j].Name
	})
	return s
}

// GetTable returns the named table
func (s *Schema) GetTable(name string) (*Table, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// TableNames returns the table names in schema order
func (s *Schema) TableNames() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}

// ColumnNames returns the column names in ordinal order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// SelectTables returns tables of one schema for routine generation. With no
// names every table not matched by ignore is returned in schema order;
// otherwise the named tables are returned in the requested order and each
// must exist and not be ignored.
func (r *IR) SelectTables(schemaName string, names []string, ignore *IgnoreConfig) ([]*Table, error) {
	schema, ok := r.GetSchema(schemaName)
	if !ok {
		return nil, fmt.Errorf("schema %s not found", schemaName)
	}
	if ignore.ShouldIgnoreSchema(schemaName) {
		return nil, fmt.Errorf("schema %s is ignored", schemaName)
	}

	if len(names) == 0 {
		var tables []*Table
		for _, t := range schema.Tables {
			if !ignore.ShouldIgnoreTable(t.Name) {
				tables = append(tables, t)
			}
		}
		return tables, nil
	}

	tables := make([]*Table, 0, len(names))
	for _, name := range names {
		t, ok := schema.GetTable(name)
		if !ok || ignore.ShouldIgnoreTable(name) {
			return nil, fmt.Errorf("table %s.%s not found or ignored", schemaName, name)
		}
		tables = append(tables, t)
	}
	return tables, nil
}
