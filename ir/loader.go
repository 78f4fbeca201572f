package ir

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads table metadata from a YAML file, so routines can be
// generated without a database connection. The layout is the one written
// by WriteYAML:
//
//	engine: postgres
//	schemas:
//	  - name: public
//	    tables:
//	      - name: users
//	        columns:
//	          - {name: id, type: integer}
//	          - {name: email, type: varchar}
func LoadFile(path string) (*IR, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}
	result, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata file %s: %w", path, err)
	}
	return result, nil
}

// metadataFile is the on-disk layout. Engine sits at the top level rather
// than under metadata to keep hand-written files short.
type metadataFile struct {
	Engine          Engine    `yaml:"engine,omitempty"`
	DatabaseVersion string    `yaml:"database_version,omitempty"`
	Schemas         []*Schema `yaml:"schemas"`
}

// Parse decodes YAML metadata. Columns missing a name or type are kept as
// they are; routine generation decides what to do with them.
func Parse(data []byte) (*IR, error) {
	var file metadataFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, err
	}

	if file.Engine != "" {
		engine, err := ParseEngine(string(file.Engine))
		if err != nil {
			return nil, err
		}
		file.Engine = engine
	}

	result := NewIR()
	result.Metadata = Metadata{Engine: file.Engine, DatabaseVersion: file.DatabaseVersion}
	for i, s := range file.Schemas {
		if s == nil || s.Name == "" {
			return nil, fmt.Errorf("schema #%d has no name", i+1)
		}
		if _, dup := result.GetSchema(s.Name); dup {
			return nil, fmt.Errorf("schema %s is listed twice", s.Name)
		}
		schema := result.getOrCreateSchema(s.Name)
		for j, t := range s.Tables {
			if t == nil || t.Name == "" {
				return nil, fmt.Errorf("table #%d of schema %s has no name", j+1, s.Name)
			}
			if _, dup := schema.GetTable(t.Name); dup {
				return nil, fmt.Errorf("table %s.%s is listed twice", s.Name, t.Name)
			}
			t.Schema = s.Name
			schema.Tables = append(schema.Tables, t)
		}
	}
	return result, nil
}

// WriteYAML writes the IR in the layout LoadFile reads
func WriteYAML(w io.Writer, r *IR) error {
	file := metadataFile{
		Engine:          r.Metadata.Engine,
		DatabaseVersion: r.Metadata.DatabaseVersion,
		Schemas:         r.Schemas,
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	return enc.Close()
}
