package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/crudgen/crudgen/ir"
)

const (
	// IgnoreFileName is the default name of the ignore file
	IgnoreFileName = ".crudgenignore"
)

// LoadIgnoreFile loads the .crudgenignore file from the current directory
// Returns nil if the file doesn't exist (ignore functionality is optional)
func LoadIgnoreFile() (*ir.IgnoreConfig, error) {
	return LoadIgnoreFileFromPath(IgnoreFileName)
}

// TomlConfig represents the TOML structure of the ignore file:
//
//	[tables]
//	patterns = ["tmp_*", "!tmp_keep"]
//
//	[schemas]
//	patterns = ["staging"]
type TomlConfig struct {
	Tables  PatternConfig `toml:"tables,omitempty"`
	Schemas PatternConfig `toml:"schemas,omitempty"`
}

// PatternConfig holds the glob patterns of one object type
type PatternConfig struct {
	Patterns []string `toml:"patterns,omitempty"`
}

// LoadIgnoreFileFromPath loads an ignore file from the specified path
// Returns nil if the file doesn't exist
func LoadIgnoreFileFromPath(filePath string) (*ir.IgnoreConfig, error) {
	var tomlConfig TomlConfig
	meta, err := toml.DecodeFile(filePath, &tomlConfig)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse ignore file %s: %w", filePath, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in ignore file %s", undecoded[0].String(), filePath)
	}

	return &ir.IgnoreConfig{
		Tables:  tomlConfig.Tables.Patterns,
		Schemas: tomlConfig.Schemas.Patterns,
	}, nil
}

// MustExist is LoadIgnoreFileFromPath for paths given explicitly by the
// user, where a missing file is an error.
func MustExist(filePath string) (*ir.IgnoreConfig, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("ignore file: %w", err)
	}
	return LoadIgnoreFileFromPath(filePath)
}
