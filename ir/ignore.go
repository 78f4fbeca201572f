package ir

import (
	"path/filepath"
	"strings"
)

// IgnoreConfig represents the configuration for ignoring database objects
type IgnoreConfig struct {
	Schemas []string `toml:"schemas,omitempty"`
	Tables  []string `toml:"tables,omitempty"`
}

// ShouldIgnoreSchema checks if a schema should be ignored based on the patterns
func (c *IgnoreConfig) ShouldIgnoreSchema(schemaName string) bool {
	if c == nil {
		return false
	}
	return shouldIgnore(schemaName, c.Schemas)
}

// ShouldIgnoreTable checks if a table should be ignored based on the patterns
func (c *IgnoreConfig) ShouldIgnoreTable(tableName string) bool {
	if c == nil {
		return false
	}
	return shouldIgnore(tableName, c.Tables)
}

// shouldIgnore checks if a name should be ignored based on the patterns
// Patterns support wildcards (*) and negation (!)
// Negation patterns (starting with !) take precedence over inclusion patterns
func shouldIgnore(name string, patterns []string) bool {
	matched := false
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "!") {
			continue
		}
		if matchPattern(pattern, name) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	for _, pattern := range patterns {
		if negPattern, ok := strings.CutPrefix(pattern, "!"); ok && matchPattern(negPattern, name) {
			return false
		}
	}
	return true
}

// matchPattern matches a glob-style pattern against a string
func matchPattern(pattern, name string) bool {
	matched, err := filepath.Match(pattern, name)
	if err != nil {
		// If pattern is invalid, treat it as a literal match
		return pattern == name
	}
	return matched
}
