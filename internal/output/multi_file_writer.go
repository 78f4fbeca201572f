package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/crudgen/crudgen/crud"
)

// MainFileName is the script that includes every per-table file
const MainFileName = "crudgen.sql"

// MultiFileWriter writes the routines of each table to
// <baseDir>/<schema>/<tableInCamelCase>.sql and a main script that includes
// them, using \i for psql or :r for sqlcmd.
type MultiFileWriter struct {
	baseDir         string
	dialect         crud.Dialect
	includeComments bool
	header          string
	files           map[string]*strings.Builder
	order           []string
}

// NewMultiFileWriter creates a new MultiFileWriter rooted at baseDir
func NewMultiFileWriter(baseDir string, dialect crud.Dialect, includeComments bool) *MultiFileWriter {
	return &MultiFileWriter{
		baseDir:         baseDir,
		dialect:         dialect,
		includeComments: includeComments,
		files:           make(map[string]*strings.Builder),
	}
}

// WriteHeader sets the header written at the top of every file
func (w *MultiFileWriter) WriteHeader(header string) {
	w.header = header
}

// WriteRoutine buffers a routine into its table's file
func (w *MultiFileWriter) WriteRoutine(res *crud.Result) {
	relPath := w.tableFilePath(res.Schema, res.Table)
	buf, ok := w.files[relPath]
	if !ok {
		buf = &strings.Builder{}
		w.files[relPath] = buf
		w.order = append(w.order, relPath)
	} else {
		buf.WriteString("\n")
	}
	writeRoutine(buf, res, w.includeComments)
}

// Close writes all buffered files and returns their paths, main script last
func (w *MultiFileWriter) Close() ([]string, error) {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	var mainContent strings.Builder
	mainContent.WriteString(w.header)
	for _, relPath := range w.order {
		fullPath := filepath.Join(w.baseDir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", relPath, err)
		}
		content := w.header + strings.Trim(w.files[relPath].String(), "\n") + "\n"
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", fullPath, err)
		}
		written = append(written, fullPath)
		mainContent.WriteString(w.includeDirective(relPath) + "\n")
	}

	mainPath := filepath.Join(w.baseDir, MainFileName)
	if err := os.WriteFile(mainPath, []byte(mainContent.String()), 0644); err != nil {
		return written, fmt.Errorf("failed to write %s: %w", mainPath, err)
	}
	return append(written, mainPath), nil
}

func (w *MultiFileWriter) includeDirective(relPath string) string {
	// Include paths always use forward slashes.
	relPath = filepath.ToSlash(relPath)
	if w.dialect == crud.TSqlStyle {
		return ":r " + relPath
	}
	return "\\i " + relPath
}

// tableFilePath returns the file path for a table relative to baseDir
func (w *MultiFileWriter) tableFilePath(schema, table string) string {
	return filepath.Join(sanitizeFileName(schema), sanitizeFileName(crud.ToCamelCase(table))+".sql")
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// sanitizeFileName converts an object name to a valid filename
func sanitizeFileName(name string) string {
	// Replace non-alphanumeric characters with underscores
	sanitized := unsafeFileChars.ReplaceAllString(name, "_")
	// Remove leading/trailing underscores
	return strings.Trim(sanitized, "_")
}
