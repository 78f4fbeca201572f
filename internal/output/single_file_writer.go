package output

import (
	"strings"

	"github.com/crudgen/crudgen/crud"
)

// SingleFileWriter accumulates every routine into one script
type SingleFileWriter struct {
	output          strings.Builder
	includeComments bool
	count           int
}

// NewSingleFileWriter creates a new SingleFileWriter with configurable comment inclusion
func NewSingleFileWriter(includeComments bool) *SingleFileWriter {
	return &SingleFileWriter{includeComments: includeComments}
}

// WriteHeader writes the script header
func (w *SingleFileWriter) WriteHeader(header string) {
	w.output.WriteString(header)
}

// WriteRoutine appends a routine, separated from the previous one by a blank line
func (w *SingleFileWriter) WriteRoutine(res *crud.Result) {
	if w.count > 0 {
		w.output.WriteString("\n")
	}
	writeRoutine(&w.output, res, w.includeComments)
	w.count++
}

// String returns the accumulated SQL output with leading/trailing newlines removed
func (w *SingleFileWriter) String() string {
	return strings.Trim(w.output.String(), "\n") + "\n"
}
