package codegen

import (
	"fmt"
	"strings"

	"pup/internal/ast"
	"pup/internal/sourcemap"
)

// writer builds the generated file one line at a time. Every line is
// recorded in the source map against the construct that produced it.
type writer struct {
	indent int
	lines  int
	output strings.Builder
	smap   *sourcemap.Builder
}

func (w *writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.output.WriteString("    ")
	}
}

// writeLine writes one or more lines of text attributed to span.
func (w *writer) writeLine(span ast.SourceSpan, text string) {
	for _, line := range strings.Split(text, "\n") {
		w.lines++
		w.smap.Record(w.lines, span)
		if line != "" {
			w.writeIndent()
			w.output.WriteString(line)
		}
		w.output.WriteString("\n")
	}
}

func (w *writer) writeLinef(span ast.SourceSpan, format string, args ...interface{}) {
	w.writeLine(span, fmt.Sprintf(format, args...))
}

func (w *writer) blank(span ast.SourceSpan) {
	w.writeLine(span, "")
}

// open writes a line ending in "{" and indents what follows.
func (w *writer) open(span ast.SourceSpan, format string, args ...interface{}) {
	w.writeLinef(span, format, args...)
	w.indent++
}

func (w *writer) close(span ast.SourceSpan, text string) {
	w.indent--
	w.writeLine(span, text)
}

func (w *writer) String() string {
	return w.output.String()
}
