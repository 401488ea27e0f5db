// Package writer provides an indentation-aware text writer for emitting
// generated Objective-C source.
package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates generated code, prefixing each line with the current
// indentation.
type Writer struct {
	sb           strings.Builder
	indentLevel  int
	indentString string
	linePrefix   string
	needsIndent  bool
}

// NewWriter creates a writer using the given indentation unit. Generated
// Objective-C uses two spaces.
func NewWriter(indentString string) *Writer {
	return &Writer{
		indentString: indentString,
		needsIndent:  true,
	}
}

// Indent increases the indentation level.
func (w *Writer) Indent() {
	w.indentLevel++
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}

// Outdent decreases the indentation level.
func (w *Writer) Outdent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
	}
}

// Write appends a string without a trailing newline. Embedded newlines are
// honored; the next write after a newline is indented.
func (w *Writer) Write(s string) {
	for len(s) > 0 {
		if w.needsIndent {
			w.sb.WriteString(w.linePrefix)
			w.needsIndent = false
		}
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			w.sb.WriteString(s)
			return
		}
		w.sb.WriteString(s[:i+1])
		w.needsIndent = true
		s = s[i+1:]
	}
}

// Writef appends a formatted string without a trailing newline.
func (w *Writer) Writef(format string, args ...interface{}) {
	w.Write(fmt.Sprintf(format, args...))
}

// Line appends a string followed by a newline.
func (w *Writer) Line(s string) {
	w.Write(s)
	w.Newline()
}

// Linef appends a formatted string followed by a newline.
func (w *Writer) Linef(format string, args ...interface{}) {
	w.Writef(format, args...)
	w.Newline()
}

// Newline ends the current line.
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine inserts an empty separator line unless one is already present.
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		w.Newline()
	}
}

// Block writes opener, runs content at one deeper indent level, then
// writes closer.
func (w *Writer) Block(opener, closer string, content func()) {
	w.Line(opener)
	w.Indent()
	content()
	w.Outdent()
	w.Line(closer)
}

// String returns the accumulated text.
func (w *Writer) String() string {
	return w.sb.String()
}

// Bytes returns the accumulated text as a byte slice.
func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}
