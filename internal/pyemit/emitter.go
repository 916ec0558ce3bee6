package pyemit

import (
	"fmt"
	"io"
	"strings"
)

// emitter wraps an io.Writer with helpers for emitting Python source text.
// It tracks the current indent level and captures the first write error so
// printers can emit unconditionally and check once at the end.
type emitter struct {
	w      io.Writer
	err    error // first write error
	indent int   // current indentation depth (4 spaces per level)
	lines  int   // count of emitted lines, used to detect empty blocks
}

const indentUnit = "    "

// line writes one indented line followed by a newline.
func (e *emitter) line(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	e.lines++
	_, e.err = fmt.Fprintf(e.w, "%s%s\n", strings.Repeat(indentUnit, e.indent), fmt.Sprintf(format, args...))
}

// blank writes an empty line.
func (e *emitter) blank() {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, "\n")
}

// raw writes text with no indentation or newline handling.
func (e *emitter) raw(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

// indented runs fn with the indent level one deeper.
func (e *emitter) indented(fn func()) {
	e.indent++
	fn()
	e.indent--
}
