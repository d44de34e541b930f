// Package history records the calculations made during a calculator session.
package history

import (
	"io"

	"github.com/pkg/errors"
)

// History is an ordered list of calculation records such as "2+3 = 5". It is
// not safe for concurrent use; a History belongs to one session.
type History struct {
	lines []string
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Append records a line.
func (h *History) Append(line string) {
	h.lines = append(h.lines, line)
}

// List returns a copy of the recorded lines in the order they were appended.
func (h *History) List() []string {
	r := make([]string, len(h.lines))
	copy(r, h.lines)
	return r
}

// Len returns the number of recorded lines.
func (h *History) Len() int {
	return len(h.lines)
}

// Clear removes all recorded lines.
func (h *History) Clear() {
	h.lines = h.lines[:0]
}

// WriteTo writes each recorded line to w followed by a newline.
func (h *History) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for i, line := range h.lines {
		k, err := io.WriteString(w, line+"\n")
		n += int64(k)
		if err != nil {
			return n, errors.Wrapf(err, "write history entry %d", i+1)
		}
	}
	return n, nil
}

// Line formats the record of an evaluated expression.
func Line(expr, result string) string {
	return expr + " = " + result
}

// CallLine formats the record of a function applied to an operand.
func CallLine(fn, arg, result string) string {
	return fn + "(" + arg + ") = " + result
}
