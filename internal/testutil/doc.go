// Package testutil provides fixture builders for tests that need LaTeX
// source with known construct offsets.
package testutil

import (
	"fmt"
	"strings"
	"testing"
)

// DocBuilder accumulates LaTeX fragments and records the byte offset of
// each named mark so tests can place cursors without counting bytes.
type DocBuilder struct {
	t     *testing.T
	b     strings.Builder
	marks map[string]int
}

// NewDoc creates a builder for a test document.
func NewDoc(t *testing.T) *DocBuilder {
	t.Helper()
	return &DocBuilder{t: t, marks: make(map[string]int)}
}

// Plain appends literal text.
func (d *DocBuilder) Plain(s string) *DocBuilder {
	d.b.WriteString(s)
	return d
}

// Mark records the current offset under name.
func (d *DocBuilder) Mark(name string) *DocBuilder {
	if _, dup := d.marks[name]; dup {
		d.t.Fatalf("duplicate mark %q", name)
	}
	d.marks[name] = d.b.Len()
	return d
}

// Macro appends \name{arg}... with one brace group per argument.
func (d *DocBuilder) Macro(name string, args ...string) *DocBuilder {
	d.b.WriteByte('\\')
	d.b.WriteString(name)
	for _, arg := range args {
		d.b.WriteByte('{')
		d.b.WriteString(arg)
		d.b.WriteByte('}')
	}
	return d
}

// Env appends \begin{name}body\end{name}.
func (d *DocBuilder) Env(name, body string) *DocBuilder {
	fmt.Fprintf(&d.b, `\begin{%s}%s\end{%s}`, name, body, name)
	return d
}

// Quoted appends a TeX-quoted ``s'' run.
func (d *DocBuilder) Quoted(s string) *DocBuilder {
	d.b.WriteString("``")
	d.b.WriteString(s)
	d.b.WriteString("''")
	return d
}

// InlineMath appends $s$.
func (d *DocBuilder) InlineMath(s string) *DocBuilder {
	d.b.WriteByte('$')
	d.b.WriteString(s)
	d.b.WriteByte('$')
	return d
}

// DisplayMath appends \[s\].
func (d *DocBuilder) DisplayMath(s string) *DocBuilder {
	d.b.WriteString(`\[`)
	d.b.WriteString(s)
	d.b.WriteString(`\]`)
	return d
}

// Build returns the accumulated source.
func (d *DocBuilder) Build() string {
	return d.b.String()
}

// At returns the offset recorded for name.
func (d *DocBuilder) At(name string) int {
	off, ok := d.marks[name]
	if !ok {
		d.t.Fatalf("unknown mark %q", name)
	}
	return off
}

// Offset returns the byte offset of the nth occurrence (1-based) of sub in
// the accumulated source.
func (d *DocBuilder) Offset(sub string, n int) int {
	d.t.Helper()
	text := d.b.String()
	pos := 0
	for i := 0; i < n; i++ {
		idx := strings.Index(text[pos:], sub)
		if idx < 0 {
			d.t.Fatalf("occurrence %d of %q not found in %q", n, sub, text)
		}
		pos += idx
		if i < n-1 {
			pos += len(sub)
		}
	}
	return pos
}
