// Package document provides the immutable text snapshot the resolvers run
// against, together with concrete implementations of the textobject
// collaborator contracts: the single-pair delimiter matcher and the
// macro/environment boundary primitives.
package document

import (
	"sort"
	"strings"

	"github.com/zjrosen/texel/internal/textobject"
)

// Snapshot is an immutable view of document text at one revision. All
// scanning operations are read-only queries; resolving the same request
// twice against the same snapshot yields identical results.
type Snapshot struct {
	text       string
	revision   uint64
	lineStarts []int // byte offset of each line start
}

// NewSnapshot wraps text as revision 1.
func NewSnapshot(text string) *Snapshot {
	return &Snapshot{
		text:       text,
		revision:   1,
		lineStarts: computeLineStarts(text),
	}
}

// WithText returns a new snapshot carrying the next revision.
func (s *Snapshot) WithText(text string) *Snapshot {
	return &Snapshot{
		text:       text,
		revision:   s.revision + 1,
		lineStarts: computeLineStarts(text),
	}
}

func computeLineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Revision returns the snapshot's monotonically increasing revision.
func (s *Snapshot) Revision() uint64 { return s.revision }

// Text returns the full document text.
func (s *Snapshot) Text() string { return s.text }

// Len implements textobject.Text.
func (s *Snapshot) Len() int { return len(s.text) }

// ByteAt implements textobject.Text.
func (s *Snapshot) ByteAt(off int) byte { return s.text[off] }

// Slice returns the text a span covers, clamped to the document.
func (s *Snapshot) Slice(span textobject.Span) string {
	start := min(max(span.Start, 0), len(s.text))
	end := min(max(span.End, start), len(s.text))
	return s.text[start:end]
}

// LineCount returns the number of lines. An empty document has one line.
func (s *Snapshot) LineCount() int { return len(s.lineStarts) }

// Line returns the text of line row without its trailing newline.
func (s *Snapshot) Line(row int) string {
	start := s.lineStarts[row]
	if row+1 < len(s.lineStarts) {
		return strings.TrimSuffix(s.text[start:s.lineStarts[row+1]], "\n")
	}
	return s.text[start:]
}

// LineStart returns the byte offset where line row begins.
func (s *Snapshot) LineStart(row int) int { return s.lineStarts[row] }

// PositionFor converts a byte offset to (row, byte column within the line).
// Offsets past the end map to the end of the last line.
func (s *Snapshot) PositionFor(off int) (row, col int) {
	off = min(max(off, 0), len(s.text))
	row = sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > off
	}) - 1
	return row, off - s.lineStarts[row]
}

// OffsetFor converts (row, byte column) to a byte offset, clamped to the
// line's extent.
func (s *Snapshot) OffsetFor(row, col int) int {
	row = min(max(row, 0), len(s.lineStarts)-1)
	return s.lineStarts[row] + min(max(col, 0), len(s.Line(row)))
}
