package textobject

import "fmt"

// Span is a half-open [Start, End) pair of byte offsets into a document.
// Spans are immutable values produced fresh per resolution.
type Span struct {
	Start int
	End   int
}

// Width returns the number of bytes the span covers.
func (s Span) Width() int {
	return s.End - s.Start
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// ContainsOffset reports whether the offset lies within the span.
// The end offset counts as inside: a cursor sitting on a closing delimiter
// still selects the construct it closes.
func (s Span) ContainsOffset(off int) bool {
	return s.Start <= off && off <= s.End
}

// ContainsSpan reports whether other lies entirely within s.
func (s Span) ContainsSpan(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Request describes one resolution attempt.
type Request struct {
	// Cursor is the byte offset the object must enclose.
	Cursor int

	// Bounds, when non-nil, constrains acceptable matches: the match must
	// contain the whole bounds span, not just the cursor. Visual-mode
	// expansion passes the current selection here.
	Bounds *Span

	// Count selects the Count-th enclosing pair, innermost first.
	// Values below 1 are treated as 1.
	Count int

	// Outer selects the outer variant (contents plus delimiters).
	Outer bool
}

// Anchor returns the region a match must contain: the bounds when present,
// otherwise a zero-width span at the cursor.
func (r Request) Anchor() Span {
	if r.Bounds != nil {
		return *r.Bounds
	}
	return Span{Start: r.Cursor, End: r.Cursor}
}

// EffectiveCount returns Count clamped to a minimum of 1.
func (r Request) EffectiveCount() int {
	if r.Count < 1 {
		return 1
	}
	return r.Count
}
