package textobject

// Text provides read-only access to an immutable document snapshot.
type Text interface {
	// Len returns the document length in bytes.
	Len() int

	// ByteAt returns the byte at the given offset. Offset must be in [0, Len).
	ByteAt(off int) byte
}

// Matcher is the single-pair delimiter matcher. Given one delimiter shape
// and a request, it attempts to produce the enclosing span for that shape.
// A failed match is an expected outcome, not a fatal error: it means this
// delimiter kind does not enclose the cursor here.
type Matcher interface {
	// MatchSymmetric matches one symmetric delimiter character, e.g. " or $.
	MatchSymmetric(delim byte, req Request) (Span, error)

	// MatchPaired matches one open/close token pair, e.g. \[ and \].
	MatchPaired(open, close string, req Request) (Span, error)
}

// BoundaryScanner locates macro and environment boundaries relative to a
// position. Implementations scan balanced-brace structure; they must fail
// closed (ok=false) on malformed input rather than return partial offsets.
type BoundaryScanner interface {
	// MacroStart returns the backslash offset of the nearest macro
	// invocation whose extent covers cursor, at or before it.
	MacroStart(cursor int) (off int, ok bool)

	// MacroEnd returns the offset just past that invocation's extent,
	// at or after cursor.
	MacroEnd(cursor int) (off int, ok bool)

	// EnvBegin returns the backslash offset of the matching \begin for
	// the innermost environment enclosing cursor.
	EnvBegin(cursor int) (off int, ok bool)

	// EnvEnd returns the offset of the matching \end's closing brace.
	EnvEnd(cursor int) (off int, ok bool)

	// BalancedForward scans from an opening brace to its matching closing
	// brace and returns the closing brace's offset.
	BalancedForward(openBrace int) (off int, ok bool)

	// BalancedBackward scans from a closing brace to its matching opening
	// brace and returns the opening brace's offset.
	BalancedBackward(closeBrace int) (off int, ok bool)
}
