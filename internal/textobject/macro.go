package textobject

// MacroResolver resolves the macro invocation \name{…} or \name[…]
// enclosing the cursor.
type MacroResolver struct {
	text Text
	scan BoundaryScanner
}

// NewMacroResolver creates a resolver over one document snapshot.
func NewMacroResolver(text Text, scan BoundaryScanner) *MacroResolver {
	return &MacroResolver{text: text, scan: scan}
}

// macroStart describes the leading boundary of an invocation.
type macroStart struct {
	backslash int // offset of the leading backslash
	nameEnd   int // offset just past the macro name
	afterOpen int // offset just past a single { or [, or nameEnd when absent
}

// macroEnd describes the trailing boundary of an invocation.
type macroEnd struct {
	beforeClose int // offset of a trailing } or ], or end when absent
	end         int // offset just past the invocation
}

func isMacroNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '@' || b == '*'
}

func (r *MacroResolver) start(cursor int) (macroStart, bool) {
	off, ok := r.scan.MacroStart(cursor)
	if !ok {
		return macroStart{}, false
	}

	i := off + 1 // skip the backslash
	for i < r.text.Len() && isMacroNameByte(r.text.ByteAt(i)) {
		i++
	}

	s := macroStart{backslash: off, nameEnd: i, afterOpen: i}
	if i < r.text.Len() && (r.text.ByteAt(i) == '{' || r.text.ByteAt(i) == '[') {
		s.afterOpen = i + 1
	}
	return s, true
}

func (r *MacroResolver) end(cursor int) (macroEnd, bool) {
	off, ok := r.scan.MacroEnd(cursor)
	if !ok {
		return macroEnd{}, false
	}

	e := macroEnd{beforeClose: off, end: off}
	if off > 0 {
		if b := r.text.ByteAt(off - 1); b == '}' || b == ']' {
			e.beforeClose = off - 1
		}
	}
	return e, true
}

// Outer resolves the whole invocation, backslash through closing delimiter.
func (r *MacroResolver) Outer(req Request) (Span, error) {
	s, ok := r.start(req.Cursor)
	if !ok {
		return Span{}, ErrNotFound
	}
	e, ok := r.end(req.Cursor)
	if !ok {
		return Span{}, ErrNotFound
	}
	return Span{Start: s.backslash, End: e.end}, nil
}

// Inner resolves the argument contents, delimiters excluded.
//
// When the boundaries collapse (bare \foo, or an empty argument \foo{}),
// the inner span is the macro name without the backslash. Selecting inner
// on a contentless macro selects the name rather than nothing.
func (r *MacroResolver) Inner(req Request) (Span, error) {
	s, ok := r.start(req.Cursor)
	if !ok {
		return Span{}, ErrNotFound
	}
	e, ok := r.end(req.Cursor)
	if !ok {
		return Span{}, ErrNotFound
	}

	if s.afterOpen == e.beforeClose {
		return Span{Start: s.backslash + 1, End: s.nameEnd}, nil
	}
	return Span{Start: s.afterOpen, End: e.beforeClose}, nil
}
