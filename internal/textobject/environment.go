package textobject

// EnvironmentResolver resolves the \begin{name}…\end{name} block enclosing
// the cursor. Pairing of balanced begin/end blocks, including nesting of
// same-named environments, is the boundary scanner's responsibility.
type EnvironmentResolver struct {
	text Text
	scan BoundaryScanner
}

// NewEnvironmentResolver creates a resolver over one document snapshot.
func NewEnvironmentResolver(text Text, scan BoundaryScanner) *EnvironmentResolver {
	return &EnvironmentResolver{text: text, scan: scan}
}

// beginEnd returns the offset just past the \begin{name} delimiter macro:
// forward from the begin backslash to the first brace, then across the
// balanced name group.
func (r *EnvironmentResolver) beginEnd(beginStart int) (int, bool) {
	i := beginStart
	for i < r.text.Len() && r.text.ByteAt(i) != '{' {
		i++
	}
	if i == r.text.Len() {
		return 0, false
	}
	closeBrace, ok := r.scan.BalancedForward(i)
	if !ok {
		return 0, false
	}
	return closeBrace + 1, true
}

// endStart returns the offset of the \end delimiter macro's backslash:
// backward from the closing brace across the name group, then to the
// preceding backslash.
func (r *EnvironmentResolver) endStart(endBrace int) (int, bool) {
	openBrace, ok := r.scan.BalancedBackward(endBrace)
	if !ok {
		return 0, false
	}
	for i := openBrace - 1; i >= 0; i-- {
		if r.text.ByteAt(i) == '\\' {
			return i, true
		}
	}
	return 0, false
}

// Outer resolves the whole block including both delimiter macros.
func (r *EnvironmentResolver) Outer(req Request) (Span, error) {
	beginStart, ok := r.scan.EnvBegin(req.Cursor)
	if !ok {
		return Span{}, ErrNotFound
	}
	endBrace, ok := r.scan.EnvEnd(req.Cursor)
	if !ok {
		return Span{}, ErrNotFound
	}
	return Span{Start: beginStart, End: endBrace + 1}, nil
}

// Inner resolves everything strictly between the two delimiter macros.
// An empty body yields a zero-width span; that is not an error.
func (r *EnvironmentResolver) Inner(req Request) (Span, error) {
	beginStart, ok := r.scan.EnvBegin(req.Cursor)
	if !ok {
		return Span{}, ErrNotFound
	}
	endBrace, ok := r.scan.EnvEnd(req.Cursor)
	if !ok {
		return Span{}, ErrNotFound
	}

	innerStart, ok := r.beginEnd(beginStart)
	if !ok {
		return Span{}, ErrNotFound
	}
	innerEnd, ok := r.endStart(endBrace)
	if !ok {
		return Span{}, ErrNotFound
	}
	return Span{Start: innerStart, End: innerEnd}, nil
}
