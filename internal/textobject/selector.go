package textobject

// Select resolves an ambiguous object kind by trying every candidate in
// enumeration order and keeping the narrowest span that encloses the
// request's anchor (its bounds, or the bare cursor).
//
// A matcher failure for one candidate is swallowed: it means that delimiter
// shape does not enclose the cursor here. A later candidate replaces the
// current best only when it is strictly narrower, so candidate order breaks
// ties. Select fails with ErrNotFound when no candidate matches.
func Select(m Matcher, candidates []Candidate, req Request) (Span, error) {
	anchor := req.Anchor()

	var best Span
	found := false
	for _, c := range candidates {
		span, err := c.match(m, req)
		if err != nil {
			continue
		}
		if !span.ContainsSpan(anchor) {
			continue
		}
		if !found || span.Width() < best.Width() {
			best = span
			found = true
		}
	}

	if !found {
		return Span{}, ErrNotFound
	}
	return best, nil
}
