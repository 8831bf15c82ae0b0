package document

import (
	"errors"
	"sort"
	"strings"

	"github.com/zjrosen/texel/internal/textobject"
)

// ErrNoMatch is returned by the matcher when a delimiter shape does not
// enclose the requested position. BlockSelector swallows it; it never
// reaches a user.
var ErrNoMatch = errors.New("delimiter pair does not enclose position")

// escaped reports whether the byte at off is preceded by an odd number of
// backslashes.
func (s *Snapshot) escaped(off int) bool {
	count := 0
	for i := off - 1; i >= 0 && s.text[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}

// delimPair is one open/close token pair. outer covers both tokens, inner
// the bytes strictly between them.
type delimPair struct {
	outer textobject.Span
	inner textobject.Span
}

// pick returns the req.Count-th innermost pair (by outer width) whose outer
// span contains the request anchor.
func pick(pairs []delimPair, req textobject.Request) (textobject.Span, error) {
	anchor := req.Anchor()

	var enclosing []delimPair
	for _, p := range pairs {
		if p.outer.ContainsSpan(anchor) {
			enclosing = append(enclosing, p)
		}
	}
	sort.SliceStable(enclosing, func(i, j int) bool {
		return enclosing[i].outer.Width() < enclosing[j].outer.Width()
	})

	idx := req.EffectiveCount() - 1
	if idx >= len(enclosing) {
		return textobject.Span{}, ErrNoMatch
	}
	if req.Outer {
		return enclosing[idx].outer, nil
	}
	return enclosing[idx].inner, nil
}

// MatchSymmetric implements textobject.Matcher for single-character
// symmetric delimiters. Unescaped occurrences are paired left to right;
// when the anchor sits inside none of those pairs but strictly between two
// delimiters, that surrounding pair is used instead. This keeps cases like
// `some" "words"` reachable from inside "words".
func (s *Snapshot) MatchSymmetric(delim byte, req textobject.Request) (textobject.Span, error) {
	var positions []int
	for i := 0; i < len(s.text); i++ {
		if s.text[i] == delim && !s.escaped(i) {
			positions = append(positions, i)
		}
	}
	if len(positions) < 2 {
		return textobject.Span{}, ErrNoMatch
	}

	var pairs []delimPair
	for i := 0; i+1 < len(positions); i += 2 {
		pairs = append(pairs, delimPair{
			outer: textobject.Span{Start: positions[i], End: positions[i+1] + 1},
			inner: textobject.Span{Start: positions[i] + 1, End: positions[i+1]},
		})
	}

	span, err := pick(pairs, req)
	if err == nil {
		return span, nil
	}

	// Contextual fallback: nearest delimiter on each side of the anchor.
	anchor := req.Anchor()
	left, right := -1, -1
	for _, pos := range positions {
		if pos < anchor.Start {
			left = pos
		}
	}
	for _, pos := range positions {
		if pos >= anchor.End && pos > left {
			right = pos
			break
		}
	}
	if left == -1 || right == -1 {
		return textobject.Span{}, ErrNoMatch
	}
	fallback := delimPair{
		outer: textobject.Span{Start: left, End: right + 1},
		inner: textobject.Span{Start: left + 1, End: right},
	}
	return pick([]delimPair{fallback}, req)
}

// MatchPaired implements textobject.Matcher for distinct open/close tokens.
// Tokens are matched literally with escape awareness and stack-paired, so
// nesting works; the Count-th innermost enclosing pair wins.
func (s *Snapshot) MatchPaired(open, close string, req textobject.Request) (textobject.Span, error) {
	type token struct {
		off  int
		open bool
	}

	var tokens []token
	for i := 0; i < len(s.text); {
		switch {
		case strings.HasPrefix(s.text[i:], open) && !s.escaped(i):
			tokens = append(tokens, token{off: i, open: true})
			i += len(open)
		case strings.HasPrefix(s.text[i:], close) && !s.escaped(i):
			tokens = append(tokens, token{off: i, open: false})
			i += len(close)
		default:
			i++
		}
	}

	var stack []int
	var pairs []delimPair
	for _, t := range tokens {
		if t.open {
			stack = append(stack, t.off)
			continue
		}
		if len(stack) == 0 {
			continue // unmatched close, ignore
		}
		openOff := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pairs = append(pairs, delimPair{
			outer: textobject.Span{Start: openOff, End: t.off + len(close)},
			inner: textobject.Span{Start: openOff + len(open), End: t.off},
		})
	}

	return pick(pairs, req)
}
