package document

import "strings"

// boundary.go implements textobject.BoundaryScanner over a snapshot.
// All scans are pure queries against the snapshot text; malformed input
// (unbalanced braces, unpaired begin/end) reports ok=false rather than a
// partial offset.

func isMacroNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '@' || b == '*'
}

// extent is one macro invocation: backslash through the end of its last
// balanced argument group.
type extent struct {
	start int // offset of the backslash
	end   int // offset just past the invocation
}

// macroExtents enumerates every macro invocation in the document. An
// invocation is an unescaped backslash, a non-empty run of name bytes, and
// any immediately following balanced {…} or […] groups. Extents nest when
// macros appear inside argument groups.
func (s *Snapshot) macroExtents() []extent {
	var extents []extent
	for i := 0; i < len(s.text); i++ {
		if s.text[i] != '\\' || s.escaped(i) {
			continue
		}
		j := i + 1
		for j < len(s.text) && isMacroNameByte(s.text[j]) {
			j++
		}
		if j == i+1 {
			continue // control symbol like \[ or \\, not a named macro
		}
		for j < len(s.text) {
			var end int
			var ok bool
			switch s.text[j] {
			case '{':
				end, ok = s.BalancedForward(j)
			case '[':
				end, ok = s.matchForward(j, '[', ']')
			default:
				ok = false
			}
			if !ok {
				break
			}
			j = end + 1
		}
		extents = append(extents, extent{start: i, end: j})
	}
	return extents
}

// innermostExtent returns the tightest macro extent covering cursor.
func (s *Snapshot) innermostExtent(cursor int) (extent, bool) {
	var best extent
	found := false
	for _, e := range s.macroExtents() {
		if e.start <= cursor && cursor < e.end {
			if !found || e.start > best.start {
				best = e
				found = true
			}
		}
	}
	return best, found
}

// MacroStart implements textobject.BoundaryScanner.
func (s *Snapshot) MacroStart(cursor int) (int, bool) {
	e, ok := s.innermostExtent(cursor)
	return e.start, ok
}

// MacroEnd implements textobject.BoundaryScanner.
func (s *Snapshot) MacroEnd(cursor int) (int, bool) {
	e, ok := s.innermostExtent(cursor)
	return e.end, ok
}

// envToken is one \begin{name} or \end{name} delimiter macro.
type envToken struct {
	start      int    // offset of the backslash
	closeBrace int    // offset of the name group's closing brace
	name       string // environment name
	begin      bool
}

// envTokens enumerates begin/end delimiter macros in document order.
func (s *Snapshot) envTokens() []envToken {
	var tokens []envToken
	for i := 0; i < len(s.text); i++ {
		if s.text[i] != '\\' || s.escaped(i) {
			continue
		}
		rest := s.text[i+1:]
		var kw string
		switch {
		case strings.HasPrefix(rest, "begin{"):
			kw = "begin"
		case strings.HasPrefix(rest, "end{"):
			kw = "end"
		default:
			continue
		}
		braceOpen := i + 1 + len(kw)
		closeBrace, ok := s.BalancedForward(braceOpen)
		if !ok {
			continue
		}
		tokens = append(tokens, envToken{
			start:      i,
			closeBrace: closeBrace,
			name:       s.text[braceOpen+1 : closeBrace],
			begin:      kw == "begin",
		})
	}
	return tokens
}

// envPair is one matched \begin{name}…\end{name} block.
type envPair struct {
	beginStart int // backslash of \begin
	endBrace   int // closing brace of \end{name}
}

// envPairs stack-matches begin/end tokens. Same-named nesting pairs
// correctly; an \end whose name does not match the innermost open \begin is
// skipped, so malformed regions simply produce no pair.
func (s *Snapshot) envPairs() []envPair {
	var stack []envToken
	var pairs []envPair
	for _, t := range s.envTokens() {
		if t.begin {
			stack = append(stack, t)
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1].name != t.name {
			continue
		}
		open := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pairs = append(pairs, envPair{beginStart: open.start, endBrace: t.closeBrace})
	}
	return pairs
}

// innermostEnv returns the tightest environment enclosing cursor. A cursor
// on the final closing brace still counts as inside.
func (s *Snapshot) innermostEnv(cursor int) (envPair, bool) {
	var best envPair
	found := false
	for _, p := range s.envPairs() {
		if p.beginStart <= cursor && cursor <= p.endBrace {
			if !found || p.beginStart > best.beginStart {
				best = p
				found = true
			}
		}
	}
	return best, found
}

// EnvBegin implements textobject.BoundaryScanner.
func (s *Snapshot) EnvBegin(cursor int) (int, bool) {
	p, ok := s.innermostEnv(cursor)
	return p.beginStart, ok
}

// EnvEnd implements textobject.BoundaryScanner.
func (s *Snapshot) EnvEnd(cursor int) (int, bool) {
	p, ok := s.innermostEnv(cursor)
	return p.endBrace, ok
}

// BalancedForward implements textobject.BoundaryScanner for brace groups.
func (s *Snapshot) BalancedForward(openBrace int) (int, bool) {
	return s.matchForward(openBrace, '{', '}')
}

// BalancedBackward implements textobject.BoundaryScanner for brace groups.
func (s *Snapshot) BalancedBackward(closeBrace int) (int, bool) {
	if closeBrace < 0 || closeBrace >= len(s.text) || s.text[closeBrace] != '}' {
		return 0, false
	}
	depth := 0
	for i := closeBrace; i >= 0; i-- {
		if s.escaped(i) {
			continue
		}
		switch s.text[i] {
		case '}':
			depth++
		case '{':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// matchForward scans from an opening delimiter to its unescaped matching
// close, tracking nesting depth.
func (s *Snapshot) matchForward(open int, openByte, closeByte byte) (int, bool) {
	if open < 0 || open >= len(s.text) || s.text[open] != openByte {
		return 0, false
	}
	depth := 0
	for i := open; i < len(s.text); i++ {
		if s.escaped(i) {
			continue
		}
		switch s.text[i] {
		case openByte:
			depth++
		case closeByte:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
