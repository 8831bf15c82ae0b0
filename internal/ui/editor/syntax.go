package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/texel/internal/ui/styles"
)

// SyntaxToken is a styled region within a line. Start and End are byte
// offsets into the line; tokens must be non-overlapping and sorted by Start.
// Gaps render as plain text.
type SyntaxToken struct {
	Start int
	End   int
	Style lipgloss.Style
}

// SyntaxLexer tokenizes one line for highlighting. Nil or empty means no
// highlighting for that line.
type SyntaxLexer interface {
	Tokenize(line string) []SyntaxToken
}

// TexLexer highlights LaTeX source: comments, macros, environment names,
// math delimiters, and braces. Line-local only; constructs spanning lines
// get their delimiters highlighted without cross-line state.
type TexLexer struct{}

// NewTexLexer creates the LaTeX lexer.
func NewTexLexer() *TexLexer { return &TexLexer{} }

// Tokenize implements SyntaxLexer.
func (l *TexLexer) Tokenize(line string) []SyntaxToken {
	var tokens []SyntaxToken

	i := 0
	for i < len(line) {
		switch line[i] {
		case '%':
			if !escapedAt(line, i) {
				tokens = append(tokens, SyntaxToken{Start: i, End: len(line), Style: styles.TexCommentStyle})
				return tokens
			}
			i++
		case '\\':
			tok, next := l.lexBackslash(line, i)
			if tok != nil {
				tokens = append(tokens, *tok)
			}
			i = next
		case '$':
			if !escapedAt(line, i) {
				tokens = append(tokens, SyntaxToken{Start: i, End: i + 1, Style: styles.TexMathStyle})
			}
			i++
		case '{', '}':
			if !escapedAt(line, i) {
				tokens = append(tokens, SyntaxToken{Start: i, End: i + 1, Style: styles.TexBraceStyle})
			}
			i++
		default:
			i++
		}
	}
	return tokens
}

// lexBackslash lexes the construct starting at the backslash and returns
// its token plus the offset to resume at.
func (l *TexLexer) lexBackslash(line string, i int) (*SyntaxToken, int) {
	rest := line[i:]

	// Bracket math delimiters
	for _, delim := range []string{`\[`, `\]`, `\(`, `\)`} {
		if strings.HasPrefix(rest, delim) {
			return &SyntaxToken{Start: i, End: i + 2, Style: styles.TexMathStyle}, i + 2
		}
	}

	// \begin{name} and \end{name} highlight through the name group
	for _, kw := range []string{`\begin{`, `\end{`} {
		if strings.HasPrefix(rest, kw) {
			closing := strings.IndexByte(rest[len(kw):], '}')
			if closing >= 0 {
				end := i + len(kw) + closing + 1
				return &SyntaxToken{Start: i, End: end, Style: styles.TexEnvStyle}, end
			}
		}
	}

	// Plain macro: backslash plus name run
	j := i + 1
	for j < len(line) && isTexNameByte(line[j]) {
		j++
	}
	if j > i+1 {
		return &SyntaxToken{Start: i, End: j, Style: styles.TexMacroStyle}, j
	}

	// Control symbol like \% or \\: skip both bytes, no token
	if j < len(line) {
		return nil, j + 1
	}
	return nil, j
}

func isTexNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '@' || b == '*'
}

// escapedAt reports whether the byte at i is preceded by an odd number of
// backslashes.
func escapedAt(line string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
