package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/texel/internal/ui/styles"
)

// ANSI codes for cursor and selection. The cursor uses reverse video; the
// selection a dim gray background so the two stay distinguishable.
const (
	cursorOn     = "\x1b[7m"
	cursorOff    = "\x1b[27m"
	selectionOn  = "\x1b[48;5;238;38;5;255m"
	selectionOff = "\x1b[49;39m"
)

// View renders the visible window of the buffer.
func (m Model) View() string {
	if m.snap.Len() == 0 {
		return m.renderEmpty()
	}

	height := m.height
	if height <= 0 {
		height = m.snap.LineCount()
	}

	gutterWidth := 0
	if m.cfg.ShowLineNumbers {
		gutterWidth = len(fmt.Sprint(m.snap.LineCount())) + 1
	}

	var out []string
	for row := m.scrollOffset; row < m.snap.LineCount() && len(out) < height; row++ {
		line := m.renderLine(row)
		if m.cfg.ShowLineNumbers {
			num := styles.LineNumberStyle.Render(fmt.Sprintf("%*d ", gutterWidth-1, row+1))
			line = num + line
		}
		if m.width > 0 {
			line = ansi.Truncate(line, m.width, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m Model) renderEmpty() string {
	if m.focused {
		return cursorOn + " " + cursorOff
	}
	return styles.PlaceholderStyle.Render("[empty]")
}

// renderLine styles one logical line grapheme by grapheme: syntax color as
// the base layer, selection behind it, cursor on top.
func (m Model) renderLine(row int) string {
	line := m.snap.Line(row)

	var tokens []SyntaxToken
	if m.cfg.Lexer != nil {
		tokens = m.cfg.Lexer.Tokenize(line)
	}

	selStart, selEnd := m.selectionOnLine(row)
	cursorHere := m.focused && row == m.cursorRow

	if line == "" {
		switch {
		case cursorHere:
			return cursorOn + " " + cursorOff
		case selStart == 0 && selEnd > 0:
			return selectionOn + " " + selectionOff
		default:
			return " "
		}
	}

	var b strings.Builder
	col := 0
	bytePos := 0
	for _, cluster := range graphemes(line) {
		display := cluster
		if cluster == "\t" {
			display = strings.Repeat(" ", m.cfg.TabWidth)
		}

		switch {
		case cursorHere && col == m.cursorCol:
			b.WriteString(cursorOn + display + cursorOff)
		case col >= selStart && col < selEnd:
			b.WriteString(selectionOn + display + selectionOff)
		default:
			b.WriteString(styleFor(tokens, bytePos).Render(display))
		}

		col++
		bytePos += len(cluster)
	}

	// Cursor past the last grapheme (insert mode at end of line)
	if cursorHere && m.cursorCol >= col {
		b.WriteString(cursorOn + " " + cursorOff)
	}
	return b.String()
}

// selectionOnLine returns the selected grapheme column range [start, end)
// on row, or (0, 0) when nothing on the row is selected.
func (m Model) selectionOnLine(row int) (int, int) {
	if m.mode != ModeVisual {
		return 0, 0
	}

	aRow, aCol := m.visualAnchor[0], m.visualAnchor[1]
	bRow, bCol := m.cursorRow, m.cursorCol
	if aRow > bRow || (aRow == bRow && aCol > bCol) {
		aRow, aCol, bRow, bCol = bRow, bCol, aRow, aCol
	}
	if row < aRow || row > bRow {
		return 0, 0
	}

	start := 0
	if row == aRow {
		start = aCol
	}
	end := GraphemeCount(m.snap.Line(row)) + 1
	if row == bRow {
		end = bCol + 1
	}
	return start, end
}

// styleFor finds the syntax style covering a byte position. Tokens are
// sorted, but the list is short enough that a linear scan wins.
func styleFor(tokens []SyntaxToken, bytePos int) lipgloss.Style {
	for _, tok := range tokens {
		if bytePos >= tok.Start && bytePos < tok.End {
			return tok.Style
		}
	}
	return lipgloss.NewStyle()
}

// scrollCursorIntoView adjusts the scroll offset so the cursor row stays
// visible.
func (m *Model) scrollCursorIntoView() {
	if m.height <= 0 {
		return
	}
	if m.cursorRow < m.scrollOffset {
		m.scrollOffset = m.cursorRow
	}
	if m.cursorRow >= m.scrollOffset+m.height {
		m.scrollOffset = m.cursorRow - m.height + 1
	}
}
