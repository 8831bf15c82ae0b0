package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/texel/internal/document"
	"github.com/zjrosen/texel/internal/resolve"
)

func newEditor(t *testing.T, text string) Model {
	t.Helper()
	svc := resolve.NewService(document.NewSnapshot(text))
	m := New(Config{Path: "test.tex", TabWidth: 4}, text, svc)
	m.SetSize(80, 24)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// press feeds a key sequence; multi-rune entries other than the named keys
// are split into individual key presses.
func press(m Model, keys ...string) Model {
	for _, k := range keys {
		switch k {
		case "esc", "enter", "backspace", "space":
			m, _ = m.Update(keyMsg(k))
		default:
			for _, r := range k {
				m, _ = m.Update(keyMsg(string(r)))
			}
		}
	}
	return m
}

func TestMotion_Basics(t *testing.T) {
	m := newEditor(t, "abc\ndef\nghi")

	m = press(m, "ll")
	_, col := m.Cursor()
	assert.Equal(t, 2, col)

	m = press(m, "j")
	row, col := m.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)

	m = press(m, "0")
	_, col = m.Cursor()
	assert.Equal(t, 0, col)

	m = press(m, "$")
	_, col = m.Cursor()
	assert.Equal(t, 2, col)

	m = press(m, "G")
	row, _ = m.Cursor()
	assert.Equal(t, 2, row)

	m = press(m, "gg")
	row, _ = m.Cursor()
	assert.Equal(t, 0, row)
}

func TestMotion_WordForwardBackward(t *testing.T) {
	m := newEditor(t, "foo bar baz")

	m = press(m, "w")
	_, col := m.Cursor()
	assert.Equal(t, 4, col)

	m = press(m, "w")
	_, col = m.Cursor()
	assert.Equal(t, 8, col)

	m = press(m, "b")
	_, col = m.Cursor()
	assert.Equal(t, 4, col)
}

func TestMotion_CountPrefix(t *testing.T) {
	m := newEditor(t, "abcdefgh")

	m = press(m, "3l")
	_, col := m.Cursor()
	assert.Equal(t, 3, col)
}

func TestInsert_TypeAndEscape(t *testing.T) {
	m := newEditor(t, "world")

	m = press(m, "i")
	assert.Equal(t, ModeInsert, m.Mode())

	m = press(m, "hi", "space")
	m = press(m, "esc")

	assert.Equal(t, ModeNormal, m.Mode())
	assert.Equal(t, "hi world", m.Text())
	assert.True(t, m.Modified())
}

func TestInsert_EnterSplitsLine(t *testing.T) {
	m := newEditor(t, "abcd")

	m = press(m, "ll", "i", "enter", "esc")

	assert.Equal(t, "ab\ncd", m.Text())
	row, _ := m.Cursor()
	assert.Equal(t, 1, row)
}

func TestInsert_Backspace(t *testing.T) {
	m := newEditor(t, "abc")

	m = press(m, "A", "backspace", "esc")

	assert.Equal(t, "ab", m.Text())
}

func TestNormal_DeleteGrapheme(t *testing.T) {
	m := newEditor(t, "abc")

	m = press(m, "x")
	assert.Equal(t, "bc", m.Text())

	m = press(m, "2x")
	assert.Equal(t, "", m.Text())
}

func TestNormal_DeleteLineAndPaste(t *testing.T) {
	m := newEditor(t, "one\ntwo\nthree")

	m = press(m, "dd")
	assert.Equal(t, "two\nthree", m.Text())

	m = press(m, "yy")
	m = press(m, "p")
	assert.Equal(t, "two\ntwo\nthree", m.Text())
	row, col := m.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)
}

func TestTextObject_DeleteInnerQuote(t *testing.T) {
	text := `say "hello" now`
	m := newEditor(t, text)
	m = press(m, strings.Repeat("l", 7)) // cursor inside hello

	m = press(m, `di"`)

	assert.Equal(t, `say "" now`, m.Text())
	assert.Equal(t, "hello", m.yanked)
}

func TestTextObject_DeleteAroundQuote(t *testing.T) {
	text := `say "hello" now`
	m := newEditor(t, text)
	m = press(m, strings.Repeat("l", 7))

	m = press(m, `da"`)

	assert.Equal(t, `say  now`, m.Text())
}

func TestTextObject_ChangeInnerMacroEntersInsert(t *testing.T) {
	text := `see \emph{word} here`
	m := newEditor(t, text)
	m = press(m, strings.Repeat("l", 11)) // inside word

	m = press(m, "cim")

	assert.Equal(t, `see \emph{} here`, m.Text())
	assert.Equal(t, ModeInsert, m.Mode())
}

func TestTextObject_YankInnerEnvironment(t *testing.T) {
	text := `\begin{itemize}\item one\end{itemize}`
	m := newEditor(t, text)
	m = press(m, strings.Repeat("l", 17)) // inside body

	m = press(m, "yie")

	assert.Equal(t, `\item one`, m.yanked)
	assert.Equal(t, text, m.Text(), "yank must not mutate the buffer")
}

func TestTextObject_DeleteOuterDollarMath(t *testing.T) {
	text := `x $a+b$ y`
	m := newEditor(t, text)
	m = press(m, strings.Repeat("l", 4))

	m = press(m, "da$")

	assert.Equal(t, "x  y", m.Text())
}

func TestTextObject_FailureLeavesBufferUntouched(t *testing.T) {
	text := "plain prose only"
	m := newEditor(t, text)
	m = press(m, "lll")

	m = press(m, `di"`)

	assert.Equal(t, text, m.Text())
	assert.Equal(t, ModeNormal, m.Mode())
}

func TestVisual_SelectInnerQuoteAndDelete(t *testing.T) {
	text := `say "hello" now`
	m := newEditor(t, text)
	m = press(m, strings.Repeat("l", 7))

	m = press(m, `vi"`)
	assert.Equal(t, ModeVisual, m.Mode())

	sel, ok := m.selectionSpan()
	require.True(t, ok)
	assert.Equal(t, "hello", m.Snapshot().Slice(sel))

	m = press(m, "d")
	assert.Equal(t, `say "" now`, m.Text())
	assert.Equal(t, ModeNormal, m.Mode())
}

func TestVisual_RepeatedObjectExpandsOutward(t *testing.T) {
	text := `\( a \( b \) c \)`
	m := newEditor(t, text)
	m = press(m, strings.Repeat("l", 8)) // on b

	m = press(m, `vi\`)
	sel, ok := m.selectionSpan()
	require.True(t, ok)
	assert.Equal(t, " b ", m.Snapshot().Slice(sel))

	m = press(m, `i\`)
	sel, ok = m.selectionSpan()
	require.True(t, ok)
	assert.Equal(t, ` a \( b \) c `, m.Snapshot().Slice(sel))
}

func TestVisual_MotionGrowsSelection(t *testing.T) {
	m := newEditor(t, "abcdef")

	m = press(m, "v", "lll")
	sel, ok := m.selectionSpan()
	require.True(t, ok)
	assert.Equal(t, "abcd", m.Snapshot().Slice(sel))

	m = press(m, "y")
	assert.Equal(t, "abcd", m.yanked)
	assert.Equal(t, ModeNormal, m.Mode())
}

func TestReplaceText_ResetsModifiedFlag(t *testing.T) {
	m := newEditor(t, "old")
	m = press(m, "x")
	require.True(t, m.Modified())

	m.ReplaceText("reloaded")

	assert.False(t, m.Modified())
	assert.Equal(t, "reloaded", m.Text())
}

func TestCursorOffset_MultibyteLine(t *testing.T) {
	m := newEditor(t, "héllo")

	m = press(m, "ll")

	// h=1 byte, é=2 bytes
	assert.Equal(t, 3, m.CursorOffset())
}
