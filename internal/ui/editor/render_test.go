package editor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

// Pin the color profile so rendered output is byte-stable regardless of
// the terminal the tests run in.
func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func TestView_ShowsBufferLines(t *testing.T) {
	m := newEditor(t, "first\nsecond\nthird")
	m.cfg.ShowLineNumbers = false

	view := m.View()

	assert.Contains(t, view, "first")
	assert.Contains(t, view, "second")
	assert.Contains(t, view, "third")
}

func TestView_LineNumbers(t *testing.T) {
	m := newEditor(t, "alpha\nbeta")
	m.cfg.ShowLineNumbers = true

	view := m.View()

	assert.Contains(t, view, "1")
	assert.Contains(t, view, "2")
	assert.Contains(t, view, "alpha")
}

func TestView_CursorUsesReverseVideo(t *testing.T) {
	m := newEditor(t, "abc")
	m.cfg.ShowLineNumbers = false

	view := m.View()

	assert.Contains(t, view, cursorOn+"a"+cursorOff)
}

func TestView_SelectionHighlight(t *testing.T) {
	m := newEditor(t, "abcdef")
	m.cfg.ShowLineNumbers = false
	m = press(m, "v", "ll") // select abc

	view := m.View()

	assert.Contains(t, view, selectionOn+"a"+selectionOff)
	assert.Contains(t, view, selectionOn+"b"+selectionOff)
	// cursor grapheme rendered as cursor, not selection
	assert.Contains(t, view, cursorOn+"c"+cursorOff)
}

func TestView_ScrollKeepsCursorVisible(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	m := newEditor(t, strings.Join(lines, "\n"))
	m.SetSize(80, 10)

	m = press(m, "G")

	assert.GreaterOrEqual(t, m.scrollOffset, 40)
	assert.LessOrEqual(t, m.scrollOffset, 49)
}

func TestView_EmptyBuffer(t *testing.T) {
	m := newEditor(t, "")

	view := m.View()

	assert.Contains(t, view, cursorOn)
}

func TestView_TabExpansion(t *testing.T) {
	m := newEditor(t, "a\tb")
	m.cfg.ShowLineNumbers = false
	m.cfg.TabWidth = 4
	m = press(m, "$") // move cursor off the tab

	view := m.View()

	assert.Contains(t, view, "    ")
}
