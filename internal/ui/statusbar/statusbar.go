// Package statusbar renders the bottom status line: vim mode, file name,
// unsaved-change counts, the last text object resolution, and the cursor
// position.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/texel/internal/resolve"
	"github.com/zjrosen/texel/internal/ui/editor"
	"github.com/zjrosen/texel/internal/ui/styles"
)

// Zone IDs for mouse click detection.
const (
	ZoneMode = "statusbar-mode"
	ZoneHelp = "statusbar-help"
)

// Model holds the statusbar state. It is a passive display; the app pushes
// state into it after each update.
type Model struct {
	width int

	mode     editor.Mode
	path     string
	row, col int

	added, removed int

	resolution string
	resError   string
	message    string
}

// New creates a statusbar for the given file.
func New(path string) Model {
	return Model{path: path}
}

// SetWidth sets the render width.
func (m *Model) SetWidth(width int) { m.width = width }

// SetMode updates the displayed vim mode.
func (m *Model) SetMode(mode editor.Mode) { m.mode = mode }

// SetCursor updates the displayed cursor position (0-indexed in, 1-indexed
// out).
func (m *Model) SetCursor(row, col int) { m.row, m.col = row, col }

// SetMessage shows a transient message until the next state push.
func (m *Model) SetMessage(msg string) { m.message = msg }

// SetResolution records the outcome of the last text object command.
func (m *Model) SetResolution(res resolve.Resolution, err error) {
	m.resError = ""
	m.resolution = ""
	if err != nil {
		m.resError = err.Error()
		return
	}
	m.resolution = fmt.Sprintf("%s %s %s", kindLabel(res.Kind), variantLabel(res.Outer), res.Span.String())
}

// ClearResolution drops the resolution segment.
func (m *Model) ClearResolution() {
	m.resolution = ""
	m.resError = ""
}

// SetDiff recomputes the unsaved-change counts from the saved and current
// buffer contents.
func (m *Model) SetDiff(saved, current string) {
	m.added, m.removed = ModifiedCounts(saved, current)
}

// ModifiedCounts returns the number of added and removed lines between two
// buffer states, computed with a line-granular diff.
func ModifiedCounts(saved, current string) (added, removed int) {
	if saved == current {
		return 0, 0
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(saved, current)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if n == 0 && d.Text != "" {
			n = 1
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		}
	}
	return added, removed
}

// View renders the statusbar at the configured width.
func (m Model) View() string {
	badge := zone.Mark(ZoneMode, modeStyle(m.mode).Render(m.mode.String()))

	file := m.path
	if file == "" {
		file = "[no name]"
	}
	if m.added > 0 || m.removed > 0 {
		file += fmt.Sprintf(" [+%d -%d]", m.added, m.removed)
	}

	var mid string
	switch {
	case m.message != "":
		mid = styles.SuccessStyle.Render(m.message)
	case m.resError != "":
		mid = styles.ErrorStyle.Render(m.resError)
	case m.resolution != "":
		mid = styles.MutedStyle.Render(m.resolution)
	}

	pos := fmt.Sprintf("%d:%d", m.row+1, m.col+1)
	help := zone.Mark(ZoneHelp, styles.MutedStyle.Render("?"))

	left := badge + " " + styles.StatusBarStyle.Render(" "+file+" ")
	right := styles.StatusBarStyle.Render(" "+pos+" ") + " " + help

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap-gap/2) + mid + strings.Repeat(" ", gap/2) + right
}

func modeStyle(mode editor.Mode) lipgloss.Style {
	switch mode {
	case editor.ModeInsert:
		return styles.ModeInsertStyle
	case editor.ModeVisual:
		return styles.ModeVisualStyle
	default:
		return styles.ModeNormalStyle
	}
}

func kindLabel(kind rune) string {
	switch kind {
	case '"':
		return "quote"
	case '$':
		return "math"
	case '\\':
		return "display math"
	case 'm':
		return "macro"
	case 'e':
		return "env"
	default:
		return string(kind)
	}
}

func variantLabel(outer bool) string {
	if outer {
		return "outer"
	}
	return "inner"
}
