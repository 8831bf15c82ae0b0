// Package help renders the keybinding reference overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/texel/internal/ui/styles"
)

// content is the keybinding reference, rendered through glamour.
const content = `# texel

## Modes

| Key | Action |
| --- | --- |
| i a I A o O | enter insert mode |
| v | enter visual mode |
| esc | back to normal mode |

## Motions

| Key | Action |
| --- | --- |
| h j k l | move cursor |
| w b | word forward / backward |
| 0 $ | line start / end |
| gg G | first / last line |

## Text objects

Operators d (delete), y (yank), c (change) combine with i (inner) or
a (around) and an object key:

| Key | Object |
| --- | --- |
| " | quoted text, TeX ` + "``...''" + ` or "..." |
| $ | inline math $...$ |
| \ | display math \[...\] or \(...\) |
| m | macro \name{...} |
| e | environment \begin{...}...\end{...} |

In visual mode, i/a plus an object key expands the selection to the
object; pressing it again grows to the next enclosing one.

## Files

| Key | Action |
| --- | --- |
| ctrl+s | save |
| ctrl+g | toggle this help |
| ctrl+c | quit |
`

// noMarginStyle removes glamour's document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

var borderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(styles.HighlightColor).
	Padding(0, 1)

// Model is the help overlay: glamour-rendered markdown in a viewport.
type Model struct {
	vp      viewport.Model
	visible bool
	width   int
	height  int
}

// New creates a hidden help overlay.
func New() Model {
	return Model{vp: viewport.New(0, 0)}
}

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool { return m.visible }

// Toggle flips visibility, re-rendering the content at the current size.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.render()
	}
}

// SetSize sets the available screen area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.visible {
		m.render()
	}
}

func (m *Model) render() {
	innerWidth := max(m.width-6, 20)
	m.vp.Width = innerWidth
	m.vp.Height = max(m.height-4, 5)

	rendered, err := renderMarkdown(content, innerWidth)
	if err != nil {
		// Glamour failure degrades to plain wrapped text.
		rendered = wordwrap.String(content, innerWidth)
	}
	m.vp.SetContent(rendered)
	m.vp.GotoTop()
}

func renderMarkdown(md string, width int) (string, error) {
	// DarkStyle instead of WithAutoStyle: auto style queries the terminal
	// and the response leaks into the input stream.
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// Update scrolls the viewport while the overlay is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View renders the overlay.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	body := strings.TrimRight(m.vp.View(), "\n")
	return borderStyle.Render(body)
}
