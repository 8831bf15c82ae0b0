package editor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/texel/internal/document"
	"github.com/zjrosen/texel/internal/log"
	"github.com/zjrosen/texel/internal/resolve"
)

// Config defines editor configuration.
type Config struct {
	// Path is the file the buffer was loaded from, for display only.
	Path string

	// TabWidth is the display width of a tab stop.
	TabWidth int

	// ShowLineNumbers toggles the line number gutter.
	ShowLineNumbers bool

	// Lexer highlights lines. Nil disables highlighting.
	Lexer SyntaxLexer
}

// pendingOp accumulates a multi-key normal mode command: an optional count,
// an operator (d, y, c), and the i/a scope awaiting its object key.
type pendingOp struct {
	count int
	op    byte
	scope byte
}

func (p pendingOp) effectiveCount() int {
	if p.count < 1 {
		return 1
	}
	return p.count
}

// Model holds the editor state. The buffer lives in an immutable document
// snapshot; every edit produces the next revision and rebinds the
// resolution service.
type Model struct {
	cfg  Config
	snap *document.Snapshot
	svc  *resolve.Service

	savedText string

	mode         Mode
	cursorRow    int
	cursorCol    int // grapheme index within the line
	preferredCol int

	pending      pendingOp
	visualAnchor [2]int // row, col where visual selection started

	yanked         string
	yankedLinewise bool
	lastResolution *resolve.Resolution

	width        int
	height       int
	scrollOffset int
	focused      bool
}

// ContentChangedMsg is emitted when the buffer text changes.
type ContentChangedMsg struct {
	Revision uint64
}

// ModeChangedMsg is emitted when the vim mode changes.
type ModeChangedMsg struct {
	Mode     Mode
	Previous Mode
}

// ResolutionMsg is emitted after a text object command, successful or not.
type ResolutionMsg struct {
	Resolution resolve.Resolution
	Err        error
}

// New creates an editor over text.
func New(cfg Config, text string, svc *resolve.Service) Model {
	if cfg.TabWidth < 1 {
		cfg.TabWidth = 4
	}
	return Model{
		cfg:       cfg,
		snap:      svc.Snapshot(),
		svc:       svc,
		savedText: text,
		mode:      ModeNormal,
		focused:   true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Mode returns the current vim mode.
func (m Model) Mode() Mode { return m.mode }

// Path returns the display path of the buffer.
func (m Model) Path() string { return m.cfg.Path }

// Text returns the buffer contents.
func (m Model) Text() string { return m.snap.Text() }

// SavedText returns the contents as of the last save.
func (m Model) SavedText() string { return m.savedText }

// Modified reports whether the buffer diverged from the last save.
func (m Model) Modified() bool { return m.snap.Text() != m.savedText }

// Snapshot returns the current document snapshot.
func (m Model) Snapshot() *document.Snapshot { return m.snap }

// Cursor returns the cursor as (row, grapheme column).
func (m Model) Cursor() (row, col int) { return m.cursorRow, m.cursorCol }

// CursorOffset returns the cursor's byte offset into the buffer.
func (m Model) CursorOffset() int {
	return m.snap.LineStart(m.cursorRow) + GraphemeToByteOffset(m.snap.Line(m.cursorRow), m.cursorCol)
}

// SetCursorOffset places the cursor at a byte offset, e.g. when restoring
// a remembered position.
func (m *Model) SetCursorOffset(off int) {
	m.cursorRow, m.cursorCol = m.positionForOffset(min(max(off, 0), m.snap.Len()))
	m.clampCursor()
	m.scrollCursorIntoView()
}

// LastResolution returns the most recent text object resolution, if any.
func (m Model) LastResolution() *resolve.Resolution { return m.lastResolution }

// SetSize sets the visible area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollCursorIntoView()
}

// Focus gives the editor keyboard focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the editor has focus.
func (m Model) Focused() bool { return m.focused }

// MarkSaved records the current contents as the saved state.
func (m *Model) MarkSaved() { m.savedText = m.snap.Text() }

// ReplaceText swaps the whole buffer, e.g. after an external reload.
func (m *Model) ReplaceText(text string) {
	m.setText(text)
	m.savedText = text
	m.clampCursor()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch m.mode {
	case ModeInsert:
		return m.updateInsert(key)
	case ModeVisual:
		return m.updateVisual(key)
	default:
		return m.updateNormal(key)
	}
}

func (m Model) updateNormal(key tea.KeyMsg) (Model, tea.Cmd) {
	s := key.String()

	// An operator is waiting for its i/a scope and object key.
	if m.pending.op != 0 || m.pending.scope != 0 {
		return m.updatePendingObject(key)
	}

	// Count prefix. A leading 0 is the line-start motion instead.
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' || (s == "0" && m.pending.count > 0) {
		m.pending.count = m.pending.count*10 + int(s[0]-'0')
		return m, nil
	}

	switch s {
	case "h", "left":
		m.moveCursor(0, -m.pending.effectiveCount())
	case "l", "right":
		m.moveCursor(0, m.pending.effectiveCount())
	case "j", "down":
		m.moveCursor(m.pending.effectiveCount(), 0)
	case "k", "up":
		m.moveCursor(-m.pending.effectiveCount(), 0)
	case "0", "home":
		m.cursorCol = 0
		m.preferredCol = 0
	case "$", "end":
		m.cursorToLineEnd()
	case "w":
		for i := 0; i < m.pending.effectiveCount(); i++ {
			m.wordForward()
		}
	case "b":
		for i := 0; i < m.pending.effectiveCount(); i++ {
			m.wordBackward()
		}
	case "g":
		// gg is handled as a two-key sequence through the pending op slot
		m.pending = pendingOp{op: 'g'}
		return m, nil
	case "G":
		m.cursorRow = m.snap.LineCount() - 1
		m.clampCursor()
	case "i":
		return m.enterInsert()
	case "a":
		m.cursorCol = min(m.cursorCol+1, GraphemeCount(m.currentLine()))
		return m.enterInsert()
	case "I":
		m.cursorCol = 0
		return m.enterInsert()
	case "A":
		m.cursorCol = GraphemeCount(m.currentLine())
		return m.enterInsert()
	case "o":
		return m.openLine(false)
	case "O":
		return m.openLine(true)
	case "x":
		count := m.pending.effectiveCount()
		m.pending.count = 0
		return m.deleteGraphemesAtCursor(count)
	case "p":
		m.pending.count = 0
		return m.paste(false)
	case "P":
		m.pending.count = 0
		return m.paste(true)
	case "v":
		m.visualAnchor = [2]int{m.cursorRow, m.cursorCol}
		return m.setMode(ModeVisual)
	case "d", "y", "c":
		m.pending.op = s[0]
		return m, nil
	case "esc":
		m.pending = pendingOp{}
	}

	m.pending.count = 0
	m.scrollCursorIntoView()
	return m, nil
}

// updatePendingObject consumes the keys after an operator: dd/yy special
// cases, gg, the i/a scope, and finally the text object key.
func (m Model) updatePendingObject(key tea.KeyMsg) (Model, tea.Cmd) {
	s := key.String()

	if s == "esc" {
		m.pending = pendingOp{}
		return m, nil
	}

	if m.pending.op == 'g' {
		m.pending = pendingOp{}
		if s == "g" {
			m.cursorRow = 0
			m.clampCursor()
			m.scrollCursorIntoView()
		}
		return m, nil
	}

	// Doubled operator acts on whole lines: dd, yy, cc.
	if m.pending.scope == 0 && len(s) == 1 && s[0] == m.pending.op {
		return m.operateOnLine(m.pending.op, m.pending.effectiveCount())
	}

	if m.pending.scope == 0 {
		if s == "i" || s == "a" {
			m.pending.scope = s[0]
			return m, nil
		}
		m.pending = pendingOp{}
		return m, nil
	}

	// Scope is set; this key names the object.
	op, scope, count := m.pending.op, m.pending.scope, m.pending.effectiveCount()
	m.pending = pendingOp{}

	kind, ok := objectKindForKey(s)
	if !ok {
		return m, nil
	}
	if op == 0 {
		// vi"/va" style: no operator means select
		m.visualAnchor = [2]int{m.cursorRow, m.cursorCol}
		next, cmd := m.setMode(ModeVisual)
		next2, cmd2 := next.selectObject(kind, scope == 'a', count)
		return next2, tea.Batch(cmd, cmd2)
	}
	return m.operateOnObject(op, kind, scope == 'a', count)
}

func (m Model) updateVisual(key tea.KeyMsg) (Model, tea.Cmd) {
	s := key.String()

	if m.pending.scope != 0 {
		scope := m.pending.scope
		m.pending = pendingOp{}
		if s == "esc" {
			return m, nil
		}
		if kind, ok := objectKindForKey(s); ok {
			return m.selectObject(kind, scope == 'a', 1)
		}
		return m, nil
	}

	switch s {
	case "esc", "v":
		return m.setMode(ModeNormal)
	case "h", "left":
		m.moveCursor(0, -1)
	case "l", "right":
		m.moveCursor(0, 1)
	case "j", "down":
		m.moveCursor(1, 0)
	case "k", "up":
		m.moveCursor(-1, 0)
	case "0":
		m.cursorCol = 0
	case "$":
		m.cursorToLineEnd()
	case "w":
		m.wordForward()
	case "b":
		m.wordBackward()
	case "o":
		m.visualAnchor, m.cursorRow, m.cursorCol =
			[2]int{m.cursorRow, m.cursorCol}, m.visualAnchor[0], m.visualAnchor[1]
	case "i", "a":
		m.pending.scope = s[0]
	case "d", "x":
		return m.deleteSelection(false)
	case "c":
		return m.deleteSelection(true)
	case "y":
		return m.yankSelection()
	}

	m.scrollCursorIntoView()
	return m, nil
}

func (m Model) updateInsert(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEscape:
		m.cursorCol = max(m.cursorCol-1, 0)
		return m.setMode(ModeNormal)
	case tea.KeyEnter:
		return m.insertNewline()
	case tea.KeyBackspace:
		return m.backspace()
	case tea.KeyTab:
		return m.insertText("\t")
	case tea.KeySpace:
		return m.insertText(" ")
	case tea.KeyRunes:
		return m.insertText(string(key.Runes))
	}
	return m, nil
}

func (m Model) setMode(mode Mode) (Model, tea.Cmd) {
	if mode == m.mode {
		return m, nil
	}
	prev := m.mode
	m.mode = mode
	m.pending = pendingOp{}
	log.Debug(log.CatUI, "mode change", "from", prev.String(), "to", mode.String())
	return m, func() tea.Msg { return ModeChangedMsg{Mode: mode, Previous: prev} }
}

func (m Model) enterInsert() (Model, tea.Cmd) {
	return m.setMode(ModeInsert)
}

// --- motions ---

func (m *Model) currentLine() string { return m.snap.Line(m.cursorRow) }

func (m *Model) moveCursor(dRow, dCol int) {
	if dRow != 0 {
		m.cursorRow = min(max(m.cursorRow+dRow, 0), m.snap.LineCount()-1)
		m.cursorCol = min(m.preferredCol, m.maxCol())
		return
	}
	m.cursorCol = min(max(m.cursorCol+dCol, 0), m.maxCol())
	m.preferredCol = m.cursorCol
}

// maxCol returns the largest legal cursor column on the current line.
// Normal mode sits on the last grapheme; insert and visual may sit one past.
func (m *Model) maxCol() int {
	n := GraphemeCount(m.currentLine())
	if m.mode == ModeNormal && n > 0 {
		return n - 1
	}
	return n
}

func (m *Model) cursorToLineEnd() {
	m.cursorCol = m.maxCol()
	m.preferredCol = m.cursorCol
}

func (m *Model) clampCursor() {
	m.cursorRow = min(max(m.cursorRow, 0), m.snap.LineCount()-1)
	m.cursorCol = min(max(m.cursorCol, 0), m.maxCol())
}

func (m *Model) wordForward() {
	gs := graphemes(m.currentLine())
	col := m.cursorCol
	if col < len(gs) {
		cls := graphemeClass(gs[col])
		for col < len(gs) && graphemeClass(gs[col]) == cls {
			col++
		}
	}
	for col < len(gs) && graphemeClass(gs[col]) == classWhitespace {
		col++
	}
	if col >= len(gs) && m.cursorRow < m.snap.LineCount()-1 {
		m.cursorRow++
		m.cursorCol = 0
		m.clampCursor()
		return
	}
	m.cursorCol = min(col, m.maxCol())
	m.preferredCol = m.cursorCol
}

func (m *Model) wordBackward() {
	if m.cursorCol == 0 {
		if m.cursorRow > 0 {
			m.cursorRow--
			m.cursorToLineEnd()
		}
		return
	}
	gs := graphemes(m.currentLine())
	col := m.cursorCol - 1
	for col > 0 && graphemeClass(gs[col]) == classWhitespace {
		col--
	}
	cls := graphemeClass(gs[col])
	for col > 0 && graphemeClass(gs[col-1]) == cls {
		col--
	}
	m.cursorCol = col
	m.preferredCol = col
}

// --- edits ---

// setText installs new buffer text and rebinds the resolution service to
// the next revision.
func (m *Model) setText(text string) {
	m.snap = m.snap.WithText(text)
	m.svc = m.svc.WithSnapshot(m.snap)
}

func (m *Model) lines() []string {
	return strings.Split(m.snap.Text(), "\n")
}

func (m Model) contentChanged() tea.Cmd {
	rev := m.snap.Revision()
	return func() tea.Msg { return ContentChangedMsg{Revision: rev} }
}

func (m Model) insertText(text string) (Model, tea.Cmd) {
	line := m.currentLine()
	off := GraphemeToByteOffset(line, m.cursorCol)

	lines := m.lines()
	lines[m.cursorRow] = line[:off] + text + line[off:]
	m.setText(strings.Join(lines, "\n"))
	m.cursorCol += GraphemeCount(text)
	m.scrollCursorIntoView()
	return m, m.contentChanged()
}

func (m Model) insertNewline() (Model, tea.Cmd) {
	line := m.currentLine()
	off := GraphemeToByteOffset(line, m.cursorCol)

	lines := m.lines()
	lines[m.cursorRow] = line[:off]
	rest := line[off:]
	lines = append(lines[:m.cursorRow+1], append([]string{rest}, lines[m.cursorRow+1:]...)...)
	m.setText(strings.Join(lines, "\n"))
	m.cursorRow++
	m.cursorCol = 0
	m.scrollCursorIntoView()
	return m, m.contentChanged()
}

func (m Model) backspace() (Model, tea.Cmd) {
	if m.cursorCol == 0 {
		if m.cursorRow == 0 {
			return m, nil
		}
		lines := m.lines()
		prev := lines[m.cursorRow-1]
		lines[m.cursorRow-1] = prev + lines[m.cursorRow]
		lines = append(lines[:m.cursorRow], lines[m.cursorRow+1:]...)
		m.setText(strings.Join(lines, "\n"))
		m.cursorRow--
		m.cursorCol = GraphemeCount(prev)
		m.scrollCursorIntoView()
		return m, m.contentChanged()
	}

	line := m.currentLine()
	a := GraphemeToByteOffset(line, m.cursorCol-1)
	b := GraphemeToByteOffset(line, m.cursorCol)
	lines := m.lines()
	lines[m.cursorRow] = line[:a] + line[b:]
	m.setText(strings.Join(lines, "\n"))
	m.cursorCol--
	return m, m.contentChanged()
}

func (m Model) deleteGraphemesAtCursor(count int) (Model, tea.Cmd) {
	line := m.currentLine()
	n := GraphemeCount(line)
	if n == 0 {
		return m, nil
	}
	end := min(m.cursorCol+count, n)
	a := GraphemeToByteOffset(line, m.cursorCol)
	b := GraphemeToByteOffset(line, end)

	m.yanked = line[a:b]
	m.yankedLinewise = false
	lines := m.lines()
	lines[m.cursorRow] = line[:a] + line[b:]
	m.setText(strings.Join(lines, "\n"))
	m.clampCursor()
	return m, m.contentChanged()
}

func (m Model) openLine(above bool) (Model, tea.Cmd) {
	lines := m.lines()
	row := m.cursorRow
	if !above {
		row++
	}
	lines = append(lines[:row], append([]string{""}, lines[row:]...)...)
	m.setText(strings.Join(lines, "\n"))
	m.cursorRow = row
	m.cursorCol = 0
	next, modeCmd := m.enterInsert()
	next.scrollCursorIntoView()
	return next, tea.Batch(next.contentChanged(), modeCmd)
}

func (m Model) paste(before bool) (Model, tea.Cmd) {
	if m.yanked == "" {
		return m, nil
	}

	if m.yankedLinewise {
		lines := m.lines()
		row := m.cursorRow
		if !before {
			row++
		}
		pasted := strings.Split(strings.TrimSuffix(m.yanked, "\n"), "\n")
		lines = append(lines[:row], append(pasted, lines[row:]...)...)
		m.setText(strings.Join(lines, "\n"))
		m.cursorRow = row
		m.cursorCol = 0
		m.scrollCursorIntoView()
		return m, m.contentChanged()
	}

	line := m.currentLine()
	col := m.cursorCol
	if !before && GraphemeCount(line) > 0 {
		col++
	}
	off := GraphemeToByteOffset(line, col)
	lines := m.lines()
	lines[m.cursorRow] = line[:off] + m.yanked + line[off:]
	m.setText(strings.Join(lines, "\n"))
	m.cursorCol = col + GraphemeCount(m.yanked) - 1
	m.clampCursor()
	return m, m.contentChanged()
}

// operateOnLine handles dd, yy, cc.
func (m Model) operateOnLine(op byte, count int) (Model, tea.Cmd) {
	m.pending = pendingOp{}
	lines := m.lines()
	end := min(m.cursorRow+count, len(lines))
	m.yanked = strings.Join(lines[m.cursorRow:end], "\n") + "\n"
	m.yankedLinewise = true

	if op == 'y' {
		return m, nil
	}

	rest := append(lines[:m.cursorRow], lines[end:]...)
	if op == 'c' {
		rest = append(rest[:m.cursorRow], append([]string{""}, rest[m.cursorRow:]...)...)
	}
	if len(rest) == 0 {
		rest = []string{""}
	}
	m.setText(strings.Join(rest, "\n"))
	m.clampCursor()
	m.scrollCursorIntoView()

	if op == 'c' {
		next, modeCmd := m.enterInsert()
		return next, tea.Batch(next.contentChanged(), modeCmd)
	}
	return m, m.contentChanged()
}
