package editor

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/texel/internal/resolve"
	"github.com/zjrosen/texel/internal/textobject"
)

// objectKindForKey maps a pressed key to its text object kind. The keys are
// the kind runes themselves: " for quotes, $ for dollar math, \ for bracket
// math, m for macros, e for environments.
func objectKindForKey(key string) (rune, bool) {
	if len(key) != 1 {
		return 0, false
	}
	switch r := rune(key[0]); r {
	case textobject.KindQuote, textobject.KindDollarMath, textobject.KindBracketMath,
		textobject.KindMacro, textobject.KindEnvironment:
		return r, true
	default:
		return 0, false
	}
}

// resolveAt resolves an object around the cursor, optionally constrained to
// contain bounds.
func (m *Model) resolveAt(kind rune, outer bool, count int, bounds *textobject.Span) (resolve.Resolution, error) {
	res, err := m.svc.Resolve(context.Background(), kind, textobject.Request{
		Cursor: m.CursorOffset(),
		Bounds: bounds,
		Count:  count,
		Outer:  outer,
	})
	if err == nil {
		m.lastResolution = &res
	}
	return res, err
}

func resolutionCmd(res resolve.Resolution, err error) tea.Cmd {
	return func() tea.Msg { return ResolutionMsg{Resolution: res, Err: err} }
}

// selectObject expands the visual selection to the resolved object. When
// the selection already covers the object, the next enclosing one is taken,
// so repeated presses grow the selection outward.
func (m Model) selectObject(kind rune, outer bool, count int) (Model, tea.Cmd) {
	var bounds *textobject.Span
	if sel, ok := m.selectionSpan(); ok && !sel.Empty() {
		bounds = &sel
	}

	res, err := m.resolveAt(kind, outer, count, bounds)
	if err == nil && bounds != nil && res.Span == *bounds {
		res, err = m.resolveAt(kind, outer, count+1, bounds)
	}
	if err != nil {
		return m, resolutionCmd(resolve.Resolution{}, err)
	}
	if res.Span.Empty() {
		// Zero-width object: nothing to select, park the cursor there.
		m.cursorRow, m.cursorCol = m.positionForOffset(res.Span.Start)
		return m, resolutionCmd(res, nil)
	}

	m.visualAnchor[0], m.visualAnchor[1] = m.positionForOffset(res.Span.Start)
	// The selection end is inclusive; land on the object's last grapheme.
	m.cursorRow, m.cursorCol = m.positionForOffset(res.Span.End)
	m.retreatGrapheme()
	m.scrollCursorIntoView()
	return m, resolutionCmd(res, nil)
}

// operateOnObject runs d/y/c against a resolved object from normal mode.
func (m Model) operateOnObject(op byte, kind rune, outer bool, count int) (Model, tea.Cmd) {
	res, err := m.resolveAt(kind, outer, count, nil)
	if err != nil {
		return m, resolutionCmd(resolve.Resolution{}, err)
	}

	switch op {
	case 'y':
		m.yanked = res.Text
		m.yankedLinewise = false
		return m, resolutionCmd(res, nil)
	case 'd':
		next, cmd := m.deleteSpan(res.Span)
		return next, tea.Batch(cmd, resolutionCmd(res, nil))
	case 'c':
		next, cmd := m.deleteSpan(res.Span)
		next2, modeCmd := next.enterInsert()
		return next2, tea.Batch(cmd, modeCmd, resolutionCmd(res, nil))
	}
	return m, nil
}

// selectionSpan returns the visual selection as a half-open byte span.
func (m *Model) selectionSpan() (textobject.Span, bool) {
	if m.mode != ModeVisual {
		return textobject.Span{}, false
	}
	anchor := m.snap.LineStart(m.visualAnchor[0]) +
		GraphemeToByteOffset(m.snap.Line(m.visualAnchor[0]), m.visualAnchor[1])
	cursor := m.CursorOffset()

	start, end := anchor, cursor
	if start > end {
		start, end = end, start
	}
	// The grapheme under the later endpoint is part of the selection.
	end = m.advanceOffset(end)
	return textobject.Span{Start: start, End: end}, true
}

// deleteSelection removes the visual selection; enterInsertAfter turns it
// into a change (c).
func (m Model) deleteSelection(enterInsertAfter bool) (Model, tea.Cmd) {
	sel, ok := m.selectionSpan()
	if !ok || sel.Empty() {
		return m.setMode(ModeNormal)
	}
	m.yanked = m.snap.Slice(sel)
	m.yankedLinewise = false

	next, modeCmd := m.setMode(ModeNormal)
	next2, cmd := next.deleteSpan(sel)
	if enterInsertAfter {
		next3, insCmd := next2.enterInsert()
		return next3, tea.Batch(cmd, modeCmd, insCmd)
	}
	return next2, tea.Batch(cmd, modeCmd)
}

// yankSelection copies the visual selection and drops back to normal mode.
func (m Model) yankSelection() (Model, tea.Cmd) {
	sel, ok := m.selectionSpan()
	if !ok {
		return m, nil
	}
	m.yanked = m.snap.Slice(sel)
	m.yankedLinewise = false
	m.cursorRow, m.cursorCol = m.positionForOffset(sel.Start)
	return m.setMode(ModeNormal)
}

// deleteSpan removes a byte span from the buffer, leaving the cursor at its
// start. The deleted text lands in the yank register.
func (m Model) deleteSpan(span textobject.Span) (Model, tea.Cmd) {
	text := m.snap.Text()
	start := min(max(span.Start, 0), len(text))
	end := min(max(span.End, start), len(text))
	if start == end {
		return m, nil
	}

	m.yanked = text[start:end]
	m.yankedLinewise = false
	m.setText(text[:start] + text[end:])
	m.cursorRow, m.cursorCol = m.positionForOffset(start)
	m.clampCursor()
	m.scrollCursorIntoView()
	return m, m.contentChanged()
}

// positionForOffset converts a byte offset to (row, grapheme column).
func (m *Model) positionForOffset(off int) (row, col int) {
	row, byteCol := m.snap.PositionFor(off)
	return row, ByteToGraphemeOffset(m.snap.Line(row), byteCol)
}

// advanceOffset moves a byte offset past the grapheme it points at.
func (m *Model) advanceOffset(off int) int {
	text := m.snap.Text()
	if off >= len(text) {
		return len(text)
	}
	if text[off] == '\n' {
		return off + 1
	}
	row, _ := m.positionForOffset(off)
	line := m.snap.Line(row)
	next := GraphemeToByteOffset(line, ByteToGraphemeOffset(line, off-m.snap.LineStart(row))+1)
	return m.snap.LineStart(row) + next
}

// retreatGrapheme steps the cursor back one grapheme, crossing line breaks.
func (m *Model) retreatGrapheme() {
	if m.cursorCol > 0 {
		m.cursorCol--
		return
	}
	if m.cursorRow > 0 {
		m.cursorRow--
		m.cursorCol = max(GraphemeCount(m.currentLine())-1, 0)
	}
}
