package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/texel/internal/config"
	"github.com/zjrosen/texel/internal/document"
	"github.com/zjrosen/texel/internal/history"
	"github.com/zjrosen/texel/internal/resolve"
	"github.com/zjrosen/texel/internal/ui/editor"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newApp(t *testing.T, path, text string, opts Options) Model {
	t.Helper()
	cfg := config.Defaults()
	cfg.AutoReload = false
	svc := resolve.NewService(document.NewSnapshot(text))
	return New(cfg, path, text, svc, opts)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_RendersEditorAndStatusbar(t *testing.T) {
	m := newApp(t, "paper.tex", `say \emph{hi}`, Options{})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "NORMAL")
	assert.Contains(t, view, "paper.tex")
}

func TestApp_HelpToggle(t *testing.T) {
	m := newApp(t, "paper.tex", "text", Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m = updated.(Model)
	assert.Contains(t, m.View(), "Text objects")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = updated.(Model)
	assert.NotContains(t, m.View(), "Text objects")
}

func TestApp_SaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.tex")
	require.NoError(t, os.WriteFile(path, []byte("before"), 0600))

	m := newApp(t, path, "before", Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	updated, _ = m.Update(keyMsg("x"))
	m = updated.(Model)
	require.True(t, m.Editor().Modified())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(Model)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "efore", string(data))
	assert.False(t, m.Editor().Modified())
}

func TestApp_TextObjectKeysReachEditor(t *testing.T) {
	m := newApp(t, "doc.tex", `say "hello" now`, Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	for _, k := range []string{"l", "l", "l", "l", "l", "l", "d", "i", `"`} {
		updated, _ = m.Update(keyMsg(k))
		m = updated.(Model)
	}

	assert.Equal(t, `say "" now`, m.Editor().Text())
}

func TestApp_HistoryRestoresCursor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.tex")
	store, err := history.Open(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Touch(path, 7))

	m := newApp(t, path, "0123456789", Options{History: store})

	assert.Equal(t, 7, m.Editor().CursorOffset())
}

func TestApp_ResolutionMsgUpdatesStatusbar(t *testing.T) {
	m := newApp(t, "doc.tex", `a "b" c`, Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	m = updated.(Model)

	res := editor.ResolutionMsg{}
	res.Resolution.Kind = '"'
	updated, _ = m.Update(res)
	m = updated.(Model)

	assert.Contains(t, m.View(), "quote")
}

func TestApp_FullProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.tex")
	text := `hello \emph{world}`
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))

	m := newApp(t, path, text, Options{})
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("NORMAL"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyMsg("i"))
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("INSERT"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
