// Package app contains the root application model.
package app

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/texel/internal/config"
	"github.com/zjrosen/texel/internal/document"
	"github.com/zjrosen/texel/internal/history"
	"github.com/zjrosen/texel/internal/keys"
	"github.com/zjrosen/texel/internal/log"
	"github.com/zjrosen/texel/internal/pubsub"
	"github.com/zjrosen/texel/internal/resolve"
	"github.com/zjrosen/texel/internal/ui/editor"
	"github.com/zjrosen/texel/internal/ui/help"
	"github.com/zjrosen/texel/internal/ui/statusbar"
	"github.com/zjrosen/texel/internal/watcher"
)

// Options carries the optional collaborators the command layer wires in.
type Options struct {
	// History persists per-file cursor positions. Nil disables it.
	History *history.Store
}

// Model is the root application state.
type Model struct {
	cfg  config.Config
	path string

	editor    editor.Model
	statusbar statusbar.Model
	help      help.Model
	keymap    keys.KeyMap

	history *history.Store

	watcherHandle   *watcher.Watcher
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.Event]

	width  int
	height int
}

// New creates the application model over an already-built resolve service.
func New(cfg config.Config, path, text string, svc *resolve.Service, opts Options) Model {
	var lexer editor.SyntaxLexer
	if cfg.Editor.HighlightSyntax {
		lexer = editor.NewTexLexer()
	}

	ed := editor.New(editor.Config{
		Path:            path,
		TabWidth:        cfg.Editor.TabWidth,
		ShowLineNumbers: cfg.Editor.ShowLineNumbers,
		Lexer:           lexer,
	}, text, svc)

	m := Model{
		cfg:       cfg,
		path:      path,
		editor:    ed,
		statusbar: statusbar.New(path),
		help:      help.New(),
		keymap:    keys.DefaultKeyMap(),
		history:   opts.History,
	}

	if cfg.AutoReload && path != "" {
		w, err := watcher.New(watcher.DefaultConfig(path))
		if err == nil {
			if err := w.Start(); err == nil {
				ctx, cancel := context.WithCancel(context.Background())
				m.watcherHandle = w
				m.watcherCancel = cancel
				m.watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
			} else {
				_ = w.Stop()
			}
		}
		// The app works fine without auto-reload; watcher errors are not fatal.
	}

	if m.history != nil && path != "" {
		if entry, ok, err := m.history.Lookup(path); err == nil && ok {
			m.editor.SetCursorOffset(entry.CursorOffset)
		}
		if err := m.history.Touch(path, m.editor.CursorOffset()); err != nil {
			log.ErrorErr(log.CatHistory, "recording file open", err)
		}
	}

	m.syncStatusbar()
	return m
}

// Editor exposes the editor model, mainly for tests.
func (m Model) Editor() editor.Model { return m.editor }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.watcherListener != nil {
		return m.watcherListener.Listen()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetSize(msg.Width, max(msg.Height-1, 1))
		m.statusbar.SetWidth(msg.Width)
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case pubsub.Event[watcher.Event]:
		return m.onFileChanged()

	case editor.ResolutionMsg:
		m.statusbar.SetResolution(msg.Resolution, msg.Err)
		return m, nil

	case editor.ModeChangedMsg, editor.ContentChangedMsg:
		m.syncStatusbar()
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			if zone.Get(statusbar.ZoneHelp).InBounds(msg) {
				m.help.Toggle()
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keymap.Save):
		return m.save()
	case key.Matches(msg, m.keymap.Help):
		m.help.Toggle()
		return m, nil
	}

	if m.help.Visible() {
		if msg.String() == "esc" || msg.String() == "q" {
			m.help.Toggle()
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.syncStatusbar()
	return m, cmd
}

func (m Model) onFileChanged() (tea.Model, tea.Cmd) {
	listen := func() tea.Cmd {
		if m.watcherListener != nil {
			return m.watcherListener.Listen()
		}
		return nil
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		log.ErrorErr(log.CatWatch, "reloading changed file", err)
		m.statusbar.SetMessage("reload failed")
		return m, listen()
	}

	if m.editor.Modified() {
		// Unsaved edits win; just surface that the file moved underneath.
		m.statusbar.SetMessage("file changed on disk")
		return m, listen()
	}

	m.editor.ReplaceText(string(data))
	m.statusbar.SetMessage("reloaded")
	m.syncStatusbar()
	log.Info(log.CatWatch, "buffer reloaded from disk", "path", m.path)
	return m, listen()
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.path == "" {
		m.statusbar.SetMessage("no file to save to")
		return m, nil
	}
	if err := os.WriteFile(m.path, []byte(m.editor.Text()), 0600); err != nil {
		log.ErrorErr(log.CatDoc, "saving file", err)
		m.statusbar.SetMessage("save failed: " + err.Error())
		return m, nil
	}
	m.editor.MarkSaved()
	m.statusbar.SetMessage("saved")
	m.syncStatusbar()

	if m.history != nil {
		if err := m.history.SaveCursor(m.path, m.editor.CursorOffset()); err != nil {
			log.ErrorErr(log.CatHistory, "saving cursor", err)
		}
	}
	return m, nil
}

func (m Model) quit() tea.Cmd {
	if m.history != nil && m.path != "" {
		if err := m.history.SaveCursor(m.path, m.editor.CursorOffset()); err != nil {
			log.ErrorErr(log.CatHistory, "saving cursor on quit", err)
		}
	}
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		_ = m.watcherHandle.Stop()
	}
	return tea.Quit
}

func (m *Model) syncStatusbar() {
	m.statusbar.SetMode(m.editor.Mode())
	row, col := m.editor.Cursor()
	m.statusbar.SetCursor(row, col)
	m.statusbar.SetDiff(m.editor.SavedText(), m.editor.Text())
}

// View implements tea.Model.
func (m Model) View() string {
	base := m.editor.View() + "\n" + m.statusbar.View()

	if m.help.Visible() {
		overlay := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.help.View())
		return zone.Scan(overlay)
	}
	return zone.Scan(base)
}

// Document returns the current document snapshot, mainly for tests.
func (m Model) Document() *document.Snapshot { return m.editor.Snapshot() }
