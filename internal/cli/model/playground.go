// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/instapreview/internal/cli/styles"
	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
	"github.com/bnema/instapreview/internal/infrastructure/simhost"
	"github.com/bnema/instapreview/internal/infrastructure/teardown"
	"github.com/bnema/instapreview/internal/logging"
	"github.com/bnema/instapreview/internal/ui/instant"
	"github.com/bnema/instapreview/internal/ui/mainloop"
)

// Snapshot is the browser state shown by the playground.
type Snapshot struct {
	Rows     []entity.Suggestion
	Selected int
	Open     bool
	Watcher  string
	Preview  string
	Loads    int
	Focused  bool
	Tab      string
	Tabs     int
	Live     string
	Address  string
	History  []string
	Closed   bool
}

type snapshotMsg Snapshot

// session owns the simulated window. Every mutation runs on the loop goroutine.
type session struct {
	ctx      context.Context
	loop     *mainloop.Loop
	window   *simhost.Window
	registry *teardown.Registry
	ctrl     *instant.Controller
	refresh  time.Duration
	snaps    chan Snapshot
}

func newSession(ctx context.Context, cfg instant.Config, top *preview.TopDestinations) *session {
	window := simhost.NewWindow()
	window.AddTab("about:blank")
	window.AddTab("about:blank")

	s := &session{
		ctx:      ctx,
		loop:     mainloop.NewLoop(ctx),
		window:   window,
		registry: teardown.NewRegistry(ctx),
		refresh:  cfg.PollInterval,
		snaps:    make(chan Snapshot, 1),
	}
	if s.refresh <= 0 {
		s.refresh = instant.DefaultConfig().PollInterval
	}
	s.loop.Post(func() {
		if cfg.Enabled {
			s.ctrl = instant.Attach(ctx, window, instant.Deps{
				Scheduler: s.loop,
				Teardown:  s.registry,
				Top:       top,
				Config:    cfg,
			})
		}
		s.publish()
	})
	s.loop.AfterFunc(s.refresh, s.tick)
	return s
}

func (s *session) run() {
	if err := s.loop.Run(s.ctx); err != nil && s.ctx.Err() == nil {
		logging.FromContext(s.ctx).Error().Err(err).Msg("playground loop stopped")
	}
}

func (s *session) tick() {
	if s.window.Closed() {
		return
	}
	s.publish()
	s.loop.AfterFunc(s.refresh, s.tick)
}

// do runs fn on the loop and publishes the resulting state.
func (s *session) do(fn func()) {
	s.loop.Post(func() {
		fn()
		s.publish()
	})
}

func (s *session) close() {
	s.loop.Post(func() {
		s.registry.RunAll()
		s.window.Close()
		s.loop.Stop()
	})
}

// publish replaces any unread snapshot with the current state.
func (s *session) publish() {
	snap := s.snapshot()
	select {
	case <-s.snaps:
	default:
	}
	select {
	case s.snaps <- snap:
	default:
	}
}

func (s *session) snapshot() Snapshot {
	popup := s.window.SimPopup()
	snap := Snapshot{
		Rows:     popup.Rows(),
		Selected: popup.SelectedIndex(),
		Open:     popup.IsOpen(),
		Address:  s.window.SimAddressBar().Text(),
		Tabs:     len(s.window.Tabs()),
		Closed:   s.window.Closed(),
	}
	snap.Watcher = "disabled"
	if s.ctrl != nil {
		snap.Watcher = s.ctrl.Watcher().State().String()
		snap.Preview = s.ctrl.Surfaces().Destination()
		if srf, ok := s.ctrl.Surfaces().Surface().(*simhost.Surface); ok {
			snap.Loads = len(srf.Loads())
			snap.Focused = srf.Focused()
		}
	}
	if tab := s.window.SimActiveTab(); tab != nil {
		live := tab.LiveSurface()
		snap.Tab = tab.ID()
		snap.Live = live.CurrentURI()
		for _, e := range live.History() {
			snap.History = append(snap.History, e.URI)
		}
	}
	return snap
}

func (s *session) next() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-s.snaps
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

// PlaygroundModel is an interactive omnibox driving the preview engine on a
// simulated browser window.
type PlaygroundModel struct {
	input    textinput.Model
	help     help.Model
	keys     styles.PlaygroundKeyMap
	theme    *styles.Theme
	showHelp bool
	width    int
	height   int

	corpus  []string
	top     *preview.TopDestinations
	session *session
	snap    Snapshot
}

// NewPlaygroundModel creates the playground. corpus is the list of
// destinations offered as fuzzy matches.
func NewPlaygroundModel(
	ctx context.Context,
	theme *styles.Theme,
	cfg instant.Config,
	top *preview.TopDestinations,
	corpus []*entity.RankedDestination,
) PlaygroundModel {
	ctx = logging.WithComponent(ctx, "playground")
	logging.FromContext(ctx).Debug().Int("corpus", len(corpus)).Msg("creating playground model")

	urls := make([]string, 0, len(corpus))
	for _, r := range corpus {
		if r != nil {
			urls = append(urls, r.URL)
		}
	}

	input := styles.NewURLInput(theme)
	input.Focus()

	return PlaygroundModel{
		input:   input,
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultPlaygroundKeyMap(),
		theme:   theme,
		width:   80,
		height:  24,
		corpus:  urls,
		top:     top,
		session: newSession(ctx, cfg, top),
	}
}

// Init starts the loop and waits for the first snapshot.
func (m PlaygroundModel) Init() tea.Cmd {
	go m.session.run()
	return tea.Batch(textinput.Blink, m.session.next())
}

// Update handles messages.
func (m PlaygroundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case snapshotMsg:
		m.snap = Snapshot(msg)
		if m.snap.Closed {
			return m, tea.Quit
		}
		return m, m.session.next()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m PlaygroundModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	bar := m.session.window.SimAddressBar()
	popup := m.session.window.SimPopup()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.session.do(func() { popup.MoveSelection(-1) })
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.session.do(func() { popup.MoveSelection(1) })
		return m, nil
	case key.Matches(msg, m.keys.SoftCommit):
		w := m.session.window
		m.session.do(func() {
			selected, ok := popup.SelectedSuggestion()
			bar.Press(preview.KeyEvent{Key: preview.KeyEnter, Shift: true})
			popup.Hide()
			if tab := w.SimActiveTab(); ok && tab != nil {
				if err := tab.LiveSurface().Load(selected.Destination); err != nil {
					logging.FromContext(m.session.ctx).Warn().Err(err).Msg("open without preview failed")
				}
			}
		})
		m.input.SetValue("")
		return m, nil
	case key.Matches(msg, m.keys.Commit):
		m.session.do(func() {
			bar.Press(preview.KeyEvent{Key: preview.KeyEnter})
			popup.Hide()
		})
		m.input.SetValue("")
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.session.do(func() {
			bar.Press(preview.KeyEvent{Key: preview.KeyEscape})
			popup.Hide()
		})
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		s := m.session
		s.do(func() {
			if s.ctrl == nil {
				return
			}
			if srf, ok := s.ctrl.Surfaces().Surface().(*simhost.Surface); ok {
				srf.Focus()
			}
		})
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		w := m.session.window
		m.session.do(func() {
			tabs := len(w.Tabs())
			if tabs == 0 {
				return
			}
			current := 0
			active := w.SimActiveTab()
			for i, t := range w.Tabs() {
				if t == active {
					current = i
				}
			}
			_ = w.SelectTab((current + 1) % tabs)
		})
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if query := m.input.Value(); query != before {
		rows := BuildSuggestions(query, m.corpus, m.top)
		m.session.do(func() {
			bar.SetText(query)
			popup.SetRows(rows)
			if len(rows) == 0 {
				popup.Hide()
				return
			}
			popup.Select(0)
			if !popup.IsOpen() {
				popup.Show()
			}
		})
	}
	return m, cmd
}

// View renders the model.
func (m PlaygroundModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("instapreview playground"))
	b.WriteString("  ")
	b.WriteString(m.theme.Subtle.Render(fmt.Sprintf("%s (%d tabs)", m.snap.Tab, m.snap.Tabs)))
	b.WriteString("\n\n")
	b.WriteString(m.theme.InputBox(m.input.View(), true))
	b.WriteString("\n")

	if m.snap.Open {
		b.WriteString(m.renderRows())
	}
	b.WriteString("\n")
	b.WriteString(m.renderPreview())
	b.WriteString("\n")
	b.WriteString(m.renderLive())
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}

func (m PlaygroundModel) renderRows() string {
	width := m.width - 20
	if width < 20 {
		width = 20
	}
	lines := make([]string, 0, len(m.snap.Rows))
	for i, row := range m.snap.Rows {
		text := styles.Truncate(row.Destination, width)
		badge := m.theme.BadgeMuted.Render(row.Kind.String())
		style := m.theme.ListItem
		if i == m.snap.Selected {
			style = m.theme.ListItemSelected
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, style.Render(text), " ", badge))
	}
	return strings.Join(lines, "\n")
}

func (m PlaygroundModel) renderPreview() string {
	state := m.theme.Subtle.Render("watcher " + m.snap.Watcher)
	if m.snap.Preview == "" {
		return m.theme.Preview.Render(state + "\n" + m.theme.Subtle.Render("no preview"))
	}
	title := m.theme.Highlight.Render(styles.Truncate(m.snap.Preview, 60))
	meta := m.theme.Subtle.Render(fmt.Sprintf("%d load(s)", m.snap.Loads))
	if m.snap.Focused {
		meta += " " + m.theme.Badge.Render("focused")
	}
	return m.theme.Preview.Render(state + "\n" + title + "\n" + meta)
}

func (m PlaygroundModel) renderLive() string {
	live := m.snap.Live
	if live == "" {
		live = "about:blank"
	}
	history := make([]string, 0, len(m.snap.History))
	for _, h := range m.snap.History {
		history = append(history, styles.Truncate(h, 30))
	}
	return m.theme.Normal.Render("live: "+live) + "\n" +
		m.theme.Subtle.Render("history: "+strings.Join(history, " → "))
}
