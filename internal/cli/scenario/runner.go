package scenario

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bnema/instapreview/internal/application/usecase"
	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
	"github.com/bnema/instapreview/internal/infrastructure/simhost"
	"github.com/bnema/instapreview/internal/infrastructure/teardown"
	"github.com/bnema/instapreview/internal/logging"
	"github.com/bnema/instapreview/internal/ui/instant"
	"github.com/bnema/instapreview/internal/ui/mainloop"
)

var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// watcherDisabled is the frame watcher state when previews are turned off.
const watcherDisabled = "disabled"

// Frame is the observable state after one step.
type Frame struct {
	Step    int           `json:"step"`
	At      time.Duration `json:"at"`
	Event   string        `json:"event"`
	Watcher string        `json:"watcher"`
	Preview string        `json:"preview,omitempty"`
	Loads   int           `json:"loads"`
	Address string        `json:"address"`
	Live    string        `json:"live"`
	Tab     string        `json:"tab"`
	History []string      `json:"history"`
	Open    []string      `json:"open,omitempty"`
}

// Trace is the result of a run.
type Trace struct {
	Name   string  `json:"name"`
	Frames []Frame `json:"frames"`
	// Created and Destroyed count preview surfaces over the whole run.
	Created   int `json:"created"`
	Destroyed int `json:"destroyed"`
}

// Runner replays scripts.
type Runner struct {
	cfg instant.Config
	top *preview.TopDestinations
}

// NewRunner creates a runner. top is used when a script does not seed its own
// cache; nil means an empty cache.
func NewRunner(cfg instant.Config, top *preview.TopDestinations) *Runner {
	return &Runner{cfg: cfg, top: top}
}

type run struct {
	window *simhost.Window
	loop   *mainloop.ManualLoop
	ctrl   *instant.Controller
}

// Run replays s and returns its trace. Steps that fail inside the engine are
// logged and traced like any other step.
func (r *Runner) Run(ctx context.Context, s *Script) (*Trace, error) {
	top, err := r.cache(s)
	if err != nil {
		return nil, err
	}

	window := simhost.NewWindow()
	window.DeferCommits = s.DeferCommits
	for url, title := range s.Titles {
		window.SetTitle(url, title)
	}
	for _, uri := range s.Tabs {
		window.AddTab(uri)
	}

	registry := teardown.NewRegistry(ctx)
	defer registry.RunAll()

	rn := &run{window: window, loop: mainloop.NewManualLoop(epoch)}
	if r.cfg.Enabled {
		rn.ctrl = instant.Attach(ctx, window, instant.Deps{
			Scheduler: rn.loop,
			Teardown:  registry,
			Top:       top,
			Config:    r.cfg,
		})
	}

	log := logging.FromContext(ctx)
	trace := &Trace{Name: s.Name}
	for i, st := range s.Steps {
		if err := rn.apply(st); err != nil {
			log.Warn().Err(err).Int("step", i+1).Str("event", st.Event).Msg("scenario step failed")
		}
		trace.Frames = append(trace.Frames, rn.frame(i+1, st.Event))
	}

	stats := window.Stats()
	trace.Created = stats.Created
	trace.Destroyed = stats.Destroyed
	return trace, nil
}

func (r *Runner) cache(s *Script) (*preview.TopDestinations, error) {
	if s.Top != nil {
		top := preview.NewTopDestinations()
		if err := top.Seal(s.Top); err != nil {
			return nil, fmt.Errorf("seed scenario top destinations: %w", err)
		}
		return top, nil
	}
	if r.top != nil {
		return r.top, nil
	}
	return preview.NewTopDestinations(), nil
}

func (rn *run) apply(st Step) error {
	popup := rn.window.SimPopup()
	switch st.Event {
	case EventRows:
		rows := make([]entity.Suggestion, 0, len(st.Rows))
		for _, row := range st.Rows {
			rows = append(rows, row.suggestion())
		}
		popup.SetRows(rows)
	case EventSelect:
		popup.Select(st.Index)
	case EventMove:
		popup.MoveSelection(st.Delta)
	case EventShow:
		popup.Show()
	case EventHide:
		popup.Hide()
	case EventAdvance:
		rn.loop.Advance(st.Duration)
	case EventKey:
		rn.window.SimAddressBar().Press(st.keyEvent())
	case EventClick:
		popup.Click()
	case EventFocus:
		s, ok := rn.preview()
		if !ok {
			return usecase.ErrNoSurface
		}
		s.Focus()
	case EventSwitchTab:
		return rn.window.SelectTab(st.Index)
	case EventCommitNavigation:
		if s, ok := rn.preview(); ok {
			s.CommitNavigation()
		}
		rn.window.SimActiveTab().LiveSurface().CommitNavigation()
	case EventClose:
		rn.window.Close()
	}
	return nil
}

// preview returns the preview surface, if any.
func (rn *run) preview() (*simhost.Surface, bool) {
	if rn.ctrl == nil {
		return nil, false
	}
	s, ok := rn.ctrl.Surfaces().Surface().(*simhost.Surface)
	return s, ok
}

func (rn *run) frame(step int, event string) Frame {
	f := Frame{
		Step:    step,
		At:      rn.loop.Now().Sub(epoch),
		Event:   event,
		Watcher: watcherDisabled,
		Address: rn.window.SimAddressBar().Text(),
	}
	if rn.ctrl != nil {
		f.Watcher = rn.ctrl.Watcher().State().String()
		f.Preview = rn.ctrl.Surfaces().Destination()
	}

	if s, ok := rn.preview(); ok {
		f.Loads = len(s.Loads())
	}

	if tab := rn.window.SimActiveTab(); tab != nil {
		live := tab.LiveSurface()
		f.Tab = tab.ID()
		f.Live = live.CurrentURI()
		for _, e := range live.History() {
			f.History = append(f.History, e.URI)
		}
	}
	for uri := range rn.window.OpenPages() {
		f.Open = append(f.Open, uri)
	}
	sort.Strings(f.Open)
	return f
}
