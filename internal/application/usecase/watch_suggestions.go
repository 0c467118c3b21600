package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/instapreview/internal/application/port"
	"github.com/bnema/instapreview/internal/domain/preview"
	"github.com/bnema/instapreview/internal/logging"
)

// DefaultPollInterval is the delay between two suggestion-popup checks.
const DefaultPollInterval = 100 * time.Millisecond

// WatcherState is the lifecycle state of a SuggestionWatcher.
type WatcherState int

const (
	WatcherIdle WatcherState = iota
	WatcherPolling
	WatcherStopped
)

// String returns the state name.
func (s WatcherState) String() string {
	switch s {
	case WatcherIdle:
		return "idle"
	case WatcherPolling:
		return "polling"
	case WatcherStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// WatcherConfig tunes the polling loop.
type WatcherConfig struct {
	PollInterval    time.Duration
	EligibleSchemes []string
}

// DefaultWatcherConfig returns the stock polling settings.
func DefaultWatcherConfig() WatcherConfig {
	return WatcherConfig{
		PollInterval:    DefaultPollInterval,
		EligibleSchemes: preview.DefaultEligibleSchemes,
	}
}

// SuggestionWatcher polls the suggestion popup while it is open and drives
// the preview surface from the highlighted row.
//
// The loop is a self-rescheduling timer task on the UI scheduler: each tick
// schedules the next one. Closing the popup raises a stop flag that the next
// tick consumes, so the loop ends without a stray iteration.
type SuggestionWatcher struct {
	ctx       context.Context
	window    port.BrowserWindow
	surfaces  *PreviewSurfaceManager
	gate      *preview.DebounceGate
	top       *preview.TopDestinations
	scheduler port.Scheduler
	cfg       WatcherConfig

	state         WatcherState
	stopRequested bool
	cancelTick    func()
}

// NewSuggestionWatcher creates an idle watcher.
func NewSuggestionWatcher(
	ctx context.Context,
	window port.BrowserWindow,
	surfaces *PreviewSurfaceManager,
	gate *preview.DebounceGate,
	top *preview.TopDestinations,
	scheduler port.Scheduler,
	cfg WatcherConfig,
) *SuggestionWatcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if len(cfg.EligibleSchemes) == 0 {
		cfg.EligibleSchemes = preview.DefaultEligibleSchemes
	}
	return &SuggestionWatcher{
		ctx:       logging.WithComponent(ctx, "suggestion-watcher"),
		window:    window,
		surfaces:  surfaces,
		gate:      gate,
		top:       top,
		scheduler: scheduler,
		cfg:       cfg,
	}
}

// State returns the current lifecycle state.
func (w *SuggestionWatcher) State() WatcherState {
	return w.state
}

// HandleShown starts polling when the popup opens. A popup reopened before the
// pending stop was consumed keeps the running loop alive.
func (w *SuggestionWatcher) HandleShown() {
	switch w.state {
	case WatcherStopped:
		return
	case WatcherPolling:
		w.stopRequested = false
		return
	}

	w.state = WatcherPolling
	w.stopRequested = false
	logging.FromContext(w.ctx).Debug().Msg("popup shown, polling started")
	w.tick()
}

// HandleHidden asks the loop to stop at its next tick.
func (w *SuggestionWatcher) HandleHidden() {
	if w.state != WatcherPolling {
		return
	}
	w.stopRequested = true
}

// Stop ends the loop permanently and discards the preview. Used on window teardown.
func (w *SuggestionWatcher) Stop() {
	if w.state == WatcherStopped {
		return
	}
	w.state = WatcherStopped
	w.stopRequested = true
	if w.cancelTick != nil {
		w.cancelTick()
		w.cancelTick = nil
	}
	w.surfaces.Discard(w.ctx)
	logging.FromContext(w.ctx).Debug().Msg("suggestion watcher stopped")
}

func (w *SuggestionWatcher) tick() {
	w.cancelTick = nil
	if w.state != WatcherPolling {
		return
	}
	if w.stopRequested {
		w.stopRequested = false
		w.state = WatcherIdle
		logging.FromContext(w.ctx).Debug().Msg("popup hidden, polling ended")
		return
	}

	w.cancelTick = w.scheduler.AfterFunc(w.cfg.PollInterval, w.tick)
	Guard(w.ctx, "poll suggestion popup", w.step)
}

func (w *SuggestionWatcher) step() error {
	popup := w.window.Popup()
	if !popup.IsOpen() {
		return nil
	}

	suggestion, ok := popup.SelectedSuggestion()
	if !ok {
		w.surfaces.Discard(w.ctx)
		return nil
	}

	if !preview.IsEligible(suggestion.Destination, w.cfg.EligibleSchemes) {
		w.surfaces.Discard(w.ctx)
		return nil
	}

	tab, err := w.window.ActiveTab()
	if err != nil {
		w.surfaces.Discard(w.ctx)
		return fmt.Errorf("active tab: %w", err)
	}
	if _, err := w.surfaces.EnsureSurface(w.ctx); err != nil {
		return err
	}
	if err := w.surfaces.AttachTo(w.ctx, tab.Container()); err != nil {
		w.surfaces.Discard(w.ctx)
		return err
	}

	if w.surfaces.IsShowing(suggestion.Destination) {
		return nil
	}

	trusted := preview.IsTrusted(suggestion, w.top)
	if w.gate.Decide(suggestion, trusted, w.scheduler.Now()) == preview.Hold {
		return nil
	}

	if _, err := w.surfaces.Load(w.ctx, suggestion.Destination); err != nil {
		w.surfaces.Discard(w.ctx)
		return err
	}
	return nil
}
