// Package instant wires the instant preview engine into browser windows:
// popup and address-bar events in, preview surface operations out.
package instant

import (
	"context"
	"time"

	"github.com/bnema/instapreview/internal/application/port"
	"github.com/bnema/instapreview/internal/application/usecase"
	"github.com/bnema/instapreview/internal/domain/preview"
	"github.com/bnema/instapreview/internal/logging"
)

// DefaultMaxRows is the popup row count while previews are active, leaving
// room below the popup for the preview to be seen.
const DefaultMaxRows = 3

// Config tunes the per-window preview behavior.
type Config struct {
	// Enabled gates Install. Attach always wires the window it is given.
	Enabled         bool
	PollInterval    time.Duration
	DebounceDelay   time.Duration
	EligibleSchemes []string
	MaxRows         int
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		PollInterval:    usecase.DefaultPollInterval,
		DebounceDelay:   preview.DefaultDebounceDelay,
		EligibleSchemes: preview.DefaultEligibleSchemes,
		MaxRows:         DefaultMaxRows,
	}
}

// Deps are the collaborators shared by every window.
type Deps struct {
	Scheduler port.Scheduler
	Teardown  port.Teardown
	Top       *preview.TopDestinations
	Config    Config
}

// Controller is the preview engine bound to one window.
type Controller struct {
	ctx      context.Context
	window   port.BrowserWindow
	deps     Deps
	surfaces *usecase.PreviewSurfaceManager
	swapper  *usecase.CommitSwapper
	watcher  *usecase.SuggestionWatcher
}

// Attach installs previews on window. Everything it registers is released
// when the window unloads or when deps.Teardown runs its callbacks.
func Attach(ctx context.Context, window port.BrowserWindow, deps Deps) *Controller {
	ctx = logging.WithWindowID(logging.WithComponent(ctx, "instant-preview"), window.ID())
	cfg := deps.Config

	c := &Controller{
		ctx:      ctx,
		window:   window,
		deps:     deps,
		surfaces: usecase.NewPreviewSurfaceManager(window),
	}
	c.swapper = usecase.NewCommitSwapper(window, c.surfaces)
	c.surfaces.SetFocusHandler(c.Commit)
	c.watcher = usecase.NewSuggestionWatcher(
		ctx,
		window,
		c.surfaces,
		preview.NewDebounceGate(cfg.DebounceDelay),
		deps.Top,
		deps.Scheduler,
		usecase.WatcherConfig{PollInterval: cfg.PollInterval, EligibleSchemes: cfg.EligibleSchemes},
	)

	popup := window.Popup()
	if cfg.MaxRows > 0 {
		origRows := popup.MaxRows()
		popup.SetMaxRows(cfg.MaxRows)
		deps.Teardown.OnTeardown(window, func() { popup.SetMaxRows(origRows) })
	}

	deps.Teardown.OnTeardown(window, c.watcher.Stop)

	c.listen(popup.OnShown(func() {
		usecase.Guard(ctx, "popup shown", func() error {
			c.watcher.HandleShown()
			return nil
		})
	}))
	c.listen(popup.OnHidden(c.watcher.HandleHidden))
	c.listen(popup.OnClick(c.Commit))
	c.listen(window.AddressBar().OnKeyPress(c.HandleKey))

	logging.FromContext(ctx).Debug().Int("max_rows", cfg.MaxRows).Msg("instant preview attached")
	return c
}

func (c *Controller) listen(cancel func()) {
	c.deps.Teardown.OnTeardown(c.window, cancel)
}

// HandleKey reacts to an address-bar keypress.
func (c *Controller) HandleKey(ev preview.KeyEvent) {
	switch preview.ClassifyKey(ev) {
	case preview.ActionCommit:
		c.Commit()
	case preview.ActionCancel:
		c.Cancel()
	}
}

// Commit promotes the preview into the active tab, if one is showing.
func (c *Controller) Commit() {
	usecase.Guard(c.ctx, "commit preview", func() error {
		_, err := c.swapper.Persist(c.ctx)
		return err
	})
}

// Cancel discards the preview, if one is showing.
func (c *Controller) Cancel() {
	usecase.Guard(c.ctx, "cancel preview", func() error {
		c.surfaces.Discard(c.ctx)
		return nil
	})
}

// Window returns the window the controller is bound to.
func (c *Controller) Window() port.BrowserWindow { return c.window }

// Surfaces exposes the preview surface manager.
func (c *Controller) Surfaces() *usecase.PreviewSurfaceManager { return c.surfaces }

// Watcher exposes the suggestion watcher.
func (c *Controller) Watcher() *usecase.SuggestionWatcher { return c.watcher }
