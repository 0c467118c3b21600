package simhost

import (
	"fmt"

	"github.com/bnema/instapreview/internal/application/port"
)

// Tab is an in-memory live browsing session.
type Tab struct {
	id         string
	window     *Window
	container  port.ContainerID
	surface    *Surface
	registered string

	observers      int
	observerTarget *backing

	title     string
	icon      string
	refreshes int
	swaps     int

	// FailSwap makes SwapBacking fail.
	FailSwap error
}

var _ port.Tab = (*Tab)(nil)

// ID returns the tab identifier.
func (t *Tab) ID() string { return t.id }

// Container returns the tab's widget stack.
func (t *Tab) Container() port.ContainerID { return t.container }

// Surface returns the live render surface.
func (t *Tab) Surface() port.Surface { return t.surface }

// LiveSurface returns the concrete live surface.
func (t *Tab) LiveSurface() *Surface { return t.surface }

// RegisteredOpenURI returns the URI registered as open for this tab.
func (t *Tab) RegisteredOpenURI() string { return t.registered }

// SetRegisteredOpenURI records the URI registered as open for this tab.
func (t *Tab) SetRegisteredOpenURI(uri string) { t.registered = uri }

// SuspendProgress unhooks the progress observer.
func (t *Tab) SuspendProgress() {
	if t.observers > 0 {
		t.observers--
	}
	if t.observers == 0 {
		t.observerTarget = nil
	}
}

// ResumeProgress hooks the progress observer to the current backing store.
func (t *Tab) ResumeProgress() {
	t.observers++
	t.observerTarget = t.surface.backing
}

// ProgressObservers returns how many progress observers are hooked.
func (t *Tab) ProgressObservers() int { return t.observers }

// ObserverBoundToLive reports whether the observer follows the current backing store.
func (t *Tab) ObserverBoundToLive() bool {
	return t.observerTarget != nil && t.observerTarget == t.surface.backing
}

// SwapBacking exchanges backing stores with a preview surface.
func (t *Tab) SwapBacking(preview port.Surface) error {
	if t.FailSwap != nil {
		return t.FailSwap
	}
	ps, ok := preview.(*Surface)
	if !ok {
		return fmt.Errorf("cannot swap with foreign surface %T", preview)
	}
	if ps.destroyed {
		return ErrDestroyed
	}
	t.surface.backing, ps.backing = ps.backing, t.surface.backing
	t.swaps++
	return nil
}

// RefreshChrome re-derives title and icon from the backing store.
func (t *Tab) RefreshChrome() {
	t.refreshes++
	t.title = t.surface.backing.title
	if t.title == "" {
		t.title = t.surface.CurrentURI()
	}
	t.icon = "default"
	if t.window.activeTab() == t {
		t.window.chromeTitle = t.title
	}
}

// Title returns the tab label.
func (t *Tab) Title() string { return t.title }

// Icon returns the tab icon name.
func (t *Tab) Icon() string { return t.icon }

// Swaps returns how many backing swaps happened.
func (t *Tab) Swaps() int { return t.swaps }
