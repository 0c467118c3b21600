// Package windows discovers browser windows, present and future, and hands
// each one to a callback once its chrome has finished loading.
package windows

import (
	"context"
	"fmt"

	"github.com/bnema/instapreview/internal/application/port"
	"github.com/bnema/instapreview/internal/logging"
)

// Watcher applies callbacks to browser windows.
type Watcher struct {
	ctx      context.Context
	source   port.WindowSource
	teardown port.Teardown
}

// NewWatcher creates a watcher over source. Subscriptions are released through teardown.
func NewWatcher(ctx context.Context, source port.WindowSource, teardown port.Teardown) *Watcher {
	return &Watcher{
		ctx:      logging.WithComponent(ctx, "window-watcher"),
		source:   source,
		teardown: teardown,
	}
}

// ForEachBrowserWindow runs cb once for every existing and future window,
// after that window's load has completed. Panics raised by cb are logged and
// never propagate.
func (w *Watcher) ForEachBrowserWindow(cb func(port.BrowserWindow)) {
	for _, win := range w.source.Windows() {
		if win.IsLoaded() {
			w.safeCall(cb, win)
		} else {
			w.runOnLoad(cb, win)
		}
	}

	cancel := w.source.OnWindowOpened(func(win port.BrowserWindow) {
		w.runOnLoad(cb, win)
	})
	w.teardown.OnTeardown(nil, cancel)
}

// runOnLoad defers cb until win has loaded. The pending load listener is
// released on teardown or when win unloads first.
func (w *Watcher) runOnLoad(cb func(port.BrowserWindow), win port.BrowserWindow) {
	if win.IsLoaded() {
		w.safeCall(cb, win)
		return
	}
	var release func()
	fired := false
	cancel := win.OnLoad(func() {
		if fired {
			return
		}
		fired = true
		if release != nil {
			release()
		}
		w.safeCall(cb, win)
	})
	release = w.teardown.OnTeardown(win, cancel)
	if fired {
		release()
	}
}

func (w *Watcher) safeCall(cb func(port.BrowserWindow), win port.BrowserWindow) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(w.ctx).Warn().
				Str("window_id", win.ID()).
				Str("panic", fmt.Sprint(r)).
				Msg("window callback failed")
		}
	}()
	cb(win)
}
