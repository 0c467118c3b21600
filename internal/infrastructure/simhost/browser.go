package simhost

import "github.com/bnema/instapreview/internal/application/port"

// Browser is an in-memory window manager.
type Browser struct {
	windows []*Window
	opened  hub[port.BrowserWindow]
}

var _ port.WindowSource = (*Browser)(nil)

// NewBrowser creates a browser without windows.
func NewBrowser() *Browser {
	return &Browser{}
}

// OpenWindow opens a window that is still loading and announces it.
func (b *Browser) OpenWindow() *Window {
	w := newWindow()
	b.windows = append(b.windows, w)
	b.opened.emit(w)
	return w
}

// AddLoadedWindow adds an already loaded window without announcing it,
// as if it existed before anyone subscribed.
func (b *Browser) AddLoadedWindow() *Window {
	w := NewWindow()
	b.windows = append(b.windows, w)
	return w
}

// Windows returns the open windows.
func (b *Browser) Windows() []port.BrowserWindow {
	out := make([]port.BrowserWindow, 0, len(b.windows))
	for _, w := range b.windows {
		if !w.closed {
			out = append(out, w)
		}
	}
	return out
}

// OnWindowOpened subscribes to new windows.
func (b *Browser) OnWindowOpened(fn func(port.BrowserWindow)) func() {
	return b.opened.add(fn)
}

// Subscribers returns the number of window-opened subscriptions.
func (b *Browser) Subscribers() int { return b.opened.len() }
