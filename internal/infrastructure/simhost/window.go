// Package simhost is an in-memory browser host. It implements the
// port.BrowserWindow capability set with plain Go state so the preview engine
// can run headless: in tests, in scripted scenarios and in the playground.
package simhost

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bnema/instapreview/internal/application/port"
	"github.com/bnema/instapreview/internal/domain/entity"
)

// ErrNoTabs is returned by ActiveTab on a window without tabs.
var ErrNoTabs = errors.New("window has no tabs")

// Window is an in-memory top-level browser window.
type Window struct {
	id     string
	tabs   []*Tab
	active int

	popup *Popup
	bar   *AddressBar

	openPages map[string]int
	titles    map[string]string

	loaded bool
	closed bool
	onLoad hub[struct{}]
	unload hub[struct{}]

	chromeTitle string
	focused     *Surface

	nextSurface int
	nextTab     int
	created     int
	destroyed   int
	reparents   int

	// DeferCommits keeps navigations pending until CommitNavigation.
	DeferCommits bool
	// FailNewSurface makes NewSurface fail.
	FailNewSurface error
}

var _ port.BrowserWindow = (*Window)(nil)

// NewWindow creates a loaded window with a single blank tab.
func NewWindow() *Window {
	w := newWindow()
	w.loaded = true
	return w
}

func newWindow() *Window {
	w := &Window{
		id:        uuid.NewString(),
		popup:     newPopup(),
		bar:       &AddressBar{},
		openPages: make(map[string]int),
		titles:    make(map[string]string),
	}
	w.AddTab(entity.PlaceholderURI)
	return w
}

// ID returns the window identifier.
func (w *Window) ID() string { return w.id }

// AddTab opens a tab showing uri and returns it. The first tab becomes active.
func (w *Window) AddTab(uri string) *Tab {
	w.nextTab++
	t := &Tab{
		id:        fmt.Sprintf("tab-%d", w.nextTab),
		window:    w,
		container: port.ContainerID(fmt.Sprintf("%s/stack-%d", w.id[:8], w.nextTab)),
	}
	var history []entity.NavigationEntry
	if uri != "" {
		history = []entity.NavigationEntry{{URI: uri, Title: w.TitleFor(uri)}}
	}
	t.surface = newSurface(w, port.SurfaceOptions{}, history)
	t.surface.parent = t.container
	t.ResumeProgress()
	if uri != "" && uri != entity.PlaceholderURI {
		w.RegisterOpenPage(uri)
		t.registered = uri
	}
	w.tabs = append(w.tabs, t)
	return t
}

// Tabs returns the tabs in order.
func (w *Window) Tabs() []*Tab { return append([]*Tab(nil), w.tabs...) }

// SelectTab activates tab i.
func (w *Window) SelectTab(i int) error {
	if i < 0 || i >= len(w.tabs) {
		return fmt.Errorf("tab index %d out of range", i)
	}
	w.active = i
	w.chromeTitle = w.tabs[i].title
	return nil
}

// ActiveTab returns the selected tab.
func (w *Window) ActiveTab() (port.Tab, error) {
	t := w.activeTab()
	if t == nil {
		return nil, ErrNoTabs
	}
	return t, nil
}

// SimActiveTab returns the concrete selected tab.
func (w *Window) SimActiveTab() *Tab { return w.activeTab() }

func (w *Window) activeTab() *Tab {
	if w.active < 0 || w.active >= len(w.tabs) {
		return nil
	}
	return w.tabs[w.active]
}

func (w *Window) hasContainer(c port.ContainerID) bool {
	for _, t := range w.tabs {
		if t.container == c {
			return true
		}
	}
	return false
}

// NewSurface creates a detached surface.
func (w *Window) NewSurface(opts port.SurfaceOptions) (port.Surface, error) {
	if w.closed {
		return nil, errors.New("window closed")
	}
	if w.FailNewSurface != nil {
		return nil, w.FailNewSurface
	}
	w.created++
	return newSurface(w, opts, nil), nil
}

// RegisterOpenPage marks uri as open in some tab.
func (w *Window) RegisterOpenPage(uri string) { w.openPages[uri]++ }

// UnregisterOpenPage removes one open mark for uri.
func (w *Window) UnregisterOpenPage(uri string) {
	if w.openPages[uri] <= 1 {
		delete(w.openPages, uri)
		return
	}
	w.openPages[uri]--
}

// OpenPages returns a copy of the open-page registry.
func (w *Window) OpenPages() map[string]int {
	out := make(map[string]int, len(w.openPages))
	for k, v := range w.openPages {
		out[k] = v
	}
	return out
}

// Popup returns the suggestion popup.
func (w *Window) Popup() port.Popup { return w.popup }

// SimPopup returns the concrete popup.
func (w *Window) SimPopup() *Popup { return w.popup }

// AddressBar returns the location entry.
func (w *Window) AddressBar() port.AddressBar { return w.bar }

// SimAddressBar returns the concrete location entry.
func (w *Window) SimAddressBar() *AddressBar { return w.bar }

// IsLoaded reports whether the window finished loading.
func (w *Window) IsLoaded() bool { return w.loaded }

// OnLoad subscribes to load completion.
func (w *Window) OnLoad(fn func()) func() { return w.onLoad.add(voidFn(fn)) }

// OnUnload subscribes to teardown.
func (w *Window) OnUnload(fn func()) func() { return w.unload.add(voidFn(fn)) }

// FinishLoad marks the window loaded and fires load listeners.
func (w *Window) FinishLoad() {
	if w.loaded {
		return
	}
	w.loaded = true
	w.onLoad.emit(struct{}{})
}

// Close tears the window down and fires unload listeners.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.popup.open = false
	w.unload.emit(struct{}{})
}

// Closed reports whether Close was called.
func (w *Window) Closed() bool { return w.closed }

// SetTitle sets the page title served for uri.
func (w *Window) SetTitle(uri, title string) { w.titles[uri] = title }

// TitleFor returns the page title served for uri.
func (w *Window) TitleFor(uri string) string {
	if t, ok := w.titles[uri]; ok {
		return t
	}
	host := uri
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	return host
}

func (w *Window) titleChanged(s *Surface, title string) {
	if t := w.activeTab(); t != nil && (t.surface == s || s.parent == t.container) {
		w.chromeTitle = title
	}
}

func (w *Window) focusSurface(s *Surface) {
	if w.focused != nil && w.focused != s {
		w.focused.focused = false
	}
	w.focused = s
	s.focused = true
}

// ChromeTitle returns the window title bar text.
func (w *Window) ChromeTitle() string { return w.chromeTitle }

// FocusedSurface returns the surface with input focus, or nil.
func (w *Window) FocusedSurface() *Surface { return w.focused }

// Stats reports surface lifecycle counters.
type Stats struct {
	Created   int
	Destroyed int
	Reparents int
}

// Stats returns surface lifecycle counters for previews.
func (w *Window) Stats() Stats {
	return Stats{Created: w.created, Destroyed: w.destroyed, Reparents: w.reparents}
}

// LivePreviews returns how many preview surfaces exist and are not destroyed.
func (w *Window) LivePreviews() int {
	return w.created - w.destroyed
}
