package simhost

import (
	"errors"
	"fmt"

	"github.com/bnema/instapreview/internal/application/port"
	"github.com/bnema/instapreview/internal/domain/entity"
)

// ErrDestroyed is returned by operations on a destroyed surface.
var ErrDestroyed = errors.New("surface destroyed")

// backing is the swappable render state behind a surface.
// The document is what the surface displays; it only changes when a
// navigation commits, not when history is rewritten.
type backing struct {
	history  []entity.NavigationEntry
	document string
	pending  string
	title    string
}

// Surface is an in-memory render surface.
type Surface struct {
	id      int
	window  *Window
	opts    port.SurfaceOptions
	backing *backing
	parent  port.ContainerID

	destroyed bool
	focused   bool

	loads []string
	stops int

	// FailLoad makes the next Load calls fail.
	FailLoad error
	// FailAttach makes AttachTo fail.
	FailAttach error
}

var _ port.Surface = (*Surface)(nil)

func newSurface(w *Window, opts port.SurfaceOptions, history []entity.NavigationEntry) *Surface {
	w.nextSurface++
	return &Surface{
		id:      w.nextSurface,
		window:  w,
		opts:    opts,
		backing: newBacking(history),
	}
}

func newBacking(history []entity.NavigationEntry) *backing {
	b := &backing{history: history}
	if n := len(history); n > 0 {
		b.document = history[n-1].URI
		b.title = history[n-1].Title
	}
	return b
}

// ID returns the surface serial number within its window.
func (s *Surface) ID() int { return s.id }

// Load issues a navigation. Unless the window defers commits, it commits at once.
func (s *Surface) Load(uri string) error {
	if s.destroyed {
		return ErrDestroyed
	}
	if s.FailLoad != nil {
		return s.FailLoad
	}
	s.loads = append(s.loads, uri)
	s.backing.pending = uri
	if !s.window.DeferCommits {
		s.commit()
	}
	return nil
}

// CommitNavigation completes a deferred navigation.
func (s *Surface) CommitNavigation() bool {
	if s.backing.pending == "" {
		return false
	}
	s.commit()
	return true
}

func (s *Surface) commit() {
	uri := s.backing.pending
	s.backing.pending = ""
	title := s.window.TitleFor(uri)
	s.backing.history = append(s.backing.history, entity.NavigationEntry{URI: uri, Title: title})
	s.backing.document = uri
	s.setTitle(title)
}

func (s *Surface) setTitle(title string) {
	s.backing.title = title
	if s.opts.SuppressTitleChanges {
		return
	}
	s.window.titleChanged(s, title)
}

// Stop aborts a pending navigation.
func (s *Surface) Stop() {
	s.stops++
	s.backing.pending = ""
}

// CurrentURI returns the URI of the displayed document.
func (s *Surface) CurrentURI() string { return s.backing.document }

// PendingURI returns the uncommitted navigation target, if any.
func (s *Surface) PendingURI() string { return s.backing.pending }

// History returns a copy of the session history.
func (s *Surface) History() []entity.NavigationEntry {
	out := make([]entity.NavigationEntry, len(s.backing.history))
	copy(out, s.backing.history)
	return out
}

// ReplaceHistory installs entries as the session history.
func (s *Surface) ReplaceHistory(entries []entity.NavigationEntry) {
	s.backing.history = append([]entity.NavigationEntry(nil), entries...)
}

// Parent returns the attached container.
func (s *Surface) Parent() port.ContainerID { return s.parent }

// AttachTo reparents the surface.
func (s *Surface) AttachTo(container port.ContainerID) error {
	if s.destroyed {
		return ErrDestroyed
	}
	if s.FailAttach != nil {
		return s.FailAttach
	}
	if !s.window.hasContainer(container) {
		return fmt.Errorf("unknown container %q", container)
	}
	s.parent = container
	s.window.reparents++
	return nil
}

// Detach removes the surface from its container.
func (s *Surface) Detach() { s.parent = "" }

// Destroy releases the surface.
func (s *Surface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.parent = ""
	s.focused = false
	s.window.destroyed++
}

// Focus gives the surface input focus, firing the focus handler.
func (s *Surface) Focus() {
	if s.destroyed {
		return
	}
	s.window.focusSurface(s)
	if s.opts.OnFocus != nil {
		s.opts.OnFocus()
	}
}

// Blur removes input focus.
func (s *Surface) Blur() {
	s.focused = false
	if s.window.focused == s {
		s.window.focused = nil
	}
}

// Loads returns the navigations issued so far.
func (s *Surface) Loads() []string { return append([]string(nil), s.loads...) }

// Stops returns how many times Stop was called.
func (s *Surface) Stops() int { return s.stops }

// Destroyed reports whether Destroy was called.
func (s *Surface) Destroyed() bool { return s.destroyed }

// Focused reports whether the surface has input focus.
func (s *Surface) Focused() bool { return s.focused }

// Title returns the page title of the current backing store.
func (s *Surface) Title() string { return s.backing.title }
