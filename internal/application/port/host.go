// Package port defines application-layer interfaces for external capabilities.
// Ports abstract the host browser, allowing the preview engine to remain
// independent of a specific toolkit (GTK, WebKit, a simulated host in tests).
package port

import (
	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
)

// ContainerID identifies the widget stack that hosts a tab's render surface.
type ContainerID string

// Surface is an embeddable navigable viewport.
type Surface interface {
	// Load issues a navigation to uri.
	Load(uri string) error
	// Stop aborts any in-flight navigation.
	Stop()
	// CurrentURI is the URI of the committed current entry, or "" before the first commit.
	CurrentURI() string
	// History returns the back list followed by the current entry.
	History() []entity.NavigationEntry
	// ReplaceHistory purges the session history and installs entries, the last one current.
	ReplaceHistory(entries []entity.NavigationEntry)

	// Parent returns the container the surface is attached to, or "" when detached.
	Parent() ContainerID
	// AttachTo reparents the surface under container.
	AttachTo(container ContainerID) error
	// Detach removes the surface from its container.
	Detach()
	// Destroy releases the surface. It must not be used afterwards.
	Destroy()

	Focus()
	Blur()
}

// SurfaceOptions are the structural behaviors wired at surface creation.
type SurfaceOptions struct {
	// SuppressTitleChanges keeps page title changes from reaching window chrome.
	SuppressTitleChanges bool
	// OnFocus is invoked when the user focuses the surface.
	OnFocus func()
}

// Tab is the live browsing session of one tab.
type Tab interface {
	ID() string
	// Container is the stack holding the tab's render surface.
	Container() ContainerID
	// Surface is the live render surface.
	Surface() Surface

	RegisteredOpenURI() string
	SetRegisteredOpenURI(uri string)

	// SuspendProgress unhooks the tab's navigation-progress observer.
	SuspendProgress()
	// ResumeProgress hooks the observer again, bound to the current backing store.
	ResumeProgress()

	// SwapBacking exchanges the backing render state of the live surface with
	// preview. The preview becomes visible in the tab; preview then holds the
	// old backing store.
	SwapBacking(preview Surface) error

	// RefreshChrome re-derives title, default icon and active-browser bookkeeping.
	RefreshChrome()
}

// Popup is the address-bar suggestion popup.
type Popup interface {
	IsOpen() bool
	// SelectedSuggestion returns the highlighted row, if any.
	SelectedSuggestion() (entity.Suggestion, bool)

	MaxRows() int
	SetMaxRows(rows int)

	OnShown(fn func()) (cancel func())
	OnHidden(fn func()) (cancel func())
	OnClick(fn func()) (cancel func())
}

// AddressBar is the location entry of a window.
type AddressBar interface {
	Text() string
	SetText(text string)
	OnKeyPress(fn func(preview.KeyEvent)) (cancel func())
}

// BrowserWindow is the narrow capability set the preview engine needs from a
// top-level browser window.
type BrowserWindow interface {
	ID() string

	// ActiveTab returns the selected tab.
	ActiveTab() (Tab, error)
	// NewSurface creates a detached render surface.
	NewSurface(opts SurfaceOptions) (Surface, error)

	RegisterOpenPage(uri string)
	UnregisterOpenPage(uri string)

	Popup() Popup
	AddressBar() AddressBar

	// IsLoaded reports whether the window finished loading its chrome.
	IsLoaded() bool
	// OnLoad runs fn once when loading completes.
	OnLoad(fn func()) (cancel func())
	// OnUnload runs fn once when the window tears down.
	OnUnload(fn func()) (cancel func())
}

// WindowSource enumerates browser windows.
type WindowSource interface {
	Windows() []BrowserWindow
	OnWindowOpened(fn func(BrowserWindow)) (cancel func())
}
