package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/instapreview/internal/application/port"
	"github.com/bnema/instapreview/internal/logging"
)

// ErrNoSurface is returned when an operation needs a preview surface and none exists.
var ErrNoSurface = errors.New("no preview surface")

// PreviewSurfaceManager owns the single off-screen preview surface of a window.
// Other components only go through its operations.
type PreviewSurfaceManager struct {
	window      port.BrowserWindow
	surface     port.Surface
	destination string
	onFocus     func()
}

// NewPreviewSurfaceManager creates a manager for window.
func NewPreviewSurfaceManager(window port.BrowserWindow) *PreviewSurfaceManager {
	return &PreviewSurfaceManager{window: window}
}

// SetFocusHandler sets the callback invoked when the user focuses the preview.
// It must be set before the first surface is created.
func (m *PreviewSurfaceManager) SetFocusHandler(fn func()) {
	m.onFocus = fn
}

// HasSurface reports whether a preview surface currently exists.
func (m *PreviewSurfaceManager) HasSurface() bool {
	return m.surface != nil
}

// Surface returns the current preview surface, or nil.
func (m *PreviewSurfaceManager) Surface() port.Surface {
	return m.surface
}

// Destination returns the destination last loaded into the preview, or "".
func (m *PreviewSurfaceManager) Destination() string {
	return m.destination
}

// IsShowing reports whether destination is already loaded in the preview.
func (m *PreviewSurfaceManager) IsShowing(destination string) bool {
	return m.surface != nil && destination != "" && m.destination == destination
}

// EnsureSurface returns the existing surface or creates one. New surfaces keep
// their title changes away from window chrome, and a focus on them commits
// the preview.
func (m *PreviewSurfaceManager) EnsureSurface(ctx context.Context) (port.Surface, error) {
	if m.surface != nil {
		return m.surface, nil
	}

	surface, err := m.window.NewSurface(port.SurfaceOptions{
		SuppressTitleChanges: true,
		OnFocus:              m.handleFocus,
	})
	if err != nil {
		return nil, fmt.Errorf("create preview surface: %w", err)
	}
	if surface == nil {
		return nil, fmt.Errorf("create preview surface: host returned nil")
	}

	m.surface = surface
	logging.FromContext(ctx).Debug().Msg("preview surface created")
	return surface, nil
}

func (m *PreviewSurfaceManager) handleFocus() {
	if m.onFocus != nil {
		m.onFocus()
	}
}

// AttachTo reparents the surface under container if it is not already there.
func (m *PreviewSurfaceManager) AttachTo(ctx context.Context, container port.ContainerID) error {
	if m.surface == nil {
		return ErrNoSurface
	}
	if m.surface.Parent() == container {
		return nil
	}
	if err := m.surface.AttachTo(container); err != nil {
		return fmt.Errorf("attach preview to %q: %w", container, err)
	}
	logging.FromContext(ctx).Debug().Str("container", string(container)).Msg("preview surface attached")
	return nil
}

// Load navigates the preview to destination. Loading the destination that is
// already showing is a no-op. It reports whether a navigation was issued.
func (m *PreviewSurfaceManager) Load(ctx context.Context, destination string) (bool, error) {
	if m.surface == nil {
		return false, ErrNoSurface
	}
	if destination == m.destination {
		return false, nil
	}
	if err := m.surface.Load(destination); err != nil {
		return false, fmt.Errorf("load preview: %w", err)
	}
	m.destination = destination

	logging.URL(logging.FromContext(ctx).Debug(), destination).Msg("preview loading")
	return true, nil
}

// Discard detaches and destroys the surface. It is a no-op without a surface.
func (m *PreviewSurfaceManager) Discard(ctx context.Context) {
	surface := m.surface
	if surface == nil {
		return
	}
	m.surface = nil
	m.destination = ""

	Guard(ctx, "discard preview surface", func() error {
		surface.Detach()
		surface.Destroy()
		return nil
	})
	logging.FromContext(ctx).Debug().Msg("preview surface discarded")
}
