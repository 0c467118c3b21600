package usecase_test

import (
	"errors"
	"testing"

	"github.com/bnema/instapreview/internal/application/usecase"
	"github.com/bnema/instapreview/internal/infrastructure/simhost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewSurfaceManager_EnsureSurfaceIsLazyAndSingle(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.surfaces.HasSurface())

	first, err := h.surfaces.EnsureSurface(h.ctx)
	require.NoError(t, err)
	second, err := h.surfaces.EnsureSurface(h.ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, h.window.Stats().Created)
	assert.Equal(t, 1, h.window.LivePreviews())
}

func TestPreviewSurfaceManager_EnsureSurfaceFailure(t *testing.T) {
	h := newHarness(t)
	h.window.FailNewSurface = errors.New("no widget")

	_, err := h.surfaces.EnsureSurface(h.ctx)

	assert.Error(t, err)
	assert.False(t, h.surfaces.HasSurface())
}

func TestPreviewSurfaceManager_AttachIsIdempotent(t *testing.T) {
	h := newHarness(t)
	_, err := h.surfaces.EnsureSurface(h.ctx)
	require.NoError(t, err)
	container := h.window.SimActiveTab().Container()

	require.NoError(t, h.surfaces.AttachTo(h.ctx, container))
	require.NoError(t, h.surfaces.AttachTo(h.ctx, container))

	assert.Equal(t, container, h.surfaces.Surface().Parent())
	assert.Equal(t, 1, h.window.Stats().Reparents)
}

func TestPreviewSurfaceManager_AttachWithoutSurface(t *testing.T) {
	h := newHarness(t)
	err := h.surfaces.AttachTo(h.ctx, h.window.SimActiveTab().Container())
	assert.ErrorIs(t, err, usecase.ErrNoSurface)
}

func TestPreviewSurfaceManager_RepeatedLoadNavigatesOnce(t *testing.T) {
	h := newHarness(t)
	_, err := h.surfaces.EnsureSurface(h.ctx)
	require.NoError(t, err)

	issued, err := h.surfaces.Load(h.ctx, "https://example.com")
	require.NoError(t, err)
	assert.True(t, issued)

	issued, err = h.surfaces.Load(h.ctx, "https://example.com")
	require.NoError(t, err)
	assert.False(t, issued)

	assert.Equal(t, []string{"https://example.com"}, h.previewLoads())
	assert.True(t, h.surfaces.IsShowing("https://example.com"))
	assert.False(t, h.surfaces.IsShowing("https://other.example"))
}

func TestPreviewSurfaceManager_FailedLoadKeepsDestination(t *testing.T) {
	h := newHarness(t)
	surface, err := h.surfaces.EnsureSurface(h.ctx)
	require.NoError(t, err)
	surface.(*simhost.Surface).FailLoad = errors.New("net down")

	_, err = h.surfaces.Load(h.ctx, "https://example.com")

	assert.Error(t, err)
	assert.Empty(t, h.surfaces.Destination())
}

func TestPreviewSurfaceManager_LoadWithoutSurface(t *testing.T) {
	h := newHarness(t)
	_, err := h.surfaces.Load(h.ctx, "https://example.com")
	assert.ErrorIs(t, err, usecase.ErrNoSurface)
}

func TestPreviewSurfaceManager_DiscardIsIdempotent(t *testing.T) {
	h := newHarness(t)
	assert.NotPanics(t, func() { h.surfaces.Discard(h.ctx) })

	_, err := h.surfaces.EnsureSurface(h.ctx)
	require.NoError(t, err)
	_, err = h.surfaces.Load(h.ctx, "https://example.com")
	require.NoError(t, err)
	surface := h.previewSurface()

	h.surfaces.Discard(h.ctx)
	assert.NotPanics(t, func() { h.surfaces.Discard(h.ctx) })

	assert.True(t, surface.Destroyed())
	assert.False(t, h.surfaces.HasSurface())
	assert.Empty(t, h.surfaces.Destination())
	assert.Equal(t, 0, h.window.LivePreviews())
}

func TestPreviewSurfaceManager_NewSurfaceSuppressesTitleChanges(t *testing.T) {
	h := newHarness(t)
	h.window.SetTitle("https://example.com", "Example Domain")
	before := h.window.ChromeTitle()

	_, err := h.surfaces.EnsureSurface(h.ctx)
	require.NoError(t, err)
	require.NoError(t, h.surfaces.AttachTo(h.ctx, h.window.SimActiveTab().Container()))
	_, err = h.surfaces.Load(h.ctx, "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, before, h.window.ChromeTitle())
	assert.Equal(t, "Example Domain", h.previewSurface().Title())
}
