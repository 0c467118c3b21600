package usecase_test

import (
	"errors"
	"testing"

	"github.com/bnema/instapreview/internal/application/usecase"
	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/infrastructure/simhost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uris(entries []entity.NavigationEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.URI)
	}
	return out
}

// browse navigates the live surface of the active tab through uris and
// registers the last one as open.
func browse(t *testing.T, w *simhost.Window, uris ...string) *simhost.Tab {
	t.Helper()
	tab := w.SimActiveTab()
	for _, u := range uris {
		require.NoError(t, tab.LiveSurface().Load(u))
	}
	last := uris[len(uris)-1]
	w.RegisterOpenPage(last)
	tab.SetRegisteredOpenURI(last)
	return tab
}

func TestCommitSwapper_NoPreviewIsNoop(t *testing.T) {
	h := newHarness(t)
	tab := h.window.SimActiveTab()

	ok, err := h.swapper.Persist(h.ctx)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, tab.Swaps())
	assert.Zero(t, tab.LiveSurface().Stops())
}

func TestCommitSwapper_PromotesPreview(t *testing.T) {
	h := newHarness(t)
	h.window.SetTitle("https://c.example", "Page C")
	tab := browse(t, h.window, "https://a.example", "https://b.example")
	live := tab.LiveSurface()

	h.offer("https://c.example", entity.KindTyped)
	h.show()
	preview := h.previewSurface()
	require.NotNil(t, preview)

	ok, err := h.swapper.Persist(h.ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t,
		[]string{"https://a.example", "https://b.example", "https://c.example"},
		uris(live.History()))
	assert.Equal(t, "https://c.example", live.CurrentURI())

	assert.Equal(t, 1, tab.ProgressObservers())
	assert.True(t, tab.ObserverBoundToLive())

	assert.Equal(t, map[string]int{"https://c.example": 1}, h.window.OpenPages())
	assert.Equal(t, "https://c.example", tab.RegisteredOpenURI())

	assert.Equal(t, "https://c.example", h.window.SimAddressBar().Text())
	assert.Equal(t, "Page C", tab.Title())
	assert.Equal(t, "Page C", h.window.ChromeTitle())

	assert.Equal(t, 1, live.Stops())
	assert.True(t, live.Focused())
	assert.Same(t, live, h.window.FocusedSurface())

	assert.True(t, preview.Destroyed())
	assert.False(t, h.surfaces.HasSurface())
	assert.Zero(t, h.window.LivePreviews())
}

func TestCommitSwapper_PendingNavigationFallsBackToRequested(t *testing.T) {
	h := newHarness(t)
	tab := browse(t, h.window, "https://a.example")
	live := tab.LiveSurface()
	h.window.DeferCommits = true

	h.offer("https://slow.example", entity.KindTyped)
	h.show()

	ok, err := h.swapper.Persist(h.ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "https://slow.example", h.window.SimAddressBar().Text())
	assert.Equal(t, "https://slow.example", tab.RegisteredOpenURI())
	assert.Equal(t, "https://slow.example", live.PendingURI(), "navigation continues in the tab")

	require.True(t, live.CommitNavigation())
	assert.Equal(t,
		[]string{"https://a.example", "https://slow.example"},
		uris(live.History()))
}

func TestCommitSwapper_SwapFailureRollsBack(t *testing.T) {
	h := newHarness(t)
	tab := browse(t, h.window, "https://a.example", "https://b.example")
	live := tab.LiveSurface()
	tab.FailSwap = errors.New("store locked")

	h.offer("https://c.example", entity.KindTyped)
	h.show()
	preview := h.previewSurface()

	ok, err := h.swapper.Persist(h.ctx)

	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, map[string]int{"https://b.example": 1}, h.window.OpenPages())
	assert.Equal(t, "https://b.example", tab.RegisteredOpenURI())
	assert.Equal(t, 1, tab.ProgressObservers())
	assert.True(t, tab.ObserverBoundToLive())
	assert.Equal(t,
		[]string{entity.PlaceholderURI, "https://a.example", "https://b.example"},
		uris(live.History()))
	assert.Empty(t, h.window.SimAddressBar().Text())
	assert.True(t, preview.Destroyed())
	assert.False(t, h.surfaces.HasSurface())
}

func TestCommitSwapper_FocusingPreviewCommits(t *testing.T) {
	h := newHarness(t)
	tab := h.window.SimActiveTab()
	h.offer("https://example.com", entity.KindTyped)
	h.show()

	h.previewSurface().Focus()

	assert.Equal(t, 1, tab.Swaps())
	assert.Equal(t, "https://example.com", tab.LiveSurface().CurrentURI())
	assert.Equal(t, "https://example.com", h.window.SimAddressBar().Text())
	assert.False(t, h.surfaces.HasSurface())
	assert.Same(t, tab.LiveSurface(), h.window.FocusedSurface())
}

func TestCommitSwapper_SecondCommitWithoutPreviewIsNoop(t *testing.T) {
	h := newHarness(t)
	tab := h.window.SimActiveTab()
	h.offer("https://example.com", entity.KindTyped)
	h.show()

	ok, err := h.swapper.Persist(h.ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.swapper.Persist(h.ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, tab.Swaps())
}

func TestMergeHistory(t *testing.T) {
	entry := func(uri string) entity.NavigationEntry { return entity.NavigationEntry{URI: uri} }

	tests := []struct {
		name    string
		live    []entity.NavigationEntry
		preview []entity.NavigationEntry
		want    []string
	}{
		{
			name:    "placeholder dropped and preview appended",
			live:    []entity.NavigationEntry{entry(entity.PlaceholderURI), entry("a"), entry("b")},
			preview: []entity.NavigationEntry{entry("c")},
			want:    []string{"a", "b", "c"},
		},
		{
			name:    "blank tab",
			live:    []entity.NavigationEntry{entry(entity.PlaceholderURI)},
			preview: []entity.NavigationEntry{entry("c")},
			want:    []string{"c"},
		},
		{
			name:    "uncommitted preview",
			live:    []entity.NavigationEntry{entry("a")},
			preview: nil,
			want:    []string{"a"},
		},
		{
			name:    "only the preview's current entry is kept",
			live:    []entity.NavigationEntry{entry("a")},
			preview: []entity.NavigationEntry{entry("x"), entry("y")},
			want:    []string{"a", "y"},
		},
		{
			name: "empty",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.MergeHistory(tt.live, tt.preview)
			assert.Equal(t, tt.want, uris(got))
		})
	}
}
