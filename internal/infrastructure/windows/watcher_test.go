package windows_test

import (
	"context"
	"testing"

	"github.com/bnema/instapreview/internal/application/port"
	"github.com/bnema/instapreview/internal/infrastructure/simhost"
	"github.com/bnema/instapreview/internal/infrastructure/teardown"
	"github.com/bnema/instapreview/internal/infrastructure/windows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ExistingLoadedWindowsRunImmediately(t *testing.T) {
	browser := simhost.NewBrowser()
	existing := browser.AddLoadedWindow()
	registry := teardown.NewRegistry(context.Background())

	var seen []string
	windows.NewWatcher(context.Background(), browser, registry).
		ForEachBrowserWindow(func(w port.BrowserWindow) { seen = append(seen, w.ID()) })

	assert.Equal(t, []string{existing.ID()}, seen)
}

func TestWatcher_NewWindowsWaitForLoad(t *testing.T) {
	browser := simhost.NewBrowser()
	registry := teardown.NewRegistry(context.Background())

	var seen []string
	windows.NewWatcher(context.Background(), browser, registry).
		ForEachBrowserWindow(func(w port.BrowserWindow) { seen = append(seen, w.ID()) })

	win := browser.OpenWindow()
	assert.Empty(t, seen, "callback must wait for load")

	win.FinishLoad()
	require.Equal(t, []string{win.ID()}, seen)

	win.FinishLoad()
	assert.Len(t, seen, 1)
}

func TestWatcher_ExistingLoadingWindowWaitsForLoad(t *testing.T) {
	browser := simhost.NewBrowser()
	registry := teardown.NewRegistry(context.Background())
	loading := browser.OpenWindow()

	calls := 0
	windows.NewWatcher(context.Background(), browser, registry).
		ForEachBrowserWindow(func(port.BrowserWindow) { calls++ })
	assert.Zero(t, calls)

	loading.FinishLoad()
	assert.Equal(t, 1, calls)
}

func TestWatcher_CallbackPanicsAreContained(t *testing.T) {
	browser := simhost.NewBrowser()
	browser.AddLoadedWindow()
	second := browser.AddLoadedWindow()
	registry := teardown.NewRegistry(context.Background())

	var seen []string
	assert.NotPanics(t, func() {
		windows.NewWatcher(context.Background(), browser, registry).
			ForEachBrowserWindow(func(w port.BrowserWindow) {
				seen = append(seen, w.ID())
				if len(seen) == 1 {
					panic("first window fails")
				}
			})
	})
	assert.Equal(t, second.ID(), seen[1])
}

func TestWatcher_TeardownStopsWatchingNewWindows(t *testing.T) {
	browser := simhost.NewBrowser()
	registry := teardown.NewRegistry(context.Background())

	calls := 0
	windows.NewWatcher(context.Background(), browser, registry).
		ForEachBrowserWindow(func(port.BrowserWindow) { calls++ })
	require.Equal(t, 1, browser.Subscribers())

	registry.RunAll()
	assert.Zero(t, browser.Subscribers())

	browser.OpenWindow().FinishLoad()
	assert.Zero(t, calls)
}

func TestWatcher_TeardownDropsPendingLoad(t *testing.T) {
	browser := simhost.NewBrowser()
	registry := teardown.NewRegistry(context.Background())
	loading := browser.OpenWindow()

	calls := 0
	windows.NewWatcher(context.Background(), browser, registry).
		ForEachBrowserWindow(func(port.BrowserWindow) { calls++ })
	require.Equal(t, 2, registry.Len(), "window subscription and pending load")

	registry.RunAll()
	loading.FinishLoad()

	assert.Zero(t, calls)
	assert.Zero(t, registry.Len())
}

func TestWatcher_LoadReleasesPendingEntry(t *testing.T) {
	browser := simhost.NewBrowser()
	registry := teardown.NewRegistry(context.Background())
	loading := browser.OpenWindow()

	windows.NewWatcher(context.Background(), browser, registry).
		ForEachBrowserWindow(func(port.BrowserWindow) {})
	require.Equal(t, 2, registry.Len())

	loading.FinishLoad()
	assert.Equal(t, 1, registry.Len(), "only the window subscription remains")
}

func TestWatcher_ClosedBeforeLoadIsForgotten(t *testing.T) {
	browser := simhost.NewBrowser()
	registry := teardown.NewRegistry(context.Background())
	loading := browser.OpenWindow()

	calls := 0
	windows.NewWatcher(context.Background(), browser, registry).
		ForEachBrowserWindow(func(port.BrowserWindow) { calls++ })

	loading.Close()
	assert.Equal(t, 1, registry.Len())

	loading.FinishLoad()
	assert.Zero(t, calls)
}
