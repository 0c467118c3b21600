package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/instapreview/internal/application/usecase"
	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
	"github.com/bnema/instapreview/internal/infrastructure/simhost"
	"github.com/bnema/instapreview/internal/logging"
	"github.com/bnema/instapreview/internal/ui/mainloop"
)

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type harness struct {
	ctx      context.Context
	window   *simhost.Window
	loop     *mainloop.ManualLoop
	top      *preview.TopDestinations
	gate     *preview.DebounceGate
	surfaces *usecase.PreviewSurfaceManager
	swapper  *usecase.CommitSwapper
	watcher  *usecase.SuggestionWatcher
}

func newHarness(t *testing.T, topURLs ...string) *harness {
	t.Helper()
	ctx := testContext()
	window := simhost.NewWindow()
	top := preview.NewTopDestinations()
	if err := top.Seal(topURLs); err != nil {
		t.Fatalf("seal: %v", err)
	}

	h := &harness{
		ctx:    ctx,
		window: window,
		loop:   mainloop.NewManualLoop(t0),
		top:    top,
		gate:   preview.NewDebounceGate(preview.DefaultDebounceDelay),
	}
	h.surfaces = usecase.NewPreviewSurfaceManager(window)
	h.swapper = usecase.NewCommitSwapper(window, h.surfaces)
	h.surfaces.SetFocusHandler(func() { _, _ = h.swapper.Persist(ctx) })
	h.watcher = usecase.NewSuggestionWatcher(ctx, window, h.surfaces, h.gate, top, h.loop, usecase.DefaultWatcherConfig())
	return h
}

func (h *harness) popup() *simhost.Popup { return h.window.SimPopup() }

// offer puts a single selected row in the popup.
func (h *harness) offer(dest string, kind entity.SuggestionKind) {
	h.popup().SetRows([]entity.Suggestion{{Destination: dest, Kind: kind}})
	h.popup().Select(0)
}

func (h *harness) show() {
	h.popup().Show()
	h.watcher.HandleShown()
}

func (h *harness) hide() {
	h.popup().Hide()
	h.watcher.HandleHidden()
}

func (h *harness) previewSurface() *simhost.Surface {
	s, _ := h.surfaces.Surface().(*simhost.Surface)
	return s
}

func (h *harness) previewLoads() []string {
	if s := h.previewSurface(); s != nil {
		return s.Loads()
	}
	return nil
}
