package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/instapreview/internal/application/port"
	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/logging"
)

// CommitSwapper promotes the preview surface into the active tab.
type CommitSwapper struct {
	window     port.BrowserWindow
	surfaces   *PreviewSurfaceManager
	committing bool
}

// NewCommitSwapper creates a swapper for window.
func NewCommitSwapper(window port.BrowserWindow, surfaces *PreviewSurfaceManager) *CommitSwapper {
	return &CommitSwapper{window: window, surfaces: surfaces}
}

// Persist swaps the preview into the active tab and discards the preview
// surface. It is a no-op without a preview. It reports whether a swap happened.
//
// The tab's progress observer is suspended for the duration of the swap and
// is resumed on every exit path. The preview is discarded on every exit path
// as well, so a failed commit degrades to a cancel.
func (c *CommitSwapper) Persist(ctx context.Context) (bool, error) {
	if c.committing || !c.surfaces.HasSurface() {
		return false, nil
	}
	c.committing = true
	defer func() { c.committing = false }()
	defer c.surfaces.Discard(ctx)

	preview := c.surfaces.Surface()
	requested := c.surfaces.Destination()

	tab, err := c.window.ActiveTab()
	if err != nil {
		return false, fmt.Errorf("commit preview: %w", err)
	}

	tab.Surface().Stop()

	if err := c.swap(tab, preview, requested); err != nil {
		return false, err
	}

	preview.Blur()
	tab.Surface().Focus()

	log := logging.FromContext(logging.WithTab(ctx, tab.ID()))
	logging.URL(log.Info(), c.window.AddressBar().Text()).Msg("preview committed")
	return true, nil
}

func (c *CommitSwapper) swap(tab port.Tab, preview port.Surface, requested string) error {
	tab.SuspendProgress()
	defer tab.ResumeProgress()

	previousURI := tab.RegisteredOpenURI()
	openURI := preview.CurrentURI()
	if openURI == "" || openURI == entity.PlaceholderURI {
		openURI = requested
	}
	c.reregisterOpenPage(tab, previousURI, openURI)

	preview.ReplaceHistory(MergeHistory(tab.Surface().History(), preview.History()))

	if err := tab.SwapBacking(preview); err != nil {
		c.reregisterOpenPage(tab, openURI, previousURI)
		return fmt.Errorf("swap preview backing store: %w", err)
	}

	tab.RefreshChrome()

	text := tab.Surface().CurrentURI()
	if text == "" || text == entity.PlaceholderURI {
		text = requested
	}
	c.window.AddressBar().SetText(text)
	return nil
}

func (c *CommitSwapper) reregisterOpenPage(tab port.Tab, from, to string) {
	if from != "" {
		c.window.UnregisterOpenPage(from)
		tab.SetRegisteredOpenURI("")
	}
	if to != "" {
		c.window.RegisterOpenPage(to)
		tab.SetRegisteredOpenURI(to)
	}
}

// MergeHistory builds the committed history: every live entry that is not the
// placeholder page, in order, followed by the preview's current entry if its
// own navigation produced one.
func MergeHistory(live, preview []entity.NavigationEntry) []entity.NavigationEntry {
	merged := make([]entity.NavigationEntry, 0, len(live)+1)
	for _, e := range live {
		if e.IsPlaceholder() {
			continue
		}
		merged = append(merged, e)
	}
	if len(preview) > 0 {
		merged = append(merged, preview[len(preview)-1])
	}
	return merged
}
