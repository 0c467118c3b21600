package model

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/instapreview/internal/cli/styles"
	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
	"github.com/bnema/instapreview/internal/logging"
	"github.com/bnema/instapreview/internal/ui/instant"
)

func testConfig() instant.Config {
	cfg := instant.DefaultConfig()
	cfg.PollInterval = 10 * time.Millisecond
	return cfg
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), logging.NewFromConfigValues("error", "console")))
	t.Cleanup(cancel)
	return ctx
}

// waitFor reads snapshots until cond holds.
func waitFor(t *testing.T, s *session, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-s.snaps:
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
			return Snapshot{}
		}
	}
}

func TestSession_TypedRowPreviewsAndCommits(t *testing.T) {
	ctx := testContext(t)
	s := newSession(ctx, testConfig(), preview.NewTopDestinations())
	go s.run()

	popup := s.window.SimPopup()
	bar := s.window.SimAddressBar()
	s.do(func() {
		popup.SetRows([]entity.Suggestion{{Destination: "https://example.com/", Kind: entity.KindTyped}})
		popup.Select(0)
		popup.Show()
	})

	snap := waitFor(t, s, func(sn Snapshot) bool { return sn.Preview == "https://example.com/" })
	assert.Equal(t, "polling", snap.Watcher)
	assert.Equal(t, 1, snap.Loads)

	s.do(func() {
		bar.Press(preview.KeyEvent{Key: preview.KeyEnter})
		popup.Hide()
	})
	snap = waitFor(t, s, func(sn Snapshot) bool { return sn.Live == "https://example.com/" })
	assert.Empty(t, snap.Preview)
	assert.Contains(t, snap.History, "https://example.com/")

	s.close()
}

func TestSession_DisabledShowsNoPreview(t *testing.T) {
	ctx := testContext(t)
	cfg := testConfig()
	cfg.Enabled = false
	s := newSession(ctx, cfg, preview.NewTopDestinations())
	go s.run()

	popup := s.window.SimPopup()
	s.do(func() {
		popup.SetRows([]entity.Suggestion{{Destination: "https://example.com/", Kind: entity.KindTyped}})
		popup.Select(0)
		popup.Show()
	})

	snap := waitFor(t, s, func(sn Snapshot) bool { return sn.Open && sn.Selected == 0 })
	assert.Equal(t, "disabled", snap.Watcher)
	assert.Empty(t, snap.Preview)
	assert.Zero(t, snap.Loads)
	assert.Zero(t, popup.Listeners())

	s.close()
}

func TestSession_CloseStopsLoop(t *testing.T) {
	ctx := testContext(t)
	s := newSession(ctx, testConfig(), nil)

	done := make(chan struct{})
	go func() {
		s.run()
		close(done)
	}()

	s.close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.True(t, s.window.Closed())
}

func TestPlaygroundModel_SnapshotAndKeys(t *testing.T) {
	ctx := testContext(t)
	m := NewPlaygroundModel(ctx, styles.NewTheme(), testConfig(), nil, []*entity.RankedDestination{
		{URL: "https://github.com/"},
		nil,
	})
	require.Equal(t, []string{"https://github.com/"}, m.corpus)

	updated, _ := m.Update(snapshotMsg(Snapshot{Tab: "tab-1", Tabs: 2, Watcher: "idle"}))
	pm := updated.(PlaygroundModel)
	assert.Equal(t, "tab-1", pm.snap.Tab)
	assert.Contains(t, pm.View(), "tab-1 (2 tabs)")
	assert.Contains(t, pm.View(), "no preview")

	updated, _ = pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, updated.(PlaygroundModel).showHelp)

	_, cmd := pm.Update(snapshotMsg(Snapshot{Closed: true}))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
