package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/repository"
	"github.com/bnema/instapreview/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/instapreview/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyTestCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newTestRepo(t *testing.T) (context.Context, repository.HistoryRepository) {
	t.Helper()
	ctx := historyTestCtx()
	dbPath := filepath.Join(t.TempDir(), "instapreview.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return ctx, sqlite.NewHistoryRepository(db)
}

func visit(t *testing.T, ctx context.Context, repo repository.HistoryRepository, url string, times int, at time.Time) {
	t.Helper()
	for i := 0; i < times; i++ {
		require.NoError(t, repo.Save(ctx, &entity.HistoryEntry{URL: url, LastVisited: at}))
	}
}

func TestHistoryRepository_SaveCountsVisits(t *testing.T) {
	ctx, repo := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, &entity.HistoryEntry{URL: "https://example.com", Title: "Example"}))
	require.NoError(t, repo.Save(ctx, &entity.HistoryEntry{URL: "https://example.com"}))

	found, err := repo.FindByURL(ctx, "https://example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(2), found.VisitCount)
	assert.Equal(t, "Example", found.Title, "empty title keeps the stored one")
	assert.False(t, found.LastVisited.IsZero())

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestHistoryRepository_FindByURLMissing(t *testing.T) {
	ctx, repo := newTestRepo(t)

	found, err := repo.FindByURL(ctx, "https://missing.example")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestHistoryRepository_SaveRejectsEmptyURL(t *testing.T) {
	ctx, repo := newTestRepo(t)
	assert.Error(t, repo.Save(ctx, &entity.HistoryEntry{}))
}

func TestHistoryRepository_GetTopByFrecency(t *testing.T) {
	ctx, repo := newTestRepo(t)
	now := time.Now()

	visit(t, ctx, repo, "https://daily.example", 5, now)
	visit(t, ctx, repo, "https://old-favorite.example", 10, now.AddDate(0, 0, -60))
	visit(t, ctx, repo, "https://once.example", 1, now)
	visit(t, ctx, repo, entity.PlaceholderURI, 50, now)

	top, err := repo.GetTopByFrecency(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3, "placeholder page is never ranked")

	assert.Equal(t, "https://daily.example", top[0].URL)
	assert.InDelta(t, 500, top[0].Frecency, 0.001)
	assert.Equal(t, "https://old-favorite.example", top[1].URL)
	assert.InDelta(t, 300, top[1].Frecency, 0.001)
	assert.Equal(t, int64(10), top[1].Visits)
	assert.Equal(t, "https://once.example", top[2].URL)
}

func TestHistoryRepository_GetTopByFrecencyRespectsLimit(t *testing.T) {
	ctx, repo := newTestRepo(t)
	now := time.Now()

	visit(t, ctx, repo, "https://a.example", 3, now)
	visit(t, ctx, repo, "https://b.example", 2, now)
	visit(t, ctx, repo, "https://c.example", 1, now)

	top, err := repo.GetTopByFrecency(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "https://a.example", top[0].URL)
	assert.Equal(t, "https://b.example", top[1].URL)

	_, err = repo.GetTopByFrecency(ctx, 0)
	assert.Error(t, err)
}

func TestHistoryRepository_DeleteAll(t *testing.T) {
	ctx, repo := newTestRepo(t)
	visit(t, ctx, repo, "https://a.example", 1, time.Now())

	require.NoError(t, repo.DeleteAll(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewConnection_RejectsEmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(historyTestCtx(), "")
	assert.Error(t, err)
}

func TestNewConnection_ReopenKeepsData(t *testing.T) {
	ctx := historyTestCtx()
	dbPath := filepath.Join(t.TempDir(), "nested", "instapreview.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewHistoryRepository(db).Save(ctx, &entity.HistoryEntry{URL: "https://a.example"}))
	require.NoError(t, sqlite.Close(db))

	db, err = sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	count, err := sqlite.NewHistoryRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
