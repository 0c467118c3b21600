package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/repository"
	"github.com/bnema/instapreview/internal/logging"
)

const (
	logURLMaxLen = 60
	timeLayout   = "2006-01-02 15:04:05"
)

type historyRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewHistoryRepository creates a new SQLite-backed history repository.
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepo{db: db, now: time.Now}
}

const upsertHistorySQL = `
INSERT INTO history (url, title, visit_count, last_visited, created_at)
VALUES (?, ?, 1, ?, ?)
ON CONFLICT(url) DO UPDATE SET
    visit_count  = history.visit_count + 1,
    last_visited = excluded.last_visited,
    title        = COALESCE(NULLIF(excluded.title, ''), history.title)`

func (r *historyRepo) Save(ctx context.Context, entry *entity.HistoryEntry) error {
	if entry == nil || entry.URL == "" {
		return fmt.Errorf("history entry must have a url")
	}
	logging.FromContext(ctx).Debug().
		Str("url", logging.TruncateURL(entry.URL, logURLMaxLen)).
		Msg("saving history entry")

	visited := entry.LastVisited
	if visited.IsZero() {
		visited = r.now()
	}
	created := entry.CreatedAt
	if created.IsZero() {
		created = visited
	}

	_, err := r.db.ExecContext(ctx, upsertHistorySQL,
		entry.URL,
		sql.NullString{String: entry.Title, Valid: entry.Title != ""},
		formatTime(visited),
		formatTime(created),
	)
	if err != nil {
		return fmt.Errorf("upsert history: %w", err)
	}
	return nil
}

func (r *historyRepo) FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, url, COALESCE(title, ''), visit_count, last_visited, created_at
FROM history WHERE url = ?`, url)

	var (
		e                entity.HistoryEntry
		visited, created string
	)
	if err := row.Scan(&e.ID, &e.URL, &e.Title, &e.VisitCount, &visited, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	e.LastVisited = parseTime(visited)
	e.CreatedAt = parseTime(created)
	return &e, nil
}

// Frecency weights visit counts by recency buckets: visits in the last 4 days
// count 100, 14 days 70, 31 days 50, 90 days 30, older 10.
const topByFrecencySQL = `
SELECT url, COALESCE(title, ''), visit_count,
       visit_count * CASE
           WHEN last_visited >= ? THEN 100
           WHEN last_visited >= ? THEN 70
           WHEN last_visited >= ? THEN 50
           WHEN last_visited >= ? THEN 30
           ELSE 10
       END AS frecency
FROM history
WHERE url <> ?
ORDER BY frecency DESC, last_visited DESC, id ASC
LIMIT ?`

var frecencyBuckets = []int{4, 14, 31, 90}

func (r *historyRepo) GetTopByFrecency(ctx context.Context, limit int) ([]*entity.RankedDestination, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	now := r.now()
	args := make([]any, 0, len(frecencyBuckets)+2)
	for _, days := range frecencyBuckets {
		args = append(args, formatTime(now.AddDate(0, 0, -days)))
	}
	args = append(args, entity.PlaceholderURI, limit)

	rows, err := r.db.QueryContext(ctx, topByFrecencySQL, args...)
	if err != nil {
		return nil, fmt.Errorf("query top destinations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.RankedDestination
	for rows.Next() {
		var d entity.RankedDestination
		if err := rows.Scan(&d.URL, &d.Title, &d.Visits, &d.Frecency); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *historyRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *historyRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
