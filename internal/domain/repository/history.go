// Package repository declares persistence ports for domain entities.
package repository

import (
	"context"

	"github.com/bnema/instapreview/internal/domain/entity"
)

// HistoryRepository defines operations for browsing history persistence.
type HistoryRepository interface {
	// Save creates or updates a history entry (upsert). Saving an existing URL counts a visit.
	Save(ctx context.Context, entry *entity.HistoryEntry) error

	// FindByURL retrieves a history entry by its URL. Returns nil, nil when absent.
	FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error)

	// GetTopByFrecency returns up to limit destinations ordered by frecency, highest first.
	GetTopByFrecency(ctx context.Context, limit int) ([]*entity.RankedDestination, error)

	// Count returns the number of history entries.
	Count(ctx context.Context) (int64, error)

	// DeleteAll removes all history entries.
	DeleteAll(ctx context.Context) error
}
