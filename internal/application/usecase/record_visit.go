package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
	"github.com/bnema/instapreview/internal/domain/repository"
	"github.com/bnema/instapreview/internal/logging"
)

// RecordVisitUseCase adds visits to browsing history.
type RecordVisitUseCase struct {
	historyRepo repository.HistoryRepository
}

// NewRecordVisitUseCase creates a new visit recorder.
func NewRecordVisitUseCase(historyRepo repository.HistoryRepository) *RecordVisitUseCase {
	return &RecordVisitUseCase{historyRepo: historyRepo}
}

// Execute records times visits of url. The placeholder page is never recorded.
func (uc *RecordVisitUseCase) Execute(ctx context.Context, url, title string, times int) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("url cannot be empty")
	}
	if preview.Scheme(url) == "" {
		return fmt.Errorf("url %q has no scheme", url)
	}
	if url == entity.PlaceholderURI {
		return nil
	}
	if times <= 0 {
		times = 1
	}

	for i := 0; i < times; i++ {
		if err := uc.historyRepo.Save(ctx, entity.NewHistoryEntry(url, title)); err != nil {
			return fmt.Errorf("save visit %d of %s: %w", i+1, url, err)
		}
	}

	logging.URL(logging.FromContext(ctx).Debug(), url).
		Int("times", times).
		Msg("visit recorded")
	return nil
}
