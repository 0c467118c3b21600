package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
	"github.com/bnema/instapreview/internal/domain/repository"
	"github.com/bnema/instapreview/internal/logging"
)

// SeedTopDestinationsUseCase loads the ranked destinations once at startup.
type SeedTopDestinationsUseCase struct {
	historyRepo repository.HistoryRepository
	cache       *preview.TopDestinations
	limit       int
}

// NewSeedTopDestinationsUseCase creates the startup seeding use case.
func NewSeedTopDestinationsUseCase(
	historyRepo repository.HistoryRepository,
	cache *preview.TopDestinations,
	limit int,
) *SeedTopDestinationsUseCase {
	if limit <= 0 {
		limit = preview.DefaultTopDestinationsLimit
	}
	return &SeedTopDestinationsUseCase{historyRepo: historyRepo, cache: cache, limit: limit}
}

// Ranked returns up to limit destinations by frecency without touching the cache.
func (uc *SeedTopDestinationsUseCase) Ranked(ctx context.Context) ([]*entity.RankedDestination, error) {
	if uc.historyRepo == nil {
		return nil, nil
	}
	ranked, err := uc.historyRepo.GetTopByFrecency(ctx, uc.limit)
	if err != nil {
		return nil, fmt.Errorf("query top destinations: %w", err)
	}
	return ranked, nil
}

// Execute queries the ranking and seals the cache with it. A failed query
// seals nothing; the cache stays empty and every cached-icon row is debounced.
func (uc *SeedTopDestinationsUseCase) Execute(ctx context.Context) error {
	log := logging.FromContext(ctx)

	ranked, err := uc.Ranked(ctx)
	if err != nil {
		return err
	}

	urls := make([]string, 0, len(ranked))
	for _, r := range ranked {
		if r != nil {
			urls = append(urls, r.URL)
		}
	}

	if err := uc.cache.Seal(urls); err != nil {
		return err
	}

	log.Debug().Int("count", uc.cache.Len()).Msg("top destinations cache sealed")
	return nil
}
