package model

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
	domainurl "github.com/bnema/instapreview/internal/domain/url"
)

const maxSuggestions = 8

// BuildSuggestions returns the popup rows for query. The first row is the
// typed destination; the rest are fuzzy matches from corpus. Matches that are
// top destinations are history rows, the others only matched through their
// cached icon.
func BuildSuggestions(query string, corpus []string, top *preview.TopDestinations) []entity.Suggestion {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	typed := domainurl.Resolve(query, "")
	rows := []entity.Suggestion{{Destination: typed, Kind: entity.KindTyped, Title: query}}

	ranks := fuzzy.RankFindNormalizedFold(query, corpus)
	sort.Stable(ranks)
	for _, r := range ranks {
		if len(rows) >= maxSuggestions {
			break
		}
		if r.Target == typed {
			continue
		}
		kind := entity.KindCachedIcon
		if top != nil && top.Contains(r.Target) {
			kind = entity.KindHistory
		}
		rows = append(rows, entity.Suggestion{Destination: r.Target, Kind: kind})
	}
	return rows
}
