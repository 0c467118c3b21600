package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSuggestionKind(t *testing.T) {
	tests := []struct {
		in   string
		want SuggestionKind
		ok   bool
	}{
		{"typed", KindTyped, true},
		{"Bookmark", KindBookmark, true},
		{"cached_icon", KindCachedIcon, true},
		{"cached-icon", KindCachedIcon, true},
		{"favicon", KindCachedIcon, true},
		{"search_suggestion", KindSearchSuggestion, true},
		{"switchtab", KindSwitchTab, true},
		{"nope", KindTyped, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSuggestionKind(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestionKindStringRoundTrip(t *testing.T) {
	for kind := KindTyped; kind <= KindSwitchTab; kind++ {
		parsed, ok := ParseSuggestionKind(kind.String())
		assert.True(t, ok)
		assert.Equal(t, kind, parsed)
	}
	assert.Equal(t, "unknown", SuggestionKind(42).String())
}

func TestNavigationEntryIsPlaceholder(t *testing.T) {
	assert.True(t, NavigationEntry{URI: PlaceholderURI}.IsPlaceholder())
	assert.True(t, NavigationEntry{}.IsPlaceholder())
	assert.False(t, NavigationEntry{URI: "https://example.com"}.IsPlaceholder())
}
