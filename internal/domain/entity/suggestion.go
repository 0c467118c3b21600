package entity

import "strings"

// SuggestionKind classifies where an address-bar suggestion came from.
type SuggestionKind int

const (
	// KindTyped is the literal text the user typed, resolved to a destination.
	KindTyped SuggestionKind = iota
	// KindBookmark is a bookmarked page.
	KindBookmark
	// KindHistory is a previously visited page.
	KindHistory
	// KindSearchSuggestion is a search-engine query suggestion.
	KindSearchSuggestion
	// KindCachedIcon is the low-confidence kind: a row that only matched
	// through a cached favicon. Previews for it are debounced.
	KindCachedIcon
	// KindSwitchTab points at a page already open in another tab.
	KindSwitchTab
)

var suggestionKindNames = map[SuggestionKind]string{
	KindTyped:            "typed",
	KindBookmark:         "bookmark",
	KindHistory:          "history",
	KindSearchSuggestion: "search_suggestion",
	KindCachedIcon:       "cached_icon",
	KindSwitchTab:        "switch_tab",
}

// String returns the snake_case name of the kind.
func (k SuggestionKind) String() string {
	if name, ok := suggestionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseSuggestionKind parses a kind name. "favicon" is accepted as an alias of cached_icon.
func ParseSuggestionKind(s string) (SuggestionKind, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	switch norm {
	case "favicon", "cachedicon":
		return KindCachedIcon, true
	case "searchsuggestion":
		return KindSearchSuggestion, true
	case "switchtab":
		return KindSwitchTab, true
	}
	for kind, name := range suggestionKindNames {
		if name == norm {
			return kind, true
		}
	}
	return KindTyped, false
}

// Suggestion is one row of the address-bar suggestion popup.
// It is supplied fresh on every poll tick and never retained by the preview engine.
type Suggestion struct {
	Destination string
	Kind        SuggestionKind
	Title       string
}
