package entity

// PlaceholderURI is the empty page a fresh tab starts on.
// It is dropped when histories are merged on commit.
const PlaceholderURI = "about:blank"

// NavigationEntry is one entry of a render surface's session history.
type NavigationEntry struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// IsPlaceholder reports whether the entry points at the empty placeholder page.
func (e NavigationEntry) IsPlaceholder() bool {
	return e.URI == "" || e.URI == PlaceholderURI
}
