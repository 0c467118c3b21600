package preview

import (
	"strings"

	"github.com/bnema/instapreview/internal/domain/entity"
)

// DefaultEligibleSchemes lists the URI schemes that may be previewed.
var DefaultEligibleSchemes = []string{"data", "ftp", "http", "https"}

// Scheme extracts the lowercase scheme of uri, or "" if it has none.
func Scheme(uri string) string {
	idx := strings.IndexByte(uri, ':')
	if idx <= 0 {
		return ""
	}
	scheme := uri[:idx]
	for i, r := range scheme {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return ""
		}
	}
	return strings.ToLower(scheme)
}

// IsEligible reports whether uri uses one of the allowed schemes.
func IsEligible(uri string, schemes []string) bool {
	scheme := Scheme(uri)
	if scheme == "" {
		return false
	}
	for _, s := range schemes {
		if strings.EqualFold(s, scheme) {
			return true
		}
	}
	return false
}

// IsTrusted reports whether a suggestion can be previewed without debounce:
// anything but a cached-icon row, or a destination in the top-destinations cache.
func IsTrusted(s entity.Suggestion, top *TopDestinations) bool {
	return s.Kind != entity.KindCachedIcon || top.Contains(s.Destination)
}
