// Package url resolves address-bar input to a destination.
package url

import (
	"net/url"
	"strings"
)

// DefaultSearchTemplate is used when input is not URL-like.
const DefaultSearchTemplate = "https://duckduckgo.com/?q=%s"

var explicitSchemes = []string{"http://", "https://", "file://", "about:"}

func hasExplicitScheme(input string) bool {
	lower := strings.ToLower(input)
	for _, s := range explicitSchemes {
		if strings.HasPrefix(lower, s) {
			return true
		}
	}
	return strings.Contains(input, "://")
}

// LooksLikeURL reports whether input is a destination rather than a search
// query: an explicit scheme, or a dotted word with no spaces.
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}
	if hasExplicitScheme(input) {
		return true
	}
	return strings.Contains(input, ".") && !strings.Contains(input, " ")
}

// Normalize adds https:// to URL-like input without a scheme.
func Normalize(input string) string {
	if input == "" || hasExplicitScheme(input) {
		return input
	}
	if LooksLikeURL(input) {
		return "https://" + input
	}
	return input
}

// Resolve turns typed text into a destination. URL-like input is normalized;
// anything else becomes a search using template, or DefaultSearchTemplate
// when template is empty.
func Resolve(input, template string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if LooksLikeURL(input) {
		return Normalize(input)
	}
	if template == "" {
		template = DefaultSearchTemplate
	}
	return strings.Replace(template, "%s", url.QueryEscape(input), 1)
}
