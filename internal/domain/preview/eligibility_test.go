package preview_test

import (
	"testing"

	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEligible(t *testing.T) {
	tests := []struct {
		uri  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?q=1", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"ftp://files.example.com", true},
		{"data:text/html,<p>hi</p>", true},
		{"javascript:alert(1)", false},
		{"about:config", false},
		{"file:///etc/passwd", false},
		{"moz-action:switchtab,https://a", false},
		{"example.com", false},
		{"", false},
		{":nothing", false},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, preview.IsEligible(tt.uri, preview.DefaultEligibleSchemes))
		})
	}
}

func TestScheme(t *testing.T) {
	assert.Equal(t, "https", preview.Scheme("HTTPS://x"))
	assert.Equal(t, "svn+ssh", preview.Scheme("svn+ssh://x"))
	assert.Equal(t, "", preview.Scheme("1abc:x"))
	assert.Equal(t, "", preview.Scheme("no scheme"))
}

func TestIsTrusted(t *testing.T) {
	top := preview.NewTopDestinations()
	require.NoError(t, top.Seal([]string{"https://popular.example"}))

	assert.True(t, preview.IsTrusted(entity.Suggestion{Destination: "https://x", Kind: entity.KindTyped}, top))
	assert.True(t, preview.IsTrusted(entity.Suggestion{Destination: "https://x", Kind: entity.KindHistory}, nil))
	assert.True(t, preview.IsTrusted(entity.Suggestion{Destination: "https://popular.example", Kind: entity.KindCachedIcon}, top))
	assert.False(t, preview.IsTrusted(entity.Suggestion{Destination: "https://rare.example", Kind: entity.KindCachedIcon}, top))
	assert.False(t, preview.IsTrusted(entity.Suggestion{Destination: "https://rare.example", Kind: entity.KindCachedIcon}, nil))
}
