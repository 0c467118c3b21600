package preview_test

import (
	"sync"
	"testing"

	"github.com/bnema/instapreview/internal/domain/preview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopDestinations_EmptyBeforeSeal(t *testing.T) {
	cache := preview.NewTopDestinations()

	assert.False(t, cache.Sealed())
	assert.False(t, cache.Contains("https://example.com"))
	assert.Zero(t, cache.Len())
	assert.Nil(t, cache.List())
}

func TestTopDestinations_SealOnce(t *testing.T) {
	cache := preview.NewTopDestinations()

	require.NoError(t, cache.Seal([]string{"https://a.example", "", "https://b.example", "https://a.example"}))
	assert.True(t, cache.Sealed())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cache.List())
	assert.True(t, cache.Contains("https://b.example"))

	err := cache.Seal([]string{"https://c.example"})
	assert.ErrorIs(t, err, preview.ErrAlreadySealed)
	assert.False(t, cache.Contains("https://c.example"))
	assert.Equal(t, 2, cache.Len())
}

func TestTopDestinations_ListIsACopy(t *testing.T) {
	cache := preview.NewTopDestinations()
	require.NoError(t, cache.Seal([]string{"https://a.example"}))

	list := cache.List()
	list[0] = "https://mutated.example"

	assert.Equal(t, []string{"https://a.example"}, cache.List())
}

func TestTopDestinations_ConcurrentSealHasOneWinner(t *testing.T) {
	cache := preview.NewTopDestinations()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if cache.Seal([]string{"https://a.example"}) == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestTopDestinations_NilSafe(t *testing.T) {
	var cache *preview.TopDestinations
	assert.False(t, cache.Contains("x"))
	assert.False(t, cache.Sealed())
	assert.Zero(t, cache.Len())
}
