package preview

import (
	"errors"
	"sync/atomic"
)

// DefaultTopDestinationsLimit is the number of ranked destinations loaded at startup.
const DefaultTopDestinationsLimit = 100

// ErrAlreadySealed is returned when the cache is initialized a second time.
var ErrAlreadySealed = errors.New("top destinations already sealed")

type topSnapshot struct {
	ordered []string
	set     map[string]struct{}
}

// TopDestinations is the process-wide set of frequently visited destinations.
// It starts empty, is sealed exactly once with the startup ranking and is
// read-only afterwards. Reads are safe from any goroutine.
type TopDestinations struct {
	snap atomic.Pointer[topSnapshot]
}

// NewTopDestinations returns an empty, unsealed cache.
func NewTopDestinations() *TopDestinations {
	return &TopDestinations{}
}

// Seal initializes the cache with urls in rank order. Empty and duplicate
// entries are dropped. Only the first call succeeds.
func (c *TopDestinations) Seal(urls []string) error {
	snap := &topSnapshot{
		ordered: make([]string, 0, len(urls)),
		set:     make(map[string]struct{}, len(urls)),
	}
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, dup := snap.set[u]; dup {
			continue
		}
		snap.set[u] = struct{}{}
		snap.ordered = append(snap.ordered, u)
	}

	if !c.snap.CompareAndSwap(nil, snap) {
		return ErrAlreadySealed
	}
	return nil
}

// Sealed reports whether the startup ranking has been loaded.
func (c *TopDestinations) Sealed() bool {
	return c != nil && c.snap.Load() != nil
}

// Contains reports whether uri is one of the top destinations.
func (c *TopDestinations) Contains(uri string) bool {
	if c == nil {
		return false
	}
	snap := c.snap.Load()
	if snap == nil {
		return false
	}
	_, ok := snap.set[uri]
	return ok
}

// Len returns the number of cached destinations.
func (c *TopDestinations) Len() int {
	if c == nil {
		return 0
	}
	snap := c.snap.Load()
	if snap == nil {
		return 0
	}
	return len(snap.ordered)
}

// List returns a copy of the destinations in rank order.
func (c *TopDestinations) List() []string {
	if c == nil {
		return nil
	}
	snap := c.snap.Load()
	if snap == nil {
		return nil
	}
	out := make([]string, len(snap.ordered))
	copy(out, snap.ordered)
	return out
}
