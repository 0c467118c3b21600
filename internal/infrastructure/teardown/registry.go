// Package teardown tracks cleanup callbacks so every listener, timer and
// surface created for a window is released exactly once, either when the
// window unloads or when the whole feature is uninstalled.
package teardown

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/instapreview/internal/application/port"
	"github.com/bnema/instapreview/internal/logging"
)

type entry struct {
	id          uint64
	fn          func()
	cancelScope func()
}

// Registry holds pending cleanup callbacks.
type Registry struct {
	ctx     context.Context
	mu      sync.Mutex
	nextID  uint64
	entries []*entry
}

var _ port.Teardown = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry(ctx context.Context) *Registry {
	return &Registry{ctx: logging.WithComponent(ctx, "teardown")}
}

// OnTeardown registers fn. With a scope, fn also runs when the scope unloads.
// The returned release runs fn immediately. Whichever path comes first wins;
// the others become no-ops.
func (r *Registry) OnTeardown(scope port.Scope, fn func()) (release func()) {
	r.mu.Lock()
	r.nextID++
	e := &entry{id: r.nextID, fn: fn}
	r.entries = append(r.entries, e)
	r.mu.Unlock()

	if scope != nil {
		e.cancelScope = scope.OnUnload(func() { r.run(e) })
	}
	return func() { r.run(e) }
}

// Len returns the number of pending callbacks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// RunAll runs every pending callback, most recent first, and empties the registry.
func (r *Registry) RunAll() {
	r.mu.Lock()
	pending := make([]*entry, len(r.entries))
	copy(pending, r.entries)
	r.mu.Unlock()

	for i := len(pending) - 1; i >= 0; i-- {
		r.run(pending[i])
	}
}

func (r *Registry) run(e *entry) {
	if !r.remove(e.id) {
		return
	}
	if e.cancelScope != nil {
		e.cancelScope()
	}
	r.invoke(e.fn)
}

func (r *Registry) remove(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) invoke(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.FromContext(r.ctx).Warn().
				Str("panic", fmt.Sprint(rec)).
				Msg("recovered panic in teardown callback")
		}
	}()
	if fn != nil {
		fn()
	}
}
