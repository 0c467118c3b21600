// Package mainloop provides the single-threaded cooperative scheduler the
// preview engine runs on. Every callback posted to a loop runs on one
// goroutine, one at a time, to completion.
package mainloop

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/instapreview/internal/logging"
)

const defaultQueueSize = 256

// Loop is a real-time scheduler backed by a task queue drained by Run.
// Tasks that do not fit the queue wait in an unbounded overflow list.
type Loop struct {
	ctx   context.Context
	tasks chan func()
	quit  chan struct{}
	once  sync.Once

	mu       sync.Mutex
	overflow []func()
}

// NewLoop creates a loop. Tasks queue up until Run is called.
func NewLoop(ctx context.Context) *Loop {
	return &Loop{
		ctx:   logging.WithComponent(ctx, "mainloop"),
		tasks: make(chan func(), defaultQueueSize),
		quit:  make(chan struct{}),
	}
}

// Now returns the wall clock.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post queues fn. It never blocks, so tasks may post more tasks. It is safe
// to call from any goroutine. Tasks run in the order they were posted; tasks
// posted after Stop are dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	select {
	case <-l.quit:
		return
	default:
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.overflow) == 0 {
		select {
		case l.tasks <- fn:
			return
		default:
		}
	}
	l.overflow = append(l.overflow, fn)
}

// refill moves overflowed tasks into the queue while it has room.
func (l *Loop) refill() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, fn := range l.overflow {
		select {
		case l.tasks <- fn:
			l.overflow[i] = nil
		default:
			l.overflow = l.overflow[i:]
			return
		}
	}
	l.overflow = nil
}

// AfterFunc posts fn once d has elapsed. Cancel prevents fn from running if it
// has not started yet.
func (l *Loop) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	var cancelled atomic.Bool
	timer := time.AfterFunc(d, func() {
		l.Post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	return func() {
		cancelled.Store(true)
		timer.Stop()
	}
}

// Run drains the queue until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.refill()
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.quit:
			return nil
		case fn := <-l.tasks:
			l.runTask(fn)
		}
	}
}

// Stop ends Run. Pending tasks are dropped.
func (l *Loop) Stop() {
	l.once.Do(func() {
		close(l.quit)
		l.mu.Lock()
		l.overflow = nil
		l.mu.Unlock()
	})
}

func (l *Loop) runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(l.ctx).Error().
				Str("panic", fmt.Sprint(r)).
				Msg("recovered panic in main loop task")
		}
	}()
	fn()
}
