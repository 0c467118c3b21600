package port

import "time"

// Scheduler runs callbacks on the single UI thread.
// Callbacks never overlap; each one runs to completion before the next.
type Scheduler interface {
	Now() time.Time
	// Post queues fn to run as soon as possible.
	Post(fn func())
	// AfterFunc queues fn to run once d has elapsed.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}
