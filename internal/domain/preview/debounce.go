// Package preview holds the pure decision rules of the instant preview:
// debounce of low-confidence suggestions, the ranked top-destinations cache,
// scheme eligibility and key classification.
package preview

import (
	"time"

	"github.com/bnema/instapreview/internal/domain/entity"
)

// DefaultDebounceDelay is how long an untrusted destination must stay selected
// before it is rendered.
const DefaultDebounceDelay = 5000 * time.Millisecond

// Decision is the outcome of a debounce check.
type Decision int

const (
	// Hold defers rendering to a later tick.
	Hold Decision = iota
	// Proceed renders the candidate now.
	Proceed
)

// String returns "hold" or "proceed".
func (d Decision) String() string {
	if d == Proceed {
		return "proceed"
	}
	return "hold"
}

// DebounceState tracks the destination currently being held and when it becomes eligible.
type DebounceState struct {
	PendingDestination string
	EligibleAt         time.Time
}

// IsPending reports whether a destination is being held.
func (s DebounceState) IsPending() bool {
	return s.PendingDestination != ""
}

// DebounceGate decides whether a candidate destination renders now or later.
// One gate exists per window; it performs no I/O.
type DebounceGate struct {
	delay time.Duration
	state DebounceState
}

// NewDebounceGate creates a gate. A non-positive delay disables holding.
func NewDebounceGate(delay time.Duration) *DebounceGate {
	return &DebounceGate{delay: delay}
}

// Delay returns the configured hold duration.
func (g *DebounceGate) Delay() time.Duration {
	return g.delay
}

// State returns a copy of the current debounce bookkeeping.
func (g *DebounceGate) State() DebounceState {
	return g.state
}

// Reset clears any pending hold.
func (g *DebounceGate) Reset() {
	g.state = DebounceState{}
}

// Decide applies the debounce policy to candidate at time now.
//
// Trusted candidates always proceed and clear any pending hold, including a
// hold on the same destination that became trusted mid-wait. Untrusted
// candidates are held for the gate delay starting from the first tick they are
// seen; switching to another destination restarts the window.
func (g *DebounceGate) Decide(candidate entity.Suggestion, trusted bool, now time.Time) Decision {
	if trusted || g.delay <= 0 {
		g.Reset()
		return Proceed
	}

	if candidate.Destination != g.state.PendingDestination {
		g.state = DebounceState{
			PendingDestination: candidate.Destination,
			EligibleAt:         now.Add(g.delay),
		}
		return Hold
	}

	if now.Before(g.state.EligibleAt) {
		return Hold
	}

	g.Reset()
	return Proceed
}
