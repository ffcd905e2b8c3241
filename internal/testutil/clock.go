package testutil

import (
	"sync"
	"time"
)

// TickingClock returns monotonically increasing timestamps starting at
// a fixed base, advancing by a fixed step per call. Deterministic
// replacement for time.Now in tests that assert on timestamp order.
//
// Thread-safety: safe for concurrent use via internal mutex.
type TickingClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewTickingClock creates a clock starting at base. Each Now call
// returns the current value and advances by step.
func NewTickingClock(base time.Time, step time.Duration) *TickingClock {
	return &TickingClock{next: base, step: step}
}

// Now returns the next timestamp in the sequence.
func (c *TickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}
