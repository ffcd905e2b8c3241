// Package testutil provides deterministic ID and clock sources for
// tests across the repository.
package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDGenerator returns "prefix-1", "prefix-2", ... in order.
//
// It implements link.IDGenerator so tests can assert on exact link IDs
// instead of random UUIDs.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDGenerator creates a generator with the given prefix.
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	return &SequentialIDGenerator{prefix: prefix}
}

// NewID returns the next ID in the sequence.
func (g *SequentialIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// Count returns how many IDs have been issued.
func (g *SequentialIDGenerator) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}
