package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns predetermined event IDs in order.
//
// The same run with the same generator produces byte-identical stores, which
// is what golden comparisons need.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order. With no
// ids it numbers events "event-1", "event-2", ... forever.
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next ID.
//
// Panics once a non-empty list of ids is exhausted.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.idx++
	if len(g.ids) == 0 {
		return fmt.Sprintf("event-%d", g.idx)
	}
	if g.idx > len(g.ids) {
		panic(fmt.Sprintf("FixedIDGenerator: all %d ids exhausted", len(g.ids)))
	}
	return g.ids[g.idx-1]
}
