package store

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces event IDs.
type IDGenerator interface {
	Generate() string
}

// SeqSource produces strictly increasing logical sequence numbers.
type SeqSource interface {
	Next() int64
}

// UUIDv7Generator generates time-sortable UUIDv7 event IDs, so IDs of
// events written later sort after earlier ones.
//
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Clock is a monotonic logical clock for event seq numbers.
type Clock struct {
	seq atomic.Int64
}

// NewClockAt creates a clock whose first Next returns start+1. Pass
// NextSeq()-1 to resume numbering after the events already stored.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}
