package ghep

import (
	"log/slog"
	"slices"

	"github.com/roach88/ghep/internal/particle"
)

// Compactor keeps every daughter range of a sequence contiguous.
//
// Update is called once per append and usually just widens the mother's
// range. When the new entry cannot join its mother's block, Compact reorders
// the sequence so that each mother's daughters sit side by side, then derives
// every range from the mother links.
type Compactor struct {
	seq    *Sequence
	logger *slog.Logger

	// pending counts entries whose first mother lies beyond the end of the
	// sequence, keyed by that future position.
	pending map[int]int

	compactions int
}

// NewCompactor creates a compactor over seq.
func NewCompactor(seq *Sequence, logger *slog.Logger) *Compactor {
	if logger == nil {
		logger = discardLogger()
	}
	return &Compactor{
		seq:     seq,
		logger:  logger,
		pending: make(map[int]int),
	}
}

// Compactions returns how many full compactions have run.
func (c *Compactor) Compactions() int {
	return c.compactions
}

// Update registers the entry at pos, which must be the last one appended,
// with its mother.
func (c *Compactor) Update(pos int) {
	p := c.seq.At(pos)
	if p == nil {
		return
	}

	// Entries appended earlier named this slot as their mother before it
	// existed; only a full pass can place them.
	if c.pending[pos] > 0 {
		c.logger.Info("particle resolves forward mother references, running compactor",
			"pos", pos, "waiting", c.pending[pos])
		delete(c.pending, pos)
		c.Compact()
		return
	}

	momPos := p.FirstMother
	c.logger.Debug("updating daughter list", "pos", pos, "mother", momPos)
	switch {
	case momPos == particle.NoIndex:
		return
	case momPos > pos:
		c.pending[momPos]++
		c.logger.Warn("mother not yet in record", "pos", pos, "mother", momPos)
		return
	case momPos < 0 || momPos == pos:
		c.logger.Warn("ignoring invalid mother position", "pos", pos, "mother", momPos)
		return
	}

	mom := c.seq.At(momPos)
	first, last := mom.FirstDaughter, mom.LastDaughter

	switch {
	case !mom.HasDaughters():
		mom.SetDaughters(pos, pos)
	case pos == first-1:
		mom.FirstDaughter = pos
	case pos == last+1:
		mom.LastDaughter = pos
	default:
		c.logger.Info("daughter list is not compact, running compactor",
			"pos", pos, "mother", momPos, "first_daughter", first, "last_daughter", last)
		c.Compact()
		return
	}
	c.logger.Debug("daughter list is compact",
		"mother", momPos, "first_daughter", mom.FirstDaughter, "last_daughter", mom.LastDaughter)
}

// IsCompact reports whether the entries naming pos as first mother occupy
// adjacent positions. Fewer than two daughters is compact by definition.
func (c *Compactor) IsCompact(pos int) bool {
	daughters := c.daughtersOf(pos)
	if len(daughters) < 2 {
		return true
	}
	slices.Sort(daughters)
	for i := 1; i < len(daughters); i++ {
		if daughters[i]-daughters[i-1] > 1 {
			return false
		}
	}
	return true
}

// Compact reorders the sequence so that every daughter list is contiguous
// and then derives all daughter ranges from the mother links. Positions held
// by callers are invalid afterwards.
//
// Positions below the cursor are settled and never move again. Each entry,
// in position order, pulls its daughters to the cursor; when the cursor
// catches up with the entry being expanded, the next entry without a
// resolvable mother is promoted to the cursor as a new root. Every mother is
// therefore settled before its daughters are gathered, and gathered blocks
// are never split by later swaps.
func (c *Compactor) Compact() {
	c.compactions++
	n := c.seq.Len()
	cursor := c.firstMovable()
	c.logger.Info("compacting daughter lists", "entries", n, "start", cursor)

	for i := 0; i < n; i++ {
		if i == cursor {
			c.SwapAndRepoint(cursor, c.nextRoot(cursor))
			cursor++
		}

		count := 0
		for k := cursor; k < n; k++ {
			if c.seq.entries[k].FirstMother == i {
				c.SwapAndRepoint(cursor, k)
				cursor++
				count++
			}
		}

		if count > 0 {
			c.seq.entries[i].SetDaughters(cursor-count, cursor-1)
		} else {
			c.seq.entries[i].ClearDaughters()
		}
		c.logger.Debug("compacted daughter list", "pos", i, "daughters", count)
	}

	c.DeriveDaughters()
	c.rebuildPending()
}

// DeriveDaughters recomputes every daughter range as the min/max position of
// the entries naming it as first mother. It is exact only when the layout is
// already compact.
func (c *Compactor) DeriveDaughters() {
	entries := c.seq.entries
	for _, p := range entries {
		p.ClearDaughters()
	}
	for k, p := range entries {
		m := p.FirstMother
		if m < 0 || m >= len(entries) {
			continue
		}
		mom := entries[m]
		if !mom.HasDaughters() {
			mom.SetDaughters(k, k)
			continue
		}
		mom.FirstDaughter = min(mom.FirstDaughter, k)
		mom.LastDaughter = max(mom.LastDaughter, k)
	}
}

// SwapAndRepoint exchanges the content of slots a and b and rewrites every
// mother link that referred to either occupant so it keeps resolving to the
// same content: links to a become links to b and vice versa. Daughter ranges
// are not touched; Compact derives them afterwards.
//
// Panics if a or b is out of range.
func (c *Compactor) SwapAndRepoint(a, b int) {
	c.seq.swap(a, b)
	if a == b {
		return
	}
	c.logger.Debug("swapped particles", "a", a, "b", b)
	for _, p := range c.seq.entries {
		p.FirstMother = repoint(p.FirstMother, a, b)
		p.LastMother = repoint(p.LastMother, a, b)
	}
}

func repoint(link, a, b int) int {
	switch link {
	case a:
		return b
	case b:
		return a
	}
	return link
}

// firstMovable returns the end of the leading block of incoming entries
// (initial state and nucleon targets without a mother). Compaction never
// moves that block.
func (c *Compactor) firstMovable() int {
	for i, p := range c.seq.entries {
		if !p.Status.IsInitial() || p.HasMother() {
			return i
		}
	}
	return c.seq.Len()
}

// nextRoot picks the first unsettled entry whose mother cannot be settled
// later: no mother, a mother outside the record, itself, or an already
// settled slot. Falls back to from, which only happens for mother cycles.
func (c *Compactor) nextRoot(from int) int {
	n := c.seq.Len()
	for k := from; k < n; k++ {
		m := c.seq.entries[k].FirstMother
		if m < from || m >= n || m == k {
			return k
		}
	}
	c.logger.Warn("mother links form a cycle", "pos", from)
	return from
}

func (c *Compactor) daughtersOf(pos int) []int {
	var daughters []int
	for k, p := range c.seq.entries {
		if p.FirstMother == pos {
			daughters = append(daughters, k)
		}
	}
	return daughters
}

func (c *Compactor) rebuildPending() {
	clear(c.pending)
	n := c.seq.Len()
	for _, p := range c.seq.entries {
		if p.FirstMother >= n {
			c.pending[p.FirstMother]++
		}
	}
}

func (c *Compactor) reset() {
	clear(c.pending)
	c.compactions = 0
}
