package memo

import "github.com/ayefimov/memofunc/internal/util"

// Stats is a point-in-time snapshot of cache statistics.
// Hits and Misses are monotonically non-decreasing since the last Clear.
type Stats struct {
	Hits     uint64
	Misses   uint64
	Maxsize  int // Unbounded for an unbounded cache, 0 for a disabled one
	CurrSize int
}

// counters holds the hot statistics shared by all capacity modes.
// Each counter sits on its own cache line; the disabled mode bumps misses
// with no lock at all, and the other modes increment while holding the
// guard but read concurrently.
type counters struct {
	hits   util.PaddedAtomicUint64
	misses util.PaddedAtomicUint64
	evicts util.PaddedAtomicUint64
}

func (c *counters) reset() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evicts.Store(0)
}
