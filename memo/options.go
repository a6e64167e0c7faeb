package memo

// Capacity sentinels for Options.Maxsize.
const (
	// DefaultMaxsize is used when Options.Maxsize is left zero.
	DefaultMaxsize = 100

	// Unbounded disables eviction: the cache grows without limit and
	// performs no recency tracking.
	Unbounded = -1

	// Disabled stores nothing. Every call runs the computation and
	// counts a miss; hits never occur.
	Disabled = -2
)

// EvictReason explains why an entry left the cache.
type EvictReason int

const (
	// EvictCapacity — displaced by a newer entry at full capacity.
	EvictCapacity EvictReason = iota
	// EvictClear — dropped by an explicit Clear.
	EvictClear
)

// Options configures cache behavior. Zero values are safe; defaults are
// applied in New (Maxsize 0 => DefaultMaxsize, nil Metrics => NoopMetrics).
type Options[K comparable, V any] struct {
	// Maxsize is the entry count limit: a positive bound, or one of the
	// Unbounded / Disabled sentinels. Zero selects DefaultMaxsize.
	Maxsize int

	// Typed keys arguments of different dynamic types separately, so
	// Call(3) and Call(3.0) become distinct entries. Used by Func; the
	// typed Cache never inspects it.
	Typed bool

	// Coalesce collapses concurrent misses on the same key into a single
	// computation (singleflight). Used by Func; off by default, which
	// preserves the compute-outside-the-guard protocol where racing
	// callers may duplicate work.
	Coalesce bool

	// OnEvict is called for every evicted entry, under the cache guard;
	// keep callbacks lightweight. Bounded mode only.
	OnEvict func(k K, v V, reason EvictReason)

	// Metrics receives Hit/Miss/Evict/Size signals. Nil => NoopMetrics.
	Metrics Metrics
}

// maxsize resolves the configured capacity, applying the default.
func (o Options[K, V]) maxsize() int {
	if o.Maxsize == 0 {
		return DefaultMaxsize
	}
	return o.Maxsize
}
