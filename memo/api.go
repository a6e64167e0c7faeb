package memo

// Cache is a thread-safe memoization cache keyed by K.
// All methods are safe for concurrent use by multiple goroutines.
//
// Typical complexity for operations is O(1): a map lookup plus
// constant-time recency-ring adjustments under the cache guard.
type Cache[K comparable, V any] interface {
	// GetOrCompute returns the cached value for k, or runs compute, stores
	// the result, and returns it. The guard is not held while compute runs;
	// two callers missing on the same key concurrently may both compute,
	// in which case the first insertion wins and the other caller still
	// receives its own (correct) result. A failed compute is propagated,
	// counted as a miss, and never cached.
	GetOrCompute(k K, compute func() (V, error)) (V, error)

	// Stats returns a consistent snapshot of the hit/miss counters,
	// the configured maxsize, and the current entry count.
	Stats() Stats

	// Clear empties the cache and resets the hit/miss counters to zero.
	// Computations already in flight are unaffected; their results are
	// inserted as fresh entries when they finish.
	Clear()

	// Len returns the number of resident entries.
	Len() int
}

// New constructs a cache in the capacity mode selected by opt.Maxsize.
// Defaults:
//   - Maxsize == 0   -> DefaultMaxsize (100)
//   - nil Metrics    -> NoopMetrics
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	switch m := opt.maxsize(); {
	case m > 0:
		return &lruStore[K, V]{
			idx:  make(map[K]int32, m),
			ring: newRing[K, V](m),
			cap:  m,
			opt:  opt,
		}
	case m == Unbounded:
		return &unboundedStore[K, V]{m: make(map[K]V), opt: opt}
	default:
		return &zeroStore[K, V]{opt: opt}
	}
}
