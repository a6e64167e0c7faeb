// Package memo provides a fixed-capacity, thread-safe, least-recently-used
// memoization cache for wrapping expensive computations.
//
// # Design
//
//   - Storage: a map from key to an arena slot for lookups, plus a circular
//     doubly linked recency ring addressed by slot index. Slot 0 is a
//     sentinel that never carries a key or value; walking next from the
//     sentinel visits records from least- to most-recently used. All
//     structural operations are O(1).
//
//   - Capacity modes: a cache is constructed in one of three modes chosen
//     once by Options.Maxsize. A positive maxsize gives full LRU behavior.
//     Unbounded disables eviction and recency tracking entirely (plain map).
//     Disabled stores nothing and only counts misses. The modes are three
//     variants behind one interface, not per-call branches.
//
//   - Concurrency: a single mutex serializes index and ring mutation. The
//     lock is never held while the wrapped computation runs: a miss releases
//     it, computes, re-acquires, and re-checks whether a racing caller
//     already installed the key. If so, that entry is kept and this caller's
//     freshly computed value is returned to it but not stored. Concurrent
//     misses on the same key may therefore compute twice; exactly one result
//     is retained.
//
//   - Eviction: at capacity the least-recently-used record is recycled in
//     place. Its key and value are overwritten and the record is relinked at
//     the most-recent end, so the steady-state eviction path allocates
//     nothing.
//
//   - Keys: Func derives cache keys from positional and named arguments via
//     MakeKey. Named arguments are folded sorted by name, and an optional
//     type-sensitive mode keys f(3) and f(3.0) separately. Argument values
//     must be comparable; others fail with UnhashableArgumentError.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     NoopMetrics is the default; the metrics/prom package exports them to
//     Prometheus.
//
// # Basic usage
//
//	c := memo.New[string, int](memo.Options[string, int]{Maxsize: 1024})
//	v, err := c.GetOrCompute("k", func() (int, error) {
//	    return expensive("k"), nil
//	})
//
// # Memoizing a function
//
//	square := memo.NewFunc(func(pos []any, _ map[string]any) (int, error) {
//	    n := pos[0].(int)
//	    return n * n, nil
//	}, memo.Options[any, int]{Maxsize: 10})
//
//	v, err := square.Call(7)   // computes
//	v, err = square.Call(7)    // cache hit
//	info := square.Stats()     // hits, misses, maxsize, current size
//	square.Clear()             // drop entries, zero counters
//
// # Thread-safety & complexity
//
// All methods are safe for concurrent use. The guard is held only for
// constant-time index/ring work and statistics snapshots, never across the
// wrapped computation, so a slow computation cannot block callers working
// on other keys.
package memo
