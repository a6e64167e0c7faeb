package memo

import "sync"

// unboundedStore is the no-eviction capacity mode: a plain map with no
// recency tracking. Hits only read the map, so they take the read lock.
type unboundedStore[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V

	ctr counters
	opt Options[K, V]
}

func (s *unboundedStore[K, V]) GetOrCompute(k K, compute func() (V, error)) (V, error) {
	s.mu.RLock()
	v, ok := s.m[k]
	s.mu.RUnlock()
	if ok {
		s.ctr.hits.Add(1)
		s.opt.Metrics.Hit()
		return v, nil
	}

	v, err := compute()

	s.ctr.misses.Add(1)
	if err != nil {
		s.opt.Metrics.Miss()
		var zero V
		return zero, err
	}
	// Insert unconditionally: with no eviction there is nothing to order,
	// and a racing caller's equal-key result is interchangeable.
	s.mu.Lock()
	s.m[k] = v
	size := len(s.m)
	s.mu.Unlock()

	s.opt.Metrics.Miss()
	s.opt.Metrics.Size(size)
	return v, nil
}

func (s *unboundedStore[K, V]) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Hits:     s.ctr.hits.Load(),
		Misses:   s.ctr.misses.Load(),
		Maxsize:  Unbounded,
		CurrSize: len(s.m),
	}
}

func (s *unboundedStore[K, V]) Clear() {
	s.mu.Lock()
	clear(s.m)
	s.ctr.reset()
	s.mu.Unlock()
	s.opt.Metrics.Size(0)
}

func (s *unboundedStore[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
