package memo

import "sync"

// lruStore is the bounded capacity mode: a key->slot index plus a recency
// ring, both guarded by one mutex. The guard is held only for O(1)
// structural work, never across the wrapped computation.
type lruStore[K comparable, V any] struct {
	mu   sync.Mutex
	idx  map[K]int32
	ring *ring[K, V]
	cap  int

	ctr counters
	opt Options[K, V]
}

func (s *lruStore[K, V]) GetOrCompute(k K, compute func() (V, error)) (V, error) {
	s.mu.Lock()
	if i, ok := s.idx[k]; ok {
		s.ring.moveToBack(i)
		v := s.ring.at(i).val
		s.ctr.hits.Add(1)
		s.mu.Unlock()
		s.opt.Metrics.Hit()
		return v, nil
	}
	// Release the guard for the computation so unrelated callers are not
	// serialized behind it. The price is that a racing caller may compute
	// the same key; the re-check below settles who inserts.
	s.mu.Unlock()

	v, err := compute()

	s.mu.Lock()
	s.ctr.misses.Add(1)
	if err != nil {
		// Failed computations are never cached.
		s.mu.Unlock()
		s.opt.Metrics.Miss()
		var zero V
		return zero, err
	}
	if _, ok := s.idx[k]; ok {
		// A racing caller installed this key while the guard was released.
		// Its link update is already done; keep that entry and hand our own
		// result back to our caller without storing it.
		s.mu.Unlock()
		s.opt.Metrics.Miss()
		return v, nil
	}
	if len(s.idx) >= s.cap {
		s.insertRecycling(k, v)
	} else {
		i := s.ring.alloc(k, v)
		s.ring.pushBack(i)
		s.idx[k] = i
	}
	size := len(s.idx)
	s.mu.Unlock()

	s.opt.Metrics.Miss()
	s.opt.Metrics.Size(size)
	return v, nil
}

// insertRecycling overwrites the least-recently-used record with k/v and
// relinks it at the most-recent end, so the full-capacity insert path does
// not allocate. Caller holds mu and has verified k is absent.
func (s *lruStore[K, V]) insertRecycling(k K, v V) {
	i := s.ring.front()
	rec := s.ring.at(i)
	oldKey, oldVal := rec.key, rec.val
	rec.key, rec.val = k, v
	s.ring.moveToBack(i)
	delete(s.idx, oldKey)
	s.idx[k] = i

	s.ctr.evicts.Add(1)
	if cb := s.opt.OnEvict; cb != nil {
		cb(oldKey, oldVal, EvictCapacity)
	}
	s.opt.Metrics.Evict(EvictCapacity)
}

func (s *lruStore[K, V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Hits:     s.ctr.hits.Load(),
		Misses:   s.ctr.misses.Load(),
		Maxsize:  s.cap,
		CurrSize: len(s.idx),
	}
}

func (s *lruStore[K, V]) Clear() {
	s.mu.Lock()
	if cb := s.opt.OnEvict; cb != nil {
		for i := s.ring.front(); i != sentinel; i = s.ring.at(i).next {
			rec := s.ring.at(i)
			cb(rec.key, rec.val, EvictClear)
		}
	}
	clear(s.idx)
	s.ring.reset()
	s.ctr.reset()
	s.mu.Unlock()
	s.opt.Metrics.Size(0)
}

func (s *lruStore[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.idx)
}
