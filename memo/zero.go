package memo

// zeroStore is the disabled capacity mode: nothing is ever stored, every
// call delegates to the computation and counts a miss. The miss counter is
// a padded atomic, so no lock is taken at all.
type zeroStore[K comparable, V any] struct {
	ctr counters
	opt Options[K, V]
}

func (s *zeroStore[K, V]) GetOrCompute(_ K, compute func() (V, error)) (V, error) {
	v, err := compute()
	s.ctr.misses.Add(1)
	s.opt.Metrics.Miss()
	return v, err
}

func (s *zeroStore[K, V]) Stats() Stats {
	return Stats{
		Hits:     s.ctr.hits.Load(),
		Misses:   s.ctr.misses.Load(),
		Maxsize:  0,
		CurrSize: 0,
	}
}

func (s *zeroStore[K, V]) Clear() { s.ctr.reset() }

func (s *zeroStore[K, V]) Len() int { return 0 }
