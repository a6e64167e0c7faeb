package memo

import "github.com/ayefimov/memofunc/internal/singleflight"

// Func memoizes an arbitrary computation behind the key builder. The
// wrapped function receives the positional and named arguments of each
// call; its result is cached under the canonical key of those arguments.
type Func[V any] struct {
	fn    func(pos []any, named map[string]any) (V, error)
	cache Cache[any, V]
	typed bool

	// Set only when Options.Coalesce is on: concurrent misses on one key
	// share a single computation instead of racing.
	sf *singleflight.Group[any, V]
}

// NewFunc wraps fn with a cache configured by opt. Callers that take only
// positional arguments can ignore the named map:
//
//	square := memo.NewFunc(func(pos []any, _ map[string]any) (int, error) {
//	    n := pos[0].(int)
//	    return n * n, nil
//	}, memo.Options[any, int]{})
func NewFunc[V any](fn func(pos []any, named map[string]any) (V, error), opt Options[any, V]) *Func[V] {
	f := &Func[V]{
		fn:    fn,
		cache: New[any, V](opt),
		typed: opt.Typed,
	}
	if opt.Coalesce {
		f.sf = &singleflight.Group[any, V]{}
	}
	return f
}

// Call invokes the wrapped function with positional arguments, serving the
// result from cache when an equal call has been seen. Errors from the
// wrapped function and UnhashableArgumentError propagate unchanged.
func (f *Func[V]) Call(args ...any) (V, error) {
	return f.CallNamed(args, nil)
}

// CallNamed is Call with an additional set of named arguments. Two calls
// differing only in named-argument ordering share a cache entry.
func (f *Func[V]) CallNamed(pos []any, named map[string]any) (V, error) {
	key, err := MakeKey(pos, named, f.typed)
	if err != nil {
		var zero V
		return zero, err
	}
	compute := func() (V, error) { return f.fn(pos, named) }
	if f.sf != nil {
		return f.sf.Do(key, func() (V, error) {
			return f.cache.GetOrCompute(key, compute)
		})
	}
	return f.cache.GetOrCompute(key, compute)
}

// Stats reports the underlying cache statistics.
func (f *Func[V]) Stats() Stats { return f.cache.Stats() }

// Clear drops all cached results and zeroes the statistics.
func (f *Func[V]) Clear() { f.cache.Clear() }
