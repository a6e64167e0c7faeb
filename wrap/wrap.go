// Package wrap provides call-interception layers that can be composed
// around a raw computation or around a memoized one: argument/result
// logging, elapsed-time logging, and mutual exclusion.
//
// Wrappers observe only. They never alter the arguments or the result,
// so composing them around a memo.Func leaves key identity and cached
// values untouched:
//
//	f := memo.NewFunc(wrap.Timed[int](nil, "fib", fib), memo.Options[any, int]{})
//	traced := wrap.Track(logger, "fib", f.CallNamed)
package wrap

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Fn is the call shape shared with memo: positional plus named arguments.
// memo.Func's CallNamed satisfies it, so wrappers compose on either side
// of the cache.
type Fn[V any] func(pos []any, named map[string]any) (V, error)

// Track logs the function name and rendered arguments before each call
// and the result (or error) after it. A nil log uses slog.Default().
func Track[V any](log *slog.Logger, name string, fn Fn[V]) Fn[V] {
	return func(pos []any, named map[string]any) (V, error) {
		l := orDefault(log)
		l.Info("call", "func", name, "args", renderArgs(pos, named))
		v, err := fn(pos, named)
		if err != nil {
			l.Info("call failed", "func", name, "err", err)
			return v, err
		}
		l.Info("call result", "func", name, "result", v)
		return v, nil
	}
}

// Timed logs the elapsed wall time of each call. A nil log uses
// slog.Default().
func Timed[V any](log *slog.Logger, name string, fn Fn[V]) Fn[V] {
	return func(pos []any, named map[string]any) (V, error) {
		start := time.Now()
		v, err := fn(pos, named)
		orDefault(log).Info("call elapsed", "func", name, "duration", time.Since(start))
		return v, err
	}
}

// Locked serializes every call through mu. Unlike the cache guard, mu is
// held for the whole call, including the wrapped computation.
func Locked[V any](mu sync.Locker, fn Fn[V]) Fn[V] {
	return func(pos []any, named map[string]any) (V, error) {
		mu.Lock()
		defer mu.Unlock()
		return fn(pos, named)
	}
}

func orDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// renderArgs formats positional then name-sorted named arguments as a
// single "a, b, k=v" string for log output.
func renderArgs(pos []any, named map[string]any) string {
	parts := make([]string, 0, len(pos)+len(named))
	for _, v := range pos {
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", n, named[n]))
	}
	return strings.Join(parts, ", ")
}
