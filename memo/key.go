package memo

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// ErrUnhashableArgument is the sentinel matched by errors.Is for key
// construction failures. The concrete error is UnhashableArgumentError.
var ErrUnhashableArgument = errors.New("memo: unhashable argument")

// UnhashableArgumentError reports an argument whose value cannot form a
// stable cache key (a non-comparable type such as a slice, map, or func).
type UnhashableArgumentError struct {
	Index int    // position of the offending argument; -1 for named
	Name  string // named-argument name; empty for positional
	Type  string // dynamic type of the value
}

func (e *UnhashableArgumentError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("memo: unhashable argument %q of type %s", e.Name, e.Type)
	}
	return fmt.Sprintf("memo: unhashable argument %d of type %s", e.Index, e.Type)
}

func (e *UnhashableArgumentError) Unwrap() error { return ErrUnhashableArgument }

// seqKey is a composite cache key folded from multiple argument values.
// It is a distinct string type so a composite key can never compare equal
// to a raw string argument returned by the single-argument fast path.
type seqKey string

// Field and group separators inside a seqKey. Argument values are folded
// with %#v and argument names with %q, which Go-quote strings (and string
// fields), so these control bytes cannot occur unescaped inside a folded
// name or value.
const (
	fieldSep = '\x1f'
	groupSep = '\x1d'
)

// MakeKey derives a canonical, comparable cache key from positional and
// named arguments. Two calls with equal arguments (and equal argument
// types, when typed is on) map to the same key; named arguments are folded
// sorted by name so their call-site ordering is irrelevant.
//
// When the whole key reduces to a single positional argument of a simple
// kind (integer, text, boolean, nil) with no named arguments and typed
// off, the argument itself is the key. This skips the fold but does not
// change equality semantics.
//
// Every argument value must be comparable; a non-comparable value yields
// an UnhashableArgumentError and no key.
func MakeKey(pos []any, named map[string]any, typed bool) (any, error) {
	for i, v := range pos {
		if !hashable(v) {
			return nil, &UnhashableArgumentError{Index: i, Type: typeName(v)}
		}
	}
	var names []string
	if len(named) > 0 {
		names = make([]string, 0, len(named))
		for n := range named {
			if !hashable(named[n]) {
				return nil, &UnhashableArgumentError{Index: -1, Name: n, Type: typeName(named[n])}
			}
			names = append(names, n)
		}
		sort.Strings(names)
	}

	if !typed && len(named) == 0 && len(pos) == 1 {
		if k, ok := fastKey(pos[0]); ok {
			return k, nil
		}
	}

	var b strings.Builder
	for _, v := range pos {
		b.WriteByte(fieldSep)
		fmt.Fprintf(&b, "%#v", canon(v))
	}
	if len(names) > 0 {
		b.WriteByte(groupSep)
		for _, n := range names {
			b.WriteByte(fieldSep)
			fmt.Fprintf(&b, "%q=%#v", n, canon(named[n]))
		}
	}
	if typed {
		b.WriteByte(groupSep)
		for _, v := range pos {
			b.WriteByte(fieldSep)
			fmt.Fprintf(&b, "%T", v)
		}
		for _, n := range names {
			b.WriteByte(fieldSep)
			fmt.Fprintf(&b, "%T", named[n])
		}
	}
	return seqKey(b.String()), nil
}

// hashable reports whether v can serve as key material. nil is fine;
// everything else must have a comparable dynamic type.
func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

// fastKey returns the argument itself as the key for simple immutable
// kinds. Numerics go through canon so that the fast path agrees with the
// folded encoding on untyped numeric equality.
func fastKey(v any) (any, bool) {
	switch v.(type) {
	case nil, bool, string:
		return v, true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return canon(v), true
	default:
		return nil, false
	}
}

// canon normalizes numeric values so that equal numbers key equally when
// type sensitivity is off: every integer kind becomes int64, and a float
// holding an exact integer collapses to that int64. Typed mode restores
// the distinction by folding the original dynamic types into the key.
func canon(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return canonUint(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return canonUint(x)
	case uintptr:
		return canonUint(uint64(x))
	case float32:
		return canonFloat(float64(x))
	case float64:
		return canonFloat(x)
	default:
		return v
	}
}

func canonUint(u uint64) any {
	if u <= math.MaxInt64 {
		return int64(u)
	}
	return u
}

// nanKey stands in for NaN arguments. NaN never compares equal to itself,
// so keying on the raw value would miss its own entry on every call and
// grow the index past capacity; all NaNs collapse to this one key instead.
type nanKey struct{}

func canonFloat(f float64) any {
	if math.IsNaN(f) {
		return nanKey{}
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}
