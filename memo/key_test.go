package memo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, pos []any, named map[string]any, typed bool) any {
	t.Helper()
	k, err := MakeKey(pos, named, typed)
	require.NoError(t, err)
	return k
}

func TestMakeKey_Deterministic(t *testing.T) {
	t.Parallel()

	t.Run("equal calls share a key", func(t *testing.T) {
		a := mustKey(t, []any{1, "x", true}, nil, false)
		b := mustKey(t, []any{1, "x", true}, nil, false)
		assert.Equal(t, a, b)
	})

	t.Run("positional order matters", func(t *testing.T) {
		a := mustKey(t, []any{1, 2}, nil, false)
		b := mustKey(t, []any{2, 1}, nil, false)
		assert.NotEqual(t, a, b)
	})

	t.Run("adjacent arguments do not merge", func(t *testing.T) {
		a := mustKey(t, []any{"ab", "c"}, nil, false)
		b := mustKey(t, []any{"a", "bc"}, nil, false)
		assert.NotEqual(t, a, b)

		c := mustKey(t, []any{1, 23}, nil, false)
		d := mustKey(t, []any{12, 3}, nil, false)
		assert.NotEqual(t, c, d)
	})
}

func TestMakeKey_NamedArguments(t *testing.T) {
	t.Parallel()

	t.Run("ordering is canonical", func(t *testing.T) {
		// Maps have no call-site order, so equal contents must key equally
		// however they were built.
		a := mustKey(t, []any{1}, map[string]any{"b": 2, "a": 1}, false)
		b := mustKey(t, []any{1}, map[string]any{"a": 1, "b": 2}, false)
		assert.Equal(t, a, b)
	})

	t.Run("named and positional do not alias", func(t *testing.T) {
		a := mustKey(t, []any{1, 2}, nil, false)
		b := mustKey(t, []any{1}, map[string]any{"x": 2}, false)
		assert.NotEqual(t, a, b)
	})

	t.Run("name participates in the key", func(t *testing.T) {
		a := mustKey(t, []any{1}, map[string]any{"x": 2}, false)
		b := mustKey(t, []any{1}, map[string]any{"y": 2}, false)
		assert.NotEqual(t, a, b)
	})

	t.Run("separator bytes in a name cannot alias", func(t *testing.T) {
		// A name embedding '=' and the field separator must not fold to
		// the same key as the argument set it imitates.
		a := mustKey(t, nil, map[string]any{"m": 2, "n": 1}, false)
		b := mustKey(t, nil, map[string]any{"m=2\x1fn": 1}, false)
		assert.NotEqual(t, a, b)
	})
}

func TestMakeKey_TypeSensitivity(t *testing.T) {
	t.Parallel()

	t.Run("untyped numerics collide", func(t *testing.T) {
		a := mustKey(t, []any{3}, nil, false)
		b := mustKey(t, []any{3.0}, nil, false)
		assert.Equal(t, a, b)

		c := mustKey(t, []any{1, 3}, nil, false)
		d := mustKey(t, []any{1, 3.0}, nil, false)
		assert.Equal(t, c, d)
	})

	t.Run("typed numerics split", func(t *testing.T) {
		a := mustKey(t, []any{3}, nil, true)
		b := mustKey(t, []any{3.0}, nil, true)
		assert.NotEqual(t, a, b)
	})

	t.Run("number and its text never collide", func(t *testing.T) {
		a := mustKey(t, []any{3}, nil, false)
		b := mustKey(t, []any{"3"}, nil, false)
		assert.NotEqual(t, a, b)
	})

	t.Run("typed named arguments split too", func(t *testing.T) {
		a := mustKey(t, []any{1}, map[string]any{"x": 3}, true)
		b := mustKey(t, []any{1}, map[string]any{"x": 3.0}, true)
		assert.NotEqual(t, a, b)
	})
}

func TestMakeKey_FastPath(t *testing.T) {
	t.Parallel()

	t.Run("single string is the key itself", func(t *testing.T) {
		k := mustKey(t, []any{"hello"}, nil, false)
		assert.Equal(t, any("hello"), k)
	})

	t.Run("single int normalizes to int64", func(t *testing.T) {
		k := mustKey(t, []any{7}, nil, false)
		assert.Equal(t, any(int64(7)), k)
	})

	t.Run("nil and bool are keys themselves", func(t *testing.T) {
		assert.Nil(t, mustKey(t, []any{nil}, nil, false))
		assert.Equal(t, any(true), mustKey(t, []any{true}, nil, false))
	})

	t.Run("fast and folded paths agree on numerics", func(t *testing.T) {
		// Single int takes the fast path, single float folds through canon:
		// both must land on the same key when type sensitivity is off.
		assert.Equal(t,
			mustKey(t, []any{3}, nil, false),
			mustKey(t, []any{3.0}, nil, false))
	})

	t.Run("NaN keys are self-equal", func(t *testing.T) {
		// Raw NaN never equals itself, so the key must be a stand-in that
		// does, or every call would insert a fresh entry.
		a := mustKey(t, []any{math.NaN()}, nil, false)
		b := mustKey(t, []any{math.NaN()}, nil, false)
		assert.Equal(t, a, b)
		assert.NotEqual(t, a, mustKey(t, []any{0.0}, nil, false))

		c := mustKey(t, []any{"x", math.NaN()}, nil, false)
		d := mustKey(t, []any{"x", math.NaN()}, nil, false)
		assert.Equal(t, c, d)
	})

	t.Run("typed mode skips the fast path", func(t *testing.T) {
		k := mustKey(t, []any{"hello"}, nil, true)
		assert.NotEqual(t, any("hello"), k)
	})

	t.Run("composite key never equals a raw string", func(t *testing.T) {
		composite := mustKey(t, []any{"a", "b"}, nil, false)
		_, isSeq := composite.(seqKey)
		assert.True(t, isSeq)
	})
}

func TestMakeKey_Unhashable(t *testing.T) {
	t.Parallel()

	t.Run("slice argument", func(t *testing.T) {
		_, err := MakeKey([]any{[]int{1, 2}}, nil, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnhashableArgument)

		var ue *UnhashableArgumentError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, 0, ue.Index)
		assert.Equal(t, "[]int", ue.Type)
	})

	t.Run("map argument", func(t *testing.T) {
		_, err := MakeKey([]any{1, map[string]int{}}, nil, false)
		var ue *UnhashableArgumentError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, 1, ue.Index)
	})

	t.Run("named func argument", func(t *testing.T) {
		_, err := MakeKey([]any{1}, map[string]any{"cb": func() {}}, false)
		var ue *UnhashableArgumentError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, "cb", ue.Name)
		assert.Equal(t, -1, ue.Index)
	})

	t.Run("comparable struct is fine", func(t *testing.T) {
		type point struct{ X, Y int }
		a := mustKey(t, []any{point{1, 2}}, nil, false)
		b := mustKey(t, []any{point{1, 2}}, nil, false)
		assert.Equal(t, a, b)
	})
}
