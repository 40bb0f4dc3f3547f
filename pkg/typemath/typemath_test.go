package typemath_test

import (
	"errors"
	"testing"

	"go.llib.dev/frameless/pkg/validate"
	"go.llib.dev/testcase/assert"

	"github.com/AGalabov/AGalabov.github.io/pkg/typekit"
	"github.com/AGalabov/AGalabov.github.io/pkg/typemath"
)

func TestBuildTuple(t *testing.T) {
	t.Run("the unary form holds one unit per counted value", func(t *testing.T) {
		form, err := typemath.BuildTuple(&typekit.Resolver{}, 5)
		assert.NoError(t, err)
		assert.Equal(t, 5, form.Len())
		for elem := range form.Iter() {
			assert.True(t, typekit.Equal(typekit.Unit, elem))
		}
	})
	t.Run("zero has the empty form", func(t *testing.T) {
		form, err := typemath.BuildTuple(&typekit.Resolver{}, 0)
		assert.NoError(t, err)
		assert.Equal(t, 0, form.Len())
	})
	t.Run("every element claims one instantiation level", func(t *testing.T) {
		r := &typekit.Resolver{}
		_, err := typemath.BuildTuple(r, 3)
		assert.NoError(t, err)
		assert.Equal(t, 4, r.Stats().Instantiations)
		assert.Equal(t, 4, r.Stats().PeakDepth)
	})
	t.Run("a ceiling of one builds nothing but the empty form", func(t *testing.T) {
		r := &typekit.Resolver{MaxDepth: 1}
		_, err := typemath.BuildTuple(r, 0)
		assert.NoError(t, err)

		_, err = typemath.BuildTuple(r, 1)
		assert.ErrorIs(t, typekit.ErrDepthExceeded, err)
	})
	t.Run("negative literals are rejected up front", func(t *testing.T) {
		_, err := typemath.BuildTuple(&typekit.Resolver{}, -1)
		var verr validate.ValidationError
		assert.True(t, errors.As(err, &verr))
	})
}

func TestLength(t *testing.T) {
	t.Run("reads the arity back as a literal", func(t *testing.T) {
		input, err := typekit.Naturals(199, 200, 208)
		assert.NoError(t, err)
		got, err := typemath.Length(&typekit.Resolver{}, input)
		assert.NoError(t, err)
		assert.Equal(t, typekit.Lit(3), got)
	})
	t.Run("the empty tuple has length zero", func(t *testing.T) {
		got, err := typemath.Length(&typekit.Resolver{}, typekit.Tuple{})
		assert.NoError(t, err)
		assert.Equal(t, typekit.Lit(0), got)
	})
	t.Run("recovers the number behind a unary form", func(t *testing.T) {
		r := &typekit.Resolver{}
		form, err := typemath.BuildTuple(r, 42)
		assert.NoError(t, err)
		got, err := typemath.Length(r, form)
		assert.NoError(t, err)
		assert.Equal(t, typekit.Lit(42), got)
	})
}

func TestPlusOne(t *testing.T) {
	for _, tc := range []struct{ In, Out typekit.Lit }{
		{In: 0, Out: 1},
		{In: 1, Out: 2},
		{In: 41, Out: 42},
	} {
		got, err := typemath.PlusOne(&typekit.Resolver{}, tc.In)
		assert.NoError(t, err)
		assert.Equal(t, tc.Out, got)
	}

	t.Run("the successor of zero fits in two levels", func(t *testing.T) {
		r := &typekit.Resolver{MaxDepth: 2}
		got, err := typemath.PlusOne(r, 0)
		assert.NoError(t, err)
		assert.Equal(t, typekit.Lit(1), got)

		_, err = typemath.PlusOne(r, 1)
		assert.ErrorIs(t, typekit.ErrDepthExceeded, err)
	})
}

func TestMinusOne(t *testing.T) {
	for _, tc := range []struct{ In, Out typekit.Lit }{
		{In: 1, Out: 0},
		{In: 2, Out: 1},
		{In: 42, Out: 41},
	} {
		got, err := typemath.MinusOne(&typekit.Resolver{}, tc.In)
		assert.NoError(t, err)
		assert.Equal(t, tc.Out, got)
	}

	t.Run("zero floors instead of going negative", func(t *testing.T) {
		got, err := typemath.MinusOne(&typekit.Resolver{}, 0)
		assert.NoError(t, err)
		assert.Equal(t, typekit.Lit(0), got)
	})
}

func TestPlus(t *testing.T) {
	for _, tc := range []struct{ A, B, Out typekit.Lit }{
		{A: 2, B: 3, Out: 5},
		{A: 0, B: 0, Out: 0},
		{A: 7, B: 0, Out: 7},
		{A: 0, B: 9, Out: 9},
		{A: 199, B: 1, Out: 200},
	} {
		got, err := typemath.Plus(&typekit.Resolver{}, tc.A, tc.B)
		assert.NoError(t, err)
		assert.Equal(t, tc.Out, got)
	}

	t.Run("the needed ceiling is exactly the observed peak depth", func(t *testing.T) {
		probe := &typekit.Resolver{}
		_, err := typemath.Plus(probe, 12, 7)
		assert.NoError(t, err)
		peak := probe.Stats().PeakDepth

		_, err = typemath.Plus(&typekit.Resolver{MaxDepth: peak}, 12, 7)
		assert.NoError(t, err)

		_, err = typemath.Plus(&typekit.Resolver{MaxDepth: peak - 1}, 12, 7)
		assert.ErrorIs(t, typekit.ErrDepthExceeded, err)
	})

	t.Run("a memoizing resolver answers repeated work from the memo", func(t *testing.T) {
		r := &typekit.Resolver{Memoize: true}
		_, err := typemath.Plus(r, 2, 3)
		assert.NoError(t, err)
		before := r.Stats()

		got, err := typemath.Plus(r, 2, 3)
		assert.NoError(t, err)
		assert.Equal(t, typekit.Lit(5), got)

		after := r.Stats()
		assert.Equal(t, before.MemoHits+1, after.MemoHits)
		assert.Equal(t, before.Instantiations+1, after.Instantiations)
	})
}

func TestMinus(t *testing.T) {
	for _, tc := range []struct{ A, B, Out typekit.Lit }{
		{A: 5, B: 3, Out: 2},
		{A: 5, B: 0, Out: 5},
		{A: 5, B: 5, Out: 0},
		{A: 3, B: 5, Out: 0},
		{A: 0, B: 5, Out: 0},
		{A: 269, B: 260, Out: 9},
	} {
		got, err := typemath.Minus(&typekit.Resolver{}, tc.A, tc.B)
		assert.NoError(t, err)
		assert.Equal(t, tc.Out, got)
	}
}

func TestGreaterThan(t *testing.T) {
	for _, tc := range []struct {
		A, B typekit.Lit
		Out  typekit.Bool
	}{
		{A: 5, B: 3, Out: true},
		{A: 3, B: 5, Out: false},
		{A: 4, B: 4, Out: false},
		{A: 1, B: 0, Out: true},
		{A: 0, B: 1, Out: false},
		{A: 0, B: 0, Out: false},
		{A: 200, B: 199, Out: true},
	} {
		got, err := typemath.GreaterThan(&typekit.Resolver{}, tc.A, tc.B)
		assert.NoError(t, err)
		assert.Equal(t, tc.Out, got)
	}

	t.Run("the needed ceiling is exactly the observed peak depth", func(t *testing.T) {
		probe := &typekit.Resolver{}
		_, err := typemath.GreaterThan(probe, 9, 6)
		assert.NoError(t, err)
		peak := probe.Stats().PeakDepth

		_, err = typemath.GreaterThan(&typekit.Resolver{MaxDepth: peak}, 9, 6)
		assert.NoError(t, err)

		_, err = typemath.GreaterThan(&typekit.Resolver{MaxDepth: peak - 1}, 9, 6)
		assert.ErrorIs(t, typekit.ErrDepthExceeded, err)
	})
}

func TestRestFromArray(t *testing.T) {
	t.Run("drops the head and keeps the tail literals intact", func(t *testing.T) {
		input, err := typekit.Naturals(199, 200, 208)
		assert.NoError(t, err)
		expected, err := typekit.Naturals(200, 208)
		assert.NoError(t, err)

		rest, err := typemath.RestFromArray(&typekit.Resolver{}, input)
		assert.NoError(t, err)
		assert.True(t, typekit.Equal(expected, rest))
		assert.Equal(t, 3, input.Len())
	})
	t.Run("keeps non-literal element types as well", func(t *testing.T) {
		input := typekit.TupleOf(typekit.Unit, typekit.Lit(5), typekit.Bool(true))
		rest, err := typemath.RestFromArray(&typekit.Resolver{}, input)
		assert.NoError(t, err)
		assert.True(t, typekit.Equal(
			typekit.TupleOf(typekit.Lit(5), typekit.Bool(true)), rest))
	})
	t.Run("a single element leaves the empty tuple", func(t *testing.T) {
		rest, err := typemath.RestFromArray(&typekit.Resolver{}, typekit.TupleOf(typekit.Lit(5)))
		assert.NoError(t, err)
		assert.Equal(t, 0, rest.Len())
	})
	t.Run("the empty tuple has no rest", func(t *testing.T) {
		_, err := typemath.RestFromArray(&typekit.Resolver{}, typekit.Tuple{})
		assert.ErrorIs(t, typemath.ErrEmptyTuple, err)
	})
}
