// Package typemathcontract holds the arithmetic laws the typemath operations
// must satisfy on any hosting resolver, memoizing or not.
package typemathcontract

import (
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"github.com/AGalabov/AGalabov.github.io/pkg/typekit"
	"github.com/AGalabov/AGalabov.github.io/pkg/typemath"
)

// Suite asserts the arithmetic laws against resolvers made by mk.
// The suite works with small operands; the resolvers it receives must allow
// at least a hundred levels of instantiation depth.
func Suite(mk contract.Make[*typekit.Resolver]) contract.Contract {
	s := testcase.NewSpec(nil)

	resolver := testcase.Let(s, func(t *testcase.T) *typekit.Resolver {
		return mk(t)
	})

	small := func(t *testcase.T) typekit.Lit {
		return typekit.Lit(t.Random.IntBetween(0, 24))
	}

	s.Test("the unary form of a number round-trips through Length", func(t *testcase.T) {
		n := small(t)
		form, err := typemath.BuildTuple(resolver.Get(t), n)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(int(n), form.Len())
		got, err := typemath.Length(resolver.Get(t), form)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(n, got)
	})

	s.Test("PlusOne succeeds every natural and MinusOne undoes it", func(t *testcase.T) {
		n := small(t)
		succ, err := typemath.PlusOne(resolver.Get(t), n)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(n+1, succ)
		pred, err := typemath.MinusOne(resolver.Get(t), succ)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(n, pred)
	})

	s.Test("MinusOne floors at zero", func(t *testcase.T) {
		got, err := typemath.MinusOne(resolver.Get(t), 0)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(typekit.Lit(0), got)
	})

	s.Test("Plus has zero as identity and commutes", func(t *testcase.T) {
		a, b := small(t), small(t)
		left, err := typemath.Plus(resolver.Get(t), a, 0)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(a, left)
		right, err := typemath.Plus(resolver.Get(t), 0, a)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(a, right)
		ab, err := typemath.Plus(resolver.Get(t), a, b)
		assert.Must(t).NoError(err)
		ba, err := typemath.Plus(resolver.Get(t), b, a)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(ab, ba)
	})

	s.Test("Minus undoes Plus and floors at zero", func(t *testcase.T) {
		a, b := small(t), small(t)
		sum, err := typemath.Plus(resolver.Get(t), a, b)
		assert.Must(t).NoError(err)
		diff, err := typemath.Minus(resolver.Get(t), sum, b)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(a, diff)
		floored, err := typemath.Minus(resolver.Get(t), a, sum)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(typekit.Lit(0), floored)
	})

	s.Test("GreaterThan is a strict order", func(t *testcase.T) {
		a := small(t)
		k := typekit.Lit(t.Random.IntBetween(1, 12))
		self, err := typemath.GreaterThan(resolver.Get(t), a, a)
		assert.Must(t).NoError(err)
		assert.Must(t).False(bool(self))
		less, err := typemath.GreaterThan(resolver.Get(t), a, a+k)
		assert.Must(t).NoError(err)
		assert.Must(t).False(bool(less))
		greater, err := typemath.GreaterThan(resolver.Get(t), a+k, a)
		assert.Must(t).NoError(err)
		assert.Must(t).True(bool(greater))
	})

	s.Test("RestFromArray drops the head and keeps the tail literals intact", func(t *testcase.T) {
		var ns []int
		for i, n := 0, t.Random.IntBetween(1, 8); i < n; i++ {
			ns = append(ns, t.Random.IntBetween(0, 30))
		}
		input, err := typekit.Naturals(ns...)
		assert.Must(t).NoError(err)
		expected, err := typekit.Naturals(ns[1:]...)
		assert.Must(t).NoError(err)
		rest, err := typemath.RestFromArray(resolver.Get(t), input)
		assert.Must(t).NoError(err)
		assert.Must(t).True(typekit.Equal(expected, rest))
	})

	s.Test("RestFromArray refuses the empty tuple", func(t *testcase.T) {
		_, err := typemath.RestFromArray(resolver.Get(t), typekit.Tuple{})
		assert.Must(t).ErrorIs(typemath.ErrEmptyTuple, err)
	})

	s.Test("NumberOfIncreases counts the strictly rising steps", func(t *testcase.T) {
		var ns []int
		for i, n := 0, t.Random.IntBetween(2, 8); i < n; i++ {
			ns = append(ns, t.Random.IntBetween(0, 30))
		}
		var expected int
		for i := 1; i < len(ns); i++ {
			if ns[i-1] < ns[i] {
				expected++
			}
		}
		input, err := typekit.Naturals(ns...)
		assert.Must(t).NoError(err)
		got, err := typemath.NumberOfIncreases(resolver.Get(t), input)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(typekit.Lit(expected), got)
	})

	return s.AsSuite("typemath")
}
