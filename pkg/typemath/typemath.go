// Package typemath implements natural number arithmetic the way a structural
// type checker evaluates it: without arithmetic.
//
// A number is either an integer literal type (typekit.Lit) or its unary form,
// a tuple holding that many interchangeable unit elements. Arithmetic is
// recursion over these forms. Adding concatenates two forms and reads the
// length back, while subtraction and comparison peel elements off until an
// operand runs out. Every recursion step claims an instantiation frame from
// the hosting typekit.Resolver, so deep operands fail with
// typekit.ErrDepthExceeded instead of looping away.
//
// Operands and results stay literal: Plus(2, 3) is the literal type 5,
// not the widened number supertype.
package typemath

import (
	"context"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/validate"

	"github.com/AGalabov/AGalabov.github.io/pkg/typekit"
)

const (
	// ErrEmptyTuple is returned when an operation needs at least one element,
	// like taking the rest of a tuple.
	ErrEmptyTuple errorkit.Error = "ErrEmptyTuple"
	// ErrNonLiteral is returned when an element should have been
	// an integer literal type but wasn't.
	ErrNonLiteral errorkit.Error = "ErrNonLiteral"
)

// BuildTuple returns the unary form of n: a tuple of n unit elements.
func BuildTuple(r *typekit.Resolver, n typekit.Lit) (typekit.Tuple, error) {
	if err := validate.Value(context.Background(), n); err != nil {
		return typekit.Tuple{}, err
	}
	return buildTuple(r.Pass(), n)
}

func buildTuple(f typekit.Frame, n typekit.Lit) (typekit.Tuple, error) {
	f, err := f.Instantiate("BuildTuple", n)
	if err != nil {
		return typekit.Tuple{}, err
	}
	if t, ok := f.Cached(); ok {
		return t.(typekit.Tuple), nil
	}
	if n == 0 {
		out := typekit.Tuple{}
		f.Cache(out)
		return out, nil
	}
	form, err := buildTuple(f, n-1)
	if err != nil {
		return typekit.Tuple{}, err
	}
	out := form.Append(typekit.Unit)
	f.Cache(out)
	return out, nil
}

// Length reads the arity of a tuple back as an integer literal type.
// On a unary form this recovers the number the form stands for.
func Length(r *typekit.Resolver, t typekit.Tuple) (typekit.Lit, error) {
	if err := t.Validate(); err != nil {
		return 0, validate.ValidationError{Cause: err}
	}
	return length(r.Pass(), t)
}

func length(f typekit.Frame, t typekit.Tuple) (typekit.Lit, error) {
	if _, err := f.Instantiate("Length", t); err != nil {
		return 0, err
	}
	return typekit.Lit(t.Len()), nil
}

// PlusOne computes n+1 by appending one more unit to the unary form of n.
func PlusOne(r *typekit.Resolver, n typekit.Lit) (typekit.Lit, error) {
	if err := validate.Value(context.Background(), n); err != nil {
		return 0, err
	}
	return plusOne(r.Pass(), n)
}

func plusOne(f typekit.Frame, n typekit.Lit) (typekit.Lit, error) {
	f, err := f.Instantiate("PlusOne", n)
	if err != nil {
		return 0, err
	}
	if t, ok := f.Cached(); ok {
		return t.(typekit.Lit), nil
	}
	form, err := buildTuple(f, n)
	if err != nil {
		return 0, err
	}
	out, err := length(f, form.Append(typekit.Unit))
	if err != nil {
		return 0, err
	}
	f.Cache(out)
	return out, nil
}

// MinusOne computes n-1 by dropping one unit from the unary form of n.
// Zero has no predecessor among the naturals, so MinusOne(0) stays 0.
func MinusOne(r *typekit.Resolver, n typekit.Lit) (typekit.Lit, error) {
	if err := validate.Value(context.Background(), n); err != nil {
		return 0, err
	}
	return minusOne(r.Pass(), n)
}

func minusOne(f typekit.Frame, n typekit.Lit) (typekit.Lit, error) {
	f, err := f.Instantiate("MinusOne", n)
	if err != nil {
		return 0, err
	}
	if t, ok := f.Cached(); ok {
		return t.(typekit.Lit), nil
	}
	form, err := buildTuple(f, n)
	if err != nil {
		return 0, err
	}
	if form.Len() == 0 {
		f.Cache(typekit.Lit(0))
		return 0, nil
	}
	rest, err := restFromArray(f, form)
	if err != nil {
		return 0, err
	}
	out, err := length(f, rest)
	if err != nil {
		return 0, err
	}
	f.Cache(out)
	return out, nil
}

// Plus computes a+b by concatenating the unary forms of the two operands
// and reading the length of the combined form.
func Plus(r *typekit.Resolver, a, b typekit.Lit) (typekit.Lit, error) {
	if err := validate.Value(context.Background(), a); err != nil {
		return 0, err
	}
	if err := validate.Value(context.Background(), b); err != nil {
		return 0, err
	}
	return plus(r.Pass(), a, b)
}

func plus(f typekit.Frame, a, b typekit.Lit) (typekit.Lit, error) {
	f, err := f.Instantiate("Plus", a, b)
	if err != nil {
		return 0, err
	}
	if t, ok := f.Cached(); ok {
		return t.(typekit.Lit), nil
	}
	fa, err := buildTuple(f, a)
	if err != nil {
		return 0, err
	}
	fb, err := buildTuple(f, b)
	if err != nil {
		return 0, err
	}
	out, err := length(f, fa.Concat(fb))
	if err != nil {
		return 0, err
	}
	f.Cache(out)
	return out, nil
}

// Minus computes a-b, flooring at zero since the naturals have no
// negative values: Minus(3, 5) is 0, not -2.
func Minus(r *typekit.Resolver, a, b typekit.Lit) (typekit.Lit, error) {
	if err := validate.Value(context.Background(), a); err != nil {
		return 0, err
	}
	if err := validate.Value(context.Background(), b); err != nil {
		return 0, err
	}
	return minus(r.Pass(), a, b)
}

func minus(f typekit.Frame, a, b typekit.Lit) (typekit.Lit, error) {
	f, err := f.Instantiate("Minus", a, b)
	if err != nil {
		return 0, err
	}
	if t, ok := f.Cached(); ok {
		return t.(typekit.Lit), nil
	}
	fa, err := buildTuple(f, a)
	if err != nil {
		return 0, err
	}
	fb, err := buildTuple(f, b)
	if err != nil {
		return 0, err
	}
	out, err := minusUnary(f, fa, fb)
	if err != nil {
		return 0, err
	}
	f.Cache(out)
	return out, nil
}

// minusUnary peels one unit per step from both forms at once.
// Once the subtrahend form runs out, what remains of the minuend form
// is the difference. A minuend that runs out first floors the result at zero.
func minusUnary(f typekit.Frame, a, b typekit.Tuple) (typekit.Lit, error) {
	f, err := f.Instantiate("MinusUnary", a, b)
	if err != nil {
		return 0, err
	}
	if b.Len() == 0 {
		return length(f, a)
	}
	if a.Len() == 0 {
		return 0, nil
	}
	ra, err := restFromArray(f, a)
	if err != nil {
		return 0, err
	}
	rb, err := restFromArray(f, b)
	if err != nil {
		return 0, err
	}
	return minusUnary(f, ra, rb)
}

// GreaterThan reports whether a is strictly greater than b, as a boolean
// literal type. The comparison decrements both operands until one hits zero:
// a survivor on the left means greater, anything else means not.
func GreaterThan(r *typekit.Resolver, a, b typekit.Lit) (typekit.Bool, error) {
	if err := validate.Value(context.Background(), a); err != nil {
		return false, err
	}
	if err := validate.Value(context.Background(), b); err != nil {
		return false, err
	}
	return greaterThan(r.Pass(), a, b)
}

func greaterThan(f typekit.Frame, a, b typekit.Lit) (typekit.Bool, error) {
	f, err := f.Instantiate("GreaterThan", a, b)
	if err != nil {
		return false, err
	}
	if t, ok := f.Cached(); ok {
		return t.(typekit.Bool), nil
	}
	var out typekit.Bool
	switch {
	case b == 0:
		out = typekit.Bool(a != 0)
	case a == 0:
		out = false
	default:
		da, err := minusOne(f, a)
		if err != nil {
			return false, err
		}
		db, err := minusOne(f, b)
		if err != nil {
			return false, err
		}
		out, err = greaterThan(f, da, db)
		if err != nil {
			return false, err
		}
	}
	f.Cache(out)
	return out, nil
}

// RestFromArray returns the tuple without its head element.
// The tail keeps its element types exactly as they were:
// the rest of [199, 200, 208] is [200, 208], literals intact.
// The empty tuple has no rest; that is ErrEmptyTuple.
func RestFromArray(r *typekit.Resolver, t typekit.Tuple) (typekit.Tuple, error) {
	if err := t.Validate(); err != nil {
		return typekit.Tuple{}, validate.ValidationError{Cause: err}
	}
	if t.Len() == 0 {
		return typekit.Tuple{}, ErrEmptyTuple
	}
	return restFromArray(r.Pass(), t)
}

// restFromArray expects a non-empty tuple; callers guard the empty case.
func restFromArray(f typekit.Frame, t typekit.Tuple) (typekit.Tuple, error) {
	if _, err := f.Instantiate("RestFromArray", t); err != nil {
		return typekit.Tuple{}, err
	}
	return typekit.TupleOf(t.ToSlice()[1:]...), nil
}

// headLit reads the first element as an integer literal type.
func headLit(t typekit.Tuple) (typekit.Lit, error) {
	head, ok := t.At(0)
	if !ok {
		return 0, ErrEmptyTuple
	}
	n, ok := head.(typekit.Lit)
	if !ok {
		return 0, ErrNonLiteral.F("measurement must be an integer literal type, got %s", head)
	}
	return n, nil
}
