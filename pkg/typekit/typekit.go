// Package typekit models the value space of a structural type checker:
// integer and boolean literal types, their widened supertypes, and
// fixed-length ordered tuples of type values.
// Type values are immutable, and their identity is purely structural.
//
// The package also provides the resolution host (Resolver) that computations
// over type values instantiate through; see resolver.go.
package typekit

import (
	"context"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"go.llib.dev/frameless/pkg/iterkit"
	"go.llib.dev/frameless/pkg/slicekit"
	"go.llib.dev/frameless/pkg/validate"
)

// Type is a structural type value.
// Two type values are interchangeable exactly when they are Equal.
type Type interface {
	Equal(Type) bool
	String() string
}

// Equal reports whether two type values are structurally identical.
// It tolerates nil operands, which are only equal to each other.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}

// Lit is an integer literal type: Lit(7) is the type whose only value is 7.
// Negative literals are invalid content; the engine's value space is the
// natural numbers, and every arithmetic operation floors at zero.
type Lit int

func (n Lit) Equal(oth Type) bool {
	o, ok := oth.(Lit)
	return ok && o == n
}

func (n Lit) String() string { return strconv.Itoa(int(n)) }

// Validate implements validate.Validator.
func (n Lit) Validate() error {
	if n < 0 {
		return fmt.Errorf("negative integer literal type: %d", int(n))
	}
	return nil
}

// Bool is a boolean literal type, the result space of comparisons.
type Bool bool

func (b Bool) Equal(oth Type) bool {
	o, ok := oth.(Bool)
	return ok && o == b
}

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// atom is an uninformative type value; atoms carry nothing but their name.
type atom string

func (a atom) Equal(oth Type) bool {
	o, ok := oth.(atom)
	return ok && o == a
}

func (a atom) String() string { return string(a) }

const (
	// Num is the widened, non-literal supertype of every integer literal type.
	// A Lit that degrades to Num lost its value; see Widen.
	Num atom = "number"
	// Boolean is the widened supertype of the boolean literal types.
	Boolean atom = "boolean"
	// Unit is the interchangeable placeholder element of the unary number form.
	// It carries no information: two tuples of Units are equal iff their lengths are.
	Unit atom = "unit"
	// None is the absent-value sentinel.
	// It is not a natural number and never collides with any Lit.
	None atom = "none"
)

// Tuple is an ordered, fixed-length container of type values.
// The zero value is the empty tuple.
// Tuples are immutable: every operation returns a fresh tuple
// and leaves the receiver untouched.
type Tuple struct{ elems []Type }

// TupleOf returns the tuple of the given element types.
func TupleOf(elems ...Type) Tuple {
	return Tuple{elems: slicekit.Clone(elems)}
}

// Naturals returns the tuple of the given values as integer literal types.
// Each value is validated; negative input yields a validation error.
func Naturals(ns ...int) (Tuple, error) {
	ctx := context.Background()
	for _, n := range ns {
		if err := validate.Value(ctx, Lit(n)); err != nil {
			return Tuple{}, err
		}
	}
	return Tuple{elems: slicekit.Map(ns, func(n int) Type { return Lit(n) })}, nil
}

func (t Tuple) Len() int { return len(t.elems) }

// At returns the element type at the given position.
// Positions are absolute; anything outside [0, Len) reports false.
func (t Tuple) At(index int) (Type, bool) {
	if index < 0 {
		return nil, false
	}
	return slicekit.Lookup(t.elems, index)
}

// Append returns a new tuple with the given element types added at the end.
func (t Tuple) Append(vs ...Type) Tuple {
	return Tuple{elems: append(slicekit.Clone(t.elems), vs...)}
}

// Concat returns the concatenation of the two tuples.
func (t Tuple) Concat(oth Tuple) Tuple {
	return Tuple{elems: append(slicekit.Clone(t.elems), oth.elems...)}
}

func (t Tuple) ToSlice() []Type { return slicekit.Clone(t.elems) }

func (t Tuple) Iter() iter.Seq[Type] { return iterkit.FromSlice(t.elems) }

func (t Tuple) Equal(oth Type) bool {
	o, ok := oth.(Tuple)
	if !ok || len(t.elems) != len(o.elems) {
		return false
	}
	for i := range t.elems {
		if !Equal(t.elems[i], o.elems[i]) {
			return false
		}
	}
	return true
}

func (t Tuple) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, elem := range t.elems {
		if 0 < i {
			b.WriteString(", ")
		}
		b.WriteString(elem.String())
	}
	b.WriteString("]")
	return b.String()
}

// Validate reports invalid tuple content, such as nil or invalid elements.
func (t Tuple) Validate() error {
	for i, elem := range t.elems {
		if elem == nil {
			return fmt.Errorf("nil element type at index %d", i)
		}
		if v, ok := elem.(validate.Validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Widen degrades a type value to its non-literal supertype:
// integer literals widen to Num, boolean literals to Boolean,
// and tuples widen element-wise. Atoms are already as wide as they get.
func Widen(t Type) Type {
	switch v := t.(type) {
	case Lit:
		return Num
	case Bool:
		return Boolean
	case Tuple:
		return Tuple{elems: slicekit.Map(v.elems, Widen)}
	default:
		return t
	}
}

// AssignableTo reports whether a value of type src can stand where dst is expected.
// Literal types are assignable to their widened supertypes,
// and tuples are covariant in their element types.
func AssignableTo(src, dst Type) bool {
	if Equal(src, dst) {
		return true
	}
	switch s := src.(type) {
	case Lit:
		return Equal(dst, Num)
	case Bool:
		return Equal(dst, Boolean)
	case Tuple:
		d, ok := dst.(Tuple)
		if !ok || s.Len() != d.Len() {
			return false
		}
		for i := range s.elems {
			if !AssignableTo(s.elems[i], d.elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
