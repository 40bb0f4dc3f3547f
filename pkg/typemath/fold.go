package typemath

import (
	"context"

	"go.llib.dev/frameless/pkg/enum"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/pkg/validate"
	"go.llib.dev/frameless/pkg/zerokit"
	"go.llib.dev/frameless/port/option"

	"github.com/AGalabov/AGalabov.github.io/pkg/typekit"
)

// State tells where a fold over a tuple of measurements stands.
// The fold dispatches on it at every step.
type State string

const (
	// StateDone means the input is exhausted and the accumulator is final.
	StateDone State = "done"
	// StateFirstElement means the head has no previous measurement to compare against.
	StateFirstElement State = "first-element"
	// StateSubsequentElement means the head is compared against the previous measurement.
	StateSubsequentElement State = "subsequent-element"
)

var _ = enum.Register[State](StateDone, StateFirstElement, StateSubsequentElement)

func stateOf(input typekit.Tuple, prev typekit.Type) State {
	switch {
	case input.Len() == 0:
		return StateDone
	case typekit.Equal(prev, typekit.None):
		return StateFirstElement
	default:
		return StateSubsequentElement
	}
}

// FoldOption configures the measurement folds.
type FoldOption interface {
	option.Option[FoldConfig]
}

type FoldConfig struct {
	// Previous seeds the fold with a measurement that precedes the input.
	// None means the first element has nothing to compare against.
	Previous typekit.Type
	// Accumulator is the count the fold starts from.
	Accumulator typekit.Lit
	// WindowSize is the width of the sliding window in NumberOfWindowIncreases.
	// The zero value means the default width of three measurements.
	WindowSize typekit.Lit
}

func (c *FoldConfig) Init() {
	c.Previous = typekit.None
	c.WindowSize = 3
}

func (c FoldConfig) Configure(t *FoldConfig) {
	*t = c
}

// WithPrevious seeds the fold with a measurement preceding the input.
func WithPrevious(prev typekit.Type) FoldOption {
	return option.Func[FoldConfig](func(c *FoldConfig) {
		c.Previous = prev
	})
}

// WithAccumulator starts the count from the given value instead of zero.
func WithAccumulator(count typekit.Lit) FoldOption {
	return option.Func[FoldConfig](func(c *FoldConfig) {
		c.Accumulator = count
	})
}

// WithWindowSize overrides the sliding window width.
func WithWindowSize(size typekit.Lit) FoldOption {
	return option.Func[FoldConfig](func(c *FoldConfig) {
		c.WindowSize = size
	})
}

// comparand resolves the seeded previous measurement,
// which is either an integer literal type or the none sentinel.
func (c FoldConfig) comparand() (typekit.Type, error) {
	prev := zerokit.Coalesce[typekit.Type](c.Previous, typekit.None)
	if p, ok := prev.(typekit.Lit); ok {
		if err := validate.Value(context.Background(), p); err != nil {
			return nil, err
		}
		return p, nil
	}
	if !typekit.Equal(prev, typekit.None) {
		return nil, ErrNonLiteral.F("the previous measurement must be an integer literal type or none, got %s", prev)
	}
	return prev, nil
}

// NumberOfIncreases counts how many measurements in the input are strictly
// greater than the measurement right before them. The first element has no
// predecessor and never counts, unless one is seeded with WithPrevious.
//
// The count of [199, 200, 208, 210, 200, 207, 240, 269, 260, 263] is 7.
func NumberOfIncreases(r *typekit.Resolver, input typekit.Tuple, opts ...FoldOption) (typekit.Lit, error) {
	if err := input.Validate(); err != nil {
		return 0, validate.ValidationError{Cause: err}
	}
	c := option.ToConfig(opts)
	prev, err := c.comparand()
	if err != nil {
		return 0, err
	}
	if err := validate.Value(context.Background(), c.Accumulator); err != nil {
		return 0, err
	}
	return countIncreases(r.Pass(), input, prev, c.Accumulator)
}

func countIncreases(f typekit.Frame, input typekit.Tuple, prev typekit.Type, acc typekit.Lit) (typekit.Lit, error) {
	f, err := f.Instantiate("NumberOfIncreases", input, prev, acc)
	if err != nil {
		return 0, err
	}
	state := stateOf(input, prev)
	if err := validate.Value(context.Background(), state); err != nil {
		return 0, err
	}
	f.Trace("fold step", logging.Field("state", string(state)))
	switch state {
	case StateDone:
		return acc, nil

	case StateFirstElement:
		head, err := headLit(input)
		if err != nil {
			return 0, err
		}
		rest, err := restFromArray(f, input)
		if err != nil {
			return 0, err
		}
		return countIncreases(f, rest, head, acc)

	default: // StateSubsequentElement
		head, err := headLit(input)
		if err != nil {
			return 0, err
		}
		increased, err := greaterThan(f, head, prev.(typekit.Lit))
		if err != nil {
			return 0, err
		}
		count := acc
		if bool(increased) {
			count, err = plusOne(f, acc)
			if err != nil {
				return 0, err
			}
		}
		rest, err := restFromArray(f, input)
		if err != nil {
			return 0, err
		}
		return countIncreases(f, rest, head, count)
	}
}

// NumberOfWindowIncreases sums each fixed-size sliding window of the input
// and counts how many window sums are strictly greater than the window sum
// before them. Windows narrower than the full width never form, so inputs
// shorter than the window count zero increases.
//
// The window is three measurements wide unless WithWindowSize says otherwise.
func NumberOfWindowIncreases(r *typekit.Resolver, input typekit.Tuple, opts ...FoldOption) (typekit.Lit, error) {
	if err := input.Validate(); err != nil {
		return 0, validate.ValidationError{Cause: err}
	}
	c := option.ToConfig(opts)
	prev, err := c.comparand()
	if err != nil {
		return 0, err
	}
	if err := validate.Value(context.Background(), c.Accumulator); err != nil {
		return 0, err
	}
	if err := validate.Value(context.Background(), c.WindowSize); err != nil {
		return 0, err
	}
	size := zerokit.Coalesce(c.WindowSize, 3)
	sums, err := windowSums(r.Pass(), input, size)
	if err != nil {
		return 0, err
	}
	return countIncreases(r.Pass(), sums, prev, c.Accumulator)
}

// windowSums folds the input into the tuple of its sliding window sums.
func windowSums(f typekit.Frame, input typekit.Tuple, size typekit.Lit) (typekit.Tuple, error) {
	f, err := f.Instantiate("WindowSums", input, size)
	if err != nil {
		return typekit.Tuple{}, err
	}
	if input.Len() < int(size) {
		return typekit.Tuple{}, nil
	}
	sum, err := windowSum(f, input, size)
	if err != nil {
		return typekit.Tuple{}, err
	}
	rest, err := restFromArray(f, input)
	if err != nil {
		return typekit.Tuple{}, err
	}
	tail, err := windowSums(f, rest, size)
	if err != nil {
		return typekit.Tuple{}, err
	}
	return typekit.TupleOf(sum).Concat(tail), nil
}

// windowSum adds up the first size measurements of the input.
// Callers guarantee the input holds at least that many.
func windowSum(f typekit.Frame, input typekit.Tuple, size typekit.Lit) (typekit.Lit, error) {
	f, err := f.Instantiate("WindowSum", input, size)
	if err != nil {
		return 0, err
	}
	if size == 0 {
		return 0, nil
	}
	head, err := headLit(input)
	if err != nil {
		return 0, err
	}
	rest, err := restFromArray(f, input)
	if err != nil {
		return 0, err
	}
	tailSum, err := windowSum(f, rest, size-1)
	if err != nil {
		return 0, err
	}
	return plus(f, head, tailSum)
}
