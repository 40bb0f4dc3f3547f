package typekit

import (
	"context"
	"strings"
	"sync"

	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/pkg/slicekit"
	"go.llib.dev/frameless/pkg/zerokit"
)

// DefaultMaxDepth is the instantiation depth ceiling a Resolver enforces
// when no explicit MaxDepth is configured.
const DefaultMaxDepth = 1000

// ErrDepthExceeded is returned when a computation needs more nested
// instantiations than the hosting Resolver's depth ceiling allows.
// It is the only error a well-formed computation can fail with.
const ErrDepthExceeded errorkit.Error = "ErrDepthExceeded"

// Resolver hosts the evaluation of computations over type values.
// Every nested instantiation a computation makes claims a Frame from it,
// and the Resolver refuses to go deeper than its depth ceiling.
//
// The zero value is ready to use and enforces DefaultMaxDepth.
// A Resolver is safe for concurrent use.
type Resolver struct {
	// MaxDepth is the instantiation depth ceiling.
	// Zero means DefaultMaxDepth.
	MaxDepth int
	// Logger, when set, receives a debug trace of every instantiation.
	Logger *logging.Logger
	// Memoize enables reuse of already resolved instantiations.
	// Resolution is referentially transparent, so a cached result
	// is indistinguishable from a recomputed one, except in Stats.
	Memoize bool

	mutex sync.Mutex
	memo  map[string]Type
	stats Stats
}

// Stats holds cumulative counters about the resolution work a Resolver hosted.
type Stats struct {
	// Instantiations is the total number of frames claimed so far.
	Instantiations int
	// PeakDepth is the deepest nesting level any computation reached.
	PeakDepth int
	// MemoHits is the number of instantiations answered from the memo table.
	MemoHits int
}

var defaultResolver = &Resolver{}

// Pass returns the root frame computations descend from.
// A nil Resolver is valid and delegates to a shared default instance.
func (r *Resolver) Pass() Frame {
	if r == nil {
		r = defaultResolver
	}
	return Frame{resolver: r}
}

// Stats returns a snapshot of the resolver's counters.
func (r *Resolver) Stats() Stats {
	if r == nil {
		r = defaultResolver
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.stats
}

func (r *Resolver) maxDepth() int {
	return zerokit.Coalesce(r.MaxDepth, DefaultMaxDepth)
}

func (r *Resolver) observe(depth int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.stats.Instantiations++
	if r.stats.PeakDepth < depth {
		r.stats.PeakDepth = depth
	}
}

// Frame is one level of nested instantiation within a computation.
// Frames are claimed through Instantiate and carry their nesting depth;
// passing a frame down a recursive call is what makes the recursion
// accountable to the resolver's ceiling.
//
// The zero Frame acts as a root frame of the shared default Resolver.
type Frame struct {
	resolver *Resolver
	depth    int
	op       string
	args     []Type
}

func (f Frame) res() *Resolver {
	return zerokit.Coalesce(f.resolver, defaultResolver)
}

// Depth returns how many instantiations deep this frame is.
func (f Frame) Depth() int { return f.depth }

// Instantiate claims the next frame for the given operation.
// It fails with ErrDepthExceeded when the new frame would sit
// deeper than the resolver's ceiling.
func (f Frame) Instantiate(op string, args ...Type) (Frame, error) {
	r := f.res()
	depth := f.depth + 1
	if limit := r.maxDepth(); limit < depth {
		return Frame{}, ErrDepthExceeded.F("%s needs instantiation depth %d, the limit is %d",
			signature(op, args...), depth, limit)
	}
	next := Frame{resolver: r, depth: depth, op: op, args: args}
	r.observe(depth)
	next.Trace("instantiate")
	return next, nil
}

// Cached looks up the result of an identical earlier instantiation.
// It only ever reports a hit on a memoizing resolver.
func (f Frame) Cached() (Type, bool) {
	r := f.res()
	if !r.Memoize {
		return nil, false
	}
	sig := f.signature()
	r.mutex.Lock()
	t, ok := r.memo[sig]
	if ok {
		r.stats.MemoHits++
	}
	r.mutex.Unlock()
	if ok {
		f.Trace("memo hit")
	}
	return t, ok
}

// Cache records the frame's result for reuse by identical instantiations.
func (f Frame) Cache(t Type) {
	r := f.res()
	if !r.Memoize {
		return
	}
	sig := f.signature()
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.memo == nil {
		r.memo = make(map[string]Type)
	}
	r.memo[sig] = t
}

// Trace emits a debug log entry tagged with the frame's operation and depth.
// Without a configured Logger it is a no-op.
func (f Frame) Trace(msg string, ds ...logging.Detail) {
	r := f.res()
	if r.Logger == nil {
		return
	}
	ds = append([]logging.Detail{
		logging.Field("op", f.signature()),
		logging.Field("depth", f.depth),
	}, ds...)
	r.Logger.Debug(context.Background(), msg, ds...)
}

// signature renders an instantiation in a generic call form, like "Plus<2, 3>".
// Identical signatures mean identical results, which is what memoization keys on.
// Rendering a signature costs a traversal of every argument,
// so frames hold op and args and render only on memo access, tracing and errors.
func (f Frame) signature() string {
	return signature(f.op, f.args...)
}

func signature(op string, args ...Type) string {
	if len(args) == 0 {
		return op
	}
	return op + "<" + strings.Join(slicekit.Map(args, Type.String), ", ") + ">"
}

type resolverProfile struct {
	MaxDepth int  `env:"TYPEKIT_MAX_DEPTH"`
	Memoize  bool `env:"TYPEKIT_MEMOIZE"`
	Trace    bool `env:"TYPEKIT_TRACE"`
}

// FromEnv builds a Resolver from the process environment.
//
//   - TYPEKIT_MAX_DEPTH sets the depth ceiling (DefaultMaxDepth when unset)
//   - TYPEKIT_MEMOIZE enables instantiation memoization
//   - TYPEKIT_TRACE enables debug tracing to the standard error output
func FromEnv() (*Resolver, error) {
	var profile resolverProfile
	if err := env.Load(&profile); err != nil {
		return nil, err
	}
	r := &Resolver{
		MaxDepth: profile.MaxDepth,
		Memoize:  profile.Memoize,
	}
	if profile.Trace {
		r.Logger = &logging.Logger{Level: logging.LevelDebug}
	}
	return r, nil
}
