package cache

import (
	"context"
	"maps"
	"slices"
)

// FuncLoader is the signature of a function wrapped by Func.
type FuncLoader func(ctx context.Context, args Args) (any, error)

// FuncOption configures a Func.
type FuncOption func(*Func)

// WithKeyer replaces the DefaultKeyer derived from Config.Typed.
func WithKeyer(k Keyer) FuncOption {
	return func(f *Func) {
		if k != nil {
			f.keyer = k
		}
	}
}

// Func memoizes a function of dynamic positional and keyword arguments.
//
// Keys come from a Keyer. Arguments that cannot be keyed fail the call
// with an error wrapping ErrUnhashable before the function runs. When
// caching is disabled no key is derived at all.
//
// Pointers, channels and unsafe pointers are keyed by address. Each stored
// entry holds its arguments, so an address cannot be reused by another
// object while a key derived from it is cached.
type Func struct {
	fn    FuncLoader
	keyer Keyer
	memo  *Memo[string, funcEntry]
}

// funcEntry is a cached result together with the arguments it was
// computed from. The arguments are released with the entry on eviction,
// Forget or Clear.
type funcEntry struct {
	value any
	args  Args
}

// NewFunc wraps fn with a memoizing cache configured by cfg.
func NewFunc(fn FuncLoader, cfg Config, opts ...FuncOption) (*Func, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &Func{
		fn:    fn,
		keyer: NewDefaultKeyer(cfg.Typed),
		memo:  newMemo[string, funcEntry](cfg),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Call invokes the function with positional arguments only.
func (f *Func) Call(ctx context.Context, args ...any) (any, error) {
	return f.CallArgs(ctx, Args{Pos: args})
}

// CallArgs invokes the function with positional and keyword arguments.
func (f *Func) CallArgs(ctx context.Context, args Args) (any, error) {
	load := func() (funcEntry, error) {
		v, err := f.fn(ctx, args)
		return funcEntry{
			value: v,
			args:  Args{Pos: slices.Clone(args.Pos), Kw: maps.Clone(args.Kw)},
		}, err
	}
	key := ""
	if f.memo.cfg.ShouldCache() {
		var err error
		if key, err = f.keyer.Key(args); err != nil {
			return nil, err
		}
	}
	e, err := f.memo.lookup(key, load)
	return e.value, err
}

// Bypass invokes the function directly without reading or populating the cache.
func (f *Func) Bypass(ctx context.Context, args Args) (any, error) {
	return f.fn(ctx, args)
}

// Forget drops the entry for args, if any.
func (f *Func) Forget(args Args) (bool, error) {
	key, err := f.keyer.Key(args)
	if err != nil {
		return false, err
	}
	return f.memo.Forget(key), nil
}

// Info returns a consistent snapshot of the statistics.
func (f *Func) Info() Info {
	return f.memo.Info()
}

// Clear removes every entry and resets the counters.
func (f *Func) Clear() {
	f.memo.Clear()
}

var _ Memoizer = (*Func)(nil)
