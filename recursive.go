package parsec

import "sync/atomic"

// Placeholder is an indirection cell for grammars that refer to themselves.
// Its Parser may be used in combinator expressions before the real parser
// exists; Install must be called exactly once before the first parse.
type Placeholder[S, U, T any] struct {
	target atomic.Pointer[Parser[S, U, T]]
}

// NewPlaceholder returns an empty placeholder.
func NewPlaceholder[S, U, T any]() *Placeholder[S, U, T] {
	return &Placeholder[S, U, T]{}
}

// Install sets the parser the placeholder stands for. It panics with
// ErrReinstalled if a parser is already installed.
func (ph *Placeholder[S, U, T]) Install(p Parser[S, U, T]) {
	if p == nil {
		panic("parsec: installing a nil parser")
	}
	if !ph.target.CompareAndSwap(nil, &p) {
		panic(ErrReinstalled)
	}
}

// Installed reports whether Install was called.
func (ph *Placeholder[S, U, T]) Installed() bool {
	return ph.target.Load() != nil
}

// Parser returns a parser that delegates to the installed parser. Running
// it before Install panics with ErrUninstalled.
func (ph *Placeholder[S, U, T]) Parser() Parser[S, U, T] {
	return func(s State[S, U]) Reply[S, U, T] {
		p := ph.target.Load()
		if p == nil {
			panic(ErrUninstalled)
		}
		return (*p)(s)
	}
}

// Recursive ties a self-referential grammar: build receives a parser
// standing for its own result and the returned parser is installed behind
// it before Recursive returns.
func Recursive[S, U, T any](build func(self Parser[S, U, T]) Parser[S, U, T]) Parser[S, U, T] {
	ph := NewPlaceholder[S, U, T]()
	ph.Install(build(ph.Parser()))
	return ph.Parser()
}

// Lazy defers building a parser until it is first run. Concurrent first
// runs may each call build, but only one result is kept.
func Lazy[S, U, T any](build func() Parser[S, U, T]) Parser[S, U, T] {
	var built atomic.Pointer[Parser[S, U, T]]
	return func(s State[S, U]) Reply[S, U, T] {
		p := built.Load()
		if p == nil {
			q := build()
			built.CompareAndSwap(nil, &q)
			p = built.Load()
		}
		return (*p)(s)
	}
}
