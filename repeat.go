package parsec

// ManyAccumulator applies p zero or more times, folding each result into an
// accumulator. init is called once per application, so a mutable
// accumulator such as a map is never shared between parses.
//
// Repetition stops when p fails without consuming input. A failure after
// consuming input fails the whole repetition. If p succeeds without
// consuming input ManyAccumulator panics with ErrEmptyLoop, since it would
// otherwise never terminate.
func ManyAccumulator[S, U, T, A any](p Parser[S, U, T], init func() A, combine func(A, T) A) Parser[S, U, A] {
	return func(s State[S, U]) Reply[S, U, A] {
		acc := init()
		consumed := false
		for {
			r := p(s)
			if !r.OK {
				if r.Consumed {
					return failAs[S, U, T, A](r)
				}
				return succeed(acc, s, consumed, r.Err)
			}
			if !r.Consumed {
				panic(ErrEmptyLoop)
			}
			acc = combine(acc, r.Value)
			s = r.State
			consumed = true
		}
	}
}

// Many applies p zero or more times and collects the results.
func Many[S, U, T any](p Parser[S, U, T]) Parser[S, U, []T] {
	return ManyAccumulator(p, func() []T { return nil }, func(acc []T, v T) []T {
		return append(acc, v)
	})
}

// Many1 applies p one or more times.
func Many1[S, U, T any](p Parser[S, U, T]) Parser[S, U, []T] {
	return Map2(p, Many(p), prepend[T])
}

// SkipMany applies p zero or more times, ignoring the results.
func SkipMany[S, U, T any](p Parser[S, U, T]) Parser[S, U, struct{}] {
	return ManyAccumulator(p, func() struct{} { return struct{}{} }, func(acc struct{}, _ T) struct{} {
		return acc
	})
}

// SkipMany1 applies p one or more times, ignoring the results.
func SkipMany1[S, U, T any](p Parser[S, U, T]) Parser[S, U, struct{}] {
	return Then(p, SkipMany(p))
}

// Count applies p exactly n times.
func Count[S, U, T any](n int, p Parser[S, U, T]) Parser[S, U, []T] {
	if n <= 0 {
		return Pure[S, U, []T](nil)
	}
	return func(s State[S, U]) Reply[S, U, []T] {
		out := make([]T, 0, n)
		r := p(s)
		for i := 0; ; i++ {
			if !r.OK {
				return failAs[S, U, T, []T](r)
			}
			out = append(out, r.Value)
			if i == n-1 {
				return succeed(out, r.State, r.Consumed, r.Err)
			}
			r = andThen(r, p)
		}
	}
}

// SeparatedBy parses zero or more occurrences of p separated by sep.
func SeparatedBy[S, U, T, P any](p Parser[S, U, T], sep Parser[S, U, P]) Parser[S, U, []T] {
	return Option([]T(nil), SeparatedBy1(p, sep))
}

// SeparatedBy1 parses one or more occurrences of p separated by sep.
func SeparatedBy1[S, U, T, P any](p Parser[S, U, T], sep Parser[S, U, P]) Parser[S, U, []T] {
	return Map2(p, Many(Then(sep, p)), prepend[T])
}

// EndBy parses zero or more occurrences of p, each followed by sep.
func EndBy[S, U, T, P any](p Parser[S, U, T], sep Parser[S, U, P]) Parser[S, U, []T] {
	return Many(Skip(p, sep))
}

// EndBy1 parses one or more occurrences of p, each followed by sep.
func EndBy1[S, U, T, P any](p Parser[S, U, T], sep Parser[S, U, P]) Parser[S, U, []T] {
	return Many1(Skip(p, sep))
}

// SepEndBy parses zero or more occurrences of p separated and optionally
// ended by sep.
func SepEndBy[S, U, T, P any](p Parser[S, U, T], sep Parser[S, U, P]) Parser[S, U, []T] {
	return Option([]T(nil), SepEndBy1(p, sep))
}

// SepEndBy1 parses one or more occurrences of p separated and optionally
// ended by sep.
func SepEndBy1[S, U, T, P any](p Parser[S, U, T], sep Parser[S, U, P]) Parser[S, U, []T] {
	tail := Recursive(func(tail Parser[S, U, []T]) Parser[S, U, []T] {
		return Option([]T(nil), Then(sep, Option([]T(nil), Map2(p, tail, prepend[T]))))
	})
	return Map2(p, tail, prepend[T])
}

// ManyTill applies p zero or more times until end succeeds and returns the
// results of p.
func ManyTill[S, U, T, E any](p Parser[S, U, T], end Parser[S, U, E]) Parser[S, U, []T] {
	return func(s State[S, U]) Reply[S, U, []T] {
		var acc []T
		var err *Error
		consumed := false
		for {
			re := end(s)
			if re.OK || re.Consumed {
				if !re.Consumed {
					re.Err = MergeErrors(err, re.Err)
				}
				if !re.OK {
					return fail[S, U, []T](re.State, true, re.Err)
				}
				return succeed(acc, re.State, consumed || re.Consumed, re.Err)
			}
			err = MergeErrors(err, re.Err)

			rp := p(s)
			if !rp.OK {
				if !rp.Consumed {
					rp.Err = MergeErrors(err, rp.Err)
				}
				return fail[S, U, []T](rp.State, consumed || rp.Consumed, rp.Err)
			}
			if !rp.Consumed {
				panic(ErrEmptyLoop)
			}
			acc = append(acc, rp.Value)
			s, err, consumed = rp.State, rp.Err, true
		}
	}
}

type chainStep[T any] struct {
	op    func(T, T) T
	right T
}

// Chainl1 parses one or more p separated by op and folds the results with
// the functions returned by op, associating to the left.
func Chainl1[S, U, T any](p Parser[S, U, T], op Parser[S, U, func(T, T) T]) Parser[S, U, T] {
	steps := Many(Map2(op, p, newChainStep[T]))
	return Map2(p, steps, func(x T, steps []chainStep[T]) T {
		for _, st := range steps {
			x = st.op(x, st.right)
		}
		return x
	})
}

// Chainr1 is like Chainl1 but associates to the right.
func Chainr1[S, U, T any](p Parser[S, U, T], op Parser[S, U, func(T, T) T]) Parser[S, U, T] {
	steps := Many(Map2(op, p, newChainStep[T]))
	return Map2(p, steps, func(x T, steps []chainStep[T]) T {
		if len(steps) == 0 {
			return x
		}
		acc := steps[len(steps)-1].right
		for i := len(steps) - 1; i > 0; i-- {
			acc = steps[i].op(steps[i-1].right, acc)
		}
		return steps[0].op(x, acc)
	})
}

func newChainStep[T any](op func(T, T) T, right T) chainStep[T] {
	return chainStep[T]{op: op, right: right}
}

func prepend[T any](x T, xs []T) []T {
	return append([]T{x}, xs...)
}
