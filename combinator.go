package parsec

// Map transforms the result of p with f.
func Map[S, U, T, R any](p Parser[S, U, T], f func(T) R) Parser[S, U, R] {
	return func(s State[S, U]) Reply[S, U, R] {
		r := p(s)
		if !r.OK {
			return failAs[S, U, T, R](r)
		}
		return succeed(f(r.Value), r.State, r.Consumed, r.Err)
	}
}

// Bind runs p and then the parser f builds from p's result. The second
// parser is never invoked when p fails.
func Bind[S, U, T, R any](p Parser[S, U, T], f func(T) Parser[S, U, R]) Parser[S, U, R] {
	return func(s State[S, U]) Reply[S, U, R] {
		r := p(s)
		if !r.OK {
			return failAs[S, U, T, R](r)
		}
		return andThen(r, f(r.Value))
	}
}

// andThen continues the successful reply first with q.
func andThen[S, U, T, R any](first Reply[S, U, T], q Parser[S, U, R]) Reply[S, U, R] {
	r := q(first.State)
	if !r.Consumed {
		// Nothing happened since first, so its pending expectations
		// still apply at this position.
		r.Err = MergeErrors(first.Err, r.Err)
		if !r.OK && r.Err == nil {
			r.Err = UnknownError(r.State.Pos)
		}
	}
	r.Consumed = r.Consumed || first.Consumed
	return r
}

// Then runs p and q in sequence and keeps q's result.
func Then[S, U, T, R any](p Parser[S, U, T], q Parser[S, U, R]) Parser[S, U, R] {
	return func(s State[S, U]) Reply[S, U, R] {
		r := p(s)
		if !r.OK {
			return failAs[S, U, T, R](r)
		}
		return andThen(r, q)
	}
}

// Skip runs p and q in sequence and keeps p's result.
func Skip[S, U, T, R any](p Parser[S, U, T], q Parser[S, U, R]) Parser[S, U, T] {
	return Map2(p, q, func(t T, _ R) T { return t })
}

// Map2 runs p and q in sequence and combines their results with f.
func Map2[S, U, A, B, R any](p Parser[S, U, A], q Parser[S, U, B], f func(A, B) R) Parser[S, U, R] {
	return func(s State[S, U]) Reply[S, U, R] {
		ra := p(s)
		if !ra.OK {
			return failAs[S, U, A, R](ra)
		}
		rb := andThen(ra, q)
		if !rb.OK {
			return failAs[S, U, B, R](rb)
		}
		return succeed(f(ra.Value, rb.Value), rb.State, rb.Consumed, rb.Err)
	}
}

// OrElse is ordered choice. q is tried from the original state only when p
// fails without consuming input; a p that fails after consuming input
// fails the whole choice.
func OrElse[S, U, T any](p, q Parser[S, U, T]) Parser[S, U, T] {
	return func(s State[S, U]) Reply[S, U, T] {
		r := p(s)
		if r.OK || r.Consumed {
			return r
		}
		r2 := q(s)
		if r2.Consumed {
			return r2
		}
		r2.Err = MergeErrors(r.Err, r2.Err)
		return r2
	}
}

// Choice tries each parser in order with the rules of OrElse.
func Choice[S, U, T any](ps ...Parser[S, U, T]) Parser[S, U, T] {
	if len(ps) == 0 {
		return Zero[S, U, T]()
	}
	return func(s State[S, U]) Reply[S, U, T] {
		var err *Error
		for i, p := range ps {
			r := p(s)
			if r.OK || r.Consumed {
				if i > 0 && !r.Consumed {
					r.Err = MergeErrors(err, r.Err)
				}
				return r
			}
			err = MergeErrors(err, r.Err)
			if i == len(ps)-1 {
				r.Err = err
				return r
			}
		}
		panic("unreachable")
	}
}

// Attempt runs p and, when it fails, rewinds to the starting state and
// reports that no input was consumed. The error keeps the position where p
// actually failed.
func Attempt[S, U, T any](p Parser[S, U, T]) Parser[S, U, T] {
	return func(s State[S, U]) Reply[S, U, T] {
		r := p(s)
		if !r.OK && r.Consumed {
			r.State = s
			r.Consumed = false
		}
		return r
	}
}

// Label names p in error messages. It only applies when p did not consume
// input: a failure deeper inside p is more informative than the label.
func Label[S, U, T any](p Parser[S, U, T], msg string) Parser[S, U, T] {
	return Labels(p, msg)
}

// Labels is like Label with several alternative names.
func Labels[S, U, T any](p Parser[S, U, T], msgs ...string) Parser[S, U, T] {
	return func(s State[S, U]) Reply[S, U, T] {
		r := p(s)
		if r.Consumed {
			return r
		}
		if r.OK {
			if !r.Err.IsUnknown() {
				r.Err = r.Err.withExpect(msgs...)
			}
			return r
		}
		r.Err = r.Err.withExpect(msgs...)
		return r
	}
}

// LookAhead runs p without consuming input on success.
func LookAhead[S, U, T any](p Parser[S, U, T]) Parser[S, U, T] {
	return func(s State[S, U]) Reply[S, U, T] {
		r := p(s)
		if !r.OK {
			return r
		}
		return succeed(r.Value, s, false, nil)
	}
}

// NotFollowedBy succeeds without consuming input only when p fails.
// show renders p's result for the error message.
func NotFollowedBy[S, U, T any](p Parser[S, U, T], show func(T) string) Parser[S, U, struct{}] {
	return func(s State[S, U]) Reply[S, U, struct{}] {
		r := Attempt(p)(s)
		if r.OK {
			return fail[S, U, struct{}](s, false, NewError(s.Pos, Unexpect, show(r.Value)))
		}
		return succeed(struct{}{}, s, false, nil)
	}
}

// Option runs p and returns def when p fails without consuming input.
func Option[S, U, T any](def T, p Parser[S, U, T]) Parser[S, U, T] {
	return OrElse(p, Pure[S, U](def))
}

// Optional runs p, ignoring its result and a failure without consumption.
func Optional[S, U, T any](p Parser[S, U, T]) Parser[S, U, struct{}] {
	return OrElse(Then(p, Pure[S, U](struct{}{})), Pure[S, U](struct{}{}))
}

// Between parses open, p, then close and returns p's result.
func Between[S, U, O, C, T any](open Parser[S, U, O], close Parser[S, U, C], p Parser[S, U, T]) Parser[S, U, T] {
	return Then(open, Skip(p, close))
}

// Void discards the result of p.
func Void[S, U, T any](p Parser[S, U, T]) Parser[S, U, struct{}] {
	return Map(p, func(T) struct{} { return struct{}{} })
}
