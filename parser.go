package parsec

import "fmt"

// State is threaded through a parse. It is a value: parsers never modify
// the state they are given, they return a new one.
type State[S, U any] struct {
	Input  Stream[S]
	Offset int
	Pos    Position
	User   U
}

// NewState returns the initial state of a parse over input.
func NewState[S, U any](name string, input Stream[S], user U) State[S, U] {
	return State[S, U]{
		Input: input,
		Pos:   NewPosition(name),
		User:  user,
	}
}

// Peek returns the next symbol without consuming it.
func (s State[S, U]) Peek() (S, bool) {
	sym, _, ok := s.Input.Next(s.Offset)
	return sym, ok
}

// AtEnd reports whether the input is exhausted.
func (s State[S, U]) AtEnd() bool {
	_, ok := s.Peek()
	return !ok
}

// advance consumes the next symbol.
func (s State[S, U]) advance() (S, State[S, U], bool) {
	sym, next, ok := s.Input.Next(s.Offset)
	if !ok {
		return sym, s, false
	}
	s.Pos = s.Input.Advance(s.Pos, sym, next)
	s.Pos.Offset = next
	s.Offset = next
	return sym, s, true
}

// Reply is the outcome of applying a parser.
//
// Consumed records whether input was consumed before the parser succeeded
// or failed. Err is always set when OK is false; on success it may hold the
// expectations pending at the reached position.
type Reply[S, U, T any] struct {
	Value    T
	State    State[S, U]
	Err      *Error
	OK       bool
	Consumed bool
}

// Parser is a function from a parse state to a reply. Parsers are pure and
// may be shared between goroutines.
type Parser[S, U, T any] func(State[S, U]) Reply[S, U, T]

func succeed[S, U, T any](v T, s State[S, U], consumed bool, err *Error) Reply[S, U, T] {
	return Reply[S, U, T]{Value: v, State: s, Err: err, OK: true, Consumed: consumed}
}

func fail[S, U, T any](s State[S, U], consumed bool, err *Error) Reply[S, U, T] {
	if err == nil {
		err = UnknownError(s.Pos)
	}
	return Reply[S, U, T]{State: s, Err: err, Consumed: consumed}
}

// failAs forwards a failed reply under another result type.
func failAs[S, U, T, R any](r Reply[S, U, T]) Reply[S, U, R] {
	return fail[S, U, R](r.State, r.Consumed, r.Err)
}

// Run applies p to input and returns its result, or an *Error.
func Run[S, U, T any](p Parser[S, U, T], name string, input Stream[S], user U) (T, error) {
	v, _, err := RunState(p, name, input, user)
	return v, err
}

// RunState is like Run but also returns the final state so callers can
// read the user state.
func RunState[S, U, T any](p Parser[S, U, T], name string, input Stream[S], user U) (T, State[S, U], error) {
	r := p(NewState(name, input, user))
	if !r.OK {
		var zero T
		return zero, r.State, r.Err
	}
	return r.Value, r.State, nil
}

// RunText applies a rune parser to text.
func RunText[U, T any](p Parser[rune, U, T], name, text string, user U) (T, error) {
	return Run(p, name, Stream[rune](NewText(text)), user)
}

// Parse applies a rune parser without user state to text.
func Parse[T any](p Parser[rune, struct{}, T], text string) (T, error) {
	return RunText(p, "", text, struct{}{})
}

// Pure succeeds with v without consuming input.
func Pure[S, U, T any](v T) Parser[S, U, T] {
	return func(s State[S, U]) Reply[S, U, T] {
		return succeed(v, s, false, nil)
	}
}

// Fail fails without consuming input, reporting msg.
func Fail[S, U, T any](msg string) Parser[S, U, T] {
	return func(s State[S, U]) Reply[S, U, T] {
		return fail[S, U, T](s, false, NewError(s.Pos, Raw, msg))
	}
}

// Unexpected fails without consuming input, reporting msg as unexpected.
func Unexpected[S, U, T any](msg string) Parser[S, U, T] {
	return func(s State[S, U]) Reply[S, U, T] {
		return fail[S, U, T](s, false, NewError(s.Pos, Unexpect, msg))
	}
}

// Zero always fails without consuming input or reporting anything.
func Zero[S, U, T any]() Parser[S, U, T] {
	return func(s State[S, U]) Reply[S, U, T] {
		return fail[S, U, T](s, false, UnknownError(s.Pos))
	}
}

// Token accepts the next symbol when test returns true. show renders a
// symbol for error messages.
func Token[S, U any](show func(S) string, test func(S) bool) Parser[S, U, S] {
	return func(s State[S, U]) Reply[S, U, S] {
		sym, next, found := s.advance()
		if !found {
			return fail[S, U, S](s, false, NewError(s.Pos, SysUnexpect, ""))
		}
		if !test(sym) {
			return fail[S, U, S](s, false, NewError(s.Pos, SysUnexpect, show(sym)))
		}
		return succeed(sym, next, true, nil)
	}
}

// AnyToken accepts any symbol.
func AnyToken[S, U any]() Parser[S, U, S] {
	show := func(sym S) string { return fmt.Sprint(sym) }
	return Label(Token[S, U](show, func(S) bool { return true }), "any token")
}

// EOF succeeds only at the end of input.
func EOF[S, U any]() Parser[S, U, struct{}] {
	return func(s State[S, U]) Reply[S, U, struct{}] {
		sym, found := s.Peek()
		if found {
			err := NewError(s.Pos, Unexpect, showSymbol(sym))
			err.Messages = append(err.Messages, Message{Kind: Expect, Text: "end of input"})
			return fail[S, U, struct{}](s, false, err)
		}
		return succeed(struct{}{}, s, false, nil)
	}
}

func showSymbol(sym any) string {
	if r, isRune := sym.(rune); isRune {
		return quoteRune(r)
	}
	return fmt.Sprint(sym)
}

// GetState returns the user state.
func GetState[S, U any]() Parser[S, U, U] {
	return func(s State[S, U]) Reply[S, U, U] {
		return succeed(s.User, s, false, nil)
	}
}

// PutState replaces the user state.
func PutState[S, U any](u U) Parser[S, U, struct{}] {
	return UpdateState[S](func(U) U { return u })
}

// UpdateState applies f to the user state.
func UpdateState[S, U any](f func(U) U) Parser[S, U, struct{}] {
	return func(s State[S, U]) Reply[S, U, struct{}] {
		s.User = f(s.User)
		return succeed(struct{}{}, s, false, nil)
	}
}

// GetPosition returns the current source position.
func GetPosition[S, U any]() Parser[S, U, Position] {
	return func(s State[S, U]) Reply[S, U, Position] {
		return succeed(s.Pos, s, false, nil)
	}
}
