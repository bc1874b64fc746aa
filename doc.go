// Package parsec is a parser-combinator engine.
//
// # Overview
//
// A grammar is built by composing small parsers rather than by writing a
// scanner and recursive-descent routines by hand:
//
//	quoted := parsec.Between(quote, quote, parsec.StringValue(parsec.Many(quotedChar)))
//	field := parsec.OrElse(quoted, parsec.StringValue(parsec.Many(parsec.NoneOf[U](",\n"))))
//	record := parsec.SeparatedBy(field, parsec.Char[U](','))
//
// Every parser has the type
//
//	type Parser[S, U, T any] func(State[S, U]) Reply[S, U, T]
//
// where S is the input symbol type (rune for text), U an opaque user state
// threaded through the parse, and T the result type. Parsers are pure
// values: they may be built once and run concurrently on any number of
// inputs.
//
// # Consumption and backtracking
//
// Each Reply records whether input was consumed. Ordered choice (OrElse,
// Choice) only tries an alternative when the previous one failed without
// consuming input. To backtrack past consumed input wrap the alternative in
// Attempt:
//
//	parsec.OrElse(parsec.Attempt(parsec.String[U]("let")), parsec.String[U]("lambda"))
//
// Repetitions stop when their element fails without consuming input and
// fail when it fails after consuming some. An element that succeeds without
// consuming input would loop forever, so repetitions panic with
// ErrEmptyLoop instead.
//
// # Errors
//
// Failures are *Error values holding a Position and messages. When
// alternatives fail, their errors are merged: the one that got furthest
// wins, and errors at the same position pool their expectations. Label
// renames what a parser expects.
//
// # Recursive grammars
//
// Recursive passes a stand-in for the parser being defined to a builder:
//
//	value := parsec.Recursive(func(value P) P {
//		return parsec.OrElse(number, brackets(parsec.SeparatedBy(value, comma)))
//	})
//
// Placeholder exposes the underlying install-once cell for mutually
// recursive definitions. Running a placeholder before installation panics
// with ErrUninstalled.
package parsec
