// Package expr builds expression parsers from operator precedence tables.
//
// A Table lists operator levels from the highest precedence to the lowest.
// Build wraps the term parser in one layer per level, so operators of an
// earlier level bind tighter than those of a later one:
//
//	table := expr.Table[rune, U, int]{
//		{expr.Prefix(neg)},
//		{expr.Infix(mul, expr.AssocLeft), expr.Infix(div, expr.AssocLeft)},
//		{expr.Infix(add, expr.AssocLeft), expr.Infix(sub, expr.AssocLeft)},
//	}
//	p := expr.Build(table, term)
package expr

import (
	"fmt"

	"github.com/dhamidi/parsec"
)

// Assoc is the associativity of an infix operator.
type Assoc int

const (
	// AssocNone rejects chaining: "a < b < c" is an error.
	AssocNone Assoc = iota
	// AssocLeft groups "a - b - c" as "(a - b) - c".
	AssocLeft
	// AssocRight groups "a ^ b ^ c" as "a ^ (b ^ c)".
	AssocRight
)

func (a Assoc) String() string {
	switch a {
	case AssocNone:
		return "non"
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	}
	return fmt.Sprintf("Assoc(%d)", int(a))
}

type kind int

const (
	infix kind = iota
	prefix
	postfix
)

// Operator is one entry of a Table. Its parser accepts the operator symbol
// and returns the function that combines the operands.
type Operator[S, U, T any] struct {
	kind   kind
	assoc  Assoc
	binary parsec.Parser[S, U, func(T, T) T]
	unary  parsec.Parser[S, U, func(T) T]
}

// Infix is a binary operator with the given associativity.
func Infix[S, U, T any](p parsec.Parser[S, U, func(T, T) T], assoc Assoc) Operator[S, U, T] {
	return Operator[S, U, T]{kind: infix, assoc: assoc, binary: p}
}

// Prefix is a unary operator written before its operand.
func Prefix[S, U, T any](p parsec.Parser[S, U, func(T) T]) Operator[S, U, T] {
	return Operator[S, U, T]{kind: prefix, unary: p}
}

// Postfix is a unary operator written after its operand.
func Postfix[S, U, T any](p parsec.Parser[S, U, func(T) T]) Operator[S, U, T] {
	return Operator[S, U, T]{kind: postfix, unary: p}
}

// Table lists operator levels in descending precedence.
type Table[S, U, T any] [][]Operator[S, U, T]

// Build returns a parser for expressions over term using the operators of
// table. At most one prefix and one postfix operator of a level apply to
// each operand.
func Build[S, U, T any](table Table[S, U, T], term parsec.Parser[S, U, T]) parsec.Parser[S, U, T] {
	for _, level := range table {
		term = buildLevel(level, term)
	}
	return term
}

type level[S, U, T any] struct {
	right, left, none []parsec.Parser[S, U, func(T, T) T]
	prefix, postfix   []parsec.Parser[S, U, func(T) T]
}

func identity[T any](x T) T { return x }

func buildLevel[S, U, T any](ops []Operator[S, U, T], term parsec.Parser[S, U, T]) parsec.Parser[S, U, T] {
	var lv level[S, U, T]
	for _, op := range ops {
		switch {
		case op.kind == prefix:
			lv.prefix = append(lv.prefix, op.unary)
		case op.kind == postfix:
			lv.postfix = append(lv.postfix, op.unary)
		case op.assoc == AssocRight:
			lv.right = append(lv.right, op.binary)
		case op.assoc == AssocLeft:
			lv.left = append(lv.left, op.binary)
		default:
			lv.none = append(lv.none, op.binary)
		}
	}

	rightOp := parsec.Choice(lv.right...)
	leftOp := parsec.Choice(lv.left...)
	noneOp := parsec.Choice(lv.none...)
	prefixOp := parsec.Label(parsec.Choice(lv.prefix...), "")
	postfixOp := parsec.Label(parsec.Choice(lv.postfix...), "")

	ambiguousRight := ambiguous[S, U, T](AssocRight, rightOp)
	ambiguousLeft := ambiguous[S, U, T](AssocLeft, leftOp)
	ambiguousNone := ambiguous[S, U, T](AssocNone, noneOp)

	pre := parsec.Option(identity[T], prefixOp)
	post := parsec.Option(identity[T], postfixOp)
	operand := parsec.Bind(pre, func(f func(T) T) parsec.Parser[S, U, T] {
		return parsec.Map2(term, post, func(x T, g func(T) T) T { return g(f(x)) })
	})

	var rightChain, leftChain func(x T) parsec.Parser[S, U, T]
	rightChain = func(x T) parsec.Parser[S, U, T] {
		step := parsec.Bind(rightOp, func(f func(T, T) T) parsec.Parser[S, U, T] {
			rest := parsec.Bind(operand, func(y T) parsec.Parser[S, U, T] {
				return parsec.Option(y, rightChain(y))
			})
			return parsec.Map(rest, func(y T) T { return f(x, y) })
		})
		return parsec.Choice(step, ambiguousLeft, ambiguousNone)
	}
	leftChain = func(x T) parsec.Parser[S, U, T] {
		step := parsec.Bind(leftOp, func(f func(T, T) T) parsec.Parser[S, U, T] {
			return parsec.Bind(operand, func(y T) parsec.Parser[S, U, T] {
				z := f(x, y)
				return parsec.Option(z, leftChain(z))
			})
		})
		return parsec.Choice(step, ambiguousRight, ambiguousNone)
	}
	noneChain := func(x T) parsec.Parser[S, U, T] {
		return parsec.Bind(noneOp, func(f func(T, T) T) parsec.Parser[S, U, T] {
			return parsec.Bind(operand, func(y T) parsec.Parser[S, U, T] {
				return parsec.Choice(ambiguousRight, ambiguousLeft, ambiguousNone, parsec.Pure[S, U](f(x, y)))
			})
		})
	}

	return parsec.Bind(operand, func(x T) parsec.Parser[S, U, T] {
		return parsec.Label(parsec.Choice(rightChain(x), leftChain(x), noneChain(x), parsec.Pure[S, U](x)), "operator")
	})
}

// ambiguous fails when an operator of the given associativity follows an
// operand at a level where it cannot be chained.
func ambiguous[S, U, T any, F any](assoc Assoc, op parsec.Parser[S, U, F]) parsec.Parser[S, U, T] {
	msg := fmt.Sprintf("ambiguous use of a %s associative operator", assoc)
	return parsec.Attempt(parsec.Then(op, parsec.Fail[S, U, T](msg)))
}
