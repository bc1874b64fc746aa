// Package ebnf reads grammars written in the EBNF dialect of the Go
// language specification:
//
//	Production  = production_name "=" [ Expression ] "." .
//	Expression  = Term { "|" Term } .
//	Term        = production_name | token [ "…" token ] | Group | Option | Repetition .
//
// Grammars are parsed into the syntax tree of golang.org/x/exp/ebnf so they
// can be checked with its Verify.
package ebnf

import (
	"fmt"
	"text/scanner"
	"unicode"

	"github.com/dhamidi/parsec"
	"github.com/dhamidi/parsec/token"

	"golang.org/x/exp/ebnf"
)

type unit = struct{}

type P[T any] = parsec.Parser[rune, unit, T]

var productions = buildProductions()

func definition() token.Definition {
	def := token.JavaStyle()
	def.IdentStart = func(r rune) bool { return unicode.IsLetter(r) || r == '_' }
	def.IdentLetter = func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }
	return def
}

func scannerPos(p parsec.Position) scanner.Position {
	return scanner.Position{Filename: p.Name, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func parsecPos(p scanner.Position) parsec.Position {
	return parsec.Position{Name: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func buildProductions() P[[]*ebnf.Production] {
	lexer := token.MustNew[unit](definition())
	pos := parsec.Map(parsec.GetPosition[rune, unit](), scannerPos)
	expr := parsec.NewPlaceholder[rune, unit, ebnf.Expression]()

	name := parsec.Map2(pos, lexer.Identifier(), func(p scanner.Position, s string) *ebnf.Name {
		return &ebnf.Name{StringPos: p, String: s}
	})
	raw := token.Lexeme(lexer, parsec.Between(
		parsec.Char[unit]('`'),
		parsec.Label(parsec.Char[unit]('`'), "end of raw string"),
		parsec.StringValue(parsec.Many(parsec.NoneOf[unit]("`"))),
	))
	literal := parsec.Map2(pos, parsec.Label(parsec.OrElse(lexer.StringLiteral(), raw), "token"), func(p scanner.Position, s string) *ebnf.Token {
		return &ebnf.Token{StringPos: p, String: s}
	})

	tokenOrRange := parsec.Bind(literal, func(begin *ebnf.Token) P[ebnf.Expression] {
		rng := parsec.Map(parsec.Then(lexer.Symbol("…"), literal), func(end *ebnf.Token) ebnf.Expression {
			return &ebnf.Range{Begin: begin, End: end}
		})
		return parsec.Option[rune, unit, ebnf.Expression](begin, rng)
	})
	group := parsec.Map2(pos, token.Parens(lexer, expr.Parser()), func(p scanner.Position, body ebnf.Expression) ebnf.Expression {
		return &ebnf.Group{Lparen: p, Body: body}
	})
	option := parsec.Map2(pos, token.Brackets(lexer, expr.Parser()), func(p scanner.Position, body ebnf.Expression) ebnf.Expression {
		return &ebnf.Option{Lbrack: p, Body: body}
	})
	repetition := parsec.Map2(pos, token.Braces(lexer, expr.Parser()), func(p scanner.Position, body ebnf.Expression) ebnf.Expression {
		return &ebnf.Repetition{Lbrace: p, Body: body}
	})

	term := parsec.Label(parsec.Choice(
		parsec.Map(name, func(n *ebnf.Name) ebnf.Expression { return n }),
		tokenOrRange,
		group,
		option,
		repetition,
	), "term")
	sequence := parsec.Map(parsec.Many1(term), func(list []ebnf.Expression) ebnf.Expression {
		if len(list) == 1 {
			return list[0]
		}
		return ebnf.Sequence(list)
	})
	expr.Install(parsec.Map(parsec.SeparatedBy1(sequence, lexer.Symbol("|")), func(list []ebnf.Expression) ebnf.Expression {
		if len(list) == 1 {
			return list[0]
		}
		return ebnf.Alternative(list)
	}))

	production := parsec.Map2(
		parsec.Skip(name, lexer.Symbol("=")),
		parsec.Skip(parsec.Option[rune, unit, ebnf.Expression](nil, expr.Parser()), lexer.Symbol(".")),
		func(n *ebnf.Name, e ebnf.Expression) *ebnf.Production {
			return &ebnf.Production{Name: n, Expr: e}
		},
	)
	return parsec.Between(lexer.WhiteSpace(), parsec.EOF[rune, unit](), parsec.Many(production))
}

// Parse returns the productions of text and the name of the first one.
// Declaring a production twice is an error.
func Parse(name, text string) (ebnf.Grammar, string, error) {
	list, err := parsec.RunText(productions, name, text, unit{})
	if err != nil {
		return nil, "", err
	}

	grammar := make(ebnf.Grammar, len(list))
	for _, prod := range list {
		if _, found := grammar[prod.Name.String]; found {
			return nil, "", parsec.NewError(parsecPos(prod.Pos()), parsec.Raw, prod.Name.String+" declared already")
		}
		grammar[prod.Name.String] = prod
	}

	start := ""
	if len(list) > 0 {
		start = list[0].Name.String
	}
	return grammar, start, nil
}

// Check parses text and verifies that every production is defined and
// reachable from start, or from the first production when start is empty.
func Check(name, text, start string) error {
	grammar, first, err := Parse(name, text)
	if err != nil {
		return err
	}
	if start == "" {
		start = first
	}
	if start == "" {
		return nil
	}
	if err := ebnf.Verify(grammar, start); err != nil {
		return fmt.Errorf("invalid grammar: %w", err)
	}
	return nil
}
