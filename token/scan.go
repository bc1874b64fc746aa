package token

import (
	"strconv"
	"unicode"

	"github.com/dhamidi/parsec"
)

// Kind classifies a scanned token.
type Kind int

const (
	KindIdentifier Kind = iota
	KindReserved
	KindOperator
	KindReservedOp
	KindNumber
	KindString
	KindChar
	KindSymbol
)

var kindNames = [...]string{
	KindIdentifier: "identifier",
	KindReserved:   "reserved",
	KindOperator:   "operator",
	KindReservedOp: "reserved-op",
	KindNumber:     "number",
	KindString:     "string",
	KindChar:       "char",
	KindSymbol:     "symbol",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Token is one lexeme found by Scan.
type Token struct {
	Kind Kind
	Text string
	Pos  parsec.Position
}

// Scan splits a whole input into tokens. Reserved names and operators are
// tried before plain identifiers and operators; any other non-space rune
// becomes a one-rune symbol.
func (l *Lexer[U]) Scan() P[U, []Token] {
	kind := func(k Kind) func(string) Token {
		return func(text string) Token { return Token{Kind: k, Text: text} }
	}

	var alts []P[U, Token]
	for _, name := range l.def.ReservedNames {
		alts = append(alts, parsec.Map(l.Reserved(name), kind(KindReserved)))
	}
	for _, op := range l.def.ReservedOpNames {
		alts = append(alts, parsec.Map(l.ReservedOp(op), kind(KindReservedOp)))
	}
	alts = append(alts,
		parsec.Map(l.Identifier(), kind(KindIdentifier)),
		parsec.Map(l.Operator(), kind(KindOperator)),
		parsec.Map(l.NaturalOrFloat(), func(n Number) Token {
			if n.IsFloat {
				return Token{Kind: KindNumber, Text: strconv.FormatFloat(n.Float, 'g', -1, 64)}
			}
			return Token{Kind: KindNumber, Text: strconv.FormatInt(n.Int, 10)}
		}),
		parsec.Map(l.StringLiteral(), func(s string) Token { return Token{Kind: KindString, Text: strconv.Quote(s)} }),
		parsec.Map(l.CharLiteral(), func(r rune) Token { return Token{Kind: KindChar, Text: strconv.QuoteRune(r)} }),
		Lexeme(l, parsec.Map(parsec.Satisfy[U](func(r rune) bool { return !unicode.IsSpace(r) }), func(r rune) Token {
			return Token{Kind: KindSymbol, Text: string(r)}
		})),
	)

	tok := parsec.Map2(parsec.GetPosition[rune, U](), parsec.Choice(alts...), func(pos parsec.Position, t Token) Token {
		t.Pos = pos
		return t
	})
	return parsec.Between(l.WhiteSpace(), parsec.EOF[rune, U](), parsec.Many(tok))
}
