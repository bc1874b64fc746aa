package token

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/dhamidi/parsec"
)

// P is a parser over text.
type P[U, T any] = parsec.Parser[rune, U, T]

type none = struct{}

// Number is the result of NaturalOrFloat.
type Number struct {
	Int     int64
	Float   float64
	IsFloat bool
}

// Lexer is the token parser layer derived from a Definition. Every token
// parser skips the white space and comments that follow the token, so a
// grammar only has to skip leading white space once with WhiteSpace.
//
// A Lexer holds no mutable state and may be shared between parses.
type Lexer[U any] struct {
	def Definition

	whiteSpace     P[U, none]
	identifier     P[U, string]
	operator       P[U, string]
	natural        P[U, int64]
	integer        P[U, int64]
	float          P[U, float64]
	integerAsFloat P[U, float64]
	floatOrInteger P[U, float64]
	naturalOrFloat P[U, Number]
	stringLiteral  P[U, string]
	charLiteral    P[U, rune]
}

// New derives the token parsers of def.
func New[U any](def Definition) (*Lexer[U], error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	l := &Lexer[U]{def: def}
	l.whiteSpace = l.buildWhiteSpace()
	l.identifier = l.buildIdentifier()
	l.operator = l.buildOperator()
	l.natural = Lexeme(l, parsec.Label(l.nat(), "natural"))
	l.integer = Lexeme(l, parsec.Label(parsec.Map2(l.sign(), l.nat(), func(sign, n int64) int64 { return sign * n }), "integer"))
	l.float = Lexeme(l, parsec.Label(parsec.Map2(l.sign(), l.floating(), applySign), "float"))
	l.integerAsFloat = Lexeme(l, parsec.Label(parsec.Map2(l.sign(), parsec.Bind(l.unsigned(false), floatValue[U]), applySign), "integer"))
	l.floatOrInteger = Lexeme(l, parsec.Label(parsec.Map2(l.sign(), parsec.Bind(l.unsigned(true), floatValue[U]), applySign), "number"))
	l.naturalOrFloat = Lexeme(l, parsec.Label(l.natFloat(), "number"))
	l.stringLiteral = Lexeme(l, parsec.Label(l.buildStringLiteral(), "literal string"))
	l.charLiteral = Lexeme(l, parsec.Label(l.buildCharLiteral(), "character"))
	return l, nil
}

// MustNew is like New but panics on an invalid definition.
func MustNew[U any](def Definition) *Lexer[U] {
	l, err := New[U](def)
	if err != nil {
		panic(err)
	}
	return l
}

// Definition returns the definition the lexer was built from.
func (l *Lexer[U]) Definition() Definition {
	return l.def
}

// WhiteSpace skips white space, line comments and block comments.
func (l *Lexer[U]) WhiteSpace() P[U, none] {
	return l.whiteSpace
}

// Symbol accepts the literal name and returns it.
func (l *Lexer[U]) Symbol(name string) P[U, string] {
	return Lexeme(l, parsec.String[U](name))
}

// Identifier accepts an identifier that is not a reserved name.
func (l *Lexer[U]) Identifier() P[U, string] {
	return l.identifier
}

// Reserved accepts the reserved name as a whole word: "true" does not
// match the start of "truex".
func (l *Lexer[U]) Reserved(name string) P[U, string] {
	end := parsec.Label(parsec.NotFollowedBy(parsec.Satisfy[U](l.identLetter()), quoteRune), "end of "+name)
	return Lexeme(l, parsec.Attempt(parsec.Skip(l.caseString(name), end)))
}

// Operator accepts an operator that is not a reserved operator.
func (l *Lexer[U]) Operator() P[U, string] {
	return l.operator
}

// ReservedOp accepts the reserved operator name as a whole operator.
func (l *Lexer[U]) ReservedOp(name string) P[U, string] {
	end := parsec.Label(parsec.NotFollowedBy(parsec.Satisfy[U](l.opLetter()), quoteRune), "end of "+name)
	return Lexeme(l, parsec.Attempt(parsec.Skip(parsec.String[U](name), end)))
}

// Natural accepts a non-negative decimal, hexadecimal (0x) or octal (0o)
// number.
func (l *Lexer[U]) Natural() P[U, int64] {
	return l.natural
}

// Integer accepts a natural number with an optional sign.
func (l *Lexer[U]) Integer() P[U, int64] {
	return l.integer
}

// Float accepts a signed floating point literal. A fraction or an exponent
// is required, so "12" fails after consuming the digits; combine it with
// IntegerAsFloat through Attempt.
func (l *Lexer[U]) Float() P[U, float64] {
	return l.float
}

// IntegerAsFloat accepts an integer as float64. Integers too large for
// int64 are rounded to the nearest float64.
func (l *Lexer[U]) IntegerAsFloat() P[U, float64] {
	return l.integerAsFloat
}

// FloatOrInteger accepts a signed integer or floating point literal as
// float64 without backtracking, so errors inside the literal, such as an
// exponent out of range, are reported where they occur.
func (l *Lexer[U]) FloatOrInteger() P[U, float64] {
	return l.floatOrInteger
}

// NaturalOrFloat accepts an unsigned natural or floating point number.
func (l *Lexer[U]) NaturalOrFloat() P[U, Number] {
	return l.naturalOrFloat
}

// Decimal accepts decimal digits without skipping white space.
func (l *Lexer[U]) Decimal() P[U, int64] {
	return l.number(10, parsec.Digit[U]())
}

// Hexadecimal accepts 'x' or 'X' followed by hexadecimal digits, without
// skipping white space.
func (l *Lexer[U]) Hexadecimal() P[U, int64] {
	return parsec.Then(parsec.OneOf[U]("xX"), l.number(16, parsec.HexDigit[U]()))
}

// Octal accepts 'o' or 'O' followed by octal digits, without skipping
// white space.
func (l *Lexer[U]) Octal() P[U, int64] {
	return parsec.Then(parsec.OneOf[U]("oO"), l.number(8, parsec.OctDigit[U]()))
}

// StringLiteral accepts a double quoted string. Inside it a backslash starts
// an escape sequence and two adjacent quotes stand for one quote.
func (l *Lexer[U]) StringLiteral() P[U, string] {
	return l.stringLiteral
}

// CharLiteral accepts a single quoted character.
func (l *Lexer[U]) CharLiteral() P[U, rune] {
	return l.charLiteral
}

func (l *Lexer[U]) Semi() P[U, string]  { return l.Symbol(";") }
func (l *Lexer[U]) Comma() P[U, string] { return l.Symbol(",") }
func (l *Lexer[U]) Colon() P[U, string] { return l.Symbol(":") }
func (l *Lexer[U]) Dot() P[U, string]   { return l.Symbol(".") }

// Lexeme runs p and skips the white space after it.
func Lexeme[U, T any](l *Lexer[U], p P[U, T]) P[U, T] {
	return parsec.Skip(p, l.whiteSpace)
}

// Parens parses p enclosed in parentheses.
func Parens[U, T any](l *Lexer[U], p P[U, T]) P[U, T] {
	return parsec.Between(l.Symbol("("), l.Symbol(")"), p)
}

// Braces parses p enclosed in braces.
func Braces[U, T any](l *Lexer[U], p P[U, T]) P[U, T] {
	return parsec.Between(l.Symbol("{"), l.Symbol("}"), p)
}

// Angles parses p enclosed in angle brackets.
func Angles[U, T any](l *Lexer[U], p P[U, T]) P[U, T] {
	return parsec.Between(l.Symbol("<"), l.Symbol(">"), p)
}

// Brackets parses p enclosed in square brackets.
func Brackets[U, T any](l *Lexer[U], p P[U, T]) P[U, T] {
	return parsec.Between(l.Symbol("["), l.Symbol("]"), p)
}

// CommaSeparated parses zero or more p separated by commas.
func CommaSeparated[U, T any](l *Lexer[U], p P[U, T]) P[U, []T] {
	return parsec.SeparatedBy(p, l.Comma())
}

// CommaSeparated1 parses one or more p separated by commas.
func CommaSeparated1[U, T any](l *Lexer[U], p P[U, T]) P[U, []T] {
	return parsec.SeparatedBy1(p, l.Comma())
}

// SemiSeparated parses zero or more p separated by semicolons.
func SemiSeparated[U, T any](l *Lexer[U], p P[U, T]) P[U, []T] {
	return parsec.SeparatedBy(p, l.Semi())
}

// SemiSeparated1 parses one or more p separated by semicolons.
func SemiSeparated1[U, T any](l *Lexer[U], p P[U, T]) P[U, []T] {
	return parsec.SeparatedBy1(p, l.Semi())
}

func (l *Lexer[U]) buildWhiteSpace() P[U, none] {
	alts := []P[U, none]{parsec.SkipMany1(parsec.Satisfy[U](unicode.IsSpace))}
	if l.def.CommentLine != "" {
		alts = append(alts, l.lineComment())
	}
	if l.def.CommentStart != "" {
		alts = append(alts, parsec.Then(parsec.Attempt(parsec.String[U](l.def.CommentStart)), l.inComment()))
	}
	return parsec.SkipMany(parsec.Label(parsec.Choice(alts...), ""))
}

func (l *Lexer[U]) lineComment() P[U, none] {
	return parsec.Then(
		parsec.Attempt(parsec.String[U](l.def.CommentLine)),
		parsec.SkipMany(parsec.Satisfy[U](func(r rune) bool { return r != '\n' })),
	)
}

// inComment skips the rest of a block comment after its start marker.
func (l *Lexer[U]) inComment() P[U, none] {
	start, end := l.def.CommentStart, l.def.CommentEnd
	var markers string
	for _, r := range start + end {
		if !strings.ContainsRune(markers, r) {
			markers += string(r)
		}
	}

	return parsec.Recursive(func(rest P[U, none]) P[U, none] {
		alts := []P[U, none]{parsec.Void(parsec.Attempt(parsec.String[U](end)))}
		if l.def.NestedComments {
			nested := parsec.Then(parsec.Attempt(parsec.String[U](start)), rest)
			alts = append(alts, parsec.Then(nested, rest))
		}
		alts = append(alts,
			parsec.Then(parsec.SkipMany1(parsec.NoneOf[U](markers)), rest),
			parsec.Then(parsec.OneOf[U](markers), rest),
		)
		return parsec.Label(parsec.Choice(alts...), "end of comment")
	})
}

func (l *Lexer[U]) identLetter() func(rune) bool {
	if l.def.IdentLetter == nil {
		return func(rune) bool { return false }
	}
	return l.def.IdentLetter
}

func (l *Lexer[U]) opLetter() func(rune) bool {
	if l.def.OpLetter == nil {
		return func(rune) bool { return false }
	}
	return l.def.OpLetter
}

func (l *Lexer[U]) buildIdentifier() P[U, string] {
	if l.def.IdentStart == nil {
		return parsec.Label(parsec.Zero[rune, U, string](), "identifier")
	}
	ident := parsec.Label(word[U](l.def.IdentStart, l.identLetter()), "identifier")
	checked := parsec.Bind(ident, func(name string) P[U, string] {
		if l.def.isReservedName(name) {
			return parsec.Unexpected[rune, U, string]("reserved word " + strconv.Quote(name))
		}
		return parsec.Pure[rune, U](name)
	})
	return Lexeme(l, parsec.Attempt(checked))
}

func (l *Lexer[U]) buildOperator() P[U, string] {
	if l.def.OpStart == nil {
		return parsec.Label(parsec.Zero[rune, U, string](), "operator")
	}
	op := parsec.Label(word[U](l.def.OpStart, l.opLetter()), "operator")
	checked := parsec.Bind(op, func(name string) P[U, string] {
		if l.def.isReservedOp(name) {
			return parsec.Unexpected[rune, U, string]("reserved operator " + strconv.Quote(name))
		}
		return parsec.Pure[rune, U](name)
	})
	return Lexeme(l, parsec.Attempt(checked))
}

// word accepts one start rune followed by any number of letter runes.
func word[U any](start, letter func(rune) bool) P[U, string] {
	return parsec.Map2(parsec.Satisfy[U](start), parsec.Many(parsec.Satisfy[U](letter)), func(c rune, cs []rune) string {
		return string(c) + string(cs)
	})
}

// caseString accepts name, ignoring case unless the definition is case
// sensitive. It returns name as written in the definition.
func (l *Lexer[U]) caseString(name string) P[U, string] {
	if l.def.CaseSensitive {
		return parsec.String[U](name)
	}
	p := parsec.Pure[rune, U](none{})
	for _, c := range name {
		folded := parsec.Satisfy[U](func(r rune) bool { return strings.EqualFold(string(r), string(c)) })
		p = parsec.Then(p, parsec.Void(folded))
	}
	return parsec.Label(parsec.Then(p, parsec.Pure[rune, U](name)), strconv.Quote(name))
}

func quoteRune(r rune) string {
	return strconv.QuoteRune(r)
}

func (l *Lexer[U]) sign() P[U, int64] {
	return parsec.Option(int64(1), parsec.OrElse(
		parsec.Then(parsec.Char[U]('-'), parsec.Pure[rune, U](int64(-1))),
		parsec.Then(parsec.Char[U]('+'), parsec.Pure[rune, U](int64(1))),
	))
}

// literal is the text of an unsigned number literal with its base. Hex and
// octal text excludes the prefix.
type literal struct {
	text    string
	base    int
	isFloat bool
}

func (l *Lexer[U]) number(base int, digit P[U, rune]) P[U, int64] {
	return parsec.Bind(parsec.StringValue(parsec.Many1(digit)), func(text string) P[U, int64] {
		return intValue[U](literal{text: text, base: base})
	})
}

func intValue[U any](lit literal) P[U, int64] {
	n, err := strconv.ParseInt(lit.text, lit.base, 64)
	if err != nil {
		return parsec.Fail[rune, U, int64]("number " + lit.text + " is out of range")
	}
	return parsec.Pure[rune, U](n)
}

// floatValue converts any literal to the nearest float64. Integers too large
// for int64 are still accepted.
func floatValue[U any](lit literal) P[U, float64] {
	var f float64
	if lit.base == 10 {
		// The text is well formed, so the only error is a range error,
		// which comes with an infinite or zero result.
		f, _ = strconv.ParseFloat(lit.text, 64)
	} else {
		n, _ := new(big.Int).SetString(lit.text, lit.base)
		f, _ = new(big.Float).SetInt(n).Float64()
	}
	if math.IsInf(f, 0) {
		return parsec.Fail[rune, U, float64]("number " + lit.text + " is out of range")
	}
	return parsec.Pure[rune, U](f)
}

func numberValue[U any](lit literal) P[U, Number] {
	if lit.isFloat {
		return parsec.Map(floatValue[U](lit), func(f float64) Number { return Number{Float: f, IsFloat: true} })
	}
	return parsec.Map(intValue[U](lit), func(n int64) Number { return Number{Int: n} })
}

// unsigned accepts a decimal, 0x hexadecimal or 0o octal literal. With
// fractions it also accepts decimal fractions and exponents. The text is
// read once, so a number is never parsed twice.
func (l *Lexer[U]) unsigned(fractions bool) P[U, literal] {
	digits := func(base int, digit P[U, rune]) P[U, literal] {
		return parsec.Map(parsec.StringValue(parsec.Many1(digit)), func(text string) literal {
			return literal{text: text, base: base}
		})
	}
	withFraction := func(lit literal) P[U, literal] {
		if !fractions {
			return parsec.Pure[rune, U](lit)
		}
		return parsec.Option(lit, parsec.Map(l.fractExponent(), func(text string) literal {
			return literal{text: lit.text + text, base: 10, isFloat: true}
		}))
	}
	decimal := parsec.Bind(digits(10, parsec.Digit[U]()), withFraction)

	zeroAlts := []P[U, literal]{
		parsec.Then(parsec.OneOf[U]("xX"), digits(16, parsec.HexDigit[U]())),
		parsec.Then(parsec.OneOf[U]("oO"), digits(8, parsec.OctDigit[U]())),
		decimal,
	}
	if fractions {
		zeroAlts = append(zeroAlts, parsec.Map(l.fractExponent(), func(text string) literal {
			return literal{text: "0" + text, base: 10, isFloat: true}
		}))
	}
	zeroAlts = append(zeroAlts, parsec.Pure[rune, U](literal{text: "0", base: 10}))
	zeroNumber := parsec.Label(parsec.Then(parsec.Char[U]('0'), parsec.Choice(zeroAlts...)), "")
	return parsec.OrElse(zeroNumber, decimal)
}

func (l *Lexer[U]) nat() P[U, int64] {
	return parsec.Bind(l.unsigned(false), intValue[U])
}

func digitsText[U any]() P[U, string] {
	return parsec.StringValue(parsec.Many1(parsec.Digit[U]()))
}

// fractExponent accepts a fraction with an optional exponent, or just an
// exponent, and returns its text.
func (l *Lexer[U]) fractExponent() P[U, string] {
	concat := func(a, b string) string { return a + b }
	fraction := parsec.Label(parsec.Map2(
		parsec.Then(parsec.Char[U]('.'), parsec.Pure[rune, U](".")),
		parsec.Label(digitsText[U](), "fraction"),
		concat,
	), "fraction")
	signText := parsec.Option("", parsec.Map(parsec.OneOf[U]("+-"), func(r rune) string { return string(r) }))
	exponent := parsec.Label(parsec.Map2(
		parsec.Then(parsec.OneOf[U]("eE"), signText),
		parsec.Label(digitsText[U](), "exponent"),
		func(sign, digits string) string { return "e" + sign + digits },
	), "exponent")
	return parsec.OrElse(
		parsec.Map2(fraction, parsec.Option("", exponent), concat),
		exponent,
	)
}

func (l *Lexer[U]) floating() P[U, float64] {
	text := parsec.Map2(digitsText[U](), l.fractExponent(), func(a, b string) string { return a + b })
	return parsec.Bind(text, func(text string) P[U, float64] {
		return floatValue[U](literal{text: text, base: 10, isFloat: true})
	})
}

func (l *Lexer[U]) natFloat() P[U, Number] {
	return parsec.Bind(l.unsigned(true), numberValue[U])
}

func applySign(sign int64, f float64) float64 {
	return float64(sign) * f
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
	'a':  '\a',
	'0':  0,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
	'/':  '/',
}

func (l *Lexer[U]) escapeCode() P[U, rune] {
	simple := parsec.Map(parsec.Satisfy[U](func(r rune) bool {
		_, found := escapes[r]
		return found
	}), func(r rune) rune { return escapes[r] })
	hex := func(marker rune, n int) P[U, rune] {
		return parsec.Then(parsec.Char[U](marker), parsec.Map(parsec.Count(n, parsec.HexDigit[U]()), func(rs []rune) rune {
			v, _ := strconv.ParseUint(string(rs), 16, 32)
			return rune(v)
		}))
	}
	// A high surrogate followed by an escaped low surrogate is one rune.
	lowSurrogate := parsec.Attempt(parsec.Bind(parsec.Then(parsec.Char[U]('\\'), hex('u', 4)), func(r rune) P[U, rune] {
		if r < 0xDC00 || r > 0xDFFF {
			return parsec.Fail[rune, U, rune]("low surrogate")
		}
		return parsec.Pure[rune, U](r)
	}))
	unicodeEscape := parsec.Bind(hex('u', 4), func(r rune) P[U, rune] {
		if r < 0xD800 || r > 0xDBFF {
			return parsec.Pure[rune, U](r)
		}
		return parsec.Option(r, parsec.Map(lowSurrogate, func(low rune) rune { return utf16.DecodeRune(r, low) }))
	})
	return parsec.Label(parsec.Choice(simple, unicodeEscape, hex('x', 2)), "escape code")
}

func (l *Lexer[U]) buildStringLiteral() P[U, string] {
	quote := parsec.Char[U]('"')
	doubled := parsec.Attempt(parsec.Then(parsec.String[U](`""`), parsec.Pure[rune, U]('"')))
	letter := parsec.Satisfy[U](func(r rune) bool { return r != '"' && r != '\\' && r > '\x1a' })
	escaped := parsec.Then(parsec.Char[U]('\\'), l.escapeCode())
	char := parsec.Label(parsec.Choice(doubled, letter, escaped), "string character")
	return parsec.Between(quote, parsec.Label(quote, "end of string"), parsec.StringValue(parsec.Many(char)))
}

func (l *Lexer[U]) buildCharLiteral() P[U, rune] {
	quote := parsec.Char[U]('\'')
	letter := parsec.Satisfy[U](func(r rune) bool { return r != '\'' && r != '\\' && r > '\x1a' })
	escaped := parsec.Then(parsec.Char[U]('\\'), l.escapeCode())
	return parsec.Between(quote, parsec.Label(quote, "end of character"), parsec.Label(parsec.OrElse(letter, escaped), "literal character"))
}
