package parsec

import (
	"strconv"
	"strings"
	"unicode"
)

// CharParser is a parser over runes.
type CharParser[U, T any] = Parser[rune, U, T]

func quoteRune(r rune) string {
	return strconv.QuoteRune(r)
}

// Satisfy accepts a rune for which pred returns true.
func Satisfy[U any](pred func(rune) bool) CharParser[U, rune] {
	return Token[rune, U](quoteRune, pred)
}

// Char accepts c.
func Char[U any](c rune) CharParser[U, rune] {
	return Label(Satisfy[U](func(r rune) bool { return r == c }), quoteRune(c))
}

// String accepts the literal s one rune at a time. When only a prefix of s
// matches, the reply reports the consumed prefix; wrap it in Attempt for an
// all-or-nothing match.
func String[U any](s string) CharParser[U, string] {
	want := []rune(s)
	label := strconv.Quote(s)
	return func(st State[rune, U]) Reply[rune, U, string] {
		cur := st
		for i, c := range want {
			r, next, more := cur.advance()
			if !more || r != c {
				seen := ""
				if more {
					seen = quoteRune(r)
				}
				err := NewError(cur.Pos, SysUnexpect, seen)
				err.Messages = append(err.Messages, Message{Kind: Expect, Text: label})
				return fail[rune, U, string](cur, i > 0, err)
			}
			cur = next
		}
		return succeed(s, cur, len(want) > 0, nil)
	}
}

// OneOf accepts any rune contained in set.
func OneOf[U any](set string) CharParser[U, rune] {
	return Satisfy[U](func(r rune) bool { return strings.ContainsRune(set, r) })
}

// NoneOf accepts any rune not contained in set.
func NoneOf[U any](set string) CharParser[U, rune] {
	return Satisfy[U](func(r rune) bool { return !strings.ContainsRune(set, r) })
}

// AnyChar accepts any rune.
func AnyChar[U any]() CharParser[U, rune] {
	return Label(Satisfy[U](func(rune) bool { return true }), "any character")
}

// Space accepts a Unicode white space rune.
func Space[U any]() CharParser[U, rune] {
	return Label(Satisfy[U](unicode.IsSpace), "space")
}

// Spaces skips zero or more white space runes.
func Spaces[U any]() CharParser[U, struct{}] {
	return Label(SkipMany(Space[U]()), "white space")
}

// Newline accepts '\n'.
func Newline[U any]() CharParser[U, rune] {
	return Label(Char[U]('\n'), "lf new-line")
}

// CRLF accepts "\r\n" and returns '\n'.
func CRLF[U any]() CharParser[U, rune] {
	return Label(Then(Char[U]('\r'), Char[U]('\n')), "crlf new-line")
}

// EndOfLine accepts "\n" or "\r\n" and returns '\n'.
func EndOfLine[U any]() CharParser[U, rune] {
	return Label(OrElse(Newline[U](), CRLF[U]()), "new-line")
}

// Tab accepts '\t'.
func Tab[U any]() CharParser[U, rune] {
	return Label(Char[U]('\t'), "tab")
}

// Upper accepts an upper case letter.
func Upper[U any]() CharParser[U, rune] {
	return Label(Satisfy[U](unicode.IsUpper), "uppercase letter")
}

// Lower accepts a lower case letter.
func Lower[U any]() CharParser[U, rune] {
	return Label(Satisfy[U](unicode.IsLower), "lowercase letter")
}

// Letter accepts a letter.
func Letter[U any]() CharParser[U, rune] {
	return Label(Satisfy[U](unicode.IsLetter), "letter")
}

// Digit accepts an ASCII decimal digit.
func Digit[U any]() CharParser[U, rune] {
	return Label(Satisfy[U](isDigit), "digit")
}

// AlphaNum accepts a letter or a digit.
func AlphaNum[U any]() CharParser[U, rune] {
	return Label(Satisfy[U](func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }), "letter or digit")
}

// HexDigit accepts a hexadecimal digit.
func HexDigit[U any]() CharParser[U, rune] {
	return Label(Satisfy[U](isHexDigit), "hexadecimal digit")
}

// OctDigit accepts an octal digit.
func OctDigit[U any]() CharParser[U, rune] {
	return Label(Satisfy[U](func(r rune) bool { return r >= '0' && r <= '7' }), "octal digit")
}

// StringValue concatenates the runes produced by p.
func StringValue[U any](p CharParser[U, []rune]) CharParser[U, string] {
	return Map(p, func(rs []rune) string { return string(rs) })
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
