// Package csv parses comma separated values.
//
// Fields are separated by commas and records by any end of line sequence
// ("\r\n", "\n\r", "\n" or "\r"). A field that starts with a double quote
// runs to the matching closing quote and may contain commas, line breaks
// and doubled quotes standing for one quote. A quote anywhere else is an
// ordinary character.
package csv

import (
	"github.com/dhamidi/parsec"
)

type unit = struct{}

type P[T any] = parsec.Parser[rune, unit, T]

var file = buildFile()

func buildFile() P[[][]string] {
	quote := parsec.Char[unit]('"')
	quotedChar := parsec.OrElse(
		parsec.NoneOf[unit](`"`),
		parsec.Then(parsec.Attempt(parsec.String[unit](`""`)), parsec.Pure[rune, unit]('"')),
	)
	quotedField := parsec.Between(
		quote,
		parsec.Label(quote, "quote at end of field"),
		parsec.StringValue(parsec.Many(quotedChar)),
	)
	field := parsec.OrElse(quotedField, parsec.StringValue(parsec.Many(parsec.NoneOf[unit]("\r\n,"))))
	record := parsec.SeparatedBy1(field, parsec.Char[unit](','))

	endOfLine := parsec.Label(parsec.Choice(
		parsec.Attempt(parsec.CRLF[unit]()),
		parsec.Attempt(parsec.Then(parsec.Char[unit]('\n'), parsec.Char[unit]('\r'))),
		parsec.Char[unit]('\n'),
		parsec.Char[unit]('\r'),
	), "end of line")

	// A line ends at a line break or at the end of input, so a final line
	// break does not start another record.
	line := parsec.Then(
		parsec.LookAhead(parsec.AnyChar[unit]()),
		parsec.Skip(record, parsec.OrElse(parsec.Void(endOfLine), parsec.EOF[rune, unit]())),
	)
	return parsec.Skip(parsec.Many(line), parsec.EOF[rune, unit]())
}

// Parse returns the records of input. name is used in error positions.
// A final line break does not start another record.
func Parse(name, input string) ([][]string, error) {
	return parsec.RunText(file, name, input, unit{})
}
