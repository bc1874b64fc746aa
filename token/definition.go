package token

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidDefinition is wrapped by every error returned from Validate.
var ErrInvalidDefinition = errors.New("token: invalid language definition")

// Definition describes the lexical conventions of a language.
type Definition struct {
	// CommentStart and CommentEnd delimit block comments. Both are empty
	// when the language has none.
	CommentStart string
	CommentEnd   string
	// CommentLine starts a comment running to the end of the line.
	CommentLine string
	// NestedComments allows block comments inside block comments.
	NestedComments bool

	IdentStart  func(rune) bool
	IdentLetter func(rune) bool
	OpStart     func(rune) bool
	OpLetter    func(rune) bool

	ReservedNames   []string
	ReservedOpNames []string

	// CaseSensitive controls how reserved names are matched.
	CaseSensitive bool
}

// Validate reports a malformed definition.
func (d Definition) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidDefinition}, args...)...))
	}

	if (d.CommentStart == "") != (d.CommentEnd == "") {
		bad("block comments need both a start and an end marker")
	}
	if d.CommentStart != "" && d.CommentStart == d.CommentEnd && d.NestedComments {
		bad("nested comments need distinct start and end markers")
	}
	if d.IdentStart == nil || d.IdentLetter == nil {
		if len(d.ReservedNames) > 0 {
			bad("reserved names without identifier predicates")
		}
	}
	if d.OpStart == nil || d.OpLetter == nil {
		if len(d.ReservedOpNames) > 0 {
			bad("reserved operators without operator predicates")
		}
	}
	for _, name := range d.ReservedNames {
		if d.IdentStart != nil && d.IdentLetter != nil && !shaped(name, d.IdentStart, d.IdentLetter) {
			bad("reserved name %q is not an identifier", name)
		}
	}
	for _, op := range d.ReservedOpNames {
		if d.OpStart != nil && d.OpLetter != nil && !shaped(op, d.OpStart, d.OpLetter) {
			bad("reserved operator %q is not an operator", op)
		}
	}
	if d.IdentStart != nil && d.OpStart != nil {
		for r := rune(0); r < unicode.MaxLatin1; r++ {
			if d.IdentStart(r) && d.OpStart(r) {
				bad("%q starts both identifiers and operators", r)
				break
			}
		}
	}
	return errors.Join(errs...)
}

func shaped(s string, start, letter func(rune) bool) bool {
	for i, r := range s {
		if i == 0 && !start(r) || i > 0 && !letter(r) {
			return false
		}
	}
	return s != ""
}

// isReservedName reports whether name is a reserved identifier.
func (d Definition) isReservedName(name string) bool {
	for _, r := range d.ReservedNames {
		if d.CaseSensitive && r == name || !d.CaseSensitive && strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

func (d Definition) isReservedOp(op string) bool {
	for _, r := range d.ReservedOpNames {
		if r == op {
			return true
		}
	}
	return false
}

func identStart(r rune) bool  { return unicode.IsLetter(r) || r == '_' }
func identLetter(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\'' }
func opChar(r rune) bool      { return strings.ContainsRune(":!#$%&*+./<=>?@\\^|-~", r) }

// Empty is a minimal definition: no comments, letters and underscores in
// identifiers, the usual operator characters, and no reserved words.
func Empty() Definition {
	return Definition{
		IdentStart:    identStart,
		IdentLetter:   identLetter,
		OpStart:       opChar,
		OpLetter:      opChar,
		CaseSensitive: true,
	}
}

// JavaStyle uses C comment syntax and Java identifiers.
func JavaStyle() Definition {
	d := Empty()
	d.CommentStart = "/*"
	d.CommentEnd = "*/"
	d.CommentLine = "//"
	d.IdentStart = func(r rune) bool { return unicode.IsLetter(r) || r == '_' || r == '$' }
	d.IdentLetter = func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' }
	d.OpStart = func(r rune) bool { return r != '$' && opChar(r) }
	d.OpLetter = d.OpStart
	return d
}

// HaskellStyle uses Haskell comment syntax with nested block comments.
func HaskellStyle() Definition {
	d := Empty()
	d.CommentStart = "{-"
	d.CommentEnd = "-}"
	d.CommentLine = "--"
	d.NestedComments = true
	return d
}

// JSON describes JSON texts: no comments and the three literal names
// reserved.
func JSON() Definition {
	d := Empty()
	d.IdentLetter = func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }
	d.ReservedNames = []string{"true", "false", "null"}
	return d
}
