// Package json parses JSON texts into Values.
//
// Values are read with accessors that never panic: a missing key, an index
// out of range or an accessor of the wrong type yields the invalid Value or
// a false ok result, so lookups can be chained:
//
//	h, ok := v.Get("Image").Get("Thumbnail").Get("Height").Float()
package json

import (
	"github.com/dhamidi/parsec"
	"github.com/dhamidi/parsec/token"
)

// Kind is the type of a Value.
type Kind int

const (
	Invalid Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

var kindNames = [...]string{"invalid", "null", "bool", "number", "string", "array", "object"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Value is a JSON value. The zero Value is invalid.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	text    string
	items   []Value
	members map[string]Value
	keys    []string
}

func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a value.
func (v Value) IsValid() bool { return v.kind != Invalid }

func (v Value) IsNull() bool { return v.kind == Null }

// Get returns the member key of an object.
func (v Value) Get(key string) Value {
	if v.kind != Object {
		return Value{}
	}
	return v.members[key]
}

// Index returns element i of an array.
func (v Value) Index(i int) Value {
	if v.kind != Array || i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i]
}

// Len is the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.keys)
	}
	return 0
}

// Keys returns the member names of an object in the order they first
// appear in the text.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	return append([]string(nil), v.keys...)
}

func (v Value) Text() (string, bool) {
	return v.text, v.kind == String
}

func (v Value) Float() (float64, bool) {
	return v.number, v.kind == Number
}

func (v Value) Bool() (bool, bool) {
	return v.boolean, v.kind == Bool
}

type unit = struct{}

type P[T any] = parsec.Parser[rune, unit, T]

var text = buildText()

func buildText() P[Value] {
	lexer := token.MustNew[unit](token.JSON())
	value := parsec.NewPlaceholder[rune, unit, Value]()

	str := parsec.Map(lexer.StringLiteral(), func(s string) Value {
		return Value{kind: String, text: s}
	})
	number := parsec.Map(lexer.FloatOrInteger(), func(f float64) Value {
		return Value{kind: Number, number: f}
	})
	boolean := parsec.OrElse(
		parsec.Then(lexer.Reserved("true"), parsec.Pure[rune, unit](Value{kind: Bool, boolean: true})),
		parsec.Then(lexer.Reserved("false"), parsec.Pure[rune, unit](Value{kind: Bool})),
	)
	null := parsec.Then(lexer.Reserved("null"), parsec.Pure[rune, unit](Value{kind: Null}))

	array := parsec.Map(token.Brackets(lexer, token.CommaSeparated(lexer, value.Parser())), func(items []Value) Value {
		return Value{kind: Array, items: items}
	})

	type member struct {
		key   string
		value Value
	}
	pair := parsec.Map2(parsec.Skip(lexer.StringLiteral(), lexer.Colon()), value.Parser(), func(k string, v Value) member {
		return member{k, v}
	})
	object := parsec.Map(token.Braces(lexer, token.CommaSeparated(lexer, pair)), func(ms []member) Value {
		obj := Value{kind: Object, members: make(map[string]Value, len(ms))}
		for _, m := range ms {
			if _, seen := obj.members[m.key]; !seen {
				obj.keys = append(obj.keys, m.key)
			}
			obj.members[m.key] = m.value
		}
		return obj
	})

	value.Install(parsec.Label(parsec.Choice(str, number, object, array, boolean, null), "value"))

	top := parsec.OrElse(object, array)
	return parsec.Then(lexer.WhiteSpace(), parsec.Skip(top, parsec.EOF[rune, unit]()))
}

// Parse parses a JSON text: an object or an array surrounded by optional
// white space. name is used in error positions.
func Parse(name, input string) (Value, error) {
	return parsec.RunText(text, name, input, unit{})
}
