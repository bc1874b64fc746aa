package token

import (
	"testing"

	"github.com/dhamidi/parsec"
)

func TestScan(t *testing.T) {
	def := JavaStyle()
	def.ReservedNames = []string{"class", "int"}
	l := MustNew[unit](def)

	toks, err := parsec.Parse(l.Scan(), "class Foo {\n  int x = 42; // answer\n  s = \"hi\";\n}")
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		kind Kind
		text string
		line int
		col  int
	}{
		{KindReserved, "class", 1, 1},
		{KindIdentifier, "Foo", 1, 7},
		{KindSymbol, "{", 1, 11},
		{KindReserved, "int", 2, 3},
		{KindIdentifier, "x", 2, 7},
		{KindOperator, "=", 2, 9},
		{KindNumber, "42", 2, 11},
		{KindSymbol, ";", 2, 13},
		{KindIdentifier, "s", 3, 3},
		{KindOperator, "=", 3, 5},
		{KindString, `"hi"`, 3, 7},
		{KindSymbol, ";", 3, 11},
		{KindSymbol, "}", 4, 1},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		got := toks[i]
		if got.Kind != w.kind || got.Text != w.text || got.Pos.Line != w.line || got.Pos.Column != w.col {
			t.Errorf("token %d = %v %q at %v, want %v %q at %d:%d", i, got.Kind, got.Text, got.Pos, w.kind, w.text, w.line, w.col)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindReservedOp.String() != "reserved-op" {
		t.Errorf("got %q", KindReservedOp.String())
	}
	if Kind(99).String() != "Kind(99)" {
		t.Errorf("got %q", Kind(99).String())
	}
}
