package parsec

import "testing"

func TestCharParsers(t *testing.T) {
	tests := []struct {
		name  string
		p     Parser[rune, unit, rune]
		input string
		want  rune
		ok    bool
	}{
		{"char", Char[unit]('x'), "x", 'x', true},
		{"char mismatch", Char[unit]('x'), "y", 0, false},
		{"one of", OneOf[unit]("abc"), "b", 'b', true},
		{"one of mismatch", OneOf[unit]("abc"), "d", 0, false},
		{"none of", NoneOf[unit]("abc"), "d", 'd', true},
		{"none of mismatch", NoneOf[unit]("abc"), "a", 0, false},
		{"any char", AnyChar[unit](), "∞", '∞', true},
		{"any char at end", AnyChar[unit](), "", 0, false},
		{"upper", Upper[unit](), "Q", 'Q', true},
		{"lower", Lower[unit](), "Q", 0, false},
		{"alnum", AlphaNum[unit](), "7", '7', true},
		{"hex", HexDigit[unit](), "e", 'e', true},
		{"oct", OctDigit[unit](), "8", 0, false},
		{"tab", Tab[unit](), "\t", '\t', true},
		{"newline", Newline[unit](), "\n", '\n', true},
		{"crlf", CRLF[unit](), "\r\n", '\n', true},
		{"end of line lf", EndOfLine[unit](), "\n", '\n', true},
		{"end of line crlf", EndOfLine[unit](), "\r\n", '\n', true},
		{"space", Space[unit](), " ", ' ', true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runText(tt.p, tt.input)
			if r.OK != tt.ok {
				t.Fatalf("OK = %v, want %v (err %v)", r.OK, tt.ok, r.Err)
			}
			if r.OK && r.Value != tt.want {
				t.Errorf("got %q, want %q", r.Value, tt.want)
			}
			if !r.OK && r.Consumed {
				t.Error("single character parsers must not consume on failure")
			}
		})
	}
}

func TestStringPartialMatchConsumes(t *testing.T) {
	r := runText(String[unit]("true"), "trux")
	if r.OK || !r.Consumed {
		t.Errorf("got OK=%v Consumed=%v", r.OK, r.Consumed)
	}
	if r.Err.Pos.Column != 4 {
		t.Errorf("error at %v, want column 4", r.Err.Pos)
	}

	r = runText(String[unit]("true"), "xtrue")
	if r.OK || r.Consumed {
		t.Errorf("mismatch on first rune: OK=%v Consumed=%v", r.OK, r.Consumed)
	}
}

func TestSpaces(t *testing.T) {
	p := Then(Spaces[unit](), Letter[unit]())
	if v, err := Parse(p, " \t\n x"); err != nil || v != 'x' {
		t.Errorf("got %q, %v", v, err)
	}
	if v, err := Parse(p, "x"); err != nil || v != 'x' {
		t.Errorf("no spaces: %q, %v", v, err)
	}
}

func TestStringValue(t *testing.T) {
	v, err := Parse(StringValue(Many1(NoneOf[unit](","))), "héllo,world")
	if err != nil {
		t.Fatal(err)
	}
	if v != "héllo" {
		t.Errorf("got %q", v)
	}
}
