package parsec

import (
	"slices"
	"testing"
)

func TestMergeErrors(t *testing.T) {
	p1 := Position{Line: 1, Column: 3}
	p2 := Position{Line: 1, Column: 7}
	a := NewError(p1, Expect, "a")
	b := NewError(p2, Expect, "b")
	c := NewError(p1, Expect, "c")

	tests := []struct {
		name string
		x, y *Error
		pos  Position
		want []string
	}{
		{"furthest wins left", b, a, p2, []string{"b"}},
		{"furthest wins right", a, b, p2, []string{"b"}},
		{"same position pools", a, c, p1, []string{"a", "c"}},
		{"unknown loses", UnknownError(p2), a, p1, []string{"a"}},
		{"nil loses", a, nil, p1, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeErrors(tt.x, tt.y)
			if got.Pos != tt.pos {
				t.Errorf("Pos = %v, want %v", got.Pos, tt.pos)
			}
			if !slices.Equal(got.Expected(), tt.want) {
				t.Errorf("Expected() = %v, want %v", got.Expected(), tt.want)
			}
		})
	}

	if MergeErrors(nil, nil) != nil {
		t.Error("merging nothing must stay nil")
	}
}

func TestErrorLines(t *testing.T) {
	pos := NewPosition("f")
	tests := []struct {
		name string
		msgs []Message
		want []string
	}{
		{"unknown", nil, []string{"unknown parse error"}},
		{"end of input", []Message{{SysUnexpect, ""}, {Expect, `"x"`}}, []string{"unexpected end of input", `expecting "x"`}},
		{"user unexpected hides system", []Message{{SysUnexpect, "'a'"}, {Unexpect, "keyword"}}, []string{"unexpected keyword"}},
		{"dedup", []Message{{Expect, "a"}, {Expect, "b"}, {Expect, "a"}, {Expect, ""}}, []string{"expecting a or b"}},
		{"raw", []Message{{Raw, "bad"}, {Expect, "c"}}, []string{"expecting c", "bad"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Error{Pos: pos, Messages: tt.msgs}
			if got := e.Lines(); !slices.Equal(got, tt.want) {
				t.Errorf("Lines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnexpectedEndOfInput(t *testing.T) {
	_, err := Parse(String[unit]("abc"), "ab")
	if err == nil {
		t.Fatal("expected failure")
	}
	want := `1:3: unexpected end of input; expecting "abc"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
