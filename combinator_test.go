package parsec

import (
	"errors"
	"slices"
	"strconv"
	"testing"
)

func TestOrElseFallsThroughOnEmptyFailure(t *testing.T) {
	p := OrElse(Char[unit]('a'), Char[unit]('b'))
	r := runText(p, "b")
	if !r.OK || r.Value != 'b' {
		t.Fatalf("got %+v", r)
	}
}

func TestOrElseDoesNotBacktrackAfterConsumption(t *testing.T) {
	p := OrElse(String[unit]("ab"), String[unit]("ac"))
	r := runText(p, "ac")
	if r.OK {
		t.Fatal("choice must not try the right branch after the left consumed input")
	}
	if !r.Consumed {
		t.Error("failure must report consumed input")
	}
	if got := r.Err.Expected(); !slices.Equal(got, []string{`"ab"`}) {
		t.Errorf("Expected() = %v", got)
	}
}

func TestOrElseIsNotCommutativeAfterConsumption(t *testing.T) {
	ab := String[unit]("ab")
	a := Char[unit]('a')

	left := runText(OrElse(ab, Map(a, func(rune) string { return "a" })), "ax")
	right := runText(OrElse(Map(a, func(rune) string { return "a" }), ab), "ax")
	if left.OK {
		t.Error("ab <|> a must fail once ab consumed 'a'")
	}
	if !right.OK || right.Value != "a" {
		t.Errorf("a <|> ab = %+v", right)
	}
}

func TestOrElseIsCommutativeForEmptyFailures(t *testing.T) {
	a := String[unit]("a")
	b := String[unit]("b")
	for _, input := range []string{"a", "b", "c"} {
		r1 := runText(OrElse(a, b), input)
		r2 := runText(OrElse(b, a), input)
		if r1.OK != r2.OK || r1.Value != r2.Value || r1.Consumed != r2.Consumed {
			t.Errorf("%q: a|b = %+v, b|a = %+v", input, r1, r2)
		}
	}
}

func TestAttemptRewinds(t *testing.T) {
	p := Attempt(String[unit]("abc"))
	r := runText(p, "abx")
	if r.OK {
		t.Fatal("expected failure")
	}
	if r.Consumed {
		t.Error("attempt must report no consumption")
	}
	if r.State.Offset != 0 || r.State.Pos.Column != 1 {
		t.Errorf("state advanced to %v", r.State.Pos)
	}

	q := OrElse(Attempt(String[unit]("ab")), String[unit]("ac"))
	if r := runText(q, "ac"); !r.OK || r.Value != "ac" {
		t.Errorf("attempt(ab) <|> ac = %+v", r)
	}
}

func TestFurthestErrorWins(t *testing.T) {
	short := Attempt(Then(Char[unit]('a'), Char[unit]('b')))
	long := Attempt(Then(Char[unit]('a'), Then(Char[unit]('x'), Char[unit]('y'))))
	short = Then(short, Char[unit]('!'))

	for name, p := range map[string]Parser[rune, unit, rune]{
		"short first": OrElse(short, long),
		"long first":  OrElse(long, short),
	} {
		t.Run(name, func(t *testing.T) {
			r := runText(p, "axz")
			if r.OK {
				t.Fatal("expected failure")
			}
			if r.Err.Pos.Column != 3 {
				t.Errorf("error at %v, want column 3", r.Err.Pos)
			}
			if got := r.Err.Expected(); !slices.Equal(got, []string{"'y'"}) {
				t.Errorf("Expected() = %v", got)
			}
		})
	}
}

func TestSamePositionErrorsMerge(t *testing.T) {
	p := Choice(Char[unit]('a'), Char[unit]('b'), Label(Digit[unit](), "number"))
	_, err := Parse(p, "x")
	want := `1:1: unexpected 'x'; expecting 'a', 'b' or number`
	if err == nil || err.Error() != want {
		t.Errorf("err = %v, want %s", err, want)
	}
}

func TestLabelOnlyAppliesWithoutConsumption(t *testing.T) {
	p := Label(String[unit]("abc"), "keyword")

	r := runText(p, "x")
	if got := r.Err.Expected(); !slices.Equal(got, []string{"keyword"}) {
		t.Errorf("empty failure: Expected() = %v", got)
	}

	r = runText(p, "abx")
	if got := r.Err.Expected(); !slices.Equal(got, []string{`"abc"`}) {
		t.Errorf("consumed failure: Expected() = %v", got)
	}
}

func TestPendingExpectationsAreReported(t *testing.T) {
	// Many(digit) succeeds on "x" without consuming; its pending
	// expectation must show up next to the one of the following parser.
	p := Then(Many(Digit[unit]()), Char[unit](';'))
	_, err := Parse(p, "12x")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v", err)
	}
	if got := perr.Expected(); !slices.Equal(got, []string{"digit", "';'"}) {
		t.Errorf("Expected() = %v", got)
	}
	if perr.Pos.Column != 3 {
		t.Errorf("Pos = %v", perr.Pos)
	}
}

func TestMany(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"", "", true},
		{"aaa", "aaa", true},
		{"aab", "aa", true},
		{"b", "", true},
	}
	p := StringValue(Many(Char[unit]('a')))
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := runText(p, tt.input)
			if r.OK != tt.ok || r.Value != tt.want {
				t.Errorf("got %+v", r)
			}
		})
	}
}

func TestManyEmptyResult(t *testing.T) {
	r := runText(Many(Char[unit]('a')), "xyz")
	if !r.OK || len(r.Value) != 0 || r.Consumed {
		t.Errorf("got %+v", r)
	}
}

func TestManyFailsOnConsumedFailure(t *testing.T) {
	p := Many(String[unit]("ab"))
	r := runText(p, "ababac")
	if r.OK {
		t.Fatal("a partially matched element must fail the repetition")
	}
	if r.Err.Pos.Column != 6 {
		t.Errorf("Pos = %v", r.Err.Pos)
	}
}

func TestManyPanicsOnEmptyLoop(t *testing.T) {
	defer func() {
		r := recover()
		err, isErr := r.(error)
		if !isErr || !errors.Is(err, ErrEmptyLoop) {
			t.Fatalf("recover() = %v, want ErrEmptyLoop", r)
		}
	}()
	runText(Many(Optional(Char[unit]('a'))), "b")
}

func TestMany1(t *testing.T) {
	p := Many1(Digit[unit]())
	if r := runText(p, ""); r.OK {
		t.Error("many1 must require one match")
	}
	if r := runText(p, "12a"); !r.OK || string(r.Value) != "12" {
		t.Errorf("got %+v", r)
	}
}

type pair struct {
	key   string
	value int
}

func TestManyAccumulatorLastWriteWins(t *testing.T) {
	entry := Map2(
		Skip(StringValue(Many1(Letter[unit]())), Char[unit]('=')),
		Skip(Map(Many1(Digit[unit]()), func(rs []rune) int {
			n, _ := strconv.Atoi(string(rs))
			return n
		}), Char[unit](';')),
		func(k string, v int) pair { return pair{k, v} },
	)
	p := ManyAccumulator(entry, func() map[string]int { return map[string]int{} }, func(m map[string]int, e pair) map[string]int {
		m[e.key] = e.value
		return m
	})

	m, err := Parse(p, "a=1;b=2;a=3;")
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 2 || m["a"] != 3 || m["b"] != 2 {
		t.Errorf("got %v", m)
	}

	// A second run must start from a fresh accumulator.
	m2, err := Parse(p, "c=4;")
	if err != nil {
		t.Fatal(err)
	}
	if len(m2) != 1 {
		t.Errorf("accumulator leaked between runs: %v", m2)
	}
}

func TestSeparatedBy(t *testing.T) {
	p := SeparatedBy(StringValue(Many1(Letter[unit]())), Char[unit](','))
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a,bc,d", []string{"a", "bc", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(p, tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(v, tt.want) {
				t.Errorf("got %q, want %q", v, tt.want)
			}
		})
	}

	if _, err := Parse(Skip(p, EOF[rune, unit]()), "a,"); err == nil {
		t.Error("trailing separator must fail")
	}
}

func TestSepEndByAndEndBy(t *testing.T) {
	word := StringValue(Many1(Letter[unit]()))
	semi := Char[unit](';')

	v, err := Parse(Skip(SepEndBy(word, semi), EOF[rune, unit]()), "a;b;")
	if err != nil || !slices.Equal(v, []string{"a", "b"}) {
		t.Errorf("SepEndBy = %q, %v", v, err)
	}
	v, err = Parse(Skip(SepEndBy(word, semi), EOF[rune, unit]()), "a;b")
	if err != nil || !slices.Equal(v, []string{"a", "b"}) {
		t.Errorf("SepEndBy without terminator = %q, %v", v, err)
	}
	if _, err := Parse(Skip(EndBy1(word, semi), EOF[rune, unit]()), "a;b"); err == nil {
		t.Error("EndBy1 must require the terminator")
	}
	v, err = Parse(EndBy(word, semi), "x;y;")
	if err != nil || !slices.Equal(v, []string{"x", "y"}) {
		t.Errorf("EndBy = %q, %v", v, err)
	}
}

func TestBetweenAndOption(t *testing.T) {
	p := Between(Char[unit]('('), Char[unit](')'), Option("none", StringValue(Many1(Letter[unit]()))))
	for input, want := range map[string]string{"(abc)": "abc", "()": "none"} {
		v, err := Parse(p, input)
		if err != nil || v != want {
			t.Errorf("%q: got %q, %v", input, v, err)
		}
	}
}

func TestCount(t *testing.T) {
	p := StringValue(Count(3, HexDigit[unit]()))
	if v, err := Parse(p, "fA9z"); err != nil || v != "fA9" {
		t.Errorf("got %q, %v", v, err)
	}
	if _, err := Parse(p, "fA"); err == nil {
		t.Error("expected failure on short input")
	}
	if v, err := Parse(Count(0, HexDigit[unit]()), "f"); err != nil || len(v) != 0 {
		t.Errorf("Count(0) = %v, %v", v, err)
	}
}

func TestManyTill(t *testing.T) {
	comment := Then(String[unit]("<!--"), StringValue(ManyTill(AnyChar[unit](), Attempt(String[unit]("-->")))))
	v, err := Parse(comment, "<!-- a - b -->")
	if err != nil {
		t.Fatal(err)
	}
	if v != " a - b " {
		t.Errorf("got %q", v)
	}
	if _, err := Parse(comment, "<!-- open"); err == nil {
		t.Error("unterminated comment must fail")
	}
}

func TestLookAheadAndNotFollowedBy(t *testing.T) {
	p := Then(LookAhead(String[unit]("ab")), String[unit]("abc"))
	if v, err := Parse(p, "abc"); err != nil || v != "abc" {
		t.Errorf("LookAhead: %q, %v", v, err)
	}

	keyword := Skip(Attempt(String[unit]("if")), NotFollowedBy(Letter[unit](), quoteRune))
	if _, err := Parse(keyword, "if("); err != nil {
		t.Errorf("keyword: %v", err)
	}
	_, err := Parse(keyword, "iffy")
	if err == nil {
		t.Fatal("keyword must not match a prefix of an identifier")
	}
	var perr *Error
	if errors.As(err, &perr) && !slices.Equal(perr.Unexpected(), []string{"'f'"}) {
		t.Errorf("Unexpected() = %v", perr.Unexpected())
	}
}

func TestChain(t *testing.T) {
	num := Map(Many1(Digit[unit]()), func(rs []rune) int {
		n, _ := strconv.Atoi(string(rs))
		return n
	})
	minus := Then(Char[unit]('-'), Pure[rune, unit](func(a, b int) int { return a - b }))
	pow := Then(Char[unit]('^'), Pure[rune, unit](func(a, b int) int {
		out := 1
		for range b {
			out *= a
		}
		return out
	}))

	if v, err := Parse(Chainl1(num, minus), "10-3-2"); err != nil || v != 5 {
		t.Errorf("chainl1 = %d, %v", v, err)
	}
	if v, err := Parse(Chainr1(num, pow), "2^3^2"); err != nil || v != 512 {
		t.Errorf("chainr1 = %d, %v", v, err)
	}
	if v, err := Parse(Chainr1(num, pow), "7"); err != nil || v != 7 {
		t.Errorf("chainr1 single = %d, %v", v, err)
	}
}

func TestFailAndUnexpected(t *testing.T) {
	_, err := Parse(Fail[rune, unit, int]("custom failure"), "x")
	if err == nil || err.Error() != "1:1: custom failure" {
		t.Errorf("Fail: %v", err)
	}
	_, err = Parse(Unexpected[rune, unit, int]("thing"), "x")
	if err == nil || err.Error() != "1:1: unexpected thing" {
		t.Errorf("Unexpected: %v", err)
	}
	_, err = Parse(Zero[rune, unit, int](), "x")
	if err == nil || err.Error() != "1:1: unknown parse error" {
		t.Errorf("Zero: %v", err)
	}
}
