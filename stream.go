package parsec

import "unicode/utf8"

// Stream is a randomly addressable source of symbols. Offsets are opaque to
// the engine except that the start of input is offset 0; saving and
// restoring an offset is how parsers backtrack.
type Stream[S any] interface {
	// Next returns the symbol at offset and the offset just past it.
	// ok is false at the end of input.
	Next(offset int) (sym S, next int, ok bool)

	// Advance returns the position following sym, where next is the
	// offset Next reported for it.
	Advance(pos Position, sym S, next int) Position
}

// Text is a UTF-8 string stream of runes. Offsets are byte offsets.
// Invalid encodings yield utf8.RuneError one byte at a time.
type Text struct {
	src      string
	tabWidth int
}

// NewText creates a rune stream over s with the default tab width.
func NewText(s string) Text {
	return Text{src: s, tabWidth: DefaultTabWidth}
}

// WithTabWidth returns a copy of t that advances tabs to multiples of n.
func (t Text) WithTabWidth(n int) Text {
	t.tabWidth = n
	return t
}

func (t Text) Next(offset int) (rune, int, bool) {
	if offset >= len(t.src) {
		return 0, offset, false
	}
	c := t.src[offset]
	if c < utf8.RuneSelf {
		return rune(c), offset + 1, true
	}
	r, size := utf8.DecodeRuneInString(t.src[offset:])
	return r, offset + size, true
}

func (t Text) Advance(pos Position, r rune, _ int) Position {
	return pos.AdvanceRune(r, t.tabWidth)
}

// Slice returns the text between two offsets.
func (t Text) Slice(start, end int) string {
	return t.src[start:end]
}

// Tokens is a stream over a slice of already lexed symbols.
type Tokens[S any] struct {
	items []S
	pos   func(S) Position
}

// NewTokens creates a token stream. pos reports the source position of a
// token; when nil every token advances the column by one.
func NewTokens[S any](items []S, pos func(S) Position) Tokens[S] {
	return Tokens[S]{items: items, pos: pos}
}

func (t Tokens[S]) Next(offset int) (S, int, bool) {
	if offset >= len(t.items) {
		var zero S
		return zero, offset, false
	}
	return t.items[offset], offset + 1, true
}

// Advance moves to the position of the token at next, or one column past
// sym's own position when sym is the last token.
func (t Tokens[S]) Advance(pos Position, sym S, next int) Position {
	if t.pos == nil {
		pos.Column++
		return pos
	}
	var p Position
	if next < len(t.items) {
		p = t.pos(t.items[next])
	} else {
		p = t.pos(sym)
		p.Column++
	}
	p.Name = pos.Name
	p.Offset = next
	return p
}
