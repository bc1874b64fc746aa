package parsec

import "fmt"

// DefaultTabWidth is the tab stop distance used by Text when none is set.
const DefaultTabWidth = 8

// Position represents a location in the input.
type Position struct {
	Name   string
	Offset int
	Line   int
	Column int
}

// NewPosition returns the position of the first symbol of the named source.
func NewPosition(name string) Position {
	return Position{Name: name, Line: 1, Column: 1}
}

func (p Position) String() string {
	if p.Name != "" {
		return fmt.Sprintf("%s:%d:%d", p.Name, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Compare orders positions by line, then column.
func (p Position) Compare(o Position) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Column < o.Column:
		return -1
	case p.Column > o.Column:
		return 1
	}
	return 0
}

// AdvanceRune returns the position after r.
func (p Position) AdvanceRune(r rune, tabWidth int) Position {
	switch r {
	case '\n':
		p.Line++
		p.Column = 1
	case '\t':
		if tabWidth <= 0 {
			tabWidth = DefaultTabWidth
		}
		p.Column += tabWidth - (p.Column-1)%tabWidth
	default:
		p.Column++
	}
	return p
}
