package parsec

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrEmptyLoop is raised (by panic) when a repetition combinator is
	// applied to a parser that succeeds without consuming input.
	ErrEmptyLoop = errors.New("parsec: repetition applied to a parser that accepts empty input")

	// ErrUninstalled is raised (by panic) when a recursive placeholder is
	// run before its parser was installed.
	ErrUninstalled = errors.New("parsec: placeholder parser used before installation")

	// ErrReinstalled is raised (by panic) when a placeholder is installed twice.
	ErrReinstalled = errors.New("parsec: placeholder parser installed twice")
)

// MessageKind classifies a message carried by an Error.
type MessageKind int

const (
	// SysUnexpect is generated by primitive parsers for the symbol they
	// found. An empty text stands for the end of input.
	SysUnexpect MessageKind = iota
	// Unexpect is generated by Unexpected.
	Unexpect
	// Expect names a grammar element that would have been accepted.
	Expect
	// Raw is a free-form message generated by Fail.
	Raw
)

// Message is a single entry of an Error.
type Message struct {
	Kind MessageKind
	Text string
}

// Error is a parse failure: a position plus the messages gathered there.
type Error struct {
	Pos      Position
	Messages []Message
}

// NewError creates an error at pos holding a single message.
func NewError(pos Position, kind MessageKind, text string) *Error {
	return &Error{Pos: pos, Messages: []Message{{Kind: kind, Text: text}}}
}

// UnknownError creates an error without messages.
func UnknownError(pos Position) *Error {
	return &Error{Pos: pos}
}

// IsUnknown reports whether e carries no messages.
func (e *Error) IsUnknown() bool {
	return e == nil || len(e.Messages) == 0
}

// Expected returns the de-duplicated, non-empty expectation texts.
func (e *Error) Expected() []string {
	return e.texts(Expect)
}

// Unexpected returns the de-duplicated unexpected-input texts, system
// generated ones first. The end of input is reported as "end of input".
func (e *Error) Unexpected() []string {
	var out []string
	for _, m := range e.dedup() {
		if m.Kind != SysUnexpect && m.Kind != Unexpect {
			continue
		}
		text := m.Text
		if text == "" {
			text = "end of input"
		}
		if !slices.Contains(out, text) {
			out = append(out, text)
		}
	}
	return out
}

func (e *Error) texts(kind MessageKind) []string {
	var out []string
	for _, m := range e.dedup() {
		if m.Kind == kind && m.Text != "" {
			out = append(out, m.Text)
		}
	}
	return out
}

// dedup returns the messages in order without repeated entries.
func (e *Error) dedup() []Message {
	if e == nil {
		return nil
	}
	out := make([]Message, 0, len(e.Messages))
	for _, m := range e.Messages {
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

// withExpect returns a copy of e whose expectations are replaced by msgs.
func (e *Error) withExpect(msgs ...string) *Error {
	out := &Error{Pos: e.Pos}
	for _, m := range e.Messages {
		if m.Kind != Expect {
			out.Messages = append(out.Messages, m)
		}
	}
	if len(msgs) == 0 {
		out.Messages = append(out.Messages, Message{Kind: Expect})
	}
	for _, msg := range msgs {
		out.Messages = append(out.Messages, Message{Kind: Expect, Text: msg})
	}
	return out
}

// MergeErrors combines the errors of two alternatives. An error with
// messages beats one without; otherwise the error at the furthest position
// wins and errors at the same position pool their messages.
func MergeErrors(a, b *Error) *Error {
	switch {
	case a.IsUnknown() && !b.IsUnknown():
		return b
	case b.IsUnknown() && !a.IsUnknown():
		return a
	case a == nil:
		return b
	case b == nil:
		return a
	}
	switch a.Pos.Compare(b.Pos) {
	case 1:
		return a
	case -1:
		return b
	}
	msgs := make([]Message, 0, len(a.Messages)+len(b.Messages))
	msgs = append(msgs, a.Messages...)
	msgs = append(msgs, b.Messages...)
	return &Error{Pos: a.Pos, Messages: msgs}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, strings.Join(e.Lines(), "; "))
}

// Lines renders the messages without the position, one clause per line.
func (e *Error) Lines() []string {
	msgs := e.dedup()
	if len(msgs) == 0 {
		return []string{"unknown parse error"}
	}

	var sysUnexpect, unexpect, expect, raw []string
	var sawSys bool
	for _, m := range msgs {
		switch m.Kind {
		case SysUnexpect:
			if !sawSys {
				sysUnexpect = append(sysUnexpect, m.Text)
				sawSys = true
			}
		case Unexpect:
			unexpect = appendClean(unexpect, m.Text)
		case Expect:
			expect = appendClean(expect, m.Text)
		case Raw:
			raw = appendClean(raw, m.Text)
		}
	}

	var lines []string
	// A system message is only shown when nothing more specific is known.
	if len(unexpect) == 0 && len(sysUnexpect) > 0 {
		if sysUnexpect[0] == "" {
			lines = append(lines, "unexpected end of input")
		} else {
			lines = append(lines, "unexpected "+sysUnexpect[0])
		}
	}
	if len(unexpect) > 0 {
		lines = append(lines, "unexpected "+commasOr(unexpect))
	}
	if len(expect) > 0 {
		lines = append(lines, "expecting "+commasOr(expect))
	}
	lines = append(lines, raw...)
	if len(lines) == 0 {
		return []string{"unknown parse error"}
	}
	return lines
}

func appendClean(list []string, text string) []string {
	if text == "" || slices.Contains(list, text) {
		return list
	}
	return append(list, text)
}

func commasOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
