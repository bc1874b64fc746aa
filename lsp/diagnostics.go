package lsp

import (
	"errors"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/parsec"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Diagnostics converts the result of checking text into LSP diagnostics.
// A parse error is reported at its position; other errors at the start of
// the document.
func Diagnostics(text string, err error) []protocol.Diagnostic {
	if err == nil {
		return []protocol.Diagnostic{}
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	diagnostic := protocol.Diagnostic{
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	}

	var perr *parsec.Error
	if errors.As(err, &perr) {
		start := position(text, perr.Pos.Offset)
		end := start
		if perr.Pos.Offset < len(text) {
			r, _ := utf8.DecodeRuneInString(text[perr.Pos.Offset:])
			if r != '\n' {
				end.Character += protocol.UInteger(utf16.RuneLen(r))
			}
		}
		diagnostic.Range = protocol.Range{Start: start, End: end}
		diagnostic.Message = strings.Join(perr.Lines(), "\n")
	}

	return []protocol.Diagnostic{diagnostic}
}

// position converts a byte offset into a zero-based line and UTF-16
// character offset.
func position(text string, offset int) protocol.Position {
	offset = min(max(offset, 0), len(text))
	prefix := text[:offset]
	line := strings.Count(prefix, "\n")
	col := 0
	for _, r := range prefix[strings.LastIndexByte(prefix, '\n')+1:] {
		col += utf16.RuneLen(r)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}
