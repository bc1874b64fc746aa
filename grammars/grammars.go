// Package grammars names the bundled grammars for the command line tool and
// the language server.
package grammars

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dhamidi/parsec/grammars/csv"
	"github.com/dhamidi/parsec/grammars/ebnf"
	"github.com/dhamidi/parsec/grammars/json"
)

// Checker parses text and returns the parse error, if any. name is used in
// error positions.
type Checker func(name, text string) error

var checkers = map[string]Checker{
	"csv": func(name, text string) error {
		_, err := csv.Parse(name, text)
		return err
	},
	"ebnf": func(name, text string) error {
		return ebnf.Check(name, text, "")
	},
	"json": func(name, text string) error {
		_, err := json.Parse(name, text)
		return err
	},
}

// Names lists the known grammars.
func Names() []string {
	names := make([]string, 0, len(checkers))
	for name := range checkers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the checker of the named grammar.
func Lookup(name string) (Checker, error) {
	check, found := checkers[name]
	if !found {
		return nil, fmt.Errorf("unknown grammar %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return check, nil
}

// ForFile picks a grammar from the file extension of path.
func ForFile(path string) (Checker, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return nil, fmt.Errorf("%s: no file extension to pick a grammar", path)
	}
	return Lookup(ext)
}
