package token

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a Definition. Character sets are lists of
// named classes (letter, digit, upper, lower, space, alnum) and literal
// characters; "letter" matches any letter and "+-*" matches those three
// runes.
type File struct {
	CommentStart    string   `yaml:"comment_start" toml:"comment_start"`
	CommentEnd      string   `yaml:"comment_end" toml:"comment_end"`
	CommentLine     string   `yaml:"comment_line" toml:"comment_line"`
	NestedComments  bool     `yaml:"nested_comments" toml:"nested_comments"`
	IdentStart      []string `yaml:"ident_start" toml:"ident_start"`
	IdentLetter     []string `yaml:"ident_letter" toml:"ident_letter"`
	OpStart         []string `yaml:"op_start" toml:"op_start"`
	OpLetter        []string `yaml:"op_letter" toml:"op_letter"`
	ReservedNames   []string `yaml:"reserved_names" toml:"reserved_names"`
	ReservedOpNames []string `yaml:"reserved_op_names" toml:"reserved_op_names"`
	CaseSensitive   *bool    `yaml:"case_sensitive" toml:"case_sensitive"`
}

var classes = map[string]func(rune) bool{
	"letter": unicode.IsLetter,
	"digit":  unicode.IsDigit,
	"upper":  unicode.IsUpper,
	"lower":  unicode.IsLower,
	"space":  unicode.IsSpace,
	"alnum":  func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) },
}

// LoadDefinition reads a Definition from a .yaml, .yml or .toml file and
// validates it.
func LoadDefinition(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read definition: %w", err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return Definition{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return Definition{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return Definition{}, fmt.Errorf("unsupported definition format %q", ext)
	}

	def := f.Definition()
	if err := def.Validate(); err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Definition converts f. Omitted character sets are taken from Empty, and
// reserved names are case sensitive unless case_sensitive is false.
func (f File) Definition() Definition {
	def := Empty()
	def.CommentStart = f.CommentStart
	def.CommentEnd = f.CommentEnd
	def.CommentLine = f.CommentLine
	def.NestedComments = f.NestedComments
	def.ReservedNames = f.ReservedNames
	def.ReservedOpNames = f.ReservedOpNames
	if f.CaseSensitive != nil {
		def.CaseSensitive = *f.CaseSensitive
	}
	if f.IdentStart != nil {
		def.IdentStart = charSet(f.IdentStart)
	}
	if f.IdentLetter != nil {
		def.IdentLetter = charSet(f.IdentLetter)
	}
	if f.OpStart != nil {
		def.OpStart = charSet(f.OpStart)
	}
	if f.OpLetter != nil {
		def.OpLetter = charSet(f.OpLetter)
	}
	return def
}

func charSet(items []string) func(rune) bool {
	var preds []func(rune) bool
	var literal strings.Builder
	for _, item := range items {
		if pred, found := classes[item]; found {
			preds = append(preds, pred)
			continue
		}
		literal.WriteString(item)
	}
	chars := literal.String()
	return func(r rune) bool {
		if strings.ContainsRune(chars, r) {
			return true
		}
		for _, pred := range preds {
			if pred(r) {
				return true
			}
		}
		return false
	}
}
