package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/parsec"
	"github.com/dhamidi/parsec/token"
	"github.com/spf13/cobra"
)

var languages = map[string]func() token.Definition{
	"empty":   token.Empty,
	"haskell": token.HaskellStyle,
	"java":    token.JavaStyle,
	"json":    token.JSON,
}

func newTokensCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Split a file into tokens",
		Long: `Split a file into tokens using a built-in language definition
(java, haskell, json, empty) or one loaded from a .yaml or .toml file.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadLanguage(lang)
			if err != nil {
				return err
			}
			lexer, err := token.New[struct{}](def)
			if err != nil {
				return fmt.Errorf("invalid language %s: %w", lang, err)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			tokens, err := parsec.RunText(lexer.Scan(), args[0], string(data), struct{}{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				fmt.Fprintf(out, "%d:%d\t%s\t%s\n", tok.Pos.Line, tok.Pos.Column, tok.Kind, tok.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "java", "language name or definition file")

	return cmd
}

func loadLanguage(lang string) (token.Definition, error) {
	if def, found := languages[lang]; found {
		return def(), nil
	}
	if _, err := os.Stat(lang); err != nil {
		return token.Definition{}, fmt.Errorf("unknown language %q", lang)
	}
	return token.LoadDefinition(lang)
}
