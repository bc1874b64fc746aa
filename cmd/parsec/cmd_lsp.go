package main

import (
	"github.com/dhamidi/parsec/grammars"
	"github.com/dhamidi/parsec/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var grammar string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var check grammars.Checker
			if grammar != "" {
				var err error
				if check, err = grammars.Lookup(grammar); err != nil {
					return err
				}
			}
			server := lsp.NewServer(check, version)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVarP(&grammar, "grammar", "g", "", "grammar for every document (default: by file extension)")

	return cmd
}
