package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/parsec/grammars"
	"github.com/dhamidi/parsec/grammars/ebnf"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("parsec")

func newCheckCmd() *cobra.Command {
	var (
		grammar string
		start   string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:           "check <file>...",
		Short:         "Parse files and report syntax errors",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pick, err := checkerFor(grammar, start)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				if !checkFile(out, pick, path) {
					failed++
				}
			}

			if watch {
				return watchFiles(cmd.Context(), out, pick, args)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammar, "grammar", "g", "", "grammar to check with (default: by file extension)")
	cmd.Flags().StringVar(&start, "start", "", "start production for ebnf files (default: the first production)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "check files again whenever they change")

	return cmd
}

// checkerFor returns a function choosing the checker of a path.
func checkerFor(grammar, start string) (func(path string) (grammars.Checker, error), error) {
	if start != "" && grammar != "" && grammar != "ebnf" {
		return nil, fmt.Errorf("--start only applies to ebnf grammars")
	}

	var fixed grammars.Checker
	if grammar != "" {
		var err error
		if fixed, err = grammars.Lookup(grammar); err != nil {
			return nil, err
		}
	}

	return func(path string) (grammars.Checker, error) {
		check := fixed
		if check == nil {
			var err error
			if check, err = grammars.ForFile(path); err != nil {
				return nil, err
			}
		}
		if start != "" && (grammar == "ebnf" || grammar == "" && strings.EqualFold(filepath.Ext(path), ".ebnf")) {
			check = func(name, text string) error {
				return ebnf.Check(name, text, start)
			}
		}
		return check, nil
	}, nil
}

// checkFile prints the outcome of checking one file and reports success.
func checkFile(out io.Writer, pick func(string) (grammars.Checker, error), path string) bool {
	check, err := pick(path)
	if err != nil {
		fmt.Fprintln(out, err)
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "%s: read file: %s\n", path, err)
		return false
	}

	if err := check(path, string(data)); err != nil {
		fmt.Fprintln(out, err)
		return false
	}

	fmt.Fprintf(out, "%s: ok\n", path)
	return true
}

// watchFiles rechecks paths as they are written until ctx is done. The
// parent directories are watched so editors that replace files on save are
// still seen.
func watchFiles(ctx context.Context, out io.Writer, pick func(string) (grammars.Checker, error), paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		watched[filepath.Clean(path)] = true
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	log.Infof("watching %d files", len(watched))

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(event.Name)
			if !watched[path] {
				continue
			}
			log.Debugf("%s: %s", event.Op, path)
			checkFile(out, pick, path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Errorf("watch: %s", err)
		}
	}
}
