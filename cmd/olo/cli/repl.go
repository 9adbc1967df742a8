package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/OnLabs-org/olojs"
)

// replSeeds feed the line editor's completion.
var replSeeds = []string{
	"bool", "not", "str", "size", "enum", "range", "type", "map",
	"TRUE", "FALSE", "require",
}

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive swan session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)
			ln.SetCompleter(func(line string) []string {
				var out []string
				for _, seed := range replSeeds {
					if strings.HasPrefix(seed, line) {
						out = append(out, seed)
					}
				}
				return out
			})

			histFile := filepath.Join(os.TempDir(), ".olo_history")
			if f, err := os.Open(histFile); err == nil {
				ln.ReadHistory(f)
				f.Close()
			}
			defer func() {
				if f, err := os.Create(histFile); err == nil {
					ln.WriteHistory(f)
					f.Close()
				}
			}()

			loader := olojs.NewLoader(nil)
			scope := olojs.NewScope(loader.Globals())
			fmt.Fprintln(cmd.OutOrStdout(), "olojs repl — ctrl-d to exit")

			for {
				line, err := ln.Prompt("swan> ")
				if err == io.EOF || err == liner.ErrPromptAborted {
					fmt.Fprintln(cmd.OutOrStdout())
					return nil
				}
				if err != nil {
					return err
				}
				if strings.TrimSpace(line) == "" {
					continue
				}
				ln.AppendHistory(line)

				v, err := olojs.EvalSource(cmd.Context(), line, scope)
				if err != nil {
					errColor.Fprintln(cmd.ErrOrStderr(), olojs.WrapErrorWithSource(err, line))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), olojs.Stringify(v))
			}
		},
	}
}
