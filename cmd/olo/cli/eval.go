package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/OnLabs-org/olojs"
)

var errColor = color.New(color.FgRed, color.Bold)

func newEvalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a swan expression and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := strings.Join(args, " ")
			prog, err := olojs.Parse(src)
			if err != nil {
				errColor.Fprintln(cmd.ErrOrStderr(), olojs.WrapErrorWithSource(err, src))
				return err
			}
			loader := olojs.NewLoader(nil)
			v, err := prog.Evaluate(cmd.Context(), olojs.NewScope(loader.Globals()))
			if err != nil {
				errColor.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), olojs.Stringify(v))
			return nil
		},
	}
}
