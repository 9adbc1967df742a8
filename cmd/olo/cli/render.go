package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OnLabs-org/olojs"
)

func newRenderCommand() *cobra.Command {
	var rootDir string
	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render an olo-document from a file store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := olojs.NewFileStore(rootDir)
			src, err := store.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc, err := olojs.ParseDocument(src)
			if err != nil {
				errColor.Fprintln(cmd.ErrOrStderr(), olojs.WrapErrorWithName(err, args[0], src))
				return err
			}
			loader := olojs.NewLoader(store)
			globals := loader.Globals()
			globals["__path__"] = olojs.String(olojs.NormalizePath(args[0]))
			text, err := doc.Render(cmd.Context(), olojs.NewScope(globals))
			if err != nil {
				errColor.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&rootDir, "root", "r", defaultRoot(), "document root directory")
	return cmd
}
