// Package cli implements the olo command tree.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// defaultRoot is the document root used when --root is not given: the
// first OLOPATH entry, falling back to the working directory.
func defaultRoot() string {
	if v := os.Getenv("OLOPATH"); v != "" {
		return filepath.SplitList(v)[0]
	}
	return "."
}

// New builds the root command.
func New() *cobra.Command {
	root := &cobra.Command{
		Use:           "olo",
		Short:         "olojs: swan expressions and olo-documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newEvalCommand(),
		newRenderCommand(),
		newServeCommand(),
		newReplCommand(),
	)
	return root
}
