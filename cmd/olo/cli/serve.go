package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/OnLabs-org/olojs"
)

func newServeCommand() *cobra.Command {
	var configFile string
	var rootDir string
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve olo-documents over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			var store olojs.Store
			addr := address
			if configFile != "" {
				cfg, err := olojs.LoadServerConfig(configFile)
				if err != nil {
					return err
				}
				router, err := cfg.BuildRouter()
				if err != nil {
					return err
				}
				store = router
				if addr == "" {
					addr = cfg.Address
				}
			} else {
				store = olojs.NewFileStore(rootDir)
			}
			if addr == "" {
				addr = ":8010"
			}
			server := olojs.NewServer(store, log.New(cmd.ErrOrStderr(), "olo ", log.LstdFlags))
			return server.ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML server configuration")
	cmd.Flags().StringVarP(&rootDir, "root", "r", defaultRoot(), "document root directory (without --config)")
	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address")
	return cmd
}
