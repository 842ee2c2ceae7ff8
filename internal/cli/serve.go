package cli

import (
	"github.com/loadzero/geoloc/format/geoloc"
	"github.com/loadzero/geoloc/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve lookups over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger(cmd)
			if err != nil {
				return err
			}

			store, err := geoloc.Open(log, cfg.DataPath)
			if err != nil {
				return err
			}
			defer store.Close()

			engine := server.New(log, store)
			return engine.Run(cfg.Listen)
		},
	}

	cmd.Flags().String("listen", "", "address to listen on (default :8080)")
	return cmd
}
