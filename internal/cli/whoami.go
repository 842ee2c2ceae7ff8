package cli

import (
	"time"

	"github.com/loadzero/geoloc/format/geoloc"
	"github.com/loadzero/geoloc/internal/discover"
	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	var stunServer string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "discover this host's public IP via STUN and look it up",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger(cmd)
			if err != nil {
				return err
			}

			ip, err := discover.PublicAddr(stunServer, 5*time.Second)
			if err != nil {
				return err
			}

			store, err := geoloc.Open(log, cfg.DataPath)
			if err != nil {
				return err
			}
			defer store.Close()

			quad, err := geoloc.ParseDottedQuad([]byte(ip.String()))
			if err != nil {
				return err
			}

			result := store.Query(quad)
			return geoloc.RenderLine(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&stunServer, "stun-server", "", "STUN server to query (default stun.l.google.com:19302)")
	return cmd
}
