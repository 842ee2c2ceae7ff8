package cli

import (
	"net/netip"

	"github.com/loadzero/geoloc/format/geoloc"
	"github.com/loadzero/geoloc/format/mmdbexport"
	"github.com/spf13/cobra"
)

func newExportMMDBCmd() *cobra.Command {
	var out string
	var blocksCSV string

	cmd := &cobra.Command{
		Use:   "export-mmdb",
		Short: "export a geoloc store to the standard MaxMind DB format",
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

			blocks, err := geoloc.LoadBlocksCSV(blocksCSV)
			if err != nil {
				return err
			}

			if err := mmdbexport.Export(store, blocks, out); err != nil {
				return err
			}

			probe := netip.MustParseAddr("8.8.8.8")
			if err := mmdbexport.SelfCheck(out, probe); err != nil {
				return err
			}

			cmd.Printf("exported %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "geoloc.mmdb", "output mmdb path")
	cmd.Flags().StringVar(&blocksCSV, "blocks", "", "blocks.csv used to enumerate ranges to export")
	cmd.MarkFlagRequired("blocks")

	return cmd
}
