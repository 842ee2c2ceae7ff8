package cli

import (
	"github.com/loadzero/geoloc/format/geoloc"
	"github.com/loadzero/geoloc/pkg/progress"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var blocksCSV, locationCSV, asnumCSV, manifestPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "build a geoloc store from MaxMind CSV sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger(cmd)
			if err != nil {
				return err
			}

			bar := progress.NewIndeterminate("building store")
			manifest, err := geoloc.Build(log, geoloc.BuildSources{
				BlocksCSV:   blocksCSV,
				LocationCSV: locationCSV,
				ASNumCSV:    asnumCSV,
			}, cfg.DataPath, func() { bar.Add(1) })
			bar.Finish()
			if err != nil {
				return err
			}

			if manifestPath != "" {
				if err := geoloc.WriteManifest(manifest, manifestPath); err != nil {
					return err
				}
			}

			cmd.Printf("built %s: %d location rows, %d asn rows\n", cfg.DataPath, manifest.LocationCount, manifest.ASNCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&blocksCSV, "blocks", "", "path to blocks.csv")
	cmd.Flags().StringVar(&locationCSV, "locations", "", "path to location.csv")
	cmd.Flags().StringVar(&asnumCSV, "asn", "", "path to asnum.csv")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to write a build manifest sidecar")
	cmd.MarkFlagRequired("blocks")
	cmd.MarkFlagRequired("locations")
	cmd.MarkFlagRequired("asn")

	return cmd
}
