package cli

import (
	"github.com/loadzero/geoloc/format/awdb"
	"github.com/loadzero/geoloc/format/geoloc"
	"github.com/spf13/cobra"
)

func newImportAWDBCmd() *cobra.Command {
	var source, locale, manifestPath string

	cmd := &cobra.Command{
		Use:   "import-awdb",
		Short: "build a geoloc store from an AWDB binary database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger(cmd)
			if err != nil {
				return err
			}

			r, err := awdb.NewReader(source)
			if err != nil {
				return err
			}
			defer r.Close()

			blocks, locs, err := r.Walk(locale)
			if err != nil {
				return err
			}

			manifest, err := geoloc.BuildFromRecords(log,
				geoloc.AlternateSource{Format: "awdb", Path: source},
				blocks, locs, nil, nil, cfg.DataPath)
			if err != nil {
				return err
			}

			if manifestPath != "" {
				if err := geoloc.WriteManifest(manifest, manifestPath); err != nil {
					return err
				}
			}

			cmd.Printf("built %s from %s: %d location rows\n", cfg.DataPath, source, manifest.LocationCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "path to the .awdb file")
	cmd.Flags().StringVar(&locale, "locale", "en", "preferred name locale")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to write a build manifest sidecar")
	cmd.MarkFlagRequired("source")

	return cmd
}
