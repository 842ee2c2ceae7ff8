package cli

import (
	"github.com/loadzero/geoloc/format/czdb"
	"github.com/loadzero/geoloc/format/geoloc"
	"github.com/loadzero/geoloc/internal/errs"
	"github.com/spf13/cobra"
)

func newImportCZDBCmd() *cobra.Command {
	var source, key, manifestPath string

	cmd := &cobra.Command{
		Use:   "import-czdb",
		Short: "build a geoloc store from an encrypted CZDB database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger(cmd)
			if err != nil {
				return err
			}
			if key == "" {
				return errs.ErrKeyRequired
			}

			r, err := czdb.NewReader(source, key)
			if err != nil {
				return err
			}
			defer r.Close()

			records, err := r.Walk()
			if err != nil {
				return err
			}

			blocks, locs := czdb.ToLocations(records)

			manifest, err := geoloc.BuildFromRecords(log,
				geoloc.AlternateSource{Format: "czdb", Path: source},
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

	cmd.Flags().StringVar(&source, "source", "", "path to the .czdb file")
	cmd.Flags().StringVar(&key, "key", "", "base64-encoded decryption key")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to write a build manifest sidecar")
	cmd.MarkFlagRequired("source")

	return cmd
}
