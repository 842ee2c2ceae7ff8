package cli

import (
	"time"

	"github.com/loadzero/geoloc/format/geoloc"
	"github.com/loadzero/geoloc/internal/errs"
	"github.com/loadzero/geoloc/internal/fields"
	"github.com/loadzero/geoloc/internal/resolve"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var query string
	var format string
	var fieldList []string
	var resolver string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "look up an IP address, dotted quad, or hostname",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger(cmd)
			if err != nil {
				return err
			}

			if query != "" && len(args) > 0 {
				return errs.ErrMutuallyExclusive
			}
			if query == "" && len(args) > 0 {
				query = args[0]
			}
			if query == "" {
				return errs.ErrNoInput
			}

			store, err := geoloc.Open(log, cfg.DataPath)
			if err != nil {
				return err
			}
			defer store.Close()

			quad, err := geoloc.ParseDottedQuad([]byte(query))
			if err != nil {
				ip, rerr := resolve.Hostname(query, resolver, 5*time.Second)
				if rerr != nil {
					// unresolvable input is dropped like a malformed IP:
					// no output line, no error.
					log.Context("query.go", 0, "dropping %q: %v", query, rerr)
					return nil
				}
				quad, err = geoloc.ParseDottedQuad([]byte(ip.String()))
				if err != nil {
					return err
				}
			}

			result := store.Query(quad)
			selected := fields.Filter(fieldList)

			if format == "table" {
				geoloc.RenderTableFields(cmd.OutOrStdout(), []geoloc.IPResult{result}, selected)
				return nil
			}
			return geoloc.RenderLineFields(cmd.OutOrStdout(), result, selected)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "IP address or hostname to look up")
	cmd.Flags().StringVarP(&format, "format", "f", "line", "output format: line or table")
	cmd.Flags().StringSliceVar(&fieldList, "fields", nil, "comma-separated output fields (default: all)")
	cmd.Flags().StringVar(&resolver, "resolver", "", "DNS resolver to use for hostname queries")

	return cmd
}
