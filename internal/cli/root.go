// Package cli wires geoloc's cobra command tree: build, query, serve,
// whoami, export-mmdb, import-czdb, import-awdb, each resolving its
// settings through internal/config before doing any real work.
package cli

import (
	"github.com/loadzero/geoloc/internal/config"
	"github.com/loadzero/geoloc/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// New builds the root command. version is what `geoloc --version`
// prints; the caller can stamp it at link time.
func New(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "geoloc",
		Short:         "MaxMind-format IP geolocation lookup",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("database", "d", "", "path to the geoloc store (default: $HOME/var/db/geoloc/geodata.bin)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newBuildCmd(),
		newQueryCmd(),
		newServeCmd(),
		newWhoamiCmd(),
		newExportMMDBCmd(),
		newImportCZDBCmd(),
		newImportAWDBCmd(),
	)

	return root
}

// loadConfigAndLogger is the common setup every subcommand needs: a
// resolved config.Config (flags > env > file > default) and a Logger at
// the resolved level.
func loadConfigAndLogger(cmd *cobra.Command) (config.Config, *logging.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	return cfg, logging.New(level), nil
}
