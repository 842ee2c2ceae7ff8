// Package config resolves geoloc's runtime settings from, in ascending
// precedence: a bundled default, an optional config file under
// $HOME/.config/geoloc, environment variables prefixed GEOLOC_, and
// command-line flags — the standard viper precedence chain.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/loadzero/geoloc/internal/errs"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	keyDataPath = "database"
	keyLogLevel = "log-level"
	keyListen   = "listen"
)

// defaultDataPath returns $HOME/var/db/geoloc/geodata.bin, the store
// path used when -d/--database is not given.
func defaultDataPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errs.ErrMissingHome
	}
	return filepath.Join(home, "var", "db", "geoloc", "geodata.bin"), nil
}

// Config is the fully resolved set of runtime settings a command needs.
type Config struct {
	DataPath string
	LogLevel string
	Listen   string
}

// Load builds a viper instance seeded with defaults, optionally layers
// in a config file found on the standard search path, binds the
// GEOLOC_ environment prefix, binds flags (so an explicitly-set flag
// always wins), and returns the resolved Config.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	dataPath, err := defaultDataPath()
	if err != nil {
		return Config{}, err
	}
	v.SetDefault(keyDataPath, dataPath)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyListen, ":8080")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		v.AddConfigPath(filepath.Join(home, ".config", "geoloc"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("geoloc")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, err
		}
	}

	return Config{
		DataPath: v.GetString(keyDataPath),
		LogLevel: v.GetString(keyLogLevel),
		Listen:   v.GetString(keyListen),
	}, nil
}
