package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GEOLOC_DATABASE", "")
	t.Setenv("GEOLOC_LOG_LEVEL", "")
	t.Setenv("GEOLOC_LISTEN", "")
	chdirTemp(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	require.Equal(t, filepath.Join(home, "var", "db", "geoloc", "geodata.bin"), cfg.DataPath)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, ":8080", cfg.Listen)
}

func TestLoadEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GEOLOC_LOG_LEVEL", "debug")
	chdirTemp(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFlagOverridesDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdirTemp(t)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("database", "d", "", "")
	require.NoError(t, flags.Set("database", "/custom/path.bin"))

	cfg, err := Load(flags)
	require.NoError(t, err)
	require.Equal(t, "/custom/path.bin", cfg.DataPath)
}

// chdirTemp points the process at a scratch directory with no config.yaml
// of its own, so Load's "." search path doesn't pick up this repo's.
func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(dir))
}
