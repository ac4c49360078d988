package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(envConfigPath, "")
	dir := t.TempDir()

	cfg, err := Load(Options{DefaultDir: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"todo", "doing", "done"}, cfg.Board.DefaultColumns)
	assert.Empty(t, cfg.File)
}

func TestLoad_FileInDir(t *testing.T) {
	t.Setenv(envConfigPath, "")
	dir := t.TempDir()
	body := "poll_interval: 250ms\nlog:\n  level: debug\nboard:\n  default_columns: [backlog, active]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(body), 0o644))

	cfg, err := Load(Options{DefaultDir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, configFileName), cfg.File)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"backlog", "active"}, cfg.Board.DefaultColumns)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))
	t.Setenv(envConfigPath, path)
	t.Setenv("LANES_LOG_LEVEL", "warn")
	t.Setenv("LANES_BOARD_DEFAULT_COLUMNS", "a, b,,c")

	cfg, err := Load(Options{DefaultDir: dir})
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Board.DefaultColumns)
}

func TestLoad_FlagsWin(t *testing.T) {
	t.Setenv(envConfigPath, "")
	t.Setenv("LANES_LOG_LEVEL", "warn")
	other := t.TempDir()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("dir", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse([]string{"--dir", other, "--log-level", "error"}))

	cfg, err := Load(Options{Flags: fs, DefaultDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, other, cfg.Dir)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
}

func TestLoad_RejectsNonPositiveInterval(t *testing.T) {
	t.Setenv(envConfigPath, "")
	t.Setenv("LANES_POLL_INTERVAL", "0s")
	_, err := Load(Options{DefaultDir: t.TempDir()})
	require.Error(t, err)
}
