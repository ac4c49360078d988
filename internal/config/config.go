// Package config loads lanes settings from defaults, an optional YAML file, LANES_*
// environment variables and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "LANES"
	envConfigPath  = "LANES_CONFIG"
	configFileName = "config.yaml"
)

type Config struct {
	Dir          string        `mapstructure:"dir"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Log          LogConfig     `mapstructure:"log"`
	Board        BoardConfig   `mapstructure:"board"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type BoardConfig struct {
	DefaultColumns []string `mapstructure:"default_columns"`
}

// Options controls where Load looks. Flags, when set, are bound by name:
// "dir", "poll-interval" and "log-level".
type Options struct {
	ConfigFile string
	Flags      *pflag.FlagSet

	// DefaultDir is used when no dir is configured anywhere.
	DefaultDir string
}

var flagKeys = map[string]string{
	"dir":           "dir",
	"poll-interval": "poll_interval",
	"log-level":     "log.level",
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("dir", dir)
	v.SetDefault("poll_interval", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("board.default_columns", []string{"todo", "doing", "done"})
}

// Load resolves the configuration. A missing implicit config file is not an error;
// a missing explicit one (flag or LANES_CONFIG) is.
func Load(opts Options) (Config, error) {
	v := viper.New()
	setDefaults(v, opts.DefaultDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for flag, key := range flagKeys {
			f := opts.Flags.Lookup(flag)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	path, explicit := configPath(opts.ConfigFile, v.GetString("dir"))
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
			path = ""
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.File = path
	c.Board.DefaultColumns = cleanList(c.Board.DefaultColumns)
	if c.PollInterval <= 0 {
		return Config{}, fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	return c, nil
}

func configPath(flagPath, dir string) (path string, explicit bool) {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p, true
	}
	if p := strings.TrimSpace(os.Getenv(envConfigPath)); p != "" {
		return p, true
	}
	if dir = strings.TrimSpace(dir); dir != "" {
		return filepath.Join(dir, configFileName), false
	}
	return "", false
}

// Env values arrive as one comma separated string.
func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
