// Package config loads the treedisplay configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/treedisplay/config.toml
// (~/.config/treedisplay/config.toml) unless --config names another path.
// Every key is optional:
//
//	[container]
//	width = 600
//	height = 400
//
//	[server]
//	addr = "127.0.0.1:7878"
//
//	[cache]
//	backend = "file"        # file, redis or none
//	dir = "~/.cache/treedisplay"
//	ttl = "168h"
//	redis_addr = "localhost:6379"
//	redis_db = 0
//	prefix = "treedisplay:"
//
//	[log]
//	level = "info"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/treedisplay/pkg/errors"
)

// AppName names the configuration and cache directories.
const AppName = "treedisplay"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Container Container `toml:"container"`
	Server    Server    `toml:"server"`
	Cache     Cache     `toml:"cache"`
	Log       Log       `toml:"log"`
}

// Container is the size the CLI assumes for the host container.
type Container struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Server configures the HTTP host.
type Server struct {
	Addr string `toml:"addr"`
}

// Cache configures the artifact cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	Prefix    string   `toml:"prefix"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string such as "90m".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Container: Container{Width: 600, Height: 400},
		Server:    Server{Addr: "127.0.0.1:7878"},
		Cache: Cache{
			Backend:   BackendFile,
			TTL:       Duration{7 * 24 * time.Hour},
			RedisAddr: "localhost:6379",
			Prefix:    AppName + ":",
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the file at path on top of Default. An empty path loads the
// default location, where a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		dir, err := Dir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return Config{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if err := apperrors.ValidateContainerSize(c.Container.Width, c.Container.Height); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown cache backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "cache ttl cannot be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "log level")
	}
	return lvl, nil
}

// CacheDir returns the configured cache directory, defaulting to the XDG
// cache location.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return expandHome(c.Cache.Dir)
	}
	return CacheDir()
}

// Dir returns the configuration directory using XDG standard (~/.config/treedisplay/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/treedisplay/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
