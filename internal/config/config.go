// Package config loads dagmatch settings from a TOML file and the
// environment.
//
// The file lives at $XDG_CONFIG_HOME/dagmatch/config.toml (or
// ~/.config/dagmatch/config.toml) unless --config names another one:
//
//	[cache]
//	backend = "redis"            # file | redis | none
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
//
//	[limits]
//	max_pattern_nodes = 24
//
//	[server]
//	addr = ":9090"
//	read_timeout = "10s"
//
// Environment variables override the file: DAGMATCH_CACHE_BACKEND,
// DAGMATCH_REDIS_URL, DAGMATCH_ADDR and DAGMATCH_CORS_ORIGIN.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dagmatch/pkg/buildinfo"
	"github.com/matzehuels/dagmatch/pkg/cache"
	apperrors "github.com/matzehuels/dagmatch/pkg/errors"
	"github.com/matzehuels/dagmatch/pkg/pipeline"
)

const appName = "dagmatch"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Environment variables that override the file.
const (
	EnvCacheBackend = "DAGMATCH_CACHE_BACKEND"
	EnvRedisURL     = "DAGMATCH_REDIS_URL"
	EnvAddr         = "DAGMATCH_ADDR"
	EnvCORSOrigin   = "DAGMATCH_CORS_ORIGIN"
)

// Duration is a time.Duration written as a string ("30s", "12h") in TOML.
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the complete dagmatch configuration.
type Config struct {
	Cache  CacheConfig     `toml:"cache"`
	Limits pipeline.Limits `toml:"limits"`
	Server ServerConfig    `toml:"server"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr          string   `toml:"addr"`
	ReadTimeout   Duration `toml:"read_timeout"`
	WriteTimeout  Duration `toml:"write_timeout"`
	MaxBodyBytes  int64    `toml:"max_body_bytes"`
	AllowedOrigin string   `toml:"allowed_origin"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{cache.TTLResult},
			Prefix:  appName + ":",
		},
		Limits: pipeline.DefaultLimits(),
		Server: ServerConfig{
			Addr:          ":8080",
			ReadTimeout:   Duration{15 * time.Second},
			WriteTimeout:  Duration{60 * time.Second},
			MaxBodyBytes:  8 << 20,
			AllowedOrigin: "*",
		},
	}
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path, applies environment overrides and
// validates the result. An empty path means [DefaultPath], and a missing
// default file yields the defaults. A missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "locate config")
		}
		path = p
	}

	if err := decodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
		if explicit {
			return Config{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
	}

	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = strings.ToLower(v)
	}
	if v := getenv(EnvRedisURL); v != "" {
		c.Cache.RedisURL = v
	}
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvCORSOrigin); v != "" {
		c.Server.AllowedOrigin = v
	}
}

// Validate checks the configuration for values no component can use.
func (c Config) Validate() error {
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"cache.backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
	}
	if c.Cache.TTL.Duration < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Limits.MaxGraphNodes < 0 || c.Limits.MaxPatternNodes < 0 || c.Limits.MaxTargetNodes < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "limits must not be negative")
	}
	if c.Server.Addr == "" {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "server.addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}

// CacheDir returns the file cache directory: cache.dir if set, otherwise
// $XDG_CACHE_HOME/dagmatch or ~/.cache/dagmatch.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// OpenCache opens the configured cache backend. disabled forces a
// [cache.NullCache].
func (c Config) OpenCache(ctx context.Context, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	switch c.Cache.Backend {
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Cache.RedisURL, c.Cache.Prefix)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeCache, err, "open redis cache")
		}
		return rc, nil
	case BackendFile:
		dir, err := c.CacheDir()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeCache, err, "locate cache dir")
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeCache, err, "open file cache")
		}
		return fc, nil
	default:
		return cache.NewNullCache(), nil
	}
}

// NewRunner builds a pipeline runner that uses the configured limits and
// cache TTL. Cache keys are scoped by build version.
func (c Config) NewRunner(cch cache.Cache, logger *log.Logger) *pipeline.Runner {
	keyer := cache.NewScopedKeyer(nil, buildinfo.Get().Version)
	r := pipeline.NewRunner(cch, keyer, logger)
	r.Limits = c.Limits
	r.TTL = c.Cache.TTL.Duration
	return r
}
