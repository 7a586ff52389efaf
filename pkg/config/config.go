// Package config loads orbit settings from a TOML file.
//
// A config file may set any subset of keys; everything else keeps the value
// from Default. Unknown keys are rejected so typos surface early.
//
//	[layout]
//	inner_radius = 200.0
//	clockwise = false
//
//	[cache]
//	uri = "redis://localhost:6379/0"
//	prefix = "staging:"
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "debug"
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/layout/circular"
)

// AppName names the config and cache directories.
const AppName = "orbit"

// FileName is the config file name inside the config directory.
const FileName = AppName + ".toml"

// DefaultAddr is the listen address of `orbit serve`.
const DefaultAddr = ":8080"

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "info"

// LogLevels lists the accepted log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config is the full set of settings.
type Config struct {
	Layout circular.Params `toml:"layout"`
	Cache  Cache           `toml:"cache"`
	Server Server          `toml:"server"`
	Log    Log             `toml:"log"`
}

// Cache selects the layout cache backend.
type Cache struct {
	// URI is passed to cache.Open. Empty means the file cache in the user
	// cache directory; "none" disables caching.
	URI string `toml:"uri"`

	// Prefix scopes every key so several deployments can share one backend.
	Prefix string `toml:"prefix,omitempty"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Log configures the CLI logger.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout: circular.DefaultParams(),
		Server: Server{Addr: DefaultAddr},
		Log:    Log{Level: DefaultLogLevel},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server.addr cannot be empty")
	}
	if !slices.Contains(LogLevels, c.Log.Level) {
		return errors.New(errors.ErrCodeInvalidInput, "log.level must be one of: %s", strings.Join(LogLevels, ", "))
	}
	return nil
}

// Decode reads TOML from r over the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidFormat, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the config file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// WriteFile writes cfg to path, creating parent directories.
func WriteFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return Write(f, cfg)
}

// =============================================================================
// Paths
// =============================================================================

// Dir returns the config directory, honoring XDG_CONFIG_HOME.
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

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// CacheDir returns the file cache directory, honoring XDG_CACHE_HOME.
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
