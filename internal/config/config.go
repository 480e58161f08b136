package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the CLI configuration. Values come from the config file with
// command-line flags taking precedence.
type Config struct {
	// Server is the ACIS Web Services base URL; empty means the public
	// endpoint.
	Server string `toml:"server"`

	// Timeout applies to each HTTP request.
	Timeout Duration `toml:"timeout"`

	// Cache settings.
	CacheDir string   `toml:"cache_dir"`
	CacheTTL Duration `toml:"cache_ttl"`
	NoCache  bool     `toml:"no_cache"`
}

// Duration is a time.Duration that unmarshals from a TOML string such as
// "90s" or "6h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Timeout:  Duration(60 * time.Second),
		CacheTTL: Duration(6 * time.Hour),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "acis", "config.toml")
}

// Load reads a config file over the defaults. A missing file is not an
// error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}
