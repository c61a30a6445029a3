// Package config handles configuration for the Lumina client, including
// defaults, environment variables, JSON overlay, and command-line flags.
package config

import (
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
)

// Config holds runtime settings for the Lumina CLI.
//
// Fields:
//   - StoreURL / StoreAnonKey: connection parameters of the hosted document
//     store.
//   - CacheDir: directory of the local document/session cache.
//   - DebounceWindow: idle period after the last edit before a save fires.
//   - StabilityWindow: minimum continuous online time before writes are
//     permitted.
//   - OnlineCheckInterval: how often the client probes store reachability.
type Config struct {
	StoreURL            string
	StoreAnonKey        string
	CacheDir            string
	DebounceWindow      time.Duration
	StabilityWindow     time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults. The store fallbacks
// point at the hosted development project and should be overridden.
func (c *Config) LoadDefaults() {
	c.StoreURL = "https://jzkqdmxkyqxkccwlumina.supabase.co"
	c.StoreAnonKey = "public-anon-key"
	c.DebounceWindow = 2 * time.Second
	c.StabilityWindow = 5 * time.Second
	c.OnlineCheckInterval = 3 * time.Second

	home, err := homedir.Dir()
	if err != nil {
		home = "."
	}
	c.CacheDir = filepath.Join(home, ".lumina")
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
