// Package config holds runtime settings for the console.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the sprinklerctl console.
//
// Fields:
//   - DeviceURL: base URL of the device's REST API.
//   - DatabaseFile: path of the local credential database.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	DeviceURL      string
	DatabaseFile   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults. 192.168.4.1 is the
// device's captive access-point address out of the box. The credential
// database lives under the user config dir, falling back to the working
// directory when none is resolvable.
func (c *Config) LoadDefaults() {
	c.DeviceURL = "http://192.168.4.1"
	c.DatabaseFile = "sprinklerctl.db"
	if dir, err := os.UserConfigDir(); err == nil {
		c.DatabaseFile = filepath.Join(dir, "sprinklerctl", "sprinklerctl.db")
	}
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
