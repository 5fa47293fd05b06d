// Package config holds runtime settings for the Universe client and the
// overlay chain that populates them: defaults, then a JSON file, then
// environment variables, then command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServiceURL: base URL of the Universe user service.
//   - RequestTimeout: per-request timeout applied by the HTTP layer.
type Config struct {
	ServiceURL     string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServiceURL = "http://localhost:8000"
	c.RequestTimeout = 20 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
