package config

import (
	"time"
)

// Config holds runtime settings for the portal CLI.
//
// Fields:
//   - ServerURL: base URL of the portal server, e.g. http://localhost:3000.
//   - Timeout: overall timeout of one HTTP request to the portal.
//   - SessionDir: directory holding the saved session token; empty means
//     the user config directory.
type Config struct {
	ServerURL  string
	Timeout    time.Duration
	SessionDir string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3000"
	c.Timeout = 2 * time.Minute
	c.SessionDir = ""
}

// Load constructs a Config, applies defaults, then overlays values from the
// JSON file at path (if not empty) and the environment. Command-line flags
// are applied by the CLI afterwards.
func Load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}
