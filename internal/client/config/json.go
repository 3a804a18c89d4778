package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/docportal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Timeout may be written as "90s" or as integer nanoseconds.
type JsonConfig struct {
	ServerURL  string         `json:"server_url"`
	Timeout    timex.Duration `json:"timeout"`
	SessionDir string         `json:"session_dir"`
}

// parseJson overlays cfg with the non-empty values found in the JSON file
// at path. An empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	var jc JsonConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.Timeout.Duration > 0 {
		cfg.Timeout = jc.Timeout.Duration
	}
	if jc.SessionDir != "" {
		cfg.SessionDir = jc.SessionDir
	}
	return nil
}
