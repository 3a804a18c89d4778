// Package config loads settings of the portal command-line client:
// defaults, then an optional JSON file, then PORTAL_* environment variables.
package config
