// Package config loads runtime configuration for the portal server.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. Environment variables (see parseEnv). The Odoo connection and the two
//     login secrets are normally provided this way.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Configuration is read once at process start and treated as read-only after.
package config
