package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/docportal/internal/common"
)

// Config holds runtime settings for the portal server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the JSON API.
//   - GRPCHealthAddr: bind address of the gRPC health service; empty disables it.
//   - OdooHost / OdooDB / OdooUser / OdooPassword: remote ERP connection.
//   - OdooFolderID: raw folder id for new documents, see FolderID.
//   - UserSecret / PasswordSecret: the only accepted portal login pair.
//   - RPCTimeout: per round-trip timeout of XML-RPC calls, 0 means transport defaults.
//   - MaxUploadBytes: request body ceiling for /upload.
//   - CompensateOrphans: unlink the attachment when document creation fails.
//   - SecretKey / SessionValidityDuration / RequireSession: portal session tokens.
//   - DatabaseDSN: PostgreSQL DSN for the upload journal; empty keeps it in memory.
//   - S3*: optional archive bucket for provisioned files.
//   - LogBackend: "slog" or "zap".
type Config struct {
	EndpointAddrHTTP        string
	GRPCHealthAddr          string
	HealthCheckInterval     time.Duration
	OdooHost                string
	OdooDB                  string
	OdooUser                string
	OdooPassword            string
	OdooFolderID            string
	UserSecret              string
	PasswordSecret          string
	RPCTimeout              time.Duration
	MaxUploadBytes          int64
	CompensateOrphans       bool
	SecretKey               string
	SessionValidityDuration time.Duration
	RequireSession          bool
	EnableCORS              bool
	DatabaseDSN             string
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
	LogBackend              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside of development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3000"
	c.GRPCHealthAddr = ""
	c.HealthCheckInterval = 30 * time.Second
	c.OdooHost = "http://localhost:8069"
	c.RPCTimeout = 30 * time.Second
	c.MaxUploadBytes = 50 << 20
	c.CompensateOrphans = true
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 8 * time.Hour
	c.RequireSession = false
	c.EnableCORS = true
	c.S3Region = "us-east-1"
	c.LogBackend = "slog"
}

// FolderID resolves the configured document folder.
func (c *Config) FolderID() int64 {
	return ParseFolderID(c.OdooFolderID)
}

// ParseFolderID parses a folder identifier, falling back to
// common.DefaultFolderID when raw is empty, not an integer, or not positive.
func ParseFolderID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return common.DefaultFolderID
	}
	return id
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, os.LookupEnv)
	parseFlags(cfg, args)
	return cfg
}
