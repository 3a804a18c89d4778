package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docportal/internal/flagx"
	"github.com/dmitrijs2005/docportal/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Durations accept "30s"-style strings or integer nanoseconds.
// Pointer fields distinguish "absent" from an explicit false/zero.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	GRPCHealthAddr          string         `json:"grpc_health_addr"`
	HealthCheckInterval     timex.Duration `json:"health_check_interval"`
	OdooHost                string         `json:"odoo_host"`
	OdooDB                  string         `json:"odoo_db"`
	OdooUser                string         `json:"odoo_user"`
	OdooPassword            string         `json:"odoo_password"`
	OdooFolderID            string         `json:"odoo_folder_id"`
	UserSecret              string         `json:"user_secret"`
	PasswordSecret          string         `json:"password_secret"`
	RPCTimeout              timex.Duration `json:"rpc_timeout"`
	MaxUploadBytes          int64          `json:"max_upload_bytes"`
	CompensateOrphans       *bool          `json:"compensate_orphans"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	RequireSession          *bool          `json:"require_session"`
	EnableCORS              *bool          `json:"enable_cors"`
	DatabaseDSN             string         `json:"database_dsn"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
	LogBackend              string         `json:"log_backend"`
}

// parseJson overlays values from the JSON file named by -c/-config in args.
// Only keys present in the file replace the current values. A missing or
// malformed file panics, as a broken configuration must not start the server.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setString(&config.OdooHost, c.OdooHost)
	setString(&config.OdooDB, c.OdooDB)
	setString(&config.OdooUser, c.OdooUser)
	setString(&config.OdooPassword, c.OdooPassword)
	setString(&config.OdooFolderID, c.OdooFolderID)
	setString(&config.UserSecret, c.UserSecret)
	setString(&config.PasswordSecret, c.PasswordSecret)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogBackend, c.LogBackend)

	if c.HealthCheckInterval.Duration > 0 {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	if c.RPCTimeout.Duration > 0 {
		config.RPCTimeout = c.RPCTimeout.Duration
	}
	if c.SessionValidityDuration.Duration > 0 {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.MaxUploadBytes > 0 {
		config.MaxUploadBytes = c.MaxUploadBytes
	}
	if c.CompensateOrphans != nil {
		config.CompensateOrphans = *c.CompensateOrphans
	}
	if c.RequireSession != nil {
		config.RequireSession = *c.RequireSession
	}
	if c.EnableCORS != nil {
		config.EnableCORS = *c.EnableCORS
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
