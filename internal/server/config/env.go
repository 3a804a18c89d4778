package config

import (
	"fmt"
	"strconv"
	"time"
)

// Environment variable names. The ODOO_* and *_SECRET names are shared with
// the deployment manifests of the previous portal and must not change.
const (
	EnvOdooHost       = "ODOO_HOST"
	EnvOdooDB         = "ODOO_DB"
	EnvOdooUser       = "ODOO_USER"
	EnvOdooPassword   = "ODOO_PASS"
	EnvOdooFolderID   = "ODOO_FOLDER_ID"
	EnvUserSecret     = "USER_SECRET"
	EnvPasswordSecret = "PASSWORD_SECRET"

	EnvHTTPAddr          = "PORTAL_HTTP_ADDR"
	EnvGRPCHealthAddr    = "PORTAL_GRPC_HEALTH_ADDR"
	EnvRPCTimeout        = "PORTAL_RPC_TIMEOUT"
	EnvMaxUploadBytes    = "PORTAL_MAX_UPLOAD_BYTES"
	EnvCompensateOrphans = "PORTAL_COMPENSATE_ORPHANS"
	EnvSecretKey         = "PORTAL_SECRET_KEY"
	EnvSessionValidity   = "PORTAL_SESSION_VALIDITY"
	EnvRequireSession    = "PORTAL_REQUIRE_SESSION"
	EnvDatabaseDSN       = "PORTAL_DATABASE_DSN"
	EnvS3RootUser        = "PORTAL_S3_ROOT_USER"
	EnvS3RootPassword    = "PORTAL_S3_ROOT_PASSWORD"
	EnvS3Bucket          = "PORTAL_S3_BUCKET"
	EnvS3Region          = "PORTAL_S3_REGION"
	EnvS3BaseEndpoint    = "PORTAL_S3_BASE_ENDPOINT"
	EnvLogBackend        = "PORTAL_LOG_BACKEND"
)

// parseEnv overlays values found through lookup (normally os.LookupEnv).
// Unparsable booleans, durations or sizes panic.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	strs := map[string]*string{
		EnvOdooHost:       &config.OdooHost,
		EnvOdooDB:         &config.OdooDB,
		EnvOdooUser:       &config.OdooUser,
		EnvOdooPassword:   &config.OdooPassword,
		EnvOdooFolderID:   &config.OdooFolderID,
		EnvUserSecret:     &config.UserSecret,
		EnvPasswordSecret: &config.PasswordSecret,
		EnvHTTPAddr:       &config.EndpointAddrHTTP,
		EnvGRPCHealthAddr: &config.GRPCHealthAddr,
		EnvSecretKey:      &config.SecretKey,
		EnvDatabaseDSN:    &config.DatabaseDSN,
		EnvS3RootUser:     &config.S3RootUser,
		EnvS3RootPassword: &config.S3RootPassword,
		EnvS3Bucket:       &config.S3Bucket,
		EnvS3Region:       &config.S3Region,
		EnvS3BaseEndpoint: &config.S3BaseEndpoint,
		EnvLogBackend:     &config.LogBackend,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		EnvRPCTimeout:      &config.RPCTimeout,
		EnvSessionValidity: &config.SessionValidityDuration,
	}
	for name, dst := range durations {
		if v, ok := lookup(name); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			*dst = d
		}
	}

	bools := map[string]*bool{
		EnvCompensateOrphans: &config.CompensateOrphans,
		EnvRequireSession:    &config.RequireSession,
	}
	for name, dst := range bools {
		if v, ok := lookup(name); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			*dst = b
		}
	}

	if v, ok := lookup(EnvMaxUploadBytes); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvMaxUploadBytes, err))
		}
		config.MaxUploadBytes = n
	}
}
