package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/docportal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-g string   gRPC health bind address, empty disables
//	-o string   Odoo base URL
//	-f string   Odoo documents folder id
//	-d string   PostgreSQL DSN of the upload journal
//	-s string   JWT HMAC secret key
//	-t int      XML-RPC timeout, seconds
//	-m int      maximum upload body, MiB
//	-l string   log backend (slog|zap)
//
// Only these flags are taken from args (see flagx.FilterArgs), so -c/-config
// and unknown flags do not collide. Invalid values panic.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-o", "-f", "-d", "-s", "-t", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "address and port of the gRPC health service")
	fs.StringVar(&config.OdooHost, "o", config.OdooHost, "Odoo base URL")
	fs.StringVar(&config.OdooFolderID, "f", config.OdooFolderID, "Odoo documents folder id")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog|zap)")

	rpcTimeout := fs.Int("t", int(config.RPCTimeout.Seconds()), "XML-RPC timeout (in seconds)")
	maxUpload := fs.Int64("m", config.MaxUploadBytes>>20, "maximum upload size (in MiB)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Unit conversions only for flags actually given, to keep sub-second
	// timeouts and odd byte limits coming from JSON or the environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.RPCTimeout = time.Duration(*rpcTimeout) * time.Second
		case "m":
			config.MaxUploadBytes = *maxUpload << 20
		}
	})
}
