package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/rollcall/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        gRPC bind address (e.g., ":50051")
//	-http string     HTTP report gateway bind address
//	-driver string   storage backend: postgres or sqlite
//	-d string        database DSN
//	-s string        session token HMAC secret key
//	-tz string       report time zone (IANA name)
//	-log-level string
//	-log-format string  json or text
//	-notify string   notification recipient
//	-u string        S3 user
//	-p string        S3 password
//	-b string        S3 bucket name
//	-g string        S3 region
//	-e string        S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-otel string     OTLP/HTTP endpoint
//	-cors string     comma-separated allowed CORS origins
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the -c/-config flag.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-http", "-driver", "-d", "-s", "-tz", "-log-level", "-log-format",
		"-notify", "-u", "-p", "-b", "-g", "-e", "-otel", "-cors",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.GRPCAddr, "a", config.GRPCAddr, "address and port to run gRPC server")
	fs.StringVar(&config.HTTPAddr, "http", config.HTTPAddr, "address and port to run HTTP gateway")
	fs.StringVar(&config.StorageDriver, "driver", config.StorageDriver, "storage driver (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.ReportTimeZone, "tz", config.ReportTimeZone, "report time zone")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format (json|text)")
	fs.StringVar(&config.NotifyRecipient, "notify", config.NotifyRecipient, "notification recipient")

	fs.StringVar(&config.S3User, "u", config.S3User, "S3 user")
	fs.StringVar(&config.S3Password, "p", config.S3Password, "S3 password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3Endpoint, "e", config.S3Endpoint, "S3 base endpoint")

	fs.StringVar(&config.OTelEndpoint, "otel", config.OTelEndpoint, "OTLP/HTTP endpoint")
	cors := fs.String("cors", strings.Join(config.CORSOrigins, ","), "allowed CORS origins, comma-separated")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CORSOrigins = splitList(*cors)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
