// Package config handles configuration for the server component: defaults,
// an optional JSON or YAML file, ROLLCALL_* environment variables and
// finally command-line flags, in that order of precedence.
package config

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Config holds runtime settings for the rollcall server.
type Config struct {
	GRPCAddr      string `env:"GRPC_ADDR"`
	HTTPAddr      string `env:"HTTP_ADDR"`
	StorageDriver string `env:"STORAGE_DRIVER"`
	DatabaseDSN   string `env:"DATABASE_DSN"`
	// SecretKey signs session tokens (HS256). Do not use the default in prod.
	SecretKey string `env:"SECRET_KEY"`
	// ReportTimeZone is the IANA zone daily counts are bucketed in.
	ReportTimeZone string `env:"REPORT_TZ"`
	LogLevel       string `env:"LOG_LEVEL"`
	LogFormat      string `env:"LOG_FORMAT"`

	NotifyRecipient string `env:"NOTIFY_RECIPIENT"`

	S3User     string `env:"S3_USER"`
	S3Password string `env:"S3_PASSWORD"`
	S3Bucket   string `env:"S3_BUCKET"`
	S3Region   string `env:"S3_REGION"`
	S3Endpoint string `env:"S3_ENDPOINT"`

	// OTelEndpoint is the OTLP/HTTP collector; empty disables tracing export.
	OTelEndpoint string   `env:"OTEL_ENDPOINT"`
	CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:","`

	// BootstrapAdminPassword, when set, provisions the admin user at startup.
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.GRPCAddr = ":50051"
	c.HTTPAddr = ":8080"
	c.StorageDriver = "sqlite"
	c.DatabaseDSN = "rollcall.db"
	c.SecretKey = "secretKey"
	c.ReportTimeZone = "UTC"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.NotifyRecipient = "user@example.com"
	c.S3User = "admin"
	c.S3Password = "secretpassword"
	c.S3Bucket = "reports"
	c.S3Region = "us-east-1"
	c.S3Endpoint = "http://127.0.0.1:9000/"
	c.CORSOrigins = []string{"*"}
}

// Location resolves ReportTimeZone.
func (c *Config) Location() (*time.Location, error) {
	if c.ReportTimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.ReportTimeZone)
	if err != nil {
		return nil, fmt.Errorf("report time zone: %w", err)
	}
	return loc, nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment and command-line flags.
// It panics on malformed input, like the flag package does at startup.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
