package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/rollcall/internal/flagx"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Empty values leave
// the corresponding setting untouched.
type FileConfig struct {
	GRPCAddr               string   `json:"grpc_addr" yaml:"grpc_addr"`
	HTTPAddr               string   `json:"http_addr" yaml:"http_addr"`
	StorageDriver          string   `json:"storage_driver" yaml:"storage_driver"`
	DatabaseDSN            string   `json:"database_dsn" yaml:"database_dsn"`
	SecretKey              string   `json:"secret_key" yaml:"secret_key"`
	ReportTimeZone         string   `json:"report_time_zone" yaml:"report_time_zone"`
	LogLevel               string   `json:"log_level" yaml:"log_level"`
	LogFormat              string   `json:"log_format" yaml:"log_format"`
	NotifyRecipient        string   `json:"notify_recipient" yaml:"notify_recipient"`
	S3User                 string   `json:"s3_user" yaml:"s3_user"`
	S3Password             string   `json:"s3_password" yaml:"s3_password"`
	S3Bucket               string   `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region               string   `json:"s3_region" yaml:"s3_region"`
	S3Endpoint             string   `json:"s3_endpoint" yaml:"s3_endpoint"`
	OTelEndpoint           string   `json:"otel_endpoint" yaml:"otel_endpoint"`
	CORSOrigins            []string `json:"cors_origins" yaml:"cors_origins"`
	BootstrapAdminPassword string   `json:"bootstrap_admin_password" yaml:"bootstrap_admin_password"`
}

// parseFile loads the file named by -c/-config, if any, into config.
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
// An unreadable or malformed file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlags()

	// nothing to load
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&config.GRPCAddr, c.GRPCAddr)
	set(&config.HTTPAddr, c.HTTPAddr)
	set(&config.StorageDriver, c.StorageDriver)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.ReportTimeZone, c.ReportTimeZone)
	set(&config.LogLevel, c.LogLevel)
	set(&config.LogFormat, c.LogFormat)
	set(&config.NotifyRecipient, c.NotifyRecipient)
	set(&config.S3User, c.S3User)
	set(&config.S3Password, c.S3Password)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3Endpoint, c.S3Endpoint)
	set(&config.OTelEndpoint, c.OTelEndpoint)
	set(&config.BootstrapAdminPassword, c.BootstrapAdminPassword)
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
}
