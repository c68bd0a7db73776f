// Package config reads the function configuration from the environment.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/sh3r4rd/bucket_links/internal/policy"
	"github.com/sh3r4rd/bucket_links/internal/storage"
)

// Environment keys.
const (
	KeyBucketName     = "bucket_name"
	KeyProtectedFiles = "protected_files"
	KeyAWSRegion      = "aws_region"
	KeyS3Endpoint     = "s3_endpoint"
	KeyS3AccessKey    = "s3_access_key_id"
	KeyS3SecretKey    = "s3_secret_access_key"
	KeyLogLevel       = "log_level"
	KeyLogJSON        = "log_json"
)

// ErrMissingBucket is returned when BUCKET_NAME is unset.
var ErrMissingBucket = errors.New("config: BUCKET_NAME is required")

// Config is the deployment configuration shared by all functions.
type Config struct {
	BucketName    string
	ProtectedKeys policy.ProtectedKeySet
	Storage       storage.Options
	LogLevel      string
	LogJSON       bool
}

// NewViper returns a viper instance bound to the process environment with
// the defaults set.
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogJSON, true)
	return v
}

// Load reads the environment.
func Load() (*Config, error) {
	return FromViper(NewViper())
}

// FromViper builds a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		BucketName:    v.GetString(KeyBucketName),
		ProtectedKeys: policy.ParseProtectedKeys(v.GetString(KeyProtectedFiles)),
		Storage: storage.Options{
			Region:    v.GetString(KeyAWSRegion),
			Endpoint:  v.GetString(KeyS3Endpoint),
			AccessKey: v.GetString(KeyS3AccessKey),
			SecretKey: v.GetString(KeyS3SecretKey),
		},
		LogLevel: v.GetString(KeyLogLevel),
		LogJSON:  v.GetBool(KeyLogJSON),
	}
	if cfg.BucketName == "" {
		return nil, ErrMissingBucket
	}
	return cfg, nil
}
