package storage

import "fmt"

const (
	ProviderMinio = "minio"
	ProviderS3    = "s3"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Provider selects the backend implementation (minio, s3).
	Provider string `mapstructure:"provider" default:"minio"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the default bucket used when a call does not name one.
	Bucket string `mapstructure:"bucket" default:""`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PathStyle forces path-style addressing on the s3 provider.
	PathStyle bool `mapstructure:"path_style" default:"false"`
}

// Validate checks that the configured provider is supported.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMinio, ProviderS3:
		return nil
	default:
		return fmt.Errorf("unknown storage provider: %q", c.Provider)
	}
}
