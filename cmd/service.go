package cmd

import (
	"fmt"

	"objectio/core/config"
	"objectio/core/logger"
	"objectio/core/storage"
	"objectio/feature/objectio"

	"go.uber.org/zap"
)

// newService loads configuration from the working directory and builds a Service.
// The --bucket flag replaces the configured default bucket.
func newService() (*objectio.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logg = logger.WithRunID(logg)

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	bucket := cfg.Storage.Bucket
	if bucketFlag != "" {
		bucket = bucketFlag
	}
	return objectio.NewService(client, bucket, logg), logg, nil
}
