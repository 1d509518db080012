// Package config provides configuration management for objectio.
//
// It utilizes Viper for loading configuration from environment variables, with an
// optional .env file loaded first through godotenv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into subsections:
//   - Storage: provider, endpoint, credentials and the default bucket
//   - Log: Logging level and format
//
// Environment variables map to nested keys by replacing dots with underscores
// (STORAGE_ENDPOINT -> storage.endpoint). The default bucket is read from
// STORAGE_BUCKET, falling back to PROJECT_BUCKET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
