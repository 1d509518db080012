// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production).
//
// # Run IDs
//
// WithRunID attaches a random run_id to a logger. The CLI tags each invocation with
// one so all lines it writes, including the object helper's debug lines, can be
// correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log)
//	log.Info("Listing objects", zap.String("prefix", prefix))
package logger
