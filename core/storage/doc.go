// Package storage provides an abstraction layer for object storage services.
//
// It reduces a backend to the four primitives the object helpers need: put, get,
// stat (head) and list by prefix. Two backends are provided: a MinIO Go client
// adapter for self-hosted MinIO and S3-compatible services, and an AWS SDK v2
// adapter for Amazon S3.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Errors
//
// Both adapters mark "object does not exist" responses with ErrObjectNotFound so
// callers can test for absence with errors.Is (or IsNotFound) regardless of backend.
// Every other failure is returned unchanged.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	info, err := client.StatObject(ctx, "data", "results.parquet")
package storage
