// Package objectio reads and writes typed objects in object storage.
//
// A Service wraps a storage.Client and a default bucket. Every operation is a
// single synchronous round of storage calls; there is no caching, retrying or
// locking, and the last writer of a key wins.
//
// # Operations
//
//   - Exists, ReadBytes, WriteBytes, Size, ListKeys: raw object access.
//   - ReadDataFrame / WriteDataFrame: tables as parquet, csv, tsv or txt. The format
//     comes from an explicit override or the key's suffix and fails closed.
//   - ReadJSON / WriteJSON: JSON objects.
//   - ReadNumpyArray / WriteNumpyArray: NumPy .npy arrays.
//   - ReadJoblib / WriteJoblib: opaque serialized Go values (see package blob).
//
// # Errors
//
// ErrNotFound marks reads of missing objects ("File doesn't exist."), ErrInvalidFormat
// marks unsupported tabular formats, ErrNoBucket marks calls with no bucket at all.
// Backend failures are returned unchanged. Exists is the only operation that reports
// absence as a value.
//
// # Usage
//
//	svc := objectio.NewService(client, cfg.Storage.Bucket, logg)
//	df, err := svc.ReadDataFrame(ctx, "", "results/peptides.parquet", "")
//	if errors.Is(err, objectio.ErrNotFound) {
//	    ...
//	}
package objectio
