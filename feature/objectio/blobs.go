package objectio

import (
	"context"

	"objectio/core/blob"

	"github.com/cockroachdb/errors"
)

// WriteJoblib serializes v into an opaque blob. Blobs are only meant to be read back by
// ReadJoblib into the same Go type.
func (s *Service) WriteJoblib(ctx context.Context, v any, bucket, key string) error {
	data, err := blob.Encode(v)
	if err != nil {
		return err
	}
	return s.WriteBytes(ctx, bucket, key, data)
}

// ReadJoblib deserializes a blob written by WriteJoblib into out, which must be a pointer.
func (s *Service) ReadJoblib(ctx context.Context, bucket, key string, out any) error {
	data, err := s.ReadBytes(ctx, bucket, key)
	if err != nil {
		return err
	}
	if err := blob.Decode(data, out); err != nil {
		return errors.Wrapf(err, "failed to decode object %q", key)
	}
	return nil
}
