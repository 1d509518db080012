package objectio

import (
	"context"

	"objectio/core/ndarray"

	"github.com/cockroachdb/errors"
)

// ReadNumpyArray reads a NumPy .npy array.
func (s *Service) ReadNumpyArray(ctx context.Context, bucket, key string) (*ndarray.Array, error) {
	data, err := s.ReadBytes(ctx, bucket, key)
	if err != nil {
		return nil, err
	}

	a, err := ndarray.DecodeNPY(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode array %q", key)
	}
	return a, nil
}

// WriteNumpyArray writes a as a NumPy .npy array.
func (s *Service) WriteNumpyArray(ctx context.Context, a *ndarray.Array, bucket, key string) error {
	if a == nil {
		return errors.New("array is nil")
	}
	data, err := ndarray.EncodeNPY(a)
	if err != nil {
		return errors.Wrap(err, "failed to encode array")
	}
	return s.WriteBytes(ctx, bucket, key, data)
}
