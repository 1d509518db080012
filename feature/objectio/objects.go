package objectio

import (
	"bytes"
	"context"
	"io"

	"objectio/core/format"
	"objectio/core/storage"
	"objectio/core/utils"

	"go.uber.org/zap"
)

// Exists reports whether the object exists. Absence is not an error; any other
// backend failure is.
func (s *Service) Exists(ctx context.Context, bucket, key string) (bool, error) {
	b, err := s.resolveBucket(bucket)
	if err != nil {
		return false, err
	}

	_, err = s.client.StatObject(ctx, b, key)
	if storage.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ReadBytes downloads the whole object.
func (s *Service) ReadBytes(ctx context.Context, bucket, key string) ([]byte, error) {
	b, err := s.resolveBucket(bucket)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, b, key)
}

func (s *Service) fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	rc, err := s.client.GetObject(ctx, bucket, key)
	if storage.IsNotFound(err) {
		return nil, notFound(msgFileMissing)
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if storage.IsNotFound(err) {
		return nil, notFound(msgFileMissing)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Read object", zap.String("bucket", bucket), zap.String("key", key), zap.Int("bytes", len(data)))
	return data, nil
}

// WriteBytes uploads data, overwriting any existing object.
func (s *Service) WriteBytes(ctx context.Context, bucket, key string, data []byte) error {
	b, err := s.resolveBucket(bucket)
	if err != nil {
		return err
	}

	if err := s.client.PutObject(ctx, b, key, bytes.NewReader(data), int64(len(data)), contentType(key)); err != nil {
		return err
	}

	s.logger.Debug("Wrote object", zap.String("bucket", b), zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func contentType(key string) string {
	if f, ok := format.Parse(format.Suffix(key)); ok {
		return f.ContentType()
	}
	return format.Unknown.ContentType()
}

// Size returns the object's size, human-readable ("628B") or, with raw set, as a
// plain byte count ("628").
func (s *Service) Size(ctx context.Context, bucket, key string, raw bool) (string, error) {
	b, err := s.resolveBucket(bucket)
	if err != nil {
		return "", err
	}

	info, err := s.client.StatObject(ctx, b, key)
	if storage.IsNotFound(err) {
		return "", notFound(msgFileSizeMissing)
	}
	if err != nil {
		return "", err
	}
	return utils.FormatSize(info.Size, raw), nil
}

// ListKeys returns every key under prefix. With fileType set, only keys whose suffix
// matches it (ignoring case and a leading dot) are returned. Order is unspecified.
func (s *Service) ListKeys(ctx context.Context, bucket, prefix, fileType string) ([]string, error) {
	b, err := s.resolveBucket(bucket)
	if err != nil {
		return nil, err
	}

	// Cancelling stops the listing goroutine if we return early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	want := format.Normalize(fileType)
	keys := []string{}
	for obj := range s.client.ListObjects(ctx, b, prefix) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if want != "" && format.Suffix(obj.Key) != want {
			continue
		}
		keys = append(keys, obj.Key)
	}

	s.logger.Debug("Listed objects", zap.String("bucket", b), zap.String("prefix", prefix), zap.String("file_type", want), zap.Int("count", len(keys)))
	return keys, nil
}
