package objectio

import (
	"objectio/core/format"
	"objectio/core/storage"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	msgFileMissing     = "File doesn't exist."
	msgFileSizeMissing = "File doesn't exist. Couldn't retrieve file size."
)

var (
	// ErrNotFound is returned when the object being read does not exist.
	ErrNotFound = storage.ErrObjectNotFound

	// ErrInvalidFormat is returned when an explicit or inferred tabular format is not supported.
	ErrInvalidFormat = format.ErrInvalidFormat

	// ErrNoBucket is returned when a call names no bucket and the service has no default.
	ErrNoBucket = errors.New("no bucket given and no default bucket configured")
)

// Service reads and writes typed objects (dataframes, JSON, arrays, blobs) in object storage.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new object service. bucket is the default used when a call passes "".
func NewService(client storage.Client, bucket string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// DefaultBucket returns the bucket used when a call passes "".
func (s *Service) DefaultBucket() string {
	return s.bucket
}

func (s *Service) resolveBucket(bucket string) (string, error) {
	if bucket != "" {
		return bucket, nil
	}
	if s.bucket != "" {
		return s.bucket, nil
	}
	return "", ErrNoBucket
}

func notFound(msg string) error {
	return errors.Mark(errors.New(msg), ErrNotFound)
}
