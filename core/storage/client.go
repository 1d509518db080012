package storage

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrObjectNotFound is returned (possibly wrapped) when the requested object does not exist.
// Check it with errors.Is.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	// Err is set on listing entries when the listing failed.
	Err error
}

// Client defines the storage primitives the object helpers depend on.
type Client interface {
	// PutObject uploads an object, overwriting any existing one.
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error
	// GetObject downloads an object. The caller must close the reader.
	GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error)
	// StatObject returns object metadata without downloading the payload.
	StatObject(ctx context.Context, bucketName, objectName string) (ObjectInfo, error)
	// ListObjects lists all objects under prefix, recursively.
	// The channel is closed when listing completes; a failure is reported as an entry with Err set.
	ListObjects(ctx context.Context, bucketName, prefix string) <-chan ObjectInfo
}

// NewClient creates a storage client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	if cfg.Provider == "" {
		cfg.Provider = ProviderMinio
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case ProviderS3:
		return newS3Client(context.Background(), cfg)
	default:
		return newMinioClient(cfg)
	}
}

// IsNotFound reports whether err means the object does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

func timeout(cfg Config) time.Duration {
	// Ensure timeout defaults if not set
	seconds := cfg.TimeoutSeconds
	if seconds <= 0 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}

// newTransport creates an HTTP transport with strict connection timeouts.
func newTransport(timeoutDuration time.Duration) *http.Transport {
	tr := &http.Transport{}
	applyTimeouts(tr, timeoutDuration)
	return tr
}

// applyTimeouts sets the connection limits shared by every backend on tr.
func applyTimeouts(tr *http.Transport, timeoutDuration time.Duration) {
	tr.Proxy = http.ProxyFromEnvironment
	tr.DialContext = (&net.Dialer{
		Timeout:   timeoutDuration, // Connection setup timeout
		KeepAlive: 30 * time.Second,
	}).DialContext
	tr.ForceAttemptHTTP2 = true
	tr.MaxIdleConns = 100
	tr.IdleConnTimeout = 90 * time.Second
	tr.TLSHandshakeTimeout = timeoutDuration
	tr.ExpectContinueTimeout = 1 * time.Second
	tr.ResponseHeaderTimeout = timeoutDuration // Wait for first response byte timeout
}
