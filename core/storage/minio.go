package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// compile-time check that minioClient satisfies the Client interface.
var _ Client = (*minioClient)(nil)

type minioClient struct {
	client *minio.Client
}

func newMinioClient(cfg Config) (*minioClient, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(timeout(cfg)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	// Minio connects lazily; transport timeouts keep the first request from hanging.

	return &minioClient{client: mc}, nil
}

func (c *minioClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	_, err := c.client.PutObject(ctx, bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return mapMinioErr(err)
}

func (c *minioClient) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	obj, err := c.client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	// GetObject is lazy; Stat issues the request so a missing key fails here instead of on Read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, mapMinioErr(err)
	}
	return obj, nil
}

func (c *minioClient) StatObject(ctx context.Context, bucketName, objectName string) (ObjectInfo, error) {
	info, err := c.client.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, mapMinioErr(err)
	}
	return fromMinioInfo(info), nil
}

func (c *minioClient) ListObjects(ctx context.Context, bucketName, prefix string) <-chan ObjectInfo {
	out := make(chan ObjectInfo)
	go func() {
		defer close(out)
		opts := minio.ListObjectsOptions{
			Prefix:    prefix,
			Recursive: true,
		}
		for obj := range c.client.ListObjects(ctx, bucketName, opts) {
			info := fromMinioInfo(obj)
			info.Err = mapMinioErr(obj.Err)
			select {
			case out <- info:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func fromMinioInfo(info minio.ObjectInfo) ObjectInfo {
	return ObjectInfo{
		Key:          info.Key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}
}

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchKey", resp.Code == "NotFound":
		return errors.Mark(err, ErrObjectNotFound)
	case resp.StatusCode == http.StatusNotFound && resp.Code != "NoSuchBucket":
		return errors.Mark(err, ErrObjectNotFound)
	default:
		return err
	}
}
