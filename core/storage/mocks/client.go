package mocks

import (
	"context"
	"io"

	"objectio/core/storage"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *Client) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName)
	if obj, ok := args.Get(0).(io.ReadCloser); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) StatObject(ctx context.Context, bucketName, objectName string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName)
	if info, ok := args.Get(0).(storage.ObjectInfo); ok {
		return info, args.Error(1)
	}
	return storage.ObjectInfo{}, args.Error(1)
}

func (m *Client) ListObjects(ctx context.Context, bucketName, prefix string) <-chan storage.ObjectInfo {
	args := m.Called(ctx, bucketName, prefix)
	if ch, ok := args.Get(0).(<-chan storage.ObjectInfo); ok {
		return ch
	}
	ch := make(chan storage.ObjectInfo)
	close(ch)
	return ch
}
