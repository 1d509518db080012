package objectio

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"objectio/core/storage"
)

// memStore is an in-memory storage.Client used for round-trip tests.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStore) path(bucket, key string) string {
	return bucket + "/" + key
}

func (m *memStore) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[m.path(bucketName, objectName)] = data
	m.types[m.path(bucketName, objectName)] = contentType
	return nil
}

func (m *memStore) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[m.path(bucketName, objectName)]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) StatObject(ctx context.Context, bucketName, objectName string) (storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[m.path(bucketName, objectName)]
	if !ok {
		return storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	return storage.ObjectInfo{Key: objectName, Size: int64(len(data))}, nil
}

func (m *memStore) ListObjects(ctx context.Context, bucketName, prefix string) <-chan storage.ObjectInfo {
	m.mu.Lock()
	var infos []storage.ObjectInfo
	for path, data := range m.objects {
		key, ok := strings.CutPrefix(path, bucketName+"/")
		if ok && strings.HasPrefix(key, prefix) {
			infos = append(infos, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	m.mu.Unlock()

	ch := make(chan storage.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}
