// file: internals/helpers/storage/memory.go
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"
)

// MemoryStore keeps objects in process memory. Used by tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string]Object
}

type Object struct {
	Data        []byte
	ContentType string
	Public      bool
}

func NewMemory(bucket string) *MemoryStore {
	return &MemoryStore{bucket: bucket, objects: map[string]Object{}}
}

func (m *MemoryStore) BucketName() string { return m.bucket }

func (m *MemoryStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.objects[key] = Object{Data: data, ContentType: contentType}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) MakePublic(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return ErrNotFound
	}
	obj.Public = true
	m.objects[key] = obj
	return nil
}

func (m *MemoryStore) SignedPutURL(_ context.Context, key, contentType string, ttl time.Duration) (string, error) {
	q := url.Values{}
	q.Set("content-type", contentType)
	q.Set("expires", fmt.Sprint(time.Now().Add(ttl).Unix()))
	return m.PublicURL(key) + "?" + q.Encode(), nil
}

func (m *MemoryStore) PublicURL(key string) string {
	return fmt.Sprintf("memory://%s/%s", m.bucket, key)
}

// Get returns a stored object; ok is false when the key is absent.
func (m *MemoryStore) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}
