// file: internals/helpers/storage/store.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"msns_backend/internals/configs"
)

var ErrNotFound = errors.New("storage: object not found")

// ObjectStore is the bucket surface used by uploads and signed URLs.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	MakePublic(ctx context.Context, key string) error
	SignedPutURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PublicURL(key string) string
	BucketName() string
}

// New picks the driver named by cfg.Driver.
func New(ctx context.Context, cfg configs.StorageConfig) (ObjectStore, error) {
	switch cfg.Driver {
	case configs.StorageGCS:
		return NewGCS(ctx, cfg.GCPBucketName, cfg.GCPServiceAccountKey)
	case configs.StorageOSS:
		return NewOSS(cfg.OSSEndpoint, cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret, cfg.OSSBucketName, cfg.OSSPublicBaseURL)
	case configs.StorageMemory:
		return NewMemory("local"), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
