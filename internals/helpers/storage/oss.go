// file: internals/helpers/storage/oss.go
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/rs/zerolog/log"
)

type OSSStore struct {
	bucket     *oss.Bucket
	endpoint   string
	bucketName string
	publicBase string
}

func NewOSS(endpoint, accessKey, secretKey, bucketName, publicBase string) (*OSSStore, error) {
	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Warn().Str("bucket", bucketName).Msg("oss: skipping location check, access denied")
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Debug().Str("bucket", bucketName).Str("location", loc).Msg("oss bucket ready")
	}

	return &OSSStore{
		bucket:     bkt,
		endpoint:   endpoint,
		bucketName: bucketName,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

func (s *OSSStore) BucketName() string { return s.bucketName }

func (s *OSSStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.bucket.PutObject(key, r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	)
}

func (s *OSSStore) MakePublic(ctx context.Context, key string) error {
	err := s.bucket.SetObjectACL(key, oss.ACLPublicRead, oss.WithContext(ctx))
	if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 404 {
		return ErrNotFound
	}
	return err
}

func (s *OSSStore) SignedPutURL(_ context.Context, key, contentType string, ttl time.Duration) (string, error) {
	return s.bucket.SignURL(key, oss.HTTPPut, int64(ttl.Seconds()), oss.ContentType(contentType))
}

func (s *OSSStore) PublicURL(key string) string {
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, end, key)
}
