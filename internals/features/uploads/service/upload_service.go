// file: internals/features/uploads/service/upload_service.go
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/uploads/dto"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/helpers/storage"
	"msns_backend/internals/rpc"
)

type Service struct {
	store storage.ObjectStore
	now   func() time.Time
	newID func() uuid.UUID
}

func New(store storage.ObjectStore) *Service {
	return &Service{store: store, now: time.Now, newID: uuid.New}
}

func (s *Service) WithClock(now func() time.Time) *Service { s.now = now; return s }

// SignedURL backs upload.getUploadUrl.
func (s *Service) SignedURL(ctx context.Context, in dto.UploadURLInput) (dto.UploadURLResponse, error) {
	key := constants.UploadPrefix + "/" + s.newID().String() + strings.ToLower(filepath.Ext(in.Filename))
	url, err := s.store.SignedPutURL(ctx, key, in.ContentType, constants.SignedURLTTL)
	if err != nil {
		return dto.UploadURLResponse{}, rpc.Internal("Unable to generate upload URL", err)
	}
	return dto.UploadURLResponse{
		URL:        url,
		ObjectName: key,
		PublicURL:  s.store.PublicURL(key),
	}, nil
}

// Upload stores a file as is under uploads/<unix ms>-<name> and makes it
// public.
func (s *Service) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if contentType == "" {
		contentType = constants.ContentTypeFromExt(filename)
	}
	key := fmt.Sprintf("%s/%d-%s", constants.UploadPrefix, s.now().UnixMilli(), helper.SanitizeFilename(filename))
	return s.putPublic(ctx, key, r, contentType)
}

// UploadAvatar re-encodes an image as WebP, capped at the avatar size.
func (s *Service) UploadAvatar(ctx context.Context, data []byte) (string, error) {
	out, err := storage.ToWebP(data, constants.AvatarMaxSide, constants.AvatarWebPQuality)
	if err != nil {
		return "", err
	}
	key := constants.AvatarPrefix + "/" + s.newID().String() + ".webp"
	return s.putPublic(ctx, key, bytes.NewReader(out), "image/webp")
}

func (s *Service) putPublic(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	if err := s.store.Put(ctx, key, r, contentType); err != nil {
		return "", err
	}
	if err := s.store.MakePublic(ctx, key); err != nil {
		return "", err
	}
	return s.store.PublicURL(key), nil
}
