package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msns_backend/internals/features/uploads/dto"
	"msns_backend/internals/helpers/storage"
	"msns_backend/internals/rpc"
)

var (
	fixedNow = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	fixedID  = uuid.MustParse("8b0f3c2e-6a53-4f5e-9d1c-3c8a2b7e9f10")
)

func newService() (*Service, *storage.MemoryStore) {
	store := storage.NewMemory("school")
	svc := New(store).WithClock(func() time.Time { return fixedNow })
	svc.newID = func() uuid.UUID { return fixedID }
	return svc, store
}

func TestSignedURL(t *testing.T) {
	svc, _ := newService()
	out, err := svc.SignedURL(context.Background(), dto.UploadURLInput{Filename: "Result Card.PDF", ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, "uploads/"+fixedID.String()+".pdf", out.ObjectName)
	assert.Equal(t, "memory://school/"+out.ObjectName, out.PublicURL)
	assert.True(t, strings.HasPrefix(out.URL, out.PublicURL+"?"))
}

type failingStore struct{ *storage.MemoryStore }

func (failingStore) SignedPutURL(context.Context, string, string, time.Duration) (string, error) {
	return "", errors.New("no credentials")
}

func (failingStore) Put(context.Context, string, io.Reader, string) error {
	return errors.New("bucket unavailable")
}

func TestSignedURLFailure(t *testing.T) {
	svc := New(failingStore{storage.NewMemory("x")})
	_, err := svc.SignedURL(context.Background(), dto.UploadURLInput{Filename: "a.png", ContentType: "image/png"})
	require.Error(t, err)
	e := rpc.AsError(err)
	assert.Equal(t, rpc.CodeInternal, e.Code)
	assert.Equal(t, "Unable to generate upload URL", e.Message)

	_, err = svc.Upload(context.Background(), "a.txt", "text/plain", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestUploadIsPublic(t *testing.T) {
	svc, store := newService()
	url, err := svc.Upload(context.Background(), "Lab Report (1).PDF", "", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	key := "uploads/1746867600000-lab-report-1.pdf"
	assert.Equal(t, "memory://school/"+key, url)
	obj, ok := store.Get(key)
	require.True(t, ok)
	assert.True(t, obj.Public)
	assert.Equal(t, "application/pdf", obj.ContentType)
	assert.Equal(t, "%PDF-1.4", string(obj.Data))
}

func TestUploadAvatar(t *testing.T) {
	svc, store := newService()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1024, 768))))

	url, err := svc.UploadAvatar(context.Background(), buf.Bytes())
	require.NoError(t, err)
	key := "avatars/" + fixedID.String() + ".webp"
	assert.Equal(t, "memory://school/"+key, url)

	obj, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, "image/webp", obj.ContentType)

	_, err = svc.UploadAvatar(context.Background(), []byte("GIF? no"))
	assert.ErrorIs(t, err, storage.ErrUnsupportedImage)
}
