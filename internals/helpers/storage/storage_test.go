package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msns_backend/internals/configs"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemory("school-files")
	assert.Equal(t, "school-files", s.BucketName())

	assert.ErrorIs(t, s.MakePublic(ctx, "missing"), ErrNotFound)

	require.NoError(t, s.Put(ctx, "uploads/a.pdf", strings.NewReader("%PDF"), "application/pdf"))
	obj, ok := s.Get("uploads/a.pdf")
	require.True(t, ok)
	assert.Equal(t, "application/pdf", obj.ContentType)
	assert.False(t, obj.Public)

	require.NoError(t, s.MakePublic(ctx, "uploads/a.pdf"))
	obj, _ = s.Get("uploads/a.pdf")
	assert.True(t, obj.Public)
	assert.Equal(t, "memory://school-files/uploads/a.pdf", s.PublicURL("uploads/a.pdf"))

	signed, err := s.SignedPutURL(ctx, "uploads/b.png", "image/png", time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "image/png", u.Query().Get("content-type"))
	assert.NotEmpty(t, u.Query().Get("expires"))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, s.Put(cancelled, "x", strings.NewReader("x"), "text/plain"))
}

func TestNewSelectsBackend(t *testing.T) {
	s, err := New(context.Background(), configs.StorageConfig{Driver: configs.StorageMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	assert.Equal(t, "local", s.BucketName())

	_, err = New(context.Background(), configs.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}

func TestDecodeImage(t *testing.T) {
	img, err := DecodeImage(pngBytes(t, 4, 3))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, image.NewRGBA(image.Rect(0, 0, 6, 2)), nil))
	img, err = DecodeImage(jpg.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())

	_, err = DecodeImage([]byte("plain text, not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = DecodeImage(nil)
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	// a png signature with a broken body
	broken := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	_, err = DecodeImage(broken)
	assert.True(t, errors.Is(err, ErrUnsupportedImage))
}

func TestDownscaleKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 500))
	out := Downscale(src, 200)
	assert.Equal(t, 200, out.Bounds().Dx())
	assert.Equal(t, 100, out.Bounds().Dy())

	small := image.NewRGBA(image.Rect(0, 0, 50, 80))
	assert.Same(t, small, Downscale(small, 200))
	assert.Same(t, small, Downscale(small, 0))
}

func TestToWebP(t *testing.T) {
	out, err := ToWebP(pngBytes(t, 64, 32), 16, 80)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(out[:4]))
	assert.Equal(t, "WEBP", string(out[8:12]))

	img, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}
