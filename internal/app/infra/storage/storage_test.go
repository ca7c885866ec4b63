package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/app/domains/tools/resolution"
	"printshop/internal/app/pkg/errorx"
)

type fakeRaster struct {
	img image.Image
	err error
}

func (f *fakeRaster) RenderFirstPage(context.Context, string, resolution.RenderOptions) (image.Image, error) {
	return f.img, f.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newStorage(t *testing.T, maxBytes int64, raster resolution.Rasterizer) *Storage {
	s, err := NewStorage(filepath.Join(t.TempDir(), "uploads"), maxBytes, raster, resolution.Limits{})
	require.NoError(t, err)
	return s
}

func TestSaveImage(t *testing.T) {
	s := newStorage(t, 1<<20, nil)

	up, err := s.Save(context.Background(), "art.png", bytes.NewReader(pngBytes(t, 40, 30)))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(up.Filename, "_art.png"))
	assert.Equal(t, 40, up.Width)
	assert.Equal(t, 30, up.Height)
	assert.False(t, up.Converted)

	path, err := s.Resolve(up.Filename)
	require.NoError(t, err)
	assert.Equal(t, up.Path, path)
}

func TestSaveStripsDirectories(t *testing.T) {
	s := newStorage(t, 1<<20, nil)

	up, err := s.Save(context.Background(), "../../etc/art.png", bytes.NewReader(pngBytes(t, 4, 4)))
	require.NoError(t, err)
	assert.Equal(t, s.Dir(), filepath.Dir(up.Path))
}

func TestSaveRejectsHEIC(t *testing.T) {
	s := newStorage(t, 1<<20, nil)

	_, err := s.Save(context.Background(), "photo.HEIC", strings.NewReader("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errorx.ErrUnsupportedUpload)
	assert.Contains(t, err.Error(), "convert to JPG or PNG")
}

func TestSaveRejectsUnknownType(t *testing.T) {
	s := newStorage(t, 1<<20, nil)

	_, err := s.Save(context.Background(), "notes.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, errorx.ErrUnsupportedUpload)
}

func TestSaveEnforcesLimit(t *testing.T) {
	s := newStorage(t, 10, nil)

	_, err := s.Save(context.Background(), "big.png", bytes.NewReader(make([]byte, 11)))
	assert.ErrorIs(t, err, errorx.ErrUploadTooLarge)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveConvertsPDF(t *testing.T) {
	s := newStorage(t, 1<<20, &fakeRaster{img: image.NewRGBA(image.Rect(0, 0, 60, 80))})

	up, err := s.Save(context.Background(), "flyer.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	assert.True(t, up.Converted)
	assert.True(t, strings.HasSuffix(up.Filename, "_flyer.jpg"))
	assert.Equal(t, 60, up.Width)
	assert.Equal(t, 80, up.Height)
}

func TestSavePDFConversionFailure(t *testing.T) {
	s := newStorage(t, 1<<20, &fakeRaster{err: errors.New("broken xref")})

	_, err := s.Save(context.Background(), "flyer.pdf", strings.NewReader("%PDF-1.4"))
	assert.ErrorIs(t, err, errorx.ErrConversionFailed)
}

func TestResolveFallsBackToConvertedExtension(t *testing.T) {
	s := newStorage(t, 1<<20, nil)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "abc_flyer.jpg"), []byte("x"), 0o600))

	path, err := s.Resolve("abc_flyer.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "abc_flyer.jpg"), path)
}

func TestResolveMissing(t *testing.T) {
	s := newStorage(t, 1<<20, nil)

	path, err := s.Resolve("nope.png")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, filepath.Join(s.Dir(), "nope.png"), path)
}
