package resolution

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/app/domains/entity/etcatalog/catalogtest"
)

func newChecker(t *testing.T, raster Rasterizer) *Checker {
	catalog, _ := catalogtest.New(t)
	return NewChecker(catalog.FileRequirements(), Limits{}, raster)
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// withPHYs inserts a pHYs chunk right after IHDR
func withPHYs(data []byte, dpi float64) []byte {
	ppm := uint32(dpi/0.0254 + 0.5)
	body := make([]byte, 9)
	binary.BigEndian.PutUint32(body[0:4], ppm)
	binary.BigEndian.PutUint32(body[4:8], ppm)
	body[8] = 1

	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, 9)
	chunk = append(chunk, "pHYs"...)
	chunk = append(chunk, body...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(append([]byte("pHYs"), body...)))

	const ihdrEnd = 8 + 4 + 4 + 13 + 4
	out := append([]byte{}, data[:ihdrEnd]...)
	out = append(out, chunk...)
	return append(out, data[ihdrEnd:]...)
}

func TestCheckResolutionTiers(t *testing.T) {
	checker := newChecker(t, nil)

	tests := []struct {
		name    string
		w, h    int
		valid   bool
		quality Quality
		dpi     float64
	}{
		{"recommended", 2400, 3000, true, QualityHigh, 300},
		{"exactly minimum", 1800, 2250, true, QualityAcceptable, 225},
		{"one below minimum", 1792, 2240, false, QualityLow, 224},
		{"limited by narrow side", 2400, 2000, false, QualityLow, 200},
		{"low", 800, 1000, false, QualityLow, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "art.png", encodePNG(t, tt.w, tt.h))
			res := checker.CheckResolution(context.Background(), path, 8, 10)

			require.False(t, res.Failed(), res.Error)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.quality, res.Quality)
			assert.InDelta(t, tt.dpi, res.EffectiveDPI, 1e-9)
			assert.Equal(t, "PNG", res.Format)
		})
	}
}

func TestEffectiveDPIIsMinimumOfAxes(t *testing.T) {
	dpiW, dpiH, eff := EffectiveDPI(3000, 2000, 10, 8)
	assert.InDelta(t, 300, dpiW, 1e-9)
	assert.InDelta(t, 250, dpiH, 1e-9)
	assert.InDelta(t, 250, eff, 1e-9)
}

func TestCheckResolutionLowMessageNamesRequiredPixels(t *testing.T) {
	path := writeFile(t, "small.png", encodePNG(t, 800, 1000))
	res := newChecker(t, nil).CheckResolution(context.Background(), path, 8, 10)

	assert.Contains(t, res.Message, "1800x2250")
	assert.Equal(t, "800x1000", res.PixelDimensions())
}

func TestCheckResolutionFileErrors(t *testing.T) {
	checker := newChecker(t, nil)
	ctx := context.Background()

	res := checker.CheckResolution(ctx, "", 8, 10)
	assert.Equal(t, ErrCodeFileNotFound, res.ErrorCode)
	assert.False(t, res.Valid)

	res = checker.CheckResolution(ctx, filepath.Join(t.TempDir(), "missing.png"), 8, 10)
	assert.Equal(t, ErrCodeFileNotFound, res.ErrorCode)

	heic := writeFile(t, "photo.heic", []byte("ftypheic"))
	res = checker.CheckResolution(ctx, heic, 8, 10)
	assert.Equal(t, ErrCodeUnsupportedFormat, res.ErrorCode)
	assert.Equal(t, []string{"JPG", "PNG", "PDF", "TIFF"}, res.SupportedFormats)
	assert.Contains(t, res.Error, "HEIC")

	res = checker.CheckResolution(ctx, writeFile(t, "a.png", encodePNG(t, 10, 10)), 0, 10)
	assert.Equal(t, ErrCodeInvalidTarget, res.ErrorCode)
}

func TestCheckResolutionCorruptFiles(t *testing.T) {
	checker := newChecker(t, nil)
	ctx := context.Background()

	garbage := writeFile(t, "garbage.png", []byte("definitely not a png"))
	res := checker.CheckResolution(ctx, garbage, 8, 10)
	assert.Equal(t, ErrCodeDecode, res.ErrorCode)
	assert.False(t, res.Valid)

	full := encodePNG(t, 2400, 3000)
	truncated := writeFile(t, "truncated.png", full[:len(full)/2])
	res = checker.CheckResolution(ctx, truncated, 8, 10)
	assert.Equal(t, ErrCodeDecode, res.ErrorCode)

	fakeJPEG := writeFile(t, "fake.jpg", []byte{0xff, 0xd8, 0x00})
	res = checker.CheckResolution(ctx, fakeJPEG, 8, 10)
	assert.Equal(t, ErrCodeDecode, res.ErrorCode)
}

func TestCheckResolutionPixelGuard(t *testing.T) {
	catalog, _ := catalogtest.New(t)
	checker := NewChecker(catalog.FileRequirements(), Limits{MaxPixelsPerSide: 1000}, nil)

	path := writeFile(t, "big.png", encodePNG(t, 1200, 900))
	res := checker.CheckResolution(context.Background(), path, 4, 3)
	assert.Equal(t, ErrCodeTooLarge, res.ErrorCode)

	checker = NewChecker(catalog.FileRequirements(), Limits{MaxMegapixels: 0.5}, nil)
	res = checker.CheckResolution(context.Background(), path, 4, 3)
	assert.Equal(t, ErrCodeTooLarge, res.ErrorCode)
}

func TestCheckResolutionReadsPNGMetadata(t *testing.T) {
	path := writeFile(t, "dpi.png", withPHYs(encodePNG(t, 2400, 3000), 300))
	res := newChecker(t, nil).CheckResolution(context.Background(), path, 8, 10)

	require.False(t, res.Failed(), res.Error)
	assert.InDelta(t, 300, res.MetadataDPI, 0.5)
	assert.InDelta(t, 300, res.EffectiveDPI, 1e-9)
}

func TestMetadataDoesNotAffectEffectiveDPI(t *testing.T) {
	// claims 600 dpi but only has 100 dpi worth of pixels at 8x10
	path := writeFile(t, "liar.png", withPHYs(encodePNG(t, 800, 1000), 600))
	res := newChecker(t, nil).CheckResolution(context.Background(), path, 8, 10)

	assert.InDelta(t, 600, res.MetadataDPI, 0.5)
	assert.False(t, res.Valid)
	assert.Equal(t, QualityLow, res.Quality)
}

type fakeRaster struct {
	img   image.Image
	err   error
	calls int
	opts  RenderOptions
}

func (f *fakeRaster) RenderFirstPage(_ context.Context, _ string, opts RenderOptions) (image.Image, error) {
	f.calls++
	f.opts = opts
	return f.img, f.err
}

func TestCheckResolutionPDF(t *testing.T) {
	raster := &fakeRaster{img: image.NewGray(image.Rect(0, 0, 2550, 3300))}
	checker := newChecker(t, raster)
	path := writeFile(t, "flyer.pdf", []byte("%PDF-1.4"))

	res := checker.CheckResolution(context.Background(), path, 8.5, 11)
	require.False(t, res.Failed(), res.Error)
	assert.Equal(t, 1, raster.calls)
	assert.Equal(t, "PDF", res.Format)
	assert.InDelta(t, 300, res.EffectiveDPI, 1e-9)
	assert.Equal(t, float64(300), raster.opts.DPI)
	assert.Equal(t, 50, raster.opts.MaxPages)
}

func TestCheckResolutionPDFErrors(t *testing.T) {
	path := writeFile(t, "flyer.pdf", []byte("%PDF-1.4"))
	ctx := context.Background()

	res := newChecker(t, nil).CheckResolution(ctx, path, 8.5, 11)
	assert.Equal(t, ErrCodeDecode, res.ErrorCode)

	res = newChecker(t, &fakeRaster{err: ErrTooManyPages}).CheckResolution(ctx, path, 8.5, 11)
	assert.Equal(t, ErrCodeTooLarge, res.ErrorCode)

	res = newChecker(t, &fakeRaster{err: ErrPageTooLarge}).CheckResolution(ctx, path, 8.5, 11)
	assert.Equal(t, ErrCodeTooLarge, res.ErrorCode)
}

func TestMinimumPixels(t *testing.T) {
	w, h := MinimumPixels(8, 10, 300, 0.125)
	assert.Equal(t, 2475, w)
	assert.Equal(t, 3075, h)

	w, h = MinimumPixels(8, 10, 225, 0)
	assert.Equal(t, 1800, w)
	assert.Equal(t, 2250, h)

	w, h = MinimumPixels(8.8, 11, 225, 0)
	assert.Equal(t, 1980, w)
	assert.Equal(t, 2475, h)

	w, h = MinimumPixels(5.4, 6, 225, 0)
	assert.Equal(t, 1215, w)
	assert.Equal(t, 1350, h)
}

func TestCheckResolutionNonIntegerSizeBoundary(t *testing.T) {
	checker := newChecker(t, nil)

	tests := []struct {
		name         string
		w, h         int
		widthIn, hIn float64
		valid        bool
	}{
		{"8.8x11 at minimum", 1980, 2475, 8.8, 11, true},
		{"8.8x11 one pixel short", 1979, 2475, 8.8, 11, false},
		{"5.4x6 at minimum", 1215, 1350, 5.4, 6, true},
		{"5.4x6 one pixel short", 1215, 1349, 5.4, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "art.png", encodePNG(t, tt.w, tt.h))
			res := checker.CheckResolution(context.Background(), path, tt.widthIn, tt.hIn)

			require.False(t, res.Failed(), res.Error)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.valid {
				assert.Equal(t, QualityAcceptable, res.Quality)
				assert.Equal(t, float64(225), res.EffectiveDPI)
			} else {
				assert.Equal(t, QualityLow, res.Quality)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, "JPG", FormatOf("a.JPEG"))
	assert.Equal(t, "TIFF", FormatOf("/x/y.tif"))
	assert.Equal(t, "HEIC", FormatOf("p.heic"))
	assert.Equal(t, "XYZ", FormatOf("p.xyz"))
}
