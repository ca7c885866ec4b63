package resolution

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"printshop/internal/app/domains/entity/etcatalog"
)

// ErrTooManyPages PDF 页数超过上限
var ErrTooManyPages = errors.New("pdf has too many pages")

// ErrPageTooLarge PDF 页面按渲染 DPI 计算超过像素上限
var ErrPageTooLarge = errors.New("pdf page too large to render")

// RenderOptions PDF 渲染参数
type RenderOptions struct {
	DPI              float64
	MaxPages         int
	MaxPixelsPerSide int
}

// Rasterizer 把 PDF 第一页渲染成位图
type Rasterizer interface {
	RenderFirstPage(ctx context.Context, path string, opts RenderOptions) (image.Image, error)
}

// Limits 单次检查的资源上限
type Limits struct {
	MaxPixelsPerSide int     `mapstructure:"max_pixels_per_side"`
	MaxMegapixels    float64 `mapstructure:"max_megapixels"`
	MaxPDFPages      int     `mapstructure:"max_pdf_pages"`
	PDFRenderDPI     float64 `mapstructure:"pdf_render_dpi"`
}

// DefaultLimits 默认资源上限
func DefaultLimits() Limits {
	return Limits{
		MaxPixelsPerSide: 30000,
		MaxMegapixels:    300,
		MaxPDFPages:      50,
		PDFRenderDPI:     300,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxPixelsPerSide <= 0 {
		l.MaxPixelsPerSide = d.MaxPixelsPerSide
	}
	if l.MaxMegapixels <= 0 {
		l.MaxMegapixels = d.MaxMegapixels
	}
	if l.MaxPDFPages <= 0 {
		l.MaxPDFPages = d.MaxPDFPages
	}
	if l.PDFRenderDPI <= 0 {
		l.PDFRenderDPI = d.PDFRenderDPI
	}
	return l
}

var extFormats = map[string]string{
	".jpg":  "JPG",
	".jpeg": "JPG",
	".png":  "PNG",
	".pdf":  "PDF",
	".tif":  "TIFF",
	".tiff": "TIFF",
	".bmp":  "BMP",
	".gif":  "GIF",
	".webp": "WEBP",
	".heic": "HEIC",
}

// FormatOf 按扩展名识别格式，未知时返回扩展名大写
func FormatOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f
	}
	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}

// Checker 分辨率检查工具
type Checker struct {
	minDPI         float64
	recommendedDPI float64
	formats        []string
	limits         Limits
	raster         Rasterizer
}

// NewChecker 创建检查工具，raster 为 nil 时 PDF 无法检查
func NewChecker(req etcatalog.FileRequirements, limits Limits, raster Rasterizer) *Checker {
	return &Checker{
		minDPI:         req.MinDPI,
		recommendedDPI: req.RecommendedDPI,
		formats:        req.SupportedFormats,
		limits:         limits.withDefaults(),
		raster:         raster,
	}
}

// CheckResolution 计算稿件在目标尺寸下的有效 DPI
func (c *Checker) CheckResolution(ctx context.Context, path string, widthIn, heightIn float64) *Result {
	res := &Result{
		TargetWidth:    widthIn,
		TargetHeight:   heightIn,
		MinDPI:         c.minDPI,
		RecommendedDPI: c.recommendedDPI,
	}

	if !(widthIn > 0) || !(heightIn > 0) {
		return res.fail(ErrCodeInvalidTarget, "target size must be positive, got %vx%v", widthIn, heightIn)
	}
	if strings.TrimSpace(path) == "" {
		return res.fail(ErrCodeFileNotFound, "No artwork file provided")
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return res.fail(ErrCodeFileNotFound, "File not found: %s", filepath.Base(path))
	}

	res.Format = FormatOf(path)
	if !c.supports(res.Format) {
		res.SupportedFormats = append([]string(nil), c.formats...)
		return res.fail(ErrCodeUnsupportedFormat, "Unsupported file format: %s (supported: %s)",
			res.Format, strings.Join(c.formats, ", "))
	}

	if res.Format == "PDF" {
		c.measurePDF(ctx, path, res)
	} else {
		c.measureImage(path, res)
	}
	if res.Failed() {
		return res
	}

	c.evaluate(res)
	return res
}

func (c *Checker) supports(format string) bool {
	for _, f := range c.formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

func (c *Checker) measureImage(path string, res *Result) {
	f, err := os.Open(path)
	if err != nil {
		res.fail(ErrCodeFileNotFound, "File not found: %s", filepath.Base(path))
		return
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		res.fail(ErrCodeDecode, "Could not read image %s: %v", filepath.Base(path), err)
		return
	}
	if !c.withinLimits(cfg.Width, cfg.Height, res) {
		return
	}

	// 完整解码一次，确认文件没有截断或损坏
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		res.fail(ErrCodeDecode, "Could not read image %s: %v", filepath.Base(path), err)
		return
	}
	if _, _, err := image.Decode(f); err != nil {
		res.fail(ErrCodeDecode, "Image %s is corrupt: %v", filepath.Base(path), err)
		return
	}

	res.PixelWidth, res.PixelHeight = cfg.Width, cfg.Height

	if _, err := f.Seek(0, io.SeekStart); err == nil {
		res.MetadataDPI = readMetadataDPI(res.Format, f)
	}
}

func (c *Checker) measurePDF(ctx context.Context, path string, res *Result) {
	if c.raster == nil {
		res.fail(ErrCodeDecode, "PDF rendering is not available")
		return
	}

	img, err := c.raster.RenderFirstPage(ctx, path, RenderOptions{
		DPI:              c.limits.PDFRenderDPI,
		MaxPages:         c.limits.MaxPDFPages,
		MaxPixelsPerSide: c.limits.MaxPixelsPerSide,
	})
	switch {
	case errors.Is(err, ErrTooManyPages):
		res.fail(ErrCodeTooLarge, "PDF exceeds %d pages", c.limits.MaxPDFPages)
		return
	case errors.Is(err, ErrPageTooLarge):
		res.fail(ErrCodeTooLarge, "PDF page exceeds %d pixels per side at %.0f DPI",
			c.limits.MaxPixelsPerSide, c.limits.PDFRenderDPI)
		return
	case err != nil:
		res.fail(ErrCodeDecode, "Could not render PDF %s: %v", filepath.Base(path), err)
		return
	}

	b := img.Bounds()
	if !c.withinLimits(b.Dx(), b.Dy(), res) {
		return
	}
	res.PixelWidth, res.PixelHeight = b.Dx(), b.Dy()
	res.MetadataDPI = c.limits.PDFRenderDPI
}

func (c *Checker) withinLimits(w, h int, res *Result) bool {
	if w <= 0 || h <= 0 {
		res.fail(ErrCodeDecode, "Image has no pixels (%dx%d)", w, h)
		return false
	}
	if w > c.limits.MaxPixelsPerSide || h > c.limits.MaxPixelsPerSide {
		res.fail(ErrCodeTooLarge, "Image %dx%d exceeds %d pixels per side", w, h, c.limits.MaxPixelsPerSide)
		return false
	}
	if float64(w)*float64(h)/1e6 > c.limits.MaxMegapixels {
		res.fail(ErrCodeTooLarge, "Image %dx%d exceeds %.0f megapixels", w, h, c.limits.MaxMegapixels)
		return false
	}
	return true
}

func (c *Checker) evaluate(res *Result) {
	res.DPIWidth, res.DPIHeight, res.EffectiveDPI = EffectiveDPI(
		res.PixelWidth, res.PixelHeight, res.TargetWidth, res.TargetHeight)

	res.MeetsMinimum = MeetsDPI(res.PixelWidth, res.PixelHeight, res.TargetWidth, res.TargetHeight, c.minDPI)
	res.MeetsRecommended = MeetsDPI(res.PixelWidth, res.PixelHeight, res.TargetWidth, res.TargetHeight, c.recommendedDPI)
	res.Valid = res.MeetsMinimum

	switch {
	case res.MeetsRecommended:
		res.Quality = QualityHigh
		res.Message = fmt.Sprintf("Excellent quality: %.1f DPI (Recommended: %.0f+ DPI)",
			res.EffectiveDPI, c.recommendedDPI)
	case res.MeetsMinimum:
		res.Quality = QualityAcceptable
		res.Message = fmt.Sprintf("Acceptable quality: %.1f DPI (Minimum: %.0f DPI, Recommended: %.0f+ DPI)",
			res.EffectiveDPI, c.minDPI, c.recommendedDPI)
	default:
		res.Quality = QualityLow
		needW, needH := MinimumPixels(res.TargetWidth, res.TargetHeight, c.minDPI, 0)
		res.Message = fmt.Sprintf("Resolution too low: %.1f DPI (Minimum required: %.0f DPI). Need at least %dx%d pixels for %vx%v inches",
			res.EffectiveDPI, c.minDPI, needW, needH, res.TargetWidth, res.TargetHeight)
	}
}
