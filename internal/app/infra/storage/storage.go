package storage

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/tiff"

	"printshop/internal/app/domains/tools/resolution"
	"printshop/internal/app/pkg/errorx"
)

// 转换后的文件可能使用的扩展名，Resolve 时按顺序回退
var fallbackExts = []string{".jpg", ".jpeg", ".png"}

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".tif":  true,
	".tiff": true,
}

// Upload 上传结果
type Upload struct {
	Filename  string `json:"filename"`
	Path      string `json:"-"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Converted bool   `json:"converted"`
}

// Storage 本地上传目录
type Storage struct {
	dir      string
	maxBytes int64
	raster   resolution.Rasterizer
	limits   resolution.Limits
}

// NewStorage 创建存储实例，目录不存在时自动创建
func NewStorage(dir string, maxBytes int64, raster resolution.Rasterizer, limits resolution.Limits) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if limits.PDFRenderDPI <= 0 {
		limits = resolution.DefaultLimits()
	}
	return &Storage{dir: dir, maxBytes: maxBytes, raster: raster, limits: limits}, nil
}

// Dir 上传目录
func (s *Storage) Dir() string {
	return s.dir
}

// Save 保存上传文件
// PDF 会把第一页转换为 JPEG，返回转换后的文件名
func (s *Storage) Save(ctx context.Context, filename string, r io.Reader) (*Upload, error) {
	base := filepath.Base(strings.TrimSpace(filename))
	ext := strings.ToLower(filepath.Ext(base))

	switch {
	case ext == ".heic" || ext == ".heif":
		return nil, errorx.NewBusinessError(http.StatusUnsupportedMediaType,
			"HEIC files are not supported, please convert to JPG or PNG before upload").Wrap(errorx.ErrUnsupportedUpload)
	case !allowedExts[ext]:
		return nil, errorx.NewBusinessError(http.StatusUnsupportedMediaType,
			fmt.Sprintf("unsupported file type %q", ext)).Wrap(errorx.ErrUnsupportedUpload)
	}

	name := uuid.NewString()[:8] + "_" + base
	path := filepath.Join(s.dir, name)
	if err := s.write(path, r); err != nil {
		return nil, err
	}

	up := &Upload{Filename: name, Path: path}
	if ext == ".pdf" {
		if err := s.convertPDF(ctx, up); err != nil {
			return nil, err
		}
	}

	if w, h, err := dimensions(up.Path); err == nil {
		up.Width, up.Height = w, h
	}
	return up, nil
}

func (s *Storage) write(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	limit := s.maxBytes
	if limit <= 0 {
		limit = 1 << 62
	}
	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write upload file: %w", err)
	}
	if n > limit {
		_ = os.Remove(path)
		return errorx.NewBusinessError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds the %d MB limit", limit>>20)).Wrap(errorx.ErrUploadTooLarge)
	}
	return nil
}

func (s *Storage) convertPDF(ctx context.Context, up *Upload) error {
	if s.raster == nil {
		return errorx.NewBusinessError(http.StatusUnprocessableEntity, "pdf conversion is not available").Wrap(errorx.ErrConversionFailed)
	}
	img, err := s.raster.RenderFirstPage(ctx, up.Path, resolution.RenderOptions{
		DPI:              s.limits.PDFRenderDPI,
		MaxPages:         s.limits.MaxPDFPages,
		MaxPixelsPerSide: s.limits.MaxPixelsPerSide,
	})
	if err != nil {
		return errorx.NewBusinessError(http.StatusUnprocessableEntity, "could not convert pdf: "+err.Error()).Wrap(errorx.ErrConversionFailed)
	}

	jpgPath := strings.TrimSuffix(up.Path, filepath.Ext(up.Path)) + ".jpg"
	f, err := os.Create(jpgPath)
	if err != nil {
		return fmt.Errorf("create converted file: %w", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		_ = os.Remove(jpgPath)
		return errorx.NewBusinessError(http.StatusUnprocessableEntity, "could not encode converted page").Wrap(errorx.ErrConversionFailed)
	}

	up.Path = jpgPath
	up.Filename = filepath.Base(jpgPath)
	up.Converted = true
	return nil
}

// Resolve 把文件名映射为上传目录中的路径
// 找不到时依次尝试转换后的扩展名；全部失败仍返回原始候选路径，由预检给出 file_not_found
func (s *Storage) Resolve(filename string) (string, error) {
	base := filepath.Base(strings.TrimSpace(filename))
	candidate := filepath.Join(s.dir, base)
	if exists(candidate) {
		return candidate, nil
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, ext := range fallbackExts {
		alt := filepath.Join(s.dir, stem+ext)
		if exists(alt) {
			return alt, nil
		}
	}
	return candidate, fmt.Errorf("%s: %w", base, os.ErrNotExist)
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// IsNotFound Resolve 的错误是否为文件不存在
func IsNotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
