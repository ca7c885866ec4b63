package raster

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/gen2brain/go-fitz"

	"printshop/internal/app/domains/tools/resolution"
)

// pdfPointsPerInch MuPDF 页面尺寸单位
const pdfPointsPerInch = 72

// FitzRasterizer 基于 MuPDF 的 PDF 渲染器
type FitzRasterizer struct{}

// NewFitzRasterizer 创建渲染器
func NewFitzRasterizer() *FitzRasterizer {
	return &FitzRasterizer{}
}

// RenderFirstPage 渲染 PDF 第一页
// 先检查页数和页面尺寸，再按 opts.DPI 渲染
func (r *FitzRasterizer) RenderFirstPage(ctx context.Context, path string, opts resolution.RenderOptions) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages < 1 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	if opts.MaxPages > 0 && pages > opts.MaxPages {
		return nil, fmt.Errorf("%w: %d > %d", resolution.ErrTooManyPages, pages, opts.MaxPages)
	}

	bound, err := doc.Bound(0)
	if err != nil {
		return nil, fmt.Errorf("read page bounds: %w", err)
	}
	scale := opts.DPI / pdfPointsPerInch
	w := int(math.Ceil(float64(bound.Dx()) * scale))
	h := int(math.Ceil(float64(bound.Dy()) * scale))
	if opts.MaxPixelsPerSide > 0 && (w > opts.MaxPixelsPerSide || h > opts.MaxPixelsPerSide) {
		return nil, fmt.Errorf("%w: %dx%d at %.0f dpi", resolution.ErrPageTooLarge, w, h, opts.DPI)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := doc.ImageDPI(0, opts.DPI)
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return img, nil
}
