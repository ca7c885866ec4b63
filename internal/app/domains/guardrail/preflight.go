package guardrail

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"printshop/internal/app/domains/tools/resolution"
)

// preflight 第二层：稿件分辨率检查
func (p *Pipeline) preflight(ctx context.Context, r *run) *Rejection {
	o := r.order
	size := o.Size()
	r.verdict.reason(fmt.Sprintf("Layer 2 (preflight): checking artwork resolution for %s print", size.Label()))

	if strings.TrimSpace(o.ArtworkPath()) == "" {
		r.verdict.reason("Layer 2 failed: no artwork file")
		return reject(LayerPreflight, "No artwork file provided")
	}

	res := p.resolution.CheckResolution(ctx, o.ArtworkPath(), size.Width, size.Height)
	r.file = res
	r.verdict.record(ToolInvocation{
		Name: resolution.ToolName,
		Arguments: map[string]interface{}{
			"file":          filepath.Base(o.ArtworkPath()),
			"width_inches":  size.Width,
			"height_inches": size.Height,
		},
		Result: res,
		Error:  res.Error,
	})

	if res.Failed() {
		r.verdict.reason("Layer 2 failed: " + res.Error)
		return reject(LayerPreflight, res.Error)
	}
	if !res.Valid {
		r.verdict.reason("Layer 2 failed: " + res.Message)
		return reject(LayerPreflight, res.Message)
	}

	if res.Quality == resolution.QualityAcceptable {
		r.verdict.warn(res.Message + ". Consider a higher-resolution file for best results")
	}
	p.checkBleed(r, res)

	r.verdict.reason("Layer 2 passed: " + res.Message)
	return nil
}

// checkBleed 像素不足以覆盖出血位时只给出提示
func (p *Pipeline) checkBleed(r *run, res *resolution.Result) {
	files := p.catalog.FileRequirements()
	if files.MinBleedInches <= 0 {
		return
	}
	size := r.order.Size()
	needW, needH := resolution.MinimumPixels(size.Width, size.Height, files.MinDPI, files.MinBleedInches)
	if res.PixelWidth >= needW && res.PixelHeight >= needH {
		return
	}
	r.verdict.warn(fmt.Sprintf(`Artwork %s does not cover the %v" bleed at %.0f DPI (need %dx%d pixels)`,
		res.PixelDimensions(), files.MinBleedInches, files.MinDPI, needW, needH))
}
