package guardrail

import (
	"context"
	"strings"

	"printshop/internal/app/domains/entity/etcatalog"
	"printshop/internal/app/domains/entity/etorder"
	"printshop/internal/app/domains/tools/inventory"
	"printshop/internal/app/domains/tools/pricing"
	"printshop/internal/app/domains/tools/resolution"
	"printshop/pkg/logger"
)

// InventoryChecker 库存检查工具
type InventoryChecker interface {
	CheckAvailability(paperStock, color, finish string) *inventory.Result
}

// ResolutionChecker 分辨率检查工具
type ResolutionChecker interface {
	CheckResolution(ctx context.Context, path string, widthIn, heightIn float64) *resolution.Result
}

// PriceCalculator 报价工具
type PriceCalculator interface {
	CalculatePrice(req pricing.Request) (*pricing.Breakdown, error)
}

// Pipeline 护栏流水线
// 自身无可变状态，单次运行的状态都在 run 中
type Pipeline struct {
	catalog    *etcatalog.Catalog
	inventory  InventoryChecker
	resolution ResolutionChecker
	pricing    PriceCalculator
	logger     logger.Logger
}

// NewPipeline 创建护栏流水线
func NewPipeline(
	catalog *etcatalog.Catalog,
	inv InventoryChecker,
	res ResolutionChecker,
	price PriceCalculator,
	log logger.Logger,
) *Pipeline {
	return &Pipeline{
		catalog:    catalog,
		inventory:  inv,
		resolution: res,
		pricing:    price,
		logger:     log,
	}
}

// run 单次校验的状态
type run struct {
	order     *etorder.OrderRequest
	verdict   *Verdict
	inventory *inventory.Result
	file      *resolution.Result
	price     *pricing.Breakdown
}

type layerFunc func(ctx context.Context, r *run) *Rejection

type step struct {
	layer Layer
	next  Stage
	fn    layerFunc
}

// Run 依次执行各层，任一层拒绝即停止
func (p *Pipeline) Run(ctx context.Context, order *etorder.OrderRequest) *Verdict {
	r := &run{order: order, verdict: newVerdict()}

	steps := []step{
		{LayerSpecCheck, StagePreflight, p.specCheck},
		{LayerPreflight, StagePricingAndInventory, p.preflight},
		{LayerPricingOrInventory, StageOutputGuardrail, p.pricingAndInventory},
		{LayerOutputGuardrail, StageAccepted, p.outputGuardrail},
	}

	for _, s := range steps {
		if rej := s.fn(ctx, r); rej != nil {
			r.verdict.reject(rej)
			p.logRejection(ctx, rej)
			return r.verdict
		}
		r.verdict.pass(s.layer, s.next)
	}

	r.verdict.reason("All guardrail layers passed: order accepted")
	p.logger.Infof(ctx, "[Guardrail] order accepted: %s on %s x%d, total %s",
		order.Size().Key(), r.price.PaperStock, order.Quantity(), r.price.FormattedTotal())
	return r.verdict
}

func (p *Pipeline) logRejection(ctx context.Context, rej *Rejection) {
	msg := strings.Join(rej.Reasons, "; ")
	if rej.Layer == LayerOutputGuardrail {
		p.logger.Errorf(ctx, "[Guardrail] integrity violation %s: %s", rej.Violation, msg)
		return
	}
	p.logger.Infof(ctx, "[Guardrail] order rejected at %s: %s", rej.Layer, msg)
}
