package guardrail

import (
	"context"
	"fmt"

	"printshop/internal/app/domains/tools/inventory"
	"printshop/internal/app/domains/tools/pricing"
)

// pricingAndInventory 第三层：确认库存并调用报价工具
// 两次工具调用无论成败都会记录
func (p *Pipeline) pricingAndInventory(_ context.Context, r *run) *Rejection {
	o := r.order
	r.verdict.reason("Layer 3 (pricing and inventory): confirming stock and calculating the official price")

	inv := p.inventory.CheckAvailability(o.PaperStock(), o.Color(), o.Finish())
	r.inventory = inv
	r.verdict.record(ToolInvocation{
		Name: inventory.ToolName,
		Arguments: map[string]interface{}{
			"paper_stock": o.PaperStock(),
			"color":       o.Color(),
			"finish":      o.Finish(),
		},
		Result: inv,
		Error:  inv.Reason,
	})
	if !inv.Available {
		r.verdict.reason("Layer 3 failed: " + inv.Reason)
		return reject(LayerPricingOrInventory, withAlternatives(inv.Reason, inv.Alternatives))
	}
	r.verdict.reason(fmt.Sprintf("Inventory confirmed: %s (%s, %s)", inv.PaperStock, inv.Color, inv.Finish))

	size := o.Size()
	req := pricing.Request{
		PaperStock:   inv.PaperStock,
		Quantity:     o.Quantity(),
		WidthInches:  size.Width,
		HeightInches: size.Height,
		FullColor:    o.FullColor(),
		RushType:     o.RushType(),
	}
	breakdown, err := p.pricing.CalculatePrice(req)

	call := ToolInvocation{
		Name: pricing.ToolName,
		Arguments: map[string]interface{}{
			"paper_stock": req.PaperStock,
			"quantity":    req.Quantity,
			"size":        size.Key(),
			"full_color":  req.FullColor,
			"rush_type":   req.RushType,
		},
	}
	if err != nil {
		call.Error = err.Error()
		r.verdict.record(call)
		r.verdict.reason("Layer 3 failed: " + err.Error())
		return reject(LayerPricingOrInventory, "Pricing failed: "+err.Error())
	}
	call.Result = breakdown
	r.verdict.record(call)
	r.price = breakdown

	if o.RushType() != "" && !breakdown.RushRecognized {
		r.verdict.warn(fmt.Sprintf("Rush type '%s' is not recognized; no rush surcharge applied", o.RushType()))
	}

	r.verdict.reason(fmt.Sprintf("Layer 3 passed: price calculated by %s: %s", pricing.ToolName, breakdown.FormattedTotal()))
	return nil
}
