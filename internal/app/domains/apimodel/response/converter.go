package response

import (
	"printshop/internal/app/domains/entity/etcatalog"
	"printshop/internal/app/domains/guardrail"
	"printshop/internal/app/domains/tools/pricing"

	"github.com/shopspring/decimal"
)

// FromVerdict 从护栏裁决转换为响应 DTO
func FromVerdict(v *guardrail.Verdict) *VerdictResponse {
	resp := &VerdictResponse{
		Valid:     v.Valid(),
		Violation: v.Violation(),
		Errors:    v.Errors(),
		Warnings:  v.Warnings(),
		Reasoning: v.Reasoning(),
		ToolCalls: v.ToolCalls(),
	}
	if !resp.Valid {
		resp.Layer = string(v.Layer())
	}
	if resp.Reasoning == nil {
		resp.Reasoning = []string{}
	}
	if resp.ToolCalls == nil {
		resp.ToolCalls = []guardrail.ToolInvocation{}
	}
	if sum := v.Summary(); sum != nil {
		resp.OrderSummary = fromSummary(sum)
	}
	return resp
}

func fromSummary(s *guardrail.OrderSummary) *OrderSummary {
	out := &OrderSummary{
		Size:      s.Size,
		Paper:     s.Paper,
		Color:     s.Color,
		Finish:    s.Finish,
		Quantity:  s.Quantity,
		FullColor: s.FullColor,
		RushType:  s.RushType,
		FileQuality: FileQuality{
			DPI:             s.File.DPI,
			Quality:         string(s.File.Quality),
			PixelDimensions: s.File.PixelDimensions,
			Format:          s.File.Format,
		},
	}
	if s.Price != nil {
		out.Dimensions = s.Price.Dimensions
		out.Price = s.Price.FormattedTotal()
		out.PricePerUnit = pricing.FormatMoney(s.Price.PricePerUnit)
		out.PriceBreakdown = fromBreakdown(s.Price)
	}
	return out
}

func fromBreakdown(b *pricing.Breakdown) *PriceBreakdown {
	return &PriceBreakdown{
		PerSheet:       pricing.FormatMoney(b.PerSheetCost),
		Sheets:         pricing.FormatMoney(b.SheetsCost),
		Subtotal:       pricing.FormatMoney(b.Subtotal),
		SetupFee:       pricing.FormatMoney(b.SetupFee),
		Discount:       b.DiscountPercent(),
		QuantityBreak:  b.QuantityBreak,
		RushMultiplier: b.RushMultiplier.String() + "x",
		Total:          b.FormattedTotal(),
		Currency:       b.Currency,
	}
}

// FromCatalog 能力目录与价格表转换为能力清单
func FromCatalog(c *etcatalog.Catalog, t *etcatalog.PricingTable) *CapabilitiesResponse {
	resp := &CapabilitiesResponse{
		PaperStocks:     c.Stocks(),
		Printing:        c.Printing(),
		Files:           c.FileRequirements(),
		Sizes:           c.SizeLimits(),
		StandardSizes:   c.StandardSizes(),
		SpecialServices: c.Services(),
	}
	if t == nil {
		return resp
	}

	m := &PricingManifest{Currency: t.Currency(), Rush: make(map[string]string)}
	for _, name := range t.StockNames() {
		p, _ := t.StockPrice(name)
		m.Stocks = append(m.Stocks, StockPrice{
			Stock:          p.Stock,
			PerSheet:       pricing.FormatMoney(p.PerSheet),
			ColorSurcharge: pricing.FormatMoney(p.ColorSurcharge),
			SetupFee:       pricing.FormatMoney(p.SetupFee),
		})
	}
	hundred := decimal.NewFromInt(100)
	for _, b := range t.QuantityBreaks() {
		m.QuantityBreaks = append(m.QuantityBreaks, QuantityBreak{
			Range:    b.Label(),
			Discount: decimal.NewFromInt(1).Sub(b.Multiplier).Mul(hundred).String() + "%",
		})
	}
	for _, rush := range t.RushTypes() {
		mul, _ := t.RushMultiplier(rush)
		m.Rush[rush] = mul.String() + "x"
	}
	resp.Pricing = m
	return resp
}
