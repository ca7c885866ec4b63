package guardrail

import (
	"context"
	"fmt"
	"regexp"

	"printshop/internal/app/domains/tools/pricing"
)

var pricePattern = regexp.MustCompile(`\$[\d,]+\.?\d*`)

// outputGuardrail 最后一层：价格必须来自报价工具的调用结果
func (p *Pipeline) outputGuardrail(_ context.Context, r *run) *Rejection {
	r.verdict.reason(fmt.Sprintf("Output guardrail: verifying the price came from %s", pricing.ToolName))

	breakdown := priceFromCalls(r.verdict.toolCalls)
	if breakdown == nil || breakdown != r.price {
		r.verdict.reason("Output guardrail failed: no " + pricing.ToolName + " result backs the quoted price")
		rej := reject(LayerOutputGuardrail,
			fmt.Sprintf("Pricing must come from the %s tool; no successful invocation was recorded", pricing.ToolName))
		rej.Violation = ViolationPriceHallucination
		return rej
	}

	o := r.order
	size := o.Size()
	r.verdict.summary = &OrderSummary{
		Size:         size.Label(),
		WidthInches:  size.Width,
		HeightInches: size.Height,
		Paper:        r.inventory.PaperStock,
		Color:        r.inventory.Color,
		Finish:       r.inventory.Finish,
		Quantity:     o.Quantity(),
		FullColor:    o.FullColor(),
		RushType:     o.RushType(),
		File: FileQuality{
			DPI:             r.file.EffectiveDPI,
			Quality:         r.file.Quality,
			PixelDimensions: r.file.PixelDimensions(),
			Format:          r.file.Format,
		},
		Price: breakdown,
	}

	r.verdict.reason("Output guardrail passed: price is backed by a " + pricing.ToolName + " invocation")
	return nil
}

// QuoteCheck 文本报价检查结果
type QuoteCheck struct {
	Valid           bool     `json:"valid"`
	PricesFound     []string `json:"prices_found,omitempty"`
	PricingToolUsed bool     `json:"pricing_tool_used"`
	Violation       string   `json:"violation,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// CheckQuote 文本中出现价格但没有报价工具调用时判定为违规
func CheckQuote(text string, calls []ToolInvocation) QuoteCheck {
	prices := pricePattern.FindAllString(text, -1)
	// 只认成功的报价调用，失败的调用没有可引用的价格
	used := priceFromCalls(calls) != nil

	check := QuoteCheck{Valid: true, PricesFound: prices, PricingToolUsed: used}
	if len(prices) > 0 && !used {
		check.Valid = false
		check.Violation = ViolationPriceHallucination
		check.Error = fmt.Sprintf("Response quotes %v without calling %s", prices, pricing.ToolName)
	}
	return check
}

// ScreenResponse 对即将返回给客户的文本做价格检查
// 检查不通过时返回一个在 output_guardrail 拒绝的新裁决，原裁决不变
func ScreenResponse(v *Verdict, text string) *Verdict {
	if v == nil {
		v = newVerdict()
	}
	check := CheckQuote(text, v.toolCalls)
	if check.Valid {
		return v
	}

	out := v.clone()
	out.reason("Output guardrail failed: " + check.Error)
	rej := reject(LayerOutputGuardrail, check.Error)
	rej.Violation = check.Violation
	out.reject(rej)
	return out
}
