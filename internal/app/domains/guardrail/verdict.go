package guardrail

import (
	"printshop/internal/app/domains/tools/pricing"
	"printshop/internal/app/domains/tools/resolution"
)

// Layer 护栏层标识
type Layer string

const (
	LayerSpecCheck          Layer = "spec_check"
	LayerPreflight          Layer = "preflight"
	LayerPricingOrInventory Layer = "pricing_or_inventory"
	LayerOutputGuardrail    Layer = "output_guardrail"
)

// Layers 流水线的层顺序
var Layers = []Layer{LayerSpecCheck, LayerPreflight, LayerPricingOrInventory, LayerOutputGuardrail}

// ViolationPriceHallucination 价格不是由报价工具产生
const ViolationPriceHallucination = "PRICE_HALLUCINATION"

// Stage 流水线状态
type Stage int

const (
	StageSpecCheck Stage = iota
	StagePreflight
	StagePricingAndInventory
	StageOutputGuardrail
	StageAccepted
	StageRejected
)

func (s Stage) String() string {
	switch s {
	case StageSpecCheck:
		return "spec_check"
	case StagePreflight:
		return "preflight"
	case StagePricingAndInventory:
		return "pricing_and_inventory"
	case StageOutputGuardrail:
		return "output_guardrail"
	case StageAccepted:
		return "accepted"
	case StageRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ToolInvocation 一次工具调用的记录
type ToolInvocation struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
	Result    interface{}            `json:"result,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// FileQuality 稿件质量摘要
type FileQuality struct {
	DPI             float64            `json:"dpi"`
	Quality         resolution.Quality `json:"quality"`
	PixelDimensions string             `json:"pixel_dimensions"`
	Format          string             `json:"format"`
}

// OrderSummary 通过全部护栏后的订单摘要
type OrderSummary struct {
	Size         string             `json:"size"`
	WidthInches  float64            `json:"width_inches"`
	HeightInches float64            `json:"height_inches"`
	Paper        string             `json:"paper"`
	Color        string             `json:"color"`
	Finish       string             `json:"finish"`
	Quantity     int                `json:"quantity"`
	FullColor    bool               `json:"full_color"`
	RushType     string             `json:"rush_type,omitempty"`
	File         FileQuality        `json:"file_quality"`
	Price        *pricing.Breakdown `json:"price"`
}

// Verdict 护栏裁决
// 字段不导出，只能由流水线产生；Valid 由记录推导，不单独存储
type Verdict struct {
	stage     Stage
	layer     Layer
	passed    []Layer
	errors    []string
	warnings  []string
	reasoning []string
	toolCalls []ToolInvocation
	summary   *OrderSummary
	violation string
}

func newVerdict() *Verdict {
	return &Verdict{stage: StageSpecCheck}
}

// Valid 全部层按顺序通过、报价工具确实被调用且有摘要时才为 true
func (v *Verdict) Valid() bool {
	if v == nil || v.stage != StageAccepted || v.summary == nil {
		return false
	}
	if len(v.passed) != len(Layers) {
		return false
	}
	for i, l := range Layers {
		if v.passed[i] != l {
			return false
		}
	}
	return priceFromCalls(v.toolCalls) != nil
}

// Stage 当前状态
func (v *Verdict) Stage() Stage { return v.stage }

// Layer 拒绝发生的层，通过时为空
func (v *Verdict) Layer() Layer { return v.layer }

// Violation 违规标记，例如 PRICE_HALLUCINATION
func (v *Verdict) Violation() string { return v.violation }

// PassedLayers 已通过的层
func (v *Verdict) PassedLayers() []Layer { return append([]Layer(nil), v.passed...) }

// Errors 拒绝原因
func (v *Verdict) Errors() []string { return append([]string(nil), v.errors...) }

// Warnings 不影响结果的提示
func (v *Verdict) Warnings() []string { return append([]string(nil), v.warnings...) }

// Reasoning 按顺序记录的推理过程
func (v *Verdict) Reasoning() []string { return append([]string(nil), v.reasoning...) }

// ToolCalls 工具调用记录
func (v *Verdict) ToolCalls() []ToolInvocation {
	out := make([]ToolInvocation, len(v.toolCalls))
	for i, c := range v.toolCalls {
		out[i] = c
		out[i].Arguments = copyArgs(c.Arguments)
	}
	return out
}

// ToolCalled 是否调用过指定工具
func (v *Verdict) ToolCalled(name string) bool {
	for _, c := range v.toolCalls {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Summary 订单摘要，未通过时为 nil
func (v *Verdict) Summary() *OrderSummary {
	if v.summary == nil {
		return nil
	}
	s := *v.summary
	if s.Price != nil {
		p := *s.Price
		s.Price = &p
	}
	return &s
}

func (v *Verdict) clone() *Verdict {
	c := *v
	c.passed = append([]Layer(nil), v.passed...)
	c.errors = append([]string(nil), v.errors...)
	c.warnings = append([]string(nil), v.warnings...)
	c.reasoning = append([]string(nil), v.reasoning...)
	c.toolCalls = append([]ToolInvocation(nil), v.toolCalls...)
	return &c
}

func (v *Verdict) reason(line string) {
	v.reasoning = append(v.reasoning, line)
}

func (v *Verdict) warn(line string) {
	v.warnings = append(v.warnings, line)
}

func (v *Verdict) record(call ToolInvocation) {
	v.toolCalls = append(v.toolCalls, call)
}

func (v *Verdict) pass(l Layer, next Stage) {
	v.passed = append(v.passed, l)
	v.stage = next
}

func (v *Verdict) reject(r *Rejection) {
	v.stage = StageRejected
	v.layer = r.Layer
	v.violation = r.Violation
	v.errors = append(v.errors, r.Reasons...)
	v.summary = nil
}

// priceFromCalls 找到成功的报价工具调用
func priceFromCalls(calls []ToolInvocation) *pricing.Breakdown {
	for _, c := range calls {
		if c.Name != pricing.ToolName || c.Error != "" {
			continue
		}
		if b, ok := c.Result.(*pricing.Breakdown); ok && b != nil {
			return b
		}
	}
	return nil
}

func copyArgs(args map[string]interface{}) map[string]interface{} {
	if args == nil {
		return nil
	}
	out := make(map[string]interface{}, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}
