package response

import "printshop/internal/app/domains/guardrail"

// VerdictResponse 护栏裁决（DTO）
type VerdictResponse struct {
	Valid        bool                       `json:"valid" example:"true"`
	Layer        string                     `json:"layer,omitempty" example:"preflight"`
	Violation    string                     `json:"violation,omitempty" example:"PRICE_HALLUCINATION"`
	Errors       []string                   `json:"errors,omitempty"`
	Warnings     []string                   `json:"warnings,omitempty"`
	Reasoning    []string                   `json:"reasoning"`
	ToolCalls    []guardrail.ToolInvocation `json:"tool_calls"`
	OrderSummary *OrderSummary              `json:"order_summary,omitempty"`
}

// OrderSummary 订单摘要（DTO）
type OrderSummary struct {
	Size           string          `json:"size" example:"8\"x10\""`
	Dimensions     string          `json:"dimensions" example:"8.0\" x 10.0\""`
	Paper          string          `json:"paper" example:"100lb Matte"`
	Color          string          `json:"color" example:"white"`
	Finish         string          `json:"finish" example:"matte"`
	Quantity       int             `json:"quantity" example:"10"`
	FullColor      bool            `json:"full_color" example:"true"`
	RushType       string          `json:"rush_type,omitempty"`
	FileQuality    FileQuality     `json:"file_quality"`
	Price          string          `json:"price" example:"$22.50"`
	PricePerUnit   string          `json:"price_per_unit" example:"$2.25"`
	PriceBreakdown *PriceBreakdown `json:"price_breakdown"`
}

// FileQuality 文件质量（DTO）
type FileQuality struct {
	DPI             float64 `json:"dpi" example:"300"`
	Quality         string  `json:"quality" example:"high"`
	PixelDimensions string  `json:"pixel_dimensions" example:"2400x3000"`
	Format          string  `json:"format,omitempty" example:"PNG"`
}

// PriceBreakdown 报价明细（DTO），金额已格式化
// sheets = per_sheet × 数量，subtotal = (sheets + setup_fee) × 加急系数
type PriceBreakdown struct {
	PerSheet       string `json:"per_sheet" example:"$0.75"`
	Sheets         string `json:"sheets" example:"$7.50"`
	Subtotal       string `json:"subtotal" example:"$22.50"`
	SetupFee       string `json:"setup_fee" example:"$15.00"`
	Discount       string `json:"discount" example:"0%"`
	QuantityBreak  string `json:"quantity_break" example:"1-10"`
	RushMultiplier string `json:"rush_multiplier" example:"1x"`
	Total          string `json:"total" example:"$22.50"`
	Currency       string `json:"currency" example:"USD"`
}

// SubmitResponse 提交结果（DTO）
type SubmitResponse struct {
	OrderNo  string           `json:"order_no,omitempty" example:"PS-1790000000000000000"`
	Notified bool             `json:"notified"`
	Delivery string           `json:"delivery_status,omitempty" example:"SENT"`
	Status   string           `json:"status" example:"Accepted - Order Total: $22.50"`
	Verdict  *VerdictResponse `json:"verdict"`
}

// UploadResponse 上传结果（DTO）
type UploadResponse struct {
	Filename  string `json:"filename" example:"3f2a9c1d_art.png"`
	Width     int    `json:"width" example:"2400"`
	Height    int    `json:"height" example:"3000"`
	Converted bool   `json:"converted" example:"false"`
}
