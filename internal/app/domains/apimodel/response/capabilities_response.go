package response

import "printshop/internal/app/domains/entity/etcatalog"

// CapabilitiesResponse 店铺能力清单（DTO）
type CapabilitiesResponse struct {
	PaperStocks     []etcatalog.PaperStock         `json:"paper_stocks"`
	Printing        etcatalog.PrintingCapabilities `json:"printing"`
	Files           etcatalog.FileRequirements     `json:"file_requirements"`
	Sizes           etcatalog.SizeLimits           `json:"size_limits"`
	StandardSizes   []etcatalog.StandardSize       `json:"standard_sizes"`
	SpecialServices map[string]bool                `json:"special_services"`
	Pricing         *PricingManifest               `json:"pricing"`
}

// PricingManifest 价格表摘要（DTO）
type PricingManifest struct {
	Currency       string            `json:"currency" example:"USD"`
	Stocks         []StockPrice      `json:"stocks"`
	QuantityBreaks []QuantityBreak   `json:"quantity_breaks"`
	Rush           map[string]string `json:"rush"`
}

// StockPrice 纸张单价（DTO）
type StockPrice struct {
	Stock          string `json:"stock" example:"100lb Matte"`
	PerSheet       string `json:"per_sheet" example:"$0.50"`
	ColorSurcharge string `json:"color_surcharge" example:"$0.25"`
	SetupFee       string `json:"setup_fee" example:"$15.00"`
}

// QuantityBreak 数量阶梯（DTO）
type QuantityBreak struct {
	Range    string `json:"range" example:"11-50"`
	Discount string `json:"discount" example:"5%"`
}
