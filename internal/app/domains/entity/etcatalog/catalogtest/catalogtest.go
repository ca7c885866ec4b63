// Package catalogtest 提供与 config/catalog.yaml 一致的店铺目录，供各包测试使用
package catalogtest

import (
	"testing"

	"printshop/internal/app/domains/entity/etcatalog"
)

// File 标准店铺配置
func File() etcatalog.File {
	return etcatalog.File{
		Catalog: etcatalog.Spec{
			PaperStocks: []etcatalog.PaperStock{
				{Name: "100lb Matte", Available: true, Colors: []string{"white", "cream"}, Finishes: []string{"matte"}},
				{Name: "80lb Glossy", Available: true, Colors: []string{"white"}, Finishes: []string{"gloss"}},
				{Name: "110lb Cardstock", Available: true, Colors: []string{"white", "cream", "kraft"}, Finishes: []string{"matte", "uncoated"}},
				{Name: "65lb Text", Available: true, Colors: []string{"white"}, Finishes: []string{"uncoated"}},
				{Name: "80lb Text", Available: true, Colors: []string{"white", "cream"}, Finishes: []string{"uncoated"}},
				{Name: "Black Cardstock", Available: true, Colors: []string{"black"}, Finishes: []string{"matte"}, Dark: true},
				{Name: "Metallic Paper", Available: false, Colors: []string{"gold", "silver"}, Finishes: []string{"metallic"}},
			},
			Printing: etcatalog.PrintingCapabilities{FullColor: true},
			Files: etcatalog.FileRequirements{
				MinDPI:           225,
				RecommendedDPI:   300,
				MinBleedInches:   0.125,
				SupportedFormats: []string{"JPG", "PNG", "PDF", "TIFF"},
				ColorSpace:       "CMYK or RGB",
			},
			Sizes:      etcatalog.SizeLimits{MinWidth: 3, MinHeight: 5, MaxWidth: 13, MaxHeight: 19},
			DarkColors: []string{"black", "navy", "charcoal"},
			SpecialServices: map[string]bool{
				"full_bleed":  true,
				"folding":     true,
				"die_cutting": false,
				"embossing":   false,
				"foil":        false,
			},
			StandardSizes: []etcatalog.StandardSize{
				{Label: "4x6", Width: 4, Height: 6},
				{Label: "5x7", Width: 5, Height: 7},
				{Label: "8x10", Width: 8, Height: 10},
				{Label: "8.5x11", Width: 8.5, Height: 11},
				{Label: "11x17", Width: 11, Height: 17},
				{Label: "13x19", Width: 13, Height: 19},
			},
		},
		Pricing: etcatalog.PricingSpec{
			Currency: "USD",
			Stocks: []etcatalog.StockPriceSpec{
				{Stock: "100lb Matte", PerSheet: 0.50, ColorSurcharge: 0.25, SetupFee: 15},
				{Stock: "80lb Glossy", PerSheet: 0.45, ColorSurcharge: 0.25, SetupFee: 15},
				{Stock: "110lb Cardstock", PerSheet: 0.75, ColorSurcharge: 0.30, SetupFee: 20},
				{Stock: "65lb Text", PerSheet: 0.30, ColorSurcharge: 0.20, SetupFee: 10},
				{Stock: "80lb Text", PerSheet: 0.35, ColorSurcharge: 0.20, SetupFee: 10},
				{Stock: "Black Cardstock", PerSheet: 0.80, ColorSurcharge: 0.35, SetupFee: 20},
			},
			QuantityBreaks: []etcatalog.QuantityBreakSpec{
				{Min: 1, Max: 10, Multiplier: 1.0},
				{Min: 11, Max: 50, Multiplier: 0.95},
				{Min: 51, Max: 100, Multiplier: 0.90},
				{Min: 101, Multiplier: 0.85},
			},
			Rush: []etcatalog.RushSpec{
				{Type: "rush", Multiplier: 1.5},
				{Type: "express", Multiplier: 2.0},
			},
		},
	}
}

// New 构造标准目录和价格表，失败时终止测试
func New(t testing.TB) (*etcatalog.Catalog, *etcatalog.PricingTable) {
	t.Helper()
	catalog, pricing, err := etcatalog.Build(File())
	if err != nil {
		t.Fatalf("build test catalog: %v", err)
	}
	return catalog, pricing
}
