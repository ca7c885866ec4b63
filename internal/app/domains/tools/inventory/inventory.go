package inventory

import (
	"fmt"
	"strings"

	"printshop/internal/app/domains/entity/etcatalog"
)

// ToolName 工具调用记录中的名称
const ToolName = "check_inventory"

// Result 库存检查结果
type Result struct {
	Available       bool     `json:"available"`
	PaperStock      string   `json:"paper_stock"`
	Color           string   `json:"color"`
	Finish          string   `json:"finish"`
	Reason          string   `json:"reason,omitempty"`
	Alternatives    []string `json:"alternatives,omitempty"`
	AllowedColors   []string `json:"allowed_colors,omitempty"`
	AllowedFinishes []string `json:"allowed_finishes,omitempty"`
	WhiteInkCapable bool     `json:"white_ink_capable"`
}

// Checker 库存检查工具，无状态
type Checker struct {
	catalog *etcatalog.Catalog
}

// NewChecker 创建库存检查工具
func NewChecker(catalog *etcatalog.Catalog) *Checker {
	return &Checker{catalog: catalog}
}

// CheckAvailability 依次检查纸张是否存在、是否有货、颜色、表面处理
func (c *Checker) CheckAvailability(paperStock, color, finish string) *Result {
	stock, ok := c.catalog.Stock(paperStock)
	if !ok {
		return &Result{
			PaperStock:   paperStock,
			Color:        color,
			Finish:       finish,
			Reason:       fmt.Sprintf("Paper stock '%s' not found", paperStock),
			Alternatives: c.catalog.StockNames(),
		}
	}

	res := &Result{
		PaperStock:      stock.Name,
		Color:           color,
		Finish:          finish,
		AllowedColors:   stock.Colors,
		AllowedFinishes: stock.Finishes,
		WhiteInkCapable: stock.WhiteInkCapable,
	}

	if !stock.Available {
		res.Reason = fmt.Sprintf("Paper stock '%s' is currently out of stock", stock.Name)
		res.Alternatives = c.catalog.AvailableStockNames()
		return res
	}

	resolvedColor, ok := stock.MatchColor(color)
	if !ok {
		res.Reason = fmt.Sprintf("Color '%s' not available for '%s' (available: %s)",
			color, stock.Name, strings.Join(stock.Colors, ", "))
		return res
	}
	res.Color = resolvedColor

	resolvedFinish, ok := stock.MatchFinish(finish)
	if !ok {
		res.Reason = fmt.Sprintf("Finish '%s' not available for '%s' (available: %s)",
			finish, stock.Name, strings.Join(stock.Finishes, ", "))
		return res
	}
	res.Finish = resolvedFinish

	res.Available = true
	return res
}
