package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"printshop/internal/app/domains/entity/etcatalog"
)

// ToolName 工具调用记录中的名称
const ToolName = "calculate_price"

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNoQuantityBreak = errors.New("no quantity break matches quantity")
)

// UnknownStockError 价格表中没有该纸张
type UnknownStockError struct {
	Stock string
	Known []string
}

func (e *UnknownStockError) Error() string {
	return fmt.Sprintf("unknown paper stock '%s' (available: %s)", e.Stock, strings.Join(e.Known, ", "))
}

// Request 报价输入
type Request struct {
	PaperStock   string
	Quantity     int
	WidthInches  float64
	HeightInches float64
	FullColor    bool
	RushType     string
}

// Breakdown 报价明细，保留全部中间值，只在格式化输出时取两位小数
type Breakdown struct {
	PaperStock         string          `json:"paper_stock"`
	Quantity           int             `json:"quantity"`
	Dimensions         string          `json:"dimensions"`
	FullColor          bool            `json:"full_color"`
	BasePerSheet       decimal.Decimal `json:"base_per_sheet"`
	ColorSurcharge     decimal.Decimal `json:"color_surcharge"`
	QuantityBreak      string          `json:"quantity_break"`
	QuantityMultiplier decimal.Decimal `json:"quantity_multiplier"`
	PerSheetCost       decimal.Decimal `json:"per_sheet_cost"`
	SheetsCost         decimal.Decimal `json:"sheets_cost"`
	SetupFee           decimal.Decimal `json:"setup_fee"`
	RushType           string          `json:"rush_type,omitempty"`
	RushRecognized     bool            `json:"rush_recognized"`
	RushMultiplier     decimal.Decimal `json:"rush_multiplier"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Total              decimal.Decimal `json:"total"`
	PricePerUnit       decimal.Decimal `json:"price_per_unit"`
	Currency           string          `json:"currency"`
}

// FormattedTotal 形如 "$22.50"
func (b *Breakdown) FormattedTotal() string {
	return FormatMoney(b.Total)
}

// DiscountPercent 数量折扣，形如 "5%"
func (b *Breakdown) DiscountPercent() string {
	return decimal.NewFromInt(1).Sub(b.QuantityMultiplier).Mul(decimal.NewFromInt(100)).String() + "%"
}

// FormatMoney 四舍五入到分
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Calculator 报价工具，只读取价格表
type Calculator struct {
	table *etcatalog.PricingTable
}

// NewCalculator 创建报价工具
func NewCalculator(table *etcatalog.PricingTable) *Calculator {
	return &Calculator{table: table}
}

// CalculatePrice 计算报价
// per_sheet = (base + 彩色附加费) × 数量系数
// total = (per_sheet × quantity + setup_fee) × 加急系数
func (c *Calculator) CalculatePrice(req Request) (*Breakdown, error) {
	price, ok := c.table.StockPrice(req.PaperStock)
	if !ok {
		return nil, &UnknownStockError{Stock: req.PaperStock, Known: c.table.StockNames()}
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, req.Quantity)
	}
	qb, ok := c.table.QuantityBreak(req.Quantity)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoQuantityBreak, req.Quantity)
	}

	surcharge := decimal.Zero
	if req.FullColor {
		surcharge = price.ColorSurcharge
	}
	perSheet := price.PerSheet.Add(surcharge).Mul(qb.Multiplier)
	qty := decimal.NewFromInt(int64(req.Quantity))
	sheets := perSheet.Mul(qty)

	rush, recognized := c.table.RushMultiplier(req.RushType)
	subtotal := sheets.Add(price.SetupFee).Mul(rush)

	return &Breakdown{
		PaperStock:         price.Stock,
		Quantity:           req.Quantity,
		Dimensions:         dimensions(req.WidthInches, req.HeightInches),
		FullColor:          req.FullColor,
		BasePerSheet:       price.PerSheet,
		ColorSurcharge:     surcharge,
		QuantityBreak:      qb.Label(),
		QuantityMultiplier: qb.Multiplier,
		PerSheetCost:       perSheet,
		SheetsCost:         sheets,
		SetupFee:           price.SetupFee,
		RushType:           req.RushType,
		RushRecognized:     recognized,
		RushMultiplier:     rush,
		Subtotal:           subtotal,
		Total:              subtotal,
		PricePerUnit:       subtotal.Div(qty),
		Currency:           c.table.Currency(),
	}, nil
}

func dimensions(w, h float64) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	return decimal.NewFromFloat(w).String() + `"x` + decimal.NewFromFloat(h).String() + `"`
}
