package etcatalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// StockPrice 单张纸的价格参数
type StockPrice struct {
	Stock          string
	PerSheet       decimal.Decimal
	ColorSurcharge decimal.Decimal
	SetupFee       decimal.Decimal
}

// QuantityBreak 数量阶梯，Max 为 0 表示无上限
type QuantityBreak struct {
	Min        int
	Max        int
	Multiplier decimal.Decimal
}

// Contains 数量是否落在该阶梯内
func (b QuantityBreak) Contains(quantity int) bool {
	if quantity < b.Min {
		return false
	}
	return b.Max == 0 || quantity <= b.Max
}

// Label 形如 "11-50" 或 "101+"
func (b QuantityBreak) Label() string {
	if b.Max == 0 {
		return fmt.Sprintf("%d+", b.Min)
	}
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// StockPriceSpec 价格配置项
type StockPriceSpec struct {
	Stock          string  `mapstructure:"stock"`
	PerSheet       float64 `mapstructure:"per_sheet"`
	ColorSurcharge float64 `mapstructure:"color_surcharge"`
	SetupFee       float64 `mapstructure:"setup_fee"`
}

// QuantityBreakSpec 数量阶梯配置项
type QuantityBreakSpec struct {
	Min        int     `mapstructure:"min"`
	Max        int     `mapstructure:"max"`
	Multiplier float64 `mapstructure:"multiplier"`
}

// RushSpec 加急配置项
type RushSpec struct {
	Type       string  `mapstructure:"type"`
	Multiplier float64 `mapstructure:"multiplier"`
}

// PricingSpec 价格表原始配置
type PricingSpec struct {
	Currency       string              `mapstructure:"currency"`
	Stocks         []StockPriceSpec    `mapstructure:"stocks"`
	QuantityBreaks []QuantityBreakSpec `mapstructure:"quantity_breaks"`
	Rush           []RushSpec          `mapstructure:"rush"`
}

// PricingTable 价格表，构造后只读
type PricingTable struct {
	currency  string
	prices    map[string]StockPrice
	foldIndex map[string]string
	order     []string
	breaks    []QuantityBreak
	rush      map[string]decimal.Decimal
}

// NewPricingTable 校验并构造价格表
// 数量阶梯必须从 1 开始、首尾相接且互不重叠，只有最后一档可以无上限
func NewPricingTable(spec PricingSpec) (*PricingTable, error) {
	if len(spec.Stocks) == 0 {
		return nil, errors.New("pricing: at least one stock price is required")
	}

	t := &PricingTable{
		currency:  spec.Currency,
		prices:    make(map[string]StockPrice, len(spec.Stocks)),
		foldIndex: make(map[string]string, len(spec.Stocks)),
		rush:      make(map[string]decimal.Decimal, len(spec.Rush)),
	}
	if t.currency == "" {
		t.currency = "USD"
	}

	for _, s := range spec.Stocks {
		name := strings.TrimSpace(s.Stock)
		if name == "" {
			return nil, errors.New("pricing: stock name is required")
		}
		if s.PerSheet < 0 || s.ColorSurcharge < 0 || s.SetupFee < 0 {
			return nil, fmt.Errorf("pricing: negative price for %q", name)
		}
		key := strings.ToLower(name)
		if _, dup := t.foldIndex[key]; dup {
			return nil, fmt.Errorf("pricing: duplicate stock %q", name)
		}
		t.prices[name] = StockPrice{
			Stock:          name,
			PerSheet:       decimal.NewFromFloat(s.PerSheet),
			ColorSurcharge: decimal.NewFromFloat(s.ColorSurcharge),
			SetupFee:       decimal.NewFromFloat(s.SetupFee),
		}
		t.foldIndex[key] = name
		t.order = append(t.order, name)
	}

	breaks, err := buildBreaks(spec.QuantityBreaks)
	if err != nil {
		return nil, err
	}
	t.breaks = breaks

	for _, r := range spec.Rush {
		if r.Multiplier <= 0 {
			return nil, fmt.Errorf("pricing: rush multiplier for %q must be positive", r.Type)
		}
		t.rush[strings.ToLower(strings.TrimSpace(r.Type))] = decimal.NewFromFloat(r.Multiplier)
	}

	return t, nil
}

func buildBreaks(specs []QuantityBreakSpec) ([]QuantityBreak, error) {
	if len(specs) == 0 {
		return nil, errors.New("pricing: at least one quantity break is required")
	}
	out := make([]QuantityBreak, 0, len(specs))
	next := 1
	for i, b := range specs {
		if b.Min != next {
			return nil, fmt.Errorf("pricing: quantity break %d starts at %d, expected %d", i, b.Min, next)
		}
		last := i == len(specs)-1
		if b.Max == 0 && !last {
			return nil, fmt.Errorf("pricing: only the last quantity break may be open-ended")
		}
		if b.Max != 0 && b.Max < b.Min {
			return nil, fmt.Errorf("pricing: quantity break %d has max %d below min %d", i, b.Max, b.Min)
		}
		if b.Multiplier <= 0 {
			return nil, fmt.Errorf("pricing: quantity break %d multiplier must be positive", i)
		}
		out = append(out, QuantityBreak{Min: b.Min, Max: b.Max, Multiplier: decimal.NewFromFloat(b.Multiplier)})
		next = b.Max + 1
	}
	return out, nil
}

// Currency 币种
func (t *PricingTable) Currency() string {
	return t.currency
}

// StockPrice 查找纸张价格，先精确匹配再大小写不敏感匹配
func (t *PricingTable) StockPrice(name string) (StockPrice, bool) {
	if p, ok := t.prices[name]; ok {
		return p, true
	}
	canonical, ok := t.foldIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return StockPrice{}, false
	}
	return t.prices[canonical], true
}

// StockNames 有价格的纸张名称
func (t *PricingTable) StockNames() []string {
	return append([]string(nil), t.order...)
}

// QuantityBreak 返回第一个包含 quantity 的阶梯
func (t *PricingTable) QuantityBreak(quantity int) (QuantityBreak, bool) {
	for _, b := range t.breaks {
		if b.Contains(quantity) {
			return b, true
		}
	}
	return QuantityBreak{}, false
}

// QuantityBreaks 全部阶梯（副本）
func (t *PricingTable) QuantityBreaks() []QuantityBreak {
	return append([]QuantityBreak(nil), t.breaks...)
}

// RushMultiplier 加急系数，未知或为空时返回 1 且 known 为 false
func (t *PricingTable) RushMultiplier(rushType string) (multiplier decimal.Decimal, known bool) {
	key := strings.ToLower(strings.TrimSpace(rushType))
	if key == "" {
		return decimal.NewFromInt(1), false
	}
	m, ok := t.rush[key]
	if !ok {
		return decimal.NewFromInt(1), false
	}
	return m, true
}

// RushTypes 已配置的加急类型（已排序）
func (t *PricingTable) RushTypes() []string {
	out := make([]string, 0, len(t.rush))
	for k := range t.rush {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
