package etcatalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// PaperStock 纸张库存项
type PaperStock struct {
	Name            string   `mapstructure:"name" json:"name"`
	Available       bool     `mapstructure:"available" json:"available"`
	Colors          []string `mapstructure:"colors" json:"colors"`
	Finishes        []string `mapstructure:"finishes" json:"finishes"`
	WhiteInkCapable bool     `mapstructure:"white_ink_capable" json:"white_ink_capable"`
	Dark            bool     `mapstructure:"dark" json:"dark"`
}

// MatchColor 大小写不敏感匹配颜色，返回目录中的规范写法
func (s PaperStock) MatchColor(color string) (string, bool) {
	return matchFold(s.Colors, color)
}

// MatchFinish 大小写不敏感匹配表面处理
func (s PaperStock) MatchFinish(finish string) (string, bool) {
	return matchFold(s.Finishes, finish)
}

func (s PaperStock) clone() PaperStock {
	s.Colors = append([]string(nil), s.Colors...)
	s.Finishes = append([]string(nil), s.Finishes...)
	return s
}

// PrintingCapabilities 印刷能力
type PrintingCapabilities struct {
	FullColor       bool `mapstructure:"full_color" json:"full_color"`
	SpotColor       bool `mapstructure:"spot_color" json:"spot_color"`
	WhiteInk        bool `mapstructure:"white_ink" json:"white_ink"`
	MetallicInks    bool `mapstructure:"metallic_inks" json:"metallic_inks"`
	PantoneMatching bool `mapstructure:"pantone_matching" json:"pantone_matching"`
}

// FileRequirements 文件要求
type FileRequirements struct {
	MinDPI           float64  `mapstructure:"min_dpi" json:"min_dpi"`
	RecommendedDPI   float64  `mapstructure:"recommended_dpi" json:"recommended_dpi"`
	MinBleedInches   float64  `mapstructure:"min_bleed_inches" json:"min_bleed_inches"`
	SupportedFormats []string `mapstructure:"supported_formats" json:"supported_formats"`
	ColorSpace       string   `mapstructure:"color_space" json:"color_space"`
}

// SizeLimits 尺寸限制（英寸）
type SizeLimits struct {
	MinWidth  float64 `mapstructure:"min_width" json:"min_width"`
	MinHeight float64 `mapstructure:"min_height" json:"min_height"`
	MaxWidth  float64 `mapstructure:"max_width" json:"max_width"`
	MaxHeight float64 `mapstructure:"max_height" json:"max_height"`
}

// StandardSize 常用成品尺寸
type StandardSize struct {
	Label  string  `mapstructure:"label" json:"label"`
	Width  float64 `mapstructure:"width" json:"width"`
	Height float64 `mapstructure:"height" json:"height"`
}

// Spec 能力目录的原始配置
type Spec struct {
	PaperStocks     []PaperStock         `mapstructure:"paper_stocks"`
	Printing        PrintingCapabilities `mapstructure:"printing"`
	Files           FileRequirements     `mapstructure:"files"`
	Sizes           SizeLimits           `mapstructure:"sizes"`
	DarkColors      []string             `mapstructure:"dark_colors"`
	SpecialServices map[string]bool      `mapstructure:"special_services"`
	StandardSizes   []StandardSize       `mapstructure:"standard_sizes"`
}

// Catalog 店铺能力目录，构造后只读，可被任意数量的请求并发读取
type Catalog struct {
	stocks     map[string]PaperStock
	foldIndex  map[string]string
	order      []string
	printing   PrintingCapabilities
	files      FileRequirements
	sizes      SizeLimits
	darkColors map[string]struct{}
	services   map[string]bool
	standard   []StandardSize
}

// NewCatalog 校验并构造能力目录
func NewCatalog(spec Spec) (*Catalog, error) {
	if len(spec.PaperStocks) == 0 {
		return nil, errors.New("catalog: at least one paper stock is required")
	}
	if err := validateSizes(spec.Sizes); err != nil {
		return nil, err
	}
	if spec.Files.MinDPI <= 0 || spec.Files.RecommendedDPI < spec.Files.MinDPI {
		return nil, fmt.Errorf("catalog: invalid dpi thresholds min=%v recommended=%v",
			spec.Files.MinDPI, spec.Files.RecommendedDPI)
	}
	if len(spec.Files.SupportedFormats) == 0 {
		return nil, errors.New("catalog: supported_formats must not be empty")
	}

	c := &Catalog{
		stocks:     make(map[string]PaperStock, len(spec.PaperStocks)),
		foldIndex:  make(map[string]string, len(spec.PaperStocks)),
		order:      make([]string, 0, len(spec.PaperStocks)),
		printing:   spec.Printing,
		files:      spec.Files,
		sizes:      spec.Sizes,
		darkColors: make(map[string]struct{}, len(spec.DarkColors)),
		services:   make(map[string]bool, len(spec.SpecialServices)),
		standard:   append([]StandardSize(nil), spec.StandardSizes...),
	}
	c.files.SupportedFormats = upperAll(spec.Files.SupportedFormats)

	for _, s := range spec.PaperStocks {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, errors.New("catalog: paper stock name is required")
		}
		key := strings.ToLower(name)
		if _, dup := c.foldIndex[key]; dup {
			return nil, fmt.Errorf("catalog: duplicate paper stock %q", name)
		}
		s.Name = name
		c.stocks[name] = s.clone()
		c.foldIndex[key] = name
		c.order = append(c.order, name)
	}
	for _, color := range spec.DarkColors {
		c.darkColors[strings.ToLower(color)] = struct{}{}
	}
	for name, ok := range spec.SpecialServices {
		c.services[strings.ToLower(name)] = ok
	}

	return c, nil
}

func validateSizes(s SizeLimits) error {
	if s.MinWidth <= 0 || s.MinHeight <= 0 {
		return errors.New("catalog: minimum size must be positive")
	}
	if s.MaxWidth < s.MinWidth || s.MaxHeight < s.MinHeight {
		return fmt.Errorf("catalog: max size %vx%v below min size %vx%v",
			s.MaxWidth, s.MaxHeight, s.MinWidth, s.MinHeight)
	}
	return nil
}

// Stock 查找纸张，先精确匹配再大小写不敏感匹配
func (c *Catalog) Stock(name string) (PaperStock, bool) {
	if s, ok := c.stocks[name]; ok {
		return s.clone(), true
	}
	canonical, ok := c.foldIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PaperStock{}, false
	}
	return c.stocks[canonical].clone(), true
}

// StockNames 全部纸张名称，按配置顺序
func (c *Catalog) StockNames() []string {
	return append([]string(nil), c.order...)
}

// AvailableStockNames 有货的纸张名称
func (c *Catalog) AvailableStockNames() []string {
	names := make([]string, 0, len(c.order))
	for _, name := range c.order {
		if c.stocks[name].Available {
			names = append(names, name)
		}
	}
	return names
}

// Stocks 全部纸张（副本）
func (c *Catalog) Stocks() []PaperStock {
	out := make([]PaperStock, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.stocks[name].clone())
	}
	return out
}

// Printing 印刷能力
func (c *Catalog) Printing() PrintingCapabilities {
	return c.printing
}

// FileRequirements 文件要求（副本）
func (c *Catalog) FileRequirements() FileRequirements {
	f := c.files
	f.SupportedFormats = append([]string(nil), c.files.SupportedFormats...)
	return f
}

// SizeLimits 尺寸限制
func (c *Catalog) SizeLimits() SizeLimits {
	return c.sizes
}

// IsDarkColor 颜色是否属于深色
func (c *Catalog) IsDarkColor(color string) bool {
	_, ok := c.darkColors[strings.ToLower(strings.TrimSpace(color))]
	return ok
}

// IsDarkSelection 纸张本身为深色，或所选颜色为深色
func (c *Catalog) IsDarkSelection(stock PaperStock, color string) bool {
	return stock.Dark || c.IsDarkColor(color)
}

// CanUnderprintWhite 全局白墨能力且该纸张支持白墨底印
func (c *Catalog) CanUnderprintWhite(stock PaperStock) bool {
	return c.printing.WhiteInk && stock.WhiteInkCapable
}

// Service 查询附加服务，known 表示目录中有该服务
func (c *Catalog) Service(name string) (available bool, known bool) {
	available, known = c.services[strings.ToLower(strings.TrimSpace(name))]
	return available, known
}

// Services 附加服务表（副本）
func (c *Catalog) Services() map[string]bool {
	out := make(map[string]bool, len(c.services))
	for k, v := range c.services {
		out[k] = v
	}
	return out
}

// ServiceNames 附加服务名称（已排序）
func (c *Catalog) ServiceNames() []string {
	names := make([]string, 0, len(c.services))
	for k := range c.services {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// StandardSizes 常用尺寸
func (c *Catalog) StandardSizes() []StandardSize {
	return append([]StandardSize(nil), c.standard...)
}

// SupportsFormat 格式是否受支持（如 "PNG"）
func (c *Catalog) SupportsFormat(format string) bool {
	_, ok := matchFold(c.files.SupportedFormats, format)
	return ok
}

func matchFold(values []string, want string) (string, bool) {
	want = strings.TrimSpace(want)
	for _, v := range values {
		if v == want {
			return v, true
		}
	}
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return v, true
		}
	}
	return "", false
}

func upperAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToUpper(strings.TrimSpace(v)))
	}
	return out
}
