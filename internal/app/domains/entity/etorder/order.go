package etorder

import (
	"errors"
	"fmt"
	"strings"
)

// 错误定义
var (
	ErrInvalidSize     = errors.New("invalid size")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrMissingPaper    = errors.New("paper stock cannot be empty")
	ErrMissingColor    = errors.New("paper color cannot be empty")
	ErrMissingFinish   = errors.New("paper finish cannot be empty")
	ErrMissingArtwork  = errors.New("artwork filename cannot be empty")
)

// 默认规格
const (
	DefaultPaperStock = "100lb Matte"
	DefaultColor      = "white"
	DefaultFinish     = "matte"
)

// Params 构造订单请求的输入
type Params struct {
	Email           string
	Name            string
	Size            Size
	PaperStock      string
	Color           string
	Finish          string
	Quantity        int
	ArtworkPath     string
	Filename        string
	FullColor       bool
	RushType        string
	InkType         string
	SpecialServices []string
}

// OrderRequest 待校验的印刷订单（值对象，构造后不可变）
type OrderRequest struct {
	email           string
	name            string
	size            Size
	paperStock      string
	color           string
	finish          string
	quantity        int
	artworkPath     string
	filename        string
	fullColor       bool
	rushType        string
	inkType         string
	specialServices []string
}

// NewOrderRequest 校验输入格式并构造订单请求
// 这里只做格式校验，能力相关的校验交给护栏流水线
func NewOrderRequest(p Params) (*OrderRequest, error) {
	if err := p.Size.Validate(); err != nil {
		return nil, err
	}
	if p.Quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, p.Quantity)
	}

	o := &OrderRequest{
		email:       strings.TrimSpace(p.Email),
		name:        strings.TrimSpace(p.Name),
		size:        p.Size,
		paperStock:  strings.TrimSpace(p.PaperStock),
		color:       strings.TrimSpace(p.Color),
		finish:      strings.TrimSpace(p.Finish),
		quantity:    p.Quantity,
		artworkPath: strings.TrimSpace(p.ArtworkPath),
		filename:    strings.TrimSpace(p.Filename),
		fullColor:   p.FullColor,
		rushType:    strings.TrimSpace(p.RushType),
		inkType:     strings.ToLower(strings.TrimSpace(p.InkType)),
	}
	for _, svc := range p.SpecialServices {
		if svc = strings.TrimSpace(svc); svc != "" {
			o.specialServices = append(o.specialServices, svc)
		}
	}

	switch {
	case o.paperStock == "":
		return nil, ErrMissingPaper
	case o.color == "":
		return nil, ErrMissingColor
	case o.finish == "":
		return nil, ErrMissingFinish
	case o.artworkPath == "" && o.filename == "":
		return nil, ErrMissingArtwork
	}
	if o.filename == "" {
		o.filename = o.artworkPath
	}

	return o, nil
}

// Email 客户邮箱
func (o *OrderRequest) Email() string { return o.email }

// Name 客户姓名
func (o *OrderRequest) Name() string { return o.name }

// Size 成品尺寸
func (o *OrderRequest) Size() Size { return o.size }

// PaperStock 纸张
func (o *OrderRequest) PaperStock() string { return o.paperStock }

// Color 纸张颜色
func (o *OrderRequest) Color() string { return o.color }

// Finish 表面处理
func (o *OrderRequest) Finish() string { return o.finish }

// Quantity 数量
func (o *OrderRequest) Quantity() int { return o.quantity }

// ArtworkPath 稿件在服务器上的路径，可能为空
func (o *OrderRequest) ArtworkPath() string { return o.artworkPath }

// Filename 稿件原始文件名
func (o *OrderRequest) Filename() string { return o.filename }

// FullColor 是否全彩印刷
func (o *OrderRequest) FullColor() bool { return o.fullColor }

// RushType 加急类型，可能为空
func (o *OrderRequest) RushType() string { return o.rushType }

// InkType 指定油墨类型，可能为空
func (o *OrderRequest) InkType() string { return o.inkType }

// SpecialServices 附加服务（副本）
func (o *OrderRequest) SpecialServices() []string {
	return append([]string(nil), o.specialServices...)
}
