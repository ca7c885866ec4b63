package benchmark

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"printshop/internal/app/domains/entity/etorder"
	"printshop/internal/app/domains/guardrail"
)

// Artwork 运行时生成的空白稿件像素尺寸
type Artwork struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Case 一条历史失败订单
// ExpectLayer 为空表示这条订单本应被接受
type Case struct {
	ID              string          `yaml:"id"`
	Request         string          `yaml:"request"`
	Size            string          `yaml:"size"`
	Paper           string          `yaml:"paper"`
	Color           string          `yaml:"color"`
	Finish          string          `yaml:"finish"`
	Quantity        int             `yaml:"quantity"`
	FullColor       *bool           `yaml:"full_color"`
	RushType        string          `yaml:"rush_type"`
	InkType         string          `yaml:"ink_type"`
	SpecialServices []string        `yaml:"special_services"`
	File            string          `yaml:"file"`
	Artwork         *Artwork        `yaml:"artwork"`
	Category        string          `yaml:"category"`
	Reason          string          `yaml:"reason"`
	ExpectLayer     guardrail.Layer `yaml:"expect_layer"`
}

// caseFile 用例文件顶层结构
type caseFile struct {
	Cases []Case `yaml:"cases"`
}

// LoadCases 读取 YAML 用例文件，相对路径的稿件以用例文件所在目录为基准
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cases failed: %w", err)
	}
	cases, err := ParseCases(data)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for i := range cases {
		if cases[i].File != "" && !filepath.IsAbs(cases[i].File) {
			cases[i].File = filepath.Join(dir, cases[i].File)
		}
	}
	return cases, nil
}

// ParseCases 解析并校验用例
func ParseCases(data []byte) ([]Case, error) {
	var f caseFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse cases failed: %w", err)
	}
	if len(f.Cases) == 0 {
		return nil, errors.New("benchmark: no cases defined")
	}

	seen := make(map[string]struct{}, len(f.Cases))
	for i, c := range f.Cases {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("benchmark: case %d has no id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("benchmark: duplicate case id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.ExpectLayer != "" && !knownLayer(c.ExpectLayer) {
			return nil, fmt.Errorf("benchmark: case %s expects unknown layer %q", c.ID, c.ExpectLayer)
		}
		if c.File != "" && c.Artwork != nil {
			return nil, fmt.Errorf("benchmark: case %s sets both file and artwork", c.ID)
		}
	}
	return f.Cases, nil
}

// ExpectsRejection 是否应被拦截
func (c Case) ExpectsRejection() bool {
	return c.ExpectLayer != ""
}

// toOrder 构造订单，artworkPath 为已解析的稿件路径
func (c Case) toOrder(artworkPath string) (*etorder.OrderRequest, error) {
	size, err := etorder.ParseSize(c.Size)
	if err != nil {
		return nil, err
	}

	fullColor := true
	if c.FullColor != nil {
		fullColor = *c.FullColor
	}
	quantity := c.Quantity
	if quantity == 0 {
		quantity = 1
	}

	filename := filepath.Base(artworkPath)
	if artworkPath == "" {
		filename = c.ID + ".png"
	}

	return etorder.NewOrderRequest(etorder.Params{
		Size:            size,
		PaperStock:      orDefault(c.Paper, etorder.DefaultPaperStock),
		Color:           orDefault(c.Color, etorder.DefaultColor),
		Finish:          orDefault(c.Finish, etorder.DefaultFinish),
		Quantity:        quantity,
		ArtworkPath:     artworkPath,
		Filename:        filename,
		FullColor:       fullColor,
		RushType:        c.RushType,
		InkType:         c.InkType,
		SpecialServices: c.SpecialServices,
	})
}

func knownLayer(l guardrail.Layer) bool {
	for _, known := range guardrail.Layers {
		if l == known {
			return true
		}
	}
	return false
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
