package etcatalog

import (
	"fmt"

	"github.com/spf13/viper"
)

// File catalog.yaml 的顶层结构
type File struct {
	Catalog Spec        `mapstructure:"catalog"`
	Pricing PricingSpec `mapstructure:"pricing"`
}

// LoadFile 从 YAML 文件加载能力目录和价格表
func LoadFile(path string) (*Catalog, *PricingTable, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read catalog failed: %w", err)
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, nil, fmt.Errorf("unmarshal catalog failed: %w", err)
	}

	return Build(f)
}

// Build 由已解析的配置构造目录和价格表，并检查两者的纸张是否一致
func Build(f File) (*Catalog, *PricingTable, error) {
	catalog, err := NewCatalog(f.Catalog)
	if err != nil {
		return nil, nil, err
	}
	pricing, err := NewPricingTable(f.Pricing)
	if err != nil {
		return nil, nil, err
	}

	for _, s := range catalog.Stocks() {
		if !s.Available {
			continue
		}
		if _, ok := pricing.StockPrice(s.Name); !ok {
			return nil, nil, fmt.Errorf("catalog: available stock %q has no price", s.Name)
		}
	}

	return catalog, pricing, nil
}
