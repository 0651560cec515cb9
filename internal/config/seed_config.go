package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogSeed 啟動時寫入的商品清單
type CatalogSeed struct {
	Products []ProductSeed `yaml:"products"`
}

type ProductSeed struct {
	Type      string `yaml:"type"`
	UnitPrice int64  `yaml:"unitPrice"`
}

func LoadCatalogSeed(path string) (*CatalogSeed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	seed := &CatalogSeed{}
	if err := yaml.Unmarshal(raw, seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	for i, p := range seed.Products {
		if p.Type == "" {
			return nil, fmt.Errorf("seed product %d: type is required", i)
		}
	}
	return seed, nil
}
