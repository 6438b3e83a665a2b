package listing

import (
	_ "embed"
	"fmt"
	"sync"

	"krisik-bazar/internal/model"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

type fallbackEntry struct {
	ID         int64  `yaml:"id"`
	Name       string `yaml:"name"`
	NameNepali string `yaml:"name_nepali"`
	PricePerKg string `yaml:"price_per_kg"`
	Market     string `yaml:"market"`
}

func parseFallback(raw []byte) ([]model.Product, error) {
	var entries []fallbackEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse fallback listing: %w", err)
	}

	products := make([]model.Product, 0, len(entries))
	for _, e := range entries {
		price, err := decimal.NewFromString(e.PricePerKg)
		if err != nil {
			return nil, fmt.Errorf("fallback product %d: invalid price %q: %w", e.ID, e.PricePerKg, err)
		}
		products = append(products, model.Product{
			ID:         e.ID,
			Name:       e.Name,
			NameNepali: e.NameNepali,
			PricePerKg: price,
			Market:     e.Market,
		})
	}
	return products, nil
}

var loadFallback = sync.OnceValue(func() []model.Product {
	products, err := parseFallback(fallbackYAML)
	if err != nil {
		panic(err)
	}
	return products
})

// Fallback returns a fresh copy of the built-in listing.
func Fallback() []model.Product {
	return append([]model.Product(nil), loadFallback()...)
}
