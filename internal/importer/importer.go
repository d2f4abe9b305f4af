// Package importer implements the offline import/normalization pipeline:
// bulk catalog loads from Open Food Facts exports and the dataset merge
// passes that build the boycotted/recommended company documents. The
// resolution core only ever consumes this package's output, never its
// control flow.
package importer

import (
	"github.com/pfaustino/boycott-evil/internal/model"
)

// BrandEntry is a brand that exists only in a boycott list, with no real
// barcoded product behind it.
type BrandEntry struct {
	Name string
	URL  string
}

// PassResult is the output of one dataset import pass.
type PassResult struct {
	// Companies maps normalized company name to its classification record.
	Companies map[string]model.CompanyRecord
	// Brands are list-only brands to be made searchable as synthetic
	// catalog rows.
	Brands []BrandEntry
	// Aliases maps normalized brand to normalized parent company name.
	// Self-aliases are never emitted.
	Aliases map[string]string
}

// SyntheticProducts converts list-only brands into catalog rows with
// synthetic BRAND- codes, deduplicated by code.
func SyntheticProducts(brands []BrandEntry) []model.Product {
	seen := make(map[string]bool, len(brands))
	products := make([]model.Product, 0, len(brands))
	for _, b := range brands {
		if b.Name == "" {
			continue
		}
		code := model.BrandCode(b.Name)
		if seen[code] {
			continue
		}
		seen[code] = true
		products = append(products, model.Product{
			Code:            code,
			ProductName:     b.Name,
			Brands:          b.Name,
			NormalizedBrand: model.NormalizeName(b.Name),
			URL:             b.URL,
		})
	}
	return products
}
