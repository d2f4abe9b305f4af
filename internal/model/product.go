// Package model defines the core types shared by the resolution engine:
// catalog products, classified company records, and search results.
package model

import (
	"strings"
)

// Synthetic code prefixes. Brands and companies that exist only in the
// classification datasets are given synthetic catalog codes so they can be
// found by the same search paths as real barcoded products.
const (
	brandCodePrefix   = "BRAND-"
	companyCodePrefix = "COMPANY-"
)

// Product is one catalog entry, keyed by barcode. Rows are created in bulk
// by the import pipeline and are immutable at query time.
type Product struct {
	Code            string `json:"code" db:"code"`
	ProductName     string `json:"product_name" db:"product_name"`
	Brands          string `json:"brands" db:"brands"`
	NormalizedBrand string `json:"normalized_brand" db:"normalized_brand"`
	URL             string `json:"url,omitempty" db:"url"`
}

// IsSynthetic reports whether the product was manufactured from a brand or
// company list entry rather than imported from a real barcode catalog.
func (p Product) IsSynthetic() bool {
	return strings.HasPrefix(p.Code, brandCodePrefix) || strings.HasPrefix(p.Code, companyCodePrefix)
}

// NormalizeBrand derives the normalized brand from a raw, possibly
// comma-separated manufacturer brand string: the first comma segment,
// trimmed and lowercased. Returns "" for blank input.
func NormalizeBrand(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	return strings.ToLower(strings.TrimSpace(first))
}

// NormalizeName lowercases and trims a company or brand name for use as a
// classification dataset key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BrandCode builds the synthetic catalog code for a list-only brand.
func BrandCode(name string) string {
	return brandCodePrefix + Slug(name)
}

// CompanyCode builds the synthetic catalog code for a company selected from
// a name search.
func CompanyCode(name string) string {
	return companyCodePrefix + name
}
