package model

import (
	"fmt"
	"strings"
)

// MatchType describes how a barcode resolved against the catalog.
type MatchType string

const (
	MatchExact  MatchType = "exact"
	MatchPrefix MatchType = "prefix"
	MatchNone   MatchType = "none"
)

// SmartSearchResult is the outcome of barcode resolution. On MatchExact,
// Product holds the single catalog row. On MatchPrefix, Product is a
// representative carrying the originally scanned code and a synthesized
// display name, SimilarProducts holds the matched rows, and PrefixLength
// records how many leading digits matched. On MatchNone both are empty.
type SmartSearchResult struct {
	MatchType       MatchType `json:"match_type"`
	Product         *Product  `json:"product,omitempty"`
	SimilarProducts []Product `json:"similar_products,omitempty"`
	PrefixLength    int       `json:"prefix_length,omitempty"`
}

// HitKind tags a name-search result.
type HitKind string

const (
	HitProduct            HitKind = "product"
	HitBoycottedCompany   HitKind = "boycotted-company"
	HitRecommendedCompany HitKind = "recommended-company"
)

// SearchHit is one entry in a mixed name-search result list: either a
// catalog product or a company from one of the classification datasets.
type SearchHit struct {
	Kind    HitKind        `json:"kind"`
	Product *Product       `json:"product,omitempty"`
	Company string         `json:"company,omitempty"`
	Record  *CompanyRecord `json:"record,omitempty"`
}

// AsProduct converts the hit into a product that can flow through the
// classification engine. Company hits become synthetic products whose
// normalized brand is the company name itself.
func (h SearchHit) AsProduct() Product {
	if h.Kind == HitProduct && h.Product != nil {
		return *h.Product
	}
	return Product{
		Code:            CompanyCode(h.Company),
		ProductName:     titleCase(h.Company),
		Brands:          h.Company,
		NormalizedBrand: NormalizeName(h.Company),
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Status is the terminal classification state for a product.
type Status string

const (
	StatusEvil    Status = "evil"
	StatusGood    Status = "good"
	StatusClean   Status = "clean"
	StatusUnknown Status = "unknown"
)

// Verdict is the classification engine's answer for one product.
type Verdict struct {
	Status Status `json:"status"`
	// Brand is the effective brand the decision was made on; empty when
	// Status is unknown.
	Brand string `json:"brand,omitempty"`
	// Extracted is set when the brand was recovered from the display name
	// rather than taken from the product's normalized brand.
	Extracted   bool           `json:"extracted,omitempty"`
	Boycott     *CompanyRecord `json:"boycott,omitempty"`
	Recommended *CompanyRecord `json:"recommended,omitempty"`
}

func (v Verdict) String() string {
	if v.Brand == "" {
		return string(v.Status)
	}
	return fmt.Sprintf("%s (%s)", v.Status, v.Brand)
}
