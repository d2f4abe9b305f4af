// Package resolver turns noisy user input, a scanned barcode or a free-text
// name, into catalog products and classification dataset hits.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pfaustino/boycott-evil/internal/catalog"
	"github.com/pfaustino/boycott-evil/internal/model"
)

// ean13Width is the standard EAN-13 barcode width. Stored codes may have
// been recorded at 12, 13, or unpadded digit counts, so lookups always try
// both the original and the zero-padded form.
const ean13Width = 13

// prefixLadder holds the prefix lengths tried after an exact miss, longest
// first. GS1 company prefixes are 6-10 digits; preferring longer prefixes
// avoids false positives from short, highly shared country-code prefixes.
var prefixLadder = []int{10, 9, 8, 7, 6}

// maxSimilar caps the similar-product set returned for a prefix match.
const maxSimilar = 5

// Barcode resolves scanned barcodes against the catalog store using exact
// match, zero padding, and a manufacturer-prefix fallback.
type Barcode struct {
	store catalog.Store
}

// NewBarcode creates a barcode resolver backed by the given store.
func NewBarcode(store catalog.Store) *Barcode {
	return &Barcode{store: store}
}

// Resolve looks up a scanned code. It returns an exact match when the store
// holds the code (original or padded form), a prefix match with up to five
// products from the longest matching manufacturer prefix otherwise, and a
// none result when no prefix length matches. Storage failures propagate as
// errors, distinct from the legitimate none outcome.
func (b *Barcode) Resolve(ctx context.Context, code string) (model.SmartSearchResult, error) {
	// Synthetic codes are opaque identifiers: padding and manufacturer
	// prefixes only make sense for numeric barcodes.
	if (model.Product{Code: code}).IsSynthetic() {
		p, err := b.store.GetByCode(ctx, code)
		if err != nil {
			return model.SmartSearchResult{}, eris.Wrapf(err, "resolver: exact lookup %s", code)
		}
		if p != nil {
			return model.SmartSearchResult{MatchType: model.MatchExact, Product: p}, nil
		}
		return model.SmartSearchResult{MatchType: model.MatchNone}, nil
	}

	padded := padCode(code)

	// Exact phase: the store may hold either form.
	for _, candidate := range []string{code, padded} {
		p, err := b.store.GetByCode(ctx, candidate)
		if err != nil {
			return model.SmartSearchResult{}, eris.Wrapf(err, "resolver: exact lookup %s", candidate)
		}
		if p != nil {
			return model.SmartSearchResult{MatchType: model.MatchExact, Product: p}, nil
		}
		if padded == code {
			break
		}
	}

	// Prefix phase: walk the ladder longest-first and stop at the first
	// length with any hit.
	for _, n := range prefixLadder {
		if n > len(padded) {
			continue
		}
		prefix := padded[:n]
		matches, err := b.store.QueryByPrefix(ctx, prefix, maxSimilar)
		if err != nil {
			return model.SmartSearchResult{}, eris.Wrapf(err, "resolver: prefix lookup %s", prefix)
		}
		if len(matches) == 0 {
			continue
		}

		// The representative keeps the scanned code and a synthesized name
		// so callers never present a prefix hit as an exact identification.
		rep := matches[0]
		rep.Code = code
		rep.ProductName = fmt.Sprintf("Unknown product (similar to %s)", matches[0].ProductName)

		zap.L().Debug("barcode resolved by prefix",
			zap.String("code", code),
			zap.Int("prefix_length", n),
			zap.Int("similar", len(matches)),
		)

		return model.SmartSearchResult{
			MatchType:       model.MatchPrefix,
			Product:         &rep,
			SimilarProducts: matches,
			PrefixLength:    n,
		}, nil
	}

	return model.SmartSearchResult{MatchType: model.MatchNone}, nil
}

// padCode left-pads a numeric code with zeros to the EAN-13 width. Codes
// already at or beyond the width, and synthetic codes, pass through.
func padCode(code string) string {
	if len(code) >= ean13Width {
		return code
	}
	return strings.Repeat("0", ean13Width-len(code)) + code
}
