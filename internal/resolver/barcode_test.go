package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfaustino/boycott-evil/internal/classify"
	"github.com/pfaustino/boycott-evil/internal/dataset"
	"github.com/pfaustino/boycott-evil/internal/model"
)

func TestBarcodeResolve_Exact(t *testing.T) {
	store := newFakeStore(model.Product{Code: "0123456789012", ProductName: "Cola 330ml"})
	b := NewBarcode(store)

	got, err := b.Resolve(context.Background(), "0123456789012")
	require.NoError(t, err)

	assert.Equal(t, model.MatchExact, got.MatchType)
	require.NotNil(t, got.Product)
	assert.Equal(t, "Cola 330ml", got.Product.ProductName)
	assert.Empty(t, got.SimilarProducts)
}

func TestBarcodeResolve_PaddedEquivalent(t *testing.T) {
	// Stored at full EAN-13 width, scanned without leading zeros.
	store := newFakeStore(model.Product{Code: "0001234567890", ProductName: "Chips"})
	b := NewBarcode(store)

	got, err := b.Resolve(context.Background(), "1234567890")
	require.NoError(t, err)

	assert.Equal(t, model.MatchExact, got.MatchType)
	require.NotNil(t, got.Product)
	assert.Equal(t, "0001234567890", got.Product.Code)
}

func TestBarcodeResolve_ExactBeatsPrefix(t *testing.T) {
	store := newFakeStore(
		model.Product{Code: "0123456789012", ProductName: "Exact"},
		model.Product{Code: "0123456789099", ProductName: "Sibling"},
	)
	b := NewBarcode(store)

	got, err := b.Resolve(context.Background(), "0123456789012")
	require.NoError(t, err)

	assert.Equal(t, model.MatchExact, got.MatchType)
	assert.Equal(t, "Exact", got.Product.ProductName)
	assert.Zero(t, store.prefixCalls, "prefix ladder must not run after an exact hit")
}

func TestBarcodeResolve_PrefixLadderLongestFirst(t *testing.T) {
	store := newFakeStore(
		// Shares 10 leading digits with the scan.
		model.Product{Code: "0123456789111", ProductName: "Close Cousin"},
		// Shares only 6 leading digits.
		model.Product{Code: "0123459999999", ProductName: "Distant Cousin"},
	)
	b := NewBarcode(store)

	got, err := b.Resolve(context.Background(), "0123456789000")
	require.NoError(t, err)

	assert.Equal(t, model.MatchPrefix, got.MatchType)
	assert.Equal(t, 10, got.PrefixLength, "longest matching prefix wins")
	require.Len(t, got.SimilarProducts, 1)
	assert.Equal(t, "Close Cousin", got.SimilarProducts[0].ProductName)
}

func TestBarcodeResolve_PrefixRepresentative(t *testing.T) {
	store := newFakeStore(
		model.Product{Code: "6141410000001", ProductName: "Soda", Brands: "FizzCo", NormalizedBrand: "fizzco"},
	)
	b := NewBarcode(store)

	got, err := b.Resolve(context.Background(), "6141410009999")
	require.NoError(t, err)

	require.Equal(t, model.MatchPrefix, got.MatchType)
	require.NotNil(t, got.Product)
	// The representative keeps the scanned code and synthesizes its name,
	// but inherits the matched product's brand for classification.
	assert.Equal(t, "6141410009999", got.Product.Code)
	assert.Equal(t, "Unknown product (similar to Soda)", got.Product.ProductName)
	assert.Equal(t, "fizzco", got.Product.NormalizedBrand)
}

func TestBarcodeResolve_ShortCodePrefix(t *testing.T) {
	// A 6-digit scan pads to 13 and still reaches the 6-length rung.
	store := newFakeStore(
		model.Product{Code: "0000006141411", ProductName: "Padded Sibling"},
	)
	b := NewBarcode(store)

	got, err := b.Resolve(context.Background(), "614141")
	require.NoError(t, err)

	assert.Equal(t, model.MatchPrefix, got.MatchType)
	assert.Equal(t, 6, got.PrefixLength)
}

func TestBarcodeResolve_SimilarCapped(t *testing.T) {
	products := make([]model.Product, 8)
	for i := range products {
		products[i] = model.Product{Code: "012345678901" + string(rune('0'+i)), ProductName: "P"}
	}
	store := newFakeStore(products...)
	b := NewBarcode(store)

	got, err := b.Resolve(context.Background(), "0123456789099")
	require.NoError(t, err)

	require.Equal(t, model.MatchPrefix, got.MatchType)
	assert.Len(t, got.SimilarProducts, 5)
}

func TestBarcodeResolve_NoMatch(t *testing.T) {
	store := newFakeStore(model.Product{Code: "9999999999999", ProductName: "Unrelated"})
	b := NewBarcode(store)

	got, err := b.Resolve(context.Background(), "0123456789012")
	require.NoError(t, err)

	assert.Equal(t, model.MatchNone, got.MatchType)
	assert.Nil(t, got.Product)
	assert.Equal(t, len(prefixLadder), store.prefixCalls, "every ladder rung is tried before giving up")
}

func TestBarcodeResolve_StoreError(t *testing.T) {
	store := newFakeStore()
	store.failWith = errors.New("connection reset")
	b := NewBarcode(store)

	_, err := b.Resolve(context.Background(), "0123456789012")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exact lookup")
}

func TestBarcodeResolve_SyntheticExactOnly(t *testing.T) {
	store := newFakeStore(
		model.Product{Code: "BRAND-pure-life", ProductName: "Pure Life"},
		model.Product{Code: "BRAND-pure-spring", ProductName: "Pure Spring"},
	)
	b := NewBarcode(store)

	got, err := b.Resolve(context.Background(), "BRAND-pure-life")
	require.NoError(t, err)
	assert.Equal(t, model.MatchExact, got.MatchType)

	got, err = b.Resolve(context.Background(), "BRAND-pure")
	require.NoError(t, err)
	assert.Equal(t, model.MatchNone, got.MatchType)
	assert.Zero(t, store.prefixCalls, "synthetic codes never walk the prefix ladder")
}

func TestScanThenClassify(t *testing.T) {
	store := newFakeStore(model.Product{
		Code:            "0123456789012",
		ProductName:     "Widget",
		Brands:          "Acme",
		NormalizedBrand: "acme",
	})
	b := NewBarcode(store)
	lib := dataset.NewLibrary(
		map[string]model.CompanyRecord{"acme": {Evil: true, Reason: "X"}},
		nil, nil,
	)
	engine := classify.New(lib, nil)

	result, err := b.Resolve(context.Background(), "123456789012")
	require.NoError(t, err)
	require.Equal(t, model.MatchExact, result.MatchType)

	v := engine.Classify(*result.Product)
	assert.Equal(t, model.StatusEvil, v.Status)
	require.NotNil(t, v.Boycott)
	assert.Equal(t, "X", v.Boycott.Reason)
}

func TestBarcodeResolve_ManufacturerPrefixFallback(t *testing.T) {
	store := newFakeStore(
		model.Product{Code: "6141410000001", ProductName: "Soda"},
		model.Product{Code: "6141410000002", ProductName: "Diet Soda"},
	)
	b := NewBarcode(store)

	got, err := b.Resolve(context.Background(), "6141419999999")
	require.NoError(t, err)

	assert.Equal(t, model.MatchPrefix, got.MatchType)
	assert.Equal(t, 6, got.PrefixLength)
	require.NotNil(t, got.Product)
	assert.Equal(t, "6141419999999", got.Product.Code)
	assert.Len(t, got.SimilarProducts, 2)
}

func TestPadCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1234567890", "0001234567890"},
		{"0123456789012", "0123456789012"},
		{"12345678901234", "12345678901234"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, padCode(tt.input))
		})
	}
}
