package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfaustino/boycott-evil/internal/model"
)

func TestSyntheticProducts(t *testing.T) {
	brands := []BrandEntry{
		{Name: "Pure Life", URL: "https://example.org/pl"},
		{Name: "pure life"}, // same slug, deduplicated
		{Name: ""},
		{Name: "Lays"},
	}

	got := SyntheticProducts(brands)
	require.Len(t, got, 2)

	assert.Equal(t, "BRAND-pure-life", got[0].Code)
	assert.Equal(t, "Pure Life", got[0].ProductName)
	assert.Equal(t, "pure life", got[0].NormalizedBrand)
	assert.Equal(t, "https://example.org/pl", got[0].URL)
	assert.True(t, got[0].IsSynthetic())

	assert.Equal(t, "BRAND-lays", got[1].Code)
}

// memStore is a minimal in-memory catalog.Store for import tests.
type memStore struct {
	products map[string]model.Product
	batches  int
}

func newMemStore() *memStore {
	return &memStore{products: map[string]model.Product{}}
}

func (s *memStore) GetByCode(_ context.Context, code string) (*model.Product, error) {
	if p, ok := s.products[code]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *memStore) QueryByPrefix(context.Context, string, int) ([]model.Product, error) {
	return nil, nil
}

func (s *memStore) QueryBySubstring(context.Context, string, int) ([]model.Product, error) {
	return nil, nil
}

func (s *memStore) QueryByBrand(context.Context, string, int) ([]model.Product, error) {
	return nil, nil
}

func (s *memStore) Count(context.Context) (int64, error) { return int64(len(s.products)), nil }

func (s *memStore) BulkUpsert(_ context.Context, products []model.Product) error {
	s.batches++
	for _, p := range products {
		s.products[p.Code] = p
	}
	return nil
}

func (s *memStore) Reset(context.Context) error   { return nil }
func (s *memStore) Migrate(context.Context) error { return nil }
func (s *memStore) Close() error                  { return nil }

func TestImportCatalog(t *testing.T) {
	input := "code,product_name,brands,url\n" +
		"0123456789012,Cola Zero,\"ColaCo, ColaCo Group\",https://example.org/cola\n" +
		",No Code,SkipCo,\n" +
		"555,,,\n"

	store := newMemStore()
	n, err := ImportCatalog(context.Background(), store, strings.NewReader(input), CatalogOptions{Delimiter: ','})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, err := store.GetByCode(context.Background(), "0123456789012")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Cola Zero", p.ProductName)
	assert.Equal(t, "colaco", p.NormalizedBrand, "first comma segment, lowercased")
}

func TestImportCatalog_Batching(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("code,product_name\n")
	for i := 0; i < 5; i++ {
		sb.WriteString("00000000000")
		sb.WriteByte(byte('0' + i))
		sb.WriteString(",Product\n")
	}

	store := newMemStore()
	n, err := ImportCatalog(context.Background(), store, strings.NewReader(sb.String()), CatalogOptions{
		Delimiter: ',',
		BatchSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 3, store.batches)
}

func TestImportCatalog_TSV(t *testing.T) {
	input := "code\tproduct_name_en\tbrands_tags\n" +
		"0123456789012\tGranola\tcrunchco\n"

	store := newMemStore()
	n, err := ImportCatalog(context.Background(), store, strings.NewReader(input), CatalogOptions{Delimiter: '\t'})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, err := store.GetByCode(context.Background(), "0123456789012")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Granola", p.ProductName)
	assert.Equal(t, "crunchco", p.Brands)
}
