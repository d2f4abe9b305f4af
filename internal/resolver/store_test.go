package resolver

import (
	"context"
	"sort"
	"strings"

	"github.com/pfaustino/boycott-evil/internal/model"
)

// fakeStore is an in-memory catalog.Store for resolver tests. It counts
// queries so tests can assert which lookup phases ran.
type fakeStore struct {
	products map[string]model.Product

	getCalls       int
	prefixCalls    int
	substringCalls int
	failWith       error
}

func newFakeStore(products ...model.Product) *fakeStore {
	s := &fakeStore{products: make(map[string]model.Product, len(products))}
	for _, p := range products {
		s.products[p.Code] = p
	}
	return s
}

func (s *fakeStore) GetByCode(_ context.Context, code string) (*model.Product, error) {
	s.getCalls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	if p, ok := s.products[code]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *fakeStore) QueryByPrefix(_ context.Context, prefix string, limit int) ([]model.Product, error) {
	s.prefixCalls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []model.Product
	for code, p := range s.products {
		if strings.HasPrefix(code, prefix) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) QueryBySubstring(_ context.Context, term string, limit int) ([]model.Product, error) {
	s.substringCalls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	term = strings.ToLower(term)
	var out []model.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.ProductName), term) ||
			strings.Contains(strings.ToLower(p.Brands), term) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) QueryByBrand(_ context.Context, brand string, limit int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range s.products {
		if strings.HasPrefix(p.NormalizedBrand, brand) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) Count(context.Context) (int64, error) { return int64(len(s.products)), nil }

func (s *fakeStore) BulkUpsert(_ context.Context, products []model.Product) error {
	for _, p := range products {
		s.products[p.Code] = p
	}
	return nil
}

func (s *fakeStore) Reset(context.Context) error   { s.products = map[string]model.Product{}; return nil }
func (s *fakeStore) Migrate(context.Context) error { return nil }
func (s *fakeStore) Close() error                  { return nil }
