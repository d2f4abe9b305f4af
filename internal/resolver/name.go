package resolver

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pfaustino/boycott-evil/internal/analytics"
	"github.com/pfaustino/boycott-evil/internal/catalog"
	"github.com/pfaustino/boycott-evil/internal/dataset"
	"github.com/pfaustino/boycott-evil/internal/model"
)

// minTermLength guards against pathologically broad scans.
const minTermLength = 2

// companyHitCap bounds how many hits each company set may contribute.
const companyHitCap = 3

// Name resolves free-text terms to a ranked mixed list of company and
// product hits.
type Name struct {
	store  catalog.Store
	lib    *dataset.Library
	events analytics.Emitter
}

// NewName creates a name resolver over the catalog store and the
// classification datasets. A nil emitter disables telemetry.
func NewName(store catalog.Store, lib *dataset.Library, events analytics.Emitter) *Name {
	if events == nil {
		events = analytics.Nop{}
	}
	return &Name{store: store, lib: lib, events: events}
}

// Search returns up to limit hits for term. The result order is fixed:
// boycotted companies first, then recommended companies, then catalog
// products, so ethical warnings surface before ordinary product matches.
// Terms shorter than two characters return an empty list without touching
// storage.
func (n *Name) Search(ctx context.Context, term string, limit int) ([]model.SearchHit, error) {
	if len(term) < minTermLength || limit <= 0 {
		return nil, nil
	}

	var hits []model.SearchHit

	for _, name := range dataset.MatchNames(n.lib.BoycottedNames(), term, companyHitCap) {
		rec, _ := n.lib.Boycotted(name)
		hits = append(hits, model.SearchHit{
			Kind:    model.HitBoycottedCompany,
			Company: name,
			Record:  &rec,
		})
	}

	for _, name := range dataset.MatchNames(n.lib.RecommendedNames(), term, companyHitCap) {
		rec, _ := n.lib.Recommended(name)
		hits = append(hits, model.SearchHit{
			Kind:    model.HitRecommendedCompany,
			Company: name,
			Record:  &rec,
		})
	}

	remaining := limit - len(hits)
	if remaining > 0 {
		products, err := n.store.QueryBySubstring(ctx, term, remaining)
		if err != nil {
			return nil, eris.Wrapf(err, "resolver: product search %q", term)
		}
		for i := range products {
			hits = append(hits, model.SearchHit{
				Kind:    model.HitProduct,
				Product: &products[i],
			})
		}
	}

	n.events.Emit(analytics.Event{
		Name: analytics.EventNameSearch,
		Fields: []zap.Field{
			zap.String("term", term),
			zap.Int("hits", len(hits)),
		},
	})
	return hits, nil
}
