// Package classify decides whether a resolved product's brand belongs to a
// boycotted or recommended company.
package classify

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pfaustino/boycott-evil/internal/analytics"
	"github.com/pfaustino/boycott-evil/internal/dataset"
	"github.com/pfaustino/boycott-evil/internal/model"
)

// Engine walks a product's brand through the alias graph and the
// classification datasets. The datasets are read-only, so an Engine is safe
// for concurrent use.
type Engine struct {
	lib    *dataset.Library
	events analytics.Emitter
}

// New creates a classification engine. A nil emitter disables telemetry.
func New(lib *dataset.Library, events analytics.Emitter) *Engine {
	if events == nil {
		events = analytics.Nop{}
	}
	return &Engine{lib: lib, events: events}
}

// Classify evaluates the decision list for one product. The list is
// ordered and first-match-wins; in particular the boycotted branches are
// exhausted before any recommended branch, so a company can never be
// reported good when it is also flagged evil.
func (e *Engine) Classify(product model.Product) model.Verdict {
	brand := product.NormalizedBrand
	extracted := false

	if brand == "" {
		brand = e.extractBrand(product.ProductName)
		if brand == "" {
			return e.emit(model.Verdict{Status: model.StatusUnknown})
		}
		extracted = true
	}

	// Boycotted: direct, then one alias hop.
	if rec, ok := e.lib.Boycotted(brand); ok && rec.Evil {
		return e.emit(model.Verdict{
			Status:    model.StatusEvil,
			Brand:     brand,
			Extracted: extracted,
			Boycott:   &rec,
		})
	}
	parent, hasParent := e.lib.ResolveAlias(brand)
	if hasParent {
		if rec, ok := e.lib.Boycotted(parent); ok && rec.Evil {
			return e.emit(model.Verdict{
				Status:    model.StatusEvil,
				Brand:     brand,
				Extracted: extracted,
				Boycott:   &rec,
			})
		}
	}

	// Recommended: direct, then the same resolved parent.
	if rec, ok := e.lib.Recommended(brand); ok && rec.Good {
		return e.emit(model.Verdict{
			Status:      model.StatusGood,
			Brand:       brand,
			Extracted:   extracted,
			Recommended: &rec,
		})
	}
	if hasParent {
		if rec, ok := e.lib.Recommended(parent); ok && rec.Good {
			return e.emit(model.Verdict{
				Status:      model.StatusGood,
				Brand:       brand,
				Extracted:   extracted,
				Recommended: &rec,
			})
		}
	}

	return e.emit(model.Verdict{Status: model.StatusClean, Brand: brand, Extracted: extracted})
}

// extractBrand recovers an effective brand from a display name when the
// catalog row carries no brand: the first known alias key or boycotted
// company name contained in the name wins. Scan order is the library's
// sorted key order, so extraction is deterministic.
func (e *Engine) extractBrand(productName string) string {
	name := strings.ToLower(productName)
	if name == "" {
		return ""
	}
	for _, key := range e.lib.AliasKeys() {
		if strings.Contains(name, key) {
			parent, _ := e.lib.ResolveAlias(key)
			return parent
		}
	}
	for _, company := range e.lib.BoycottedNames() {
		if strings.Contains(name, company) {
			return company
		}
	}
	return ""
}

func (e *Engine) emit(v model.Verdict) model.Verdict {
	var supports []string
	switch {
	case v.Boycott != nil:
		supports = v.Boycott.Supports
	case v.Recommended != nil:
		supports = v.Recommended.Supports
	}
	e.events.Emit(analytics.Event{
		Name: analytics.EventClassification,
		Fields: []zap.Field{
			zap.String("status", string(v.Status)),
			zap.String("brand", v.Brand),
			zap.Strings("supports", supports),
			zap.Bool("extracted", v.Extracted),
		},
	})
	return v
}
