package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pfaustino/boycott-evil/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleProduct resolves a barcode and classifies the matched product.
func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	result, err := s.deps.Barcode.Resolve(r.Context(), code)
	if err != nil {
		zap.L().Error("barcode resolve failed", zap.String("code", code), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	resp := struct {
		Result  model.SmartSearchResult `json:"result"`
		Verdict *model.Verdict          `json:"verdict,omitempty"`
	}{Result: result}

	if result.Product != nil {
		v := s.deps.Engine.Classify(*result.Product)
		resp.Verdict = &v
	}

	status := http.StatusOK
	if result.MatchType == model.MatchNone {
		status = http.StatusNotFound
	}
	writeJSON(w, status, resp)
}

// handleBrand classifies a brand and lists catalog products sold under it.
func (s *Server) handleBrand(w http.ResponseWriter, r *http.Request) {
	brand := chi.URLParam(r, "brand")

	products, err := s.deps.Store.QueryByBrand(r.Context(), brand, s.maxResults)
	if err != nil {
		zap.L().Error("brand query failed", zap.String("brand", brand), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	v := s.deps.Engine.Classify(model.Product{
		Code:            model.BrandCode(brand),
		ProductName:     brand,
		Brands:          brand,
		NormalizedBrand: model.NormalizeBrand(brand),
	})

	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"verdict":  v,
		"products": products,
	})
}

// handleSearch runs the free-text name search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if len(term) < 2 {
		writeError(w, http.StatusBadRequest, "query parameter q must be at least 2 characters")
		return
	}

	limit := s.maxResults
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if n < limit {
			limit = n
		}
	}

	hits, err := s.deps.Name.Search(r.Context(), term, limit)
	if err != nil {
		zap.L().Error("name search failed", zap.String("term", term), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if hits == nil {
		hits = []model.SearchHit{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"hits": hits})
}

// handleStatus reports catalog and dataset sizes.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.deps.Store.Count(r.Context())
	if err != nil {
		zap.L().Error("catalog count failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "status unavailable")
		return
	}
	boycotted, recommended, aliases := s.deps.Library.Counts()
	writeJSON(w, http.StatusOK, map[string]any{
		"products":    count,
		"boycotted":   boycotted,
		"recommended": recommended,
		"aliases":     aliases,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
