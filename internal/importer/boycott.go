package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pfaustino/boycott-evil/internal/dataset"
	"github.com/pfaustino/boycott-evil/internal/fetcher"
	"github.com/pfaustino/boycott-evil/internal/model"
)

// maxReasonLength truncates noisy free-text proofs from upstream lists.
const maxReasonLength = 300

// witnessEntry is one record of the witness-list JSON document.
type witnessEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Reason       string   `json:"reason"`
	Description  string   `json:"Description"`
	Alternatives []string `json:"alternatives"`
	Source       string   `json:"source"`
}

// ImportWitnessJSON runs the witness-list pass: a flat JSON array of
// companies, each becoming an evil record tagged with the given support
// category and a synthetic brand entry.
func ImportWitnessJSON(ctx context.Context, r io.Reader, tag string) (*PassResult, error) {
	res := &PassResult{Companies: map[string]model.CompanyRecord{}}

	entryCh, errCh := fetcher.DecodeJSONArray[witnessEntry](ctx, r)
	for entry := range entryCh {
		name := entry.Name
		if name == "" {
			name = entry.ID
		}
		if name == "" {
			continue
		}

		reason := entry.Reason
		if reason == "" {
			reason = entry.Description
		}
		if reason == "" {
			reason = "Supports " + tag
		}

		rec := model.CompanyRecord{
			Evil:         true,
			Reason:       clipReason(reason),
			Alternatives: cleanList(entry.Alternatives),
			Supports:     []string{tag},
		}
		mergeCompany(res.Companies, name, rec)
		res.Brands = append(res.Brands, BrandEntry{Name: name, URL: entry.Source})
	}
	if err := <-errCh; err != nil {
		return nil, eris.Wrap(err, "importer: witness pass")
	}
	return res, nil
}

// ImportAvoidCSV runs the avoid-list pass: a CSV of brands with optional
// parent companies. The parent (when present) receives the classification
// record and the brand becomes an alias of it; brands without a parent are
// classified directly.
func ImportAvoidCSV(ctx context.Context, r io.Reader, tag string) (*PassResult, error) {
	res := &PassResult{
		Companies: map[string]model.CompanyRecord{},
		Aliases:   map[string]string{},
	}

	rowCh, errCh := fetcher.StreamRecords(ctx, r, fetcher.CSVOptions{LazyQuotes: true})
	for row := range rowCh {
		brand := row.Get("Brand", "brand")
		parent := row.Get("Parent", "parent", "Main", "main")
		company := parent
		if company == "" {
			company = brand
		}
		if company == "" {
			continue
		}

		reason := row.Get("Why?", "Why", "reason")
		if reason == "" {
			reason = "Supports " + tag
		}
		if proof := row.Get("Proof", "proof"); proof != "" {
			reason = fmt.Sprintf("%s (%s)", reason, proof)
		}

		rec := model.CompanyRecord{
			Evil:         true,
			Reason:       clipReason(reason),
			Alternatives: splitList(row.Get("Alternatives", "alternatives")),
			Supports:     []string{tag},
		}
		mergeCompany(res.Companies, company, rec)

		if brand != "" {
			res.Brands = append(res.Brands, BrandEntry{Name: brand, URL: row.Get("Proof", "proof")})
			b := model.NormalizeName(brand)
			p := model.NormalizeName(company)
			if b != p {
				res.Aliases[b] = p
			}
		}
	}
	if err := <-errCh; err != nil {
		return nil, eris.Wrap(err, "importer: avoid pass")
	}
	return res, nil
}

// formattedEntry is one record of the formatted boycott-list JSON document,
// which nests everything under an attributes object.
type formattedEntry struct {
	Attributes struct {
		Name        string `json:"name"`
		Proof       string `json:"proof"`
		ProofURL    string `json:"proofUrl"`
		Alternative struct {
			Data []struct {
				Attributes struct {
					Name string `json:"name"`
				} `json:"attributes"`
			} `json:"data"`
		} `json:"alternative"`
	} `json:"attributes"`
}

// ImportFormattedJSON runs the formatted boycott-list pass.
func ImportFormattedJSON(ctx context.Context, r io.Reader, tag string) (*PassResult, error) {
	res := &PassResult{Companies: map[string]model.CompanyRecord{}}

	entryCh, errCh := fetcher.DecodeJSONArray[formattedEntry](ctx, r)
	for entry := range entryCh {
		attrs := entry.Attributes
		if attrs.Name == "" {
			continue
		}

		reason := attrs.Proof
		if reason == "" {
			reason = "Supports " + tag
		}

		var alternatives []string
		for _, alt := range attrs.Alternative.Data {
			if alt.Attributes.Name != "" {
				alternatives = append(alternatives, alt.Attributes.Name)
			}
		}

		rec := model.CompanyRecord{
			Evil:         true,
			Reason:       clipReason(reason),
			Alternatives: alternatives,
			Supports:     []string{tag},
		}
		if attrs.ProofURL != "" {
			rec.Citations = []model.Citation{{URL: attrs.ProofURL, Source: "Boycott list"}}
		}
		mergeCompany(res.Companies, attrs.Name, rec)
		res.Brands = append(res.Brands, BrandEntry{Name: attrs.Name, URL: attrs.ProofURL})
	}
	if err := <-errCh; err != nil {
		return nil, eris.Wrap(err, "importer: formatted pass")
	}
	return res, nil
}

// helpers shared by the passes

func mergeCompany(companies map[string]model.CompanyRecord, name string, rec model.CompanyRecord) {
	key := model.NormalizeName(name)
	if existing, ok := companies[key]; ok {
		companies[key] = dataset.Merge(existing, rec)
	} else {
		companies[key] = rec
	}
}

func clipReason(reason string) string {
	if len(reason) > maxReasonLength {
		return reason[:maxReasonLength]
	}
	return reason
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return cleanList(strings.Split(s, ","))
}

func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
