package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pfaustino/boycott-evil/internal/fetcher"
	"github.com/pfaustino/boycott-evil/internal/model"
)

// ImportGoodTSV runs the recommended-companies pass over the DEI
// tab-separated sheet. Only rows explicitly marked "Yes" in the Not Evil
// column become good records; everything else is skipped.
func ImportGoodTSV(ctx context.Context, r io.Reader) (*PassResult, error) {
	res := &PassResult{Companies: map[string]model.CompanyRecord{}}

	rowCh, errCh := fetcher.StreamRecords(ctx, r, fetcher.CSVOptions{
		Delimiter:  '\t',
		LazyQuotes: true,
	})
	for row := range rowCh {
		brand := row.Get("Brand", "brand")
		if brand == "" || row.Get("Not Evil", "NotEvil") != "Yes" {
			continue
		}

		reason := row.Get("DEI Status", "DEIStatus")
		if reason == "" {
			reason = "Supports DEI"
		}
		if notes := row.Get("Notes", "notes"); len(notes) > 5 {
			reason = fmt.Sprintf("%s - %s", reason, notes)
		}

		rec := model.CompanyRecord{
			Good:     true,
			Reason:   reason,
			Category: row.Get("Type", "type"),
			Supports: []string{"Pro-DEI"},
		}
		if rec.Category == "" {
			rec.Category = "General"
		}
		if url := row.Get("url", "URL"); strings.HasPrefix(url, "http") {
			rec.Citations = []model.Citation{{
				URL:    url,
				Source: "Company DEI Page",
				Title:  brand + " DEI Policy",
			}}
		}
		mergeCompany(res.Companies, brand, rec)
	}
	if err := <-errCh; err != nil {
		return nil, eris.Wrap(err, "importer: good-companies pass")
	}
	return res, nil
}

// ImportDonorXLSX runs the donor-sheet pass: a spreadsheet of corporate
// donors whose companies are flagged evil with the Trump-Donor category.
func ImportDonorXLSX(path string) (*PassResult, error) {
	rows, err := fetcher.ReadXLSXRecords(path, fetcher.XLSXOptions{})
	if err != nil {
		return nil, eris.Wrap(err, "importer: donor pass")
	}

	res := &PassResult{Companies: map[string]model.CompanyRecord{}}
	for _, row := range rows {
		company := row.Get("Company", "company", "Brand", "brand", "Name", "name")
		if company == "" {
			continue
		}

		reason := row.Get("Notes", "notes", "Reason", "reason")
		if reason == "" {
			reason = "Donated to Trump campaigns, PACs, or inauguration fund"
		}
		if amount := row.Get("Amount", "amount"); amount != "" {
			reason = fmt.Sprintf("%s (donated %s)", reason, amount)
		}

		rec := model.CompanyRecord{
			Evil:     true,
			Reason:   clipReason(reason),
			Supports: []string{"Trump-Donor"},
		}
		if url := row.Get("Source", "source", "url"); strings.HasPrefix(url, "http") {
			rec.Citations = []model.Citation{{URL: url, Source: "Donor records"}}
		}
		mergeCompany(res.Companies, company, rec)
	}
	return res, nil
}
