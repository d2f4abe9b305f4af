package importer

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pfaustino/boycott-evil/internal/catalog"
	"github.com/pfaustino/boycott-evil/internal/fetcher"
	"github.com/pfaustino/boycott-evil/internal/model"
)

// CatalogOptions configures a bulk catalog import.
type CatalogOptions struct {
	// Delimiter of the export file: ',' for off-mini.csv, '\t' for the
	// full TSV dump. Default ','.
	Delimiter rune
	// BatchSize is how many rows to buffer per BulkUpsert. Default 1000.
	BatchSize int
}

// ImportCatalog streams an Open Food Facts export into the catalog store.
// Rows without a code, and rows carrying neither a brand nor a name, are
// skipped. Returns the number of rows imported.
func ImportCatalog(ctx context.Context, store catalog.Store, r io.Reader, opts CatalogOptions) (int, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1000
	}
	runID := uuid.New().String()

	rowCh, errCh := fetcher.StreamRecords(ctx, r, fetcher.CSVOptions{
		Delimiter:  opts.Delimiter,
		LazyQuotes: true,
	})

	var (
		batch    []model.Product
		imported int
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := store.BulkUpsert(ctx, batch); err != nil {
			return eris.Wrap(err, "importer: store batch")
		}
		imported += len(batch)
		batch = batch[:0]
		return nil
	}

	for row := range rowCh {
		p, ok := productFromRow(row)
		if !ok {
			continue
		}
		batch = append(batch, p)
		if len(batch) >= opts.BatchSize {
			if err := flush(); err != nil {
				return imported, err
			}
			if imported%50000 == 0 {
				zap.L().Info("catalog import progress",
					zap.String("run_id", runID),
					zap.Int("imported", imported),
				)
			}
		}
	}
	if err := <-errCh; err != nil {
		return imported, eris.Wrap(err, "importer: read catalog export")
	}
	if err := flush(); err != nil {
		return imported, err
	}

	zap.L().Info("catalog import complete",
		zap.String("run_id", runID),
		zap.Int("imported", imported),
	)
	return imported, nil
}

// productFromRow maps one export row to a Product, handling the column
// variations between the mini CSV and the full TSV dump.
func productFromRow(row fetcher.Row) (model.Product, bool) {
	code := row.Get("code")
	if code == "" {
		return model.Product{}, false
	}

	brands := row.Get("brands", "brands_tags")
	name := row.Get("product_name", "product_name_en")
	if brands == "" && name == "" {
		return model.Product{}, false
	}

	return model.Product{
		Code:            code,
		ProductName:     name,
		Brands:          brands,
		NormalizedBrand: model.NormalizeBrand(brands),
		URL:             row.Get("url"),
	}, true
}
