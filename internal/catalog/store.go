// Package catalog provides the product catalog store: a durable table of
// products keyed by barcode, with the narrow query contract the resolution
// core needs. Two backends exist, an embedded SQLite database and a remote
// Postgres database; callers depend only on the Store interface.
package catalog

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/pfaustino/boycott-evil/internal/model"
)

// Store defines the catalog query and import contract.
//
// Lookup misses are not errors: GetByCode returns (nil, nil) for an absent
// code and the query methods return empty slices. Errors mean the storage
// backend itself failed and the caller must surface that distinctly from
// "not found".
type Store interface {
	// GetByCode returns the product whose code equals code, or nil.
	GetByCode(ctx context.Context, code string) (*model.Product, error)
	// QueryByPrefix returns up to limit products whose code starts with
	// prefix, in stable (code) order.
	QueryByPrefix(ctx context.Context, prefix string, limit int) ([]model.Product, error)
	// QueryBySubstring returns up to limit products whose name or brands
	// contain term, matched case-insensitively.
	QueryBySubstring(ctx context.Context, term string, limit int) ([]model.Product, error)
	// QueryByBrand returns up to limit products whose normalized brand
	// equals brand or starts with it.
	QueryByBrand(ctx context.Context, brand string, limit int) ([]model.Product, error)
	// Count returns the total number of catalog rows.
	Count(ctx context.Context) (int64, error)

	// BulkUpsert inserts or replaces products by code. Import pipeline only;
	// never called during resolution.
	BulkUpsert(ctx context.Context, products []model.Product) error
	// Reset drops all catalog rows. Explicit administrative action.
	Reset(ctx context.Context) error

	Migrate(ctx context.Context) error
	Close() error
}

// Drivers selectable via configuration.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open creates a Store for the configured driver. The resolution core never
// branches on which backend is active.
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	switch driver {
	case DriverSQLite:
		return NewSQLite(dsn)
	case DriverPostgres:
		return NewPostgres(ctx, dsn, poolCfg)
	default:
		return nil, eris.Errorf("catalog: unknown store driver %q", driver)
	}
}
