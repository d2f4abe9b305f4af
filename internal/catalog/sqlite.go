package catalog

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/pfaustino/boycott-evil/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS products (
	code             TEXT PRIMARY KEY,
	product_name     TEXT NOT NULL DEFAULT '',
	brands           TEXT NOT NULL DEFAULT '',
	normalized_brand TEXT NOT NULL DEFAULT '',
	url              TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_products_normalized_brand ON products(normalized_brand);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const productColumns = `code, product_name, brands, normalized_brand, url`

func (s *SQLiteStore) GetByCode(ctx context.Context, code string) (*model.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE code = ?`, code)

	var p model.Product
	err := row.Scan(&p.Code, &p.ProductName, &p.Brands, &p.NormalizedBrand, &p.URL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get product %s", code)
	}
	return &p, nil
}

func (s *SQLiteStore) QueryByPrefix(ctx context.Context, prefix string, limit int) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE code LIKE ? ESCAPE '\'
		 ORDER BY code LIMIT ?`,
		escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query prefix %s", prefix)
	}
	return scanProducts(rows, "sqlite: query prefix")
}

func (s *SQLiteStore) QueryBySubstring(ctx context.Context, term string, limit int) ([]model.Product, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE product_name LIKE ? ESCAPE '\' OR brands LIKE ? ESCAPE '\'
		 ORDER BY code LIMIT ?`,
		pattern, pattern, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query substring")
	}
	return scanProducts(rows, "sqlite: query substring")
}

func (s *SQLiteStore) QueryByBrand(ctx context.Context, brand string, limit int) ([]model.Product, error) {
	normalized := model.NormalizeName(brand)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE normalized_brand = ? OR normalized_brand LIKE ? ESCAPE '\'
		 ORDER BY code LIMIT ?`,
		normalized, escapeLike(normalized)+"%", limit)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query brand %s", normalized)
	}
	return scanProducts(rows, "sqlite: query brand")
}

func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count products")
}

func (s *SQLiteStore) BulkUpsert(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin bulk upsert")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET
			product_name = excluded.product_name,
			brands = excluded.brands,
			normalized_brand = excluded.normalized_brand,
			url = excluded.url`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare upsert")
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.Code, p.ProductName, p.Brands, p.NormalizedBrand, p.URL); err != nil {
			return eris.Wrapf(err, "sqlite: upsert product %s", p.Code)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit bulk upsert")
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products`)
	return eris.Wrap(err, "sqlite: reset products")
}

// helpers

func scanProducts(rows *sql.Rows, wrap string) ([]model.Product, error) {
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.Code, &p.ProductName, &p.Brands, &p.NormalizedBrand, &p.URL); err != nil {
			return nil, eris.Wrap(err, wrap+" scan")
		}
		products = append(products, p)
	}
	return products, eris.Wrap(rows.Err(), wrap+" iterate")
}

// escapeLike neutralizes LIKE metacharacters in user-supplied terms.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
