package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/pfaustino/boycott-evil/internal/model"
)

// Pool abstracts the pgx pool methods the store needs, so tests can drive
// the store with pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// the hot resolution paths.
var preparedStatements = map[string]string{
	"get_product":     `SELECT code, product_name, brands, normalized_brand, url FROM products WHERE code = $1`,
	"query_prefix":    `SELECT code, product_name, brands, normalized_brand, url FROM products WHERE code LIKE $1 ORDER BY code LIMIT $2`,
	"query_substring": `SELECT code, product_name, brands, normalized_brand, url FROM products WHERE product_name ILIKE $1 OR brands ILIKE $1 ORDER BY code LIMIT $2`,
	"query_brand":     `SELECT code, product_name, brands, normalized_brand, url FROM products WHERE normalized_brand = $1 OR normalized_brand LIKE $2 ORDER BY code LIMIT $3`,
	"count_products":  `SELECT COUNT(*) FROM products`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS products (
	code             TEXT PRIMARY KEY,
	product_name     TEXT NOT NULL DEFAULT '',
	brands           TEXT NOT NULL DEFAULT '',
	normalized_brand TEXT NOT NULL DEFAULT '',
	url              TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_products_normalized_brand ON products(normalized_brand);
CREATE INDEX IF NOT EXISTS idx_products_code_pattern ON products(code text_pattern_ops);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) GetByCode(ctx context.Context, code string) (*model.Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT code, product_name, brands, normalized_brand, url FROM products WHERE code = $1`, code)

	var p model.Product
	err := row.Scan(&p.Code, &p.ProductName, &p.Brands, &p.NormalizedBrand, &p.URL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get product %s", code)
	}
	return &p, nil
}

func (s *PostgresStore) QueryByPrefix(ctx context.Context, prefix string, limit int) ([]model.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT code, product_name, brands, normalized_brand, url FROM products WHERE code LIKE $1 ORDER BY code LIMIT $2`,
		escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: query prefix %s", prefix)
	}
	return collectProducts(rows, "postgres: query prefix")
}

func (s *PostgresStore) QueryBySubstring(ctx context.Context, term string, limit int) ([]model.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT code, product_name, brands, normalized_brand, url FROM products WHERE product_name ILIKE $1 OR brands ILIKE $1 ORDER BY code LIMIT $2`,
		"%"+escapeLike(term)+"%", limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query substring")
	}
	return collectProducts(rows, "postgres: query substring")
}

func (s *PostgresStore) QueryByBrand(ctx context.Context, brand string, limit int) ([]model.Product, error) {
	normalized := model.NormalizeName(brand)
	rows, err := s.pool.Query(ctx,
		`SELECT code, product_name, brands, normalized_brand, url FROM products WHERE normalized_brand = $1 OR normalized_brand LIKE $2 ORDER BY code LIMIT $3`,
		normalized, escapeLike(normalized)+"%", limit)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: query brand %s", normalized)
	}
	return collectProducts(rows, "postgres: query brand")
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, eris.Wrap(err, "postgres: count products")
}

// bulkChunkSize bounds the parameter count of one multi-row upsert.
const bulkChunkSize = 500

func (s *PostgresStore) BulkUpsert(ctx context.Context, products []model.Product) error {
	for start := 0; start < len(products); start += bulkChunkSize {
		end := start + bulkChunkSize
		if end > len(products) {
			end = len(products)
		}
		if err := s.upsertChunk(ctx, products[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) upsertChunk(ctx context.Context, products []model.Product) error {
	sql, args := buildUpsert(products)
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return eris.Wrapf(err, "postgres: bulk upsert %d products", len(products))
	}
	return nil
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM products`)
	return eris.Wrap(err, "postgres: reset products")
}

// helpers

func collectProducts(rows pgx.Rows, wrap string) ([]model.Product, error) {
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
