package product

import (
	"context"
	"errors"
	"io"
	"log"

	"scentpos/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, code, name, type, cost_price, selling_price, stock, created_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Type, &p.CostPrice, &p.SellingPrice, &p.Stock, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%'
ORDER BY name ASC
LIMIT $2
`
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, q, query, limit)
	if err != nil {
		r.logger.Printf("product repo: search query=%q error=%v", query, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, code, name, type, cost_price, selling_price, stock)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7)
RETURNING ` + productColumns + `
`
	created, err := scanProduct(r.pool.QueryRow(ctx, q, p.ID, p.Code, p.Name, p.Type, p.CostPrice, p.SellingPrice, p.Stock))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		r.logger.Printf("product repo: create code=%s error=%v", p.Code, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s code=%s", created.ID, created.Code)
	return created, nil
}

// Upsert inserts by code or refreshes an existing row. Stock is only
// set on first insert so an import never clobbers a live count.
func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, code, name, type, cost_price, selling_price, stock)
VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
ON CONFLICT (code) DO UPDATE
SET name = EXCLUDED.name,
    type = EXCLUDED.type,
    cost_price = EXCLUDED.cost_price,
    selling_price = EXCLUDED.selling_price
RETURNING ` + productColumns + `
`
	upserted, err := scanProduct(r.pool.QueryRow(ctx, q, p.Code, p.Name, p.Type, p.CostPrice, p.SellingPrice, p.Stock))
	if err != nil {
		r.logger.Printf("product repo: upsert code=%s error=%v", p.Code, err)
		return nil, err
	}
	return upserted, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET code = $2, name = $3, type = $4, cost_price = $5, selling_price = $6, stock = $7
WHERE id = $1
RETURNING ` + productColumns + `
`
	updated, err := scanProduct(r.pool.QueryRow(ctx, q, p.ID, p.Code, p.Name, p.Type, p.CostPrice, p.SellingPrice, p.Stock))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrConflict
		}
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock records a stock-opname correction and sets the on-hand
// count in one transaction.
func (r *postgresRepo) AdjustStock(ctx context.Context, productID string, actualStock int, notes string) (*domain.StockAdjustment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var previous int
	err = tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE products SET stock = $2 WHERE id = $1`, productID, actualStock); err != nil {
		return nil, err
	}

	const insert = `
INSERT INTO stock_adjustments (id, product_id, previous_stock, actual_stock, difference, notes)
VALUES (gen_random_uuid(), $1, $2, $3, $4, NULLIF($5, ''))
RETURNING id::text, created_at
`
	adj := domain.StockAdjustment{
		ProductID:     productID,
		PreviousStock: previous,
		ActualStock:   actualStock,
		Difference:    actualStock - previous,
		Notes:         notes,
	}
	if err := tx.QueryRow(ctx, insert, productID, previous, actualStock, adj.Difference, notes).Scan(&adj.ID, &adj.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("product repo: stock adjusted id=%s previous=%d actual=%d", productID, previous, actualStock)
	return &adj, nil
}
