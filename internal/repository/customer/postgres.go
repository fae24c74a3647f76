package customer

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

const customerColumns = `id::text, name, phone, points, created_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Points, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Search(ctx context.Context, query string, limit int) ([]domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%'
ORDER BY name ASC
LIMIT $2
`
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, q, query, limit)
	if err != nil {
		r.logger.Printf("customer repo: search query=%q error=%v", query, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (id, name, phone, points)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4)
RETURNING ` + customerColumns + `
`
	created, err := scanCustomer(r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Phone, c.Points))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		r.logger.Printf("customer repo: create phone=%s error=%v", c.Phone, err)
		return nil, err
	}
	r.logger.Printf("customer repo: created id=%s", created.ID)
	return created, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET name = $2, phone = $3
WHERE id = $1
RETURNING ` + customerColumns + `
`
	updated, err := scanCustomer(r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		r.logger.Printf("customer repo: update id=%s error=%v", c.ID, err)
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrConflict
		}
		r.logger.Printf("customer repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) CountWithPhone(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE phone <> ''`).Scan(&count)
	if err != nil {
		r.logger.Printf("customer repo: count with phone error=%v", err)
		return 0, err
	}
	return count, nil
}

func (r *postgresRepo) PointHistory(ctx context.Context, customerID string) ([]domain.PointEntry, error) {
	const q = `
SELECT id::text, customer_id::text, delta, reason, transaction_id::text, created_at
FROM point_entries
WHERE customer_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("customer repo: point history customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.PointEntry
	for rows.Next() {
		var e domain.PointEntry
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.Delta, &e.Reason, &e.TransactionID, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
