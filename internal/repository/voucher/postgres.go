package voucher

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

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

const voucherColumns = `id::text, code, kind, value, max_discount, min_purchase, active, starts_at, ends_at, usage_count, usage_limit, created_at`

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var v domain.Voucher
	err := row.Scan(&v.ID, &v.Code, &v.Kind, &v.Value, &v.MaxDiscount, &v.MinPurchase, &v.Active, &v.StartsAt, &v.EndsAt, &v.UsageCount, &v.UsageLimit, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Voucher, error) {
	const q = `SELECT ` + voucherColumns + ` FROM vouchers ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("voucher repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	const q = `SELECT ` + voucherColumns + ` FROM vouchers WHERE UPPER(code) = $1`
	v, err := scanVoucher(r.pool.QueryRow(ctx, q, strings.ToUpper(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("voucher repo: get code=%s error=%v", code, err)
		return nil, err
	}
	return v, nil
}

func (r *postgresRepo) Create(ctx context.Context, v domain.Voucher) (*domain.Voucher, error) {
	const q = `
INSERT INTO vouchers (id, code, kind, value, max_discount, min_purchase, active, starts_at, ends_at, usage_limit)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + voucherColumns + `
`
	created, err := scanVoucher(r.pool.QueryRow(ctx, q,
		v.ID, strings.ToUpper(v.Code), v.Kind, v.Value, v.MaxDiscount, v.MinPurchase, v.Active, v.StartsAt, v.EndsAt, v.UsageLimit))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		r.logger.Printf("voucher repo: create code=%s error=%v", v.Code, err)
		return nil, err
	}
	r.logger.Printf("voucher repo: created code=%s", created.Code)
	return created, nil
}

func (r *postgresRepo) Update(ctx context.Context, v domain.Voucher) (*domain.Voucher, error) {
	const q = `
UPDATE vouchers
SET kind = $2, value = $3, max_discount = $4, min_purchase = $5, active = $6, starts_at = $7, ends_at = $8, usage_limit = $9
WHERE id = $1
RETURNING ` + voucherColumns + `
`
	updated, err := scanVoucher(r.pool.QueryRow(ctx, q,
		v.ID, v.Kind, v.Value, v.MaxDiscount, v.MinPurchase, v.Active, v.StartsAt, v.EndsAt, v.UsageLimit))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("voucher repo: update id=%s error=%v", v.ID, err)
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vouchers WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("voucher repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
