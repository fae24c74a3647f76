package shift

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

const shiftColumns = `id::text, cashier_name, opening_cash, actual_cash, expected_cash, discrepancy, status, opened_at, closed_at`

func scanShift(row pgx.Row) (*domain.Shift, error) {
	var s domain.Shift
	err := row.Scan(&s.ID, &s.CashierName, &s.OpeningCash, &s.ActualCash, &s.ExpectedCash, &s.Discrepancy, &s.Status, &s.OpenedAt, &s.ClosedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) Open(ctx context.Context, cashierName string, openingCash int64) (*domain.Shift, error) {
	// The partial unique index on status = 'OPEN' enforces one active
	// shift at a time.
	const q = `
INSERT INTO shifts (id, cashier_name, opening_cash, status)
VALUES (gen_random_uuid(), $1, $2, 'OPEN')
RETURNING ` + shiftColumns + `
`
	s, err := scanShift(r.pool.QueryRow(ctx, q, cashierName, openingCash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		r.logger.Printf("shift repo: open cashier=%s error=%v", cashierName, err)
		return nil, err
	}
	r.logger.Printf("shift repo: opened id=%s cashier=%s", s.ID, s.CashierName)
	return s, nil
}

func (r *postgresRepo) Close(ctx context.Context, in CloseInput) (*domain.Shift, error) {
	const q = `
UPDATE shifts
SET actual_cash = $2, expected_cash = $3, discrepancy = $4, status = 'CLOSED', closed_at = now()
WHERE id = $1 AND status = 'OPEN'
RETURNING ` + shiftColumns + `
`
	s, err := scanShift(r.pool.QueryRow(ctx, q, in.ShiftID, in.ActualCash, in.ExpectedCash, in.Discrepancy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("shift repo: close id=%s error=%v", in.ShiftID, err)
		return nil, err
	}
	r.logger.Printf("shift repo: closed id=%s discrepancy=%d", s.ID, in.Discrepancy)
	return s, nil
}

func (r *postgresRepo) GetActive(ctx context.Context) (*domain.Shift, error) {
	const q = `SELECT ` + shiftColumns + ` FROM shifts WHERE status = 'OPEN'`
	s, err := scanShift(r.pool.QueryRow(ctx, q))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	const q = `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`
	s, err := scanShift(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) List(ctx context.Context, limit int) ([]domain.Shift, error) {
	const q = `SELECT ` + shiftColumns + ` FROM shifts ORDER BY opened_at DESC LIMIT $1`
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("shift repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}
