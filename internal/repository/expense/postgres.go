package expense

import (
	"context"
	"io"
	"log"
	"time"

	"scentpos/internal/domain"

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Expense, error) {
	const q = `
SELECT id::text, description, amount, spent_at, created_at
FROM expenses
ORDER BY spent_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("expense repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.SpentAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, e domain.Expense) (*domain.Expense, error) {
	const q = `
INSERT INTO expenses (id, description, amount, spent_at)
VALUES (gen_random_uuid(), $1, $2, $3)
RETURNING id::text, description, amount, spent_at, created_at
`
	var created domain.Expense
	err := r.pool.QueryRow(ctx, q, e.Description, e.Amount, e.SpentAt).
		Scan(&created.ID, &created.Description, &created.Amount, &created.SpentAt, &created.CreatedAt)
	if err != nil {
		r.logger.Printf("expense repo: create error=%v", err)
		return nil, err
	}
	return &created, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("expense repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) TotalBetween(ctx context.Context, from, to time.Time) (int64, error) {
	const q = `
SELECT COALESCE(SUM(amount), 0)
FROM expenses
WHERE spent_at >= $1 AND spent_at < $2
`
	var sum int64
	if err := r.pool.QueryRow(ctx, q, from, to).Scan(&sum); err != nil {
		r.logger.Printf("expense repo: total between error=%v", err)
		return 0, err
	}
	return sum, nil
}
