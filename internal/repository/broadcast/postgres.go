package broadcast

import (
	"context"
	"io"
	"log"

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

func (r *postgresRepo) Create(ctx context.Context, b domain.Broadcast) (*domain.Broadcast, error) {
	const q = `
INSERT INTO broadcasts (id, message, recipients, status)
VALUES (gen_random_uuid(), $1, $2, $3)
RETURNING id::text, message, recipients, status, created_at
`
	var created domain.Broadcast
	err := r.pool.QueryRow(ctx, q, b.Message, b.Recipients, b.Status).
		Scan(&created.ID, &created.Message, &created.Recipients, &created.Status, &created.CreatedAt)
	if err != nil {
		r.logger.Printf("broadcast repo: create error=%v", err)
		return nil, err
	}
	return &created, nil
}

func (r *postgresRepo) List(ctx context.Context, limit int) ([]domain.Broadcast, error) {
	const q = `
SELECT id::text, message, recipients, status, created_at
FROM broadcasts
ORDER BY created_at DESC
LIMIT $1
`
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("broadcast repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Broadcast
	for rows.Next() {
		var b domain.Broadcast
		if err := rows.Scan(&b.ID, &b.Message, &b.Recipients, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}
