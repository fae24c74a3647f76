package transaction

import (
	"context"
	"errors"
	"io"
	"log"

	"scentpos/internal/domain"

	"github.com/jackc/pgx/v5"
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

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Transaction, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	t := in.Transaction
	const insertTx = `
INSERT INTO transactions (id, customer_id, shift_id, payment_method_id, voucher_code, used_points,
                          subtotal, points_discount, voucher_discount, total, cash_paid, change)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12)
RETURNING id::text, created_at
`
	err = tx.QueryRow(ctx, insertTx,
		t.ID, t.CustomerID, t.ShiftID, t.PaymentMethodID, t.VoucherCode, t.UsedPoints,
		t.Subtotal, t.PointsDiscount, t.VoucherDiscount, t.Total, t.CashPaid, t.Change,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		r.logger.Printf("transaction repo: insert error=%v", err)
		return nil, err
	}

	const insertItem = `
INSERT INTO transaction_items (id, transaction_id, product_id, product_name, unit_price, quantity, total)
VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
RETURNING id::text
`
	// Guarded decrement: zero rows affected means stock went short
	// between cart build and submit.
	const decrementStock = `
UPDATE products SET stock = stock - $2
WHERE id = $1 AND stock >= $2
`
	for i := range t.Items {
		item := &t.Items[i]
		item.TransactionID = t.ID
		if err := tx.QueryRow(ctx, insertItem, t.ID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, item.Total).Scan(&item.ID); err != nil {
			r.logger.Printf("transaction repo: insert item product_id=%s error=%v", item.ProductID, err)
			return nil, err
		}
		tag, err := tx.Exec(ctx, decrementStock, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			r.logger.Printf("transaction repo: stock short product_id=%s qty=%d", item.ProductID, item.Quantity)
			return nil, domain.ErrInsufficientStock
		}
	}

	if t.CustomerID != nil {
		if err := r.movePoints(ctx, tx, *t.CustomerID, t.ID, in.RedeemPoints, in.EarnPoints); err != nil {
			return nil, err
		}
	}

	if in.VoucherID != "" {
		const useVoucher = `
UPDATE vouchers SET usage_count = usage_count + 1
WHERE id = $1 AND (usage_limit = 0 OR usage_count < usage_limit)
`
		tag, err := tx.Exec(ctx, useVoucher, in.VoucherID)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, domain.ErrConflict
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("transaction repo: created id=%s total=%d items=%d", t.ID, t.Total, len(t.Items))
	return &t, nil
}

func (r *postgresRepo) movePoints(ctx context.Context, tx pgx.Tx, customerID, transactionID string, redeem, earn int) error {
	const insertEntry = `
INSERT INTO point_entries (id, customer_id, delta, reason, transaction_id)
VALUES (gen_random_uuid(), $1, $2, $3, $4)
`
	// Balance guard mirrors the ledger: redemption cannot take the
	// denormalized balance negative.
	const applyDelta = `
UPDATE customers SET points = points + $2
WHERE id = $1 AND points + $2 >= 0
`
	if redeem > 0 {
		if _, err := tx.Exec(ctx, insertEntry, customerID, -redeem, "redeem", transactionID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, applyDelta, customerID, -redeem)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrConflict
		}
	}
	if earn > 0 {
		if _, err := tx.Exec(ctx, insertEntry, customerID, earn, "earn", transactionID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, applyDelta, customerID, earn); err != nil {
			return err
		}
	}
	return nil
}

const transactionColumns = `id::text, customer_id::text, shift_id::text, payment_method_id::text, COALESCE(voucher_code, ''), used_points,
       subtotal, points_discount, voucher_discount, total, cash_paid, change, created_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.ID, &t.CustomerID, &t.ShiftID, &t.PaymentMethodID, &t.VoucherCode, &t.UsedPoints,
		&t.Subtotal, &t.PointsDiscount, &t.VoucherDiscount, &t.Total, &t.CashPaid, &t.Change, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepo) List(ctx context.Context, limit int) ([]domain.Transaction, error) {
	const q = `
SELECT ` + transactionColumns + `
FROM transactions
ORDER BY created_at DESC
LIMIT $1
`
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("transaction repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	const q = `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("transaction repo: get id=%s error=%v", id, err)
		return nil, err
	}

	const items = `
SELECT id::text, transaction_id::text, product_id::text, product_name, unit_price, quantity, total
FROM transaction_items
WHERE transaction_id = $1
ORDER BY product_name ASC
`
	rows, err := r.pool.Query(ctx, items, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.TransactionItem
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity, &item.Total); err != nil {
			return nil, err
		}
		t.Items = append(t.Items, item)
	}
	return t, rows.Err()
}

func (r *postgresRepo) CashSalesForShift(ctx context.Context, shiftID string) (int64, error) {
	const q = `
SELECT COALESCE(SUM(t.total), 0)
FROM transactions t
JOIN payment_methods pm ON pm.id = t.payment_method_id
WHERE t.shift_id = $1 AND pm.name = $2
`
	var sum int64
	if err := r.pool.QueryRow(ctx, q, shiftID, domain.PaymentCash).Scan(&sum); err != nil {
		r.logger.Printf("transaction repo: cash sales shift_id=%s error=%v", shiftID, err)
		return 0, err
	}
	return sum, nil
}
