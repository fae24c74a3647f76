package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Code         string
	Name         string
	Type         string
	CostPrice    int64
	SellingPrice int64
	Stock        int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, name := range []string{"CASH", "QRIS", "DEBIT"} {
		if err := ensurePaymentMethod(ctx, pool, name); err != nil {
			return fmt.Errorf("ensure payment method %s: %w", name, err)
		}
	}

	products := []productSeed{
		{Code: "PRF-001", Name: "Amber Noir 30ml", Type: "PERFUME", CostPrice: 32000, SellingPrice: 55000, Stock: 24},
		{Code: "PRF-002", Name: "Vanilla Oud 30ml", Type: "PERFUME", CostPrice: 35000, SellingPrice: 60000, Stock: 18},
		{Code: "PRF-003", Name: "Citrus Musk 50ml", Type: "PERFUME", CostPrice: 48000, SellingPrice: 85000, Stock: 10},
		{Code: "BTL-030", Name: "Empty Bottle 30ml", Type: "BOTTLE", CostPrice: 4000, SellingPrice: 8000, Stock: 100},
		{Code: "BTL-050", Name: "Empty Bottle 50ml", Type: "BOTTLE", CostPrice: 6000, SellingPrice: 12000, Stock: 60},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Code, err)
		}
	}

	if err := upsertVoucher(ctx, pool); err != nil {
		return fmt.Errorf("upsert voucher: %w", err)
	}
	if err := upsertCustomer(ctx, pool, "Sari Dewi", "081234567890"); err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}

	return nil
}

func ensurePaymentMethod(ctx context.Context, pool *pgxpool.Pool, name string) error {
	const q = `
INSERT INTO payment_methods (name)
VALUES ($1)
ON CONFLICT (name) DO NOTHING
`
	_, err := pool.Exec(ctx, q, name)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (code, name, type, cost_price, selling_price, stock)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (code) DO UPDATE
SET name = EXCLUDED.name,
    type = EXCLUDED.type,
    cost_price = EXCLUDED.cost_price,
    selling_price = EXCLUDED.selling_price
`
	_, err := pool.Exec(ctx, q, p.Code, p.Name, p.Type, p.CostPrice, p.SellingPrice, p.Stock)
	return err
}

func upsertVoucher(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO vouchers (code, kind, value, max_discount, min_purchase, active, starts_at, ends_at, usage_limit)
VALUES ($1, 'FIXED', $2, 0, $3, true, $4, $5, 0)
ON CONFLICT (code) DO NOTHING
`
	now := time.Now()
	_, err := pool.Exec(ctx, q, "WELCOME20", int64(20000), int64(100000), now, now.AddDate(0, 3, 0))
	return err
}

func upsertCustomer(ctx context.Context, pool *pgxpool.Pool, name, phone string) error {
	const q = `
INSERT INTO customers (name, phone)
VALUES ($1, $2)
ON CONFLICT (phone) DO NOTHING
`
	_, err := pool.Exec(ctx, q, name, phone)
	return err
}
