package checkout

import "scentpos/internal/domain"

// PointsRule is the flat loyalty redemption rule: Block points buy
// Discount rupiah off, once per transaction.
type PointsRule struct {
	Block    int
	Discount int64
}

// DefaultPointsRule matches the store's standing promotion.
var DefaultPointsRule = PointsRule{Block: 10, Discount: 30000}

// Totals are the derived amounts for a checkout session.
type Totals struct {
	Subtotal        int64 `json:"subtotal"`
	PointsDiscount  int64 `json:"pointsDiscount"`
	VoucherDiscount int64 `json:"voucherDiscount"`
	Total           int64 `json:"total"`
}

// CalculateTotals derives totals from the current session state. It is
// pure: the voucher discount is whatever the validator last accepted,
// never recomputed here.
func CalculateTotals(lines []Line, customer *domain.Customer, usePoints bool, voucherDiscount int64, rule PointsRule) Totals {
	var t Totals
	for _, line := range lines {
		t.Subtotal += line.Product.SellingPrice * int64(line.Quantity)
	}
	if usePoints && customer != nil && customer.Points >= rule.Block {
		t.PointsDiscount = rule.Discount
	}
	t.VoucherDiscount = voucherDiscount
	t.Total = t.Subtotal - t.PointsDiscount - t.VoucherDiscount
	if t.Total < 0 {
		t.Total = 0
	}
	return t
}
