package domain

import "time"

type DiscountKind string

const (
	DiscountFixed      DiscountKind = "FIXED"
	DiscountPercentage DiscountKind = "PERCENTAGE"
)

// Voucher is a promotional code. Eligibility rules are enforced by the
// voucher service only; clients hold the accepted discount amount.
type Voucher struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	Kind        DiscountKind `json:"kind"`
	Value       int64        `json:"value"`
	MaxDiscount int64        `json:"maxDiscount,omitempty"`
	MinPurchase int64        `json:"minPurchase"`
	Active      bool         `json:"active"`
	StartsAt    time.Time    `json:"startsAt"`
	EndsAt      time.Time    `json:"endsAt"`
	UsageCount  int          `json:"usageCount"`
	UsageLimit  int          `json:"usageLimit"`
	CreatedAt   time.Time    `json:"createdAt"`
}
