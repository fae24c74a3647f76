package domain

import "time"

type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PaymentCash is the seeded name of the cash method. Only cash sales
// count toward shift reconciliation.
const PaymentCash = "CASH"

type Transaction struct {
	ID              string            `json:"id"`
	CustomerID      *string           `json:"customerId,omitempty"`
	ShiftID         *string           `json:"shiftId,omitempty"`
	PaymentMethodID string            `json:"paymentMethodId"`
	VoucherCode     string            `json:"voucherCode,omitempty"`
	UsedPoints      bool              `json:"usedPoints"`
	Subtotal        int64             `json:"subtotal"`
	PointsDiscount  int64             `json:"pointsDiscount"`
	VoucherDiscount int64             `json:"voucherDiscount"`
	Total           int64             `json:"total"`
	CashPaid        int64             `json:"cashPaid"`
	Change          int64             `json:"change"`
	Items           []TransactionItem `json:"items,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

type TransactionItem struct {
	ID            string `json:"id"`
	TransactionID string `json:"transactionId"`
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	UnitPrice     int64  `json:"unitPrice"`
	Quantity      int    `json:"quantity"`
	Total         int64  `json:"total"`
}
