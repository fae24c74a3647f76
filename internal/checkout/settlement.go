package checkout

import "errors"

// ErrInsufficientCash blocks settlement when the tendered amount does
// not cover the total.
var ErrInsufficientCash = errors.New("cash paid is less than total")

// Settlement is the result of a confirmed cash payment. The caller
// builds the transaction request from it; settling never touches the
// network.
type Settlement struct {
	CashPaid int64 `json:"cashPaid"`
	Change   int64 `json:"change"`
}

// Settle validates the tendered cash against the total and computes
// change. No settlement is emitted when cash is short.
func Settle(total, cashPaid int64) (Settlement, error) {
	if cashPaid < total {
		return Settlement{}, ErrInsufficientCash
	}
	return Settlement{CashPaid: cashPaid, Change: cashPaid - total}, nil
}
