package domain

import "time"

type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "OPEN"
	ShiftClosed ShiftStatus = "CLOSED"
)

// Shift is a cashier's open-to-close session. Expected cash and the
// discrepancy are computed at close time and stored for the report.
type Shift struct {
	ID           string      `json:"id"`
	CashierName  string      `json:"cashierName"`
	OpeningCash  int64       `json:"openingCash"`
	ActualCash   *int64      `json:"actualCash,omitempty"`
	ExpectedCash *int64      `json:"expectedCash,omitempty"`
	Discrepancy  *int64      `json:"discrepancy,omitempty"`
	Status       ShiftStatus `json:"status"`
	OpenedAt     time.Time   `json:"openedAt"`
	ClosedAt     *time.Time  `json:"closedAt,omitempty"`
}
