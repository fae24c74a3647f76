package domain

import "time"

type Expense struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	SpentAt     time.Time `json:"spentAt"`
	CreatedAt   time.Time `json:"createdAt"`
}
