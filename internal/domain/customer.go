package domain

import "time"

// Customer is a loyalty member. Walk-in sales carry no customer.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}

// PointEntry is one row of the loyalty points ledger. Delta is negative
// for redemptions. The customer's Points column is the running balance.
type PointEntry struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customerId"`
	Delta         int       `json:"delta"`
	Reason        string    `json:"reason"`
	TransactionID *string   `json:"transactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
