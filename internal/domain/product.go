package domain

import "time"

type ProductType string

const (
	ProductPerfume ProductType = "PERFUME"
	ProductBottle  ProductType = "BOTTLE"
)

// Product is a catalog item. Prices are whole Rupiah.
type Product struct {
	ID           string      `json:"id"`
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	Type         ProductType `json:"type"`
	CostPrice    int64       `json:"costPrice"`
	SellingPrice int64       `json:"sellingPrice"`
	Stock        int         `json:"stock"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// StockAdjustment records one stock-opname correction.
type StockAdjustment struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	PreviousStock int       `json:"previousStock"`
	ActualStock   int       `json:"actualStock"`
	Difference    int       `json:"difference"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
