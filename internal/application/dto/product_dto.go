package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductResponse one inventory item in listings and reports.
type ProductResponse struct {
	ID         string          `json:"id"`
	ItemName   string          `json:"item_name"`
	Category   string          `json:"category"`
	Quantity   int             `json:"quantity"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	TotalValue decimal.Decimal `json:"total_value"`
	StockState string          `json:"stock_state"` // in_stock, low_stock, out_of_stock
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse paged product listing.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     PageResponse      `json:"page"`
}
