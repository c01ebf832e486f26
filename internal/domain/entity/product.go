package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product categories used for report breakdowns.
var ProductCategories = []string{
	"electronics", "clothing", "food", "office", "general",
}

// Stock thresholds for the report rollups.
const LowStockThreshold = 10

// Product is an inventory item owned by a company. This service consumes
// products for dashboards and reports; writes happen in the inventory app.
type Product struct {
	ID        string
	CompanyID string
	ItemName  string
	Category  string
	Quantity  int
	CostPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalValue is quantity x cost price. Computed here, not in SQL, so the
// rounding behavior is the same everywhere it is displayed.
func (p *Product) TotalValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// OutOfStock reports quantity == 0.
func (p *Product) OutOfStock() bool { return p.Quantity == 0 }

// LowStock reports quantity in (0, LowStockThreshold].
func (p *Product) LowStock() bool {
	return p.Quantity > 0 && p.Quantity <= LowStockThreshold
}
