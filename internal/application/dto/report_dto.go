package dto

import "github.com/shopspring/decimal"

// DashboardSummary the owner's landing rollup for one company.
type DashboardSummary struct {
	CompanyID           string          `json:"company_id"`
	CompanyName         string          `json:"company_name"`
	TotalStaff          int             `json:"total_staff"`
	TotalProducts       int             `json:"total_products"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	LowStockProducts    int             `json:"low_stock_products"`
	OutOfStockProducts  int             `json:"out_of_stock_products"`
}

// CategoryStat per-category slice of the inventory report.
type CategoryStat struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
	Percentage float64         `json:"percentage"`
}

// InventoryReport full inventory rollup with optional date/category filters.
type InventoryReport struct {
	CompanyName         string            `json:"company_name"`
	GeneratedAt         string            `json:"generated_at"`
	StartDate           string            `json:"start_date,omitempty"`
	EndDate             string            `json:"end_date,omitempty"`
	CategoryFilter      string            `json:"category_filter,omitempty"`
	TotalProducts       int               `json:"total_products"`
	TotalInventoryValue decimal.Decimal   `json:"total_inventory_value"`
	LowStockCount       int               `json:"low_stock_count"`
	OutOfStockCount     int               `json:"out_of_stock_count"`
	Categories          []CategoryStat    `json:"categories"`
	Products            []ProductResponse `json:"products"`
}

// StaffActivityRow one staff member's activity summary.
type StaffActivityRow struct {
	FullName        string `json:"full_name"`
	Department      string `json:"department"`
	Position        string `json:"position"`
	IsActive        bool   `json:"is_active"`
	DaysSinceJoined int    `json:"days_since_joined"`
	ProductsManaged int    `json:"products_managed"`
}

// StaffActivityReport per-staff activity rollup with optional date range.
type StaffActivityReport struct {
	CompanyName string             `json:"company_name"`
	StartDate   string             `json:"start_date,omitempty"`
	EndDate     string             `json:"end_date,omitempty"`
	TotalStaff  int                `json:"total_staff"`
	Rows        []StaffActivityRow `json:"rows"`
}
