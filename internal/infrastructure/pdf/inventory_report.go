// Package pdf renders the inventory report as an A4 document.
//
// Page layout:
//
//	┌──────────────────────────────────────────────────────────┐
//	│  HEADER: Company name  │  Generated at + filters         │
//	│  ──────────────────────────────────────────────────────  │
//	│  SUMMARY: products / value / low stock / out of stock    │
//	│  ──────────────────────────────────────────────────────  │
//	│  CATEGORIES: name | count | value | share                │
//	│  ──────────────────────────────────────────────────────  │
//	│  PRODUCTS: item | category | qty | cost | value | state  │
//	└──────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/trackwise/trackwise-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 86, Blue: 82}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoGenerator renders report PDFs with Maroto v2.
type MarotoGenerator struct{}

// NewMarotoGenerator builds the generator.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// InventoryReport renders the report and returns the document bytes.
func (g *MarotoGenerator) InventoryReport(report *dto.InventoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventory Report", true).
		WithAuthor(report.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(report.Categories) > 0 {
		m.AddRows(sectionTitleRow("BY CATEGORY"))
		m.AddRows(categoryHeaderRow())
		for _, r := range categoryRows(report.Categories) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	}

	m.AddRows(sectionTitleRow("PRODUCTS"))
	m.AddRows(productHeaderRow())
	for _, r := range productRows(report.Products) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: company name on the left, generation date and filters on the right.
func headerRow(report *dto.InventoryReport) core.Row {
	filters := "All products"
	if report.StartDate != "" || report.EndDate != "" {
		filters = fmt.Sprintf("Period: %s to %s",
			nonEmpty(report.StartDate, "start"), nonEmpty(report.EndDate, "today"))
	}
	if report.CategoryFilter != "" {
		filters += "  |  Category: " + report.CategoryFilter
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventory Report", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generated: "+report.GeneratedAt, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(filters, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// summaryRow: the four headline numbers.
func summaryRow(report *dto.InventoryReport) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6, Align: align.Center, Color: colorPrimary,
			}),
		)
	}
	return row.New(16).Add(
		cell("TOTAL PRODUCTS", strconv.Itoa(report.TotalProducts)),
		cell("INVENTORY VALUE", "$"+report.TotalInventoryValue.StringFixed(2)),
		cell("LOW STOCK", strconv.Itoa(report.LowStockCount)),
		cell("OUT OF STOCK", strconv.Itoa(report.OutOfStockCount)),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func categoryHeaderRow() core.Row {
	return row.New(6).Add(
		tableHeader("Category", 5, align.Left),
		tableHeader("Items", 2, align.Center),
		tableHeader("Value", 3, align.Right),
		tableHeader("Share", 2, align.Right),
	)
}

func categoryRows(stats []dto.CategoryStat) []core.Row {
	result := make([]core.Row, 0, len(stats))
	for _, s := range stats {
		result = append(result, row.New(6).Add(
			tableCell(s.Category, 5, align.Left),
			tableCell(strconv.Itoa(s.Count), 2, align.Center),
			tableCell("$"+s.TotalValue.StringFixed(2), 3, align.Right),
			tableCell(fmt.Sprintf("%.1f%%", s.Percentage), 2, align.Right),
		))
	}
	return result
}

func productHeaderRow() core.Row {
	return row.New(6).Add(
		tableHeader("Item", 4, align.Left),
		tableHeader("Category", 2, align.Left),
		tableHeader("Qty", 1, align.Center),
		tableHeader("Cost", 2, align.Right),
		tableHeader("Value", 2, align.Right),
		tableHeader("State", 1, align.Center),
	)
}

func productRows(products []dto.ProductResponse) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(6).Add(
			tableCell(p.ItemName, 4, align.Left),
			tableCell(p.Category, 2, align.Left),
			tableCell(strconv.Itoa(p.Quantity), 1, align.Center),
			tableCell("$"+p.CostPrice.StringFixed(2), 2, align.Right),
			tableCell("$"+p.TotalValue.StringFixed(2), 2, align.Right),
			tableCell(stateLabel(p.StockState), 1, align.Center),
		))
	}
	return result
}

func tableHeader(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 7.5, Align: a, Color: colorPrimary, Top: 1,
	}))
}

func tableCell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 7.5, Align: a, Top: 1}))
}

func stateLabel(state string) string {
	switch state {
	case "out_of_stock":
		return "OUT"
	case "low_stock":
		return "LOW"
	default:
		return "OK"
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
