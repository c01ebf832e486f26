package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/domain"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

const reportDateLayout = "2006-01-02"

// ReportQuery optional filters shared by the report endpoints. Dates are
// inclusive YYYY-MM-DD strings, matching the report forms.
type ReportQuery struct {
	StartDate string
	EndDate   string
	Category  string
}

// PDFGenerator renders the inventory report as a PDF document. The maroto
// implementation lives in infrastructure; tests substitute a fake.
type PDFGenerator interface {
	InventoryReport(report *dto.InventoryReport) ([]byte, error)
}

// ReportUseCase read-only rollups over products and profiles, scoped to one
// company. Inventory value is summed in application code (qty x cost price),
// never in SQL, so display rounding stays consistent.
type ReportUseCase struct {
	companies repository.CompanyRepository
	profiles  repository.ProfileRepository
	products  repository.ProductRepository
	pdf       PDFGenerator
}

// NewReportUseCase builds the aggregator.
func NewReportUseCase(companies repository.CompanyRepository, profiles repository.ProfileRepository, products repository.ProductRepository, pdf PDFGenerator) *ReportUseCase {
	return &ReportUseCase{companies: companies, profiles: profiles, products: products, pdf: pdf}
}

// DashboardSummary the owner's landing rollup: staff count, product count,
// inventory value and stock alerts.
func (uc *ReportUseCase) DashboardSummary(ctx context.Context, companyID string) (*dto.DashboardSummary, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}

	totalStaff, err := uc.profiles.CountStaff(ctx, companyID, repository.StaffFilter{})
	if err != nil {
		return nil, err
	}
	products, err := uc.products.AllByCompany(ctx, companyID, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummary{
		CompanyID:           companyID,
		CompanyName:         company.Name,
		TotalStaff:          totalStaff,
		TotalProducts:       len(products),
		TotalInventoryValue: decimal.Zero,
	}
	for _, p := range products {
		summary.TotalInventoryValue = summary.TotalInventoryValue.Add(p.TotalValue())
		if p.OutOfStock() {
			summary.OutOfStockProducts++
		} else if p.LowStock() {
			summary.LowStockProducts++
		}
	}
	return summary, nil
}

// InventoryReport totals plus per-category breakdown, bounded by the optional
// date range and category filter.
func (uc *ReportUseCase) InventoryReport(ctx context.Context, companyID string, q ReportQuery) (*dto.InventoryReport, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}

	filter, err := q.toFilter()
	if err != nil {
		return nil, err
	}
	products, err := uc.products.AllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	report := &dto.InventoryReport{
		CompanyName:         company.Name,
		GeneratedAt:         time.Now().Format("2006-01-02 15:04"),
		StartDate:           q.StartDate,
		EndDate:             q.EndDate,
		CategoryFilter:      q.Category,
		TotalProducts:       len(products),
		TotalInventoryValue: decimal.Zero,
		Products:            make([]dto.ProductResponse, 0, len(products)),
	}

	byCategory := map[string]*dto.CategoryStat{}
	for _, p := range products {
		value := p.TotalValue()
		report.TotalInventoryValue = report.TotalInventoryValue.Add(value)
		if p.OutOfStock() {
			report.OutOfStockCount++
		} else if p.LowStock() {
			report.LowStockCount++
		}
		stat, ok := byCategory[p.Category]
		if !ok {
			stat = &dto.CategoryStat{Category: p.Category, TotalValue: decimal.Zero}
			byCategory[p.Category] = stat
		}
		stat.Count++
		stat.TotalValue = stat.TotalValue.Add(value)
		report.Products = append(report.Products, toProductResponse(p))
	}

	for _, stat := range byCategory {
		if report.TotalProducts > 0 {
			stat.Percentage = float64(stat.Count) / float64(report.TotalProducts) * 100
		}
		report.Categories = append(report.Categories, *stat)
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		return report.Categories[i].Category < report.Categories[j].Category
	})
	return report, nil
}

// InventoryReportPDF renders the inventory report through the PDF
// collaborator.
func (uc *ReportUseCase) InventoryReportPDF(ctx context.Context, companyID string, q ReportQuery) ([]byte, error) {
	report, err := uc.InventoryReport(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	return uc.pdf.InventoryReport(report)
}

// StaffActivityReport per-staff summaries for the company. Products managed
// is the count of company products created in the range; finer-grained
// per-staff attribution needs activity tracking the inventory app does not
// record yet.
func (uc *ReportUseCase) StaffActivityReport(ctx context.Context, companyID string, q ReportQuery) (*dto.StaffActivityReport, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}

	filter, err := q.toFilter()
	if err != nil {
		return nil, err
	}
	staff, err := uc.profiles.ListStaff(ctx, companyID, repository.StaffFilter{}, 0, 0)
	if err != nil {
		return nil, err
	}
	productsInRange, err := uc.products.CountByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	report := &dto.StaffActivityReport{
		CompanyName: company.Name,
		StartDate:   q.StartDate,
		EndDate:     q.EndDate,
		TotalStaff:  len(staff),
		Rows:        make([]dto.StaffActivityRow, 0, len(staff)),
	}
	now := time.Now()
	for _, rec := range staff {
		fullName := strings.TrimSpace(rec.FirstName + " " + rec.LastName)
		if fullName == "" {
			fullName = rec.Username
		}
		report.Rows = append(report.Rows, dto.StaffActivityRow{
			FullName:        fullName,
			Department:      rec.Profile.Department,
			Position:        rec.Profile.Position,
			IsActive:        rec.Profile.IsActive,
			DaysSinceJoined: int(now.Sub(rec.Profile.DateJoined).Hours() / 24),
			ProductsManaged: productsInRange,
		})
	}
	return report, nil
}

func (q ReportQuery) toFilter() (repository.ProductFilter, error) {
	filter := repository.ProductFilter{Category: q.Category}
	if q.StartDate != "" {
		from, err := time.Parse(reportDateLayout, q.StartDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid start date, expected YYYY-MM-DD", domain.ErrInvalidInput)
		}
		filter.From = &from
	}
	if q.EndDate != "" {
		to, err := time.Parse(reportDateLayout, q.EndDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid end date, expected YYYY-MM-DD", domain.ErrInvalidInput)
		}
		// Inclusive end date: extend to end of day.
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}
	return filter, nil
}
