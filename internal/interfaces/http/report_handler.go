package http

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/application/usecase"
	"github.com/trackwise/trackwise-api/internal/domain"
)

// ReportHandler the owner's reporting endpoints (business_owner only).
// Inventory and staff-activity reports take ?export=csv, the inventory report
// additionally ?export=pdf; the default is JSON.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Company dashboard summary
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id missing from token"})
	}
	out, err := h.uc.DashboardSummary(c.Context(), companyID)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Inventory report
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end_date    query  string  false  "YYYY-MM-DD, inclusive"
// @Param        category    query  string  false  "Exact category"
// @Param        export      query  string  false  "csv or pdf"
// @Success      200  {object}  dto.InventoryReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id missing from token"})
	}
	q := reportQuery(c)

	if c.Query("export") == "pdf" {
		doc, err := h.uc.InventoryReportPDF(c.Context(), companyID, q)
		if err != nil {
			return reportError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory_report.pdf"`)
		return c.Send(doc)
	}

	report, err := h.uc.InventoryReport(c.Context(), companyID, q)
	if err != nil {
		return reportError(c, err)
	}
	if c.Query("export") == "csv" {
		return sendCSV(c, "inventory_report.csv", inventoryCSV(report))
	}
	return c.JSON(report)
}

// StaffActivity godoc
// @Summary      Staff activity report
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end_date    query  string  false  "YYYY-MM-DD, inclusive"
// @Param        export      query  string  false  "csv"
// @Success      200  {object}  dto.StaffActivityReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/staff-activity [get]
func (h *ReportHandler) StaffActivity(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id missing from token"})
	}
	report, err := h.uc.StaffActivityReport(c.Context(), companyID, reportQuery(c))
	if err != nil {
		return reportError(c, err)
	}
	if c.Query("export") == "csv" {
		return sendCSV(c, "staff_activity_report.csv", staffActivityCSV(report))
	}
	return c.JSON(report)
}

func reportQuery(c *fiber.Ctx) usecase.ReportQuery {
	return usecase.ReportQuery{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Category:  c.Query("category"),
	}
}

func reportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrCompanyNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "company not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func sendCSV(c *fiber.Ctx, filename string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func inventoryCSV(report *dto.InventoryReport) [][]string {
	rows := [][]string{{"Item Name", "Category", "Quantity", "Cost Price", "Total Value", "Stock State", "Created At"}}
	for _, p := range report.Products {
		rows = append(rows, []string{
			p.ItemName,
			p.Category,
			strconv.Itoa(p.Quantity),
			p.CostPrice.StringFixed(2),
			p.TotalValue.StringFixed(2),
			p.StockState,
			p.CreatedAt.Format("2006-01-02"),
		})
	}
	rows = append(rows, []string{"TOTAL", "", strconv.Itoa(report.TotalProducts), "", report.TotalInventoryValue.StringFixed(2), "", ""})
	return rows
}

func staffActivityCSV(report *dto.StaffActivityReport) [][]string {
	rows := [][]string{{"Full Name", "Department", "Position", "Active", "Days Since Joined", "Products Managed"}}
	for _, r := range report.Rows {
		rows = append(rows, []string{
			r.FullName,
			r.Department,
			r.Position,
			strconv.FormatBool(r.IsActive),
			strconv.Itoa(r.DaysSinceJoined),
			strconv.Itoa(r.ProductsManaged),
		})
	}
	return rows
}
