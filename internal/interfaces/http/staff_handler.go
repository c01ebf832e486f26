package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/application/usecase"
	"github.com/trackwise/trackwise-api/internal/domain"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

// StaffHandler owner-side staff management (business_owner only). The company
// always comes from the caller's token.
type StaffHandler struct {
	uc *usecase.StaffUseCase
}

// NewStaffHandler builds the handler.
func NewStaffHandler(uc *usecase.StaffUseCase) *StaffHandler {
	return &StaffHandler{uc: uc}
}

// List godoc
// @Summary      List the company's staff
// @Tags         staff
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "Search over name, username, department, position"
// @Param        department  query  string  false  "Exact department"
// @Param        is_active   query  bool    false  "Active flag"
// @Param        limit       query  int     false  "Limit"   default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StaffListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/staff [get]
func (h *StaffHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id missing from token"})
	}
	filter := repository.StaffFilter{
		Search:     c.Query("search"),
		Department: c.Query("department"),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.Active = &active
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), companyID, filter, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get one staff member
// @Tags         staff
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Profile ID"
// @Success      200  {object}  dto.StaffResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/staff/{id} [get]
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id missing from token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.uc.Get(c.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "staff member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Add a staff member to the company
// @Tags         staff
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStaffRequest  true  "identity + placement"
// @Success      201   {object}  dto.StaffResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff [post]
func (h *StaffHandler) Add(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id missing from token"})
	}
	var in dto.AddStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Add(c.Context(), companyID, in)
	if err != nil {
		return registrationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetActive godoc
// @Summary      Activate or deactivate a staff member
// @Tags         staff
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Profile ID"
// @Param        body  body  dto.SetStaffActiveRequest  true  "is_active"
// @Success      200   {object}  dto.StaffResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/staff/{id}/active [put]
func (h *StaffHandler) SetActive(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id missing from token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	var in dto.SetStaffActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.SetActive(c.Context(), companyID, id, in.IsActive)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "staff member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
