package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/application/usecase"
	"github.com/trackwise/trackwise-api/internal/domain"
)

// ProfileHandler the caller's own profile (protected).
type ProfileHandler struct {
	uc *usecase.ProfileUseCase
}

// NewProfileHandler builds the handler.
func NewProfileHandler(uc *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// Get godoc
// @Summary      Get the caller's profile
// @Tags         profile
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update the caller's profile
// @Tags         profile
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "editable fields"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), in)
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(out)
}

func profileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "user not found"})
	case errors.Is(err, domain.ErrProfileMissing):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PROFILE_MISSING", Message: "no profile for this account, log in again to create one"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
