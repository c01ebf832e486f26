package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trackwise/trackwise-api/internal/application/auth"
	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/application/verification"
	"github.com/trackwise/trackwise-api/internal/domain"
)

// VerificationHandler the pre-registration probes: send/verify code and
// email/username availability. All public.
type VerificationHandler struct {
	uc   *verification.UseCase
	auth *auth.UseCase
}

// NewVerificationHandler builds the handler.
func NewVerificationHandler(uc *verification.UseCase, authUC *auth.UseCase) *VerificationHandler {
	return &VerificationHandler{uc: uc, auth: authUC}
}

// SendCode godoc
// @Summary      Email a 6-digit verification code
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendCodeRequest  true  "email"
// @Success      200   {object}  dto.ResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/send-verification-code [post]
func (h *VerificationHandler) SendCode(c *fiber.Ctx) error {
	var in dto.SendCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email is required"})
	}
	if err := h.uc.SendCode(c.Context(), in.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "the email is already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ResultResponse{Success: true})
}

// VerifyCode godoc
// @Summary      Check a verification code
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyCodeRequest  true  "email + code"
// @Success      200   {object}  dto.ResultResponse
// @Failure      400   {object}  dto.ResultResponse
// @Router       /api/verify-email-code [post]
func (h *VerificationHandler) VerifyCode(c *fiber.Ctx) error {
	var in dto.VerifyCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Email == "" || in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email and code are required"})
	}
	if err := h.uc.VerifyCode(c.Context(), in.Email, in.Code); err != nil {
		// Failure details go in the body; the client shows them on the form.
		switch {
		case errors.Is(err, domain.ErrCodeNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ResultResponse{Success: false, Error: "no verification code found, request a new one"})
		case errors.Is(err, domain.ErrCodeExpired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ResultResponse{Success: false, Error: "the code has expired, request a new one"})
		case errors.Is(err, domain.ErrCodeMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ResultResponse{Success: false, Error: "incorrect code"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ResultResponse{Success: true})
}

// CheckEmail godoc
// @Summary      Check email availability
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckEmailRequest  true  "email"
// @Success      200   {object}  dto.AvailabilityResponse
// @Router       /api/check-email [post]
func (h *VerificationHandler) CheckEmail(c *fiber.Ctx) error {
	var in dto.CheckEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email is required"})
	}
	available, err := h.auth.IsEmailAvailable(c.Context(), in.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.AvailabilityResponse{IsAvailable: available})
}

// CheckUsername godoc
// @Summary      Check username availability
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckUsernameRequest  true  "username"
// @Success      200   {object}  dto.AvailabilityResponse
// @Router       /api/check-username [post]
func (h *VerificationHandler) CheckUsername(c *fiber.Ctx) error {
	var in dto.CheckUsernameRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username is required"})
	}
	available, err := h.auth.IsUsernameAvailable(c.Context(), in.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.AvailabilityResponse{IsAvailable: available})
}
