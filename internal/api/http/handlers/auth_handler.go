package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/la-capital/crm-service/internal/api/dto"
	"github.com/la-capital/crm-service/internal/service"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// AuthHandler exposes the staff authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.StaffRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	staff, err := h.auth.RegisterStaff(c.Context(), req.Nombres, req.Apellidos, req.Email, req.Password, req.IDRol)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Usuario registrado correctamente.",
		"user": dto.StaffResponse{
			ID:        staff.ID,
			Nombres:   staff.Nombres,
			Apellidos: staff.Apellidos,
			Email:     staff.Email,
			IDRol:     staff.RoleID,
		},
	})
}

// Login handles POST /api/auth/login. With 2FA enabled the response holds
// a temp token only; the final token comes from VerifyTwoFactor.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	result, err := h.auth.LoginStaff(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	if result.TwoFactorRequired {
		return c.JSON(fiber.Map{
			"twoFactorRequired": true,
			"tempToken":         result.TempToken,
		})
	}
	return c.JSON(fiber.Map{"token": result.Token})
}

// VerifyTwoFactor handles POST /api/auth/verify-2fa.
func (h *AuthHandler) VerifyTwoFactor(c *fiber.Ctx) error {
	var req dto.VerifyTwoFactorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	result, err := h.auth.VerifyTwoFactor(c.Context(), req.TempToken, req.TwoFactorCode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": result.Token})
}
