package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/la-capital/crm-service/internal/api/dto"
	"github.com/la-capital/crm-service/internal/auth"
	"github.com/la-capital/crm-service/internal/service"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// TwoFactorHandler exposes the 2FA enrollment endpoints for staff.
type TwoFactorHandler struct {
	auth *service.AuthService
}

// NewTwoFactorHandler constructs handler.
func NewTwoFactorHandler(authService *service.AuthService) *TwoFactorHandler {
	return &TwoFactorHandler{auth: authService}
}

// Setup handles POST /api/2fa/setup. Idempotent: it only generates and
// returns a candidate secret; nothing is stored until verify succeeds.
func (h *TwoFactorHandler) Setup(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewForbidden("Solo el personal puede configurar 2FA.")
	}

	setup, err := h.auth.SetupTwoFactor(c.Context(), principal.Staff)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"secret":    setup.Secret,
		"qrCodeUrl": setup.QRDataURL,
	})
}

// Verify handles POST /api/2fa/verify, completing the two-phase commit.
func (h *TwoFactorHandler) Verify(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewForbidden("Solo el personal puede configurar 2FA.")
	}

	var req dto.ConfirmTwoFactorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := h.auth.ConfirmTwoFactor(c.Context(), principal.Staff.ID, req.Secret, req.Token); err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) && domainErr.HTTPStatus == http.StatusBadRequest {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"verified": false,
				"message":  domainErr.Message,
			})
		}
		return err
	}

	return c.JSON(fiber.Map{"verified": true})
}
