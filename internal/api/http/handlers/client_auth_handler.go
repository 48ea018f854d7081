package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/la-capital/crm-service/internal/api/dto"
	"github.com/la-capital/crm-service/internal/service"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// ClientAuthHandler exposes registration and login for loyalty clients.
// Clients always get a final token directly; there is no 2FA step.
type ClientAuthHandler struct {
	auth *service.AuthService
}

// NewClientAuthHandler constructs handler.
func NewClientAuthHandler(authService *service.AuthService) *ClientAuthHandler {
	return &ClientAuthHandler{auth: authService}
}

// Register handles POST /api/client-auth/register.
func (h *ClientAuthHandler) Register(c *fiber.Ctx) error {
	var req dto.ClientRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	client, token, _, err := h.auth.RegisterClient(c.Context(), req.Nombres, req.Apellidos, req.Email, req.Telefono, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Cliente registrado correctamente.",
		"token":   token,
		"client": dto.ClientResponse{
			ID:            client.ID,
			Nombres:       client.Nombres,
			Apellidos:     client.Apellidos,
			Email:         client.Email,
			Telefono:      client.Telefono,
			Puntos:        client.Puntos,
			FechaRegistro: client.FechaRegistro.Format("2006-01-02"),
		},
	})
}

// Login handles POST /api/client-auth/login.
func (h *ClientAuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	_, token, _, err := h.auth.LoginClient(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": token})
}
