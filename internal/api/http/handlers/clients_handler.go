package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/la-capital/crm-service/internal/api/dto"
	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/service"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// ClientsHandler exposes client administration for the staff panel.
type ClientsHandler struct {
	clients *service.ClientService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clientService *service.ClientService) *ClientsHandler {
	return &ClientsHandler{clients: clientService}
}

// List handles GET /api/clients.
func (h *ClientsHandler) List(c *fiber.Ctx) error {
	clients, err := h.clients.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.ClientResponse, 0, len(clients))
	for _, client := range clients {
		out = append(out, toClientResponse(client))
	}
	return c.JSON(fiber.Map{"clients": out})
}

// Get handles GET /api/clients/:id.
func (h *ClientsHandler) Get(c *fiber.Ctx) error {
	client, err := h.clients.Get(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"client": toClientResponse(client)})
}

// Update handles PUT /api/clients/:id.
func (h *ClientsHandler) Update(c *fiber.Ctx) error {
	var req dto.ClientUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	client, err := h.clients.Update(c.Context(), c.Params("id"), req.Nombres, req.Apellidos, req.Email, req.Telefono)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"message": "Cliente actualizado correctamente.",
		"client":  toClientResponse(client),
	})
}

// Delete handles DELETE /api/clients/:id.
func (h *ClientsHandler) Delete(c *fiber.Ctx) error {
	if err := h.clients.Delete(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "Cliente eliminado correctamente."})
}

// AdjustPoints handles POST /api/clients/:id/points.
func (h *ClientsHandler) AdjustPoints(c *fiber.Ctx) error {
	var req dto.PointsAdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	puntos, err := h.clients.AdjustPoints(c.Context(), c.Params("id"), req.Delta)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"puntos": puntos})
}

func toClientResponse(client *domain.ClientAccount) dto.ClientResponse {
	return dto.ClientResponse{
		ID:            client.ID,
		Nombres:       client.Nombres,
		Apellidos:     client.Apellidos,
		Email:         client.Email,
		Telefono:      client.Telefono,
		Puntos:        client.Puntos,
		FechaRegistro: client.FechaRegistro.Format("2006-01-02"),
	}
}
