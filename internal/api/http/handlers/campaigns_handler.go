package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/la-capital/crm-service/internal/api/dto"
	"github.com/la-capital/crm-service/internal/service"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// CampaignsHandler exposes marketing campaign management.
type CampaignsHandler struct {
	campaigns *service.CampaignService
}

// NewCampaignsHandler constructs handler.
func NewCampaignsHandler(campaignService *service.CampaignService) *CampaignsHandler {
	return &CampaignsHandler{campaigns: campaignService}
}

// List handles GET /api/campaigns.
func (h *CampaignsHandler) List(c *fiber.Ctx) error {
	campaigns, err := h.campaigns.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"campaigns": campaigns})
}

// Get handles GET /api/campaigns/:id.
func (h *CampaignsHandler) Get(c *fiber.Ctx) error {
	campaign, err := h.campaigns.Get(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"campaign": campaign})
}

// Create handles POST /api/campaigns.
func (h *CampaignsHandler) Create(c *fiber.Ctx) error {
	var req dto.CampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	campaign, err := h.campaigns.Create(c.Context(), req.Nombre, req.Mensaje, req.MinPuntos)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"campaign": campaign})
}

// Update handles PUT /api/campaigns/:id.
func (h *CampaignsHandler) Update(c *fiber.Ctx) error {
	var req dto.CampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	campaign, err := h.campaigns.Update(c.Context(), c.Params("id"), req.Nombre, req.Mensaje, req.MinPuntos)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"campaign": campaign})
}

// Delete handles DELETE /api/campaigns/:id.
func (h *CampaignsHandler) Delete(c *fiber.Ctx) error {
	if err := h.campaigns.Delete(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "Campaña eliminada correctamente."})
}

// Send handles POST /api/campaigns/:id/send.
func (h *CampaignsHandler) Send(c *fiber.Ctx) error {
	campaign, recipients, err := h.campaigns.Send(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"message":    "Campaña en proceso de envío.",
		"campaign":   campaign,
		"recipients": recipients,
	})
}
