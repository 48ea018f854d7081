package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/la-capital/crm-service/internal/api/dto"
	"github.com/la-capital/crm-service/internal/service"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// UsersHandler exposes staff account administration, Administrador only.
type UsersHandler struct {
	staff *service.StaffService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(staffService *service.StaffService) *UsersHandler {
	return &UsersHandler{staff: staffService}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	entries, err := h.staff.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.StaffResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.StaffResponse{
			ID:               entry.Account.ID,
			Nombres:          entry.Account.Nombres,
			Apellidos:        entry.Account.Apellidos,
			Email:            entry.Account.Email,
			IDRol:            entry.Account.RoleID,
			Rol:              string(entry.Role),
			TwoFactorEnabled: entry.Account.TwoFactorEnabled,
		})
	}
	return c.JSON(fiber.Map{"users": out})
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	staff, err := h.staff.Get(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"user": dto.StaffResponse{
		ID:               staff.ID,
		Nombres:          staff.Nombres,
		Apellidos:        staff.Apellidos,
		Email:            staff.Email,
		IDRol:            staff.RoleID,
		TwoFactorEnabled: staff.TwoFactorEnabled,
	}})
}

// Update handles PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	staff, err := h.staff.Update(c.Context(), c.Params("id"), req.Nombres, req.Apellidos, req.Email, req.IDRol, req.Password)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"message": "Usuario actualizado correctamente.",
		"user": dto.StaffResponse{
			ID:        staff.ID,
			Nombres:   staff.Nombres,
			Apellidos: staff.Apellidos,
			Email:     staff.Email,
			IDRol:     staff.RoleID,
		},
	})
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.staff.Delete(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "Usuario eliminado correctamente."})
}
