package dto

import apperrors "github.com/la-capital/crm-service/pkg/util"

// ClientUpdateRequest payload for PUT /api/clients/:id.
type ClientUpdateRequest struct {
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
}

// Validate checks the field contract.
func (r *ClientUpdateRequest) Validate() error {
	details := map[string]any{}
	requireField(details, "nombres", r.Nombres)
	requireField(details, "email", r.Email)
	requireField(details, "telefono", r.Telefono)
	if len(details) > 0 {
		return apperrors.NewValidationError("Datos de cliente inválidos.", details)
	}
	return nil
}

// PointsAdjustRequest payload for POST /api/clients/:id/points.
type PointsAdjustRequest struct {
	Delta int `json:"delta"`
}

// Validate checks the field contract.
func (r *PointsAdjustRequest) Validate() error {
	if r.Delta == 0 {
		return apperrors.NewValidationError("El ajuste de puntos no puede ser cero.", map[string]any{"delta": "no puede ser cero"})
	}
	return nil
}

// ClientResponse is the public shape of a client account.
type ClientResponse struct {
	ID            string `json:"id"`
	Nombres       string `json:"nombres"`
	Apellidos     string `json:"apellidos"`
	Email         string `json:"email"`
	Telefono      string `json:"telefono"`
	Puntos        int    `json:"puntos"`
	FechaRegistro string `json:"fecha_registro"`
}
