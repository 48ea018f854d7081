package dto

import apperrors "github.com/la-capital/crm-service/pkg/util"

// ProductRequest payload for product create/update.
type ProductRequest struct {
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Precio      float64 `json:"precio"`
	Categoria   string  `json:"categoria"`
	ImagenURL   string  `json:"imagen_url"`
	Modelo3DURL string  `json:"modelo3d_url"`
	Disponible  *bool   `json:"disponible"`
}

// Validate checks the field contract.
func (r *ProductRequest) Validate() error {
	details := map[string]any{}
	requireField(details, "nombre", r.Nombre)
	if r.Precio < 0 {
		details["precio"] = "no puede ser negativo"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Datos de producto inválidos.", details)
	}
	return nil
}

// Available resolves the optional flag, defaulting to available.
func (r *ProductRequest) Available() bool {
	if r.Disponible == nil {
		return true
	}
	return *r.Disponible
}
