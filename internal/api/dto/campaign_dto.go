package dto

import apperrors "github.com/la-capital/crm-service/pkg/util"

// CampaignRequest payload for campaign create/update.
type CampaignRequest struct {
	Nombre    string `json:"nombre"`
	Mensaje   string `json:"mensaje"`
	MinPuntos int    `json:"min_puntos"`
}

// Validate checks the field contract.
func (r *CampaignRequest) Validate() error {
	details := map[string]any{}
	requireField(details, "nombre", r.Nombre)
	requireField(details, "mensaje", r.Mensaje)
	if r.MinPuntos < 0 {
		details["min_puntos"] = "no puede ser negativo"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Datos de campaña inválidos.", details)
	}
	return nil
}
