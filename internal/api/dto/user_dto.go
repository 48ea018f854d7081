package dto

import apperrors "github.com/la-capital/crm-service/pkg/util"

// StaffUpdateRequest payload for PUT /api/users/:id. Password is optional;
// when present it replaces the stored hash.
type StaffUpdateRequest struct {
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	IDRol     int    `json:"id_rol"`
	Password  string `json:"password"`
}

// Validate checks the field contract.
func (r *StaffUpdateRequest) Validate() error {
	details := map[string]any{}
	requireField(details, "nombres", r.Nombres)
	requireField(details, "email", r.Email)
	if r.IDRol <= 0 {
		details["id_rol"] = "es obligatorio"
	}
	if r.Password != "" && len(r.Password) < 8 {
		details["password"] = "debe tener al menos 8 caracteres"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Datos de usuario inválidos.", details)
	}
	return nil
}

// StaffResponse is the public shape of a staff account. The password hash
// and the 2FA secret never leave the server.
type StaffResponse struct {
	ID               string `json:"id"`
	Nombres          string `json:"nombres"`
	Apellidos        string `json:"apellidos"`
	Email            string `json:"email"`
	IDRol            int    `json:"id_rol"`
	Rol              string `json:"rol,omitempty"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
}
