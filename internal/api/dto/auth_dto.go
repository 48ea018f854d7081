package dto

import (
	"strings"

	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// StaffRegisterRequest payload for POST /api/auth/register.
type StaffRegisterRequest struct {
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IDRol     int    `json:"id_rol"`
}

// Validate checks the field contract.
func (r *StaffRegisterRequest) Validate() error {
	details := map[string]any{}
	requireField(details, "nombres", r.Nombres)
	requireField(details, "email", r.Email)
	requireField(details, "password", r.Password)
	if len(r.Password) > 0 && len(r.Password) < 8 {
		details["password"] = "debe tener al menos 8 caracteres"
	}
	if r.IDRol <= 0 {
		details["id_rol"] = "es obligatorio"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Datos de registro inválidos.", details)
	}
	return nil
}

// LoginRequest payload for staff and client login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the field contract.
func (r *LoginRequest) Validate() error {
	details := map[string]any{}
	requireField(details, "email", r.Email)
	requireField(details, "password", r.Password)
	if len(details) > 0 {
		return apperrors.NewValidationError("Email y contraseña son obligatorios.", details)
	}
	return nil
}

// VerifyTwoFactorRequest payload for POST /api/auth/verify-2fa.
type VerifyTwoFactorRequest struct {
	TempToken     string `json:"tempToken"`
	TwoFactorCode string `json:"twoFactorCode"`
}

// Validate checks the field contract.
func (r *VerifyTwoFactorRequest) Validate() error {
	details := map[string]any{}
	requireField(details, "tempToken", r.TempToken)
	requireField(details, "twoFactorCode", r.TwoFactorCode)
	if len(details) > 0 {
		return apperrors.NewValidationError("Token temporal y código 2FA son obligatorios.", details)
	}
	return nil
}

// ConfirmTwoFactorRequest payload for POST /api/2fa/verify. Token is the
// 6-digit code; Secret is the value returned by setup.
type ConfirmTwoFactorRequest struct {
	Token  string `json:"token"`
	Secret string `json:"secret"`
}

// Validate checks the field contract.
func (r *ConfirmTwoFactorRequest) Validate() error {
	details := map[string]any{}
	requireField(details, "token", r.Token)
	requireField(details, "secret", r.Secret)
	if len(details) > 0 {
		return apperrors.NewValidationError("Código y secreto son obligatorios.", details)
	}
	return nil
}

// ClientRegisterRequest payload for POST /api/client-auth/register.
type ClientRegisterRequest struct {
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Password  string `json:"password"`
}

// Validate checks the field contract.
func (r *ClientRegisterRequest) Validate() error {
	details := map[string]any{}
	requireField(details, "nombres", r.Nombres)
	requireField(details, "email", r.Email)
	requireField(details, "telefono", r.Telefono)
	requireField(details, "password", r.Password)
	if len(r.Password) > 0 && len(r.Password) < 8 {
		details["password"] = "debe tener al menos 8 caracteres"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Datos de registro inválidos.", details)
	}
	return nil
}

func requireField(details map[string]any, name, value string) {
	if strings.TrimSpace(value) == "" {
		details[name] = "es obligatorio"
	}
}
