package domain

import "time"

// StaffAccount models an employee or administrator of the restaurant
// (the `usuarios` table). TwoFactorSecret stays empty until the owner
// proves possession of it through the 2FA verify step.
type StaffAccount struct {
	ID               string
	Nombres          string
	Apellidos        string
	Email            string
	PasswordHash     string
	RoleID           int
	TwoFactorSecret  string
	TwoFactorEnabled bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName joins first and last names for token claims and responses.
func (s *StaffAccount) FullName() string {
	if s.Apellidos == "" {
		return s.Nombres
	}
	return s.Nombres + " " + s.Apellidos
}
