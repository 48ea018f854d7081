package domain

import "time"

// ClientAccount models a loyalty-program client (the `clientes` table).
// Clients have no 2FA path and always carry the implicit "Cliente" role.
type ClientAccount struct {
	ID            string
	Nombres       string
	Apellidos     string
	Email         string
	Telefono      string
	PasswordHash  string
	Puntos        int
	FechaRegistro time.Time
	UpdatedAt     time.Time
}

// FullName joins first and last names.
func (c *ClientAccount) FullName() string {
	if c.Apellidos == "" {
		return c.Nombres
	}
	return c.Nombres + " " + c.Apellidos
}
