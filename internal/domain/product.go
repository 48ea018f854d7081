package domain

import "time"

// Product is a menu item shown in the admin panel and the AR viewer.
type Product struct {
	ID          string
	Nombre      string
	Descripcion string
	Precio      float64
	Categoria   string
	ImagenURL   string
	Modelo3DURL string
	Disponible  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
