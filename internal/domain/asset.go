package domain

import "time"

// AssetType classifies stored binary objects.
type AssetType string

const (
	AssetTypeImagen   AssetType = "IMAGEN"
	AssetTypeModelo3D AssetType = "MODELO3D"
	AssetTypeQR       AssetType = "QR"
)

// Asset is the metadata record for an object held in the object store
// (product images, AR models, QR codes).
type Asset struct {
	ID          string
	Nombre      string
	Tipo        AssetType
	ContentType string
	Size        int64
	StorageKey  string
	URL         string
	CreatedAt   time.Time
}
