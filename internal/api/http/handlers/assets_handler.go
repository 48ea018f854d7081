package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/service"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// AssetsHandler exposes binary asset management (product images, AR models,
// QR codes).
type AssetsHandler struct {
	assets *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assetService *service.AssetService) *AssetsHandler {
	return &AssetsHandler{assets: assetService}
}

// Upload handles POST /api/assets with a multipart "file" field and a
// "tipo" form value.
func (h *AssetsHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("El archivo es obligatorio.", map[string]any{"file": "es obligatorio"})
	}

	tipo, err := parseAssetType(c.FormValue("tipo"))
	if err != nil {
		return err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	asset, err := h.assets.Upload(c.Context(), fileHeader.Filename, tipo,
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"asset": asset})
}

// List handles GET /api/assets with an optional ?tipo= filter.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	var tipo domain.AssetType
	if raw := c.Query("tipo"); raw != "" {
		parsed, err := parseAssetType(raw)
		if err != nil {
			return err
		}
		tipo = parsed
	}

	assets, err := h.assets.List(c.Context(), tipo)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"assets": assets})
}

// Delete handles DELETE /api/assets/:id.
func (h *AssetsHandler) Delete(c *fiber.Ctx) error {
	if err := h.assets.Delete(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "Activo eliminado correctamente."})
}

func parseAssetType(raw string) (domain.AssetType, error) {
	switch domain.AssetType(raw) {
	case domain.AssetTypeImagen, domain.AssetTypeModelo3D, domain.AssetTypeQR:
		return domain.AssetType(raw), nil
	default:
		return "", apperrors.NewValidationError("Tipo de activo inválido.", map[string]any{"tipo": "debe ser IMAGEN, MODELO3D o QR"})
	}
}
