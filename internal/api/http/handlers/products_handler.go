package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/la-capital/crm-service/internal/api/dto"
	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/service"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// ProductsHandler exposes the menu catalog. Reads are public for the AR
// viewer; mutations require the Administrador role.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: productService}
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// Get handles GET /api/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.Get(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	req, err := parseProduct(c)
	if err != nil {
		return err
	}

	product := &domain.Product{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Categoria:   req.Categoria,
		ImagenURL:   req.ImagenURL,
		Modelo3DURL: req.Modelo3DURL,
		Disponible:  req.Available(),
	}
	if err := h.products.Create(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"product": product})
}

// Update handles PUT /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	req, err := parseProduct(c)
	if err != nil {
		return err
	}

	product := &domain.Product{
		ID:          c.Params("id"),
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Categoria:   req.Categoria,
		ImagenURL:   req.ImagenURL,
		Modelo3DURL: req.Modelo3DURL,
		Disponible:  req.Available(),
	}
	if err := h.products.Update(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// Delete handles DELETE /api/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "Producto eliminado correctamente."})
}

func parseProduct(c *fiber.Ctx) (*dto.ProductRequest, error) {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("Cuerpo de la petición inválido.", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}
