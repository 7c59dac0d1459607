package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shelfcam/shelfcam-api/internal/api/dto"
	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/service"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// InventoryHandler exposes inventory CRUD endpoints.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventoryService}
}

// List handles GET /inventory.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	products, err := h.inventory.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryResponses(products))
}

// Create handles POST /inventory.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var req dto.InventoryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	product, err := h.inventory.Create(c.UserContext(), &domain.Product{
		ProductNumber: req.ProductNumber,
		ProductName:   req.ProductName,
		Category:      domain.ProductCategory(req.Category),
		ShelfName:     req.ShelfName,
		RackName:      req.RackName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewInventoryResponse(product))
}

// Get handles GET /inventory/:productNumber.
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	product, err := h.inventory.Get(c.UserContext(), c.Params("productNumber"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryResponse(product))
}

// Update handles PUT /inventory/:productNumber.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var req dto.InventoryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	product, err := h.inventory.Update(c.UserContext(), &domain.Product{
		ProductNumber: c.Params("productNumber"),
		ProductName:   req.ProductName,
		Category:      domain.ProductCategory(req.Category),
		ShelfName:     req.ShelfName,
		RackName:      req.RackName,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryResponse(product))
}

// Delete handles DELETE /inventory/:productNumber.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.inventory.Delete(c.UserContext(), c.Params("productNumber")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Categories handles GET /inventory/categories/list.
func (h *InventoryHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.inventory.Categories())
}
