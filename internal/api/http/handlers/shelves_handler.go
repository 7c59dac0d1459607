package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shelfcam/shelfcam-api/internal/api/dto"
	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/service"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// ShelvesHandler exposes shelf management endpoints.
type ShelvesHandler struct {
	shelves *service.ShelfService
}

// NewShelvesHandler constructs handler.
func NewShelvesHandler(shelfService *service.ShelfService) *ShelvesHandler {
	return &ShelvesHandler{shelves: shelfService}
}

// List handles GET /shelves. ?active=true narrows to active shelves.
func (h *ShelvesHandler) List(c *fiber.Ctx) error {
	shelves, err := h.shelves.List(c.UserContext(), c.QueryBool("active"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewShelfResponses(shelves))
}

// Create handles POST /shelves.
func (h *ShelvesHandler) Create(c *fiber.Ctx) error {
	var req dto.ShelfCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	shelf, err := h.shelves.Create(c.UserContext(), &domain.Shelf{
		Name:        req.Name,
		Category:    domain.ShelfCategory(req.Category),
		Capacity:    req.Capacity,
		Description: req.Description,
		Active:      true,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewShelfResponse(shelf))
}

// Get handles GET /shelves/:name.
func (h *ShelvesHandler) Get(c *fiber.Ctx) error {
	shelf, err := h.shelves.Get(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewShelfResponse(shelf))
}

// Update handles PUT /shelves/:name.
func (h *ShelvesHandler) Update(c *fiber.Ctx) error {
	var req dto.ShelfUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	shelf, err := h.shelves.Update(c.UserContext(), &domain.Shelf{
		Name:        c.Params("name"),
		Category:    domain.ShelfCategory(req.Category),
		Capacity:    req.Capacity,
		Description: req.Description,
		Active:      true,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewShelfResponse(shelf))
}

// Delete handles DELETE /shelves/:name.
func (h *ShelvesHandler) Delete(c *fiber.Ctx) error {
	if err := h.shelves.Delete(c.UserContext(), c.Params("name")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ToggleStatus handles PATCH /shelves/:name/toggle-status.
func (h *ShelvesHandler) ToggleStatus(c *fiber.Ctx) error {
	shelf, err := h.shelves.ToggleStatus(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewShelfResponse(shelf))
}

// Categories handles GET /shelves/categories/list.
func (h *ShelvesHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.shelves.Categories())
}
