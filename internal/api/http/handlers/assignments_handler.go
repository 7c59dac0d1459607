package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shelfcam/shelfcam-api/internal/api/dto"
	"github.com/shelfcam/shelfcam-api/internal/auth"
	"github.com/shelfcam/shelfcam-api/internal/service"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// AssignmentsHandler exposes staff-shelf assignment endpoints.
type AssignmentsHandler struct {
	assignments *service.AssignmentService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignmentService *service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{assignments: assignmentService}
}

// Dashboard handles GET /assignments/dashboard.
func (h *AssignmentsHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.assignments.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dashboard)
}

// List handles GET /assignments.
func (h *AssignmentsHandler) List(c *fiber.Ctx) error {
	assignments, err := h.assignments.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAssignmentResponses(assignments))
}

// Mine handles GET /assignments/me for staff.
func (h *AssignmentsHandler) Mine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing or invalid credentials")
	}

	assignments, err := h.assignments.ForStaff(c.UserContext(), principal.Username)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAssignmentResponses(assignments))
}

// Assign handles POST /assignments.
func (h *AssignmentsHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing or invalid credentials")
	}

	var req dto.AssignmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	assignment, err := h.assignments.Assign(c.UserContext(), req.Username, req.ShelfName, principal.Username, req.Notes)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAssignmentResponse(assignment))
}

// Unassign handles DELETE /assignments/:id.
func (h *AssignmentsHandler) Unassign(c *fiber.Ctx) error {
	if err := h.assignments.Unassign(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Transfer handles PATCH /assignments/:id/transfer.
func (h *AssignmentsHandler) Transfer(c *fiber.Ctx) error {
	var req dto.AssignmentTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	assignment, err := h.assignments.Transfer(c.UserContext(), c.Params("id"), req.ShelfName, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAssignmentResponse(assignment))
}
