package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shelfcam/shelfcam-api/internal/api/dto"
	"github.com/shelfcam/shelfcam-api/internal/auth"
	"github.com/shelfcam/shelfcam-api/internal/service"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// AlertsHandler exposes alert lifecycle endpoints.
type AlertsHandler struct {
	alerts *service.AlertService
}

// NewAlertsHandler constructs handler.
func NewAlertsHandler(alertService *service.AlertService) *AlertsHandler {
	return &AlertsHandler{alerts: alertService}
}

// Active handles GET /alerts/active. ?shelf= narrows to one shelf.
func (h *AlertsHandler) Active(c *fiber.Ctx) error {
	alerts, err := h.alerts.Active(c.UserContext(), c.Query("shelf"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAlertResponses(alerts))
}

// Acknowledge handles POST /alerts/:id/acknowledge.
func (h *AlertsHandler) Acknowledge(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing or invalid credentials")
	}

	var req dto.AlertActionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	alert, err := h.alerts.Acknowledge(c.UserContext(), c.Params("id"), principal.Username, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAlertResponse(alert))
}

// Resolve handles POST /alerts/:id/resolve.
func (h *AlertsHandler) Resolve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing or invalid credentials")
	}

	var req dto.AlertActionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	alert, err := h.alerts.Resolve(c.UserContext(), c.Params("id"), principal.Username, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAlertResponse(alert))
}

// Statistics handles GET /alerts/statistics.
func (h *AlertsHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.alerts.Statistics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"total":        stats.Total,
		"active":       stats.Active,
		"acknowledged": stats.Acknowledged,
		"resolved":     stats.Resolved,
		"by_priority":  stats.ByPriority,
		"by_type":      stats.ByType,
	})
}

// History handles GET /alerts/:id/history.
func (h *AlertsHandler) History(c *fiber.Ctx) error {
	entries, err := h.alerts.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAlertHistoryResponses(entries))
}
