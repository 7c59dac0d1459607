package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/shelfcam/shelfcam-api/internal/service"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// DetectHandler accepts shelf image uploads for the detection pipeline.
type DetectHandler struct {
	detect *service.DetectService
}

// NewDetectHandler constructs handler.
func NewDetectHandler(detectService *service.DetectService) *DetectHandler {
	return &DetectHandler{detect: detectService}
}

// Detect handles POST /detect. Expects multipart form data with a "file"
// image part and an optional "shelf_number" field.
func (h *DetectHandler) Detect(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart image upload required", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable upload", nil)
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	outcome, err := h.detect.Detect(
		c.UserContext(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		image,
		c.FormValue("shelf_number"),
	)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"shelf_number":   outcome.Report.ShelfNumber,
		"detections":     outcome.Report,
		"alerts_created": outcome.Result.AlertsCreated,
		"alerts_updated": outcome.Result.AlertsUpdated,
		"alerts":         outcome.Result.Alerts,
		"warnings":       outcome.Result.Warnings,
	})
}
