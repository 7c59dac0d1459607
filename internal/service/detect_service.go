package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/inference"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

const maxImageBytes = 10 << 20

// DetectService validates shelf image uploads, forwards them to the
// external inference model and runs the alert pipeline over the result.
// No detection logic lives here.
type DetectService struct {
	model  *inference.Client
	alerts *AlertService
	logger *zap.Logger
}

// NewDetectService builds the service.
func NewDetectService(model *inference.Client, alerts *AlertService, logger *zap.Logger) *DetectService {
	return &DetectService{model: model, alerts: alerts, logger: logger}
}

// DetectOutcome bundles the model's report with the alerts it triggered.
type DetectOutcome struct {
	Report *domain.DetectionReport `json:"report"`
	Result *ProcessResult          `json:"result"`
}

// Detect runs one image through the pipeline.
func (s *DetectService) Detect(ctx context.Context, filename, contentType string, image []byte, shelfNumber string) (*DetectOutcome, error) {
	if len(image) == 0 {
		return nil, apperrors.NewValidationError("image file is empty", nil)
	}
	if len(image) > maxImageBytes {
		return nil, apperrors.NewValidationError("image file too large", map[string]any{
			"max_bytes": maxImageBytes,
		})
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewValidationError("upload must be an image", map[string]any{
			"content_type": contentType,
		})
	}
	if shelfNumber == "" {
		shelfNumber = "A1"
	}

	report, err := s.model.Detect(ctx, filename, image, shelfNumber)
	if err != nil {
		s.logger.Error("inference call failed", zap.String("shelf", shelfNumber), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	result, err := s.alerts.ProcessReport(ctx, report)
	if err != nil {
		return nil, err
	}

	s.logger.Info("detection processed",
		zap.String("shelf", report.ShelfNumber),
		zap.Int("alerts_created", result.AlertsCreated),
		zap.Int("alerts_updated", result.AlertsUpdated))

	return &DetectOutcome{Report: report, Result: result}, nil
}
