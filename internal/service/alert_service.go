package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/events"
	"github.com/shelfcam/shelfcam-api/internal/repository"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// Stock ladder thresholds, expressed as fill percentage upper bounds.
const (
	thresholdOutOfStock    = 0.0
	thresholdCriticalStock = 10.0
	thresholdMediumStock   = 25.0
	thresholdLowStock      = 50.0

	// Disorder above this percentage counts as misplacement regardless of
	// what item was recognized.
	disorderThreshold = 20.0
)

// ProcessResult summarizes one detection run.
type ProcessResult struct {
	AlertsCreated int             `json:"alerts_created"`
	AlertsUpdated int             `json:"alerts_updated"`
	Alerts        []*domain.Alert `json:"alerts"`
	Warnings      []string        `json:"warnings"`
}

// AlertService turns detection reports into alerts and manages the alert
// lifecycle.
type AlertService struct {
	alerts      repository.AlertRepository
	history     repository.AlertHistoryRepository
	inventory   repository.InventoryRepository
	assignments repository.AssignmentRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewAlertService builds the service.
func NewAlertService(
	alerts repository.AlertRepository,
	history repository.AlertHistoryRepository,
	inventory repository.InventoryRepository,
	assignments repository.AssignmentRepository,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		alerts:      alerts,
		history:     history,
		inventory:   inventory,
		assignments: assignments,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// ProcessReport walks the racks in a detection report and creates or
// refreshes alerts. Rack-level failures are collected as warnings so one
// bad rack does not sink the rest of the shelf.
func (s *AlertService) ProcessReport(ctx context.Context, report *domain.DetectionReport) (*ProcessResult, error) {
	if report == nil || report.ShelfNumber == "" {
		return nil, apperrors.NewValidationError("detection report missing shelf number", nil)
	}

	result := &ProcessResult{}
	for _, rack := range report.Racks {
		if rack.RackID == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("rack without id on shelf %s skipped", report.ShelfNumber))
			continue
		}
		if err := s.processRack(ctx, report.ShelfNumber, rack, result); err != nil {
			s.logger.Error("rack processing failed",
				zap.String("shelf", report.ShelfNumber),
				zap.String("rack", rack.RackID),
				zap.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("rack %s: %v", rack.RackID, err))
		}
	}
	return result, nil
}

func (s *AlertService) processRack(ctx context.Context, shelfName string, rack domain.RackDetection, result *ProcessResult) error {
	fill := 100.0 - rack.EmptyPercentage

	product, err := s.inventory.GetByLocation(ctx, shelfName, rack.RackID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		// Nothing registered at this location; flag it once.
		alert, err := s.unknownLocationAlert(ctx, shelfName, rack)
		if err != nil {
			return err
		}
		if alert != nil {
			result.AlertsCreated++
			result.Alerts = append(result.Alerts, alert)
		}
		return nil
	}

	if alertType, priority, ok := classifyStock(fill); ok {
		alert, created, err := s.upsertStockAlert(ctx, shelfName, rack, product, alertType, priority, fill)
		if err != nil {
			return err
		}
		if created {
			result.AlertsCreated++
		} else {
			result.AlertsUpdated++
		}
		result.Alerts = append(result.Alerts, alert)
	}

	if misplaced(rack, product) {
		alert, created, err := s.upsertMisplacementAlert(ctx, shelfName, rack, product)
		if err != nil {
			return err
		}
		if created {
			result.AlertsCreated++
		} else {
			result.AlertsUpdated++
		}
		result.Alerts = append(result.Alerts, alert)
	}
	return nil
}

// classifyStock maps a fill percentage to the alert ladder. The boolean is
// false when the stock level needs no alert.
func classifyStock(fillPercentage float64) (domain.AlertType, domain.AlertPriority, bool) {
	switch {
	case fillPercentage <= thresholdOutOfStock:
		return domain.AlertOutOfStock, domain.PriorityCritical, true
	case fillPercentage <= thresholdCriticalStock:
		return domain.AlertCriticalStock, domain.PriorityHigh, true
	case fillPercentage <= thresholdMediumStock:
		return domain.AlertMediumStock, domain.PriorityMedium, true
	case fillPercentage <= thresholdLowStock:
		return domain.AlertLowStock, domain.PriorityLow, true
	}
	return "", "", false
}

// misplaced reports whether the detected item contradicts the registered
// product, or the rack is disordered past the threshold.
func misplaced(rack domain.RackDetection, product *domain.Product) bool {
	if rack.DisorderedPercentage > disorderThreshold {
		return true
	}
	if rack.Item == "" {
		return false
	}
	detected := strings.ToLower(rack.Item)
	expected := strings.ToLower(product.ProductName)
	return !strings.Contains(expected, detected) && !strings.Contains(detected, expected)
}

func (s *AlertService) upsertStockAlert(ctx context.Context, shelfName string, rack domain.RackDetection, product *domain.Product, alertType domain.AlertType, priority domain.AlertPriority, fill float64) (*domain.Alert, bool, error) {
	title := fmt.Sprintf("%s: %s", strings.ToUpper(string(priority)), product.ProductName)
	message := fmt.Sprintf("%s is at %.1f%% fill at %s-%s", product.ProductName, fill, shelfName, rack.RackID)
	if fill <= 0 {
		message = fmt.Sprintf("%s is OUT OF STOCK at %s-%s, restocking required", product.ProductName, shelfName, rack.RackID)
	}

	existing, err := s.alerts.FindActive(ctx, shelfName, rack.RackID, domain.StockAlertTypes)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.Type = alertType
		existing.Priority = priority
		existing.Title = title
		existing.Message = message
		existing.EmptyPercentage = rack.EmptyPercentage
		existing.FillPercentage = fill
		if err := s.alerts.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		s.logAction(ctx, existing.ID, "updated", "system", fmt.Sprintf("stock level now %.1f%%", fill))
		s.publish(ctx, events.EventAlertUpdated, existing, "system")
		return existing, false, nil
	}

	alert := &domain.Alert{
		Type:            alertType,
		Priority:        priority,
		Status:          domain.AlertStatusActive,
		ShelfName:       shelfName,
		RackName:        rack.RackID,
		ProductNumber:   product.ProductNumber,
		ProductName:     product.ProductName,
		Category:        string(product.Category),
		Title:           title,
		Message:         message,
		EmptyPercentage: rack.EmptyPercentage,
		FillPercentage:  fill,
		AssignedStaff:   s.assignedStaff(ctx, shelfName),
		CreatedBy:       "system",
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, false, err
	}
	s.logAction(ctx, alert.ID, "created", "system", fmt.Sprintf("stock alert at %.1f%% fill", fill))
	s.publish(ctx, events.EventAlertCreated, alert, "system")
	return alert, true, nil
}

func (s *AlertService) upsertMisplacementAlert(ctx context.Context, shelfName string, rack domain.RackDetection, product *domain.Product) (*domain.Alert, bool, error) {
	title := fmt.Sprintf("MISPLACED: %s at %s-%s", rack.Item, shelfName, rack.RackID)
	message := fmt.Sprintf("found %q at %s-%s, expected %q", rack.Item, shelfName, rack.RackID, product.ProductName)
	if home, err := s.inventory.FindByProductName(ctx, rack.Item); err == nil {
		message += fmt.Sprintf(", correct location %s-%s", home.ShelfName, home.RackName)
	}
	if rack.DisorderedPercentage > 0 {
		message += fmt.Sprintf(", disorder %.1f%%", rack.DisorderedPercentage)
	}

	existing, err := s.alerts.FindActive(ctx, shelfName, rack.RackID, []domain.AlertType{domain.AlertMisplacedItem})
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.Title = title
		existing.Message = message
		existing.DetectedProduct = rack.Item
		existing.ExpectedProduct = product.ProductName
		if err := s.alerts.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		s.logAction(ctx, existing.ID, "updated", "system", "misplacement still present")
		s.publish(ctx, events.EventAlertUpdated, existing, "system")
		return existing, false, nil
	}

	alert := &domain.Alert{
		Type:            domain.AlertMisplacedItem,
		Priority:        domain.PriorityMedium,
		Status:          domain.AlertStatusActive,
		ShelfName:       shelfName,
		RackName:        rack.RackID,
		ProductNumber:   product.ProductNumber,
		ProductName:     product.ProductName,
		Category:        string(product.Category),
		Title:           title,
		Message:         message,
		ExpectedProduct: product.ProductName,
		DetectedProduct: rack.Item,
		AssignedStaff:   s.assignedStaff(ctx, shelfName),
		CreatedBy:       "system",
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, false, err
	}
	s.logAction(ctx, alert.ID, "created", "system", "misplacement detected")
	s.publish(ctx, events.EventAlertCreated, alert, "system")
	return alert, true, nil
}

func (s *AlertService) unknownLocationAlert(ctx context.Context, shelfName string, rack domain.RackDetection) (*domain.Alert, error) {
	existing, err := s.alerts.FindActive(ctx, shelfName, rack.RackID, []domain.AlertType{domain.AlertUnknownProduct})
	if err != nil || existing != nil {
		return nil, err
	}

	alert := &domain.Alert{
		Type:            domain.AlertUnknownProduct,
		Priority:        domain.PriorityLow,
		Status:          domain.AlertStatusActive,
		ShelfName:       shelfName,
		RackName:        rack.RackID,
		Title:           fmt.Sprintf("UNKNOWN LOCATION: %s-%s", shelfName, rack.RackID),
		Message:         fmt.Sprintf("no inventory item registered at %s-%s, detected %q", shelfName, rack.RackID, rack.Item),
		DetectedProduct: rack.Item,
		AssignedStaff:   s.assignedStaff(ctx, shelfName),
		CreatedBy:       "system",
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	s.logAction(ctx, alert.ID, "created", "system", "unregistered location")
	s.publish(ctx, events.EventAlertCreated, alert, "system")
	return alert, nil
}

// Active lists active alerts, optionally filtered by shelf.
func (s *AlertService) Active(ctx context.Context, shelfName string) ([]*domain.Alert, error) {
	return s.alerts.ListActive(ctx, shelfName)
}

// Acknowledge marks an active alert as acknowledged by the caller.
func (s *AlertService) Acknowledge(ctx context.Context, id, username, notes string) (*domain.Alert, error) {
	alert, err := s.getAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Status != domain.AlertStatusActive {
		return nil, apperrors.NewValidationError("only active alerts can be acknowledged", map[string]any{
			"status": string(alert.Status),
		})
	}

	now := time.Now().UTC()
	alert.Status = domain.AlertStatusAcknowledged
	alert.AcknowledgedAt = &now
	if err := s.alerts.Update(ctx, alert); err != nil {
		return nil, err
	}
	s.logAction(ctx, alert.ID, "acknowledged", username, notes)
	s.publish(ctx, events.EventAlertAcknowledged, alert, username)
	return alert, nil
}

// Resolve closes an alert.
func (s *AlertService) Resolve(ctx context.Context, id, username, notes string) (*domain.Alert, error) {
	alert, err := s.getAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Status == domain.AlertStatusResolved {
		return nil, apperrors.NewValidationError("alert already resolved", nil)
	}

	now := time.Now().UTC()
	alert.Status = domain.AlertStatusResolved
	alert.ResolvedAt = &now
	if err := s.alerts.Update(ctx, alert); err != nil {
		return nil, err
	}
	s.logAction(ctx, alert.ID, "resolved", username, notes)
	s.publish(ctx, events.EventAlertResolved, alert, username)
	return alert, nil
}

// Statistics aggregates counts for the manager dashboard.
func (s *AlertService) Statistics(ctx context.Context) (*domain.AlertStatistics, error) {
	return s.alerts.Statistics(ctx)
}

// History returns the audit trail for one alert.
func (s *AlertService) History(ctx context.Context, id string) ([]*domain.AlertHistoryEntry, error) {
	if _, err := s.getAlert(ctx, id); err != nil {
		return nil, err
	}
	return s.history.ListByAlert(ctx, id)
}

func (s *AlertService) getAlert(ctx context.Context, id string) (*domain.Alert, error) {
	alert, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("alert", map[string]any{"id": id})
		}
		return nil, err
	}
	return alert, nil
}

// assignedStaff resolves who covers a shelf; empty when nobody does.
func (s *AlertService) assignedStaff(ctx context.Context, shelfName string) string {
	assignments, err := s.assignments.ActiveByShelf(ctx, shelfName)
	if err != nil || len(assignments) == 0 {
		return ""
	}
	return assignments[0].Username
}

func (s *AlertService) logAction(ctx context.Context, alertID, action, performedBy, notes string) {
	entry := &domain.AlertHistoryEntry{
		AlertID:     alertID,
		Action:      action,
		PerformedBy: performedBy,
		Notes:       notes,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to append alert history", zap.String("alert_id", alertID), zap.Error(err))
	}
}

func (s *AlertService) publish(ctx context.Context, eventType events.EventType, alert *domain.Alert, performedBy string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AlertID:   alert.ID,
		Timestamp: time.Now().UTC(),
		Payload:   events.NewAlertPayload(alert, performedBy),
	})
}
