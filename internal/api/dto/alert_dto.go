package dto

import (
	"time"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

// AlertActionRequest carries optional notes for acknowledge/resolve.
type AlertActionRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=1000"`
}

// AlertResponse is the public view of an alert.
type AlertResponse struct {
	ID              string     `json:"id"`
	Type            string     `json:"alert_type"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	ShelfName       string     `json:"shelf_name"`
	RackName        string     `json:"rack_name"`
	ProductNumber   string     `json:"product_number,omitempty"`
	ProductName     string     `json:"product_name,omitempty"`
	Category        string     `json:"category,omitempty"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	EmptyPercentage float64    `json:"empty_percentage"`
	FillPercentage  float64    `json:"fill_percentage"`
	ExpectedProduct string     `json:"expected_product,omitempty"`
	DetectedProduct string     `json:"detected_product,omitempty"`
	AssignedStaff   string     `json:"assigned_staff,omitempty"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	AcknowledgedAt  *time.Time `json:"acknowledged_at,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

// NewAlertResponse maps an alert to its response shape.
func NewAlertResponse(alert *domain.Alert) AlertResponse {
	return AlertResponse{
		ID:              alert.ID,
		Type:            string(alert.Type),
		Priority:        string(alert.Priority),
		Status:          string(alert.Status),
		ShelfName:       alert.ShelfName,
		RackName:        alert.RackName,
		ProductNumber:   alert.ProductNumber,
		ProductName:     alert.ProductName,
		Category:        alert.Category,
		Title:           alert.Title,
		Message:         alert.Message,
		EmptyPercentage: alert.EmptyPercentage,
		FillPercentage:  alert.FillPercentage,
		ExpectedProduct: alert.ExpectedProduct,
		DetectedProduct: alert.DetectedProduct,
		AssignedStaff:   alert.AssignedStaff,
		CreatedBy:       alert.CreatedBy,
		CreatedAt:       alert.CreatedAt,
		UpdatedAt:       alert.UpdatedAt,
		AcknowledgedAt:  alert.AcknowledgedAt,
		ResolvedAt:      alert.ResolvedAt,
	}
}

// NewAlertResponses maps an alert slice.
func NewAlertResponses(alerts []*domain.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, NewAlertResponse(alert))
	}
	return out
}

// AlertHistoryResponse is one audit record.
type AlertHistoryResponse struct {
	ID          string    `json:"id"`
	AlertID     string    `json:"alert_id"`
	Action      string    `json:"action"`
	PerformedBy string    `json:"performed_by,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewAlertHistoryResponses maps history entries.
func NewAlertHistoryResponses(entries []*domain.AlertHistoryEntry) []AlertHistoryResponse {
	out := make([]AlertHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, AlertHistoryResponse{
			ID:          entry.ID,
			AlertID:     entry.AlertID,
			Action:      entry.Action,
			PerformedBy: entry.PerformedBy,
			Notes:       entry.Notes,
			Timestamp:   entry.Timestamp,
		})
	}
	return out
}
