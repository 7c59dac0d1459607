package events

import (
	"time"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAlertCreated      EventType = "alert_created"
	EventAlertUpdated      EventType = "alert_updated"
	EventAlertAcknowledged EventType = "alert_acknowledged"
	EventAlertResolved     EventType = "alert_resolved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AlertID   string      `json:"alert_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AlertPayload carries the alert state snapshot for every alert event.
type AlertPayload struct {
	AlertType     domain.AlertType     `json:"alert_type"`
	Priority      domain.AlertPriority `json:"priority"`
	Status        domain.AlertStatus   `json:"status"`
	ShelfName     string               `json:"shelf_name"`
	RackName      string               `json:"rack_name"`
	ProductName   string               `json:"product_name,omitempty"`
	Title         string               `json:"title"`
	Message       string               `json:"message"`
	AssignedStaff string               `json:"assigned_staff,omitempty"`
	PerformedBy   string               `json:"performed_by,omitempty"`
}

// NewAlertPayload snapshots the alert fields dashboards care about.
func NewAlertPayload(alert *domain.Alert, performedBy string) AlertPayload {
	return AlertPayload{
		AlertType:     alert.Type,
		Priority:      alert.Priority,
		Status:        alert.Status,
		ShelfName:     alert.ShelfName,
		RackName:      alert.RackName,
		ProductName:   alert.ProductName,
		Title:         alert.Title,
		Message:       alert.Message,
		AssignedStaff: alert.AssignedStaff,
		PerformedBy:   performedBy,
	}
}
