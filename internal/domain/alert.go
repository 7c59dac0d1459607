package domain

import "time"

// AlertType classifies what a shelf alert is about.
type AlertType string

const (
	AlertLowStock       AlertType = "low_stock"
	AlertMediumStock    AlertType = "medium_stock"
	AlertCriticalStock  AlertType = "critical_stock"
	AlertOutOfStock     AlertType = "out_of_stock"
	AlertMisplacedItem  AlertType = "misplaced_item"
	AlertUnknownProduct AlertType = "unknown_product"
)

// StockAlertTypes groups the types covered by the stock-level ladder. A
// location carries at most one active alert from this group.
var StockAlertTypes = []AlertType{
	AlertLowStock,
	AlertMediumStock,
	AlertCriticalStock,
	AlertOutOfStock,
}

// AlertStatus tracks the alert lifecycle.
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
)

// AlertPriority ranks alerts for the dashboard.
type AlertPriority string

const (
	PriorityLow      AlertPriority = "low"
	PriorityMedium   AlertPriority = "medium"
	PriorityHigh     AlertPriority = "high"
	PriorityCritical AlertPriority = "critical"
)

// Alert records a stock or misplacement condition detected on a shelf rack.
type Alert struct {
	ID       string
	Type     AlertType
	Priority AlertPriority
	Status   AlertStatus

	ShelfName     string
	RackName      string
	ProductNumber string
	ProductName   string
	Category      string

	Title              string
	Message            string
	EmptyPercentage    float64
	FillPercentage     float64
	ExpectedProduct    string
	DetectedProduct    string
	AssignedStaff      string
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	AcknowledgedAt     *time.Time
	ResolvedAt         *time.Time
}

// AlertHistoryEntry is an audit record of an action taken on an alert.
type AlertHistoryEntry struct {
	ID          string
	AlertID     string
	Action      string
	PerformedBy string
	Notes       string
	Timestamp   time.Time
}

// AlertStatistics aggregates alert counts for the manager dashboard.
type AlertStatistics struct {
	Total        int64
	Active       int64
	Acknowledged int64
	Resolved     int64
	ByPriority   map[AlertPriority]int64
	ByType       map[AlertType]int64
}
