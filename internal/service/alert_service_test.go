package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/events"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name      string
		fill      float64
		wantType  domain.AlertType
		wantAlert bool
	}{
		{"empty rack", 0, domain.AlertOutOfStock, true},
		{"negative fill clamps to out of stock", -5, domain.AlertOutOfStock, true},
		{"critical boundary", 10, domain.AlertCriticalStock, true},
		{"just above critical", 10.1, domain.AlertMediumStock, true},
		{"medium boundary", 25, domain.AlertMediumStock, true},
		{"low boundary", 50, domain.AlertLowStock, true},
		{"healthy", 50.1, "", false},
		{"full", 100, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, _, ok := classifyStock(tt.fill)
			if ok != tt.wantAlert {
				t.Fatalf("classifyStock(%v) ok = %v, want %v", tt.fill, ok, tt.wantAlert)
			}
			if ok && gotType != tt.wantType {
				t.Errorf("classifyStock(%v) type = %q, want %q", tt.fill, gotType, tt.wantType)
			}
		})
	}
}

func TestMisplaced(t *testing.T) {
	product := &domain.Product{ProductName: "Granny Smith Apples"}

	tests := []struct {
		name string
		rack domain.RackDetection
		want bool
	}{
		{"matching item", domain.RackDetection{Item: "apples"}, false},
		{"matching item different case", domain.RackDetection{Item: "APPLES"}, false},
		{"different item", domain.RackDetection{Item: "bananas"}, true},
		{"no item recognized", domain.RackDetection{Item: ""}, false},
		{"tidy rack below disorder threshold", domain.RackDetection{Item: "apples", DisorderedPercentage: 20}, false},
		{"disorder past threshold", domain.RackDetection{Item: "apples", DisorderedPercentage: 20.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := misplaced(tt.rack, product); got != tt.want {
				t.Errorf("misplaced() = %v, want %v", got, tt.want)
			}
		})
	}
}

func newAlertService(t *testing.T) (*AlertService, *fakeAlertRepo, *fakeHistoryRepo, *fakeInventoryRepo) {
	t.Helper()

	alerts := newFakeAlertRepo()
	history := &fakeHistoryRepo{}
	inventory := newFakeInventoryRepo()
	assignments := newFakeAssignmentRepo()
	svc := NewAlertService(alerts, history, inventory, assignments, events.NewInMemoryDispatcher(), zap.NewNop())
	return svc, alerts, history, inventory
}

func TestProcessReport_CreatesAndRefreshesStockAlert(t *testing.T) {
	svc, alerts, history, inventory := newAlertService(t)
	ctx := context.Background()

	if err := inventory.Create(ctx, &domain.Product{
		ProductNumber: "P-100",
		ProductName:   "apples",
		Category:      domain.CategoryFruits,
		ShelfName:     "A1",
		RackName:      "R1",
	}); err != nil {
		t.Fatalf("seeding inventory: %v", err)
	}

	report := &domain.DetectionReport{
		ShelfNumber: "A1",
		Racks: []domain.RackDetection{
			{RackID: "R1", Item: "apples", EmptyPercentage: 100},
		},
	}

	result, err := svc.ProcessReport(ctx, report)
	if err != nil {
		t.Fatalf("ProcessReport() error = %v", err)
	}
	if result.AlertsCreated != 1 || result.AlertsUpdated != 0 {
		t.Fatalf("first run created/updated = %d/%d, want 1/0", result.AlertsCreated, result.AlertsUpdated)
	}
	alert := result.Alerts[0]
	if alert.Type != domain.AlertOutOfStock {
		t.Errorf("Type = %q, want %q", alert.Type, domain.AlertOutOfStock)
	}
	if alert.Priority != domain.PriorityCritical {
		t.Errorf("Priority = %q, want %q", alert.Priority, domain.PriorityCritical)
	}

	// A second sighting of the same condition refreshes the existing alert
	// instead of piling up duplicates.
	report.Racks[0].EmptyPercentage = 95
	result, err = svc.ProcessReport(ctx, report)
	if err != nil {
		t.Fatalf("ProcessReport() second run error = %v", err)
	}
	if result.AlertsCreated != 0 || result.AlertsUpdated != 1 {
		t.Fatalf("second run created/updated = %d/%d, want 0/1", result.AlertsCreated, result.AlertsUpdated)
	}
	refreshed := result.Alerts[0]
	if refreshed.ID != alert.ID {
		t.Errorf("second run should reuse alert %s, got %s", alert.ID, refreshed.ID)
	}
	if refreshed.Type != domain.AlertCriticalStock {
		t.Errorf("refreshed Type = %q, want %q", refreshed.Type, domain.AlertCriticalStock)
	}
	if len(alerts.alerts) != 1 {
		t.Errorf("stored alerts = %d, want 1", len(alerts.alerts))
	}

	entries, _ := history.ListByAlert(ctx, alert.ID)
	if len(entries) != 2 {
		t.Errorf("history entries = %d, want 2 (created + updated)", len(entries))
	}
}

func TestProcessReport_Misplacement(t *testing.T) {
	svc, _, _, inventory := newAlertService(t)
	ctx := context.Background()

	_ = inventory.Create(ctx, &domain.Product{
		ProductNumber: "P-200",
		ProductName:   "apples",
		Category:      domain.CategoryFruits,
		ShelfName:     "A1",
		RackName:      "R2",
	})

	result, err := svc.ProcessReport(ctx, &domain.DetectionReport{
		ShelfNumber: "A1",
		Racks: []domain.RackDetection{
			{RackID: "R2", Item: "bananas", EmptyPercentage: 30},
		},
	})
	if err != nil {
		t.Fatalf("ProcessReport() error = %v", err)
	}
	if result.AlertsCreated != 1 {
		t.Fatalf("AlertsCreated = %d, want 1", result.AlertsCreated)
	}
	if result.Alerts[0].Type != domain.AlertMisplacedItem {
		t.Errorf("Type = %q, want %q", result.Alerts[0].Type, domain.AlertMisplacedItem)
	}
	if result.Alerts[0].DetectedProduct != "bananas" {
		t.Errorf("DetectedProduct = %q, want bananas", result.Alerts[0].DetectedProduct)
	}
}

func TestProcessReport_UnknownLocation(t *testing.T) {
	svc, _, _, _ := newAlertService(t)
	ctx := context.Background()

	report := &domain.DetectionReport{
		ShelfNumber: "A1",
		Racks: []domain.RackDetection{
			{RackID: "R9", Item: "gadgets", EmptyPercentage: 10},
		},
	}

	result, err := svc.ProcessReport(ctx, report)
	if err != nil {
		t.Fatalf("ProcessReport() error = %v", err)
	}
	if result.AlertsCreated != 1 {
		t.Fatalf("AlertsCreated = %d, want 1", result.AlertsCreated)
	}
	if result.Alerts[0].Type != domain.AlertUnknownProduct {
		t.Errorf("Type = %q, want %q", result.Alerts[0].Type, domain.AlertUnknownProduct)
	}

	// Repeat sighting stays deduplicated.
	result, err = svc.ProcessReport(ctx, report)
	if err != nil {
		t.Fatalf("ProcessReport() second run error = %v", err)
	}
	if result.AlertsCreated != 0 {
		t.Errorf("second run AlertsCreated = %d, want 0", result.AlertsCreated)
	}
}

func TestProcessReport_MissingShelfNumber(t *testing.T) {
	svc, _, _, _ := newAlertService(t)

	if _, err := svc.ProcessReport(context.Background(), &domain.DetectionReport{}); err == nil {
		t.Error("ProcessReport() should reject a report without shelf number")
	}
}

func TestAlertLifecycle(t *testing.T) {
	svc, alerts, _, _ := newAlertService(t)
	ctx := context.Background()

	seed := &domain.Alert{
		Type:      domain.AlertLowStock,
		Priority:  domain.PriorityLow,
		Status:    domain.AlertStatusActive,
		ShelfName: "A1",
		RackName:  "R1",
	}
	if err := alerts.Create(ctx, seed); err != nil {
		t.Fatalf("seeding alert: %v", err)
	}

	acked, err := svc.Acknowledge(ctx, seed.ID, "carol", "on it")
	if err != nil {
		t.Fatalf("Acknowledge() error = %v", err)
	}
	if acked.Status != domain.AlertStatusAcknowledged {
		t.Errorf("Status = %q, want acknowledged", acked.Status)
	}
	if acked.AcknowledgedAt == nil {
		t.Error("AcknowledgedAt should be set")
	}

	// Acknowledging twice is a validation failure.
	if _, err := svc.Acknowledge(ctx, seed.ID, "carol", ""); err == nil {
		t.Error("Acknowledge() should reject non-active alerts")
	}

	resolved, err := svc.Resolve(ctx, seed.ID, "carol", "restocked")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.Status != domain.AlertStatusResolved {
		t.Errorf("Status = %q, want resolved", resolved.Status)
	}
	if resolved.ResolvedAt == nil {
		t.Error("ResolvedAt should be set")
	}

	if _, err := svc.Resolve(ctx, seed.ID, "carol", ""); err == nil {
		t.Error("Resolve() should reject already-resolved alerts")
	}

	entries, err := svc.History(ctx, seed.ID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("history entries = %d, want 2", len(entries))
	}
}

func TestAlertLifecycle_NotFound(t *testing.T) {
	svc, _, _, _ := newAlertService(t)

	_, err := svc.Acknowledge(context.Background(), "missing", "carol", "")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error = %v, want DomainError", err)
	}
	if domainErr.Code != "NOT_FOUND" {
		t.Errorf("Code = %q, want NOT_FOUND", domainErr.Code)
	}
}
