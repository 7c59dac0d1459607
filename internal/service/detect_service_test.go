package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/events"
	"github.com/shelfcam/shelfcam-api/internal/inference"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

func newDetectService(t *testing.T, modelURL string) (*DetectService, *fakeInventoryRepo) {
	t.Helper()

	inventory := newFakeInventoryRepo()
	alerts := NewAlertService(newFakeAlertRepo(), &fakeHistoryRepo{}, inventory, newFakeAssignmentRepo(), events.NewInMemoryDispatcher(), zap.NewNop())
	model := inference.NewClient(modelURL, 5*time.Second)
	return NewDetectService(model, alerts, zap.NewNop()), inventory
}

func TestDetectService_RejectsBadUploads(t *testing.T) {
	svc, _ := newDetectService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	tests := []struct {
		name        string
		contentType string
		image       []byte
	}{
		{"empty image", "image/jpeg", nil},
		{"oversized image", "image/jpeg", make([]byte, maxImageBytes+1)},
		{"not an image", "application/pdf", []byte("%PDF-")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Detect(ctx, "upload.bin", tt.contentType, tt.image, "A1")
			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) {
				t.Fatalf("Detect() error = %v, want DomainError", err)
			}
			if domainErr.Code != "VALIDATION_FAILED" {
				t.Errorf("Code = %q, want VALIDATION_FAILED", domainErr.Code)
			}
		})
	}
}

func TestDetectService_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"shelf_number": "A1",
			"racks": [{"rack_id": "R1", "item": "apples", "empty_percentage": 100}]
		}`))
	}))
	defer server.Close()

	svc, inventory := newDetectService(t, server.URL)
	ctx := context.Background()

	_ = inventory.Create(ctx, &domain.Product{
		ProductNumber: "P-1",
		ProductName:   "apples",
		Category:      domain.CategoryFruits,
		ShelfName:     "A1",
		RackName:      "R1",
	})

	outcome, err := svc.Detect(ctx, "shelf.jpg", "image/jpeg", []byte("fake-image"), "")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if outcome.Report.ShelfNumber != "A1" {
		t.Errorf("ShelfNumber = %q, want default A1", outcome.Report.ShelfNumber)
	}
	if outcome.Result.AlertsCreated != 1 {
		t.Errorf("AlertsCreated = %d, want 1", outcome.Result.AlertsCreated)
	}
	if outcome.Result.Alerts[0].Type != domain.AlertOutOfStock {
		t.Errorf("Type = %q, want %q", outcome.Result.Alerts[0].Type, domain.AlertOutOfStock)
	}
}

func TestDetectService_ModelFailureIsInternal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad model day", http.StatusBadGateway)
	}))
	defer server.Close()

	svc, _ := newDetectService(t, server.URL)

	_, err := svc.Detect(context.Background(), "shelf.jpg", "image/png", []byte("img"), "A1")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("Detect() error = %v, want DomainError", err)
	}
	if domainErr.Code != "INTERNAL_ERROR" {
		t.Errorf("Code = %q, want INTERNAL_ERROR", domainErr.Code)
	}
}
