package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfcam/shelfcam-api/internal/domain"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

func newAssignmentService(t *testing.T) (*AssignmentService, *fakeAccountRepo, *fakeShelfRepo) {
	t.Helper()

	accounts := newFakeAccountRepo()
	shelves := newFakeShelfRepo()
	ctx := context.Background()

	for _, account := range []*domain.Account{
		{Username: "stacy", Role: domain.RoleStaff},
		{Username: "sam", Role: domain.RoleStaff},
		{Username: "mia", Role: domain.RoleManager},
	} {
		if err := accounts.Create(ctx, account); err != nil {
			t.Fatalf("seeding account %s: %v", account.Username, err)
		}
	}
	for _, shelf := range []*domain.Shelf{
		{Name: "A1", Category: domain.ShelfCategoryGroceries, Capacity: 100, Active: true},
		{Name: "B2", Category: domain.ShelfCategoryBooks, Capacity: 50, Active: true},
		{Name: "C3", Category: domain.ShelfCategoryToys, Capacity: 30, Active: false},
	} {
		if err := shelves.Create(ctx, shelf); err != nil {
			t.Fatalf("seeding shelf %s: %v", shelf.Name, err)
		}
	}

	return NewAssignmentService(newFakeAssignmentRepo(), accounts, shelves), accounts, shelves
}

func TestAssignmentService_Assign(t *testing.T) {
	svc, _, _ := newAssignmentService(t)
	ctx := context.Background()

	assignment, err := svc.Assign(ctx, "stacy", "A1", "mia", "morning rotation")
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if !assignment.Active {
		t.Error("new assignments should be active")
	}
	if assignment.AssignedBy != "mia" {
		t.Errorf("AssignedBy = %q, want mia", assignment.AssignedBy)
	}

	mine, err := svc.ForStaff(ctx, "stacy")
	if err != nil {
		t.Fatalf("ForStaff() error = %v", err)
	}
	if len(mine) != 1 || mine[0].ShelfName != "A1" {
		t.Errorf("ForStaff() = %+v, want one assignment on A1", mine)
	}
}

func TestAssignmentService_AssignRejections(t *testing.T) {
	svc, _, _ := newAssignmentService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		shelf    string
		wantCode string
	}{
		{"unknown account", "ghost", "A1", "NOT_FOUND"},
		{"non-staff account", "mia", "A1", "VALIDATION_FAILED"},
		{"unknown shelf", "stacy", "Z9", "NOT_FOUND"},
		{"inactive shelf", "stacy", "C3", "VALIDATION_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Assign(ctx, tt.username, tt.shelf, "mia", "")
			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) {
				t.Fatalf("Assign() error = %v, want DomainError", err)
			}
			if domainErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", domainErr.Code, tt.wantCode)
			}
		})
	}
}

func TestAssignmentService_UnassignAndTransfer(t *testing.T) {
	svc, _, _ := newAssignmentService(t)
	ctx := context.Background()

	assignment, err := svc.Assign(ctx, "stacy", "A1", "mia", "")
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	moved, err := svc.Transfer(ctx, assignment.ID, "B2", "covering B2")
	if err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	if moved.ShelfName != "B2" {
		t.Errorf("ShelfName = %q, want B2", moved.ShelfName)
	}

	if _, err := svc.Transfer(ctx, assignment.ID, "C3", ""); err == nil {
		t.Error("Transfer() should reject inactive target shelves")
	}

	if err := svc.Unassign(ctx, assignment.ID); err != nil {
		t.Fatalf("Unassign() error = %v", err)
	}
	mine, err := svc.ForStaff(ctx, "stacy")
	if err != nil {
		t.Fatalf("ForStaff() error = %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("ForStaff() after unassign = %+v, want none", mine)
	}

	if err := svc.Unassign(ctx, "missing-id"); err == nil {
		t.Error("Unassign() should report missing assignments")
	}
}

func TestAssignmentService_Dashboard(t *testing.T) {
	svc, _, _ := newAssignmentService(t)
	ctx := context.Background()

	if _, err := svc.Assign(ctx, "stacy", "A1", "mia", ""); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	dashboard, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	// Inactive shelves stay off the dashboard.
	if len(dashboard.Shelves) != 2 {
		t.Fatalf("Shelves = %d, want 2 active shelves", len(dashboard.Shelves))
	}
	coverage := make(map[string][]string)
	for _, shelf := range dashboard.Shelves {
		coverage[shelf.ShelfName] = shelf.AssignedStaff
	}
	if len(coverage["A1"]) != 1 || coverage["A1"][0] != "stacy" {
		t.Errorf("A1 coverage = %v, want [stacy]", coverage["A1"])
	}
	if dashboard.UnassignedOnly != 1 {
		t.Errorf("UnassignedOnly = %d, want 1 (B2)", dashboard.UnassignedOnly)
	}
	if len(dashboard.AvailableStaff) != 1 || dashboard.AvailableStaff[0] != "sam" {
		t.Errorf("AvailableStaff = %v, want [sam]", dashboard.AvailableStaff)
	}
}
