package service

import (
	"context"
	"testing"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

func TestShelfService_ToggleStatus(t *testing.T) {
	svc := NewShelfService(newFakeShelfRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, &domain.Shelf{
		Name:     "A1",
		Category: domain.ShelfCategoryGroceries,
		Capacity: 100,
		Active:   true,
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	toggled, err := svc.ToggleStatus(ctx, "A1")
	if err != nil {
		t.Fatalf("ToggleStatus() error = %v", err)
	}
	if toggled.Active {
		t.Error("first toggle should deactivate the shelf")
	}

	toggled, err = svc.ToggleStatus(ctx, "A1")
	if err != nil {
		t.Fatalf("ToggleStatus() error = %v", err)
	}
	if !toggled.Active {
		t.Error("second toggle should reactivate the shelf")
	}
}

func TestShelfService_UpdatePreservesActiveState(t *testing.T) {
	svc := NewShelfService(newFakeShelfRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, &domain.Shelf{
		Name:     "A1",
		Category: domain.ShelfCategoryGroceries,
		Capacity: 100,
		Active:   true,
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.ToggleStatus(ctx, "A1"); err != nil {
		t.Fatalf("ToggleStatus() error = %v", err)
	}

	updated, err := svc.Update(ctx, &domain.Shelf{
		Name:     "A1",
		Capacity: 150,
		Active:   true, // must be ignored
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Active {
		t.Error("Update() must not reactivate a toggled-off shelf")
	}
	if updated.Capacity != 150 {
		t.Errorf("Capacity = %d, want 150", updated.Capacity)
	}
	if updated.Category != domain.ShelfCategoryGroceries {
		t.Errorf("Category = %q, blank fields should keep their old values", updated.Category)
	}
}

func TestShelfService_ListActiveOnly(t *testing.T) {
	svc := NewShelfService(newFakeShelfRepo())
	ctx := context.Background()

	for _, shelf := range []*domain.Shelf{
		{Name: "A1", Category: domain.ShelfCategoryGroceries, Capacity: 100, Active: true},
		{Name: "B2", Category: domain.ShelfCategoryBooks, Capacity: 50, Active: false},
	} {
		if _, err := svc.Create(ctx, shelf); err != nil {
			t.Fatalf("Create(%s) error = %v", shelf.Name, err)
		}
	}

	all, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List(all) = %d shelves, want 2", len(all))
	}

	active, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(active) != 1 || active[0].Name != "A1" {
		t.Errorf("List(active) = %+v, want just A1", active)
	}
}
