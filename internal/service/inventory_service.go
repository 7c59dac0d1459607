package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/repository"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// InventoryService manages inventory items.
type InventoryService struct {
	inventory repository.InventoryRepository
	shelves   repository.ShelfRepository
}

// NewInventoryService builds the service.
func NewInventoryService(inventory repository.InventoryRepository, shelves repository.ShelfRepository) *InventoryService {
	return &InventoryService{inventory: inventory, shelves: shelves}
}

// Create registers a new inventory item. The shelf it points at must exist.
func (s *InventoryService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if _, err := s.shelves.GetByName(ctx, product.ShelfName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shelf", map[string]any{"name": product.ShelfName})
		}
		return nil, err
	}
	if err := s.inventory.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get fetches one item by product number.
func (s *InventoryService) Get(ctx context.Context, productNumber string) (*domain.Product, error) {
	product, err := s.inventory.GetByProductNumber(ctx, productNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("inventory item", map[string]any{"product_number": productNumber})
		}
		return nil, err
	}
	return product, nil
}

// List returns all inventory items.
func (s *InventoryService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.inventory.List(ctx)
}

// Update applies changes to an existing item.
func (s *InventoryService) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	existing, err := s.Get(ctx, product.ProductNumber)
	if err != nil {
		return nil, err
	}
	if product.ProductName == "" {
		product.ProductName = existing.ProductName
	}
	if product.Category == "" {
		product.Category = existing.Category
	}
	if product.ShelfName == "" {
		product.ShelfName = existing.ShelfName
	}
	if product.RackName == "" {
		product.RackName = existing.RackName
	}

	if err := s.inventory.Update(ctx, product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("inventory item", map[string]any{"product_number": product.ProductNumber})
		}
		return nil, err
	}
	return s.Get(ctx, product.ProductNumber)
}

// Delete removes an item by product number.
func (s *InventoryService) Delete(ctx context.Context, productNumber string) error {
	if err := s.inventory.Delete(ctx, productNumber); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("inventory item", map[string]any{"product_number": productNumber})
		}
		return err
	}
	return nil
}

// Categories returns the supported product categories.
func (s *InventoryService) Categories() []domain.ProductCategory {
	return domain.ProductCategories
}
