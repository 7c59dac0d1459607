package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/repository"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// ShelfService manages shelf units.
type ShelfService struct {
	shelves repository.ShelfRepository
}

// NewShelfService builds the service.
func NewShelfService(shelves repository.ShelfRepository) *ShelfService {
	return &ShelfService{shelves: shelves}
}

// Create registers a new shelf.
func (s *ShelfService) Create(ctx context.Context, shelf *domain.Shelf) (*domain.Shelf, error) {
	if err := s.shelves.Create(ctx, shelf); err != nil {
		return nil, err
	}
	return shelf, nil
}

// Get fetches one shelf by unique name.
func (s *ShelfService) Get(ctx context.Context, name string) (*domain.Shelf, error) {
	shelf, err := s.shelves.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shelf", map[string]any{"name": name})
		}
		return nil, err
	}
	return shelf, nil
}

// List returns shelves, optionally only active ones.
func (s *ShelfService) List(ctx context.Context, activeOnly bool) ([]*domain.Shelf, error) {
	return s.shelves.List(ctx, activeOnly)
}

// Update applies changes to an existing shelf.
func (s *ShelfService) Update(ctx context.Context, shelf *domain.Shelf) (*domain.Shelf, error) {
	existing, err := s.Get(ctx, shelf.Name)
	if err != nil {
		return nil, err
	}
	if shelf.Category == "" {
		shelf.Category = existing.Category
	}
	if shelf.Capacity == 0 {
		shelf.Capacity = existing.Capacity
	}
	if shelf.Description == "" {
		shelf.Description = existing.Description
	}
	// Active state only changes through ToggleStatus.
	shelf.Active = existing.Active
	shelf.CurrentStock = existing.CurrentStock

	if err := s.shelves.Update(ctx, shelf); err != nil {
		return nil, err
	}
	return s.Get(ctx, shelf.Name)
}

// Delete removes a shelf by name.
func (s *ShelfService) Delete(ctx context.Context, name string) error {
	if err := s.shelves.Delete(ctx, name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("shelf", map[string]any{"name": name})
		}
		return err
	}
	return nil
}

// ToggleStatus flips a shelf between active and inactive.
func (s *ShelfService) ToggleStatus(ctx context.Context, name string) (*domain.Shelf, error) {
	shelf, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	shelf.Active = !shelf.Active
	if err := s.shelves.Update(ctx, shelf); err != nil {
		return nil, err
	}
	return shelf, nil
}

// Categories returns the supported shelf categories.
func (s *ShelfService) Categories() []domain.ShelfCategory {
	return domain.ShelfCategories
}
