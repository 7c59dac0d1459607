package dto

import (
	"time"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

// ShelfCreateRequest payload for new shelves.
type ShelfCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Category    string `json:"category" validate:"required,oneof=electronics clothing groceries books toys sports home_garden beauty automotive pharmacy"`
	Capacity    int    `json:"capacity" validate:"required,gte=1"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// ShelfUpdateRequest payload for partial updates.
type ShelfUpdateRequest struct {
	Category    string `json:"category" validate:"omitempty,oneof=electronics clothing groceries books toys sports home_garden beauty automotive pharmacy"`
	Capacity    int    `json:"capacity" validate:"omitempty,gte=1"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// ShelfResponse is the public view of a shelf.
type ShelfResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Capacity     int       `json:"capacity"`
	Description  string    `json:"description,omitempty"`
	Active       bool      `json:"is_active"`
	CurrentStock int       `json:"current_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewShelfResponse maps a shelf to its response shape.
func NewShelfResponse(shelf *domain.Shelf) ShelfResponse {
	return ShelfResponse{
		ID:           shelf.ID,
		Name:         shelf.Name,
		Category:     string(shelf.Category),
		Capacity:     shelf.Capacity,
		Description:  shelf.Description,
		Active:       shelf.Active,
		CurrentStock: shelf.CurrentStock,
		CreatedAt:    shelf.CreatedAt,
		UpdatedAt:    shelf.UpdatedAt,
	}
}

// NewShelfResponses maps a shelf slice.
func NewShelfResponses(shelves []*domain.Shelf) []ShelfResponse {
	out := make([]ShelfResponse, 0, len(shelves))
	for _, shelf := range shelves {
		out = append(out, NewShelfResponse(shelf))
	}
	return out
}
