package dto

import (
	"time"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

// InventoryCreateRequest payload for new inventory items.
type InventoryCreateRequest struct {
	ProductNumber string `json:"product_number" validate:"required,min=1,max=50"`
	ProductName   string `json:"product_name" validate:"required,min=1,max=200"`
	Category      string `json:"category" validate:"required,oneof=clothes fruits vegetables sports groceries"`
	ShelfName     string `json:"shelf_name" validate:"required,min=1,max=100"`
	RackName      string `json:"rack_name" validate:"required,min=1,max=100"`
}

// InventoryUpdateRequest payload for partial updates.
type InventoryUpdateRequest struct {
	ProductName string `json:"product_name" validate:"omitempty,min=1,max=200"`
	Category    string `json:"category" validate:"omitempty,oneof=clothes fruits vegetables sports groceries"`
	ShelfName   string `json:"shelf_name" validate:"omitempty,min=1,max=100"`
	RackName    string `json:"rack_name" validate:"omitempty,min=1,max=100"`
}

// InventoryResponse is the public view of an inventory item.
type InventoryResponse struct {
	ID            string    `json:"id"`
	ProductNumber string    `json:"product_number"`
	ProductName   string    `json:"product_name"`
	Category      string    `json:"category"`
	ShelfName     string    `json:"shelf_name"`
	RackName      string    `json:"rack_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewInventoryResponse maps a product to its response shape.
func NewInventoryResponse(product *domain.Product) InventoryResponse {
	return InventoryResponse{
		ID:            product.ID,
		ProductNumber: product.ProductNumber,
		ProductName:   product.ProductName,
		Category:      string(product.Category),
		ShelfName:     product.ShelfName,
		RackName:      product.RackName,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

// NewInventoryResponses maps a product slice.
func NewInventoryResponses(products []*domain.Product) []InventoryResponse {
	out := make([]InventoryResponse, 0, len(products))
	for _, product := range products {
		out = append(out, NewInventoryResponse(product))
	}
	return out
}
