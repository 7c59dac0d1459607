package domain

import "time"

// ProductCategory enumerates supported inventory categories.
type ProductCategory string

const (
	CategoryClothes    ProductCategory = "clothes"
	CategoryFruits     ProductCategory = "fruits"
	CategoryVegetables ProductCategory = "vegetables"
	CategorySports     ProductCategory = "sports"
	CategoryGroceries  ProductCategory = "groceries"
)

// ProductCategories lists every valid category.
var ProductCategories = []ProductCategory{
	CategoryClothes,
	CategoryFruits,
	CategoryVegetables,
	CategorySports,
	CategoryGroceries,
}

// Valid reports whether the category belongs to the enumerated set.
func (c ProductCategory) Valid() bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is an inventory item pinned to a shelf/rack location.
type Product struct {
	ID            string
	ProductNumber string
	ProductName   string
	Category      ProductCategory
	ShelfName     string
	RackName      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
