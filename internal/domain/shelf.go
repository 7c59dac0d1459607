package domain

import "time"

// ShelfCategory enumerates the sections a shelf can belong to.
type ShelfCategory string

const (
	ShelfCategoryElectronics ShelfCategory = "electronics"
	ShelfCategoryClothing    ShelfCategory = "clothing"
	ShelfCategoryGroceries   ShelfCategory = "groceries"
	ShelfCategoryBooks       ShelfCategory = "books"
	ShelfCategoryToys        ShelfCategory = "toys"
	ShelfCategorySports      ShelfCategory = "sports"
	ShelfCategoryHomeGarden  ShelfCategory = "home_garden"
	ShelfCategoryBeauty      ShelfCategory = "beauty"
	ShelfCategoryAutomotive  ShelfCategory = "automotive"
	ShelfCategoryPharmacy    ShelfCategory = "pharmacy"
)

// ShelfCategories lists every valid shelf category.
var ShelfCategories = []ShelfCategory{
	ShelfCategoryElectronics,
	ShelfCategoryClothing,
	ShelfCategoryGroceries,
	ShelfCategoryBooks,
	ShelfCategoryToys,
	ShelfCategorySports,
	ShelfCategoryHomeGarden,
	ShelfCategoryBeauty,
	ShelfCategoryAutomotive,
	ShelfCategoryPharmacy,
}

// Shelf is a monitored physical shelf unit in the store.
type Shelf struct {
	ID           string
	Name         string
	Category     ShelfCategory
	Capacity     int
	Description  string
	Active       bool
	CurrentStock int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
