package scan

import (
	"context"

	"Shelf-Life-Backend/entities"
)

// staticProvider is the terminal tier. It always succeeds with a fixed set of
// typical groceries, which is what makes the pipeline total.
type staticProvider struct{}

func NewStaticProvider() Provider { return staticProvider{} }

func (staticProvider) Name() string { return "static-fallback" }

func (staticProvider) Scan(_ context.Context, _ []byte, _ string) ([]entities.ScannedItem, error) {
	return StaticScannedItems(), nil
}

// StaticScannedItems is the offline grocery dataset.
func StaticScannedItems() []entities.ScannedItem {
	return []entities.ScannedItem{
		{Name: "Organic Bananas", Quantity: "1 bunch", Category: entities.CategoryCountertop, EstimatedExpiryDays: 5, EstimatedPrice: 2.99},
		{Name: "Avocados", Quantity: "3 units", Category: entities.CategoryCountertop, EstimatedExpiryDays: 4, EstimatedPrice: 4.50},
		{Name: "Sourdough Bread", Quantity: "1 loaf", Category: entities.CategoryPantry, EstimatedExpiryDays: 5, EstimatedPrice: 5.49},
		{Name: "Cage-Free Eggs", Quantity: "12 count", Category: entities.CategoryFridge, EstimatedExpiryDays: 21, EstimatedPrice: 6.99},
		{Name: "Almond Milk", Quantity: "1 carton", Category: entities.CategoryFridge, EstimatedExpiryDays: 7, EstimatedPrice: 3.99},
		{Name: "Greek Yogurt", Quantity: "2 cups", Category: entities.CategoryFridge, EstimatedExpiryDays: 14, EstimatedPrice: 1.50},
	}
}
