package entities

import (
	"time"
)

// Category is the closed set of storage locations an item can live in.
type Category string

const (
	CategoryFridge     Category = "Fridge"
	CategoryPantry     Category = "Pantry"
	CategoryFreezer    Category = "Freezer"
	CategoryCabinet    Category = "Cabinet"
	CategoryCountertop Category = "Countertop"
	CategorySpiceRack  Category = "Spice Rack"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFridge,
	CategoryPantry,
	CategoryFreezer,
	CategoryCabinet,
	CategoryCountertop,
	CategorySpiceRack,
}

func IsValidCategory(c Category) bool {
	for _, candidate := range Categories {
		if candidate == c {
			return true
		}
	}
	return false
}

// FoodItem is the authoritative inventory record. ExpiryDate is carried as a
// normalized "2006-01-02" string because exact string equality on it is part of
// the reconciliation dedup key.
type FoodItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   Category  `json:"category"`
	ExpiryDate string    `json:"expiry_date"`
	Quantity   string    `json:"quantity"`
	AddedAt    time.Time `json:"added_at"`
	Price      float64   `json:"price,omitempty"`
}

// ScannedItem is an untrusted candidate produced by the acquisition pipeline.
// Expiry is relative (days from the scan moment) because OCR and AI infer
// freshness rather than read a printed date.
type ScannedItem struct {
	Name                string   `json:"name"`
	Quantity            string   `json:"quantity"`
	Category            Category `json:"category"`
	EstimatedExpiryDays int      `json:"estimated_expiry_days"`
	EstimatedPrice      float64  `json:"estimated_price,omitempty"`
}
