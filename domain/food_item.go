package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"Shelf-Life-Backend/entities"
)

var (
	MessageSuccessAddFoodItem    = "food item added successfully"
	MessageSuccessUpdateFoodItem = "food item updated successfully"
	MessageSuccessDeleteFoodItem = "food item deleted successfully"
	MessageSuccessGetFoodItems   = "food items retrieved successfully"
	MessageSuccessScanReceipt    = "receipt scanned successfully"
	MessageSuccessGetDashboard   = "dashboard statistics retrieved successfully"
	MessageSuccessSendDigest     = "expiry digest sent successfully"
	MessageScanServiceBusy       = "the scanning service is currently busy, showing estimated results"

	MessageFailedAddFoodItem    = "failed to add food item"
	MessageFailedUpdateFoodItem = "failed to update food item"
	MessageFailedDeleteFoodItem = "failed to delete food item"
	MessageFailedGetFoodItems   = "failed to retrieve food items"
	MessageFailedScanReceipt    = "failed to scan receipt"
	MessageFailedGetDashboard   = "failed to retrieve dashboard statistics"
	MessageFailedSendDigest     = "failed to send expiry digest"

	ErrInvalidExpiryDate   = errors.New("invalid expiry date")
	ErrEmptyItemName       = errors.New("item name must not be empty")
	ErrDigestNotConfigured = errors.New("digest mail not configured")
)

type (
	AddFoodItemRequest struct {
		Name       string  `json:"name" validate:"required"`
		Category   string  `json:"category" validate:"required"`
		Quantity   string  `json:"quantity" validate:"required"`
		ExpiryDate string  `json:"expiry_date" validate:"omitempty"`
		Price      float64 `json:"price" validate:"omitempty,gte=0"`
	}

	UpdateFoodItemRequest struct {
		Name       string  `json:"name" validate:"omitempty"`
		Category   string  `json:"category" validate:"omitempty"`
		Quantity   string  `json:"quantity" validate:"omitempty"`
		ExpiryDate string  `json:"expiry_date" validate:"omitempty"`
		Price      float64 `json:"price" validate:"omitempty,gte=0"`
	}

	FoodItemResponse struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		Category      string    `json:"category"`
		ExpiryDate    string    `json:"expiry_date"`
		Quantity      string    `json:"quantity"`
		Price         float64   `json:"price"`
		AddedAt       time.Time `json:"added_at"`
		DaysRemaining int       `json:"days_remaining"`
		Status        string    `json:"status"` // "fresh", "expiring", "expired"
	}

	InventoryViewRequest struct {
		Search   string
		Category string
		Status   string // "all", "expiring", "expired"
		Sort     string // "expiry", "name", "added"
	}

	InventoryViewResponse struct {
		Items []FoodItemResponse     `json:"items"`
		Stats DashboardStatsResponse `json:"stats"`
	}

	ScanReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"receipt_image" form:"receipt_image" validate:"required"`

		// The client's live filters, used to decide whether the result of the
		// scan would be hidden from view.
		ActiveCategory string `json:"active_category" form:"active_category"`
		ActiveStatus   string `json:"active_status" form:"active_status"`
		Search         string `json:"search" form:"search"`
	}

	ScanReceiptResponse struct {
		Items        []FoodItemResponse `json:"items"`
		Added        int                `json:"added"`
		Merged       int                `json:"merged"`
		ResetFilters bool               `json:"reset_filters"`
		ServiceBusy  bool               `json:"service_busy"`
		ImageURL     string             `json:"image_url,omitempty"`
	}

	DashboardStatsResponse struct {
		TotalItems   int     `json:"total_items"`
		Expiring     int     `json:"expiring"`
		Expired      int     `json:"expired"`
		FridgeItems  int     `json:"fridge_items"`
		TotalValue   float64 `json:"total_value"`
		WastedValue  float64 `json:"wasted_value"`
		FreshPercent int     `json:"fresh_percent"`
	}
)

// ParseCategory validates a free category string from a request against the
// closed set. It is stricter than NormalizeCategory on purpose: manual input
// should name a real shelf, scanned input gets normalized.
func ParseCategory(raw string) (entities.Category, error) {
	c := entities.Category(raw)
	if !entities.IsValidCategory(c) {
		return "", ErrInvalidCategory
	}
	return c, nil
}
