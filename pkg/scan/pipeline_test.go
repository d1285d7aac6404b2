package scan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Shelf-Life-Backend/entities"
)

func TestPipelineStopsAtFirstSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart upload: %v", err)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("expected image under the file field: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"grocery_list":[{"item":"Whole Milk","qty":"1L","cost":"3.20","type":"dairy","expiration_date":"01/02/2006"}]}`))
	}))
	defer srv.Close()

	pipeline := NewPipeline(NewOCRProvider(srv.URL), NewStaticProvider())
	items, busy := pipeline.Scan(context.Background(), []byte("jpegdata"), "image/jpeg")

	if busy {
		t.Error("no tier was rate limited, busy must be false")
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item from the OCR tier, got %d", len(items))
	}

	got := items[0]
	if got.Name != "Whole Milk" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Quantity != "1L" {
		t.Errorf("quantity = %q", got.Quantity)
	}
	if got.EstimatedPrice != 3.20 {
		t.Errorf("price = %v, want 3.20", got.EstimatedPrice)
	}
	if got.Category != entities.CategoryFridge {
		t.Errorf("category = %q, want Fridge", got.Category)
	}
	// The printed date is long gone, so the shelf-life estimate takes over.
	if got.EstimatedExpiryDays != 7 {
		t.Errorf("estimated days = %d, want the milk shelf life 7", got.EstimatedExpiryDays)
	}
}

func TestPipelineFallsThroughToStatic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	pipeline := NewPipeline(NewOCRProvider(srv.URL), NewGeminiProvider("", ""), NewStaticProvider())
	items, busy := pipeline.Scan(context.Background(), []byte("jpegdata"), "image/jpeg")

	if busy {
		t.Error("a plain failure is not a quota hit")
	}
	if len(items) != 6 {
		t.Fatalf("expected the 6 static groceries, got %d items", len(items))
	}
	if items[0].Name != "Organic Bananas" {
		t.Errorf("first static item = %q", items[0].Name)
	}
}

func TestPipelineReportsQuotaHit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	pipeline := NewPipeline(NewOCRProvider(srv.URL), NewStaticProvider())
	items, busy := pipeline.Scan(context.Background(), []byte("jpegdata"), "image/jpeg")

	if !busy {
		t.Error("a 429 from a tier must surface as busy")
	}
	if len(items) == 0 {
		t.Error("fallback data must still be returned on a quota hit")
	}
}

func TestPipelineSkipsEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	pipeline := NewPipeline(NewOCRProvider(srv.URL), NewStaticProvider())
	items, _ := pipeline.Scan(context.Background(), []byte("jpegdata"), "image/jpeg")

	if len(items) != 6 {
		t.Fatalf("an empty OCR result must not count as success, got %d items", len(items))
	}
}

func TestScannedItemFromDefaults(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	got := scannedItemFrom(map[string]interface{}{}, now)
	if got.Name != "Unidentified Item" {
		t.Errorf("name default = %q", got.Name)
	}
	if got.Quantity != "1 unit" {
		t.Errorf("quantity default = %q", got.Quantity)
	}
	if got.Category != entities.CategoryFridge {
		t.Errorf("category default = %q", got.Category)
	}
	if got.EstimatedExpiryDays != 7 {
		t.Errorf("expiry default = %d, want 7", got.EstimatedExpiryDays)
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rawDate string
		item    string
		want    int
	}{
		{"iso date ahead", "2025-01-15", "Milk", 5},
		{"us date ahead", "01/20/2025", "Milk", 10},
		{"elapsed date falls back", "2025-01-01", "Tomatoes", 5},
		{"empty falls back", "", "Tomatoes", 5},
		{"garbage falls back", "next tuesday", "Milk", 7},
	}

	for _, tt := range tests {
		if got := daysUntil(tt.rawDate, tt.item, now); got != tt.want {
			t.Errorf("%s: daysUntil(%q, %q) = %d, want %d", tt.name, tt.rawDate, tt.item, got, tt.want)
		}
	}
}

func TestItemsOfShapes(t *testing.T) {
	bare := []interface{}{map[string]interface{}{"name": "A"}}
	if got := itemsOf(bare); len(got) != 1 {
		t.Errorf("bare array: got %d elements", len(got))
	}

	wrapped := map[string]interface{}{"items": []interface{}{map[string]interface{}{"name": "A"}, "not an object"}}
	if got := itemsOf(wrapped); len(got) != 1 {
		t.Errorf("wrapped with junk element: got %d elements", len(got))
	}

	if got := itemsOf("nonsense"); len(got) != 0 {
		t.Errorf("non-collection payload: got %d elements", len(got))
	}
}
