package food

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"Shelf-Life-Backend/domain"
	"Shelf-Life-Backend/entities"
)

type stubScanner struct {
	items []entities.ScannedItem
	busy  bool
}

func (s stubScanner) Scan(_ context.Context, _ []byte, _ string) ([]entities.ScannedItem, bool) {
	return s.items, s.busy
}

type recordingMailer struct {
	to, subject, body string
	sent              int
}

func (m *recordingMailer) Send(toEmail, subject, body string) error {
	m.to, m.subject, m.body = toEmail, subject, body
	m.sent++
	return nil
}

func newTestService(t *testing.T, seed []entities.FoodItem, scanner ReceiptScanner, mailer MailSender, digestTo string) FoodService {
	t.Helper()

	store, err := NewInMemoryStore()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if seed == nil {
		seed = []entities.FoodItem{}
	}
	if err := store.Save(context.Background(), seed); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	return NewFoodService(store, scanner, nil, mailer, digestTo)
}

func TestAddFoodItemValidation(t *testing.T) {
	svc := newTestService(t, nil, stubScanner{}, nil, "")

	_, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{Name: "   ", Category: "Fridge", Quantity: "1 unit"})
	if !errors.Is(err, domain.ErrEmptyItemName) {
		t.Errorf("blank name: got %v", err)
	}

	_, err = svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{Name: "Milk", Category: "Garage", Quantity: "1 unit"})
	if !errors.Is(err, domain.ErrInvalidCategory) {
		t.Errorf("unknown category: got %v", err)
	}

	_, err = svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{Name: "Milk", Category: "Fridge", Quantity: "1 unit", ExpiryDate: "tomorrow"})
	if !errors.Is(err, domain.ErrInvalidExpiryDate) {
		t.Errorf("unreadable date: got %v", err)
	}
}

func TestAddFoodItemEstimatesExpiry(t *testing.T) {
	svc := newTestService(t, nil, stubScanner{}, nil, "")

	got, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name: "Tomatoes", Category: "Countertop", Quantity: "4 units",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	want := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	if got.ExpiryDate != want {
		t.Errorf("estimated expiry = %q, want %q (tomato shelf life)", got.ExpiryDate, want)
	}
	if got.ID == "" {
		t.Error("added item has no id")
	}
	if got.Status != StatusFresh {
		t.Errorf("status = %q, want fresh", got.Status)
	}
}

func TestAddFoodItemMergesDuplicate(t *testing.T) {
	expiry := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
	seed := []entities.FoodItem{
		{ID: "m1", Name: "Milk", Category: entities.CategoryFridge, ExpiryDate: expiry, Quantity: "1 unit", AddedAt: time.Now().AddDate(0, 0, -2), Price: 2.00},
	}
	svc := newTestService(t, seed, stubScanner{}, nil, "")

	got, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name: "milk", Category: "Fridge", Quantity: "2 units", ExpiryDate: expiry, Price: 1.50,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got.ID != "m1" {
		t.Errorf("merge must return the existing record, got id %q", got.ID)
	}
	if got.Quantity != "3 units" {
		t.Errorf("quantity = %q, want 3 units", got.Quantity)
	}
	if got.Price != 3.50 {
		t.Errorf("price = %v, want 3.50", got.Price)
	}

	view, err := svc.GetInventory(context.Background(), domain.InventoryViewRequest{})
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	if len(view.Items) != 1 {
		t.Errorf("inventory has %d items after merge, want 1", len(view.Items))
	}
}

func TestUpdateAndDeleteUnknownID(t *testing.T) {
	svc := newTestService(t, nil, stubScanner{}, nil, "")

	if err := svc.UpdateFoodItem(context.Background(), "nope", domain.UpdateFoodItemRequest{Name: "X"}); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("update unknown id: got %v", err)
	}
	if err := svc.DeleteFoodItem(context.Background(), "nope"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("delete unknown id: got %v", err)
	}
}

func TestUpdateFoodItemPartial(t *testing.T) {
	seed := []entities.FoodItem{
		{ID: "u1", Name: "Rice", Category: entities.CategoryPantry, ExpiryDate: "2025-06-01", Quantity: "2kg", Price: 8.50},
	}
	svc := newTestService(t, seed, stubScanner{}, nil, "")

	err := svc.UpdateFoodItem(context.Background(), "u1", domain.UpdateFoodItemRequest{Quantity: "1kg"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	view, err := svc.GetInventory(context.Background(), domain.InventoryViewRequest{})
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	got := view.Items[0]
	if got.Quantity != "1kg" {
		t.Errorf("quantity = %q, want 1kg", got.Quantity)
	}
	if got.Name != "Rice" || got.ExpiryDate != "2025-06-01" || got.Price != 8.50 {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestScanReceiptReconcilesBatch(t *testing.T) {
	scanner := stubScanner{
		items: []entities.ScannedItem{
			{Name: "Avocados", Quantity: "3 units", Category: entities.CategoryCountertop, EstimatedExpiryDays: 4, EstimatedPrice: 4.50},
			{Name: "Avocados", Quantity: "2 units", Category: entities.CategoryCountertop, EstimatedExpiryDays: 4, EstimatedPrice: 3.00},
		},
		busy: true,
	}
	svc := newTestService(t, nil, scanner, nil, "")

	resp, err := svc.ScanReceipt(context.Background(), domain.ScanReceiptRequest{
		ReceiptImage: multipartImage(t, "receipt.jpg", []byte("jpegdata")),
		ActiveStatus: "expired",
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if resp.Added != 1 || resp.Merged != 1 {
		t.Errorf("added/merged = %d/%d, want 1/1", resp.Added, resp.Merged)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 affected item, got %d", len(resp.Items))
	}
	if resp.Items[0].Quantity != "5 units" {
		t.Errorf("quantity = %q, want 5 units", resp.Items[0].Quantity)
	}
	if resp.Items[0].Price != 7.50 {
		t.Errorf("price = %v, want 7.50", resp.Items[0].Price)
	}
	if !resp.ServiceBusy {
		t.Error("busy flag from the pipeline must pass through")
	}
	if !resp.ResetFilters {
		t.Error("an expired-only view hides fresh arrivals, reset must be set")
	}
	if resp.ImageURL != "" {
		t.Errorf("no archive configured, image url = %q", resp.ImageURL)
	}
}

func TestSendExpiryDigest(t *testing.T) {
	now := time.Now()
	seed := []entities.FoodItem{
		{ID: "1", Name: "Spinach", Category: entities.CategoryFridge, ExpiryDate: now.AddDate(0, 0, 1).Format("2006-01-02"), Quantity: "200g"},
		{ID: "2", Name: "Rice", Category: entities.CategoryPantry, ExpiryDate: now.AddDate(0, 0, 100).Format("2006-01-02"), Quantity: "2kg"},
		{ID: "3", Name: "Old Yogurt", Category: entities.CategoryFridge, ExpiryDate: now.AddDate(0, 0, -2).Format("2006-01-02"), Quantity: "1 cup"},
	}
	mailer := &recordingMailer{}
	svc := newTestService(t, seed, stubScanner{}, mailer, "kitchen@example.com")

	count, err := svc.SendExpiryDigest(context.Background())
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if count != 1 {
		t.Errorf("digest count = %d, want only the expiring spinach", count)
	}
	if mailer.sent != 1 || mailer.to != "kitchen@example.com" {
		t.Errorf("mail sent %d times to %q", mailer.sent, mailer.to)
	}
	if !strings.Contains(mailer.body, "Spinach") || strings.Contains(mailer.body, "Old Yogurt") {
		t.Errorf("digest body wrong: %s", mailer.body)
	}
}

func TestSendExpiryDigestUnconfigured(t *testing.T) {
	svc := newTestService(t, nil, stubScanner{}, nil, "")

	_, err := svc.SendExpiryDigest(context.Background())
	if !errors.Is(err, domain.ErrDigestNotConfigured) {
		t.Errorf("expected ErrDigestNotConfigured, got %v", err)
	}
}

func TestSendExpiryDigestNothingExpiring(t *testing.T) {
	now := time.Now()
	seed := []entities.FoodItem{
		{ID: "1", Name: "Rice", Category: entities.CategoryPantry, ExpiryDate: now.AddDate(0, 0, 100).Format("2006-01-02"), Quantity: "2kg"},
	}
	mailer := &recordingMailer{}
	svc := newTestService(t, seed, stubScanner{}, mailer, "kitchen@example.com")

	count, err := svc.SendExpiryDigest(context.Background())
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if count != 0 || mailer.sent != 0 {
		t.Errorf("nothing expiring must send no mail, count=%d sent=%d", count, mailer.sent)
	}
}

// multipartImage builds a real multipart.FileHeader the way fiber's form
// parser would produce one.
func multipartImage(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("receipt_image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	reader := multipart.NewReader(buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["receipt_image"][0]
}
