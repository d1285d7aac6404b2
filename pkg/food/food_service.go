package food

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"Shelf-Life-Backend/domain"
	"Shelf-Life-Backend/entities"
	"Shelf-Life-Backend/internal/utils/storage"
)

type (
	// ReceiptScanner is the tiered acquisition pipeline. It is total: it
	// always yields a non-empty candidate list, with busy set when a tier hit
	// a rate limit.
	ReceiptScanner interface {
		Scan(ctx context.Context, image []byte, mimeType string) (items []entities.ScannedItem, busy bool)
	}

	MailSender interface {
		Send(toEmail string, subject string, body string) error
	}

	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest) error
		DeleteFoodItem(ctx context.Context, id string) error
		GetInventory(ctx context.Context, req domain.InventoryViewRequest) (domain.InventoryViewResponse, error)
		GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error)
		ScanReceipt(ctx context.Context, req domain.ScanReceiptRequest) (domain.ScanReceiptResponse, error)
		SendExpiryDigest(ctx context.Context) (int, error)
	}

	foodService struct {
		store    InventoryStore
		scanner  ReceiptScanner
		s3       storage.AwsS3
		mailer   MailSender
		digestTo string

		// Mutations are serialized: each one runs to completion and persists
		// the full snapshot before the next is admitted.
		mu sync.Mutex
	}
)

// NewFoodService wires the inventory service. s3 and mailer may be nil when
// the receipt archive or digest mail are not configured.
func NewFoodService(store InventoryStore, scanner ReceiptScanner, s3 storage.AwsS3, mailer MailSender, digestTo string) FoodService {
	return &foodService{
		store:    store,
		scanner:  scanner,
		s3:       s3,
		mailer:   mailer,
		digestTo: digestTo,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.FoodItemResponse{}, domain.ErrEmptyItemName
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	now := time.Now()
	expiryDate := req.ExpiryDate
	if expiryDate == "" {
		expiryDate = now.AddDate(0, 0, EstimateShelfLifeDays(name)).Format("2006-01-02")
	} else {
		parsed, err := time.Parse("2006-01-02", expiryDate)
		if err != nil {
			return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
		}
		expiryDate = parsed.Format("2006-01-02")
	}

	candidate := Candidate{
		Name:       name,
		Category:   category,
		ExpiryDate: expiryDate,
		Quantity:   req.Quantity,
		Price:      req.Price,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	outcome := ReconcileBatch(items, []Candidate{candidate}, now)
	if err := s.store.Save(ctx, outcome.Items); err != nil {
		return domain.FoodItemResponse{}, err
	}

	record, _ := findByID(outcome.Items, outcome.AffectedIDs[0])
	return toResponse(record, now), nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, item := range items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ErrItemNotFound
	}

	item := items[idx]
	if strings.TrimSpace(req.Name) != "" {
		item.Name = strings.TrimSpace(req.Name)
	}
	if req.Category != "" {
		category, err := domain.ParseCategory(req.Category)
		if err != nil {
			return err
		}
		item.Category = category
	}
	if req.Quantity != "" {
		item.Quantity = req.Quantity
	}
	if req.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		item.ExpiryDate = parsed.Format("2006-01-02")
	}
	if req.Price > 0 {
		item.Price = req.Price
	}

	items[idx] = item
	return s.store.Save(ctx, items)
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]entities.FoodItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			remaining = append(remaining, item)
		}
	}
	if len(remaining) == len(items) {
		return domain.ErrItemNotFound
	}

	return s.store.Save(ctx, remaining)
}

func (s *foodService) GetInventory(ctx context.Context, req domain.InventoryViewRequest) (domain.InventoryViewResponse, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return domain.InventoryViewResponse{}, err
	}

	now := time.Now()
	view := FilterAndSort(items, ViewQuery{
		Search:   req.Search,
		Category: req.Category,
		Status:   req.Status,
		Sort:     req.Sort,
	}, now)

	responses := make([]domain.FoodItemResponse, 0, len(view))
	for _, item := range view {
		responses = append(responses, toResponse(item, now))
	}

	return domain.InventoryViewResponse{
		Items: responses,
		Stats: statsResponse(ComputeStats(items, now)),
	}, nil
}

func (s *foodService) GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}
	return statsResponse(ComputeStats(items, time.Now())), nil
}

func (s *foodService) ScanReceipt(ctx context.Context, req domain.ScanReceiptRequest) (domain.ScanReceiptResponse, error) {
	file, err := req.ReceiptImage.Open()
	if err != nil {
		return domain.ScanReceiptResponse{}, err
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return domain.ScanReceiptResponse{}, err
	}

	// Archive is best effort; a storage failure never blocks the scan.
	var imageURL string
	if s.s3 != nil {
		fileName := fmt.Sprintf("receipt-%s", uuid.NewString())
		objectKey, err := s.s3.UploadFile(fileName, req.ReceiptImage, "receipts", storage.AllowImage...)
		if err != nil {
			log.Warnf("failed to archive receipt image: %v", err)
		} else {
			imageURL = s.s3.GetPublicLinkKey(objectKey)
		}
	}

	scanned, busy := s.scanner.Scan(ctx, image, detectMimeType(req.ReceiptImage.Header.Get("Content-Type"), req.ReceiptImage.Filename))

	now := time.Now()
	candidates := make([]Candidate, 0, len(scanned))
	for _, item := range scanned {
		candidates = append(candidates, Candidate{
			Name:       item.Name,
			Category:   item.Category,
			ExpiryDate: now.AddDate(0, 0, item.EstimatedExpiryDays).Format("2006-01-02"),
			Quantity:   item.Quantity,
			Price:      item.EstimatedPrice,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx)
	if err != nil {
		return domain.ScanReceiptResponse{}, err
	}

	outcome := ReconcileBatch(items, candidates, now)
	if err := s.store.Save(ctx, outcome.Items); err != nil {
		return domain.ScanReceiptResponse{}, err
	}

	affected := make([]domain.FoodItemResponse, 0, len(outcome.AffectedIDs))
	for _, id := range outcome.AffectedIDs {
		if record, ok := findByID(outcome.Items, id); ok {
			affected = append(affected, toResponse(record, now))
		}
	}

	return domain.ScanReceiptResponse{
		Items:        affected,
		Added:        outcome.Added,
		Merged:       outcome.Merged,
		ResetFilters: ShouldResetFilters(candidates, req.ActiveCategory, req.ActiveStatus),
		ServiceBusy:  busy,
		ImageURL:     imageURL,
	}, nil
}

func (s *foodService) SendExpiryDigest(ctx context.Context) (int, error) {
	if s.mailer == nil || s.digestTo == "" {
		return 0, domain.ErrDigestNotConfigured
	}

	items, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	var expiring []entities.FoodItem
	for _, item := range items {
		if StatusOf(DaysRemaining(item.ExpiryDate, now)) == StatusExpiring {
			expiring = append(expiring, item)
		}
	}
	if len(expiring) == 0 {
		return 0, nil
	}

	var body strings.Builder
	body.WriteString("<h2>Items expiring soon</h2><ul>")
	for _, item := range expiring {
		days := DaysRemaining(item.ExpiryDate, now)
		fmt.Fprintf(&body, "<li><b>%s</b> (%s, %s) expires in %d day(s) on %s</li>",
			item.Name, item.Quantity, item.Category, days, item.ExpiryDate)
	}
	body.WriteString("</ul>")

	subject := fmt.Sprintf("Shelf Life: %d item(s) expiring soon", len(expiring))
	if err := s.mailer.Send(s.digestTo, subject, body.String()); err != nil {
		return 0, err
	}
	return len(expiring), nil
}

func findByID(items []entities.FoodItem, id string) (entities.FoodItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return entities.FoodItem{}, false
}

func toResponse(item entities.FoodItem, now time.Time) domain.FoodItemResponse {
	days := DaysRemaining(item.ExpiryDate, now)
	return domain.FoodItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Category:      string(item.Category),
		ExpiryDate:    item.ExpiryDate,
		Quantity:      item.Quantity,
		Price:         item.Price,
		AddedAt:       item.AddedAt,
		DaysRemaining: days,
		Status:        StatusOf(days),
	}
}

func statsResponse(stats Stats) domain.DashboardStatsResponse {
	return domain.DashboardStatsResponse{
		TotalItems:   stats.Total,
		Expiring:     stats.Expiring,
		Expired:      stats.Expired,
		FridgeItems:  stats.Fridge,
		TotalValue:   stats.TotalValue,
		WastedValue:  stats.WastedValue,
		FreshPercent: stats.FreshPercent,
	}
}

func detectMimeType(contentType, filename string) string {
	if contentType != "" {
		return contentType
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
