package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"Shelf-Life-Backend/entities"
)

// ocrProvider is tier 1: the remote receipt-OCR service. The image goes up as
// multipart form data under the "file" field, the way the service expects a
// browser upload.
type ocrProvider struct {
	url    string
	client *http.Client
}

func NewOCRProvider(url string) Provider {
	return &ocrProvider{
		url:    url,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *ocrProvider) Name() string { return "receipt-ocr" }

func (p *ocrProvider) Scan(ctx context.Context, image []byte, mimeType string) ([]entities.ScannedItem, error) {
	if p.url == "" {
		return nil, fmt.Errorf("OCR service URL not configured")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "receipt.jpg")
	if err != nil {
		return nil, err
	}
	if _, err = part.Write(image); err != nil {
		return nil, err
	}
	if err = writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("OCR service rate limited: %w", ErrQuotaExhausted)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OCR service error: %s - %s", resp.Status, string(raw))
	}

	var payload interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("malformed OCR response: %w", err)
	}

	elements := itemsOf(payload)
	if len(elements) == 0 {
		return nil, fmt.Errorf("OCR service returned no items")
	}

	now := time.Now()
	items := make([]entities.ScannedItem, 0, len(elements))
	for _, elem := range elements {
		items = append(items, scannedItemFrom(elem, now))
	}
	return items, nil
}
