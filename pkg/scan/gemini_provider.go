package scan

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"Shelf-Life-Backend/entities"
)

const visionPrompt = `Extract food items from this receipt.
Return a JSON array with these exact fields:
- name (string)
- quantity (string, e.g. "1 unit", "10 count")
- category (string, exactly one of: Fridge, Pantry, Freezer, Cabinet, Countertop, Spice Rack)
- estimatedExpiryDays (number)
- estimatedPrice (number, ONLY use the final total price for the line item. Do NOT use the unit price. Example: if line says "2 @ $0.89 $1.78", use 1.78).

Ignore non-food items like "Tax", "Total", "Subtotal", "Card", "Auth", "Change".`

// geminiProvider is tier 2: the generative vision service with a structured
// output instruction.
type geminiProvider struct {
	apiKey string
	model  string
	client *http.Client
}

func NewGeminiProvider(apiKey, model string) Provider {
	return &geminiProvider{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *geminiProvider) Name() string { return "gemini-vision" }

func (p *geminiProvider) Scan(ctx context.Context, image []byte, mimeType string) ([]entities.ScannedItem, error) {
	if p.apiKey == "" || p.model == "" {
		return nil, fmt.Errorf("gemini API not configured")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(image),
						},
					},
					{"text": visionPrompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"temperature":      0.1,
		},
	}

	responseText, err := callGemini(ctx, p.client, p.apiKey, p.model, requestBody)
	if err != nil {
		return nil, err
	}

	var raw []interface{}
	if err := json.Unmarshal([]byte(extractJSONArray(responseText)), &raw); err != nil {
		return nil, fmt.Errorf("malformed gemini response: %w", err)
	}

	elements := itemsOf(raw)
	if len(elements) == 0 {
		return nil, fmt.Errorf("gemini returned no items")
	}

	now := time.Now()
	items := make([]entities.ScannedItem, 0, len(elements))
	for _, elem := range elements {
		items = append(items, scannedItemFrom(elem, now))
	}
	return items, nil
}

// callGemini posts a generateContent request and returns the first candidate's
// text part.
func callGemini(ctx context.Context, client *http.Client, apiKey, model string, requestBody map[string]interface{}) (string, error) {
	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		model, apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("gemini rate limited: %w", ErrQuotaExhausted)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		if strings.Contains(string(raw), "RESOURCE_EXHAUSTED") {
			return "", fmt.Errorf("gemini quota error: %w", ErrQuotaExhausted)
		}
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(raw))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// extractJSONArray strips markdown fences and surrounding prose from a model
// response, leaving the JSON array (a lone object gets wrapped).
func extractJSONArray(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start != -1 && end != -1 && start < end {
		return text[start : end+1]
	}

	start = strings.Index(text, "{")
	end = strings.LastIndex(text, "}")
	if start != -1 && end != -1 && start < end {
		return "[" + text[start:end+1] + "]"
	}

	return text
}
