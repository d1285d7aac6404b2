package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"Shelf-Life-Backend/domain"
	"Shelf-Life-Backend/entities"
	"Shelf-Life-Backend/pkg/food"
)

const youtubeSearchTemplate = "https://www.youtube.com/results?search_query="

type (
	RecipeService interface {
		// GenerateRecipes suggests recipes for the current inventory. It is
		// total for a non-empty inventory: when the AI tier fails the static
		// set is returned, with busy set on a quota signal. The only errors
		// are store failures and ErrNoIngredients.
		GenerateRecipes(ctx context.Context) (recipes []entities.Recipe, busy bool, err error)
	}

	recipeService struct {
		store  food.InventoryStore
		apiKey string
		model  string
		client *http.Client
	}
)

func NewRecipeService(store food.InventoryStore, apiKey, model string) RecipeService {
	return &recipeService{
		store:  store,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *recipeService) GenerateRecipes(ctx context.Context) ([]entities.Recipe, bool, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		return nil, false, domain.ErrNoIngredients
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	recipes, err := s.generateWithGemini(ctx, strings.Join(names, ", "))
	if err == nil && len(recipes) > 0 {
		return recipes, false, nil
	}

	busy := isQuotaError(err)
	log.Warnf("recipe generation tier failed, using offline recipes: %v", err)
	return StaticRecipes(), busy, nil
}

func (s *recipeService) generateWithGemini(ctx context.Context, itemNames string) ([]entities.Recipe, error) {
	if s.apiKey == "" || s.model == "" {
		return nil, fmt.Errorf("gemini API not configured")
	}

	prompt := fmt.Sprintf(
		"Suggest 3 recipes for: %s. "+
			"Return a JSON array with these exact fields: "+
			"title (string), ingredients (array of strings), instructions (array of strings), "+
			"estimatedTime (string), difficulty (string, one of Easy, Medium, Hard), "+
			"youtubeSearchQuery (string: a concise search query to find a video tutorial for this specific recipe, "+
			"e.g. \"how to make creamy mushroom pasta\"). "+
			"Do not include any explanations or text outside of the JSON array.",
		itemNames,
	)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"temperature":      0.7,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	geminiURL := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		s.model, s.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(raw))
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
		return nil, err
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	responseText := geminiResp.Candidates[0].Content.Parts[0].Text
	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")

	start := strings.Index(responseText, "[")
	end := strings.LastIndex(responseText, "]")
	if start == -1 || end == -1 || start > end {
		return nil, fmt.Errorf("invalid response format: %s", responseText)
	}
	responseText = responseText[start : end+1]

	var rawRecipes []struct {
		Title              string   `json:"title"`
		Ingredients        []string `json:"ingredients"`
		Instructions       []string `json:"instructions"`
		EstimatedTime      string   `json:"estimatedTime"`
		Difficulty         string   `json:"difficulty"`
		YoutubeSearchQuery string   `json:"youtubeSearchQuery"`
	}
	if err := json.Unmarshal([]byte(responseText), &rawRecipes); err != nil {
		return nil, err
	}

	recipes := make([]entities.Recipe, 0, len(rawRecipes))
	for _, raw := range rawRecipes {
		if raw.Title == "" {
			continue
		}
		if raw.Difficulty == "" {
			raw.Difficulty = "Medium"
		}

		query := raw.YoutubeSearchQuery
		if query == "" {
			query = raw.Title + " recipe tutorial"
		}

		recipes = append(recipes, entities.Recipe{
			Title:         raw.Title,
			Ingredients:   raw.Ingredients,
			Instructions:  raw.Instructions,
			EstimatedTime: raw.EstimatedTime,
			Difficulty:    raw.Difficulty,
			YoutubeURL:    buildYouTubeURL(query),
		})
	}
	return recipes, nil
}

// buildYouTubeURL percent-encodes a search phrase into the fixed results
// template. Raw queries never leave the pipeline as links.
func buildYouTubeURL(query string) string {
	return youtubeSearchTemplate + url.QueryEscape(query)
}

func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// StaticRecipes is the offline fallback set.
func StaticRecipes() []entities.Recipe {
	return []entities.Recipe{
		{
			Title:       "Quick Pantry Pasta",
			Ingredients: []string{"Pasta", "Olive Oil", "Garlic", "Chili Flakes", "Parmesan"},
			Instructions: []string{
				"Boil pasta in salted water until al dente.",
				"Sauté sliced garlic and chili flakes in generous olive oil.",
				"Toss pasta with the oil, add some pasta water to emulsify.",
				"Serve topped with parmesan cheese.",
			},
			EstimatedTime: "15 mins",
			Difficulty:    "Easy",
			YoutubeURL:    buildYouTubeURL("aglio e olio pasta"),
		},
		{
			Title:       "Everything Fried Rice",
			Ingredients: []string{"Rice", "Eggs", "Soy Sauce", "Mixed Vegetables", "Onion"},
			Instructions: []string{
				"Sauté onions and any hard vegetables until soft.",
				"Push veggies to side, scramble eggs in the pan.",
				"Add cooked rice and soy sauce, mix everything together on high heat.",
				"Season with pepper and sesame oil if available.",
			},
			EstimatedTime: "20 mins",
			Difficulty:    "Easy",
			YoutubeURL:    buildYouTubeURL("easy fried rice"),
		},
		{
			Title:       "Classic Grilled Cheese & Tomato Soup",
			Ingredients: []string{"Bread", "Cheese", "Butter", "Tomato Soup (Canned or Fresh)"},
			Instructions: []string{
				"Butter bread slices on the outside.",
				"Place cheese between slices and grill in a pan until golden brown.",
				"Heat up tomato soup gently.",
				"Serve the crispy sandwich with soup for dipping.",
			},
			EstimatedTime: "10 mins",
			Difficulty:    "Easy",
			YoutubeURL:    buildYouTubeURL("grilled cheese and tomato soup"),
		},
	}
}
