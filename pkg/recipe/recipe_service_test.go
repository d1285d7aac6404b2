package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"Shelf-Life-Backend/domain"
	"Shelf-Life-Backend/entities"
)

type stubStore struct {
	items []entities.FoodItem
	err   error
}

func (s *stubStore) Load(ctx context.Context) ([]entities.FoodItem, error) { return s.items, s.err }
func (s *stubStore) Save(ctx context.Context, items []entities.FoodItem) error {
	s.items = items
	return nil
}
func (s *stubStore) Close() error { return nil }

func TestGenerateRecipesEmptyInventory(t *testing.T) {
	svc := NewRecipeService(&stubStore{}, "", "")

	_, _, err := svc.GenerateRecipes(context.Background())
	if !errors.Is(err, domain.ErrNoIngredients) {
		t.Fatalf("expected ErrNoIngredients, got %v", err)
	}
}

func TestGenerateRecipesStoreFailure(t *testing.T) {
	boom := errors.New("disk gone")
	svc := NewRecipeService(&stubStore{err: boom}, "", "")

	_, _, err := svc.GenerateRecipes(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("store errors must propagate, got %v", err)
	}
}

func TestGenerateRecipesOfflineFallback(t *testing.T) {
	store := &stubStore{items: []entities.FoodItem{
		{ID: "1", Name: "Eggs", Category: entities.CategoryFridge, ExpiryDate: "2025-02-01", Quantity: "6 counts"},
	}}
	svc := NewRecipeService(store, "", "")

	recipes, busy, err := svc.GenerateRecipes(context.Background())
	if err != nil {
		t.Fatalf("fallback path must not error: %v", err)
	}
	if busy {
		t.Error("an unconfigured API is not a quota hit")
	}
	if len(recipes) != 3 {
		t.Fatalf("expected the 3 offline recipes, got %d", len(recipes))
	}
	for _, r := range recipes {
		if r.Title == "" || len(r.Ingredients) == 0 || len(r.Instructions) == 0 {
			t.Errorf("offline recipe %q is incomplete", r.Title)
		}
		if !strings.HasPrefix(r.YoutubeURL, "https://www.youtube.com/results?search_query=") {
			t.Errorf("recipe %q link = %q", r.Title, r.YoutubeURL)
		}
	}
}

func TestBuildYouTubeURL(t *testing.T) {
	got := buildYouTubeURL("grilled cheese & tomato soup")
	want := "https://www.youtube.com/results?search_query=grilled+cheese+%26+tomato+soup"
	if got != want {
		t.Errorf("buildYouTubeURL = %q, want %q", got, want)
	}
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("gemini API error: 429 Too Many Requests - quota"), true},
		{errors.New("RESOURCE_EXHAUSTED: daily limit"), true},
		{errors.New("gemini API error: 500 Internal Server Error"), false},
	}

	for _, tt := range tests {
		if got := isQuotaError(tt.err); got != tt.want {
			t.Errorf("isQuotaError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
