package food

import (
	"testing"

	"Shelf-Life-Backend/entities"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		hint string
		want entities.Category
	}{
		{"frozen foods", entities.CategoryFreezer},
		{"Ice cream", entities.CategoryFreezer},
		{"seasoning", entities.CategorySpiceRack},
		{"Salt & Pepper", entities.CategorySpiceRack},
		{"fresh fruit", entities.CategoryCountertop},
		{"bread", entities.CategoryCountertop},
		{"canned goods", entities.CategoryPantry},
		{"dry pasta", entities.CategoryPantry},
		{"dishware", entities.CategoryCabinet},
		{"dairy", entities.CategoryFridge},
		{"", entities.CategoryFridge},
		{"   ", entities.CategoryFridge},
		{"something else entirely", entities.CategoryFridge},
	}

	for _, tt := range tests {
		if got := NormalizeCategory(tt.hint); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.hint, got, tt.want)
		}
	}
}

// Rules are checked in priority order: "frozen fruit" mentions both the
// freezer and countertop vocabularies, and freezer wins.
func TestNormalizeCategoryPriority(t *testing.T) {
	if got := NormalizeCategory("frozen fruit"); got != entities.CategoryFreezer {
		t.Errorf("NormalizeCategory(\"frozen fruit\") = %q, want Freezer", got)
	}
}
