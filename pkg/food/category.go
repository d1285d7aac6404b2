package food

import (
	"strings"

	"Shelf-Life-Backend/entities"
)

type categoryRule struct {
	Keywords []string
	Result   entities.Category
}

// categoryRules are checked in priority order; the first rule with a keyword
// contained in the hint wins.
var categoryRules = []categoryRule{
	{[]string{"freez", "ice", "frozen"}, entities.CategoryFreezer},
	{[]string{"spice", "herb", "season", "salt", "pepper"}, entities.CategorySpiceRack},
	{[]string{"counter", "fruit", "banana", "bread", "avocado"}, entities.CategoryCountertop},
	{[]string{"pantry", "can", "dry", "box", "snack", "baking", "cereal", "rice", "pasta", "oil", "sugar", "flour"}, entities.CategoryPantry},
	{[]string{"cabinet", "plate", "dish", "utensil"}, entities.CategoryCabinet},
}

// NormalizeCategory maps a free-text category or item-type hint onto the
// closed category set. Unrecognized or empty hints default to Fridge since
// most unclassified perishables need refrigeration. Total; never fails.
func NormalizeCategory(hint string) entities.Category {
	normalized := strings.ToLower(strings.TrimSpace(hint))
	if normalized == "" {
		return entities.CategoryFridge
	}

	for _, rule := range categoryRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalized, keyword) {
				return rule.Result
			}
		}
	}

	return entities.CategoryFridge
}
