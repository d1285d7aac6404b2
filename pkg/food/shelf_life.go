package food

import (
	"strings"
)

// DefaultShelfLifeDays is returned when nothing in the table matches.
const DefaultShelfLifeDays = 7

type shelfLifeEntry struct {
	Key  string
	Days int
}

// shelfLifeTable maps food names to typical shelf life in days. It is a slice,
// not a map: the fuzzy phase scans entries in this order and the first key
// contained in the item name wins, so ordering is part of the contract.
var shelfLifeTable = []shelfLifeEntry{
	// Produce
	{"tomato", 5}, {"tomatoes", 5},
	{"milk", 7},
	{"egg", 21}, {"eggs", 21},
	{"bread", 5},
	{"spinach", 5}, {"lettuce", 7}, {"kale", 7},
	{"cucumber", 7},
	{"apple", 30}, {"apples", 30},
	{"banana", 5}, {"bananas", 5},
	{"strawberry", 3}, {"strawberries", 3},
	{"blueberry", 7}, {"blueberries", 7},
	{"raspberry", 2}, {"raspberries", 2},
	{"grapes", 10},
	{"orange", 14}, {"oranges", 14},
	{"lemon", 21}, {"lemons", 21},
	{"avocado", 4}, {"avocados", 4},
	{"broccoli", 7}, {"cauliflower", 7},
	{"mushroom", 5}, {"mushrooms", 5},
	{"potato", 60}, {"potatoes", 60},
	{"onion", 30}, {"onions", 30},
	{"garlic", 90},
	{"carrot", 21}, {"carrots", 21},
	{"bell pepper", 7}, {"peppers", 7},
	{"zucchini", 5}, {"asparagus", 4}, {"celery", 14}, {"corn", 3},

	// Proteins
	{"chicken", 2}, {"beef", 3}, {"pork", 3}, {"fish", 2},
	{"ham", 5}, {"salami", 30}, {"bacon", 7}, {"tofu", 7},

	// Dairy / fridge
	{"yogurt", 14}, {"cheese", 21}, {"butter", 60}, {"cream", 7},
	{"hummus", 7}, {"juice", 10},

	// Pantry
	{"rice", 365}, {"pasta", 365}, {"flour", 365}, {"sugar", 730},
	{"salt", 1000}, {"pepper", 365}, {"spice", 365}, {"oil", 180},
	{"cereal", 180}, {"coffee", 365}, {"tea", 730},
}

// EstimateShelfLifeDays infers days-until-expiry from an item name alone.
// Exact match on the normalized name first, then the first table key that
// appears inside the name, then the default.
func EstimateShelfLifeDays(name string) int {
	normalized := strings.ToLower(strings.TrimSpace(name))

	for _, entry := range shelfLifeTable {
		if entry.Key == normalized {
			return entry.Days
		}
	}

	for _, entry := range shelfLifeTable {
		if strings.Contains(normalized, entry.Key) {
			return entry.Days
		}
	}

	return DefaultShelfLifeDays
}
