package food

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"Shelf-Life-Backend/entities"
)

const (
	StatusFresh    = "fresh"
	StatusExpiring = "expiring"
	StatusExpired  = "expired"
)

// expiringWindowDays is the days-remaining range (inclusive) that counts as
// "expiring soon".
const expiringWindowDays = 3

// ViewQuery selects and orders a slice of the inventory for presentation.
type ViewQuery struct {
	Search   string
	Category string // "" or "All" matches every category
	Status   string // "all", "expiring", "expired"
	Sort     string // "expiry", "name", "added"
}

var nameCollator = collate.New(language.English)

// DaysRemaining is the number of whole days between today (truncated to
// midnight) and the expiry date. Negative once the date has passed.
func DaysRemaining(expiryDate string, today time.Time) int {
	expiry, err := time.Parse("2006-01-02", expiryDate)
	if err != nil {
		// Dates are normalized before storage; anything unreadable is treated
		// as a full default shelf life away.
		return DefaultShelfLifeDays
	}

	y, m, d := today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return int(math.Ceil(expiry.Sub(midnight).Hours() / 24))
}

// StatusOf classifies a days-remaining value.
func StatusOf(daysRemaining int) string {
	switch {
	case daysRemaining < 0:
		return StatusExpired
	case daysRemaining <= expiringWindowDays:
		return StatusExpiring
	default:
		return StatusFresh
	}
}

// FilterAndSort derives the presentation view: search, category and status
// filters are conjunctive, then the result is ordered by the sort key. Ties
// keep their input order.
func FilterAndSort(items []entities.FoodItem, q ViewQuery, today time.Time) []entities.FoodItem {
	search := strings.ToLower(q.Search)

	filtered := make([]entities.FoodItem, 0, len(items))
	for _, item := range items {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if q.Category != "" && q.Category != "All" && string(item.Category) != q.Category {
			continue
		}

		days := DaysRemaining(item.ExpiryDate, today)
		switch q.Status {
		case StatusExpiring:
			if days < 0 || days > expiringWindowDays {
				continue
			}
		case StatusExpired:
			if days >= 0 {
				continue
			}
		}

		filtered = append(filtered, item)
	}

	switch q.Sort {
	case "name":
		sort.SliceStable(filtered, func(i, j int) bool {
			return nameCollator.CompareString(filtered[i].Name, filtered[j].Name) < 0
		})
	case "expiry":
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ExpiryDate < filtered[j].ExpiryDate
		})
	case "added":
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].AddedAt.After(filtered[j].AddedAt)
		})
	}

	return filtered
}

// Stats are aggregate figures over the full, unfiltered inventory.
type Stats struct {
	Total        int
	Expiring     int
	Expired      int
	Fridge       int
	TotalValue   float64
	WastedValue  float64
	FreshPercent int
}

// ComputeStats aggregates the whole inventory. FreshPercent is 100 for an
// empty inventory.
func ComputeStats(items []entities.FoodItem, today time.Time) Stats {
	stats := Stats{Total: len(items)}

	for _, item := range items {
		days := DaysRemaining(item.ExpiryDate, today)
		switch StatusOf(days) {
		case StatusExpired:
			stats.Expired++
			stats.WastedValue += item.Price
		case StatusExpiring:
			stats.Expiring++
		}

		if item.Category == entities.CategoryFridge {
			stats.Fridge++
		}
		stats.TotalValue += item.Price
	}

	if stats.Total == 0 {
		stats.FreshPercent = 100
	} else {
		fresh := float64(stats.Total-stats.Expired) / float64(stats.Total)
		stats.FreshPercent = int(math.Round(fresh * 100))
	}

	return stats
}
