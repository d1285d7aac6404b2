package scan

import (
	"strconv"
	"strings"
	"time"

	"Shelf-Life-Backend/entities"
	"Shelf-Life-Backend/pkg/food"
)

// Neither the OCR service nor the AI responses have a contractually fixed
// schema, so every logical field is probed under an ordered list of plausible
// key names. This keeps provider-schema drift contained here; nothing past the
// pipeline boundary sees raw payloads.

func itemsOf(payload interface{}) []map[string]interface{} {
	var raw []interface{}

	switch v := payload.(type) {
	case []interface{}:
		raw = v
	case map[string]interface{}:
		for _, key := range []string{"items", "grocery_list", "list"} {
			if arr, ok := v[key].([]interface{}); ok {
				raw = arr
				break
			}
		}
	}

	out := make([]map[string]interface{}, 0, len(raw))
	for _, elem := range raw {
		if m, ok := elem.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

func pickString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			switch s := v.(type) {
			case string:
				if strings.TrimSpace(s) != "" {
					return s
				}
			case float64:
				return strconv.FormatFloat(s, 'f', -1, 64)
			}
		}
	}
	return ""
}

func pickNumber(m map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}

// scannedItemFrom turns one raw provider element into the canonical shape.
func scannedItemFrom(m map[string]interface{}, now time.Time) entities.ScannedItem {
	name := pickString(m, "name", "item", "food_item")
	if name == "" {
		name = "Unidentified Item"
	}

	quantity := pickString(m, "quantity", "qty")
	if quantity == "" {
		quantity = "1 unit"
	}

	days := int(pickNumber(m, "estimatedExpiryDays", "estimated_expiry_days"))
	if days <= 0 {
		rawDate := pickString(m, "expiration_date", "expiry_date", "expiry", "expires_on")
		days = daysUntil(rawDate, name, now)
	}

	return entities.ScannedItem{
		Name:                name,
		Quantity:            quantity,
		Category:            food.NormalizeCategory(pickString(m, "category", "type")),
		EstimatedExpiryDays: days,
		EstimatedPrice:      pickNumber(m, "total_price", "total", "price", "cost", "estimatedPrice"),
	}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}

// daysUntil converts an absolute provider date into a relative day count.
// Missing, malformed or already-elapsed dates fall back to the shelf-life
// estimate for the item name.
func daysUntil(rawDate, itemName string, now time.Time) int {
	rawDate = strings.TrimSpace(rawDate)
	if rawDate == "" {
		return food.EstimateShelfLifeDays(itemName)
	}

	var target time.Time
	var err error
	for _, layout := range dateLayouts {
		target, err = time.Parse(layout, rawDate)
		if err == nil {
			break
		}
	}
	if err != nil {
		return food.EstimateShelfLifeDays(itemName)
	}

	days := food.DaysRemaining(target.Format("2006-01-02"), now)
	if days < 0 {
		return food.EstimateShelfLifeDays(itemName)
	}
	return days
}
