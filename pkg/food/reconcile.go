package food

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"Shelf-Life-Backend/entities"
)

// Candidate is a pre-reconciliation entry: a FoodItem that has not been
// assigned an identity or timestamp yet.
type Candidate struct {
	Name       string
	Category   entities.Category
	ExpiryDate string
	Quantity   string
	Price      float64
}

// ReconcileOutcome is the result of merging a candidate batch into the
// inventory.
type ReconcileOutcome struct {
	Items  []entities.FoodItem
	Added  int
	Merged int

	// AffectedIDs lists the ids of records created or restocked by the batch,
	// in candidate order, without duplicates.
	AffectedIDs []string
}

// ReconcileBatch merges candidates into the inventory, deduplicating on the
// (trimmed case-insensitive name, category, expiry date) key. A match restocks
// the existing record in place: quantity via MergeQuantities, prices summed,
// addedAt reset to now. A miss creates a fresh record prepended to the list.
// Candidates are matched against the progressively updated state, so two
// candidates sharing a key within one batch collapse into a single record.
func ReconcileBatch(inventory []entities.FoodItem, candidates []Candidate, now time.Time) ReconcileOutcome {
	items := make([]entities.FoodItem, len(inventory))
	copy(items, inventory)

	outcome := ReconcileOutcome{}
	seen := make(map[string]bool)

	for _, candidate := range candidates {
		idx := findMatch(items, candidate)
		if idx >= 0 {
			existing := items[idx]
			existing.Quantity = MergeQuantities(existing.Quantity, candidate.Quantity)
			existing.Price += candidate.Price
			existing.AddedAt = now
			items[idx] = existing
			outcome.Merged++

			if !seen[existing.ID] {
				seen[existing.ID] = true
				outcome.AffectedIDs = append(outcome.AffectedIDs, existing.ID)
			}
			continue
		}

		item := entities.FoodItem{
			ID:         uuid.NewString(),
			Name:       candidate.Name,
			Category:   candidate.Category,
			ExpiryDate: candidate.ExpiryDate,
			Quantity:   candidate.Quantity,
			AddedAt:    now,
			Price:      candidate.Price,
		}
		items = append([]entities.FoodItem{item}, items...)
		outcome.Added++

		seen[item.ID] = true
		outcome.AffectedIDs = append(outcome.AffectedIDs, item.ID)
	}

	outcome.Items = items
	return outcome
}

func findMatch(items []entities.FoodItem, candidate Candidate) int {
	name := normalizeName(candidate.Name)
	for i, item := range items {
		if normalizeName(item.Name) == name &&
			item.Category == candidate.Category &&
			item.ExpiryDate == candidate.ExpiryDate {
			return i
		}
	}
	return -1
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ShouldResetFilters reports whether the caller's active view filters would
// hide part of an incoming batch: any status filter narrower than "all", or a
// category filter that at least one candidate falls outside of. The
// presentation layer resets its filters (and search text) when this is true so
// fresh arrivals are not silently invisible.
func ShouldResetFilters(candidates []Candidate, activeCategory, activeStatus string) bool {
	if activeStatus != "" && activeStatus != "all" {
		return true
	}

	if activeCategory != "" && activeCategory != "All" {
		for _, candidate := range candidates {
			if string(candidate.Category) != activeCategory {
				return true
			}
		}
	}

	return false
}
