package food

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"Shelf-Life-Backend/entities"
)

// inventoryKey is the single key the whole inventory lives under. The store is
// deliberately a snapshot blob, not row storage: every mutation rewrites the
// full list.
const inventoryKey = "inventory"

type InventoryStore interface {
	Load(ctx context.Context) ([]entities.FoodItem, error)
	Save(ctx context.Context, items []entities.FoodItem) error
	Close() error
}

type badgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens the snapshot store at dir.
func NewBadgerStore(dir string) (InventoryStore, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return &badgerStore{db: db}, nil
}

// NewInMemoryStore opens a store that lives only for the process. Used by
// tests.
func NewInMemoryStore() (InventoryStore, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return &badgerStore{db: db}, nil
}

// Load reads the full inventory. A missing key is not an error: it means
// first run, so the store seeds itself with the demonstration dataset and
// returns that.
func (s *badgerStore) Load(ctx context.Context) ([]entities.FoodItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(inventoryKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		seed := SeedInventory(time.Now())
		if err := s.Save(ctx, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, err
	}

	var items []entities.FoodItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save writes the full inventory snapshot.
func (s *badgerStore) Save(ctx context.Context, items []entities.FoodItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(inventoryKey), raw)
	})
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}

// SeedInventory is the demonstration dataset used when the store is empty on
// first read.
func SeedInventory(now time.Time) []entities.FoodItem {
	return []entities.FoodItem{
		{
			ID:         uuid.NewString(),
			Name:       "Almond Milk",
			Category:   entities.CategoryFridge,
			ExpiryDate: now.AddDate(0, 0, 2).Format("2006-01-02"),
			Quantity:   "1L",
			AddedAt:    now,
			Price:      3.99,
		},
		{
			ID:         uuid.NewString(),
			Name:       "Fresh Spinach",
			Category:   entities.CategoryFridge,
			ExpiryDate: now.AddDate(0, 0, 1).Format("2006-01-02"),
			Quantity:   "200g",
			AddedAt:    now,
			Price:      2.49,
		},
		{
			ID:         uuid.NewString(),
			Name:       "Basmati Rice",
			Category:   entities.CategoryPantry,
			ExpiryDate: now.AddDate(0, 0, 100).Format("2006-01-02"),
			Quantity:   "2kg",
			AddedAt:    now,
			Price:      8.50,
		},
	}
}
