package repo

import (
	"sort"
	"sync"

	"github.com/inventory-catalog/api/internal/models"
)

// InMemoryHistoryRepository is the in-memory twin of the inventory history
// ledger. Append-only: entries are never mutated or removed, even when
// their product is deleted.
type InMemoryHistoryRepository struct {
	mu      sync.Mutex
	entries []models.InventoryHistoryEntry
	nextID  int
}

func NewInMemoryHistoryRepository() *InMemoryHistoryRepository {
	return &InMemoryHistoryRepository{nextID: 1}
}

// Add appends an entry to the ledger and assigns its id.
func (r *InMemoryHistoryRepository) Add(e models.InventoryHistoryEntry) models.InventoryHistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, e)
	return e
}

// GetByProductID returns entries for a product, most recent first.
func (r *InMemoryHistoryRepository) GetByProductID(productID int) ([]models.InventoryHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.InventoryHistoryEntry
	for _, e := range r.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ChangedAt.Equal(out[j].ChangedAt) {
			return out[i].ChangedAt.After(out[j].ChangedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *InMemoryHistoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
