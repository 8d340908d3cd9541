package repo

import "github.com/inventory-catalog/api/internal/models"

// HistoryRepository reads the append-only stock change ledger.
// Writing happens inside ProductRepository.Update; nothing ever mutates
// or deletes an entry once it is recorded.
type HistoryRepository interface {
	GetByProductID(productID int) ([]models.InventoryHistoryEntry, error)
}
