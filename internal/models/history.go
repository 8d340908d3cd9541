package models

import "time"

// InventoryHistoryEntry is one append-only record of a stock change.
// Entries outlive their product; ProductID is not required to reference
// a row that still exists.
type InventoryHistoryEntry struct {
	ID          int       `json:"id"`
	ProductID   int       `json:"product_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	ChangedAt   time.Time `json:"changed_at"`
	Actor       string    `json:"actor"`
}
