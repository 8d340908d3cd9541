package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/inventory-catalog/api/internal/models"
)

type PostgresHistoryRepository struct {
	db *sql.DB
}

func NewPostgresHistoryRepository(db *sql.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// GetByProductID returns the stock change ledger for a product, most recent
// first. The id tiebreak keeps entries written in the same instant ordered.
func (r *PostgresHistoryRepository) GetByProductID(productID int) ([]models.InventoryHistoryEntry, error) {
	query := `SELECT id, product_id, old_quantity, new_quantity, change_date, user_info
		FROM inventory_history WHERE product_id = $1 ORDER BY change_date DESC, id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.InventoryHistoryEntry
	for rows.Next() {
		var e models.InventoryHistoryEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.OldQuantity, &e.NewQuantity, &e.ChangedAt, &e.Actor); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
