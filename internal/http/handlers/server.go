package handlers

import (
	repo "github.com/inventory-catalog/api/internal/repo"
)

var (
	productRepo repo.ProductRepository
	historyRepo repo.HistoryRepository

	importWorkers = 4
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetHistoryRepo(r repo.HistoryRepository) {
	historyRepo = r
}

// SetImportWorkers bounds the bulk import fan-out.
func SetImportWorkers(n int) {
	if n > 0 {
		importWorkers = n
	}
}
